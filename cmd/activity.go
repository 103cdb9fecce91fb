package cmd

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/simonSlamka/wolter/internal/activity"
	"github.com/simonSlamka/wolter/internal/cli"
	"github.com/simonSlamka/wolter/internal/store"
)

var activityCmd = &cobra.Command{
	Use:   "activity",
	Short: "Coding and listening activity from exported data",
	RunE:  runActivity,
}

func init() {
	rootCmd.AddCommand(activityCmd)
}

func runActivity(_ *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	shown := false
	if cfg.Activity.WakaTimePath != "" {
		if err := showWakaTime(cfg.Activity.WakaTimePath); err != nil {
			return err
		}
		shown = true
	}
	if cfg.Activity.LastFMPath != "" {
		if err := showLastFM(cfg.Activity.LastFMPath); err != nil {
			return err
		}
		shown = true
	}
	if !shown {
		fmt.Println("\n  No activity sources configured. Run `wolter setup` to point at your exports.")
	}
	return nil
}

func showWakaTime(path string) error {
	var digest activity.Digest
	var err error

	if flagNoCache {
		digest, err = activity.ParseWakaTime(path, !flagQuiet)
	} else {
		var cache *store.Cache
		cache, err = store.Open(cachePath())
		if err != nil {
			// A broken cache should not block the report.
			fmt.Fprintf(os.Stderr, "  Cache unavailable (%v), reparsing\n", err)
			digest, err = activity.ParseWakaTime(path, !flagQuiet)
		} else {
			defer cache.Close()
			digest, err = activity.LoadWakaTime(path, cache, !flagQuiet)
		}
	}
	if err != nil {
		return fmt.Errorf("wakatime: %w", err)
	}

	fmt.Println()
	fmt.Println(cli.RenderTitle("CODING ACTIVITY"))
	fmt.Println()
	fmt.Printf("  %s active over %d days\n", cli.FormatHours(digest.TotalHours()), len(digest.Daily))
	if hour, ok := digest.PeakHourOverall(); ok {
		fmt.Printf("  Most active hour: %02d:00\n", hour)
	}
	fmt.Println()

	rows := make([][]string, 0, 7)
	for wd := time.Sunday; wd <= time.Saturday; wd++ {
		peak := "—"
		if hour, ok := digest.PeakHour(wd); ok {
			peak = fmt.Sprintf("%02d:00", hour)
		}
		var total int64
		for _, secs := range digest.HourTotals[wd] {
			total += secs
		}
		rows = append(rows, []string{
			cli.FormatDayOfWeek(wd),
			peak,
			cli.FormatHours(float64(total) / 3600),
		})
	}
	fmt.Print(cli.RenderTable(cli.Table{
		Headers: []string{"Day", "Peak hour", "Total"},
		Rows:    rows,
	}))

	if avg := digest.MovingAverage(28); len(avg) > 1 {
		fmt.Printf("\n  28-day average: %s\n", cli.RenderSparkline(avg))
	}
	fmt.Println()
	return nil
}

func showLastFM(path string) error {
	scrobbles, err := activity.ParseLastFM(path)
	if err != nil {
		return fmt.Errorf("lastfm: %w", err)
	}

	fmt.Println()
	fmt.Println(cli.RenderTitle("LISTENING ACTIVITY"))
	fmt.Println()
	fmt.Printf("  %s scrobbles over %d days\n", cli.FormatNumber(int64(scrobbles.Total)), len(scrobbles.Daily))
	if scrobbles.TopArtist != "" {
		fmt.Printf("  Top artist: %s\n", scrobbles.TopArtist)
	}
	if scrobbles.TopTrack != "" {
		fmt.Printf("  Top track:  %s\n", scrobbles.TopTrack)
	}

	if len(scrobbles.Daily) > 1 {
		counts := make([]float64, len(scrobbles.Daily))
		for i, d := range scrobbles.Daily {
			counts[i] = float64(d.Count)
		}
		fmt.Printf("\n  Daily: %s\n", cli.RenderSparkline(counts))
	}
	fmt.Println()
	return nil
}
