package cmd

import (
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/spf13/cobra"

	"github.com/simonSlamka/wolter/internal/cli"
	"github.com/simonSlamka/wolter/internal/cycle"
	"github.com/simonSlamka/wolter/internal/forecast"
	"github.com/simonSlamka/wolter/internal/model"
)

var flagForecastCurrent bool

var forecastCmd = &cobra.Command{
	Use:   "forecast",
	Short: "Predict gross earnings for the next cycle",
	Long:  "Fit several regression models over the daily history and average their cycle totals. Models straying far from the mean are flagged, not trusted.",
	RunE:  runForecast,
}

func init() {
	forecastCmd.Flags().BoolVar(&flagForecastCurrent, "current", false, "Forecast the current cycle instead of the next one")
	rootCmd.AddCommand(forecastCmd)
}

func runForecast(_ *cobra.Command, _ []string) error {
	_, _, dailies, err := loadState()
	if err != nil {
		return err
	}

	target := cycle.Of(time.Now())
	if !flagForecastCurrent {
		target = target.Next()
	}

	f, err := forecast.PredictCycle(dailies, target)
	if err != nil {
		if errors.Is(err, model.ErrInsufficientData) {
			fmt.Println("\n  Not enough history to forecast. Log some hours first.")
			return nil
		}
		return err
	}

	start, end := target.Bounds()

	fmt.Println()
	fmt.Println(cli.RenderTitle(fmt.Sprintf("FORECAST  %s", target)))
	fmt.Println()
	fmt.Printf("  %s — %s, payout %s\n\n",
		start.Format("Jan 2"), end.Format("Jan 2"), target.Payout().Format("Jan 2"))

	names := make([]string, 0, len(f.ModelTotals))
	for name := range f.ModelTotals {
		names = append(names, name)
	}
	sort.Strings(names)

	rows := make([][]string, 0, len(names)+2)
	for _, name := range names {
		marker := ""
		if f.Disagrees(name) {
			marker = "⚠ disagrees"
		}
		rows = append(rows, []string{name, cli.FormatMoney(f.ModelTotals[name]), marker})
	}
	rows = append(rows, []string{"---"})
	rows = append(rows, []string{"mean", cli.FormatMoney(f.PredictedGross), ""})

	fmt.Print(cli.RenderTable(cli.Table{
		Headers: []string{"Model", "Cycle total", ""},
		Rows:    rows,
	}))

	if len(f.Disagreement) > 0 {
		fmt.Printf("\n  %s\n", cli.WarnStyle.Render(
			fmt.Sprintf("%d model(s) disagree with the mean — treat this forecast with care", len(f.Disagreement))))
	}
	fmt.Println()
	return nil
}
