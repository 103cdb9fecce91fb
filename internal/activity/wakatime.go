// Package activity derives coding-time and listening statistics from
// exported WakaTime heartbeats and Last.fm scrobbles.
package activity

import (
	"encoding/json"
	"fmt"
	"os"
	"sort"
	"time"

	"github.com/schollz/progressbar/v3"

	"github.com/simonSlamka/wolter/internal/store"
)

// blockSize is the dedup window: heartbeats landing in the same 15-minute
// block collapse into one.
const blockSize = 15 * time.Minute

// Digest holds derived coding-activity statistics.
type Digest struct {
	TotalSecs  int64
	Daily      []DayHours // contiguous ascending, zero-filled
	HourTotals [7][24]int64
}

// DayHours is one day's active coding time.
type DayHours struct {
	Date  time.Time
	Hours float64
}

// TotalHours returns the total active time in hours.
func (d Digest) TotalHours() float64 {
	return float64(d.TotalSecs) / 3600
}

// PeakHour returns the most active hour of day for a weekday; ok is false
// if the weekday has no recorded activity.
func (d Digest) PeakHour(day time.Weekday) (int, bool) {
	best, bestSecs := 0, int64(0)
	for h, secs := range d.HourTotals[day] {
		if secs > bestSecs {
			best, bestSecs = h, secs
		}
	}
	return best, bestSecs > 0
}

// PeakHourOverall returns the most active hour of day across all weekdays.
func (d Digest) PeakHourOverall() (int, bool) {
	totals := make([]int64, 24)
	for wd := range d.HourTotals {
		for h, secs := range d.HourTotals[wd] {
			totals[h] += secs
		}
	}
	best, bestSecs := 0, int64(0)
	for h, secs := range totals {
		if secs > bestSecs {
			best, bestSecs = h, secs
		}
	}
	return best, bestSecs > 0
}

// MovingAverage returns the trailing n-day mean of daily hours, aligned
// with Daily; the first n-1 entries carry the mean of what's available.
func (d Digest) MovingAverage(n int) []float64 {
	out := make([]float64, len(d.Daily))
	var window float64
	for i, day := range d.Daily {
		window += day.Hours
		if i >= n {
			window -= d.Daily[i-n].Hours
		}
		span := i + 1
		if span > n {
			span = n
		}
		out[i] = window / float64(span)
	}
	return out
}

// wakaExport mirrors the relevant slice of a WakaTime data export.
type wakaExport struct {
	Days []struct {
		Date       string `json:"date"`
		Heartbeats []struct {
			CreatedAt string `json:"created_at"`
		} `json:"heartbeats"`
	} `json:"days"`
}

// ParseWakaTime reads a WakaTime export and derives the activity digest.
//
// Heartbeats floor to 15-minute blocks; a block holding a single heartbeat
// counts one minute of activity, a block holding several counts the full
// fifteen, and duplicate blocks collapse. This mirrors how the export's
// one-minute pings approximate sustained activity.
func ParseWakaTime(path string, showProgress bool) (Digest, error) {
	data, err := os.ReadFile(path) //nolint:gosec // path comes from config
	if err != nil {
		return Digest{}, fmt.Errorf("reading wakatime export: %w", err)
	}

	var export wakaExport
	if err := json.Unmarshal(data, &export); err != nil {
		return Digest{}, fmt.Errorf("parsing wakatime export: %w", err)
	}

	var bar *progressbar.ProgressBar
	if showProgress {
		bar = progressbar.Default(int64(len(export.Days)), "parsing heartbeats")
	}

	blockCounts := make(map[time.Time]int)
	for _, day := range export.Days {
		for _, hb := range day.Heartbeats {
			t, err := time.Parse(time.RFC3339, hb.CreatedAt)
			if err != nil {
				continue // malformed heartbeat, skip
			}
			blockCounts[t.UTC().Truncate(blockSize)]++
		}
		if bar != nil {
			_ = bar.Add(1)
		}
	}

	var d Digest
	daySecs := make(map[time.Time]int64)
	for block, count := range blockCounts {
		secs := int64(60)
		if count > 1 {
			secs = int64(blockSize / time.Second)
		}
		d.TotalSecs += secs
		day := time.Date(block.Year(), block.Month(), block.Day(), 0, 0, 0, 0, time.UTC)
		daySecs[day] += secs
		d.HourTotals[block.Weekday()][block.Hour()] += secs
	}

	d.Daily = fillDaily(daySecs)
	return d, nil
}

// LoadWakaTime is ParseWakaTime behind the SQLite cache: the export is only
// reparsed when its mtime or size changed. A nil cache always parses.
func LoadWakaTime(path string, cache *store.Cache, showProgress bool) (Digest, error) {
	if cache == nil {
		return ParseWakaTime(path, showProgress)
	}

	fi, err := os.Stat(path)
	if err != nil {
		return Digest{}, fmt.Errorf("stat wakatime export: %w", err)
	}
	mtime, size := fi.ModTime().UnixNano(), fi.Size()

	if cache.Fresh(path, mtime, size) {
		days, hours, err := cache.LoadSource("wakatime")
		if err == nil {
			return digestFromRows(days, hours)
		}
		// cache read failed, fall through to a full parse
	}

	d, err := ParseWakaTime(path, showProgress)
	if err != nil {
		return Digest{}, err
	}
	if err := cache.SaveSource("wakatime", path, mtime, size, d.dayRows(), d.hourRows()); err != nil {
		return d, fmt.Errorf("caching wakatime digest: %w", err)
	}
	return d, nil
}

func (d Digest) dayRows() []store.DayRow {
	rows := make([]store.DayRow, 0, len(d.Daily))
	for _, day := range d.Daily {
		rows = append(rows, store.DayRow{
			Day:        day.Date.Format("2006-01-02"),
			ActiveSecs: int64(day.Hours * 3600),
		})
	}
	return rows
}

func (d Digest) hourRows() []store.HourRow {
	var rows []store.HourRow
	for wd := range d.HourTotals {
		for h, secs := range d.HourTotals[wd] {
			if secs == 0 {
				continue
			}
			rows = append(rows, store.HourRow{Weekday: wd, Hour: h, ActiveSecs: secs})
		}
	}
	return rows
}

func digestFromRows(days []store.DayRow, hours []store.HourRow) (Digest, error) {
	var d Digest
	daySecs := make(map[time.Time]int64, len(days))
	for _, row := range days {
		day, err := time.Parse("2006-01-02", row.Day)
		if err != nil {
			return Digest{}, fmt.Errorf("corrupt cache day %q: %w", row.Day, err)
		}
		daySecs[day] = row.ActiveSecs
		d.TotalSecs += row.ActiveSecs
	}
	for _, row := range hours {
		if row.Weekday < 0 || row.Weekday > 6 || row.Hour < 0 || row.Hour > 23 {
			continue
		}
		d.HourTotals[row.Weekday][row.Hour] = row.ActiveSecs
	}
	d.Daily = fillDaily(daySecs)
	return d, nil
}

// fillDaily turns a sparse day map into a contiguous zero-filled series.
func fillDaily(daySecs map[time.Time]int64) []DayHours {
	if len(daySecs) == 0 {
		return nil
	}
	days := make([]time.Time, 0, len(daySecs))
	for day := range daySecs {
		days = append(days, day)
	}
	sort.Slice(days, func(i, j int) bool { return days[i].Before(days[j]) })

	var out []DayHours
	for day := days[0]; !day.After(days[len(days)-1]); day = day.AddDate(0, 0, 1) {
		out = append(out, DayHours{
			Date:  day,
			Hours: float64(daySecs[day]) / 3600,
		})
	}
	return out
}
