package activity

import (
	"encoding/csv"
	"fmt"
	"os"
	"sort"
	"time"
)

// Scrobbles holds derived listening statistics from a Last.fm export.
type Scrobbles struct {
	Total     int
	TopArtist string
	TopTrack  string
	Daily     []DayCount
}

// DayCount is one day's scrobble count.
type DayCount struct {
	Date  time.Time
	Count int
}

// Last.fm CSV exports carry no header; columns are positional:
// artist, album, track, timestamp.
const (
	colArtist = 0
	colTrack  = 2
	colDate   = 3
)

// ParseLastFM reads a Last.fm scrobble export CSV.
func ParseLastFM(path string) (Scrobbles, error) {
	f, err := os.Open(path) //nolint:gosec // path comes from config
	if err != nil {
		return Scrobbles{}, fmt.Errorf("opening lastfm export: %w", err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1
	rows, err := r.ReadAll()
	if err != nil {
		return Scrobbles{}, fmt.Errorf("reading lastfm export: %w", err)
	}

	var s Scrobbles
	artistCounts := make(map[string]int)
	trackCounts := make(map[string]int)
	dayCounts := make(map[time.Time]int)

	for _, row := range rows {
		if len(row) <= colDate {
			continue
		}
		s.Total++
		artistCounts[row[colArtist]]++
		trackCounts[row[colTrack]]++
		if t, err := parseScrobbleTime(row[colDate]); err == nil {
			day := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
			dayCounts[day]++
		}
	}

	s.TopArtist = topKey(artistCounts)
	s.TopTrack = topKey(trackCounts)

	for day, count := range dayCounts {
		s.Daily = append(s.Daily, DayCount{Date: day, Count: count})
	}
	sort.Slice(s.Daily, func(i, j int) bool { return s.Daily[i].Date.Before(s.Daily[j].Date) })

	return s, nil
}

func parseScrobbleTime(s string) (time.Time, error) {
	for _, layout := range []string{"02 Jan 2006 15:04", time.RFC3339, "2006-01-02 15:04:05"} {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognized scrobble time %q", s)
}

func topKey(counts map[string]int) string {
	best, bestCount := "", 0
	for key, count := range counts {
		if count > bestCount || (count == bestCount && key < best) {
			best, bestCount = key, count
		}
	}
	return best
}
