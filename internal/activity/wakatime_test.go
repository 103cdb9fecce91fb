package activity

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func writeExport(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "wakatime.json")
	if err := os.WriteFile(path, []byte(body), 0o600); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestParseWakaTime_BlockRules(t *testing.T) {
	// One block with a single heartbeat (1 min), one block with three
	// heartbeats (15 min), and a duplicate timestamp that must collapse.
	export := `{"days": [{"date": "2024-02-03", "heartbeats": [
		{"created_at": "2024-02-03T10:02:00Z"},
		{"created_at": "2024-02-03T11:00:10Z"},
		{"created_at": "2024-02-03T11:00:10Z"},
		{"created_at": "2024-02-03T11:07:30Z"},
		{"created_at": "2024-02-03T11:14:59Z"}
	]}]}`
	d, err := ParseWakaTime(writeExport(t, export), false)
	if err != nil {
		t.Fatalf("ParseWakaTime: %v", err)
	}

	want := int64(60 + 900)
	if d.TotalSecs != want {
		t.Fatalf("TotalSecs = %d, want %d", d.TotalSecs, want)
	}
	if len(d.Daily) != 1 {
		t.Fatalf("daily rows = %d, want 1", len(d.Daily))
	}
	// 2024-02-03 is a Saturday.
	if got := d.HourTotals[time.Saturday][10]; got != 60 {
		t.Errorf("Saturday 10h = %d secs, want 60", got)
	}
	if got := d.HourTotals[time.Saturday][11]; got != 900 {
		t.Errorf("Saturday 11h = %d secs, want 900", got)
	}
}

func TestParseWakaTime_SkipsMalformedHeartbeats(t *testing.T) {
	export := `{"days": [{"date": "2024-02-03", "heartbeats": [
		{"created_at": "not-a-time"},
		{"created_at": "2024-02-03T10:02:00Z"}
	]}]}`
	d, err := ParseWakaTime(writeExport(t, export), false)
	if err != nil {
		t.Fatalf("ParseWakaTime: %v", err)
	}
	if d.TotalSecs != 60 {
		t.Fatalf("TotalSecs = %d, want 60 (bad heartbeat skipped)", d.TotalSecs)
	}
}

func TestParseWakaTime_FillsGapDays(t *testing.T) {
	export := `{"days": [
		{"date": "2024-02-03", "heartbeats": [{"created_at": "2024-02-03T10:02:00Z"}]},
		{"date": "2024-02-06", "heartbeats": [{"created_at": "2024-02-06T10:02:00Z"}]}
	]}`
	d, err := ParseWakaTime(writeExport(t, export), false)
	if err != nil {
		t.Fatalf("ParseWakaTime: %v", err)
	}
	if len(d.Daily) != 4 {
		t.Fatalf("daily rows = %d, want 4 (Feb 3 through Feb 6)", len(d.Daily))
	}
	if d.Daily[1].Hours != 0 || d.Daily[2].Hours != 0 {
		t.Errorf("gap days = %.2f, %.2f hours, want zero rows", d.Daily[1].Hours, d.Daily[2].Hours)
	}
}

func TestDigest_PeakHour(t *testing.T) {
	var d Digest
	d.HourTotals[time.Friday][18] = 3600
	d.HourTotals[time.Friday][20] = 7200
	d.HourTotals[time.Monday][9] = 1800

	hour, ok := d.PeakHour(time.Friday)
	if !ok || hour != 20 {
		t.Errorf("PeakHour(Friday) = %d, %v, want 20, true", hour, ok)
	}
	if _, ok := d.PeakHour(time.Sunday); ok {
		t.Error("PeakHour(Sunday) reported ok with no activity")
	}
	hour, ok = d.PeakHourOverall()
	if !ok || hour != 20 {
		t.Errorf("PeakHourOverall = %d, %v, want 20, true", hour, ok)
	}
}

func TestDigest_MovingAverage(t *testing.T) {
	d := Digest{Daily: []DayHours{
		{Hours: 2}, {Hours: 4}, {Hours: 6}, {Hours: 8},
	}}
	got := d.MovingAverage(2)
	want := []float64{2, 3, 5, 7}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("MovingAverage[%d] = %.1f, want %.1f", i, got[i], want[i])
		}
	}
}
