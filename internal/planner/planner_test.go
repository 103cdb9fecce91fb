package planner

import (
	"testing"
	"time"

	"github.com/simonSlamka/wolter/internal/cycle"
	"github.com/simonSlamka/wolter/internal/model"
)

func mustDate(t *testing.T, s string) time.Time {
	t.Helper()
	d, err := time.ParseInLocation("2006-01-02", s, time.Local)
	if err != nil {
		t.Fatalf("parse date %q: %v", s, err)
	}
	return d
}

// February 2024, cycle 1: Fridays are the 2nd and 9th, Saturdays the
// 3rd and 10th.
var testCycle = cycle.Cycle{Year: 2024, Month: time.February, Index: 1}

func TestBuild_TargetAlreadyMet(t *testing.T) {
	avgs := map[model.SlotKey]float64{
		{Weekday: time.Friday, Hour: "18"}: 50,
	}
	p := Build(avgs, testCycle, 100, 120, mustDate(t, "2024-02-01"), DefaultWindows())
	if len(p.Assigned) != 0 {
		t.Errorf("assigned %d slots with target already met, want 0", len(p.Assigned))
	}
	if p.Shortfall != 0 {
		t.Errorf("shortfall = %.0f, want 0", p.Shortfall)
	}
}

func TestBuild_StopsAtFirstSufficientSlot(t *testing.T) {
	avgs := map[model.SlotKey]float64{
		{Weekday: time.Friday, Hour: "17"}: 120,
		{Weekday: time.Friday, Hour: "18"}: 80,
	}
	p := Build(avgs, testCycle, 100, 0, mustDate(t, "2024-02-01"), DefaultWindows())
	if len(p.Assigned) != 1 {
		t.Fatalf("assigned = %d slots, want 1 (first slot covers the target)", len(p.Assigned))
	}
	a := p.Assigned[0]
	if a.Hour != "17" || a.Expected != 120 {
		t.Errorf("assigned %s at %.0f, want hour 17 at 120", a.Hour, a.Expected)
	}
	if a.Date.Weekday() != time.Friday {
		t.Errorf("assigned on %s, want Friday", a.Date.Weekday())
	}
	if p.Shortfall != 0 {
		t.Errorf("shortfall = %.0f, want 0", p.Shortfall)
	}
}

func TestBuild_PeakPassRunsFirst(t *testing.T) {
	// The off-peak Monday slot is worth far more, but peak days are
	// walked first and already cover the target.
	avgs := map[model.SlotKey]float64{
		{Weekday: time.Monday, Hour: "10"}: 500,
		{Weekday: time.Friday, Hour: "20"}: 60,
	}
	p := Build(avgs, testCycle, 50, 0, mustDate(t, "2024-02-01"), DefaultWindows())
	if len(p.Assigned) != 1 || p.Assigned[0].Date.Weekday() != time.Friday {
		t.Fatalf("plan = %+v, want the single Friday peak slot", p.Assigned)
	}
}

func TestBuild_FallsThroughToOffPeak(t *testing.T) {
	avgs := map[model.SlotKey]float64{
		{Weekday: time.Friday, Hour: "18"}: 30,
		{Weekday: time.Monday, Hour: "10"}: 30,
	}
	// Two Fridays x 30 leaves 40 of the target for off-peak Mondays.
	p := Build(avgs, testCycle, 100, 0, mustDate(t, "2024-02-01"), DefaultWindows())
	if p.Shortfall != 0 {
		t.Fatalf("shortfall = %.0f, want 0", p.Shortfall)
	}
	var fridays, mondays int
	for _, a := range p.Assigned {
		switch a.Date.Weekday() {
		case time.Friday:
			fridays++
		case time.Monday:
			mondays++
		default:
			t.Fatalf("assigned on unexpected weekday %s", a.Date.Weekday())
		}
	}
	if fridays != 2 || mondays != 2 {
		t.Errorf("assigned %d Fridays and %d Mondays, want 2 and 2", fridays, mondays)
	}
}

func TestBuild_ShortfallWhenSlotsRunOut(t *testing.T) {
	avgs := map[model.SlotKey]float64{
		{Weekday: time.Saturday, Hour: "20"}: 25,
	}
	// Two Saturdays in the cycle: 50 expected against a target of 200.
	p := Build(avgs, testCycle, 200, 0, mustDate(t, "2024-02-01"), DefaultWindows())
	if len(p.Assigned) != 2 {
		t.Fatalf("assigned = %d, want 2", len(p.Assigned))
	}
	if p.Shortfall != 150 {
		t.Errorf("shortfall = %.0f, want 150", p.Shortfall)
	}
	if got := p.Expected(); got != 50 {
		t.Errorf("expected sum = %.0f, want 50", got)
	}
}

func TestBuild_NoHistoryMeansNoAssignments(t *testing.T) {
	p := Build(nil, testCycle, 100, 0, mustDate(t, "2024-02-01"), DefaultWindows())
	if len(p.Assigned) != 0 {
		t.Errorf("assigned %d slots with no slot history, want 0", len(p.Assigned))
	}
	if p.Shortfall != 100 {
		t.Errorf("shortfall = %.0f, want the full target", p.Shortfall)
	}
}

func TestBuild_FromClampsToCycleStart(t *testing.T) {
	avgs := map[model.SlotKey]float64{
		{Weekday: time.Friday, Hour: "18"}: 10,
	}
	// `from` before the cycle starts is clamped, not an error.
	p := Build(avgs, testCycle, 1000, 0, mustDate(t, "2024-01-20"), DefaultWindows())
	for _, a := range p.Assigned {
		if !testCycle.Contains(a.Date) {
			t.Fatalf("assignment on %s falls outside the cycle", a.Date.Format("2006-01-02"))
		}
	}
}

func TestBuild_RespectsFromDate(t *testing.T) {
	avgs := map[model.SlotKey]float64{
		{Weekday: time.Friday, Hour: "18"}: 10,
	}
	from := mustDate(t, "2024-02-05") // past the first Friday
	p := Build(avgs, testCycle, 1000, 0, from, DefaultWindows())
	for _, a := range p.Assigned {
		if a.Date.Before(from) {
			t.Fatalf("assignment on %s precedes the start date", a.Date.Format("2006-01-02"))
		}
	}
	if len(p.Assigned) != 1 {
		t.Errorf("assigned = %d, want 1 (only Feb 9 remains)", len(p.Assigned))
	}
}
