package pipeline

import (
	"math"
	"testing"
	"time"

	"github.com/simonSlamka/wolter/internal/cycle"
	"github.com/simonSlamka/wolter/internal/model"
	"github.com/simonSlamka/wolter/internal/tax"
)

func mustDate(t *testing.T, s string) time.Time {
	t.Helper()
	d, err := time.ParseInLocation("2006-01-02", s, time.Local)
	if err != nil {
		t.Fatalf("parse date %q: %v", s, err)
	}
	return d
}

func rec(t *testing.T, date, hour string, amount float64) model.Record {
	t.Helper()
	return model.Record{Date: mustDate(t, date), Hour: hour, Amount: amount}
}

func TestDailyAggregates_ZeroFillsGaps(t *testing.T) {
	records := []model.Record{
		rec(t, "2024-02-03", "18", 40),
		rec(t, "2024-02-03", "19", 20),
		rec(t, "2024-02-06", "18", 60),
	}
	dailies := DailyAggregates(records, mustDate(t, "2024-02-08"))

	if len(dailies) != 6 {
		t.Fatalf("len = %d, want 6 (Feb 3 through Feb 8)", len(dailies))
	}
	for i := 1; i < len(dailies); i++ {
		if got := dailies[i].Date.Sub(dailies[i-1].Date); got != 24*time.Hour {
			t.Fatalf("gap between rows %d and %d is %v, want 24h", i-1, i, got)
		}
	}
	if dailies[0].Total != 60 || dailies[0].HourSlots != 2 {
		t.Errorf("Feb 3 = {%.0f, %d slots}, want {60, 2}", dailies[0].Total, dailies[0].HourSlots)
	}
	if dailies[1].Total != 0 || dailies[1].HourSlots != 0 {
		t.Errorf("Feb 4 = {%.0f, %d slots}, want zero row", dailies[1].Total, dailies[1].HourSlots)
	}
	if dailies[3].Total != 60 {
		t.Errorf("Feb 6 total = %.0f, want 60", dailies[3].Total)
	}
}

func TestDailyAggregates_EmptyInput(t *testing.T) {
	if got := DailyAggregates(nil, time.Now()); got != nil {
		t.Fatalf("DailyAggregates(nil) = %v, want nil", got)
	}
}

func TestDailyAggregates_TotalMatchesRecordSum(t *testing.T) {
	records := []model.Record{
		rec(t, "2024-02-01", "9", 15),
		rec(t, "2024-02-10", "18", 40),
		rec(t, "2024-02-10", "19", 25),
		rec(t, "2024-02-20", "20", 80),
	}
	dailies := DailyAggregates(records, mustDate(t, "2024-02-25"))

	var fromDailies, fromRecords float64
	for _, d := range dailies {
		fromDailies += d.Total
	}
	for _, r := range records {
		fromRecords += r.Amount
	}
	if math.Abs(fromDailies-fromRecords) > 1e-9 {
		t.Fatalf("dailies sum %.2f != records sum %.2f", fromDailies, fromRecords)
	}
}

func TestBuildCycleSummary(t *testing.T) {
	records := []model.Record{
		rec(t, "2024-02-03", "18", 40),
		rec(t, "2024-02-03", "19", 20),
		rec(t, "2024-02-10", "18", 60),
		rec(t, "2024-02-20", "18", 999), // next cycle, must not leak in
	}
	dailies := DailyAggregates(records, mustDate(t, "2024-02-25"))
	c := cycle.Cycle{Year: 2024, Month: time.February, Index: 1}

	s := BuildCycleSummary(dailies, c, tax.DefaultPolicy(), 3000)
	if s.Gross != 120 {
		t.Errorf("gross = %.0f, want 120", s.Gross)
	}
	if s.TaxOwed != 0 || s.Net != 120 {
		t.Errorf("tax = %.0f net = %.0f, want 0 and 120 under the exemption", s.TaxOwed, s.Net)
	}
	if s.DaysWorked != 2 {
		t.Errorf("days worked = %d, want 2", s.DaysWorked)
	}
	if s.MeanPerDay == nil || *s.MeanPerDay != 60 {
		t.Errorf("mean/day = %v, want 60", s.MeanPerDay)
	}
	if s.MeanPerSlot == nil || *s.MeanPerSlot != 40 {
		t.Errorf("mean/slot = %v, want 40 (120 over 3 slots)", s.MeanPerSlot)
	}
}

func TestBuildCycleSummary_NoDataMeansAreNil(t *testing.T) {
	c := cycle.Cycle{Year: 2024, Month: time.March, Index: 1}
	s := BuildCycleSummary(nil, c, tax.DefaultPolicy(), 0)
	if s.Gross != 0 || s.DaysWorked != 0 {
		t.Fatalf("empty cycle summary = %+v, want zeros", s)
	}
	if s.MeanPerDay != nil || s.MeanPerSlot != nil {
		t.Fatal("means should be nil with no worked days, not zero")
	}
}

func TestBuildCycleSummary_Idempotent(t *testing.T) {
	records := []model.Record{
		rec(t, "2024-02-03", "18", 40),
		rec(t, "2024-02-10", "18", 60),
	}
	dailies := DailyAggregates(records, mustDate(t, "2024-02-15"))
	c := cycle.Of(mustDate(t, "2024-02-03"))

	first := BuildCycleSummary(dailies, c, tax.DefaultPolicy(), 8000)
	second := BuildCycleSummary(dailies, c, tax.DefaultPolicy(), 8000)
	if first.Gross != second.Gross || first.TaxOwed != second.TaxOwed || first.Net != second.Net {
		t.Fatalf("rebuild changed the summary: %+v vs %+v", first, second)
	}
}

func TestSlotAverages(t *testing.T) {
	// Both Feb 2 and Feb 9 2024 are Fridays.
	records := []model.Record{
		rec(t, "2024-02-02", "18", 40),
		rec(t, "2024-02-09", "18", 60),
		rec(t, "2024-02-02", "19", 30),
	}
	avgs := SlotAverages(records)

	got, ok := avgs[model.SlotKey{Weekday: time.Friday, Hour: "18"}]
	if !ok || got != 50 {
		t.Errorf("Friday/18 average = %.0f (ok=%v), want 50", got, ok)
	}
	if _, ok := avgs[model.SlotKey{Weekday: time.Monday, Hour: "18"}]; ok {
		t.Error("unobserved Monday/18 present in averages, want absent")
	}
	if len(avgs) != 2 {
		t.Errorf("len(avgs) = %d, want 2", len(avgs))
	}
}

func TestYearToDateGross(t *testing.T) {
	records := []model.Record{
		rec(t, "2023-12-31", "18", 500), // prior year
		rec(t, "2024-01-10", "18", 100),
		rec(t, "2024-02-03", "18", 40),
		rec(t, "2024-03-01", "18", 999), // after asOf
	}
	got := YearToDateGross(records, mustDate(t, "2024-02-15"))
	if got != 140 {
		t.Fatalf("YTD gross = %.0f, want 140", got)
	}
}

func TestCyclesOf_SortedDistinct(t *testing.T) {
	records := []model.Record{
		rec(t, "2024-02-20", "18", 1),
		rec(t, "2024-01-05", "18", 1),
		rec(t, "2024-02-03", "18", 1),
		rec(t, "2024-02-10", "18", 1), // same cycle as Feb 3
	}
	cycles := CyclesOf(records)
	want := []cycle.Cycle{
		{Year: 2024, Month: time.January, Index: 1},
		{Year: 2024, Month: time.February, Index: 1},
		{Year: 2024, Month: time.February, Index: 2},
	}
	if len(cycles) != len(want) {
		t.Fatalf("cycles = %v, want %v", cycles, want)
	}
	for i := range want {
		if cycles[i] != want[i] {
			t.Errorf("cycles[%d] = %v, want %v", i, cycles[i], want[i])
		}
	}
}

func TestBestSlot(t *testing.T) {
	if _, _, ok := BestSlot(nil); ok {
		t.Fatal("BestSlot(nil) reported ok")
	}
	avgs := map[model.SlotKey]float64{
		{Weekday: time.Friday, Hour: "18"}:   50,
		{Weekday: time.Saturday, Hour: "20"}: 75,
	}
	key, avg, ok := BestSlot(avgs)
	if !ok || avg != 75 || key.Weekday != time.Saturday || key.Hour != "20" {
		t.Fatalf("BestSlot = %v %.0f %v, want Saturday/20 at 75", key, avg, ok)
	}
}
