// Package pipeline rolls raw earnings records into the per-day, per-cycle,
// and per-slot summaries every report is built on.
package pipeline

import (
	"sort"
	"time"

	"github.com/simonSlamka/wolter/internal/cycle"
	"github.com/simonSlamka/wolter/internal/model"
	"github.com/simonSlamka/wolter/internal/tax"
)

// CycleSummary holds the tax-adjusted accounting for one pay cycle.
// MeanPerDay and MeanPerSlot are nil when the cycle has no worked days or
// slots — "no data", not zero.
type CycleSummary struct {
	Cycle       cycle.Cycle
	Gross       float64
	TaxOwed     float64
	Net         float64
	DaysWorked  int
	MeanPerDay  *float64
	MeanPerSlot *float64
}

// DailyAggregates rolls records into one row per day over the closed range
// [first record date, asOf], zero-filling days with no records so the date
// axis is contiguous and monotonic.
func DailyAggregates(records []model.Record, asOf time.Time) []model.DailyAggregate {
	if len(records) == 0 {
		return nil
	}

	type dayAgg struct {
		total float64
		slots map[string]struct{}
	}
	dayMap := make(map[string]*dayAgg)

	first := records[0].Day()
	for _, rec := range records {
		day := rec.Day()
		if day.Before(first) {
			first = day
		}
		key := day.Format("2006-01-02")
		da, ok := dayMap[key]
		if !ok {
			da = &dayAgg{slots: make(map[string]struct{})}
			dayMap[key] = da
		}
		da.total += rec.Amount
		da.slots[rec.Hour] = struct{}{}
	}

	end := time.Date(asOf.Year(), asOf.Month(), asOf.Day(), 0, 0, 0, 0, time.Local)
	if end.Before(first) {
		end = first
	}

	var out []model.DailyAggregate
	for day := first; !day.After(end); day = day.AddDate(0, 0, 1) {
		row := model.DailyAggregate{Date: day}
		if da, ok := dayMap[day.Format("2006-01-02")]; ok {
			row.Total = da.total
			row.HourSlots = len(da.slots)
		}
		out = append(out, row)
	}
	return out
}

// BuildCycleSummary filters daily aggregates to the cycle's range and runs
// the gross sum through the tax policy. yearToDateGross is recomputed by
// the caller from the full record history on every run.
func BuildCycleSummary(dailies []model.DailyAggregate, c cycle.Cycle, policy tax.Policy, yearToDateGross float64) CycleSummary {
	s := CycleSummary{Cycle: c}

	slots := 0
	for _, d := range dailies {
		if !c.Contains(d.Date) {
			continue
		}
		s.Gross += d.Total
		slots += d.HourSlots
		if d.Total > 0 {
			s.DaysWorked++
		}
	}

	s.Net, s.TaxOwed = policy.Compute(s.Gross, yearToDateGross)

	if s.DaysWorked > 0 {
		mean := s.Gross / float64(s.DaysWorked)
		s.MeanPerDay = &mean
	}
	if slots > 0 {
		mean := s.Gross / float64(slots)
		s.MeanPerSlot = &mean
	}
	return s
}

// SlotAverages computes the historical mean amount for every observed
// (weekday, hour-slot) pair. Slots never observed on a weekday are absent
// from the map: an unseen slot has no expectation and must not be
// scheduled, which is different from expecting zero.
func SlotAverages(records []model.Record) map[model.SlotKey]float64 {
	sums := make(map[model.SlotKey]float64)
	counts := make(map[model.SlotKey]int)
	for _, rec := range records {
		key := model.SlotKey{Weekday: rec.Date.Weekday(), Hour: rec.Hour}
		sums[key] += rec.Amount
		counts[key]++
	}

	avgs := make(map[model.SlotKey]float64, len(sums))
	for key, sum := range sums {
		avgs[key] = sum / float64(counts[key])
	}
	return avgs
}

// YearToDateGross sums all amounts recorded in asOf's calendar year, up to
// and including asOf.
func YearToDateGross(records []model.Record, asOf time.Time) float64 {
	end := time.Date(asOf.Year(), asOf.Month(), asOf.Day(), 0, 0, 0, 0, time.Local)
	var total float64
	for _, rec := range records {
		day := rec.Day()
		if day.Year() == asOf.Year() && !day.After(end) {
			total += rec.Amount
		}
	}
	return total
}

// CyclesOf returns the distinct cycles touched by the records, oldest first.
func CyclesOf(records []model.Record) []cycle.Cycle {
	seen := make(map[cycle.Cycle]struct{})
	var cycles []cycle.Cycle
	for _, rec := range records {
		c := cycle.Of(rec.Date)
		if _, ok := seen[c]; ok {
			continue
		}
		seen[c] = struct{}{}
		cycles = append(cycles, c)
	}
	sort.Slice(cycles, func(i, j int) bool {
		a, _ := cycles[i].Bounds()
		b, _ := cycles[j].Bounds()
		return a.Before(b)
	})
	return cycles
}

// BestSlot returns the slot with the highest historical mean, mirroring the
// original "best hour to work" suggestion. ok is false with no history.
func BestSlot(avgs map[model.SlotKey]float64) (model.SlotKey, float64, bool) {
	var best model.SlotKey
	bestAvg := -1.0
	for key, avg := range avgs {
		if avg > bestAvg {
			best, bestAvg = key, avg
		}
	}
	if bestAvg < 0 {
		return model.SlotKey{}, 0, false
	}
	return best, bestAvg, true
}
