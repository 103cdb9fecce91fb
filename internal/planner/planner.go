// Package planner greedily allocates projected earnings across future
// (date, hour-slot) pairs until a cycle target is met or slots run out.
package planner

import (
	"strconv"
	"time"

	"github.com/simonSlamka/wolter/internal/cycle"
	"github.com/simonSlamka/wolter/internal/model"
)

// Assignment is one proposed work slot and its expected amount, taken from
// the historical slot average.
type Assignment struct {
	Date     time.Time
	Hour     string
	Expected float64
}

// Plan is the result of one planning run. A positive Shortfall means the
// target is unreachable even after both passes; callers surface that as a
// warning, not an error.
type Plan struct {
	Target    float64
	Assigned  []Assignment
	Shortfall float64
}

// Expected returns the sum of expected amounts across assigned slots.
func (p Plan) Expected() float64 {
	var total float64
	for _, a := range p.Assigned {
		total += a.Expected
	}
	return total
}

// Windows configures which weekdays count as peak and which hour ranges
// each pass walks. Both hour ranges are inclusive.
type Windows struct {
	PeakDays     []time.Weekday
	PeakHours    [2]int
	OffPeakHours [2]int
}

// DefaultWindows: Friday/Saturday peaks (last two weekdays of a
// Monday-start week), evening peak hours, daytime off-peak hours.
func DefaultWindows() Windows {
	return Windows{
		PeakDays:     []time.Weekday{time.Friday, time.Saturday},
		PeakHours:    [2]int{17, 23},
		OffPeakHours: [2]int{9, 16},
	}
}

func (w Windows) isPeak(day time.Weekday) bool {
	for _, d := range w.PeakDays {
		if d == day {
			return true
		}
	}
	return false
}

// Build runs the two-pass greedy allocation over the remaining days of the
// cycle, from `from` (inclusive) to the cycle end.
//
// Pass 1 walks peak weekdays over the peak-hour range; pass 2 walks the
// remaining weekdays over the off-peak range, each date's hour loop
// independent of the previous pass. Within a pass the order is
// chronological then ascending hour, first found wins; the walk
// short-circuits the moment assigned expectations cover the remaining
// target. Only slots with a known positive historical average are eligible:
// an unseen slot has no expectation and is skipped entirely.
func Build(avgs map[model.SlotKey]float64, c cycle.Cycle, target, alreadyEarned float64, from time.Time, w Windows) Plan {
	p := Plan{Target: target}

	remaining := target - alreadyEarned
	if remaining <= 0 {
		return p
	}

	_, end := c.Bounds()
	start := time.Date(from.Year(), from.Month(), from.Day(), 0, 0, 0, 0, time.Local)
	if cStart, _ := c.Bounds(); start.Before(cStart) {
		start = cStart
	}

	assign := func(day time.Time, hour int) bool {
		label := strconv.Itoa(hour)
		avg, ok := avgs[model.SlotKey{Weekday: day.Weekday(), Hour: label}]
		if !ok || avg <= 0 {
			return false
		}
		p.Assigned = append(p.Assigned, Assignment{Date: day, Hour: label, Expected: avg})
		remaining -= avg
		return remaining <= 0
	}

	// Pass 1: peak days, peak hours.
	for day := start; !day.After(end); day = day.AddDate(0, 0, 1) {
		if !w.isPeak(day.Weekday()) {
			continue
		}
		for hour := w.PeakHours[0]; hour <= w.PeakHours[1]; hour++ {
			if assign(day, hour) {
				return p
			}
		}
	}

	// Pass 2: everything else, off-peak hours.
	for day := start; !day.After(end); day = day.AddDate(0, 0, 1) {
		if w.isPeak(day.Weekday()) {
			continue
		}
		for hour := w.OffPeakHours[0]; hour <= w.OffPeakHours[1]; hour++ {
			if assign(day, hour) {
				return p
			}
		}
	}

	p.Shortfall = remaining
	return p
}
