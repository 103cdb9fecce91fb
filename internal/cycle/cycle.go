// Package cycle maps calendar dates to bi-monthly pay cycles.
//
// Every month splits into exactly two cycles: days 1-15 and day 16 through
// the last day of the month. Cycles are never stored, always derived.
package cycle

import (
	"fmt"
	"time"
)

// Cycle is one half-month accounting period.
type Cycle struct {
	Year  int
	Month time.Month
	Index int // 1 = days 1-15, 2 = day 16 to end of month
}

// splitDay is the last day of the first cycle of any month.
const splitDay = 15

// Of returns the cycle enclosing the given date. Total over all valid dates.
func Of(date time.Time) Cycle {
	c := Cycle{Year: date.Year(), Month: date.Month(), Index: 1}
	if date.Day() > splitDay {
		c.Index = 2
	}
	return c
}

// Bounds returns the inclusive start and end dates of the cycle. The end of
// cycle 2 is the last day of the month, leap years included.
func (c Cycle) Bounds() (start, end time.Time) {
	if c.Index == 1 {
		start = time.Date(c.Year, c.Month, 1, 0, 0, 0, 0, time.Local)
		end = time.Date(c.Year, c.Month, splitDay, 0, 0, 0, 0, time.Local)
		return start, end
	}
	start = time.Date(c.Year, c.Month, splitDay+1, 0, 0, 0, 0, time.Local)
	// Day 0 of the next month is the last day of this one. The month is
	// constructed from components, never by adding a month to day 16.
	end = time.Date(c.Year, c.Month+1, 0, 0, 0, 0, 0, time.Local)
	return start, end
}

// Payout returns the date the cycle's earnings are paid out: day 25 of the
// same month for cycle 1, day 10 of the following month for cycle 2
// (wrapping the year at December).
func (c Cycle) Payout() time.Time {
	if c.Index == 1 {
		return time.Date(c.Year, c.Month, 25, 0, 0, 0, 0, time.Local)
	}
	year, month := c.Year, c.Month+1
	if month > time.December {
		year++
		month = time.January
	}
	return time.Date(year, month, 10, 0, 0, 0, 0, time.Local)
}

// Next returns the cycle immediately following this one.
func (c Cycle) Next() Cycle {
	if c.Index == 1 {
		return Cycle{Year: c.Year, Month: c.Month, Index: 2}
	}
	year, month := c.Year, c.Month+1
	if month > time.December {
		year++
		month = time.January
	}
	return Cycle{Year: year, Month: month, Index: 1}
}

// Contains reports whether the date falls inside the cycle's range.
func (c Cycle) Contains(date time.Time) bool {
	start, end := c.Bounds()
	d := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, time.Local)
	return !d.Before(start) && !d.After(end)
}

// Days returns every day of the cycle in chronological order.
func (c Cycle) Days() []time.Time {
	start, end := c.Bounds()
	var days []time.Time
	for d := start; !d.After(end); d = d.AddDate(0, 0, 1) {
		days = append(days, d)
	}
	return days
}

// String renders the cycle as e.g. "2024-02/1".
func (c Cycle) String() string {
	return fmt.Sprintf("%04d-%02d/%d", c.Year, c.Month, c.Index)
}
