// Package model defines domain types for wolter earnings records and aggregates.
package model

import "time"

// Record is one confirmed work session: a date, an hour-slot label, and the
// gross amount earned in that slot. Records are immutable once appended.
type Record struct {
	Date   time.Time
	Hour   string
	Amount float64
}

// Day returns the record's date truncated to midnight local time.
func (r Record) Day() time.Time {
	return time.Date(r.Date.Year(), r.Date.Month(), r.Date.Day(), 0, 0, 0, 0, r.Date.Location())
}

// DailyAggregate holds the earnings total and distinct hour-slot count for
// one calendar day. The aggregator emits one row per day with zero-filled
// gaps, so a day with no records still appears with Total == 0.
type DailyAggregate struct {
	Date      time.Time
	Total     float64
	HourSlots int
}

// SlotKey identifies a (weekday, hour-slot) pair for historical averages.
type SlotKey struct {
	Weekday time.Weekday
	Hour    string
}
