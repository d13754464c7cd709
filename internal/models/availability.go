package models

import "time"

// AvailabilitySlot is a caregiver-declared window of free time on a calendar
// date. Hours run 0-24 with half-hour granularity and StartHour < EndHour.
// Slots for the same date may overlap; canonicalization is a read-side step.
type AvailabilitySlot struct {
	ID        string    `db:"id" json:"id"`
	WorkerID  string    `db:"worker_id" json:"worker_id"`
	Date      string    `db:"slot_date" json:"date"`
	StartHour float64   `db:"start_hour" json:"start_hour"`
	EndHour   float64   `db:"end_hour" json:"end_hour"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
}

// TimeRange is a bare (start, end) hour pair.
type TimeRange struct {
	Start float64 `json:"start"`
	End   float64 `json:"end"`
}

// DayAvailability is the ordered slot list for one date.
type DayAvailability struct {
	Date  string      `json:"date"`
	Slots []TimeRange `json:"slots"`
}

// DaySelection is what the availability editor shows after picking a day:
// the day's existing slots plus the proposed editing range.
type DaySelection struct {
	Date         string      `json:"date"`
	Slots        []TimeRange `json:"slots"`
	EditingRange TimeRange   `json:"editing_range"`
}
