package models

import "time"

// ShiftStatus is the lifecycle state of a shift.
type ShiftStatus string

const (
	ShiftScheduled  ShiftStatus = "scheduled"
	ShiftAvailable  ShiftStatus = "available"
	ShiftInProgress ShiftStatus = "in_progress"
	ShiftCompleted  ShiftStatus = "completed"
	ShiftCancelled  ShiftStatus = "cancelled"
)

// Shift is a scheduled unit of care work. Date is a plain YYYY-MM-DD calendar
// date; StartTime and EndTime are same-day wall-clock strings with StartTime
// preceding EndTime. Version guards concurrent accept/decline updates.
type Shift struct {
	ID         string      `db:"id" json:"id"`
	WorkerID   *string     `db:"worker_id" json:"worker_id,omitempty"`
	ClientName string      `db:"client_name" json:"client_name"`
	Location   string      `db:"location" json:"location"`
	Date       string      `db:"shift_date" json:"date"`
	StartTime  string      `db:"start_time" json:"start_time"`
	EndTime    string      `db:"end_time" json:"end_time"`
	Status     ShiftStatus `db:"status" json:"status"`
	JobTitle   *string     `db:"job_title" json:"job_title,omitempty"`
	PayAmount  *float64    `db:"pay_amount" json:"pay_amount,omitempty"`
	Notes      *string     `db:"notes" json:"notes,omitempty"`
	Version    int         `db:"version" json:"version"`
	CreatedAt  time.Time   `db:"created_at" json:"created_at"`
	UpdatedAt  time.Time   `db:"updated_at" json:"updated_at"`
}

// ShiftBuckets groups shifts by coarse lifecycle stage for tabbed display.
// Cancelled shifts belong to no bucket.
type ShiftBuckets struct {
	Upcoming  []Shift `json:"upcoming"`
	Available []Shift `json:"available"`
	Completed []Shift `json:"completed"`
}

// ShiftTab names one of the three display tabs.
type ShiftTab string

const (
	TabUpcoming  ShiftTab = "upcoming"
	TabAvailable ShiftTab = "available"
	TabCompleted ShiftTab = "completed"
)

// Valid reports whether the tab is one of the three known tabs.
func (t ShiftTab) Valid() bool {
	switch t {
	case TabUpcoming, TabAvailable, TabCompleted:
		return true
	}
	return false
}

// Bucket returns the bucket backing the tab.
func (b ShiftBuckets) Bucket(tab ShiftTab) []Shift {
	switch tab {
	case TabAvailable:
		return b.Available
	case TabCompleted:
		return b.Completed
	default:
		return b.Upcoming
	}
}

// ShiftFilter narrows down shift listings.
type ShiftFilter struct {
	WorkerID string
	Date     string
	Statuses []ShiftStatus
}
