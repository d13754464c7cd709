package models

import "time"

// TimesheetStatus is the lifecycle state of a timesheet entry.
type TimesheetStatus string

const (
	TimesheetDraft     TimesheetStatus = "draft"
	TimesheetSubmitted TimesheetStatus = "submitted"
	TimesheetApproved  TimesheetStatus = "approved"
)

// TimesheetEntry records hours worked against a shift; entries feed invoice
// generation. TotalHours is the display string the original records carried,
// e.g. "4 hours".
type TimesheetEntry struct {
	ID         string          `db:"id" json:"id"`
	WorkerID   string          `db:"worker_id" json:"worker_id"`
	ShiftID    *string         `db:"shift_id" json:"shift_id,omitempty"`
	Title      string          `db:"title" json:"title"`
	ClientName string          `db:"client_name" json:"client_name"`
	Date       string          `db:"entry_date" json:"date"`
	StartTime  string          `db:"start_time" json:"start_time"`
	EndTime    string          `db:"end_time" json:"end_time"`
	TotalHours string          `db:"total_hours" json:"total_hours"`
	Activities *string         `db:"activities" json:"activities,omitempty"`
	Status     TimesheetStatus `db:"status" json:"status"`
	CreatedAt  time.Time       `db:"created_at" json:"created_at"`
	UpdatedAt  time.Time       `db:"updated_at" json:"updated_at"`
}

// TimesheetFilter narrows down timesheet listings.
type TimesheetFilter struct {
	WorkerID string
	Status   *TimesheetStatus
	FromDate string
	ToDate   string
}
