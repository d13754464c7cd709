package models

import (
	"time"

	"github.com/lib/pq"
)

// IncidentSeverity grades how serious an incident is.
type IncidentSeverity string

const (
	SeverityLow      IncidentSeverity = "low"
	SeverityMedium   IncidentSeverity = "medium"
	SeverityHigh     IncidentSeverity = "high"
	SeverityCritical IncidentSeverity = "critical"
)

// IncidentStatus is the handling state of a reported incident.
type IncidentStatus string

const (
	IncidentReported      IncidentStatus = "reported"
	IncidentInvestigating IncidentStatus = "investigating"
	IncidentResolved      IncidentStatus = "resolved"
	IncidentClosed        IncidentStatus = "closed"
)

// Incident is a reported care incident.
type Incident struct {
	ID              string           `db:"id" json:"id"`
	Title           string           `db:"title" json:"title"`
	Description     string           `db:"description" json:"description"`
	Date            string           `db:"incident_date" json:"date"`
	Location        *string          `db:"location" json:"location,omitempty"`
	Severity        IncidentSeverity `db:"severity" json:"severity"`
	Status          IncidentStatus   `db:"status" json:"status"`
	ReportedBy      string           `db:"reported_by" json:"reported_by"`
	InvolvedPersons pq.StringArray   `db:"involved_persons" json:"involved_persons,omitempty"`
	WitnessNames    pq.StringArray   `db:"witness_names" json:"witness_names,omitempty"`
	Actions         *string          `db:"actions" json:"actions,omitempty"`
	CreatedAt       time.Time        `db:"created_at" json:"created_at"`
	UpdatedAt       time.Time        `db:"updated_at" json:"updated_at"`
}

// IncidentFilter narrows down incident listings.
type IncidentFilter struct {
	Severity *IncidentSeverity
	Status   *IncidentStatus
	Search   string
	Page     int
	PageSize int
}
