package models

import "time"

// CertificateStatus tracks a compliance document's validity.
type CertificateStatus string

const (
	CertificateValid    CertificateStatus = "valid"
	CertificateExpiring CertificateStatus = "expiring"
	CertificateExpired  CertificateStatus = "expired"
	CertificateMissing  CertificateStatus = "missing"
)

// Certificate is a compliance document attached to a care worker.
type Certificate struct {
	ID           string            `db:"id" json:"id"`
	WorkerID     string            `db:"worker_id" json:"worker_id"`
	Name         string            `db:"name" json:"name"`
	Status       CertificateStatus `db:"status" json:"status"`
	ExpiryDate   *string           `db:"expiry_date" json:"expiry_date,omitempty"`
	DateObtained *string           `db:"date_obtained" json:"date_obtained,omitempty"`
	DocumentURL  *string           `db:"document_url" json:"document_url,omitempty"`
	Required     bool              `db:"required" json:"required"`
	CreatedAt    time.Time         `db:"created_at" json:"created_at"`
	UpdatedAt    time.Time         `db:"updated_at" json:"updated_at"`
}

// ComplianceSummary aggregates a worker's certificate standing.
type ComplianceSummary struct {
	WorkerID      string        `json:"worker_id"`
	Total         int           `json:"total"`
	Valid         int           `json:"valid"`
	Expiring      int           `json:"expiring"`
	Expired       int           `json:"expired"`
	Missing       int           `json:"missing"`
	RequiredGaps  []Certificate `json:"required_gaps,omitempty"`
	ExpiringSoon  []Certificate `json:"expiring_soon,omitempty"`
	Compliant     bool          `json:"compliant"`
	GeneratedAt   time.Time     `json:"generated_at"`
	WarningWindow int           `json:"warning_window_days"`
}
