package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/carebridge/carebridge-api/internal/models"
)

const certificateColumns = "id, worker_id, name, status, expiry_date, date_obtained, document_url, required, created_at, updated_at"

// CertificateRepository persists worker compliance certificates.
type CertificateRepository struct {
	db *sqlx.DB
}

// NewCertificateRepository constructs a certificate repository.
func NewCertificateRepository(db *sqlx.DB) *CertificateRepository {
	return &CertificateRepository{db: db}
}

// ListByWorker returns a worker's certificates ordered by name.
func (r *CertificateRepository) ListByWorker(ctx context.Context, workerID string) ([]models.Certificate, error) {
	query := fmt.Sprintf("SELECT %s FROM certificates WHERE worker_id = $1 ORDER BY name ASC", certificateColumns)
	var certificates []models.Certificate
	if err := r.db.SelectContext(ctx, &certificates, query, workerID); err != nil {
		return nil, fmt.Errorf("list certificates: %w", err)
	}
	return certificates, nil
}

// Upsert inserts or replaces a certificate row.
func (r *CertificateRepository) Upsert(ctx context.Context, certificate *models.Certificate) error {
	if certificate.ID == "" {
		certificate.ID = uuid.NewString()
	}
	now := time.Now().UTC()
	if certificate.CreatedAt.IsZero() {
		certificate.CreatedAt = now
	}
	certificate.UpdatedAt = now
	query := `INSERT INTO certificates (id, worker_id, name, status, expiry_date, date_obtained, document_url, required, created_at, updated_at)
VALUES (:id, :worker_id, :name, :status, :expiry_date, :date_obtained, :document_url, :required, :created_at, :updated_at)
ON CONFLICT (worker_id, name) DO UPDATE SET status = EXCLUDED.status, expiry_date = EXCLUDED.expiry_date,
date_obtained = EXCLUDED.date_obtained, document_url = EXCLUDED.document_url, required = EXCLUDED.required, updated_at = EXCLUDED.updated_at`
	if _, err := r.db.NamedExecContext(ctx, query, certificate); err != nil {
		return fmt.Errorf("upsert certificate: %w", err)
	}
	return nil
}
