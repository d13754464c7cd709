package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/carebridge/carebridge-api/internal/models"
	"github.com/carebridge/carebridge-api/pkg/config"
	appErrors "github.com/carebridge/carebridge-api/pkg/errors"
)

type certificateRepository interface {
	ListByWorker(ctx context.Context, workerID string) ([]models.Certificate, error)
	Upsert(ctx context.Context, certificate *models.Certificate) error
}

// CertificateService tracks compliance documents. Status is recomputed from
// the expiry date on every read so a certificate stored as valid still shows
// expired once its date has passed.
type CertificateService struct {
	repo   certificateRepository
	cfg    config.CertificateConfig
	logger *zap.Logger
	now    func() time.Time
}

// NewCertificateService constructs the service.
func NewCertificateService(repo certificateRepository, cfg config.CertificateConfig, logger *zap.Logger) *CertificateService {
	if cfg.ExpiryWarningDays <= 0 {
		cfg.ExpiryWarningDays = 30
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &CertificateService{repo: repo, cfg: cfg, logger: logger, now: time.Now}
}

// ListForWorker returns the worker's certificates with freshly derived
// statuses.
func (s *CertificateService) ListForWorker(ctx context.Context, workerID string) ([]models.Certificate, error) {
	certificates, err := s.repo.ListByWorker(ctx, workerID)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list certificates")
	}
	today := s.now()
	for i := range certificates {
		certificates[i].Status = DeriveStatus(certificates[i], today, s.cfg.ExpiryWarningDays)
	}
	return certificates, nil
}

// UpsertCertificateRequest records or replaces a compliance document.
type UpsertCertificateRequest struct {
	Name         string  `json:"name" validate:"required"`
	ExpiryDate   *string `json:"expiry_date"`
	DateObtained *string `json:"date_obtained"`
	DocumentURL  *string `json:"document_url"`
	Required     bool    `json:"required"`
}

// Upsert stores a certificate for the worker, replacing any existing record
// with the same name.
func (s *CertificateService) Upsert(ctx context.Context, workerID string, req UpsertCertificateRequest) (*models.Certificate, error) {
	if workerID == "" || req.Name == "" {
		return nil, appErrors.Clone(appErrors.ErrValidation, "worker id and certificate name are required")
	}
	certificate := &models.Certificate{
		ID:           uuid.NewString(),
		WorkerID:     workerID,
		Name:         req.Name,
		ExpiryDate:   req.ExpiryDate,
		DateObtained: req.DateObtained,
		DocumentURL:  req.DocumentURL,
		Required:     req.Required,
	}
	certificate.Status = DeriveStatus(*certificate, s.now(), s.cfg.ExpiryWarningDays)
	if err := s.repo.Upsert(ctx, certificate); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to store certificate")
	}
	return certificate, nil
}

// Compliance aggregates the worker's standing. A worker is compliant when no
// required certificate is missing or expired.
func (s *CertificateService) Compliance(ctx context.Context, workerID string) (*models.ComplianceSummary, error) {
	certificates, err := s.ListForWorker(ctx, workerID)
	if err != nil {
		return nil, err
	}

	summary := &models.ComplianceSummary{
		WorkerID:      workerID,
		Total:         len(certificates),
		Compliant:     true,
		GeneratedAt:   s.now(),
		WarningWindow: s.cfg.ExpiryWarningDays,
	}
	for _, certificate := range certificates {
		switch certificate.Status {
		case models.CertificateValid:
			summary.Valid++
		case models.CertificateExpiring:
			summary.Expiring++
			summary.ExpiringSoon = append(summary.ExpiringSoon, certificate)
		case models.CertificateExpired:
			summary.Expired++
			if certificate.Required {
				summary.Compliant = false
				summary.RequiredGaps = append(summary.RequiredGaps, certificate)
			}
		case models.CertificateMissing:
			summary.Missing++
			if certificate.Required {
				summary.Compliant = false
				summary.RequiredGaps = append(summary.RequiredGaps, certificate)
			}
		}
	}
	return summary, nil
}

// DeriveStatus computes a certificate's display status from its expiry date.
// No document at all means missing; no expiry date on a held document means
// it does not expire.
func DeriveStatus(certificate models.Certificate, today time.Time, warningDays int) models.CertificateStatus {
	if certificate.DateObtained == nil && certificate.DocumentURL == nil {
		return models.CertificateMissing
	}
	if certificate.ExpiryDate == nil {
		return models.CertificateValid
	}
	expiry, err := time.Parse("2006-01-02", *certificate.ExpiryDate)
	if err != nil {
		return models.CertificateValid
	}

	day := time.Date(today.Year(), today.Month(), today.Day(), 0, 0, 0, 0, time.UTC)
	if expiry.Before(day) {
		return models.CertificateExpired
	}
	if !expiry.After(day.AddDate(0, 0, warningDays)) {
		return models.CertificateExpiring
	}
	return models.CertificateValid
}
