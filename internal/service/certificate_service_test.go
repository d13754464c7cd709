package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/carebridge/carebridge-api/internal/models"
	"github.com/carebridge/carebridge-api/pkg/config"
)

type mockCertificateRepo struct {
	mock.Mock
}

func (m *mockCertificateRepo) ListByWorker(ctx context.Context, workerID string) ([]models.Certificate, error) {
	args := m.Called(ctx, workerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Certificate), args.Error(1)
}

func (m *mockCertificateRepo) Upsert(ctx context.Context, certificate *models.Certificate) error {
	args := m.Called(ctx, certificate)
	return args.Error(0)
}

func strPtr(s string) *string { return &s }

var complianceToday = time.Date(2025, 4, 10, 9, 0, 0, 0, time.UTC)

func certificate(name string, expiry *string, required bool) models.Certificate {
	return models.Certificate{
		WorkerID:     "w1",
		Name:         name,
		ExpiryDate:   expiry,
		DateObtained: strPtr("2024-01-15"),
		Required:     required,
	}
}

func TestDeriveStatus(t *testing.T) {
	tests := []struct {
		name        string
		certificate models.Certificate
		expected    models.CertificateStatus
	}{
		{"no document", models.Certificate{Name: "First Aid", Required: true}, models.CertificateMissing},
		{"no expiry", certificate("Police Check", nil, true), models.CertificateValid},
		{"expired yesterday", certificate("First Aid", strPtr("2025-04-09"), true), models.CertificateExpired},
		{"inside warning window", certificate("CPR", strPtr("2025-05-01"), true), models.CertificateExpiring},
		{"expires today", certificate("CPR", strPtr("2025-04-10"), true), models.CertificateExpiring},
		{"well in the future", certificate("NDIS Screening", strPtr("2026-04-10"), true), models.CertificateValid},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, DeriveStatus(tc.certificate, complianceToday, 30))
		})
	}
}

func TestComplianceSummary(t *testing.T) {
	repo := new(mockCertificateRepo)
	repo.On("ListByWorker", mock.Anything, "w1").Return([]models.Certificate{
		certificate("Police Check", strPtr("2026-01-01"), true),
		certificate("First Aid", strPtr("2025-01-01"), true),
		certificate("CPR", strPtr("2025-04-20"), false),
		{WorkerID: "w1", Name: "NDIS Screening", Required: true},
	}, nil).Once()

	svc := NewCertificateService(repo, config.CertificateConfig{ExpiryWarningDays: 30}, nil)
	svc.now = func() time.Time { return complianceToday }

	summary, err := svc.Compliance(context.Background(), "w1")

	require.NoError(t, err)
	assert.Equal(t, 4, summary.Total)
	assert.Equal(t, 1, summary.Valid)
	assert.Equal(t, 1, summary.Expiring)
	assert.Equal(t, 1, summary.Expired)
	assert.Equal(t, 1, summary.Missing)
	assert.False(t, summary.Compliant)
	require.Len(t, summary.RequiredGaps, 2)
	assert.Equal(t, "First Aid", summary.RequiredGaps[0].Name)
	assert.Equal(t, "NDIS Screening", summary.RequiredGaps[1].Name)
}

func TestComplianceCompliantWorker(t *testing.T) {
	repo := new(mockCertificateRepo)
	repo.On("ListByWorker", mock.Anything, "w1").Return([]models.Certificate{
		certificate("Police Check", strPtr("2026-01-01"), true),
		certificate("CPR", strPtr("2025-04-20"), false),
	}, nil).Once()

	svc := NewCertificateService(repo, config.CertificateConfig{ExpiryWarningDays: 30}, nil)
	svc.now = func() time.Time { return complianceToday }

	summary, err := svc.Compliance(context.Background(), "w1")

	require.NoError(t, err)
	assert.True(t, summary.Compliant)
	assert.Empty(t, summary.RequiredGaps)
	require.Len(t, summary.ExpiringSoon, 1)
	assert.Equal(t, "CPR", summary.ExpiringSoon[0].Name)
}

func TestUpsertDerivesStatus(t *testing.T) {
	repo := new(mockCertificateRepo)
	repo.On("Upsert", mock.Anything, mock.MatchedBy(func(c *models.Certificate) bool {
		return c.Status == models.CertificateExpired
	})).Return(nil).Once()

	svc := NewCertificateService(repo, config.CertificateConfig{ExpiryWarningDays: 30}, nil)
	svc.now = func() time.Time { return complianceToday }

	created, err := svc.Upsert(context.Background(), "w1", UpsertCertificateRequest{
		Name:         "First Aid",
		ExpiryDate:   strPtr("2025-01-01"),
		DateObtained: strPtr("2022-01-01"),
		Required:     true,
	})

	require.NoError(t, err)
	assert.Equal(t, models.CertificateExpired, created.Status)
	repo.AssertExpectations(t)
}
