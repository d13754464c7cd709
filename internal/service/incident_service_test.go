package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/carebridge/carebridge-api/internal/models"
	appErrors "github.com/carebridge/carebridge-api/pkg/errors"
)

type mockIncidentRepo struct {
	mock.Mock
}

func (m *mockIncidentRepo) Create(ctx context.Context, incident *models.Incident) error {
	args := m.Called(ctx, incident)
	return args.Error(0)
}

func (m *mockIncidentRepo) List(ctx context.Context, filter models.IncidentFilter) ([]models.Incident, int, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]models.Incident), args.Int(1), args.Error(2)
}

func (m *mockIncidentRepo) GetByID(ctx context.Context, id string) (*models.Incident, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Incident), args.Error(1)
}

func (m *mockIncidentRepo) UpdateStatus(ctx context.Context, id string, status models.IncidentStatus) error {
	args := m.Called(ctx, id, status)
	return args.Error(0)
}

func TestReportIncident(t *testing.T) {
	repo := new(mockIncidentRepo)
	repo.On("Create", mock.Anything, mock.MatchedBy(func(i *models.Incident) bool {
		return i.Status == models.IncidentReported && i.ReportedBy == "w1" && i.ID != ""
	})).Return(nil).Once()
	svc := NewIncidentService(repo, nil, nil)

	incident, err := svc.Report(context.Background(), "w1", ReportIncidentRequest{
		Title:       "Fall during transfer",
		Description: "Client slipped while moving to wheelchair.",
		Date:        "2025-04-08",
		Severity:    "high",
	})

	require.NoError(t, err)
	assert.Equal(t, models.IncidentReported, incident.Status)
	repo.AssertExpectations(t)
}

func TestReportIncidentRejectsBadSeverity(t *testing.T) {
	repo := new(mockIncidentRepo)
	svc := NewIncidentService(repo, nil, nil)

	_, err := svc.Report(context.Background(), "w1", ReportIncidentRequest{
		Title:       "Fall",
		Description: "desc",
		Date:        "2025-04-08",
		Severity:    "catastrophic",
	})

	var appErr *appErrors.Error
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, appErrors.ErrValidation.Code, appErr.Code)
	repo.AssertNotCalled(t, "Create")
}

func TestIncidentTransitionLadder(t *testing.T) {
	repo := new(mockIncidentRepo)
	reported := &models.Incident{ID: "i1", Status: models.IncidentReported}
	repo.On("GetByID", mock.Anything, "i1").Return(reported, nil).Once()
	repo.On("UpdateStatus", mock.Anything, "i1", models.IncidentInvestigating).Return(nil).Once()
	svc := NewIncidentService(repo, nil, nil)

	updated, err := svc.Transition(context.Background(), "i1", models.IncidentInvestigating)

	require.NoError(t, err)
	assert.Equal(t, models.IncidentInvestigating, updated.Status)
}

func TestIncidentTransitionRejected(t *testing.T) {
	repo := new(mockIncidentRepo)
	closed := &models.Incident{ID: "i1", Status: models.IncidentClosed}
	repo.On("GetByID", mock.Anything, "i1").Return(closed, nil).Once()
	svc := NewIncidentService(repo, nil, nil)

	_, err := svc.Transition(context.Background(), "i1", models.IncidentReported)

	var appErr *appErrors.Error
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, appErrors.ErrConflict.Code, appErr.Code)
	repo.AssertNotCalled(t, "UpdateStatus")
}

func TestIncidentListClampsPagination(t *testing.T) {
	repo := new(mockIncidentRepo)
	repo.On("List", mock.Anything, models.IncidentFilter{Page: 1, PageSize: 20}).
		Return([]models.Incident{}, 0, nil).Once()
	svc := NewIncidentService(repo, nil, nil)

	_, pagination, err := svc.List(context.Background(), models.IncidentFilter{Page: -3, PageSize: 500})

	require.NoError(t, err)
	assert.Equal(t, 1, pagination.Page)
	assert.Equal(t, 20, pagination.PageSize)
}
