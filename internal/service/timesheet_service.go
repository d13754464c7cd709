package service

import (
	"context"
	"fmt"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/carebridge/carebridge-api/internal/models"
	appErrors "github.com/carebridge/carebridge-api/pkg/errors"
	"github.com/carebridge/carebridge-api/pkg/export"
	"github.com/carebridge/carebridge-api/pkg/timeutil"
)

type timesheetRepository interface {
	List(ctx context.Context, filter models.TimesheetFilter) ([]models.TimesheetEntry, error)
	GetByIDs(ctx context.Context, workerID string, ids []string) ([]models.TimesheetEntry, error)
	Create(ctx context.Context, entry *models.TimesheetEntry) error
	UpdateStatus(ctx context.Context, id string, status models.TimesheetStatus) error
}

// TimesheetService records worked hours and exports them.
type TimesheetService struct {
	repo      timesheetRepository
	csv       *export.CSVExporter
	validator *validator.Validate
	logger    *zap.Logger
}

// NewTimesheetService constructs the service.
func NewTimesheetService(repo timesheetRepository, validate *validator.Validate, logger *zap.Logger) *TimesheetService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &TimesheetService{repo: repo, csv: export.NewCSVExporter(), validator: validate, logger: logger}
}

// CreateTimesheetRequest is the payload for logging hours.
type CreateTimesheetRequest struct {
	Title      string  `json:"title" validate:"required"`
	ClientName string  `json:"client_name" validate:"required"`
	Date       string  `json:"date" validate:"required,datetime=2006-01-02"`
	StartTime  string  `json:"start_time" validate:"required"`
	EndTime    string  `json:"end_time" validate:"required"`
	ShiftID    *string `json:"shift_id"`
	Activities *string `json:"activities"`
}

// Create logs a timesheet entry as a draft. The hours label is derived from
// the clock range.
func (s *TimesheetService) Create(ctx context.Context, workerID string, req CreateTimesheetRequest) (*models.TimesheetEntry, error) {
	if workerID == "" {
		return nil, appErrors.Clone(appErrors.ErrValidation, "worker id is required")
	}
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid timesheet payload")
	}
	hours := timeutil.CalculateDuration(req.StartTime, req.EndTime)
	if hours <= 0 {
		return nil, appErrors.Clone(appErrors.ErrValidation, "end time must be after start time")
	}

	entry := &models.TimesheetEntry{
		ID:         uuid.NewString(),
		WorkerID:   workerID,
		ShiftID:    req.ShiftID,
		Title:      req.Title,
		ClientName: req.ClientName,
		Date:       req.Date,
		StartTime:  req.StartTime,
		EndTime:    req.EndTime,
		TotalHours: formatHours(hours),
		Activities: req.Activities,
		Status:     models.TimesheetDraft,
	}
	if err := s.repo.Create(ctx, entry); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to create timesheet entry")
	}
	return entry, nil
}

// List returns timesheet entries matching the filter.
func (s *TimesheetService) List(ctx context.Context, filter models.TimesheetFilter) ([]models.TimesheetEntry, error) {
	entries, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list timesheet entries")
	}
	return entries, nil
}

// Submit moves a draft entry to submitted.
func (s *TimesheetService) Submit(ctx context.Context, id string) error {
	return s.transition(ctx, id, models.TimesheetSubmitted)
}

// Approve marks a submitted entry approved.
func (s *TimesheetService) Approve(ctx context.Context, id string) error {
	return s.transition(ctx, id, models.TimesheetApproved)
}

func (s *TimesheetService) transition(ctx context.Context, id string, status models.TimesheetStatus) error {
	if err := s.repo.UpdateStatus(ctx, id, status); err != nil {
		return appErrors.Wrap(err, appErrors.ErrNotFound.Code, appErrors.ErrNotFound.Status, "timesheet entry not found")
	}
	return nil
}

// ExportCSV renders the filtered entries as a CSV document.
func (s *TimesheetService) ExportCSV(ctx context.Context, filter models.TimesheetFilter) ([]byte, error) {
	entries, err := s.List(ctx, filter)
	if err != nil {
		return nil, err
	}

	data := export.Dataset{
		Headers: []string{"Date", "Title", "Client", "Start", "End", "Hours", "Status"},
	}
	for _, entry := range entries {
		data.Rows = append(data.Rows, map[string]string{
			"Date":   entry.Date,
			"Title":  entry.Title,
			"Client": entry.ClientName,
			"Start":  timeutil.FormatTime(entry.StartTime),
			"End":    timeutil.FormatTime(entry.EndTime),
			"Hours":  entry.TotalHours,
			"Status": string(entry.Status),
		})
	}
	return s.csv.Render(data)
}

func formatHours(hours float64) string {
	if hours == 1 {
		return "1 hour"
	}
	if hours == float64(int(hours)) {
		return fmt.Sprintf("%d hours", int(hours))
	}
	return fmt.Sprintf("%.1f hours", hours)
}
