package service

import (
	"context"
	"database/sql"
	"errors"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/carebridge/carebridge-api/internal/models"
	appErrors "github.com/carebridge/carebridge-api/pkg/errors"
)

type shiftRepository interface {
	List(ctx context.Context, filter models.ShiftFilter) ([]models.Shift, error)
	GetByID(ctx context.Context, id string) (*models.Shift, error)
	Create(ctx context.Context, shift *models.Shift) error
	UpdateStatusVersioned(ctx context.Context, id string, from, to models.ShiftStatus, version int, workerID *string) (int64, error)
}

// ShiftService owns shift listing, status bucketing and the accept/decline
// transitions. Bucket membership is always derived from the rows at read
// time; it is never stored or mutated separately.
type ShiftService struct {
	repo      shiftRepository
	cache     *CacheService
	validator *validator.Validate
	logger    *zap.Logger
}

// NewShiftService constructs the service.
func NewShiftService(repo shiftRepository, cache *CacheService, validate *validator.Validate, logger *zap.Logger) *ShiftService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ShiftService{repo: repo, cache: cache, validator: validate, logger: logger}
}

// ClassifyByStatus partitions shifts into the three display buckets in a
// single pass. Input order is preserved within each bucket; cancelled shifts
// land in none of them.
func ClassifyByStatus(shifts []models.Shift) models.ShiftBuckets {
	buckets := models.ShiftBuckets{
		Upcoming:  []models.Shift{},
		Available: []models.Shift{},
		Completed: []models.Shift{},
	}
	for _, shift := range shifts {
		switch shift.Status {
		case models.ShiftScheduled, models.ShiftInProgress:
			buckets.Upcoming = append(buckets.Upcoming, shift)
		case models.ShiftAvailable:
			buckets.Available = append(buckets.Available, shift)
		case models.ShiftCompleted:
			buckets.Completed = append(buckets.Completed, shift)
		}
	}
	return buckets
}

// FilterBucketsByDate keeps only shifts on the given calendar date. An empty
// date is the identity. All three buckets are present in the result even when
// empty.
func FilterBucketsByDate(buckets models.ShiftBuckets, date string) models.ShiftBuckets {
	if date == "" {
		return buckets
	}
	return models.ShiftBuckets{
		Upcoming:  shiftsOnDate(buckets.Upcoming, date),
		Available: shiftsOnDate(buckets.Available, date),
		Completed: shiftsOnDate(buckets.Completed, date),
	}
}

func shiftsOnDate(shifts []models.Shift, date string) []models.Shift {
	filtered := []models.Shift{}
	for _, shift := range shifts {
		if shift.Date == date {
			filtered = append(filtered, shift)
		}
	}
	return filtered
}

// HasShiftsOnDate reports whether any shift falls on the given date; the
// calendar view uses it to decorate day cells.
func HasShiftsOnDate(shifts []models.Shift, date string) bool {
	for _, shift := range shifts {
		if shift.Date == date {
			return true
		}
	}
	return false
}

// ListForWorker returns the worker's shifts plus all open available shifts.
func (s *ShiftService) ListForWorker(ctx context.Context, workerID string) ([]models.Shift, error) {
	if workerID == "" {
		return nil, appErrors.Clone(appErrors.ErrValidation, "worker id is required")
	}
	shifts, err := s.repo.List(ctx, models.ShiftFilter{WorkerID: workerID})
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list shifts")
	}
	return shifts, nil
}

// Get returns a shift by id.
func (s *ShiftService) Get(ctx context.Context, id string) (*models.Shift, error) {
	shift, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "shift not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to get shift")
	}
	return shift, nil
}

// CreateShiftRequest describes the payload for registering a shift.
type CreateShiftRequest struct {
	ClientName string   `json:"client_name" validate:"required"`
	Location   string   `json:"location" validate:"required"`
	Date       string   `json:"date" validate:"required,datetime=2006-01-02"`
	StartTime  string   `json:"start_time" validate:"required"`
	EndTime    string   `json:"end_time" validate:"required"`
	Status     string   `json:"status" validate:"required,oneof=scheduled available in_progress completed cancelled"`
	JobTitle   *string  `json:"job_title"`
	PayAmount  *float64 `json:"pay_amount"`
	Notes      *string  `json:"notes"`
	WorkerID   *string  `json:"worker_id"`
}

// Create registers a new shift.
func (s *ShiftService) Create(ctx context.Context, req CreateShiftRequest) (*models.Shift, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid shift payload")
	}
	if req.PayAmount != nil && *req.PayAmount < 0 {
		return nil, appErrors.Clone(appErrors.ErrValidation, "pay_amount must not be negative")
	}
	shift := &models.Shift{
		WorkerID:   req.WorkerID,
		ClientName: req.ClientName,
		Location:   req.Location,
		Date:       req.Date,
		StartTime:  req.StartTime,
		EndTime:    req.EndTime,
		Status:     models.ShiftStatus(req.Status),
		JobTitle:   req.JobTitle,
		PayAmount:  req.PayAmount,
		Notes:      req.Notes,
		Version:    1,
	}
	if err := s.repo.Create(ctx, shift); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to create shift")
	}
	s.invalidateViews(ctx)
	return shift, nil
}

// Accept claims an available shift for the worker. The version check makes
// the read-modify-write safe against a second worker grabbing the same shift.
func (s *ShiftService) Accept(ctx context.Context, id, workerID string) (*models.Shift, error) {
	return s.respond(ctx, id, workerID, models.ShiftScheduled)
}

// Decline releases an available shift. The shift leaves the available bucket
// by moving to cancelled.
func (s *ShiftService) Decline(ctx context.Context, id, workerID string) (*models.Shift, error) {
	return s.respond(ctx, id, workerID, models.ShiftCancelled)
}

func (s *ShiftService) respond(ctx context.Context, id, workerID string, to models.ShiftStatus) (*models.Shift, error) {
	if workerID == "" {
		return nil, appErrors.Clone(appErrors.ErrValidation, "worker id is required")
	}
	shift, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if shift.Status != models.ShiftAvailable {
		return nil, appErrors.Clone(appErrors.ErrConflict, "shift is not open for responses")
	}

	var claimedBy *string
	if to == models.ShiftScheduled {
		claimedBy = &workerID
	}
	affected, err := s.repo.UpdateStatusVersioned(ctx, id, models.ShiftAvailable, to, shift.Version, claimedBy)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to update shift")
	}
	if affected == 0 {
		return nil, appErrors.Clone(appErrors.ErrShiftTaken, "shift was claimed by someone else")
	}
	s.invalidateViews(ctx)

	return s.Get(ctx, id)
}

func (s *ShiftService) invalidateViews(ctx context.Context) {
	if err := s.cache.Invalidate(ctx, "shiftview:*"); err != nil {
		s.logger.Warn("shift view cache invalidation failed", zap.Error(err))
	}
}
