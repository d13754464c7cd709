package service

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/carebridge/carebridge-api/internal/dto"
	"github.com/carebridge/carebridge-api/internal/models"
	appErrors "github.com/carebridge/carebridge-api/pkg/errors"
	"github.com/carebridge/carebridge-api/pkg/timeutil"
)

type shiftLister interface {
	ListForWorker(ctx context.Context, workerID string) ([]models.Shift, error)
}

// ShiftViewService composes the tabbed shifts view. The pipeline is classify,
// then optionally filter by date, then read the active tab. Everything is
// derived from the shift rows on each call; only the finished response is
// cached.
type ShiftViewService struct {
	shifts shiftLister
	cache  *CacheService
	logger *zap.Logger
}

// NewShiftViewService constructs the service.
func NewShiftViewService(shifts shiftLister, cache *CacheService, logger *zap.Logger) *ShiftViewService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ShiftViewService{shifts: shifts, cache: cache, logger: logger}
}

// Compose builds the view for one tab. An empty request date means no filter.
func (s *ShiftViewService) Compose(ctx context.Context, req dto.ShiftViewRequest) (*dto.ShiftViewResponse, error) {
	if !req.Tab.Valid() {
		return nil, appErrors.Clone(appErrors.ErrValidation, fmt.Sprintf("unknown tab %q", req.Tab))
	}

	cacheKey := fmt.Sprintf("shiftview:%s:%s:%s", req.WorkerID, req.Date, req.Tab)
	var cached dto.ShiftViewResponse
	if hit, err := s.cache.Get(ctx, cacheKey, &cached); err == nil && hit {
		return &cached, nil
	}

	shifts, err := s.shifts.ListForWorker(ctx, req.WorkerID)
	if err != nil {
		return nil, err
	}

	view := ComposeView(shifts, req.Date, req.Tab)

	if err := s.cache.Set(ctx, cacheKey, view, 0); err != nil {
		s.logger.Warn("shift view cache write failed", zap.Error(err))
	}
	return view, nil
}

// ComposeView runs the classify-then-filter pipeline over an in-memory shift
// list. It is pure: given the same inputs it always produces the same view,
// and composing with an empty date yields the unfiltered buckets.
func ComposeView(shifts []models.Shift, date string, tab models.ShiftTab) *dto.ShiftViewResponse {
	buckets := ClassifyByStatus(shifts)
	filtered := FilterBucketsByDate(buckets, date)

	active := filtered.Bucket(tab)
	cards := make([]dto.ShiftCard, 0, len(active))
	for _, shift := range active {
		cards = append(cards, newShiftCard(shift))
	}

	view := &dto.ShiftViewResponse{
		Tab:    tab,
		Date:   date,
		Shifts: cards,
		Counts: dto.BucketCounts{
			Upcoming:  len(filtered.Upcoming),
			Available: len(filtered.Available),
			Completed: len(filtered.Completed),
		},
		MarkedDates: markedDates(shifts),
	}
	if len(cards) == 0 {
		view.EmptyMessage = emptyMessage(tab, date)
	}
	return view
}

func newShiftCard(shift models.Shift) dto.ShiftCard {
	start := timeutil.FormatTime(shift.StartTime)
	end := timeutil.FormatTime(shift.EndTime)
	return dto.ShiftCard{
		ID:         shift.ID,
		ClientName: shift.ClientName,
		Location:   shift.Location,
		Date:       shift.Date,
		DateLabel:  timeutil.FormatDate(shift.Date),
		TimeLabel:  fmt.Sprintf("%s - %s", start, end),
		Hours:      timeutil.CalculateDuration(shift.StartTime, shift.EndTime),
		Status:     string(shift.Status),
		JobTitle:   shift.JobTitle,
		PayAmount:  shift.PayAmount,
		Notes:      shift.Notes,
	}
}

// markedDates lists, in first-seen order, every date carrying at least one
// non-cancelled shift. Calendar cells use it for dot decoration.
func markedDates(shifts []models.Shift) []string {
	seen := make(map[string]struct{}, len(shifts))
	dates := []string{}
	for _, shift := range shifts {
		if shift.Status == models.ShiftCancelled {
			continue
		}
		if _, ok := seen[shift.Date]; ok {
			continue
		}
		seen[shift.Date] = struct{}{}
		dates = append(dates, shift.Date)
	}
	return dates
}

func emptyMessage(tab models.ShiftTab, date string) string {
	if date != "" {
		return fmt.Sprintf("No %s shifts on %s.", tab, timeutil.FormatDate(date))
	}
	return fmt.Sprintf("No %s shifts.", tab)
}
