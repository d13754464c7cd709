package service

import (
	"context"
	"fmt"
	"math"
	"sort"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/carebridge/carebridge-api/internal/models"
	"github.com/carebridge/carebridge-api/pkg/config"
	appErrors "github.com/carebridge/carebridge-api/pkg/errors"
)

type availabilityRepository interface {
	ListByWorker(ctx context.Context, workerID string) ([]models.AvailabilitySlot, error)
	ListByWorkerDate(ctx context.Context, workerID, date string) ([]models.AvailabilitySlot, error)
	Insert(ctx context.Context, slot *models.AvailabilitySlot) error
	Delete(ctx context.Context, id string) error
	DistinctDates(ctx context.Context, workerID string) ([]string, error)
}

// AvailabilityService manages caregiver availability slots. Stored slots are
// kept exactly as entered, overlaps included; Canonical merges them only when
// a read asks for the merged form.
type AvailabilityService struct {
	repo   availabilityRepository
	cfg    config.AvailabilityConfig
	logger *zap.Logger
}

// NewAvailabilityService constructs the service.
func NewAvailabilityService(repo availabilityRepository, cfg config.AvailabilityConfig, logger *zap.Logger) *AvailabilityService {
	if cfg.DefaultEndHour <= cfg.DefaultStartHour {
		cfg.DefaultStartHour = 9
		cfg.DefaultEndHour = 17
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AvailabilityService{repo: repo, cfg: cfg, logger: logger}
}

// ValidRange reports whether (start, end) is a well-formed slot: inside 0-24,
// start strictly before end, both on half-hour boundaries.
func ValidRange(start, end float64) bool {
	if start < 0 || end > 24 || start >= end {
		return false
	}
	return onHalfHour(start) && onHalfHour(end)
}

func onHalfHour(h float64) bool {
	scaled := h * 2
	return scaled == math.Trunc(scaled)
}

// Canonical merges overlapping and touching ranges into a minimal sorted set.
// The input is not modified.
func Canonical(slots []models.TimeRange) []models.TimeRange {
	if len(slots) == 0 {
		return []models.TimeRange{}
	}
	sorted := make([]models.TimeRange, len(slots))
	copy(sorted, slots)
	sort.Slice(sorted, func(i, j int) bool {
		if sorted[i].Start != sorted[j].Start {
			return sorted[i].Start < sorted[j].Start
		}
		return sorted[i].End < sorted[j].End
	})

	merged := []models.TimeRange{sorted[0]}
	for _, r := range sorted[1:] {
		last := &merged[len(merged)-1]
		if r.Start <= last.End {
			if r.End > last.End {
				last.End = r.End
			}
			continue
		}
		merged = append(merged, r)
	}
	return merged
}

// AddSlot records a new slot for the date. Overlapping an existing slot is
// allowed.
func (s *AvailabilityService) AddSlot(ctx context.Context, workerID, date string, start, end float64) (*models.AvailabilitySlot, error) {
	if workerID == "" || date == "" {
		return nil, appErrors.Clone(appErrors.ErrValidation, "worker id and date are required")
	}
	if !ValidRange(start, end) {
		return nil, appErrors.Clone(appErrors.ErrValidation,
			fmt.Sprintf("slot %.1f-%.1f must lie within 0-24, start before end, on half-hour boundaries", start, end))
	}
	slot := &models.AvailabilitySlot{
		ID:        uuid.NewString(),
		WorkerID:  workerID,
		Date:      date,
		StartHour: start,
		EndHour:   end,
	}
	if err := s.repo.Insert(ctx, slot); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to add availability slot")
	}
	return slot, nil
}

// RemoveSlot deletes the slot at the given position in the day's ordered
// list. An out-of-range index is a no-op, matching the editor's forgiving
// delete button.
func (s *AvailabilityService) RemoveSlot(ctx context.Context, workerID, date string, index int) error {
	slots, err := s.repo.ListByWorkerDate(ctx, workerID, date)
	if err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list availability slots")
	}
	if index < 0 || index >= len(slots) {
		return nil
	}
	if err := s.repo.Delete(ctx, slots[index].ID); err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to remove availability slot")
	}
	return nil
}

// SelectDay returns the day's slots together with the editing range the
// editor should open with: the first slot's bounds when the day has slots,
// the configured default otherwise.
func (s *AvailabilityService) SelectDay(ctx context.Context, workerID, date string) (*models.DaySelection, error) {
	slots, err := s.repo.ListByWorkerDate(ctx, workerID, date)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list availability slots")
	}

	selection := &models.DaySelection{
		Date:         date,
		Slots:        toRanges(slots),
		EditingRange: models.TimeRange{Start: s.cfg.DefaultStartHour, End: s.cfg.DefaultEndHour},
	}
	if len(slots) > 0 {
		selection.EditingRange = models.TimeRange{Start: slots[0].StartHour, End: slots[0].EndHour}
	}
	return selection, nil
}

// ListDays groups the worker's slots per date, in the order the dates were
// first declared. Set canonical to merge each day's overlaps.
func (s *AvailabilityService) ListDays(ctx context.Context, workerID string, canonical bool) ([]models.DayAvailability, error) {
	slots, err := s.repo.ListByWorker(ctx, workerID)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list availability")
	}
	dates, err := s.repo.DistinctDates(ctx, workerID)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list availability dates")
	}

	byDate := make(map[string][]models.TimeRange, len(dates))
	for _, slot := range slots {
		byDate[slot.Date] = append(byDate[slot.Date], models.TimeRange{Start: slot.StartHour, End: slot.EndHour})
	}

	days := make([]models.DayAvailability, 0, len(dates))
	for _, date := range dates {
		ranges := byDate[date]
		if canonical {
			ranges = Canonical(ranges)
		}
		days = append(days, models.DayAvailability{Date: date, Slots: ranges})
	}
	return days, nil
}

func toRanges(slots []models.AvailabilitySlot) []models.TimeRange {
	ranges := make([]models.TimeRange, 0, len(slots))
	for _, slot := range slots {
		ranges = append(ranges, models.TimeRange{Start: slot.StartHour, End: slot.EndHour})
	}
	return ranges
}
