package service

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/carebridge/carebridge-api/internal/dto"
	"github.com/carebridge/carebridge-api/internal/models"
)

type complianceSource interface {
	Compliance(ctx context.Context, workerID string) (*models.ComplianceSummary, error)
}

type unreadSource interface {
	UnreadCount(ctx context.Context, userID string) (int, error)
}

// DashboardService composes the landing-page snapshot from the shift,
// compliance and inbox services. Secondary panels degrade to empty rather
// than failing the whole page.
type DashboardService struct {
	shifts     shiftLister
	compliance complianceSource
	inbox      unreadSource
	logger     *zap.Logger
	now        func() time.Time
}

// NewDashboardService constructs the service.
func NewDashboardService(shifts shiftLister, compliance complianceSource, inbox unreadSource, logger *zap.Logger) *DashboardService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &DashboardService{shifts: shifts, compliance: compliance, inbox: inbox, logger: logger, now: time.Now}
}

// Snapshot builds the dashboard for the worker. The shift list is the one
// hard dependency; compliance and unread counts are best effort.
func (s *DashboardService) Snapshot(ctx context.Context, workerID, fullName string) (*dto.DashboardResponse, error) {
	shifts, err := s.shifts.ListForWorker(ctx, workerID)
	if err != nil {
		return nil, err
	}

	today := s.now().Format("2006-01-02")
	buckets := ClassifyByStatus(shifts)

	todayCards := []dto.ShiftCard{}
	for _, shift := range buckets.Upcoming {
		if shift.Date == today {
			todayCards = append(todayCards, newShiftCard(shift))
		}
	}

	snapshot := &dto.DashboardResponse{
		Date:          today,
		Greeting:      greeting(s.now(), fullName),
		TodayShifts:   todayCards,
		OpenShifts:    len(buckets.Available),
		UpcomingCount: len(buckets.Upcoming),
	}

	if s.compliance != nil {
		summary, err := s.compliance.Compliance(ctx, workerID)
		if err != nil {
			s.logger.Warn("dashboard compliance lookup failed", zap.Error(err))
		} else {
			snapshot.Compliance = summary
		}
	}
	if s.inbox != nil {
		unread, err := s.inbox.UnreadCount(ctx, workerID)
		if err != nil {
			s.logger.Warn("dashboard unread lookup failed", zap.Error(err))
		} else {
			snapshot.UnreadCount = unread
		}
	}
	return snapshot, nil
}

func greeting(now time.Time, fullName string) string {
	part := "evening"
	switch hour := now.Hour(); {
	case hour < 12:
		part = "morning"
	case hour < 18:
		part = "afternoon"
	}
	if fullName == "" {
		return fmt.Sprintf("Good %s", part)
	}
	return fmt.Sprintf("Good %s, %s", part, fullName)
}
