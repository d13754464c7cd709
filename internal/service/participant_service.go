package service

import (
	"context"
	"database/sql"
	"errors"
	"sort"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/carebridge/carebridge-api/internal/models"
	appErrors "github.com/carebridge/carebridge-api/pkg/errors"
)

type participantRepository interface {
	List(ctx context.Context, filter models.ParticipantFilter) ([]models.Participant, int, error)
	GetByID(ctx context.Context, id string) (*models.Participant, error)
}

// ParticipantService lists care recipients and scores how well potential
// workers fit an open shift.
type ParticipantService struct {
	repo   participantRepository
	logger *zap.Logger
}

// NewParticipantService constructs the service.
func NewParticipantService(repo participantRepository, logger *zap.Logger) *ParticipantService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ParticipantService{repo: repo, logger: logger}
}

// List returns participants matching the filter with pagination metadata.
func (s *ParticipantService) List(ctx context.Context, filter models.ParticipantFilter) ([]models.Participant, *models.Pagination, error) {
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.PageSize < 1 || filter.PageSize > 100 {
		filter.PageSize = 20
	}
	participants, total, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list participants")
	}
	pagination := &models.Pagination{Page: filter.Page, PageSize: filter.PageSize, TotalCount: total}
	return participants, pagination, nil
}

// Get returns a single participant.
func (s *ParticipantService) Get(ctx context.Context, id string) (*models.Participant, error) {
	participant, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "participant not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to get participant")
	}
	return participant, nil
}

// MatchShift ranks candidates for an open shift. Weekday availability counts
// for more than skill overlap; ties keep the listing order stable.
func (s *ParticipantService) MatchShift(ctx context.Context, shift *models.Shift, requiredSkills []string) ([]models.ParticipantMatch, error) {
	if shift == nil {
		return nil, appErrors.Clone(appErrors.ErrValidation, "shift is required")
	}
	candidates, _, err := s.repo.List(ctx, models.ParticipantFilter{Page: 1, PageSize: 100})
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list candidates")
	}

	matches := make([]models.ParticipantMatch, 0, len(candidates))
	for _, candidate := range candidates {
		match := ScoreMatch(candidate, shift.Date, requiredSkills)
		if match.Score > 0 {
			matches = append(matches, match)
		}
	}
	sort.SliceStable(matches, func(i, j int) bool {
		return matches[i].Score > matches[j].Score
	})
	return matches, nil
}

// ScoreMatch computes one candidate's fit: 0.6 for being free on the shift's
// weekday plus up to 0.4 for skill coverage.
func ScoreMatch(candidate models.Participant, shiftDate string, requiredSkills []string) models.ParticipantMatch {
	match := models.ParticipantMatch{Participant: candidate, SkillMatches: []string{}}

	weekday := weekdayName(shiftDate)
	for _, day := range candidate.Availability {
		if strings.EqualFold(day, weekday) {
			match.DateAvailable = true
			break
		}
	}

	if len(requiredSkills) > 0 {
		have := make(map[string]struct{}, len(candidate.Skills))
		for _, skill := range candidate.Skills {
			have[strings.ToLower(skill)] = struct{}{}
		}
		for _, skill := range requiredSkills {
			if _, ok := have[strings.ToLower(skill)]; ok {
				match.SkillMatches = append(match.SkillMatches, skill)
			}
		}
	}

	if match.DateAvailable {
		match.Score += 0.6
	}
	if len(requiredSkills) > 0 {
		match.Score += 0.4 * float64(len(match.SkillMatches)) / float64(len(requiredSkills))
	}
	return match
}

func weekdayName(date string) string {
	parsed, err := time.Parse("2006-01-02", date)
	if err != nil {
		return ""
	}
	return parsed.Weekday().String()
}
