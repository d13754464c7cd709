package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/carebridge/carebridge-api/internal/models"
)

type mockParticipantRepo struct {
	mock.Mock
}

func (m *mockParticipantRepo) List(ctx context.Context, filter models.ParticipantFilter) ([]models.Participant, int, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]models.Participant), args.Int(1), args.Error(2)
}

func (m *mockParticipantRepo) GetByID(ctx context.Context, id string) (*models.Participant, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Participant), args.Error(1)
}

func candidate(id, name string, availability, skills []string) models.Participant {
	return models.Participant{ID: id, Name: name, Availability: availability, Skills: skills}
}

func TestScoreMatchAvailabilityAndSkills(t *testing.T) {
	// 2025-04-08 is a Tuesday.
	match := ScoreMatch(
		candidate("p1", "Alex", []string{"Monday", "Tuesday"}, []string{"Manual Handling", "First Aid"}),
		"2025-04-08",
		[]string{"First Aid", "Medication"},
	)

	assert.True(t, match.DateAvailable)
	assert.Equal(t, []string{"First Aid"}, match.SkillMatches)
	assert.InDelta(t, 0.8, match.Score, 1e-9)
}

func TestScoreMatchNoAvailability(t *testing.T) {
	match := ScoreMatch(
		candidate("p1", "Alex", []string{"Friday"}, []string{"First Aid"}),
		"2025-04-08",
		[]string{"First Aid"},
	)

	assert.False(t, match.DateAvailable)
	assert.InDelta(t, 0.4, match.Score, 1e-9)
}

func TestScoreMatchNoRequiredSkills(t *testing.T) {
	match := ScoreMatch(
		candidate("p1", "Alex", []string{"Tuesday"}, nil),
		"2025-04-08",
		nil,
	)

	assert.InDelta(t, 0.6, match.Score, 1e-9)
}

func TestMatchShiftRanksAndDropsZeroScores(t *testing.T) {
	repo := new(mockParticipantRepo)
	repo.On("List", mock.Anything, mock.Anything).Return([]models.Participant{
		candidate("p1", "Alex", []string{"Friday"}, nil),
		candidate("p2", "Blake", []string{"Tuesday"}, []string{"First Aid"}),
		candidate("p3", "Casey", nil, []string{"First Aid"}),
	}, 3, nil).Once()
	svc := NewParticipantService(repo, nil)

	shift := shiftFixture("s1", models.ShiftAvailable, "2025-04-08")
	matches, err := svc.MatchShift(context.Background(), &shift, []string{"First Aid"})

	require.NoError(t, err)
	require.Len(t, matches, 2)
	assert.Equal(t, "p2", matches[0].Participant.ID)
	assert.Equal(t, "p3", matches[1].Participant.ID)
}

func TestParticipantListDefaultsPagination(t *testing.T) {
	repo := new(mockParticipantRepo)
	repo.On("List", mock.Anything, models.ParticipantFilter{Page: 1, PageSize: 20}).
		Return([]models.Participant{}, 0, nil).Once()
	svc := NewParticipantService(repo, nil)

	_, pagination, err := svc.List(context.Background(), models.ParticipantFilter{})

	require.NoError(t, err)
	assert.Equal(t, 1, pagination.Page)
	assert.Equal(t, 20, pagination.PageSize)
	repo.AssertExpectations(t)
}
