package service

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/carebridge/carebridge-api/internal/models"
	appErrors "github.com/carebridge/carebridge-api/pkg/errors"
)

type mockShiftRepo struct {
	mock.Mock
}

func (m *mockShiftRepo) List(ctx context.Context, filter models.ShiftFilter) ([]models.Shift, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Shift), args.Error(1)
}

func (m *mockShiftRepo) GetByID(ctx context.Context, id string) (*models.Shift, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Shift), args.Error(1)
}

func (m *mockShiftRepo) Create(ctx context.Context, shift *models.Shift) error {
	args := m.Called(ctx, shift)
	return args.Error(0)
}

func (m *mockShiftRepo) UpdateStatusVersioned(ctx context.Context, id string, from, to models.ShiftStatus, version int, workerID *string) (int64, error) {
	args := m.Called(ctx, id, from, to, version, workerID)
	return args.Get(0).(int64), args.Error(1)
}

func shiftFixture(id string, status models.ShiftStatus, date string) models.Shift {
	return models.Shift{
		ID:         id,
		ClientName: "Sarah M.",
		Location:   "Parramatta NSW",
		Date:       date,
		StartTime:  "9:00 AM",
		EndTime:    "5:00 PM",
		Status:     status,
		Version:    1,
	}
}

func TestClassifyByStatus(t *testing.T) {
	shifts := []models.Shift{
		shiftFixture("s1", models.ShiftScheduled, "2025-03-10"),
		shiftFixture("s2", models.ShiftCompleted, "2025-03-01"),
		shiftFixture("s3", models.ShiftCancelled, "2025-03-02"),
	}

	buckets := ClassifyByStatus(shifts)

	require.Len(t, buckets.Upcoming, 1)
	assert.Equal(t, "s1", buckets.Upcoming[0].ID)
	assert.Empty(t, buckets.Available)
	require.Len(t, buckets.Completed, 1)
	assert.Equal(t, "s2", buckets.Completed[0].ID)
}

func TestClassifyByStatusInProgressIsUpcoming(t *testing.T) {
	buckets := ClassifyByStatus([]models.Shift{
		shiftFixture("s1", models.ShiftInProgress, "2025-03-10"),
	})
	require.Len(t, buckets.Upcoming, 1)
	assert.Equal(t, "s1", buckets.Upcoming[0].ID)
}

func TestClassifyByStatusPreservesOrderAndPartitions(t *testing.T) {
	shifts := []models.Shift{
		shiftFixture("a", models.ShiftAvailable, "2025-03-10"),
		shiftFixture("b", models.ShiftScheduled, "2025-03-11"),
		shiftFixture("c", models.ShiftAvailable, "2025-03-12"),
		shiftFixture("d", models.ShiftCompleted, "2025-03-01"),
		shiftFixture("e", models.ShiftCancelled, "2025-03-02"),
	}

	buckets := ClassifyByStatus(shifts)

	assert.Equal(t, []string{"a", "c"}, shiftIDs(buckets.Available))
	assert.Equal(t, []string{"b"}, shiftIDs(buckets.Upcoming))
	assert.Equal(t, []string{"d"}, shiftIDs(buckets.Completed))

	// Cancelled shifts are dropped; everything else lands in exactly one bucket.
	total := len(buckets.Upcoming) + len(buckets.Available) + len(buckets.Completed)
	assert.Equal(t, len(shifts)-1, total)
}

func TestClassifyByStatusIdempotent(t *testing.T) {
	shifts := []models.Shift{
		shiftFixture("s1", models.ShiftScheduled, "2025-03-10"),
		shiftFixture("s2", models.ShiftAvailable, "2025-03-11"),
	}

	first := ClassifyByStatus(shifts)
	second := ClassifyByStatus(shifts)

	assert.Equal(t, first, second)
}

func TestClassifyByStatusEmptyInput(t *testing.T) {
	buckets := ClassifyByStatus(nil)
	assert.NotNil(t, buckets.Upcoming)
	assert.NotNil(t, buckets.Available)
	assert.NotNil(t, buckets.Completed)
	assert.Empty(t, buckets.Upcoming)
}

func TestFilterBucketsByDate(t *testing.T) {
	buckets := ClassifyByStatus([]models.Shift{
		shiftFixture("s1", models.ShiftScheduled, "2025-03-10"),
		shiftFixture("s2", models.ShiftScheduled, "2025-03-11"),
		shiftFixture("s3", models.ShiftAvailable, "2025-03-10"),
	})

	filtered := FilterBucketsByDate(buckets, "2025-03-10")

	assert.Equal(t, []string{"s1"}, shiftIDs(filtered.Upcoming))
	assert.Equal(t, []string{"s3"}, shiftIDs(filtered.Available))
	assert.Empty(t, filtered.Completed)
}

func TestFilterBucketsByDateEmptyDateIsIdentity(t *testing.T) {
	buckets := ClassifyByStatus([]models.Shift{
		shiftFixture("s1", models.ShiftScheduled, "2025-03-10"),
		shiftFixture("s2", models.ShiftCompleted, "2025-03-01"),
	})

	assert.Equal(t, buckets, FilterBucketsByDate(buckets, ""))
}

func TestFilterBucketsByDateNoMatches(t *testing.T) {
	buckets := ClassifyByStatus([]models.Shift{
		shiftFixture("s1", models.ShiftScheduled, "2025-03-10"),
	})

	filtered := FilterBucketsByDate(buckets, "2030-01-01")

	assert.NotNil(t, filtered.Upcoming)
	assert.Empty(t, filtered.Upcoming)
	assert.Empty(t, filtered.Available)
	assert.Empty(t, filtered.Completed)
}

func TestHasShiftsOnDate(t *testing.T) {
	shifts := []models.Shift{
		shiftFixture("s1", models.ShiftScheduled, "2025-03-10"),
		shiftFixture("s2", models.ShiftCancelled, "2025-03-11"),
	}

	assert.True(t, HasShiftsOnDate(shifts, "2025-03-10"))
	assert.True(t, HasShiftsOnDate(shifts, "2025-03-11"))
	assert.False(t, HasShiftsOnDate(shifts, "2025-03-12"))
	assert.False(t, HasShiftsOnDate(nil, "2025-03-10"))
}

func TestShiftServiceAccept(t *testing.T) {
	repo := new(mockShiftRepo)
	svc := NewShiftService(repo, NewCacheService(nil, nil, 0, nil, false), nil, nil)

	open := shiftFixture("shift-1", models.ShiftAvailable, "2025-03-10")
	open.Version = 3
	claimed := shiftFixture("shift-1", models.ShiftScheduled, "2025-03-10")
	workerID := "worker-1"

	repo.On("GetByID", mock.Anything, "shift-1").Return(&open, nil).Once()
	repo.On("UpdateStatusVersioned", mock.Anything, "shift-1", models.ShiftAvailable, models.ShiftScheduled, 3, &workerID).
		Return(int64(1), nil).Once()
	repo.On("GetByID", mock.Anything, "shift-1").Return(&claimed, nil).Once()

	shift, err := svc.Accept(context.Background(), "shift-1", workerID)

	require.NoError(t, err)
	assert.Equal(t, models.ShiftScheduled, shift.Status)
	repo.AssertExpectations(t)
}

func TestShiftServiceAcceptRace(t *testing.T) {
	repo := new(mockShiftRepo)
	svc := NewShiftService(repo, NewCacheService(nil, nil, 0, nil, false), nil, nil)

	open := shiftFixture("shift-1", models.ShiftAvailable, "2025-03-10")
	workerID := "worker-2"

	repo.On("GetByID", mock.Anything, "shift-1").Return(&open, nil).Once()
	repo.On("UpdateStatusVersioned", mock.Anything, "shift-1", models.ShiftAvailable, models.ShiftScheduled, 1, &workerID).
		Return(int64(0), nil).Once()

	_, err := svc.Accept(context.Background(), "shift-1", workerID)

	var appErr *appErrors.Error
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, appErrors.ErrShiftTaken.Code, appErr.Code)
	repo.AssertExpectations(t)
}

func TestShiftServiceDeclineClearsAssignment(t *testing.T) {
	repo := new(mockShiftRepo)
	svc := NewShiftService(repo, NewCacheService(nil, nil, 0, nil, false), nil, nil)

	open := shiftFixture("shift-1", models.ShiftAvailable, "2025-03-10")
	declined := shiftFixture("shift-1", models.ShiftCancelled, "2025-03-10")

	repo.On("GetByID", mock.Anything, "shift-1").Return(&open, nil).Once()
	repo.On("UpdateStatusVersioned", mock.Anything, "shift-1", models.ShiftAvailable, models.ShiftCancelled, 1, (*string)(nil)).
		Return(int64(1), nil).Once()
	repo.On("GetByID", mock.Anything, "shift-1").Return(&declined, nil).Once()

	shift, err := svc.Decline(context.Background(), "shift-1", "worker-1")

	require.NoError(t, err)
	assert.Equal(t, models.ShiftCancelled, shift.Status)
}

func TestShiftServiceRespondRejectsClosedShift(t *testing.T) {
	repo := new(mockShiftRepo)
	svc := NewShiftService(repo, NewCacheService(nil, nil, 0, nil, false), nil, nil)

	scheduled := shiftFixture("shift-1", models.ShiftScheduled, "2025-03-10")
	repo.On("GetByID", mock.Anything, "shift-1").Return(&scheduled, nil).Once()

	_, err := svc.Accept(context.Background(), "shift-1", "worker-1")

	var appErr *appErrors.Error
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, appErrors.ErrConflict.Code, appErr.Code)
}

func TestShiftServiceGetNotFound(t *testing.T) {
	repo := new(mockShiftRepo)
	svc := NewShiftService(repo, NewCacheService(nil, nil, 0, nil, false), nil, nil)

	repo.On("GetByID", mock.Anything, "missing").Return(nil, sql.ErrNoRows).Once()

	_, err := svc.Get(context.Background(), "missing")

	var appErr *appErrors.Error
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, appErrors.ErrNotFound.Code, appErr.Code)
}

func TestShiftServiceCreateValidation(t *testing.T) {
	repo := new(mockShiftRepo)
	svc := NewShiftService(repo, NewCacheService(nil, nil, 0, nil, false), nil, nil)

	_, err := svc.Create(context.Background(), CreateShiftRequest{ClientName: "Sarah M."})

	var appErr *appErrors.Error
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, appErrors.ErrValidation.Code, appErr.Code)
	repo.AssertNotCalled(t, "Create")
}

func TestShiftServiceListPropagatesRepoError(t *testing.T) {
	repo := new(mockShiftRepo)
	svc := NewShiftService(repo, NewCacheService(nil, nil, 0, nil, false), nil, nil)

	repo.On("List", mock.Anything, mock.Anything).Return(nil, errors.New("connection reset")).Once()

	_, err := svc.ListForWorker(context.Background(), "worker-1")
	assert.Error(t, err)
}

func shiftIDs(shifts []models.Shift) []string {
	ids := []string{}
	for _, shift := range shifts {
		ids = append(ids, shift.ID)
	}
	return ids
}
