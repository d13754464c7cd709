package repository

import (
	"context"
	"regexp"
	"testing"
	"time"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/carebridge/carebridge-api/internal/models"
)

func TestAvailabilityRepositoryListByWorkerDate(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewAvailabilityRepository(db)

	now := time.Now()
	rows := sqlmock.NewRows([]string{"id", "worker_id", "slot_date", "start_hour", "end_hour", "created_at"}).
		AddRow("slot-1", "worker-1", "2025-04-10", 9.0, 17.0, now).
		AddRow("slot-2", "worker-1", "2025-04-10", 18.0, 20.0, now.Add(time.Minute))
	mock.ExpectQuery("SELECT (.+) FROM availability_slots WHERE worker_id = \\$1 AND slot_date = \\$2 ORDER BY created_at ASC").
		WithArgs("worker-1", "2025-04-10").
		WillReturnRows(rows)

	slots, err := repo.ListByWorkerDate(context.Background(), "worker-1", "2025-04-10")
	require.NoError(t, err)
	require.Len(t, slots, 2)
	assert.Equal(t, 9.0, slots[0].StartHour)
	assert.Equal(t, 20.0, slots[1].EndHour)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAvailabilityRepositoryInsertAndDelete(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewAvailabilityRepository(db)

	mock.ExpectExec("INSERT INTO availability_slots").
		WillReturnResult(sqlmock.NewResult(1, 1))

	slot := &models.AvailabilitySlot{WorkerID: "worker-1", Date: "2025-04-10", StartHour: 9, EndHour: 17}
	require.NoError(t, repo.Insert(context.Background(), slot))
	assert.NotEmpty(t, slot.ID)

	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM availability_slots WHERE id = $1")).
		WithArgs(slot.ID).
		WillReturnResult(sqlmock.NewResult(0, 1))
	require.NoError(t, repo.Delete(context.Background(), slot.ID))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAvailabilityRepositoryDistinctDates(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewAvailabilityRepository(db)

	rows := sqlmock.NewRows([]string{"slot_date"}).AddRow("2025-04-10").AddRow("2025-04-12")
	mock.ExpectQuery("SELECT slot_date FROM availability_slots WHERE worker_id = \\$1").
		WithArgs("worker-1").
		WillReturnRows(rows)

	dates, err := repo.DistinctDates(context.Background(), "worker-1")
	require.NoError(t, err)
	assert.Equal(t, []string{"2025-04-10", "2025-04-12"}, dates)
	assert.NoError(t, mock.ExpectationsWereMet())
}
