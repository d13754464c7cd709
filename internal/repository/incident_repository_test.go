package repository

import (
	"context"
	"testing"
	"time"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/carebridge/carebridge-api/internal/models"
)

func incidentRows() *sqlmock.Rows {
	return sqlmock.NewRows([]string{
		"id", "title", "description", "incident_date", "location", "severity", "status",
		"reported_by", "involved_persons", "witness_names", "actions", "created_at", "updated_at",
	})
}

func TestIncidentRepositoryCreate(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewIncidentRepository(db)

	mock.ExpectExec("INSERT INTO incidents").
		WillReturnResult(sqlmock.NewResult(1, 1))

	incident := &models.Incident{
		Title:       "Fall during transfer",
		Description: "Client slipped while moving to wheelchair",
		Date:        "2025-04-08",
		Severity:    models.SeverityHigh,
		Status:      models.IncidentReported,
		ReportedBy:  "worker-1",
	}
	require.NoError(t, repo.Create(context.Background(), incident))
	assert.NotEmpty(t, incident.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestIncidentRepositoryListBySeverity(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewIncidentRepository(db)

	now := time.Now()
	mock.ExpectQuery("SELECT (.+) FROM incidents WHERE 1=1 AND severity = \\$1").
		WithArgs("high").
		WillReturnRows(incidentRows().
			AddRow("inc-1", "Fall", "desc", "2025-04-08", nil, "high", "reported", "worker-1", nil, nil, nil, now, now))
	mock.ExpectQuery("SELECT COUNT\\(\\*\\) FROM incidents WHERE 1=1 AND severity = \\$1").
		WithArgs("high").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))

	severity := models.SeverityHigh
	incidents, total, err := repo.List(context.Background(), models.IncidentFilter{Severity: &severity})
	require.NoError(t, err)
	assert.Len(t, incidents, 1)
	assert.Equal(t, 1, total)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestIncidentRepositoryUpdateStatusMissing(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewIncidentRepository(db)

	mock.ExpectExec("UPDATE incidents SET status").
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := repo.UpdateStatus(context.Background(), "missing", models.IncidentResolved)
	require.Error(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}
