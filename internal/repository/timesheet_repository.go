package repository

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"github.com/carebridge/carebridge-api/internal/models"
)

const timesheetColumns = "id, worker_id, shift_id, title, client_name, entry_date, start_time, end_time, total_hours, activities, status, created_at, updated_at"

// TimesheetRepository persists timesheet entries.
type TimesheetRepository struct {
	db *sqlx.DB
}

// NewTimesheetRepository constructs a timesheet repository.
func NewTimesheetRepository(db *sqlx.DB) *TimesheetRepository {
	return &TimesheetRepository{db: db}
}

// List returns timesheet entries matching the filter ordered by entry date.
func (r *TimesheetRepository) List(ctx context.Context, filter models.TimesheetFilter) ([]models.TimesheetEntry, error) {
	where := []string{"1=1"}
	args := []interface{}{}
	if filter.WorkerID != "" {
		where = append(where, fmt.Sprintf("worker_id = $%d", len(args)+1))
		args = append(args, filter.WorkerID)
	}
	if filter.Status != nil {
		where = append(where, fmt.Sprintf("status = $%d", len(args)+1))
		args = append(args, string(*filter.Status))
	}
	if filter.FromDate != "" {
		where = append(where, fmt.Sprintf("entry_date >= $%d", len(args)+1))
		args = append(args, filter.FromDate)
	}
	if filter.ToDate != "" {
		where = append(where, fmt.Sprintf("entry_date <= $%d", len(args)+1))
		args = append(args, filter.ToDate)
	}

	query := fmt.Sprintf("SELECT %s FROM timesheet_entries WHERE %s ORDER BY entry_date ASC, created_at ASC",
		timesheetColumns, strings.Join(where, " AND "))
	var entries []models.TimesheetEntry
	if err := r.db.SelectContext(ctx, &entries, query, args...); err != nil {
		return nil, fmt.Errorf("list timesheet entries: %w", err)
	}
	return entries, nil
}

// GetByIDs returns the worker's entries among the requested ids.
func (r *TimesheetRepository) GetByIDs(ctx context.Context, workerID string, ids []string) ([]models.TimesheetEntry, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	query := fmt.Sprintf("SELECT %s FROM timesheet_entries WHERE worker_id = $1 AND id = ANY($2) ORDER BY entry_date ASC", timesheetColumns)
	var entries []models.TimesheetEntry
	if err := r.db.SelectContext(ctx, &entries, query, workerID, pq.Array(ids)); err != nil {
		return nil, fmt.Errorf("get timesheet entries: %w", err)
	}
	return entries, nil
}

// Create inserts an entry.
func (r *TimesheetRepository) Create(ctx context.Context, entry *models.TimesheetEntry) error {
	if entry.ID == "" {
		entry.ID = uuid.NewString()
	}
	now := time.Now().UTC()
	if entry.CreatedAt.IsZero() {
		entry.CreatedAt = now
	}
	entry.UpdatedAt = now
	query := `INSERT INTO timesheet_entries (id, worker_id, shift_id, title, client_name, entry_date, start_time, end_time, total_hours, activities, status, created_at, updated_at)
VALUES (:id, :worker_id, :shift_id, :title, :client_name, :entry_date, :start_time, :end_time, :total_hours, :activities, :status, :created_at, :updated_at)`
	if _, err := r.db.NamedExecContext(ctx, query, entry); err != nil {
		return fmt.Errorf("create timesheet entry: %w", err)
	}
	return nil
}

// UpdateStatus transitions an entry's status.
func (r *TimesheetRepository) UpdateStatus(ctx context.Context, id string, status models.TimesheetStatus) error {
	result, err := r.db.ExecContext(ctx,
		"UPDATE timesheet_entries SET status = $1, updated_at = $2 WHERE id = $3",
		string(status), time.Now().UTC(), id)
	if err != nil {
		return fmt.Errorf("update timesheet status: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("update timesheet status rows: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("timesheet entry %s not found", id)
	}
	return nil
}
