package repository

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/carebridge/carebridge-api/internal/models"
)

const shiftColumns = "id, worker_id, client_name, location, shift_date, start_time, end_time, status, job_title, pay_amount, notes, version, created_at, updated_at"

// ShiftRepository persists shifts.
type ShiftRepository struct {
	db *sqlx.DB
}

// NewShiftRepository constructs a shift repository.
func NewShiftRepository(db *sqlx.DB) *ShiftRepository {
	return &ShiftRepository{db: db}
}

// List returns shifts matching the filter ordered by date and start time.
func (r *ShiftRepository) List(ctx context.Context, filter models.ShiftFilter) ([]models.Shift, error) {
	where := []string{"1=1"}
	args := []interface{}{}
	if filter.WorkerID != "" {
		where = append(where, fmt.Sprintf("(worker_id = $%d OR status = 'available')", len(args)+1))
		args = append(args, filter.WorkerID)
	}
	if filter.Date != "" {
		where = append(where, fmt.Sprintf("shift_date = $%d", len(args)+1))
		args = append(args, filter.Date)
	}
	if len(filter.Statuses) > 0 {
		placeholders := make([]string, len(filter.Statuses))
		for i, status := range filter.Statuses {
			placeholders[i] = fmt.Sprintf("$%d", len(args)+1)
			args = append(args, string(status))
		}
		where = append(where, fmt.Sprintf("status IN (%s)", strings.Join(placeholders, ", ")))
	}

	query := fmt.Sprintf(`SELECT %s FROM shifts WHERE %s ORDER BY shift_date ASC, start_time ASC, created_at ASC`,
		shiftColumns, strings.Join(where, " AND "))
	var shifts []models.Shift
	if err := r.db.SelectContext(ctx, &shifts, query, args...); err != nil {
		return nil, fmt.Errorf("list shifts: %w", err)
	}
	return shifts, nil
}

// GetByID fetches a shift.
func (r *ShiftRepository) GetByID(ctx context.Context, id string) (*models.Shift, error) {
	query := fmt.Sprintf("SELECT %s FROM shifts WHERE id = $1", shiftColumns)
	var shift models.Shift
	if err := r.db.GetContext(ctx, &shift, query, id); err != nil {
		return nil, err
	}
	return &shift, nil
}

// Create inserts a shift.
func (r *ShiftRepository) Create(ctx context.Context, shift *models.Shift) error {
	if shift.ID == "" {
		shift.ID = uuid.NewString()
	}
	now := time.Now().UTC()
	if shift.CreatedAt.IsZero() {
		shift.CreatedAt = now
	}
	shift.UpdatedAt = now
	query := `INSERT INTO shifts (id, worker_id, client_name, location, shift_date, start_time, end_time, status, job_title, pay_amount, notes, version, created_at, updated_at)
VALUES (:id, :worker_id, :client_name, :location, :shift_date, :start_time, :end_time, :status, :job_title, :pay_amount, :notes, :version, :created_at, :updated_at)`
	if _, err := r.db.NamedExecContext(ctx, query, shift); err != nil {
		return fmt.Errorf("create shift: %w", err)
	}
	return nil
}

// UpdateStatusVersioned transitions a shift's status guarded by the version
// column. It returns the number of rows touched: zero means the caller lost
// the race or the shift no longer carries the expected status.
func (r *ShiftRepository) UpdateStatusVersioned(ctx context.Context, id string, from, to models.ShiftStatus, version int, workerID *string) (int64, error) {
	query := `UPDATE shifts SET status = $1, worker_id = COALESCE($2, worker_id), version = version + 1, updated_at = $3
WHERE id = $4 AND status = $5 AND version = $6`
	result, err := r.db.ExecContext(ctx, query, string(to), workerID, time.Now().UTC(), id, string(from), version)
	if err != nil {
		return 0, fmt.Errorf("update shift status: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("update shift status rows: %w", err)
	}
	return affected, nil
}
