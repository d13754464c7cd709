package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/carebridge/carebridge-api/internal/models"
)

// AvailabilityRepository persists caregiver availability slots. Ordering is
// always creation order so index-based removal lines up with what the worker
// sees.
type AvailabilityRepository struct {
	db *sqlx.DB
}

// NewAvailabilityRepository constructs an availability repository.
func NewAvailabilityRepository(db *sqlx.DB) *AvailabilityRepository {
	return &AvailabilityRepository{db: db}
}

// ListByWorker returns all of a worker's slots in creation order.
func (r *AvailabilityRepository) ListByWorker(ctx context.Context, workerID string) ([]models.AvailabilitySlot, error) {
	const query = `SELECT id, worker_id, slot_date, start_hour, end_hour, created_at
FROM availability_slots WHERE worker_id = $1 ORDER BY created_at ASC, id ASC`
	var slots []models.AvailabilitySlot
	if err := r.db.SelectContext(ctx, &slots, query, workerID); err != nil {
		return nil, fmt.Errorf("list availability slots: %w", err)
	}
	return slots, nil
}

// ListByWorkerDate returns the slot list for one date in creation order.
func (r *AvailabilityRepository) ListByWorkerDate(ctx context.Context, workerID, date string) ([]models.AvailabilitySlot, error) {
	const query = `SELECT id, worker_id, slot_date, start_hour, end_hour, created_at
FROM availability_slots WHERE worker_id = $1 AND slot_date = $2 ORDER BY created_at ASC, id ASC`
	var slots []models.AvailabilitySlot
	if err := r.db.SelectContext(ctx, &slots, query, workerID, date); err != nil {
		return nil, fmt.Errorf("list availability slots for date: %w", err)
	}
	return slots, nil
}

// Insert stores a new slot.
func (r *AvailabilityRepository) Insert(ctx context.Context, slot *models.AvailabilitySlot) error {
	if slot.ID == "" {
		slot.ID = uuid.NewString()
	}
	if slot.CreatedAt.IsZero() {
		slot.CreatedAt = time.Now().UTC()
	}
	const query = `INSERT INTO availability_slots (id, worker_id, slot_date, start_hour, end_hour, created_at)
VALUES (:id, :worker_id, :slot_date, :start_hour, :end_hour, :created_at)`
	if _, err := r.db.NamedExecContext(ctx, query, slot); err != nil {
		return fmt.Errorf("insert availability slot: %w", err)
	}
	return nil
}

// Delete removes a slot by id.
func (r *AvailabilityRepository) Delete(ctx context.Context, id string) error {
	if _, err := r.db.ExecContext(ctx, "DELETE FROM availability_slots WHERE id = $1", id); err != nil {
		return fmt.Errorf("delete availability slot: %w", err)
	}
	return nil
}

// DistinctDates returns the worker's dates with at least one slot, ordered by
// when the first slot for each date was added.
func (r *AvailabilityRepository) DistinctDates(ctx context.Context, workerID string) ([]string, error) {
	const query = `SELECT slot_date FROM availability_slots WHERE worker_id = $1
GROUP BY slot_date ORDER BY MIN(created_at) ASC`
	var dates []string
	if err := r.db.SelectContext(ctx, &dates, query, workerID); err != nil {
		return nil, fmt.Errorf("list availability dates: %w", err)
	}
	return dates, nil
}
