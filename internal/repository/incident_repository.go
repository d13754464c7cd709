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

const incidentColumns = "id, title, description, incident_date, location, severity, status, reported_by, involved_persons, witness_names, actions, created_at, updated_at"

// IncidentRepository persists incident reports.
type IncidentRepository struct {
	db *sqlx.DB
}

// NewIncidentRepository constructs an incident repository.
func NewIncidentRepository(db *sqlx.DB) *IncidentRepository {
	return &IncidentRepository{db: db}
}

// Create inserts an incident report.
func (r *IncidentRepository) Create(ctx context.Context, incident *models.Incident) error {
	if incident.ID == "" {
		incident.ID = uuid.NewString()
	}
	now := time.Now().UTC()
	if incident.CreatedAt.IsZero() {
		incident.CreatedAt = now
	}
	incident.UpdatedAt = now
	query := `INSERT INTO incidents (id, title, description, incident_date, location, severity, status, reported_by, involved_persons, witness_names, actions, created_at, updated_at)
VALUES (:id, :title, :description, :incident_date, :location, :severity, :status, :reported_by, :involved_persons, :witness_names, :actions, :created_at, :updated_at)`
	if _, err := r.db.NamedExecContext(ctx, query, incident); err != nil {
		return fmt.Errorf("create incident: %w", err)
	}
	return nil
}

// List returns incidents matching the filter plus the total count, newest
// first.
func (r *IncidentRepository) List(ctx context.Context, filter models.IncidentFilter) ([]models.Incident, int, error) {
	where := []string{"1=1"}
	args := []interface{}{}
	if filter.Severity != nil {
		where = append(where, fmt.Sprintf("severity = $%d", len(args)+1))
		args = append(args, string(*filter.Severity))
	}
	if filter.Status != nil {
		where = append(where, fmt.Sprintf("status = $%d", len(args)+1))
		args = append(args, string(*filter.Status))
	}
	if filter.Search != "" {
		where = append(where, fmt.Sprintf("(title ILIKE $%d OR description ILIKE $%d)", len(args)+1, len(args)+1))
		args = append(args, "%"+filter.Search+"%")
	}
	whereClause := strings.Join(where, " AND ")

	page := filter.Page
	if page < 1 {
		page = 1
	}
	size := filter.PageSize
	if size <= 0 || size > 200 {
		size = 50
	}
	offset := (page - 1) * size

	query := fmt.Sprintf("SELECT %s FROM incidents WHERE %s ORDER BY incident_date DESC, created_at DESC LIMIT %d OFFSET %d",
		incidentColumns, whereClause, size, offset)
	var incidents []models.Incident
	if err := r.db.SelectContext(ctx, &incidents, query, args...); err != nil {
		return nil, 0, fmt.Errorf("list incidents: %w", err)
	}

	countQuery := fmt.Sprintf("SELECT COUNT(*) FROM incidents WHERE %s", whereClause)
	var total int
	if err := r.db.GetContext(ctx, &total, countQuery, args...); err != nil {
		return nil, 0, fmt.Errorf("count incidents: %w", err)
	}
	return incidents, total, nil
}

// GetByID fetches an incident.
func (r *IncidentRepository) GetByID(ctx context.Context, id string) (*models.Incident, error) {
	query := fmt.Sprintf("SELECT %s FROM incidents WHERE id = $1", incidentColumns)
	var incident models.Incident
	if err := r.db.GetContext(ctx, &incident, query, id); err != nil {
		return nil, err
	}
	return &incident, nil
}

// UpdateStatus transitions an incident's handling state.
func (r *IncidentRepository) UpdateStatus(ctx context.Context, id string, status models.IncidentStatus) error {
	result, err := r.db.ExecContext(ctx,
		"UPDATE incidents SET status = $1, updated_at = $2 WHERE id = $3",
		string(status), time.Now().UTC(), id)
	if err != nil {
		return fmt.Errorf("update incident status: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("update incident status rows: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("incident %s not found", id)
	}
	return nil
}
