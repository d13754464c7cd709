package repository

import (
	"context"
	"fmt"
	"strings"

	"github.com/jmoiron/sqlx"

	"github.com/carebridge/carebridge-api/internal/models"
)

const participantColumns = "id, name, image, address, age, support_needs, skills, availability, rating, next_appointment, last_visit, created_at, updated_at"

// ParticipantRepository persists participants.
type ParticipantRepository struct {
	db *sqlx.DB
}

// NewParticipantRepository constructs a participant repository.
func NewParticipantRepository(db *sqlx.DB) *ParticipantRepository {
	return &ParticipantRepository{db: db}
}

// List returns participants matching the filter plus the total count.
func (r *ParticipantRepository) List(ctx context.Context, filter models.ParticipantFilter) ([]models.Participant, int, error) {
	where := []string{"1=1"}
	args := []interface{}{}
	if filter.Search != "" {
		where = append(where, fmt.Sprintf("(name ILIKE $%d OR address ILIKE $%d)", len(args)+1, len(args)+1))
		args = append(args, "%"+filter.Search+"%")
	}
	if filter.Skill != "" {
		where = append(where, fmt.Sprintf("$%d = ANY(skills)", len(args)+1))
		args = append(args, filter.Skill)
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

	query := fmt.Sprintf("SELECT %s FROM participants WHERE %s ORDER BY name ASC LIMIT %d OFFSET %d",
		participantColumns, whereClause, size, offset)
	var participants []models.Participant
	if err := r.db.SelectContext(ctx, &participants, query, args...); err != nil {
		return nil, 0, fmt.Errorf("list participants: %w", err)
	}

	countQuery := fmt.Sprintf("SELECT COUNT(*) FROM participants WHERE %s", whereClause)
	var total int
	if err := r.db.GetContext(ctx, &total, countQuery, args...); err != nil {
		return nil, 0, fmt.Errorf("count participants: %w", err)
	}
	return participants, total, nil
}

// GetByID fetches a participant.
func (r *ParticipantRepository) GetByID(ctx context.Context, id string) (*models.Participant, error) {
	query := fmt.Sprintf("SELECT %s FROM participants WHERE id = $1", participantColumns)
	var participant models.Participant
	if err := r.db.GetContext(ctx, &participant, query, id); err != nil {
		return nil, err
	}
	return &participant, nil
}
