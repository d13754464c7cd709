package service

import (
	"context"
	"database/sql"
	"errors"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/carebridge/carebridge-api/internal/models"
	appErrors "github.com/carebridge/carebridge-api/pkg/errors"
)

type incidentRepository interface {
	Create(ctx context.Context, incident *models.Incident) error
	List(ctx context.Context, filter models.IncidentFilter) ([]models.Incident, int, error)
	GetByID(ctx context.Context, id string) (*models.Incident, error)
	UpdateStatus(ctx context.Context, id string, status models.IncidentStatus) error
}

// allowed incident status transitions
var incidentTransitions = map[models.IncidentStatus][]models.IncidentStatus{
	models.IncidentReported:      {models.IncidentInvestigating, models.IncidentClosed},
	models.IncidentInvestigating: {models.IncidentResolved, models.IncidentClosed},
	models.IncidentResolved:      {models.IncidentClosed},
}

// IncidentService manages incident reports and their handling lifecycle.
type IncidentService struct {
	repo      incidentRepository
	validator *validator.Validate
	logger    *zap.Logger
}

// NewIncidentService constructs the service.
func NewIncidentService(repo incidentRepository, validate *validator.Validate, logger *zap.Logger) *IncidentService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &IncidentService{repo: repo, validator: validate, logger: logger}
}

// ReportIncidentRequest is the payload for filing an incident.
type ReportIncidentRequest struct {
	Title           string   `json:"title" validate:"required"`
	Description     string   `json:"description" validate:"required"`
	Date            string   `json:"date" validate:"required,datetime=2006-01-02"`
	Location        *string  `json:"location"`
	Severity        string   `json:"severity" validate:"required,oneof=low medium high critical"`
	InvolvedPersons []string `json:"involved_persons"`
	WitnessNames    []string `json:"witness_names"`
	Actions         *string  `json:"actions"`
}

// Report files a new incident in the reported state.
func (s *IncidentService) Report(ctx context.Context, reporterID string, req ReportIncidentRequest) (*models.Incident, error) {
	if reporterID == "" {
		return nil, appErrors.Clone(appErrors.ErrValidation, "reporter id is required")
	}
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid incident payload")
	}

	incident := &models.Incident{
		ID:              uuid.NewString(),
		Title:           req.Title,
		Description:     req.Description,
		Date:            req.Date,
		Location:        req.Location,
		Severity:        models.IncidentSeverity(req.Severity),
		Status:          models.IncidentReported,
		ReportedBy:      reporterID,
		InvolvedPersons: req.InvolvedPersons,
		WitnessNames:    req.WitnessNames,
		Actions:         req.Actions,
	}
	if err := s.repo.Create(ctx, incident); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to report incident")
	}

	if incident.Severity == models.SeverityCritical {
		s.logger.Warn("critical incident reported",
			zap.String("incident_id", incident.ID),
			zap.String("reported_by", reporterID))
	}
	return incident, nil
}

// List returns incidents matching the filter with pagination metadata.
func (s *IncidentService) List(ctx context.Context, filter models.IncidentFilter) ([]models.Incident, *models.Pagination, error) {
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.PageSize < 1 || filter.PageSize > 100 {
		filter.PageSize = 20
	}
	incidents, total, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list incidents")
	}
	pagination := &models.Pagination{Page: filter.Page, PageSize: filter.PageSize, TotalCount: total}
	return incidents, pagination, nil
}

// Get returns a single incident.
func (s *IncidentService) Get(ctx context.Context, id string) (*models.Incident, error) {
	incident, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "incident not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to get incident")
	}
	return incident, nil
}

// Transition moves an incident to a new handling state, enforcing the
// reported -> investigating -> resolved -> closed ladder.
func (s *IncidentService) Transition(ctx context.Context, id string, to models.IncidentStatus) (*models.Incident, error) {
	incident, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if !transitionAllowed(incident.Status, to) {
		return nil, appErrors.Clone(appErrors.ErrConflict,
			"cannot move incident from "+string(incident.Status)+" to "+string(to))
	}
	if err := s.repo.UpdateStatus(ctx, id, to); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to update incident")
	}
	incident.Status = to
	return incident, nil
}

func transitionAllowed(from, to models.IncidentStatus) bool {
	for _, allowed := range incidentTransitions[from] {
		if allowed == to {
			return true
		}
	}
	return false
}
