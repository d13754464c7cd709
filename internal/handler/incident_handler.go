package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/carebridge/carebridge-api/internal/models"
	"github.com/carebridge/carebridge-api/internal/service"
	appErrors "github.com/carebridge/carebridge-api/pkg/errors"
	"github.com/carebridge/carebridge-api/pkg/response"
)

// IncidentHandler wires HTTP endpoints to the incident service.
type IncidentHandler struct {
	service *service.IncidentService
}

// NewIncidentHandler creates a new handler.
func NewIncidentHandler(svc *service.IncidentService) *IncidentHandler {
	return &IncidentHandler{service: svc}
}

// Report godoc
// @Summary File an incident report
// @Tags Incidents
// @Accept json
// @Produce json
// @Param payload body service.ReportIncidentRequest true "Incident payload"
// @Success 201 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Router /incidents [post]
func (h *IncidentHandler) Report(c *gin.Context) {
	claims := claimsFromContext(c)
	if claims == nil {
		response.Error(c, appErrors.ErrUnauthorized)
		return
	}

	var req service.ReportIncidentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid incident payload"))
		return
	}

	incident, err := h.service.Report(c.Request.Context(), claims.UserID, req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, incident)
}

// List godoc
// @Summary List incidents
// @Tags Incidents
// @Produce json
// @Param severity query string false "Filter by severity"
// @Param status query string false "Filter by status"
// @Param search query string false "Title or description search"
// @Success 200 {object} response.Envelope
// @Router /incidents [get]
func (h *IncidentHandler) List(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "20"))

	filter := models.IncidentFilter{
		Search:   c.Query("search"),
		Page:     page,
		PageSize: pageSize,
	}
	if severity := c.Query("severity"); severity != "" {
		s := models.IncidentSeverity(severity)
		filter.Severity = &s
	}
	if status := c.Query("status"); status != "" {
		s := models.IncidentStatus(status)
		filter.Status = &s
	}

	incidents, pagination, err := h.service.List(c.Request.Context(), filter)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, incidents, pagination)
}

// Get godoc
// @Summary Incident detail
// @Tags Incidents
// @Produce json
// @Param id path string true "Incident ID"
// @Success 200 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /incidents/{id} [get]
func (h *IncidentHandler) Get(c *gin.Context) {
	incident, err := h.service.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, incident, nil)
}

// Transition godoc
// @Summary Move an incident to a new handling state
// @Tags Incidents
// @Accept json
// @Produce json
// @Param id path string true "Incident ID"
// @Param payload body object true "Target status"
// @Success 200 {object} response.Envelope
// @Failure 409 {object} response.Envelope
// @Router /incidents/{id}/status [put]
func (h *IncidentHandler) Transition(c *gin.Context) {
	var payload struct {
		Status string `json:"status" binding:"required"`
	}
	if err := c.ShouldBindJSON(&payload); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "status is required"))
		return
	}

	incident, err := h.service.Transition(c.Request.Context(), c.Param("id"), models.IncidentStatus(payload.Status))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, incident, nil)
}
