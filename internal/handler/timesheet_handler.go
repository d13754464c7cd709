package handler

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/carebridge/carebridge-api/internal/models"
	"github.com/carebridge/carebridge-api/internal/service"
	appErrors "github.com/carebridge/carebridge-api/pkg/errors"
	"github.com/carebridge/carebridge-api/pkg/response"
)

// TimesheetHandler wires HTTP endpoints to the timesheet service.
type TimesheetHandler struct {
	service *service.TimesheetService
}

// NewTimesheetHandler creates a new handler.
func NewTimesheetHandler(svc *service.TimesheetService) *TimesheetHandler {
	return &TimesheetHandler{service: svc}
}

func timesheetFilter(c *gin.Context, workerID string) models.TimesheetFilter {
	filter := models.TimesheetFilter{
		WorkerID: workerID,
		FromDate: c.Query("from"),
		ToDate:   c.Query("to"),
	}
	if status := c.Query("status"); status != "" {
		s := models.TimesheetStatus(status)
		filter.Status = &s
	}
	return filter
}

// List godoc
// @Summary List timesheet entries
// @Tags Timesheets
// @Produce json
// @Param status query string false "Filter by status"
// @Param from query string false "From date YYYY-MM-DD"
// @Param to query string false "To date YYYY-MM-DD"
// @Success 200 {object} response.Envelope
// @Router /timesheets [get]
func (h *TimesheetHandler) List(c *gin.Context) {
	claims := claimsFromContext(c)
	if claims == nil {
		response.Error(c, appErrors.ErrUnauthorized)
		return
	}

	entries, err := h.service.List(c.Request.Context(), timesheetFilter(c, claims.UserID))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, entries, nil)
}

// Create godoc
// @Summary Log hours
// @Tags Timesheets
// @Accept json
// @Produce json
// @Param payload body service.CreateTimesheetRequest true "Entry payload"
// @Success 201 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Router /timesheets [post]
func (h *TimesheetHandler) Create(c *gin.Context) {
	claims := claimsFromContext(c)
	if claims == nil {
		response.Error(c, appErrors.ErrUnauthorized)
		return
	}

	var req service.CreateTimesheetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid timesheet payload"))
		return
	}

	entry, err := h.service.Create(c.Request.Context(), claims.UserID, req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, entry)
}

// Submit godoc
// @Summary Submit a draft entry
// @Tags Timesheets
// @Produce json
// @Param id path string true "Entry ID"
// @Success 204 {object} response.Envelope
// @Router /timesheets/{id}/submit [post]
func (h *TimesheetHandler) Submit(c *gin.Context) {
	if err := h.service.Submit(c.Request.Context(), c.Param("id")); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}

// Approve godoc
// @Summary Approve a submitted entry
// @Tags Timesheets
// @Produce json
// @Param id path string true "Entry ID"
// @Success 204 {object} response.Envelope
// @Router /timesheets/{id}/approve [post]
func (h *TimesheetHandler) Approve(c *gin.Context) {
	if err := h.service.Approve(c.Request.Context(), c.Param("id")); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}

// ExportCSV godoc
// @Summary Export timesheet entries as CSV
// @Tags Timesheets
// @Produce text/csv
// @Success 200 {file} file
// @Router /timesheets/export [get]
func (h *TimesheetHandler) ExportCSV(c *gin.Context) {
	claims := claimsFromContext(c)
	if claims == nil {
		response.Error(c, appErrors.ErrUnauthorized)
		return
	}

	data, err := h.service.ExportCSV(c.Request.Context(), timesheetFilter(c, claims.UserID))
	if err != nil {
		response.Error(c, err)
		return
	}

	filename := fmt.Sprintf("timesheets-%s.csv", time.Now().Format("2006-01-02"))
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.Data(http.StatusOK, "text/csv", data)
}
