package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/carebridge/carebridge-api/internal/dto"
	"github.com/carebridge/carebridge-api/internal/models"
	"github.com/carebridge/carebridge-api/internal/service"
	appErrors "github.com/carebridge/carebridge-api/pkg/errors"
	"github.com/carebridge/carebridge-api/pkg/response"
)

// ShiftHandler wires HTTP endpoints to the shift services.
type ShiftHandler struct {
	shifts *service.ShiftService
	views  *service.ShiftViewService
}

// NewShiftHandler creates a new handler.
func NewShiftHandler(shifts *service.ShiftService, views *service.ShiftViewService) *ShiftHandler {
	return &ShiftHandler{shifts: shifts, views: views}
}

// View godoc
// @Summary Tabbed shifts view
// @Description Compose the upcoming/available/completed view for the caller
// @Tags Shifts
// @Produce json
// @Param tab query string false "Active tab" default(upcoming)
// @Param date query string false "Filter date YYYY-MM-DD"
// @Success 200 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Router /shifts/view [get]
func (h *ShiftHandler) View(c *gin.Context) {
	claims := claimsFromContext(c)
	if claims == nil {
		response.Error(c, appErrors.ErrUnauthorized)
		return
	}

	tab := models.ShiftTab(c.DefaultQuery("tab", string(models.TabUpcoming)))
	view, err := h.views.Compose(c.Request.Context(), dto.ShiftViewRequest{
		WorkerID: claims.UserID,
		Date:     c.Query("date"),
		Tab:      tab,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.JSON(c, http.StatusOK, view, nil)
}

// Get godoc
// @Summary Shift detail
// @Tags Shifts
// @Produce json
// @Param id path string true "Shift ID"
// @Success 200 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /shifts/{id} [get]
func (h *ShiftHandler) Get(c *gin.Context) {
	shift, err := h.shifts.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, shift, nil)
}

// Create godoc
// @Summary Register a shift
// @Tags Shifts
// @Accept json
// @Produce json
// @Param payload body service.CreateShiftRequest true "Shift payload"
// @Success 201 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Router /shifts [post]
func (h *ShiftHandler) Create(c *gin.Context) {
	var req service.CreateShiftRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid shift payload"))
		return
	}

	shift, err := h.shifts.Create(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, shift)
}

// Accept godoc
// @Summary Accept an available shift
// @Tags Shifts
// @Produce json
// @Param id path string true "Shift ID"
// @Success 200 {object} response.Envelope
// @Failure 409 {object} response.Envelope
// @Router /shifts/{id}/accept [post]
func (h *ShiftHandler) Accept(c *gin.Context) {
	h.respond(c, h.shifts.Accept)
}

// Decline godoc
// @Summary Decline an available shift
// @Tags Shifts
// @Produce json
// @Param id path string true "Shift ID"
// @Success 200 {object} response.Envelope
// @Failure 409 {object} response.Envelope
// @Router /shifts/{id}/decline [post]
func (h *ShiftHandler) Decline(c *gin.Context) {
	h.respond(c, h.shifts.Decline)
}

func (h *ShiftHandler) respond(c *gin.Context, action func(ctx context.Context, id, workerID string) (*models.Shift, error)) {
	claims := claimsFromContext(c)
	if claims == nil {
		response.Error(c, appErrors.ErrUnauthorized)
		return
	}

	shift, err := action(c.Request.Context(), c.Param("id"), claims.UserID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, shift, nil)
}
