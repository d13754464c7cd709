package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/carebridge/carebridge-api/internal/service"
	appErrors "github.com/carebridge/carebridge-api/pkg/errors"
	"github.com/carebridge/carebridge-api/pkg/response"
)

// AvailabilityHandler wires HTTP endpoints to the availability service.
type AvailabilityHandler struct {
	service *service.AvailabilityService
}

// NewAvailabilityHandler creates a new handler.
func NewAvailabilityHandler(svc *service.AvailabilityService) *AvailabilityHandler {
	return &AvailabilityHandler{service: svc}
}

// ListDays godoc
// @Summary List availability by day
// @Tags Availability
// @Produce json
// @Param canonical query bool false "Merge overlapping slots"
// @Success 200 {object} response.Envelope
// @Router /availability [get]
func (h *AvailabilityHandler) ListDays(c *gin.Context) {
	claims := claimsFromContext(c)
	if claims == nil {
		response.Error(c, appErrors.ErrUnauthorized)
		return
	}

	canonical := c.Query("canonical") == "true"
	days, err := h.service.ListDays(c.Request.Context(), claims.UserID, canonical)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, days, nil)
}

// SelectDay godoc
// @Summary Open one day in the availability editor
// @Tags Availability
// @Produce json
// @Param date path string true "Date YYYY-MM-DD"
// @Success 200 {object} response.Envelope
// @Router /availability/{date} [get]
func (h *AvailabilityHandler) SelectDay(c *gin.Context) {
	claims := claimsFromContext(c)
	if claims == nil {
		response.Error(c, appErrors.ErrUnauthorized)
		return
	}

	selection, err := h.service.SelectDay(c.Request.Context(), claims.UserID, c.Param("date"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, selection, nil)
}

// AddSlot godoc
// @Summary Add an availability slot
// @Tags Availability
// @Accept json
// @Produce json
// @Param date path string true "Date YYYY-MM-DD"
// @Param payload body object true "Slot hours"
// @Success 201 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Router /availability/{date}/slots [post]
func (h *AvailabilityHandler) AddSlot(c *gin.Context) {
	claims := claimsFromContext(c)
	if claims == nil {
		response.Error(c, appErrors.ErrUnauthorized)
		return
	}

	var payload struct {
		StartHour float64 `json:"start_hour"`
		EndHour   float64 `json:"end_hour"`
	}
	if err := c.ShouldBindJSON(&payload); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid slot payload"))
		return
	}

	slot, err := h.service.AddSlot(c.Request.Context(), claims.UserID, c.Param("date"), payload.StartHour, payload.EndHour)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, slot)
}

// RemoveSlot godoc
// @Summary Remove a slot by position
// @Tags Availability
// @Produce json
// @Param date path string true "Date YYYY-MM-DD"
// @Param index path int true "Slot position"
// @Success 204 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Router /availability/{date}/slots/{index} [delete]
func (h *AvailabilityHandler) RemoveSlot(c *gin.Context) {
	claims := claimsFromContext(c)
	if claims == nil {
		response.Error(c, appErrors.ErrUnauthorized)
		return
	}

	index, err := strconv.Atoi(c.Param("index"))
	if err != nil {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "slot index must be an integer"))
		return
	}

	if err := h.service.RemoveSlot(c.Request.Context(), claims.UserID, c.Param("date"), index); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}
