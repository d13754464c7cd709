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

// ParticipantHandler wires HTTP endpoints to the participant service.
type ParticipantHandler struct {
	participants *service.ParticipantService
	shifts       *service.ShiftService
}

// NewParticipantHandler creates a new handler.
func NewParticipantHandler(participants *service.ParticipantService, shifts *service.ShiftService) *ParticipantHandler {
	return &ParticipantHandler{participants: participants, shifts: shifts}
}

// List godoc
// @Summary List participants
// @Tags Participants
// @Produce json
// @Param search query string false "Name or address search"
// @Param skill query string false "Required skill"
// @Param page query int false "Page"
// @Param page_size query int false "Page size"
// @Success 200 {object} response.Envelope
// @Router /participants [get]
func (h *ParticipantHandler) List(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "20"))

	participants, pagination, err := h.participants.List(c.Request.Context(), models.ParticipantFilter{
		Search:   c.Query("search"),
		Skill:    c.Query("skill"),
		Page:     page,
		PageSize: pageSize,
	})
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, participants, pagination)
}

// Get godoc
// @Summary Participant detail
// @Tags Participants
// @Produce json
// @Param id path string true "Participant ID"
// @Success 200 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /participants/{id} [get]
func (h *ParticipantHandler) Get(c *gin.Context) {
	participant, err := h.participants.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, participant, nil)
}

// MatchShift godoc
// @Summary Rank candidates for an open shift
// @Tags Participants
// @Accept json
// @Produce json
// @Param id path string true "Shift ID"
// @Param payload body object false "Required skills"
// @Success 200 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /shifts/{id}/matches [post]
func (h *ParticipantHandler) MatchShift(c *gin.Context) {
	shift, err := h.shifts.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}

	var payload struct {
		RequiredSkills []string `json:"required_skills"`
	}
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&payload); err != nil {
			response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid match payload"))
			return
		}
	}

	matches, err := h.participants.MatchShift(c.Request.Context(), shift, payload.RequiredSkills)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, matches, nil)
}
