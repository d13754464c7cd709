package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/carebridge/carebridge-api/internal/service"
	appErrors "github.com/carebridge/carebridge-api/pkg/errors"
	"github.com/carebridge/carebridge-api/pkg/response"
)

// DashboardHandler wires the landing-page snapshot endpoint.
type DashboardHandler struct {
	service *service.DashboardService
}

// NewDashboardHandler creates a new handler.
func NewDashboardHandler(svc *service.DashboardService) *DashboardHandler {
	return &DashboardHandler{service: svc}
}

// Snapshot godoc
// @Summary Dashboard snapshot
// @Description Today's shifts, open shift count, compliance standing and unread messages
// @Tags Dashboard
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /dashboard [get]
func (h *DashboardHandler) Snapshot(c *gin.Context) {
	claims := claimsFromContext(c)
	if claims == nil {
		response.Error(c, appErrors.ErrUnauthorized)
		return
	}

	snapshot, err := h.service.Snapshot(c.Request.Context(), claims.UserID, claims.FullName)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, snapshot, nil)
}
