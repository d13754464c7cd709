package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/carebridge/carebridge-api/internal/service"
	appErrors "github.com/carebridge/carebridge-api/pkg/errors"
	"github.com/carebridge/carebridge-api/pkg/response"
)

// CertificateHandler wires HTTP endpoints to the certificate service.
type CertificateHandler struct {
	service *service.CertificateService
}

// NewCertificateHandler creates a new handler.
func NewCertificateHandler(svc *service.CertificateService) *CertificateHandler {
	return &CertificateHandler{service: svc}
}

// List godoc
// @Summary List the caller's certificates
// @Tags Certificates
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /certificates [get]
func (h *CertificateHandler) List(c *gin.Context) {
	claims := claimsFromContext(c)
	if claims == nil {
		response.Error(c, appErrors.ErrUnauthorized)
		return
	}

	certificates, err := h.service.ListForWorker(c.Request.Context(), claims.UserID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, certificates, nil)
}

// Upsert godoc
// @Summary Record or replace a certificate
// @Tags Certificates
// @Accept json
// @Produce json
// @Param payload body service.UpsertCertificateRequest true "Certificate payload"
// @Success 201 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Router /certificates [put]
func (h *CertificateHandler) Upsert(c *gin.Context) {
	claims := claimsFromContext(c)
	if claims == nil {
		response.Error(c, appErrors.ErrUnauthorized)
		return
	}

	var req service.UpsertCertificateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid certificate payload"))
		return
	}

	certificate, err := h.service.Upsert(c.Request.Context(), claims.UserID, req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, certificate)
}

// Compliance godoc
// @Summary Compliance summary for the caller
// @Tags Certificates
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /certificates/compliance [get]
func (h *CertificateHandler) Compliance(c *gin.Context) {
	claims := claimsFromContext(c)
	if claims == nil {
		response.Error(c, appErrors.ErrUnauthorized)
		return
	}

	summary, err := h.service.Compliance(c.Request.Context(), claims.UserID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, summary, nil)
}
