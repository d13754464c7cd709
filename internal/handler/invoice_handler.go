package handler

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/carebridge/carebridge-api/internal/service"
	appErrors "github.com/carebridge/carebridge-api/pkg/errors"
	"github.com/carebridge/carebridge-api/pkg/response"
)

// InvoiceHandler wires HTTP endpoints to the invoice service.
type InvoiceHandler struct {
	service *service.InvoiceService
}

// NewInvoiceHandler creates a new handler.
func NewInvoiceHandler(svc *service.InvoiceService) *InvoiceHandler {
	return &InvoiceHandler{service: svc}
}

// Generate godoc
// @Summary Generate an invoice from timesheet entries
// @Tags Invoices
// @Accept json
// @Produce json
// @Param payload body service.GenerateInvoiceRequest true "Invoice payload"
// @Success 200 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Router /invoices/generate [post]
func (h *InvoiceHandler) Generate(c *gin.Context) {
	claims := claimsFromContext(c)
	if claims == nil {
		response.Error(c, appErrors.ErrUnauthorized)
		return
	}

	var req service.GenerateInvoiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid invoice payload"))
		return
	}

	invoice, err := h.service.Generate(c.Request.Context(), claims.UserID, req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, invoice, nil)
}

// GeneratePDF godoc
// @Summary Generate an invoice and download it as PDF
// @Tags Invoices
// @Accept json
// @Produce application/pdf
// @Param payload body service.GenerateInvoiceRequest true "Invoice payload"
// @Success 200 {file} file
// @Failure 400 {object} response.Envelope
// @Router /invoices/generate/pdf [post]
func (h *InvoiceHandler) GeneratePDF(c *gin.Context) {
	claims := claimsFromContext(c)
	if claims == nil {
		response.Error(c, appErrors.ErrUnauthorized)
		return
	}

	var req service.GenerateInvoiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid invoice payload"))
		return
	}

	invoice, err := h.service.Generate(c.Request.Context(), claims.UserID, req)
	if err != nil {
		response.Error(c, err)
		return
	}

	pdf, err := h.service.RenderPDF(invoice)
	if err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrInternal.Code, http.StatusInternalServerError, "failed to render invoice"))
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", invoice.InvoiceNumber+".pdf"))
	c.Data(http.StatusOK, "application/pdf", pdf)
}
