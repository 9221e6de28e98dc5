package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/invoicelink/backend/internal/application/invoicing"
)

// PublicInvoiceHandler serves the unauthenticated share-link endpoints.
// The token in the URL is the only credential.
type PublicInvoiceHandler struct {
	BaseHandler
	publicService *invoicing.PublicInvoiceService
}

// NewPublicInvoiceHandler creates a new public invoice handler
func NewPublicInvoiceHandler(publicService *invoicing.PublicInvoiceService) *PublicInvoiceHandler {
	return &PublicInvoiceHandler{publicService: publicService}
}

// GetByToken returns the client-facing view of a sent invoice
func (h *PublicInvoiceHandler) GetByToken(c *gin.Context) {
	token := c.Param("token")
	if token == "" {
		h.BadRequest(c, "Missing invoice token")
		return
	}

	result, err := h.publicService.GetByToken(c.Request.Context(), token)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, result)
}

// Accept records the client's acceptance of a sent invoice
func (h *PublicInvoiceHandler) Accept(c *gin.Context) {
	token := c.Param("token")
	if token == "" {
		h.BadRequest(c, "Missing invoice token")
		return
	}

	result, err := h.publicService.Accept(c.Request.Context(), token)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, result)
}
