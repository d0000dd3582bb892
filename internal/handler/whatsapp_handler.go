package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"quickbill/internal/domain"
	"quickbill/internal/service"
)

// WhatsAppHandler handles the document send endpoint. Its response shapes are
// flat JSON kept wire-compatible with existing clients, not the standard
// envelope.
type WhatsAppHandler struct {
	sendService service.SendService
}

// NewWhatsAppHandler creates a new WhatsAppHandler.
func NewWhatsAppHandler(sendService service.SendService) *WhatsAppHandler {
	return &WhatsAppHandler{sendService: sendService}
}

// Send handles POST /send-whatsapp
func (h *WhatsAppHandler) Send(c *gin.Context) {
	enterpriseID, ok := extractEnterpriseID(c)
	if !ok {
		return
	}

	var input service.SendDocumentInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing required fields"})
		return
	}
	if err := input.Validate(); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing required fields"})
		return
	}

	result, err := h.sendService.SendDocument(c.Request.Context(), enterpriseID, input)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidInput) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Missing required fields"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":   "Failed to send WhatsApp message",
			"details": err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":    "Invoice sent via WhatsApp!",
		"messageSid": result.ProviderMessageID,
		"provider":   string(result.Channel),
	})
}
