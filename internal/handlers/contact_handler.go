package handlers

import (
	"errors"
	"net/http"

	"github.com/aurelhaus/backend/internal/services"
	"github.com/gin-gonic/gin"
)

type ContactHandler struct {
	contactService *services.ContactService
}

func NewContactHandler(contactService *services.ContactService) *ContactHandler {
	return &ContactHandler{contactService: contactService}
}

// Submit handles a contact form submission
// POST /contact
func (h *ContactHandler) Submit(c *gin.Context) {
	var req struct {
		Name    string `json:"name"`
		Email   string `json:"email"`
		Message string `json:"message"`
	}

	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	err := h.contactService.Submit(req.Name, req.Email, req.Message)
	switch {
	case err == nil:
		c.JSON(http.StatusOK, gin.H{"message": "message sent"})
	case errors.Is(err, services.ErrDeliveryFailed):
		c.JSON(http.StatusBadGateway, gin.H{"error": "message could not be delivered, please try again"})
	default:
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	}
}
