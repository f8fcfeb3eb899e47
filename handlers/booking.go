package handlers

import (
	"net/http"

	"carebook/middleware"
	"carebook/services"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// BookingHandler exposes the booking engine over HTTP.
type BookingHandler struct {
	Service services.BookingService
	Logger  *zap.Logger
}

// NewBookingHandler creates a BookingHandler.
func NewBookingHandler(service services.BookingService, logger *zap.Logger) *BookingHandler {
	return &BookingHandler{Service: service, Logger: logger}
}

// Reserve books a slot for the authenticated client.
func (h *BookingHandler) Reserve(c *gin.Context) {
	var input struct {
		ProviderID string `json:"providerId" binding:"required"`
		Date       string `json:"date" binding:"required"`
		Time       string `json:"time" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
		return
	}

	clientID := c.GetString(middleware.CallerIDKey)
	reservationID, err := h.Service.Reserve(c.Request.Context(), clientID, input.ProviderID, input.Date, input.Time)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"reservationId": reservationID})
}

// Cancel cancels a reservation on behalf of its client or provider.
func (h *BookingHandler) Cancel(c *gin.Context) {
	reservationID := c.Param("id")
	requesterID := c.GetString(middleware.CallerIDKey)

	if err := h.Service.Cancel(c.Request.Context(), requesterID, reservationID); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true})
}

// Complete marks a reservation completed for the authenticated provider.
func (h *BookingHandler) Complete(c *gin.Context) {
	reservationID := c.Param("id")
	providerID := c.GetString(middleware.CallerIDKey)

	if err := h.Service.Complete(c.Request.Context(), providerID, reservationID); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true})
}

// ListForClient returns the authenticated client's reservations.
func (h *BookingHandler) ListForClient(c *gin.Context) {
	clientID := c.GetString(middleware.CallerIDKey)
	reservations, err := h.Service.ListForClient(c.Request.Context(), clientID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"reservations": reservations})
}

// ListForProvider returns the authenticated provider's reservations.
func (h *BookingHandler) ListForProvider(c *gin.Context) {
	providerID := c.GetString(middleware.CallerIDKey)
	reservations, err := h.Service.ListForProvider(c.Request.Context(), providerID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"reservations": reservations})
}
