package handlers

import (
	"net/http"

	"carebook/services"

	"github.com/gin-gonic/gin"
)

// SettlementHandler exposes payment order creation and confirmation.
type SettlementHandler struct {
	Service services.SettlementService
}

// NewSettlementHandler creates a SettlementHandler.
func NewSettlementHandler(service services.SettlementService) *SettlementHandler {
	return &SettlementHandler{Service: service}
}

// CreateOrder requests an external payment order for a reservation.
func (h *SettlementHandler) CreateOrder(c *gin.Context) {
	var input struct {
		ReservationID string `json:"reservationId" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
		return
	}

	order, err := h.Service.CreateOrder(c.Request.Context(), input.ReservationID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"orderId":  order.ID,
		"amount":   order.Amount,
		"currency": order.Currency,
	})
}

// Confirm reconciles an order's paid status back onto its reservation.
func (h *SettlementHandler) Confirm(c *gin.Context) {
	var input struct {
		OrderID string `json:"orderId" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
		return
	}

	confirmed, err := h.Service.ConfirmPayment(c.Request.Context(), input.OrderID)
	if err != nil {
		respondError(c, err)
		return
	}
	if !confirmed {
		c.JSON(http.StatusOK, gin.H{"ok": false, "message": "payment not captured"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true})
}
