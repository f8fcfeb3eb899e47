package handlers

import (
	"net/http"

	"carebook/middleware"
	"carebook/services"

	"github.com/gin-gonic/gin"
)

// ProviderHandler exposes provider discovery, availability and profile
// management endpoints.
type ProviderHandler struct {
	Providers    services.ProviderService
	Availability services.AvailabilityService
	Dashboard    services.DashboardService
}

// NewProviderHandler creates a ProviderHandler.
func NewProviderHandler(providers services.ProviderService, availability services.AvailabilityService, dashboard services.DashboardService) *ProviderHandler {
	return &ProviderHandler{Providers: providers, Availability: availability, Dashboard: dashboard}
}

// List returns all providers.
func (h *ProviderHandler) List(c *gin.Context) {
	providers, err := h.Providers.List(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"providers": providers})
}

// Get returns a single provider by id.
func (h *ProviderHandler) Get(c *gin.Context) {
	provider, err := h.Providers.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"provider": provider})
}

// Slots returns the provider's open slots for the 7-day horizon.
func (h *ProviderHandler) Slots(c *gin.Context) {
	schedule, err := h.Availability.GetUpcomingSlots(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"days": schedule})
}

// ToggleAvailability flips the authenticated provider's availability flag.
func (h *ProviderHandler) ToggleAvailability(c *gin.Context) {
	providerID := c.GetString(middleware.CallerIDKey)
	if err := h.Providers.ToggleAvailability(c.Request.Context(), providerID); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true})
}

// UpdateProfile patches the authenticated provider's fee, address and
// availability.
func (h *ProviderHandler) UpdateProfile(c *gin.Context) {
	var input struct {
		Fee       float64 `json:"fee" binding:"required"`
		Address   string  `json:"address"`
		Available bool    `json:"available"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
		return
	}

	providerID := c.GetString(middleware.CallerIDKey)
	if err := h.Providers.UpdateProfile(c.Request.Context(), providerID, input.Fee, input.Address, input.Available); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true})
}

// ProviderDashboard returns the authenticated provider's rollup.
func (h *ProviderHandler) ProviderDashboard(c *gin.Context) {
	providerID := c.GetString(middleware.CallerIDKey)
	dashboard, err := h.Dashboard.ProviderDashboard(c.Request.Context(), providerID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"dashboard": dashboard})
}
