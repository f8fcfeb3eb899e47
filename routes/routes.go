package routes

import (
	"carebook/handlers"
	"carebook/middleware"

	"github.com/gin-gonic/gin"
)

// RegisterRoutes wires all endpoints onto the router.
func RegisterRoutes(
	r *gin.Engine,
	providerHandler *handlers.ProviderHandler,
	bookingHandler *handlers.BookingHandler,
	settlementHandler *handlers.SettlementHandler,
) {
	api := r.Group("/api")

	// Public provider discovery.
	providers := api.Group("/providers")
	{
		providers.GET("", providerHandler.List)
		providers.GET("/:id", providerHandler.Get)
		providers.GET("/:id/slots", providerHandler.Slots)
	}

	// Provider self-management. Registered under the singular /provider so the
	// static segment cannot collide with the /providers/:id wildcard.
	providerPanel := api.Group("/provider", middleware.AuthRequired(), middleware.RequireRole(middleware.RoleProvider))
	{
		providerPanel.POST("/availability", providerHandler.ToggleAvailability)
		providerPanel.PUT("/profile", providerHandler.UpdateProfile)
		providerPanel.GET("/dashboard", providerHandler.ProviderDashboard)
	}

	// Booking lifecycle.
	bookings := api.Group("/bookings", middleware.AuthRequired())
	{
		bookings.POST("", middleware.RequireRole(middleware.RoleClient), bookingHandler.Reserve)
		bookings.POST("/:id/cancel", bookingHandler.Cancel)
		bookings.POST("/:id/complete", middleware.RequireRole(middleware.RoleProvider), bookingHandler.Complete)
		bookings.GET("/client", middleware.RequireRole(middleware.RoleClient), bookingHandler.ListForClient)
		bookings.GET("/provider", middleware.RequireRole(middleware.RoleProvider), bookingHandler.ListForProvider)
	}

	// Settlement.
	settlement := api.Group("/settlement", middleware.AuthRequired())
	{
		settlement.POST("/order", settlementHandler.CreateOrder)
		settlement.POST("/confirm", settlementHandler.Confirm)
	}
}
