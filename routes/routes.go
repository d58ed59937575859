package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/fadhlanhapp/tripdesk-backend/handlers"
)

// SetupRoutes configures all API routes for the application
func SetupRoutes(router *gin.Engine, h *handlers.Handler) {
	router.GET("/health", h.Health)

	v1 := router.Group("/api/v1")
	v1.Use(handlers.RequireOwner())
	{
		// Client endpoints
		v1.GET("/clients", h.ListClients)
		v1.POST("/clients", h.CreateClient)
		v1.PATCH("/clients/:id", h.UpdateClient)
		v1.DELETE("/clients/:id", h.DeleteClient)
		v1.POST("/clients/:id/toggle-status", h.ToggleClientStatus)

		// Trip endpoints
		v1.GET("/trips", h.ListTrips)
		v1.GET("/trips/:id/clients", h.ListTripClients)
		v1.POST("/trips", h.CreateTrip)
		v1.PATCH("/trips/:id", h.UpdateTrip)
		v1.DELETE("/trips/:id", h.DeleteTrip)

		// Payment endpoints
		v1.GET("/payments", h.ListPayments)
		v1.POST("/payments", h.EnsurePayment)
		v1.POST("/payments/:id/installments", h.RegisterInstallment)
		v1.DELETE("/payments/:id", h.DeletePayment)

		// Reporting
		v1.GET("/dashboard", h.Dashboard)
		v1.GET("/export", h.ExportWorkbook)
	}
}
