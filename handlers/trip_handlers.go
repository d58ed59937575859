package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/fadhlanhapp/tripdesk-backend/models"
	"github.com/fadhlanhapp/tripdesk-backend/utils"
)

// ListTrips handles GET /trips
func (h *Handler) ListTrips(c *gin.Context) {
	trips, err := h.svc.Queries.ListTrips(c.Request.Context(), ownerID(c))
	if err != nil {
		utils.HandleError(c, err)
		return
	}
	utils.HandleSuccess(c, trips)
}

// ListTripClients handles GET /trips/:id/clients
func (h *Handler) ListTripClients(c *gin.Context) {
	clients, err := h.svc.Queries.ClientsOfTrip(c.Request.Context(), ownerID(c), c.Param("id"))
	if err != nil {
		utils.HandleError(c, err)
		return
	}
	utils.HandleSuccess(c, clients)
}

// CreateTrip handles POST /trips
func (h *Handler) CreateTrip(c *gin.Context) {
	var request models.CreateTripRequest
	if !bindJSON(c, &request) {
		return
	}

	trip, err := h.svc.Bookings.CreateTrip(c.Request.Context(), ownerID(c), &request)
	if err != nil {
		utils.HandleError(c, err)
		return
	}
	utils.HandleCreated(c, trip)
}

// UpdateTrip handles PATCH /trips/:id
func (h *Handler) UpdateTrip(c *gin.Context) {
	var patch models.UpdateTripRequest
	if !bindJSON(c, &patch) {
		return
	}

	trip, err := h.svc.Bookings.UpdateTrip(c.Request.Context(), ownerID(c), c.Param("id"), &patch)
	if err != nil {
		utils.HandleError(c, err)
		return
	}
	utils.HandleSuccess(c, trip)
}

// DeleteTrip handles DELETE /trips/:id
func (h *Handler) DeleteTrip(c *gin.Context) {
	if err := h.svc.Bookings.DeleteTrip(c.Request.Context(), ownerID(c), c.Param("id")); err != nil {
		utils.HandleError(c, err)
		return
	}
	utils.HandleSuccess(c, gin.H{"message": "Trip deleted successfully"})
}
