package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/fadhlanhapp/tripdesk-backend/models"
	"github.com/fadhlanhapp/tripdesk-backend/utils"
)

// ListClients handles GET /clients, with optional ?q= quick search
func (h *Handler) ListClients(c *gin.Context) {
	clients, err := h.svc.Queries.ListClients(c.Request.Context(), ownerID(c), c.Query("q"))
	if err != nil {
		utils.HandleError(c, err)
		return
	}
	utils.HandleSuccess(c, clients)
}

// CreateClient handles POST /clients
func (h *Handler) CreateClient(c *gin.Context) {
	var request models.CreateClientRequest
	if !bindJSON(c, &request) {
		return
	}

	response, err := h.svc.Bookings.CreateClient(c.Request.Context(), ownerID(c), &request)
	if err != nil {
		utils.HandleError(c, err)
		return
	}
	utils.HandleCreated(c, response)
}

// UpdateClient handles PATCH /clients/:id
func (h *Handler) UpdateClient(c *gin.Context) {
	var patch models.UpdateClientRequest
	if !bindJSON(c, &patch) {
		return
	}

	response, err := h.svc.Bookings.UpdateClient(c.Request.Context(), ownerID(c), c.Param("id"), &patch)
	if err != nil {
		utils.HandleError(c, err)
		return
	}
	utils.HandleSuccess(c, response)
}

// DeleteClient handles DELETE /clients/:id
func (h *Handler) DeleteClient(c *gin.Context) {
	if err := h.svc.Bookings.DeleteClient(c.Request.Context(), ownerID(c), c.Param("id")); err != nil {
		utils.HandleError(c, err)
		return
	}
	utils.HandleSuccess(c, gin.H{"message": "Client deleted successfully"})
}

// ToggleClientStatus handles POST /clients/:id/toggle-status
func (h *Handler) ToggleClientStatus(c *gin.Context) {
	client, err := h.svc.Bookings.ToggleClientStatus(c.Request.Context(), ownerID(c), c.Param("id"))
	if err != nil {
		utils.HandleError(c, err)
		return
	}
	utils.HandleSuccess(c, client)
}
