package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/fadhlanhapp/tripdesk-backend/models"
	"github.com/fadhlanhapp/tripdesk-backend/utils"
)

// ListPayments handles GET /payments
func (h *Handler) ListPayments(c *gin.Context) {
	payments, err := h.svc.Queries.ListPayments(c.Request.Context(), ownerID(c))
	if err != nil {
		utils.HandleError(c, err)
		return
	}
	utils.HandleSuccess(c, payments)
}

// EnsurePayment handles POST /payments. An existing ledger for the pair is
// returned with 200, a new one with 201.
func (h *Handler) EnsurePayment(c *gin.Context) {
	var request models.EnsurePaymentRequest
	if !bindJSON(c, &request) {
		return
	}

	response, err := h.svc.Bookings.EnsurePayment(c.Request.Context(), ownerID(c), &request)
	if err != nil {
		utils.HandleError(c, err)
		return
	}

	status := http.StatusOK
	if response.Created {
		status = http.StatusCreated
	}
	c.JSON(status, response)
}

// RegisterInstallment handles POST /payments/:id/installments
func (h *Handler) RegisterInstallment(c *gin.Context) {
	var request models.InstallmentRequest
	if !bindJSON(c, &request) {
		return
	}

	response, err := h.svc.Bookings.RegisterPayment(c.Request.Context(), ownerID(c), c.Param("id"), &request)
	if err != nil {
		utils.HandleError(c, err)
		return
	}
	utils.HandleCreated(c, response)
}

// DeletePayment handles DELETE /payments/:id
func (h *Handler) DeletePayment(c *gin.Context) {
	if err := h.svc.Bookings.DeletePayment(c.Request.Context(), ownerID(c), c.Param("id")); err != nil {
		utils.HandleError(c, err)
		return
	}
	utils.HandleSuccess(c, gin.H{"message": "Payment deleted successfully"})
}
