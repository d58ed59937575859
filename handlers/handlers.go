package handlers

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/fadhlanhapp/tripdesk-backend/repository"
	"github.com/fadhlanhapp/tripdesk-backend/services"
	"github.com/fadhlanhapp/tripdesk-backend/utils"
)

const ownerKey = "ownerID"

// HandlerServices contains all service dependencies
type HandlerServices struct {
	Bookings *services.BookingService
	Queries  *services.QueryService
	Excel    *services.ExcelService
	Logger   *logrus.Logger
}

// NewHandlerServices wires the services on top of a store
func NewHandlerServices(store repository.Store, logger *logrus.Logger) *HandlerServices {
	queries := services.NewQueryService(store, logger)
	return &HandlerServices{
		Bookings: services.NewBookingService(store, logger),
		Queries:  queries,
		Excel:    services.NewExcelService(queries),
		Logger:   logger,
	}
}

// Handler serves the booking API
type Handler struct {
	svc     *HandlerServices
	started time.Time
}

// NewHandler creates a new handler
func NewHandler(svc *HandlerServices) *Handler {
	return &Handler{svc: svc, started: time.Now()}
}

// RequireOwner rejects requests without the owner header. Authentication is
// done upstream; the header only scopes the data.
func RequireOwner() gin.HandlerFunc {
	return func(c *gin.Context) {
		owner := strings.TrimSpace(c.GetHeader(utils.OwnerHeader))
		if owner == "" {
			utils.HandleError(c, utils.NewBadRequestError(utils.ErrMissingOwner))
			c.Abort()
			return
		}
		c.Set(ownerKey, owner)
		c.Next()
	}
}

func ownerID(c *gin.Context) string {
	return c.GetString(ownerKey)
}

// bindJSON decodes the body, answering 400 on malformed input
func bindJSON(c *gin.Context, dest interface{}) bool {
	if err := c.ShouldBindJSON(dest); err != nil {
		appErr := utils.NewBadRequestError(utils.ErrInvalidRequest)
		appErr.Details = err.Error()
		utils.HandleError(c, appErr)
		return false
	}
	return true
}

// Health handles GET /health
func (h *Handler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status": "ok",
		"uptime": time.Since(h.started).Round(time.Second).String(),
	})
}

// Dashboard handles GET /dashboard
func (h *Handler) Dashboard(c *gin.Context) {
	summary, err := h.svc.Queries.Dashboard(c.Request.Context(), ownerID(c))
	if err != nil {
		utils.HandleError(c, err)
		return
	}
	utils.HandleSuccess(c, summary)
}
