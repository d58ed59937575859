package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/newrelic/go-agent/v3/integrations/nrgin"
	"github.com/newrelic/go-agent/v3/newrelic"
	"github.com/sirupsen/logrus"

	"github.com/fadhlanhapp/tripdesk-backend/config"
	"github.com/fadhlanhapp/tripdesk-backend/handlers"
	"github.com/fadhlanhapp/tripdesk-backend/repository"
	"github.com/fadhlanhapp/tripdesk-backend/routes"
	"github.com/fadhlanhapp/tripdesk-backend/utils"
)

func main() {
	logger := logrus.New()
	logger.SetFormatter(&logrus.JSONFormatter{})

	cfg, err := config.LoadConfig()
	if err != nil {
		logger.WithError(err).Fatal("Failed to load configuration")
	}
	if level, err := logrus.ParseLevel(cfg.LogLevel); err == nil {
		logger.SetLevel(level)
	}

	// Initialize New Relic
	var app *newrelic.Application
	if cfg.NewRelicKey != "" {
		app, err = newrelic.NewApplication(
			newrelic.ConfigAppName(cfg.NewRelicApp),
			newrelic.ConfigLicense(cfg.NewRelicKey),
			newrelic.ConfigDistributedTracerEnabled(true),
		)
		if err != nil {
			logger.WithError(err).Warn("Failed to initialize New Relic")
		}
	}

	// Initialize storage
	store, err := repository.NewStore(cfg, logger)
	if err != nil {
		logger.WithError(err).Fatal("Failed to initialize store")
	}
	defer store.Close()

	// Set up Gin router
	router := gin.New()
	router.Use(gin.Recovery(), requestLogger(logger))

	// Add New Relic middleware
	if app != nil {
		router.Use(nrgin.Middleware(app))
	}

	// Configure CORS
	router.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.CORSOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization", utils.OwnerHeader},
		ExposeHeaders:    []string{"Content-Length", "Content-Disposition"},
		AllowCredentials: !allowsAnyOrigin(cfg.CORSOrigins),
		MaxAge:           12 * time.Hour,
	}))

	handler := handlers.NewHandler(handlers.NewHandlerServices(store, logger))
	routes.SetupRoutes(router, handler)

	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: router,
	}

	go func() {
		logger.WithFields(logrus.Fields{"port": cfg.Port, "store": cfg.StoreDriver}).Info("Server starting")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.WithError(err).Fatal("Failed to start server")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down server")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.WithError(err).Error("Server forced to shutdown")
	}
	if app != nil {
		app.Shutdown(5 * time.Second)
	}
}

// requestLogger writes one structured line per request
func requestLogger(logger *logrus.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		logger.WithFields(logrus.Fields{
			"method":  c.Request.Method,
			"path":    c.FullPath(),
			"status":  c.Writer.Status(),
			"latency": time.Since(start).String(),
			"owner":   c.GetHeader(utils.OwnerHeader),
		}).Info("request")
	}
}

// gin-contrib/cors refuses a wildcard origin combined with credentials
func allowsAnyOrigin(origins []string) bool {
	for _, origin := range origins {
		if origin == "*" {
			return true
		}
	}
	return false
}
