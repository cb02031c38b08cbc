package main

import (
	"weeld-core/internal/handler"
	"weeld-core/internal/middleware"
	"weeld-core/internal/service"
	"weeld-core/internal/store"
	"weeld-core/pkg/config"
	"weeld-core/pkg/database"
	"weeld-core/pkg/jwtutil"
	"weeld-core/pkg/logger"
	"weeld-core/prometheus"

	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"go.uber.org/zap"
)

func main() {
	// Load configuration from .env file and environment variables
	cfg, err := config.Load()
	if err != nil {
		panic("Failed to load configuration: " + err.Error())
	}

	// Initialize logger with config
	if err := logger.InitLogger(cfg); err != nil {
		panic("Failed to initialize logger: " + err.Error())
	}
	log := logger.GetLogger()
	log.Info("Starting weeld-core...", cfg.LogConfig()...)

	// Initialize database
	db, err := database.Init(cfg)
	if err != nil {
		log.Fatal("Failed to initialize database", zap.Error(err))
	}
	log.Info("Database connection established")

	// Initialize Prometheus metrics
	prometheus.InitMetrics()
	log.Info("Prometheus metrics initialized")

	// Wire store, services and handlers
	st := store.New(db)
	issuer := jwtutil.NewIssuer(&cfg.JWT)
	authHandler := handler.NewAuthHandler(service.NewAuthService(st, issuer))
	tenantHandler := handler.NewTenantHandler(service.NewTenantService(st))
	adminHandler := handler.NewAdminHandler(service.NewAdminService(st))

	// Initialize Echo framework
	e := echo.New()

	// Apply global middleware - order matters
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.CORS())
	e.Use(middleware.RequestIDMiddleware)
	e.Use(logger.Middleware())
	e.Use(prometheus.MetricsMiddleware())

	handler.RegisterRoutes(e, authHandler, tenantHandler, adminHandler)

	// Start server
	port := cfg.Server.Port
	log.Info("Starting server", zap.String("port", port))
	if err := e.Start(":" + port); err != nil {
		log.Fatal("Failed to start server", zap.Error(err))
	}
}
