package main

import (
	"context"

	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"go.uber.org/zap"

	"portal-service/internal/audit"
	"portal-service/internal/cache"
	"portal-service/internal/extdb"
	"portal-service/internal/handler"
	"portal-service/internal/helpdesk"
	"portal-service/internal/middleware"
	"portal-service/internal/model"
	"portal-service/internal/permission"
	"portal-service/internal/store"
	"portal-service/pkg/config"
	"portal-service/pkg/database"
	"portal-service/pkg/jwtutil"
	"portal-service/pkg/logger"
	"portal-service/prometheus"
)

func main() {
	// Load configuration from .env file and environment variables
	cfg, err := config.Load("portal-service")
	if err != nil {
		panic("Failed to load configuration: " + err.Error())
	}

	// Initialize logger with config
	if err := logger.InitLogger(&logger.LogConfig{
		Level:       cfg.Log.Level,
		Environment: cfg.Server.Env,
		ServiceName: cfg.ServiceName,
	}); err != nil {
		panic("Failed to initialize logger: " + err.Error())
	}
	log := logger.GetLogger()
	log.Info("Starting portal service...", zap.String("environment", cfg.Server.Env))

	// Initialize database
	db, err := database.InitDB(&cfg.DB)
	if err != nil {
		log.Fatal("Failed to initialize database", zap.Error(err))
	}
	if err := database.MigrateModels(model.All()...); err != nil {
		log.Fatal("Failed to run migrations", zap.Error(err))
	}
	log.Info("Database connection established")

	// Initialize JWT utility
	jwtutil.Initialize(&cfg.JWT)

	// Optional unread-count cache
	unreadCache, err := cache.Connect(context.Background(), &cfg.Redis)
	if err != nil {
		log.Warn("Notification cache unavailable, continuing without it", zap.Error(err))
		unreadCache = nil
	}
	if unreadCache != nil {
		defer unreadCache.Close()
	}

	// Wire the core
	entities := store.New(db)
	resolver := permission.NewResolver(entities, log)
	profiles := helpdesk.NewProfileResolver(entities, log)
	router := helpdesk.NewRouter(entities, log)
	ledger := helpdesk.NewLedger(entities, unreadCache, log)
	auditor := audit.NewLogger(entities, log)
	extPools := extdb.NewManager(&cfg.ExtDB)
	defer extPools.Close()

	handler.Init(resolver, profiles, router, ledger, auditor, entities, extPools)

	// Initialize Echo framework
	e := echo.New()

	// Apply global middleware - order matters
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.CORS())
	e.Use(middleware.RequestIDMiddleware())
	e.Use(logger.Middleware())
	e.Use(prometheus.MetricsMiddleware())

	// Public routes - no authentication required
	e.GET("/health", handler.HealthCheck)
	e.GET("/metrics", echo.WrapHandler(prometheus.GetPrometheusHandler()))

	// API routes - all require authentication
	api := e.Group("/api")
	api.Use(middleware.AuthMiddleware)

	// Tool visibility
	tools := api.Group("/tools")
	tools.GET("", handler.ListTools)
	tools.GET("/:slug/access", handler.CheckToolAccess)
	api.GET("/reports", handler.ListReports)

	// Helpdesk
	hd := api.Group("/helpdesk")
	hd.GET("/profile", handler.GetHelpdeskProfile)
	hd.GET("/clients", handler.ListHelpdeskClients)
	hd.POST("/tickets", handler.CreateTicket)
	hd.GET("/tickets", handler.ListMyTickets)
	hd.POST("/tickets/:id/messages", handler.AddTicketMessage)

	// Notifications
	notifications := api.Group("/helpdesk/notifications")
	notifications.GET("", handler.ListNotifications)
	notifications.GET("/unread-count", handler.UnreadCount)
	notifications.POST("/read/:ticket_id", handler.MarkRead)
	notifications.POST("/read-all", handler.MarkAllRead)

	// External customer database lookups
	lookup := api.Group("/lookup")
	lookup.GET("/cost-centers", handler.ListCostCenters)
	lookup.GET("/expense-types", handler.ListExpenseTypes)

	// Grant management - admin only
	grants := api.Group("/grants")
	grants.Use(middleware.RequireAdmin)
	grants.POST("/tool", handler.CreateToolGrant)
	grants.DELETE("/tool", handler.DeleteToolGrant)
	grants.POST("/client", handler.CreateClientGrant)
	grants.DELETE("/client", handler.DeleteClientGrant)

	// Start server
	port := cfg.Server.Port
	log.Info("Starting server", zap.String("port", port))
	if err := e.Start(":" + port); err != nil {
		log.Fatal("Failed to start server", zap.Error(err))
	}
}
