package main

import (
	"fmt"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	_ "github.com/carebridge/carebridge-api/api/swagger"
	"github.com/carebridge/carebridge-api/internal/handler"
	"github.com/carebridge/carebridge-api/internal/middleware"
	"github.com/carebridge/carebridge-api/internal/models"
	"github.com/carebridge/carebridge-api/internal/repository"
	"github.com/carebridge/carebridge-api/internal/service"
	"github.com/carebridge/carebridge-api/pkg/cache"
	"github.com/carebridge/carebridge-api/pkg/config"
	"github.com/carebridge/carebridge-api/pkg/database"
	"github.com/carebridge/carebridge-api/pkg/logger"
	corsmiddleware "github.com/carebridge/carebridge-api/pkg/middleware/cors"
	reqidmiddleware "github.com/carebridge/carebridge-api/pkg/middleware/requestid"
)

// @title CareBridge API
// @version 1.0.0
// @description Shift scheduling and availability service for care agencies
// @BasePath /api/v1
// @schemes http

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logr, err := logger.New(cfg)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logr.Sync() //nolint:errcheck

	if cfg.Env == config.EnvProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	db, err := database.NewPostgres(cfg.Database)
	if err != nil {
		logr.Sugar().Fatalw("failed to connect to postgres", "error", err)
	}
	defer db.Close()

	metricsSvc := service.NewMetricsService()

	var cacheSvc *service.CacheService
	redisClient, err := cache.NewRedis(cfg.Redis)
	if err != nil {
		logr.Sugar().Warnw("redis unavailable, view caching disabled", "error", err)
		cacheSvc = service.NewCacheService(nil, metricsSvc, cfg.ShiftViews.CacheTTL, logr, false)
	} else {
		cacheRepo := repository.NewCacheRepository(redisClient, logr)
		defer cacheRepo.Close()
		cacheSvc = service.NewCacheService(cacheRepo, metricsSvc, cfg.ShiftViews.CacheTTL, logr, cfg.ShiftViews.CacheEnabled)
	}

	userRepo := repository.NewUserRepository(db)
	shiftRepo := repository.NewShiftRepository(db)
	availabilityRepo := repository.NewAvailabilityRepository(db)
	timesheetRepo := repository.NewTimesheetRepository(db)
	participantRepo := repository.NewParticipantRepository(db)
	incidentRepo := repository.NewIncidentRepository(db)
	certificateRepo := repository.NewCertificateRepository(db)
	messageRepo := repository.NewMessageRepository(db)

	authSvc := service.NewAuthService(userRepo, nil, logr, service.AuthConfig{
		AccessTokenSecret:  cfg.JWT.Secret,
		AccessTokenExpiry:  cfg.JWT.Expiration,
		RefreshTokenExpiry: cfg.JWT.RefreshExpiration,
		Issuer:             "carebridge-api",
	})
	shiftSvc := service.NewShiftService(shiftRepo, cacheSvc, nil, logr)
	viewSvc := service.NewShiftViewService(shiftSvc, cacheSvc, logr)
	availabilitySvc := service.NewAvailabilityService(availabilityRepo, cfg.Availability, logr)
	timesheetSvc := service.NewTimesheetService(timesheetRepo, nil, logr)
	invoiceSvc := service.NewInvoiceService(timesheetRepo, userRepo, cfg.Invoicing, logr)
	participantSvc := service.NewParticipantService(participantRepo, logr)
	incidentSvc := service.NewIncidentService(incidentRepo, nil, logr)
	certificateSvc := service.NewCertificateService(certificateRepo, cfg.Certificates, logr)
	messageSvc := service.NewMessageService(messageRepo, logr)
	dashboardSvc := service.NewDashboardService(shiftSvc, certificateSvc, messageSvc, logr)

	authHandler := handler.NewAuthHandler(authSvc)
	shiftHandler := handler.NewShiftHandler(shiftSvc, viewSvc)
	availabilityHandler := handler.NewAvailabilityHandler(availabilitySvc)
	timesheetHandler := handler.NewTimesheetHandler(timesheetSvc)
	invoiceHandler := handler.NewInvoiceHandler(invoiceSvc)
	participantHandler := handler.NewParticipantHandler(participantSvc, shiftSvc)
	incidentHandler := handler.NewIncidentHandler(incidentSvc)
	certificateHandler := handler.NewCertificateHandler(certificateSvc)
	messageHandler := handler.NewMessageHandler(messageSvc)
	dashboardHandler := handler.NewDashboardHandler(dashboardSvc)
	metricsHandler := handler.NewMetricsHandler(metricsSvc)

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(reqidmiddleware.Middleware())
	r.Use(logger.GinMiddleware(logr))
	r.Use(corsmiddleware.New(cfg.CORS.AllowedOrigins))
	r.Use(middleware.Metrics(metricsSvc))

	r.GET("/health", metricsHandler.Health)
	r.GET("/ready", func(c *gin.Context) {
		if err := db.PingContext(c.Request.Context()); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "degraded"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "ready"})
	})
	r.GET("/metrics", metricsHandler.Prometheus)

	if cfg.Env != config.EnvProduction {
		r.GET("/docs/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	api := r.Group(cfg.APIPrefix)
	{
		auth := api.Group("/auth")
		{
			auth.POST("/login", authHandler.Login)
			auth.POST("/refresh", authHandler.Refresh)
			auth.POST("/logout", middleware.JWT(authSvc), authHandler.Logout)
			auth.GET("/me", middleware.JWT(authSvc), authHandler.Me)
		}

		protected := api.Group("")
		protected.Use(middleware.JWT(authSvc))
		{
			protected.GET("/dashboard", dashboardHandler.Snapshot)

			protected.GET("/shifts/view", shiftHandler.View)
			protected.GET("/shifts/:id", shiftHandler.Get)
			protected.POST("/shifts", middleware.RequireRoles(models.RoleAdmin, models.RoleCoordinator), shiftHandler.Create)
			protected.POST("/shifts/:id/accept", shiftHandler.Accept)
			protected.POST("/shifts/:id/decline", shiftHandler.Decline)
			protected.POST("/shifts/:id/matches", middleware.RequireRoles(models.RoleAdmin, models.RoleCoordinator), participantHandler.MatchShift)

			protected.GET("/availability", availabilityHandler.ListDays)
			protected.GET("/availability/:date", availabilityHandler.SelectDay)
			protected.POST("/availability/:date/slots", availabilityHandler.AddSlot)
			protected.DELETE("/availability/:date/slots/:index", availabilityHandler.RemoveSlot)

			protected.GET("/timesheets", timesheetHandler.List)
			protected.POST("/timesheets", timesheetHandler.Create)
			protected.POST("/timesheets/:id/submit", timesheetHandler.Submit)
			protected.POST("/timesheets/:id/approve", middleware.RequireRoles(models.RoleAdmin, models.RoleCoordinator), timesheetHandler.Approve)
			protected.GET("/timesheets/export", timesheetHandler.ExportCSV)

			protected.POST("/invoices/generate", invoiceHandler.Generate)
			protected.POST("/invoices/generate/pdf", invoiceHandler.GeneratePDF)

			protected.GET("/participants", participantHandler.List)
			protected.GET("/participants/:id", participantHandler.Get)

			protected.POST("/incidents", incidentHandler.Report)
			protected.GET("/incidents", middleware.RequireRoles(models.RoleAdmin, models.RoleCoordinator), incidentHandler.List)
			protected.GET("/incidents/:id", middleware.RequireRoles(models.RoleAdmin, models.RoleCoordinator), incidentHandler.Get)
			protected.PUT("/incidents/:id/status", middleware.RequireRoles(models.RoleAdmin, models.RoleCoordinator), incidentHandler.Transition)

			protected.GET("/certificates", certificateHandler.List)
			protected.PUT("/certificates", certificateHandler.Upsert)
			protected.GET("/certificates/compliance", certificateHandler.Compliance)

			protected.GET("/messages", messageHandler.Conversations)
			protected.GET("/messages/unread", messageHandler.Unread)
			protected.GET("/messages/:id", messageHandler.Open)
			protected.POST("/messages", messageHandler.Send)

			protected.GET("/stats", middleware.RequireRoles(models.RoleAdmin), metricsHandler.Stats)
		}
	}

	addr := fmt.Sprintf(":%d", cfg.Port)
	logr.Sugar().Infow("server starting", "addr", addr, "env", cfg.Env)
	if err := r.Run(addr); err != nil {
		logr.Sugar().Fatalw("server failed", "error", err)
	}
}
