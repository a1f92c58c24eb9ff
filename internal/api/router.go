package api

import (
	"time"

	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/parceldesk/shipment-api/internal/api/handler"
	"github.com/parceldesk/shipment-api/internal/api/middleware"
	"github.com/parceldesk/shipment-api/internal/core/domain"
	"github.com/parceldesk/shipment-api/internal/core/service"
	mongostore "github.com/parceldesk/shipment-api/internal/infrastructure/db/mongo"
	redisstore "github.com/parceldesk/shipment-api/internal/infrastructure/db/redis"
)

// NewRouter builds and returns the Echo instance with all routes registered.
// The notifier is injected by the caller, which owns its worker lifecycle.
func NewRouter(db *mongo.Database, rdb *redis.Client, notifier service.StatusNotifier, jwtSecret string, log zerolog.Logger) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.Logger())

	// --- Dependencies ---
	shipmentRepo := mongostore.NewShipmentRepository(db)
	eventRepo := mongostore.NewEventRepository(db)
	authRepo := mongostore.NewAuthRepository(db)
	trackingCache := redisstore.NewTrackingCache(rdb)

	shipmentService := service.NewShipmentService(shipmentRepo, eventRepo, trackingCache, notifier, log)
	authService := service.NewAuthService(authRepo, jwtSecret, 24*time.Hour)

	authHandler := handler.NewAuthHandler(authService)
	shipmentHandler := handler.NewShipmentHandler(shipmentService)
	partnerHandler := handler.NewPartnerHandler(shipmentService)
	adminHandler := handler.NewAdminHandler(shipmentService)
	trackingHandler := handler.NewTrackingHandler(shipmentService)
	healthHandler := handler.NewHealthHandler(db, rdb)

	authMiddleware := middleware.Auth(jwtSecret)

	// --- Public routes ---
	e.GET("/track/:code", trackingHandler.Track)
	e.POST("/auth/register", authHandler.Register)
	e.POST("/auth/login", authHandler.Login)

	// --- Health probes ---
	e.GET("/health", healthHandler.Liveness)          // liveness  – is the process alive?
	e.GET("/health/ready", healthHandler.Readiness)   // readiness – are dependencies up?
	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))

	// --- Customer routes ---
	shipments := e.Group("/v1/shipments", authMiddleware, middleware.RequireRole(domain.RoleCustomer))
	shipments.POST("", shipmentHandler.Create)
	shipments.GET("/:id", shipmentHandler.Get)
	shipments.POST("/:id/pickup", shipmentHandler.SchedulePickup)

	// --- Partner routes ---
	partner := e.Group("/v1/partner/shipments", authMiddleware, middleware.RequireRole(domain.RolePartner, domain.RoleAdmin))
	partner.POST("/:id/scan", partnerHandler.Scan)

	// --- Admin routes ---
	admin := e.Group("/v1/admin/shipments", authMiddleware, middleware.RequireRole(domain.RoleAdmin))
	admin.GET("", adminHandler.List)
	admin.GET("/:id", adminHandler.Get)
	admin.POST("/:id/assign", adminHandler.Assign)
	admin.POST("/:id/force-status", adminHandler.ForceStatus)

	return e
}
