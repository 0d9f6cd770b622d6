package api

import (
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/neximprove/broker-onboarding/internal/api/handler"
	"github.com/neximprove/broker-onboarding/internal/api/middleware"
	"github.com/neximprove/broker-onboarding/internal/core/domain"
	"github.com/neximprove/broker-onboarding/internal/core/service"
	"github.com/neximprove/broker-onboarding/internal/infrastructure/config"
	pg "github.com/neximprove/broker-onboarding/internal/infrastructure/db/postgres"
	redisinfra "github.com/neximprove/broker-onboarding/internal/infrastructure/db/redis"
)

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(cfg *config.Config, pool *pgxpool.Pool, rdb *redis.Client, log zerolog.Logger) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.Secure())
	e.Use(echomiddleware.CORSWithConfig(echomiddleware.CORSConfig{
		AllowOrigins:     []string{cfg.FrontendURL},
		AllowCredentials: true,
	}))
	e.Use(echoprometheus.NewMiddleware("onboarding"))

	// --- Dependencies ---
	userRepo := pg.NewUserRepository(pool)
	customerRepo := pg.NewCustomerRepository(pool)

	authService := service.NewAuthService(userRepo, cfg.JWTSecret, cfg.TokenTTL, log)
	customerService := service.NewCustomerService(customerRepo, log)
	adminService := service.NewAdminService(userRepo, customerRepo, log)

	authHandler := handler.NewAuthHandler(authService)
	customerHandler := handler.NewCustomerHandler(customerService)
	adminHandler := handler.NewAdminHandler(adminService)

	authMW := middleware.Auth(cfg.JWTSecret)
	limiter := redisinfra.NewFixedWindowLimiter(rdb, cfg.RateLimit.Max, cfg.RateLimit.Window)

	// --- Auth routes (rate limited) ---
	auth := e.Group("/auth", middleware.RateLimit(limiter, log))
	auth.POST("/register", authHandler.Register)
	auth.POST("/login", authHandler.Login)

	// --- Broker routes ---
	customers := e.Group("/customers", authMW, middleware.RequireRole(domain.RoleBroker))
	customers.POST("", customerHandler.Create)
	customers.GET("/stats", customerHandler.Stats)

	// --- Admin routes ---
	admin := e.Group("/admin", authMW)
	admin.GET("/overview", adminHandler.Overview) // any authenticated identity
	adminOnly := middleware.RequireRole(domain.RoleAdmin)
	admin.GET("/stats", adminHandler.Stats, adminOnly)
	admin.GET("/brokers", adminHandler.ListBrokers, adminOnly)
	admin.GET("/customers", adminHandler.ListCustomers, adminOnly)

	// --- Health probes and metrics (no auth required) ---
	healthHandler := handler.NewHealthHandler()
	readinessHandler := handler.NewReadinessHandler(pool, rdb)

	e.GET("/health", healthHandler.Liveness)           // liveness  – is the process alive?
	e.GET("/health/ready", readinessHandler.Readiness) // readiness – are dependencies up?
	e.GET("/metrics", echoprometheus.NewHandler())

	return e
}
