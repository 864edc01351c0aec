package api

import (
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/taskatlas/task-manager-api/internal/api/handler"
	"github.com/taskatlas/task-manager-api/internal/api/middleware"
	"github.com/taskatlas/task-manager-api/internal/core/domain"
	"github.com/taskatlas/task-manager-api/internal/core/service"
	"github.com/taskatlas/task-manager-api/internal/infrastructure/config"
	mongodb "github.com/taskatlas/task-manager-api/internal/infrastructure/db/mongo"
	redisdb "github.com/taskatlas/task-manager-api/internal/infrastructure/db/redis"
	"github.com/taskatlas/task-manager-api/internal/infrastructure/security"
)

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(db *mongo.Database, rdb *redis.Client, cfg *config.Config, log zerolog.Logger) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HTTPErrorHandler = NewHTTPErrorHandler(log)
	e.Validator = handler.NewValidator()

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.Logger())
	e.Use(echoprometheus.NewMiddleware("taskmanager"))

	// --- Dependencies ---
	repo := mongodb.NewUserRepository(db)
	hasher := security.NewBcryptHasher(0)
	issuer := security.NewJWTIssuer(cfg.JWTSecret, cfg.TokenTTL)
	revoker := redisdb.NewRevocationStore(rdb, cfg.TokenTTL)

	authService := service.NewAuthService(repo, hasher, issuer, revoker)
	userService := service.NewUserService(repo, hasher)

	authHandler := handler.NewAuthHandler(authService)
	userHandler := handler.NewUserHandler(userService)

	authn := middleware.Auth(issuer, revoker)
	memberOnly := middleware.RBAC(
		domain.RoleAdmin,
		domain.RoleProjectManager,
		domain.RoleTeamLeader,
		domain.RoleTeamMember,
	)
	adminOnly := middleware.RBAC(domain.RoleAdmin)

	// --- Auth routes ---
	e.POST("/auth/login", authHandler.Login)
	e.POST("/auth/register", authHandler.Register)
	e.POST("/auth/guest-token", authHandler.GuestToken)
	e.POST("/auth/change-password", authHandler.ChangePassword, authn)

	// --- User administration routes ---
	users := e.Group("/api/users", authn)
	users.GET("/v1", userHandler.List)
	users.GET("/v1/role", userHandler.GetByRole)
	users.GET("/v1/:id", userHandler.GetByID)
	users.POST("/v1", userHandler.Create, adminOnly)
	users.PUT("/v1/update-email", userHandler.UpdateEmail, memberOnly)
	users.PUT("/v1/update-name", userHandler.UpdateName, memberOnly)
	users.PUT("/v1/:id", userHandler.Update, adminOnly)
	users.DELETE("/v1", userHandler.Delete, adminOnly)

	// --- Health probes and metrics (no auth required) ---
	healthHandler := handler.NewHealthHandler()
	readinessHandler := handler.NewReadinessHandler(db, rdb)

	e.GET("/health", healthHandler.Liveness)          // liveness  – is the process alive?
	e.GET("/health/ready", readinessHandler.Readiness) // readiness – are dependencies up?
	e.GET("/metrics", echoprometheus.NewHandler())

	return e
}
