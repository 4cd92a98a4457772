package api

import (
	"github.com/google/uuid"
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
	echoSwagger "github.com/swaggo/echo-swagger"

	"github.com/deadeye/laserworks/internal/api/handler"
	"github.com/deadeye/laserworks/internal/api/middleware"
	"github.com/deadeye/laserworks/internal/core/ports"

	_ "github.com/deadeye/laserworks/docs"
)

// Dependencies are the collaborators the HTTP layer is built from.
type Dependencies struct {
	Users        ports.UserManager
	Services     ports.ServiceManager
	UserServices ports.UserServiceManager
	Reviews      ports.ReviewManager
	Verifier     ports.Verifier
	Tokens       TokenCodec
	Readiness    []handler.Dependency
	Logger       zerolog.Logger

	// Registry collects HTTP request metrics. Defaults to the global
	// prometheus registry.
	Registry *prometheus.Registry
}

// TokenCodec issues identity tokens and decodes incoming ones.
type TokenCodec interface {
	handler.TokenIssuer
	middleware.IdentityDecoder
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(deps Dependencies) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(deps.Logger)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestIDWithConfig(echomiddleware.RequestIDConfig{
		Generator: uuid.NewString,
	}))
	e.Use(middleware.Authenticate(deps.Tokens))
	e.Use(middleware.RequestLogger(deps.Logger))
	e.Use(echoprometheus.NewMiddlewareWithConfig(promConfig(deps.Registry)))

	loggedIn := middleware.RequireLoggedIn()
	admin := middleware.RequireAdmin()
	ownerOrAdmin := middleware.RequireOwnerOrAdmin("username")

	// --- Handlers ---
	authHandler := handler.NewAuthHandler(deps.Users, deps.Verifier, deps.Tokens, deps.Logger)
	userHandler := handler.NewUserHandler(deps.Users)
	serviceHandler := handler.NewServiceHandler(deps.Services)
	orderHandler := handler.NewUserServiceHandler(deps.UserServices)
	reviewHandler := handler.NewReviewHandler(deps.Reviews)

	// --- Auth ---
	auth := e.Group("/auth")
	auth.POST("/token", authHandler.Token)
	auth.POST("/register", authHandler.Register)
	auth.GET("/confirmation/:token", authHandler.Confirm)
	auth.POST("/send-verification/:username", authHandler.SendVerification, ownerOrAdmin)
	auth.GET("/me", authHandler.Me, loggedIn)

	// --- Users ---
	users := e.Group("/users")
	users.GET("", userHandler.List, admin)
	users.GET("/:username", userHandler.Get, ownerOrAdmin)
	users.PATCH("/:username", userHandler.Update, ownerOrAdmin)
	users.DELETE("/:username", userHandler.Delete, ownerOrAdmin)
	users.PATCH("/:username/activate", userHandler.Activate, ownerOrAdmin)
	users.PATCH("/:username/deactivate", userHandler.Deactivate, ownerOrAdmin)

	// --- Services (catalog reads are public) ---
	services := e.Group("/services")
	services.GET("", serviceHandler.List)
	services.GET("/:serviceId", serviceHandler.Get)
	services.GET("/:serviceId/reviews", serviceHandler.Reviews)
	services.POST("", serviceHandler.Create, admin)
	services.PATCH("/:serviceId", serviceHandler.Update, admin)
	services.PATCH("/:serviceId/activate", serviceHandler.Activate, admin)
	services.PATCH("/:serviceId/deactivate", serviceHandler.Deactivate, admin)
	services.DELETE("/:serviceId", serviceHandler.Delete, admin)

	// --- Orders ---
	orders := e.Group("/user-services")
	orders.GET("", orderHandler.ListAll, admin)
	orders.GET("/:username", orderHandler.ListForUser, ownerOrAdmin)
	orders.POST("/:username", orderHandler.Add, ownerOrAdmin)
	orders.PATCH("/:username/complete/:userServiceId", orderHandler.Complete, admin)
	orders.PATCH("/:username/price/:userServiceId", orderHandler.ChangePrice, admin)
	orders.DELETE("/:username/:userServiceId", orderHandler.Delete, admin)

	// --- Reviews ---
	reviews := e.Group("/reviews")
	reviews.GET("/:reviewId", reviewHandler.Get)
	reviews.POST("/:username", reviewHandler.Add, ownerOrAdmin)
	reviews.PATCH("/:reviewId/:username", reviewHandler.Update, ownerOrAdmin)
	reviews.DELETE("/:reviewId/:username", reviewHandler.Delete, ownerOrAdmin)

	// --- Health probes, metrics and docs (no auth required) ---
	e.GET("/health", handler.NewHealthHandler().Liveness)
	e.GET("/health/ready", handler.NewReadinessHandler(deps.Readiness...).Readiness)
	e.GET("/metrics", promHandler(deps.Registry))
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	return e
}

func promConfig(reg *prometheus.Registry) echoprometheus.MiddlewareConfig {
	cfg := echoprometheus.MiddlewareConfig{Subsystem: "laserworks"}
	if reg != nil {
		cfg.Registerer = reg
	}
	return cfg
}

func promHandler(reg *prometheus.Registry) echo.HandlerFunc {
	if reg == nil {
		return echoprometheus.NewHandler()
	}
	return echoprometheus.NewHandlerWithConfig(echoprometheus.HandlerConfig{Gatherer: reg})
}
