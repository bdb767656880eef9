package api

import (
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
	echoSwagger "github.com/swaggo/echo-swagger"

	"github.com/ironguard/inventory-server/internal/api/handler"
	"github.com/ironguard/inventory-server/internal/api/middleware"
	"github.com/ironguard/inventory-server/internal/core/domain"
	"github.com/ironguard/inventory-server/internal/core/ports"

	_ "github.com/ironguard/inventory-server/docs"
)

// Dependencies are the services and infrastructure the router mounts.
type Dependencies struct {
	Auth       ports.AuthService
	Users      ports.UserService
	Categories ports.CategoryService
	Items      ports.ItemService
	Overview   ports.OverviewService
	Codec      ports.TokenCodec
	Checks     []handler.HealthCheck

	// Registerer and Gatherer back the HTTP metrics and /metrics. They
	// default to the prometheus default registry.
	Registerer prometheus.Registerer
	Gatherer   prometheus.Gatherer

	Logger zerolog.Logger
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(deps Dependencies) *echo.Echo {
	if deps.Registerer == nil {
		deps.Registerer = prometheus.DefaultRegisterer
	}
	if deps.Gatherer == nil {
		deps.Gatherer = prometheus.DefaultGatherer
	}

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(deps.Logger)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(middleware.RequestLogger(deps.Logger))
	e.Use(echoprometheus.NewMiddlewareWithConfig(echoprometheus.MiddlewareConfig{
		Subsystem:  "http",
		Registerer: deps.Registerer,
		Skipper: func(c echo.Context) bool {
			return c.Path() == "/metrics"
		},
	}))

	// --- Handlers ---
	authHandler := handler.NewAuthHandler(deps.Auth)
	userHandler := handler.NewUserHandler(deps.Users)
	categoryHandler := handler.NewCategoryHandler(deps.Categories)
	itemHandler := handler.NewItemHandler(deps.Items)
	overviewHandler := handler.NewOverviewHandler(deps.Overview)
	healthHandler := handler.NewHealthHandler(deps.Checks...)

	// --- Operational routes (no auth required) ---
	e.GET("/", handler.Root)
	e.GET("/health", healthHandler.Liveness)        // liveness  – is the process alive?
	e.GET("/health/ready", healthHandler.Readiness) // readiness – are dependencies up?
	e.GET("/metrics", echoprometheus.NewHandlerWithConfig(echoprometheus.HandlerConfig{Gatherer: deps.Gatherer}))
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	// --- Auth routes ---
	e.POST("/auth/sign-in", authHandler.SignIn)

	// --- Authenticated routes ---
	authed := middleware.Authenticate(deps.Codec, deps.Logger)
	e.GET("/me", userHandler.Me, authed)
	e.GET("/inventory", overviewHandler.Inventory, authed)
	e.GET("/dashboard", overviewHandler.Dashboard, authed)
	e.GET("/categories", categoryHandler.List, authed)
	e.GET("/categories/:id", categoryHandler.Get, authed)
	e.GET("/items", itemHandler.List, authed)
	e.GET("/items/:id", itemHandler.Get, authed)

	// --- Admin routes ---
	adminOnly := middleware.RequireRole(domain.RoleAdmin)
	e.GET("/users", userHandler.List, authed, adminOnly)
	e.POST("/users", userHandler.Create, authed, adminOnly)
	e.GET("/users/:id", userHandler.Get, authed, adminOnly)
	e.PUT("/users/:id", userHandler.Update, authed, adminOnly)
	e.DELETE("/users/:id", userHandler.Delete, authed, adminOnly)
	e.POST("/categories", categoryHandler.Create, authed, adminOnly)
	e.PUT("/categories/:id", categoryHandler.Update, authed, adminOnly)
	e.DELETE("/categories/:id", categoryHandler.Delete, authed, adminOnly)
	e.POST("/items", itemHandler.Create, authed, adminOnly)
	e.PUT("/items/:id", itemHandler.Update, authed, adminOnly)
	e.DELETE("/items/:id", itemHandler.Delete, authed, adminOnly)

	return e
}
