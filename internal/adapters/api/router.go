package api

import (
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"

	"randohub/internal/adapters/api/handler"
	"randohub/internal/adapters/api/middleware"
	"randohub/internal/ports/input"
	"randohub/internal/ports/output"
)

// Deps are the use cases and settings the router wires into handlers.
type Deps struct {
	Events        input.EventUseCase
	Participation input.ParticipationUseCase
	Bulk          input.BulkNotifyUseCase
	Users         input.UserUseCase
	Auth          input.AuthUseCase
	Translator    output.T
	JWTSecret     string
	Checks        map[string]handler.Check
	Log           zerolog.Logger

	// Registerer and Gatherer default to the global Prometheus registry.
	Registerer prometheus.Registerer
	Gatherer   prometheus.Gatherer
}

// NewRouter builds the Echo instance with all routes registered.
func NewRouter(d Deps) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(d.Translator, d.Log)

	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(middleware.RequestLogger(d.Log))
	e.Use(echoprometheus.NewMiddlewareWithConfig(echoprometheus.MiddlewareConfig{
		Namespace:                 "randohub",
		Subsystem:                 "http",
		Registerer:                d.Registerer,
		DoNotUseRequestPathFor404: true,
	}))

	authHandler := handler.NewAuthHandler(d.Users, d.Auth, d.Translator)
	userHandler := handler.NewUserHandler(d.Users)
	eventHandler := handler.NewEventHandler(d.Events, d.Participation, d.Bulk, d.Translator)
	healthHandler := handler.NewHealthHandler(d.Checks)
	auth := middleware.Auth(d.JWTSecret)

	e.GET("/health", healthHandler.Liveness)
	e.GET("/health/ready", healthHandler.Readiness)
	e.GET("/metrics", echoprometheus.NewHandlerWithConfig(echoprometheus.HandlerConfig{Gatherer: d.Gatherer}))

	g := e.Group("/api")

	g.POST("/auth/register", authHandler.Register)
	g.POST("/auth/verify", authHandler.Verify)
	g.POST("/auth/login", authHandler.Login)

	g.GET("/users/me", userHandler.Me, auth)
	g.GET("/users/events", userHandler.Events, auth)

	g.GET("/events", eventHandler.List)
	g.GET("/events/:id", eventHandler.Get)
	g.GET("/events/:id/participants", eventHandler.Participants)
	g.POST("/events", eventHandler.Create, auth)
	g.PATCH("/events/:id", eventHandler.Update, auth)
	g.POST("/events/:id/register", eventHandler.Register, auth)
	g.POST("/events/:id/cancel", eventHandler.Cancel, auth)
	g.POST("/events/:id/notify", eventHandler.Notify, auth)

	g.PUT("/admin/users/organizer", userHandler.SetOrganizer, auth, middleware.RequireFlag(middleware.KeySuperAdmin))

	return e
}
