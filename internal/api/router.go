// Package api assembles the echo server of the accounts API.
//
// @title           User Accounts API
// @version         1.0
// @description     Account registration, sign-in and user administration.
// @BasePath        /
// @securityDefinitions.apikey  BearerAuth
// @in                          header
// @name                        Authorization
package api

import (
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
	echoSwagger "github.com/swaggo/echo-swagger"

	_ "github.com/99minutos/user-accounts/docs"
	"github.com/99minutos/user-accounts/internal/api/handler"
	"github.com/99minutos/user-accounts/internal/api/middleware"
	"github.com/99minutos/user-accounts/internal/core/domain"
	"github.com/99minutos/user-accounts/internal/core/ports"
)

// Dependencies are the collaborators the routes are served by.
type Dependencies struct {
	Accounts     handler.AccountManager
	SignIn       handler.SignInService
	Tokens       middleware.TokenValidator
	Users        ports.UserService
	HealthChecks map[string]handler.HealthCheck

	// Registry receives the HTTP metrics and backs /metrics. The default
	// Prometheus registry is used when nil.
	Registry *prometheus.Registry
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(deps Dependencies, log zerolog.Logger) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(requestLogger(log))
	registerer, gatherer := metricsRegistry(deps.Registry)
	e.Use(echoprometheus.NewMiddlewareWithConfig(echoprometheus.MiddlewareConfig{
		Namespace:  "accounts",
		Registerer: registerer,
	}))

	accountHandler := handler.NewAccountHandler(deps.Accounts, deps.SignIn)
	userHandler := handler.NewUserHandler(deps.Users, deps.Accounts)
	healthHandler := handler.NewHealthHandler(deps.HealthChecks)
	auth := middleware.Auth(deps.Tokens)

	v1 := e.Group("/v1")

	// --- Account routes ---
	v1.POST("/account/signup", accountHandler.SignUp)
	v1.POST("/account/signin", accountHandler.SignIn)
	v1.POST("/account/signout", accountHandler.SignOut, auth)
	v1.GET("/account", accountHandler.Current, auth)

	// --- Profile routes ---
	v1.GET("/profile", userHandler.GetProfile, auth)
	v1.PUT("/profile", userHandler.UpdateProfile, auth)

	// --- Admin routes ---
	admin := v1.Group("/users", auth, middleware.RBAC(domain.RoleAdmin))
	admin.GET("", userHandler.ListUsers)
	admin.DELETE("/:id", userHandler.DeleteUser)

	// --- Probes, metrics and docs (no auth required) ---
	e.GET("/health", healthHandler.Liveness)
	e.GET("/health/ready", healthHandler.Readiness)
	e.GET("/metrics", echoprometheus.NewHandlerWithConfig(echoprometheus.HandlerConfig{Gatherer: gatherer}))
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	return e
}

func metricsRegistry(reg *prometheus.Registry) (prometheus.Registerer, prometheus.Gatherer) {
	if reg == nil {
		return prometheus.DefaultRegisterer, prometheus.DefaultGatherer
	}
	return reg, reg
}

func requestLogger(log zerolog.Logger) echo.MiddlewareFunc {
	return echomiddleware.RequestLoggerWithConfig(echomiddleware.RequestLoggerConfig{
		LogMethod:    true,
		LogURI:       true,
		LogStatus:    true,
		LogLatency:   true,
		LogRequestID: true,
		LogError:     true,
		HandleError:  true,
		LogValuesFunc: func(c echo.Context, v echomiddleware.RequestLoggerValues) error {
			evt := log.Info()
			if v.Error != nil || v.Status >= 500 {
				evt = log.Error().Err(v.Error)
			}
			evt.Str("method", v.Method).
				Str("uri", v.URI).
				Int("status", v.Status).
				Dur("latency", v.Latency).
				Str("request_id", v.RequestID).
				Msg("request")
			return nil
		},
	})
}
