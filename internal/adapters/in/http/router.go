// Package http exposes the tracking use cases over REST with echo. Requests to the API
// are validated against api/openapi.yml before they reach the handlers.
package http

import (
	"log/slog"
	"net/http"

	_ "couriertracking/docs"
	"couriertracking/internal/generated/servers"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	echoSwagger "github.com/swaggo/echo-swagger"
)

// RouterConfig carries the optional parts of the HTTP surface.
type RouterConfig struct {
	Logger          *slog.Logger
	MetricsHandler  http.Handler
	RequestObserver RequestObserver
	// IngestRateLimit is the accepted pings per second; 0 disables limiting.
	IngestRateLimit float64
	IngestBurst     int
}

// NewRouter builds the echo instance serving the API, /health, /metrics and /swagger.
func NewRouter(server servers.ServerInterface, cfg RouterConfig) (*echo.Echo, error) {
	swagger, err := servers.GetSwagger()
	if err != nil {
		return nil, err
	}
	validator, err := OpenAPIValidator(swagger)
	if err != nil {
		return nil, err
	}

	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.HTTPErrorHandler = HTTPErrorHandler

	e.Use(middleware.Recover())
	e.Use(RequestLogger(logger.With("component", "http"), cfg.RequestObserver))

	e.GET("/health", func(c echo.Context) error {
		return c.String(http.StatusOK, "Healthy")
	})
	if cfg.MetricsHandler != nil {
		e.GET("/metrics", echo.WrapHandler(cfg.MetricsHandler))
	}
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	e.Use(validator)
	if cfg.IngestRateLimit > 0 {
		e.Use(IngestRateLimiter(cfg.IngestRateLimit, cfg.IngestBurst))
	}
	servers.RegisterHandlers(e, server)

	return e, nil
}
