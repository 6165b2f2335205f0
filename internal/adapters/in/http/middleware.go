package http

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"couriertracking/internal/generated/servers"

	"github.com/getkin/kin-openapi/openapi3"
	"github.com/getkin/kin-openapi/openapi3filter"
	"github.com/getkin/kin-openapi/routers"
	"github.com/getkin/kin-openapi/routers/legacy"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"golang.org/x/time/rate"
)

const locationPath = "/api/couriers/location"

// RequestObserver receives one call per served request.
type RequestObserver interface {
	ObserveRequest(method, path string, status int)
}

// OpenAPIValidator rejects requests that do not match the OpenAPI document with 400.
// Paths absent from the document (health, metrics, swagger) pass through untouched.
func OpenAPIValidator(swagger *openapi3.T) (echo.MiddlewareFunc, error) {
	// Servers would force host matching; the API is served wherever it is deployed.
	swagger.Servers = nil

	router, err := legacy.NewRouter(swagger)
	if err != nil {
		return nil, err
	}

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			req := c.Request()

			route, pathParams, err := router.FindRoute(req)
			if err != nil {
				var routeErr *routers.RouteError
				if errors.As(err, &routeErr) && routeErr.Reason == routers.ErrMethodNotAllowed.Error() {
					return errorJSON(c, http.StatusMethodNotAllowed, routeErr.Reason)
				}
				return next(c)
			}

			input := &openapi3filter.RequestValidationInput{
				Request:    req,
				PathParams: pathParams,
				Route:      route,
			}
			if err = openapi3filter.ValidateRequest(req.Context(), input); err != nil {
				return errorJSON(c, http.StatusBadRequest, validationMessage(err))
			}

			return next(c)
		}
	}, nil
}

func validationMessage(err error) string {
	var reqErr *openapi3filter.RequestError
	if errors.As(err, &reqErr) {
		msg := reqErr.Error()
		if i := strings.IndexByte(msg, '\n'); i >= 0 {
			msg = msg[:i]
		}
		return msg
	}
	return err.Error()
}

type limiterStore struct {
	limiter *rate.Limiter
}

func (s limiterStore) Allow(string) (bool, error) {
	return s.limiter.Allow(), nil
}

// IngestRateLimiter caps accepted location pings per second across all callers.
// Rejected pings get 429; other routes are never limited.
func IngestRateLimiter(perSecond float64, burst int) echo.MiddlewareFunc {
	if burst < 1 {
		burst = 1
	}
	return middleware.RateLimiterWithConfig(middleware.RateLimiterConfig{
		Skipper: func(c echo.Context) bool {
			return c.Request().Method != http.MethodPost || c.Path() != locationPath
		},
		Store: limiterStore{limiter: rate.NewLimiter(rate.Limit(perSecond), burst)},
		IdentifierExtractor: func(echo.Context) (string, error) {
			return "ingest", nil
		},
		DenyHandler: func(c echo.Context, _ string, _ error) error {
			return errorJSON(c, http.StatusTooManyRequests, "Rate limit exceeded")
		},
	})
}

// RequestLogger writes one structured line per request and reports it to observer.
func RequestLogger(logger *slog.Logger, observer RequestObserver) echo.MiddlewareFunc {
	return middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogStatus:    true,
		LogMethod:    true,
		LogURI:       true,
		LogRoutePath: true,
		LogLatency:   true,
		LogRemoteIP:  true,
		LogError:     true,
		HandleError:  true,
		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			if observer != nil {
				observer.ObserveRequest(v.Method, routeLabel(v.RoutePath), v.Status)
			}

			attrs := []any{
				"method", v.Method,
				"uri", v.URI,
				"status", v.Status,
				"latency", v.Latency,
				"remote_ip", v.RemoteIP,
			}
			level := slog.LevelInfo
			if v.Status >= http.StatusInternalServerError {
				level = slog.LevelError
			}
			if v.Error != nil {
				attrs = append(attrs, "error", v.Error.Error())
			}
			logger.LogAttrs(c.Request().Context(), level, "request", slog.Group("http", attrs...))
			return nil
		},
	})
}

// routeLabel keeps metric cardinality bounded: unmatched paths collapse to one label.
func routeLabel(routePath string) string {
	if routePath == "" {
		return "unmatched"
	}
	return routePath
}

// HTTPErrorHandler renders echo errors with the API error body.
func HTTPErrorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}

	code := http.StatusInternalServerError
	message := http.StatusText(code)
	var he *echo.HTTPError
	if errors.As(err, &he) {
		code = he.Code
		message = http.StatusText(code)
		if m, ok := he.Message.(string); ok {
			message = m
		}
	}

	if c.Request().Method == http.MethodHead {
		_ = c.NoContent(code)
		return
	}
	_ = c.JSON(code, servers.Error{Code: int32(code), Message: message})
}
