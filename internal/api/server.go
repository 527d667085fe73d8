package api

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"golang.org/x/time/rate"

	"user-dashboard-service/internal/config"
)

// NewRateLimiter limits requests per remote address.
func NewRateLimiter(cfg config.RateLimit) echo.MiddlewareFunc {
	limiterConfig := middleware.RateLimiterConfig{
		Skipper: middleware.DefaultSkipper,
		Store: middleware.NewRateLimiterMemoryStoreWithConfig(
			middleware.RateLimiterMemoryStoreConfig{
				Rate:      rate.Limit(cfg.Rate),
				Burst:     cfg.Burst,
				ExpiresIn: cfg.ExpiresIn,
			}),
		IdentifierExtractor: func(context echo.Context) (string, error) {
			return context.RealIP(), nil
		},
		ErrorHandler: func(context echo.Context, err error) error {
			return context.JSON(http.StatusTooManyRequests, map[string]string{"error": "rate limit exceeded"})
		},
		DenyHandler: func(context echo.Context, identifier string, err error) error {
			return context.JSON(http.StatusTooManyRequests, map[string]string{"error": "rate limit exceeded"})
		},
	}
	return middleware.RateLimiterWithConfig(limiterConfig)
}

// NewServer returns an echo instance with the middleware every service runs.
func NewServer(rl config.RateLimit) *echo.Echo {
	e := echo.New()
	e.HideBanner = true

	e.Use(middleware.Logger())
	e.Use(middleware.Recover())
	// the dashboard frontend is served from another origin
	e.Use(middleware.CORS())
	e.Use(NewRateLimiter(rl))

	return e
}

// Health reports liveness of the named service.
func Health(serviceName string) echo.HandlerFunc {
	return func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]interface{}{
			"status":  "ok",
			"service": serviceName,
			"time":    time.Now().Format(time.RFC3339),
		})
	}
}
