package middleware

import (
	"context"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/neximprove/broker-onboarding/internal/api/metrics"
)

// RateLimiter decides whether a request identified by key may proceed within
// the current window. Implementations must be safe for concurrent use.
type RateLimiter interface {
	Allow(ctx context.Context, key string) (bool, error)
}

// RateLimit throttles requests per client IP. On a limiter backend error the
// request is let through: losing throttling is preferable to losing logins.
func RateLimit(limiter RateLimiter, log zerolog.Logger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			ok, err := limiter.Allow(c.Request().Context(), c.RealIP())
			if err != nil {
				log.Warn().Err(err).Msg("rate limiter unavailable, letting request through")
				return next(c)
			}
			if !ok {
				metrics.AuthThrottledTotal.Inc()
				return echo.NewHTTPError(http.StatusTooManyRequests, "Too many requests. Please try again later.")
			}
			return next(c)
		}
	}
}
