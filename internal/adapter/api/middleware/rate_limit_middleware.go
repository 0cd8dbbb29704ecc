package middleware

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"vendora/internal/infrastructure/ratelimit"
	"vendora/pkg/errors"
	"vendora/pkg/logger"
	"vendora/pkg/response"
)

// RateLimit limits requests per client IP using a token bucket refilled once
// per minute.
func RateLimit(requestsPerMinute int) echo.MiddlewareFunc {
	limiter := ratelimit.NewRateLimiter(requestsPerMinute, requestsPerMinute, time.Minute)
	limiter.StartCleanupRoutine()

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			ip := c.RealIP()

			allowed, wait := limiter.Allow(ip)
			if !allowed {
				logger.Warn("rate limit exceeded for %s, retry in %v", ip, wait)
				c.Response().Header().Set("Retry-After", wait.Round(time.Second).String())
				return response.Error(c, errors.New("RATE_LIMITED", "Too many requests", http.StatusTooManyRequests, nil))
			}

			return next(c)
		}
	}
}
