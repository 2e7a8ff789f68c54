package middleware

import (
	"net/http"

	"github.com/go-redis/redis_rate/v10"
	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
	"github.com/ticketing-services/ticketing-backend/pkg/config"
	ce "github.com/ticketing-services/ticketing-backend/pkg/errors"
)

// PortalSubmitRateLimiter caps anonymous portal ticket submissions per
// client address and organization. It is a no-op when redis is not
// configured, local development runs without one.
func PortalSubmitRateLimiter(client *redis.Client) echo.MiddlewareFunc {
	perMinute := config.Get().Server.PortalRateLimitPerMinute
	var limiter *redis_rate.Limiter
	if client != nil && perMinute > 0 {
		limiter = redis_rate.NewLimiter(client)
	}
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if limiter == nil {
				return next(c)
			}

			key := "portal-submit:" + c.Param("org_uuid") + "," + c.RealIP()
			res, err := limiter.Allow(c.Request().Context(), key, redis_rate.PerMinute(perMinute))
			if err != nil {
				// A broken limiter must not take the portal down.
				log.Logger.Error().Err(err).Msg("rate limiter unavailable")
				return next(c)
			}
			if res.Allowed == 0 {
				return ce.NewErrorResponse(http.StatusTooManyRequests, "Too many requests",
					"Ticket submissions are limited, try again shortly")
			}
			return next(c)
		}
	}
}
