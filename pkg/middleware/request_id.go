package middleware

import (
	"github.com/labstack/echo/v4"
	"github.com/ticketing-services/ticketing-backend/pkg/config"
)

// Adds the request Id to the general context
func AddRequestId(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		c.Set(config.HeaderRequestId, c.Request().Header.Get(config.HeaderRequestId))
		return next(c)
	}
}
