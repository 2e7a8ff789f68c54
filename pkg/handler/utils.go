package handler

import (
	"github.com/labstack/echo/v4"
	"github.com/ticketing-services/ticketing-backend/pkg/identity"
	"github.com/ticketing-services/ticketing-backend/pkg/rbac"
)

// addOrgRoute registers the route and maps it to the capability the
// membership middleware enforces for organization scoped paths.
func addOrgRoute(e *echo.Group, method string, path string, h echo.HandlerFunc, capability rbac.Capability, m ...echo.MiddlewareFunc) {
	e.Add(method, path, h, m...)
	rbac.ServicePermissions.Add(method, path, capability)
}

func getUser(c echo.Context) identity.Identity {
	return identity.Get(c.Request().Context())
}

// actorUUID returns the authenticated caller's uuid for activity stamping,
// nil for anonymous portal traffic.
func actorUUID(c echo.Context) *string {
	id := getUser(c)
	if id.UserUUID == "" {
		return nil
	}
	return &id.UserUUID
}
