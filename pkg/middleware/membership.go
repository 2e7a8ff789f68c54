package middleware

import (
	"errors"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
	echo_middleware "github.com/labstack/echo/v4/middleware"
	"github.com/rs/zerolog/log"
	"github.com/ticketing-services/ticketing-backend/pkg/api"
	"github.com/ticketing-services/ticketing-backend/pkg/cache"
	"github.com/ticketing-services/ticketing-backend/pkg/dao"
	ce "github.com/ticketing-services/ticketing-backend/pkg/errors"
	"github.com/ticketing-services/ticketing-backend/pkg/identity"
	"github.com/ticketing-services/ticketing-backend/pkg/models"
	"github.com/ticketing-services/ticketing-backend/pkg/rbac"
)

// MembershipRoleKey stores the caller's role within the addressed
// organization on the echo context.
const MembershipRoleKey = "membership_role"

type Membership struct {
	Skipper echo_middleware.Skipper
	Dao     *dao.DaoRegistry
	Cache   cache.Cache
}

// EnforceMembership authorizes requests against an organization scoped
// route. The caller must be a member of the addressed organization and their
// role must grant the capability mapped to the route. Non-members get a 403,
// never a 500.
func EnforceMembership(config Membership) echo.MiddlewareFunc {
	if config.Dao == nil {
		panic("config.Dao can not be nil")
	}
	if config.Cache == nil {
		panic("config.Cache can not be nil")
	}
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if config.Skipper != nil && config.Skipper(c) {
				return next(c)
			}

			orgUUID := c.Param("org_uuid")
			if orgUUID == "" {
				// Routes outside an organization scope carry no membership
				// requirement.
				return next(c)
			}

			id := identity.Get(c.Request().Context())
			if id.UserUUID == "" {
				return ce.NewErrorResponse(http.StatusUnauthorized, "Authentication required", "Organization routes require an authenticated user")
			}

			capability, err := rbac.ServicePermissions.Permission(c.Request().Method, trimRootPath(c.Path()))
			if err != nil {
				log.Logger.Error().Err(err).Str("path", c.Path()).Msg("Route has no capability mapping")
				return ce.NewErrorResponse(http.StatusForbidden, "Access denied", "Route has no capability mapping")
			}

			role, err := lookupRole(c, config, orgUUID, id.UserUUID)
			if err != nil {
				daoErr := &ce.DaoError{}
				if errors.As(err, &daoErr) && daoErr.NotFound {
					return ce.NewErrorResponse(http.StatusForbidden, "Access denied", "You are not a member of this organization")
				}
				return ce.NewErrorResponseFromError("Error checking membership", err)
			}

			required, err := rbac.RequiredRole(capability)
			if err != nil {
				return ce.NewErrorResponseFromError("Error checking membership", err)
			}
			if !role.HasAtLeast(required) {
				return ce.NewErrorResponse(http.StatusForbidden, "Access denied",
					"This action requires the "+string(required)+" role")
			}

			c.Set(MembershipRoleKey, role)
			return next(c)
		}
	}
}

// MembershipRole returns the role EnforceMembership resolved for the caller,
// or the empty role when the route did not pass through it.
func MembershipRole(c echo.Context) models.Role {
	role, _ := c.Get(MembershipRoleKey).(models.Role)
	return role
}

func lookupRole(c echo.Context, config Membership, orgUUID string, userUUID string) (models.Role, error) {
	ctx := c.Request().Context()

	role, err := config.Cache.GetMembershipRole(ctx, orgUUID, userUUID)
	if err == nil {
		return role, nil
	}
	if !errors.Is(err, cache.NotFound) {
		log.Logger.Error().Err(err).Msg("membership cache lookup failed")
	}

	role, err = config.Dao.Membership.RoleOf(ctx, orgUUID, userUUID)
	if err != nil {
		return "", err
	}
	if cacheErr := config.Cache.SetMembershipRole(ctx, orgUUID, userUUID, role); cacheErr != nil {
		log.Logger.Error().Err(cacheErr).Msg("could not cache membership role")
	}
	return role, nil
}

// trimRootPath strips the API prefix so the capability map keys stay
// relative. FullRootPath goes first, the major path is its prefix.
func trimRootPath(path string) string {
	for _, prefix := range []string{api.FullRootPath(), api.MajorRootPath()} {
		if strings.HasPrefix(path, prefix) {
			return strings.TrimPrefix(path, prefix)
		}
	}
	return path
}
