package middleware

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
	echo_middleware "github.com/labstack/echo/v4/middleware"
	"github.com/rs/zerolog/log"
	"github.com/ticketing-services/ticketing-backend/pkg/instrumentation"
	"github.com/ticketing-services/ticketing-backend/pkg/tenant"
)

const (
	OrgIdHeader        = "x-organization-id"
	OrgNameHeader      = "x-organization-name"
	OrgSubdomainHeader = "x-organization-subdomain"

	// TenantResolutionKey stores the tenant.Resolution on the echo context
	// for the portal handlers.
	TenantResolutionKey = "tenant_resolution"

	orgNotFoundPath = "/org/not-found"
	orgErrorPath    = "/org/error"
)

type TenantRouterConfig struct {
	Skipper  echo_middleware.Skipper
	Resolver tenant.Resolver
	Metrics  *instrumentation.Metrics
}

// tenantRouterSkipper skips paths that are never tenant scoped. Paths
// already under /org/ are skipped so a rewritten request that re-enters the
// chain is left alone.
func tenantRouterSkipper(c echo.Context) bool {
	path := c.Request().URL.Path
	switch {
	case path == "/ping" || path == "/ping/":
		return true
	case path == "/metrics" || path == "/metrics/":
		return true
	case strings.HasPrefix(path, "/api/"):
		return true
	case strings.HasPrefix(path, "/org/"):
		return true
	}
	return false
}

// TenantRouterWithConfig resolves the request host to a tenant and rewrites
// tenant traffic onto the portal routes. It must be registered with
// echo.Pre() so the rewrite happens before routing.
//
// A host that resolves to a tenant gets its path prefixed with
// /org/<org uuid> and the organization stamped on the request headers. An
// unknown tenant subdomain lands on the not-found page, a transient
// resolution failure on the error page. Hosts that do not address a tenant
// pass through untouched.
func TenantRouterWithConfig(config *TenantRouterConfig) echo.MiddlewareFunc {
	if config == nil || config.Resolver == nil {
		panic("config.Resolver can not be nil")
	}
	if config.Skipper == nil {
		config.Skipper = tenantRouterSkipper
	}
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if config.Skipper(c) {
				return next(c)
			}

			req := c.Request()
			resolution, err := config.Resolver.Resolve(req.Context(), req.Host)
			if err != nil {
				log.Logger.Error().Err(err).Str("host", req.Host).Msg("Tenant resolution failed")
				config.Metrics.RecordTenantResolution("error")
				rewritePath(req, orgErrorPath)
				return next(c)
			}
			config.Metrics.RecordTenantResolution(string(resolution.Outcome))

			switch resolution.Outcome {
			case tenant.OutcomeResolved:
				org := resolution.Organization
				req.Header.Set(OrgIdHeader, org.UUID)
				req.Header.Set(OrgNameHeader, org.Name)
				req.Header.Set(OrgSubdomainHeader, resolution.Subdomain)
				c.Set(TenantResolutionKey, resolution)
				rewritePath(req, "/org/"+org.UUID+req.URL.Path)
			case tenant.OutcomeNotFound:
				rewritePath(req, orgNotFoundPath)
			}
			return next(c)
		}
	}
}

func rewritePath(req *http.Request, path string) {
	req.URL.Path = path
	req.RequestURI = req.URL.RequestURI()
}
