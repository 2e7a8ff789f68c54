package router

import (
	"time"

	"github.com/content-services/lecho/v3"
	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/ticketing-services/ticketing-backend/pkg/cache"
	"github.com/ticketing-services/ticketing-backend/pkg/config"
	"github.com/ticketing-services/ticketing-backend/pkg/dao"
	"github.com/ticketing-services/ticketing-backend/pkg/db"
	"github.com/ticketing-services/ticketing-backend/pkg/handler"
	"github.com/ticketing-services/ticketing-backend/pkg/instrumentation"
	"github.com/ticketing-services/ticketing-backend/pkg/middleware"
	"github.com/ticketing-services/ticketing-backend/pkg/tenant"
)

func ConfigureEcho(allRoutes bool) *echo.Echo {
	e := echo.New()
	// Add global middlewares
	echoLogger := lecho.From(log.Logger,
		lecho.WithTimestamp(),
		lecho.WithCaller(),
	)

	e.Use(middleware.AddRequestId)
	e.Use(lecho.Middleware(lecho.Config{
		Logger:              echoLogger,
		RequestIDHeader:     config.HeaderRequestId,
		RequestIDKey:        config.RequestIdLoggingKey,
		Skipper:             config.SkipLogging,
		RequestLatencyLevel: zerolog.WarnLevel,
		RequestLatencyLimit: 500 * time.Millisecond,
	}))
	e.Use(middleware.ExtractStatus) // Must be after lecho
	e.Use(middleware.EnforceJSONContentType)
	e.Use(middleware.LogServerErrorRequest)

	// Add routes
	handler.RegisterPing(e)
	if allRoutes {
		handler.RegisterRoutes(e)
	}

	// Set error handler
	e.HTTPErrorHandler = config.CustomHTTPErrorHandler
	return e
}

func ConfigureEchoWithMetrics(metrics *instrumentation.Metrics) *echo.Echo {
	return configureTenantEcho(dao.GetDaoRegistry(db.DB), cache.Initialize(), metrics)
}

func configureTenantEcho(daoReg *dao.DaoRegistry, appCache cache.Cache, metrics *instrumentation.Metrics) *echo.Echo {
	e := ConfigureEcho(true)

	// The tenant router rewrites subdomain traffic onto the portal routes,
	// so it has to run before echo picks a route.
	e.Pre(middleware.TenantRouterWithConfig(&middleware.TenantRouterConfig{
		Resolver: tenant.NewResolver(daoReg, appCache),
		Metrics:  metrics,
	}))

	// Add additional global middlewares. Portal routes stay anonymous, the
	// tenant router already scoped them to one organization.
	e.Use(middleware.EnforceIdentityWithSkipper(middleware.SkipAuth))
	e.Use(middleware.EnforceMembership(middleware.Membership{
		Skipper: middleware.PortalRequest,
		Dao:     daoReg,
		Cache:   appCache,
	}))
	e.Use(middleware.CreateMetricsMiddleware(metrics))

	handler.RegisterPortalRoutes(e, daoReg, middleware.PortalSubmitRateLimiter(redisClient()))
	return e
}

// redisClient returns the shared redis connection for rate limiting, or nil
// when no redis is configured. The limiter treats nil as "no limit".
func redisClient() *redis.Client {
	c := config.Get()
	if c.Clients.Redis.Host == "" {
		return nil
	}
	return redis.NewClient(&redis.Options{
		Addr:     config.RedisUrl(),
		Username: c.Clients.Redis.Username,
		Password: c.Clients.Redis.Password,
		DB:       c.Clients.Redis.DB,
	})
}
