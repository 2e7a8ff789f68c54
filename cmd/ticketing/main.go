package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog/log"
	"github.com/ticketing-services/ticketing-backend/pkg/config"
	"github.com/ticketing-services/ticketing-backend/pkg/db"
	"github.com/ticketing-services/ticketing-backend/pkg/instrumentation"
	"github.com/ticketing-services/ticketing-backend/pkg/instrumentation/custom"
	"github.com/ticketing-services/ticketing-backend/pkg/notifications"
	"github.com/ticketing-services/ticketing-backend/pkg/router"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	config.Load()
	config.ConfigureLogging()

	err := db.Connect()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to database")
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Error().Err(err).Msg("Failed to close database connection")
		}
	}()

	reg := prometheus.NewRegistry()
	metrics := instrumentation.NewMetrics(reg)
	notifications.SetMetrics(metrics)

	apiServer := startApiServer(metrics)
	metricsServer := startMetricsServer(metrics)

	if collector := custom.NewCollector(ctx, metrics, db.DB); collector != nil {
		go collector.Run()
	}

	<-ctx.Done()
	log.Info().Msg("Shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := apiServer.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("Failed to shut down api server")
	}
	if err := metricsServer.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("Failed to shut down metrics server")
	}
}

func startApiServer(metrics *instrumentation.Metrics) *echo.Echo {
	e := router.ConfigureEchoWithMetrics(metrics)
	go func() {
		err := e.Start(fmt.Sprintf(":%d", config.Get().Server.Port))
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("Api server stopped")
		}
	}()
	return e
}

// startMetricsServer serves prometheus traffic on its own listener, internal
// scrapes never mix with tenant traffic.
func startMetricsServer(metrics *instrumentation.Metrics) *echo.Echo {
	e := router.ConfigureEcho(false)
	e.Add(http.MethodGet, config.Get().Metrics.Path, echo.WrapHandler(promhttp.HandlerFor(
		metrics.Registry(),
		promhttp.HandlerOpts{
			// Opt into OpenMetrics to support exemplars.
			EnableOpenMetrics: true,
			Registry:          metrics.Registry(),
		},
	)))
	go func() {
		err := e.Start(fmt.Sprintf(":%d", config.Get().Metrics.Port))
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("Metrics server stopped")
		}
	}()
	return e
}
