package main

import (
	"context"
	"flag"
	"net/http"
	"os"
	"os/signal"
	"time"

	"github.com/signalsfoundry/groundstation-registry/core"
	"github.com/signalsfoundry/groundstation-registry/internal/api"
	"github.com/signalsfoundry/groundstation-registry/internal/logging"
	"github.com/signalsfoundry/groundstation-registry/internal/observability"
	"github.com/signalsfoundry/groundstation-registry/registry"
	"github.com/signalsfoundry/groundstation-registry/station"
)

func main() {
	httpAddr := flag.String("http-addr", ":8080", "TCP address the registry API listens on")
	metricsAddr := flag.String("metrics-addr", ":9090", "HTTP address for Prometheus /metrics")
	catalogPath := flag.String("catalog", "configs/stations.yaml", "Path to a JSON or YAML station catalog")
	withDSN := flag.Bool("dsn", false, "Preload the Deep Space Network station catalog onto Earth")
	flag.Parse()

	log := logging.NewFromEnv()
	ctx := context.Background()

	collector, err := observability.NewRegistryCollector(nil)
	if err != nil {
		log.Error(ctx, "failed to initialise metrics collector", logging.String("error", err.Error()))
		os.Exit(1)
	}

	shutdownTracing, err := observability.InitTracing(ctx, observability.TracingConfigFromEnv(), log)
	if err != nil {
		log.Error(ctx, "failed to initialise tracing", logging.String("error", err.Error()))
		os.Exit(1)
	}

	metricsSrv := serveMetrics(*metricsAddr, collector, log)

	reg := registry.NewBodyRegistry(registry.WithMetricsRecorder(collector))
	loadCatalog(log, reg, *catalogPath)
	if *withDSN {
		loadDSN(log, reg)
	}

	server := api.NewServer(reg, log)
	apiSrv := &http.Server{
		Addr:    *httpAddr,
		Handler: server.Handler(collector.Middleware),
	}

	log.Info(ctx, "starting registry API server", logging.String("addr", *httpAddr))
	go func() {
		if err := apiSrv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error(ctx, "API server exited", logging.String("error", err.Error()))
		}
	}()

	stopCtx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	<-stopCtx.Done()

	log.Info(ctx, "shutting down registry API server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	_ = apiSrv.Shutdown(shutdownCtx)
	if metricsSrv != nil {
		_ = metricsSrv.Shutdown(shutdownCtx)
	}
	observability.ShutdownWithTimeout(context.Background(), shutdownTracing, log)
}

func serveMetrics(addr string, collector *observability.RegistryCollector, log logging.Logger) *http.Server {
	if collector == nil {
		return nil
	}
	mux := http.NewServeMux()
	mux.Handle("/metrics", collector.Handler())

	srv := &http.Server{
		Addr:    addr,
		Handler: mux,
	}

	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Warn(context.Background(), "metrics server exited", logging.String("error", err.Error()))
		}
	}()

	log.Info(context.Background(), "serving Prometheus metrics", logging.String("addr", addr))
	return srv
}

func loadCatalog(log logging.Logger, reg *registry.BodyRegistry, path string) {
	if path == "" {
		return
	}

	summary, err := core.LoadStationCatalogFile(reg, path)
	if err != nil {
		log.Warn(context.Background(), "skipping station catalog load",
			logging.String("path", path),
			logging.String("error", err.Error()),
		)
		return
	}

	log.Info(context.Background(), "loaded station catalog",
		logging.String("path", path),
		logging.Int("bodies", len(summary.BodyNames)),
		logging.Int("stations", summary.StationCount),
	)
}

func loadDSN(log logging.Logger, reg *registry.BodyRegistry) {
	stations, err := station.DSNStations()
	if err != nil {
		log.Warn(context.Background(), "skipping DSN preload", logging.String("error", err.Error()))
		return
	}
	for _, s := range stations {
		if err := reg.AddStation("Earth", s); err != nil {
			log.Warn(context.Background(), "skipping DSN station",
				logging.String("station", s.Name),
				logging.String("error", err.Error()),
			)
		}
	}
	log.Info(context.Background(), "preloaded DSN stations", logging.Int("stations", len(stations)))
}
