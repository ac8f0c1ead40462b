// Copyright (c) 2025 AccelByte Inc. All Rights Reserved.
// This is licensed software from AccelByte Inc, for limitations
// and restrictions contact your company contract manager.

// Command octane-core runs the queue-to-match pipeline: the periodic drain
// loop over the flat JSON stores, with prometheus metrics and optional trace
// export.
package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/caarlos0/env"
	"github.com/go-co-op/gocron/v2"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/sirupsen/logrus"
	"go.opentelemetry.io/contrib/propagators/b3"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/exporters/zipkin"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.24.0"

	"github.com/Voidixx/OctanesCore/pkg/config"
	"github.com/Voidixx/OctanesCore/pkg/constants"
	"github.com/Voidixx/OctanesCore/pkg/envelope"
	"github.com/Voidixx/OctanesCore/pkg/events"
	"github.com/Voidixx/OctanesCore/pkg/matchmaker"
	"github.com/Voidixx/OctanesCore/pkg/metrics"
	"github.com/Voidixx/OctanesCore/pkg/queue"
	"github.com/Voidixx/OctanesCore/pkg/rng"
	"github.com/Voidixx/OctanesCore/pkg/storage"
)

const serviceName = "octane-core"

func main() {
	_ = godotenv.Load()

	cfg := &config.Config{}
	if err := env.Parse(cfg); err != nil {
		logrus.Fatal("failed to parse config: ", err)
	}

	setupLogging(cfg)

	shutdownTracing, err := setupTracing(cfg)
	if err != nil {
		logrus.Fatal("failed to set up tracing: ", err)
	}
	defer func() {
		_ = shutdownTracing(context.Background())
	}()

	stores, err := storage.Open(cfg.DataDir)
	if err != nil {
		logrus.Fatal("failed to open data stores: ", err)
	}

	registry := prometheus.NewRegistry()
	qm := metrics.NewMetrics(registry)
	bus := events.NewBus()
	src := rng.New()

	rate := cfg.AcceptFailureRate
	if rate < 0 || rate > 1 {
		rate = constants.DefaultAcceptFailureRate
	}

	former := matchmaker.New(stores, src)
	drainer := queue.NewDrainer(stores, former, bus, qm, src,
		queue.RandomRejection{Rate: rate, Source: src},
		time.Duration(cfg.QueueTimeoutSecond)*time.Second)

	// Dashboard refresh hook: collaborators subscribe the same way.
	unsubscribe := events.Subscribe(bus, func(ev events.QueueUpdated) {
		logrus.WithField("queueSize", ev.Size).Debug("dashboard refresh notification")
	})
	defer unsubscribe()

	if cfg.MetricsAddress != "" {
		go serveMetrics(cfg.MetricsAddress, registry)
	}

	interval := time.Duration(cfg.DrainIntervalSecond) * time.Second
	if interval <= 0 {
		interval = constants.DefaultDrainInterval
	}

	scheduler, err := gocron.NewScheduler()
	if err != nil {
		logrus.Fatal("failed to create scheduler: ", err)
	}
	_, err = scheduler.NewJob(
		gocron.DurationJob(interval),
		gocron.NewTask(func() {
			scope := envelope.NewRootScope(context.Background(), "queueDrainTick", "")
			defer scope.Finish()
			if err := drainer.RunTick(scope); err != nil {
				// Not retried; the next tick reconciles from the stored snapshot.
				scope.Log.Error("drain tick failed: ", err)
			}
		}),
	)
	if err != nil {
		logrus.Fatal("failed to schedule drain job: ", err)
	}

	scheduler.Start()
	logrus.WithField("interval", interval.String()).
		WithField("dataDir", cfg.DataDir).
		Info("octane-core drain loop started")

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop

	logrus.Info("shutting down")
	if err := scheduler.Shutdown(); err != nil {
		logrus.Error("scheduler shutdown: ", err)
	}
}

func setupLogging(cfg *config.Config) {
	if cfg.LogFormatJSON {
		logrus.SetFormatter(&logrus.JSONFormatter{})
	}
	level, err := logrus.ParseLevel(cfg.LogLevel)
	if err != nil {
		level = logrus.InfoLevel
	}
	logrus.SetLevel(level)
}

// setupTracing installs the b3 propagator and, when an endpoint is
// configured, a zipkin span exporter.
func setupTracing(cfg *config.Config) (func(context.Context) error, error) {
	otel.SetTextMapPropagator(b3.New())

	if cfg.ZipkinEndpoint == "" {
		return func(context.Context) error { return nil }, nil
	}

	exporter, err := zipkin.New(cfg.ZipkinEndpoint)
	if err != nil {
		return nil, err
	}

	provider := sdktrace.NewTracerProvider(
		sdktrace.WithBatcher(exporter),
		sdktrace.WithResource(resource.NewSchemaless(
			semconv.ServiceNameKey.String(serviceName),
		)),
	)
	otel.SetTracerProvider(provider)

	return provider.Shutdown, nil
}

func serveMetrics(address string, registry *prometheus.Registry) {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(registry, promhttp.HandlerOpts{}))
	if err := http.ListenAndServe(address, mux); err != nil {
		logrus.Error("metrics server stopped: ", err)
	}
}
