package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/ecoscan/ecoscan-api/internal/config"
	"github.com/ecoscan/ecoscan-api/internal/events"
	"github.com/ecoscan/ecoscan-api/pkg/logger"
	"github.com/ecoscan/ecoscan-api/pkg/tracing"
)

// ecoscan-activity follows the activity topic and records every event in the
// structured log and the ecoscan_activity_events_total counter.
func main() {
	cfg, err := config.Load()
	if err != nil {
		logger.Init("ecoscan-activity", true)
		logger.Logger.Fatal().Err(err).Msg("Failed to load configuration")
	}

	serviceName := cfg.ServiceName + "-activity"
	logger.Init(serviceName, !cfg.IsProduction())
	logger.SetLevel(cfg.LogLevel)

	if len(cfg.Kafka.Brokers) == 0 {
		logger.Logger.Fatal().Msg("KAFKA_BROKERS is required")
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	tp, err := tracing.InitTracer(ctx, tracing.Config{
		Enabled:        cfg.Tracing.Enabled,
		ServiceName:    serviceName,
		ServiceVersion: cfg.ServiceVersion,
		JaegerEndpoint: cfg.JaegerEndpoint,
		SampleRatio:    cfg.Tracing.SampleRatio,
	})
	if err != nil {
		logger.Logger.Fatal().Err(err).Msg("Failed to initialize tracer")
	}

	consumer, err := events.NewConsumer(cfg.Kafka.Brokers, cfg.Kafka.GroupID, []string{cfg.Kafka.Topic})
	if err != nil {
		logger.Logger.Fatal().Err(err).Msg("Failed to create consumer")
	}

	reg := prometheus.NewRegistry()
	counter := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "ecoscan_activity_events_total",
			Help: "Activity events consumed, by type",
		},
		[]string{"event_type"},
	)
	reg.MustRegister(counter)

	logEvent := func(ctx context.Context, event events.ActivityEvent) error {
		counter.WithLabelValues(event.EventType).Inc()

		entry := logger.Info(ctx).
			Str("event_id", event.EventID).
			Str("event_type", event.EventType).
			Uint("user_id", event.UserID).
			Time("occurred_at", event.Timestamp)
		if event.ProductID != nil {
			entry = entry.Uint("product_id", *event.ProductID)
		}
		if event.Query != "" {
			entry = entry.Str("query", event.Query)
		}
		entry.Msg("Activity event")
		return nil
	}
	for _, eventType := range []string{
		events.EventTypeFavoriteAdded,
		events.EventTypeFavoriteRemoved,
		events.EventTypeSearchPerformed,
	} {
		consumer.RegisterHandler(eventType, logEvent)
	}

	router := mux.NewRouter()
	router.Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{})).Methods("GET")
	server := &http.Server{Addr: ":" + cfg.HTTP.Port, Handler: router}

	go func() {
		logger.Logger.Info().Str("port", cfg.HTTP.Port).Msg("Metrics server started")
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Logger.Error().Err(err).Msg("Metrics server failed")
			stop()
		}
	}()

	if err := consumer.Run(ctx); err != nil {
		logger.Logger.Error().Err(err).Msg("Consumer stopped")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.HTTP.ShutdownTimeout)
	defer cancel()

	if err := consumer.Close(); err != nil {
		logger.Logger.Error().Err(err).Msg("Failed to close consumer")
	}
	_ = server.Shutdown(shutdownCtx)
	if err := tracing.Shutdown(shutdownCtx, tp); err != nil {
		logger.Logger.Error().Err(err).Msg("Tracer shutdown failed")
	}
}
