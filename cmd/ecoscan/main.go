package main

import (
	"context"
	"errors"
	"net"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"google.golang.org/grpc"

	"github.com/ecoscan/ecoscan-api/internal/app"
	"github.com/ecoscan/ecoscan-api/internal/config"
	"github.com/ecoscan/ecoscan-api/internal/health"
	"github.com/ecoscan/ecoscan-api/pkg/logger"
	"github.com/ecoscan/ecoscan-api/pkg/tracing"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		// logger is not configured yet
		logger.Init("ecoscan-api", true)
		logger.Logger.Fatal().Err(err).Msg("Failed to load configuration")
	}

	// Initialize logger
	logger.Init(cfg.ServiceName, !cfg.IsProduction())
	logger.SetLevel(cfg.LogLevel)

	logger.Logger.Info().
		Str("service", cfg.ServiceName).
		Str("version", cfg.ServiceVersion).
		Str("environment", cfg.Environment).
		Str("database_driver", cfg.Database.Driver).
		Str("session_store", cfg.Session.Store).
		Msg("Starting EcoScan API")

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Initialize tracing
	tp, err := tracing.InitTracer(ctx, tracing.Config{
		Enabled:        cfg.Tracing.Enabled,
		ServiceName:    cfg.ServiceName,
		ServiceVersion: cfg.ServiceVersion,
		JaegerEndpoint: cfg.JaegerEndpoint,
		SampleRatio:    cfg.Tracing.SampleRatio,
	})
	if err != nil {
		logger.Logger.Fatal().Err(err).Msg("Failed to initialize tracer")
	}

	// Initialize application with Wire DI
	application, cleanup, err := app.InitializeApp(ctx, cfg)
	if err != nil {
		logger.Logger.Fatal().Err(err).Msg("Failed to initialize application")
	}

	httpServer := &http.Server{
		Addr:         ":" + cfg.HTTP.Port,
		Handler:      application.Handler,
		ReadTimeout:  cfg.HTTP.ReadTimeout,
		WriteTimeout: cfg.HTTP.WriteTimeout,
		IdleTimeout:  cfg.HTTP.IdleTimeout,
	}

	errCh := make(chan error, 2)

	go func() {
		logger.Logger.Info().
			Str("port", cfg.HTTP.Port).
			Str("metrics_endpoint", "/metrics").
			Str("swagger_endpoint", "/swagger/index.html").
			Msg("HTTP server started")

		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	var grpcServer *grpc.Server
	if cfg.GRPC.Enabled {
		grpcServer = startGRPCServer(ctx, cfg, application.Health, errCh)
	}

	select {
	case <-ctx.Done():
		logger.Logger.Info().Msg("Shutting down servers...")
	case err := <-errCh:
		logger.Logger.Error().Err(err).Msg("Server failed, shutting down")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.HTTP.ShutdownTimeout)
	defer cancel()

	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		logger.Logger.Error().Err(err).Msg("HTTP server shutdown failed")
	}
	if grpcServer != nil {
		stopGRPC(shutdownCtx, grpcServer)
	}

	cleanup()

	if err := tracing.Shutdown(shutdownCtx, tp); err != nil {
		logger.Logger.Error().Err(err).Msg("Tracer shutdown failed")
	}

	logger.Logger.Info().Msg("Server stopped")
}

func startGRPCServer(ctx context.Context, cfg *config.Config, checker *health.Checker, errCh chan<- error) *grpc.Server {
	grpcServer, healthServer := health.NewGRPCServer()
	// Watch marks the service NOT_SERVING once ctx is cancelled
	go checker.Watch(ctx, healthServer, 15*time.Second)

	lis, err := net.Listen("tcp", ":"+cfg.GRPC.Port)
	if err != nil {
		logger.Logger.Fatal().Err(err).Str("port", cfg.GRPC.Port).Msg("Failed to listen")
	}

	go func() {
		logger.Logger.Info().
			Str("port", cfg.GRPC.Port).
			Msg("gRPC health server started")

		if err := grpcServer.Serve(lis); err != nil && !errors.Is(err, grpc.ErrServerStopped) {
			errCh <- err
		}
	}()

	return grpcServer
}

// stopGRPC waits for in-flight calls until ctx expires
func stopGRPC(ctx context.Context, server *grpc.Server) {
	done := make(chan struct{})
	go func() {
		server.GracefulStop()
		close(done)
	}()

	select {
	case <-done:
	case <-ctx.Done():
		server.Stop()
	}
}
