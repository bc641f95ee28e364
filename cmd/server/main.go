package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/light-bringer/fulfillment-service/internal/config"
	"github.com/light-bringer/fulfillment-service/internal/pkg/logging"
	"github.com/light-bringer/fulfillment-service/internal/services"
)

var configPath = flag.String("config", "", "Path to config.yaml (optional)")

func main() {
	flag.Parse()
	if err := run(); err != nil {
		log.Fatalf("Failed to run server: %v", err)
	}
}

func run() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// 1. Load configuration
	cfg, err := config.Load(*configPath)
	if err != nil {
		return err
	}

	logger, err := logging.New(cfg.Log)
	if err != nil {
		return fmt.Errorf("failed to create logger: %w", err)
	}
	defer func() { _ = logger.Sync() }()

	logger.Info("starting fulfillment service",
		zap.String("database", cfg.Spanner.DatabasePath()),
		zap.String("http_port", cfg.Server.HTTPPort),
		zap.String("grpc_port", cfg.Server.GRPCPort))

	// 2. Initialize service dependencies (DI container)
	gin.SetMode(cfg.Server.GinMode)
	serviceOpts, err := services.NewServiceOptions(ctx, cfg, logger)
	if err != nil {
		return fmt.Errorf("failed to initialize service: %w", err)
	}
	defer serviceOpts.Close()

	// 3. Start gRPC server in background
	lis, err := net.Listen("tcp", ":"+cfg.Server.GRPCPort)
	if err != nil {
		return fmt.Errorf("failed to listen on gRPC port: %w", err)
	}
	go func() {
		logger.Info("grpc server listening", zap.String("addr", lis.Addr().String()))
		if err := serviceOpts.GRPCServer.Serve(lis); err != nil {
			logger.Error("grpc server error", zap.Error(err))
		}
	}()

	// 4. Start HTTP server in background
	httpServer := &http.Server{
		Addr:    ":" + cfg.Server.HTTPPort,
		Handler: serviceOpts.Router,
	}
	serveErr := make(chan error, 1)
	go func() {
		logger.Info("http server listening", zap.String("addr", httpServer.Addr))
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
	}()

	// 5. Start maintenance jobs
	if cfg.Scheduler.AutoStart {
		if err := serviceOpts.Scheduler.Start(); err != nil {
			return fmt.Errorf("failed to start scheduler: %w", err)
		}
	}
	serviceOpts.GRPCServer.SetServing(true)

	// 6. Graceful shutdown handling
	select {
	case <-ctx.Done():
	case err := <-serveErr:
		logger.Error("http server error", zap.Error(err))
	}

	logger.Info("shutting down gracefully")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		logger.Error("http server shutdown error", zap.Error(err))
	}
	serviceOpts.GRPCServer.Shutdown()

	return nil
}
