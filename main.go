package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"sales_service/api"
	"sales_service/internal/config"
	"sales_service/internal/logging"
	"sales_service/internal/sales"
	"sales_service/internal/server"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"go.uber.org/zap"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "sales service: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.LoadConfig(".")
	if err != nil {
		return fmt.Errorf("error loading config: %w", err)
	}

	logger, err := logging.NewLogger(cfg.LogLevel)
	if err != nil {
		return err
	}
	defer logger.Sync()

	gin.SetMode(cfg.GinMode)

	storage, err := sales.NewFixedStorage()
	if err != nil {
		return fmt.Errorf("error building sales catalog: %w", err)
	}
	salesService := sales.NewService(storage, logger)

	opts := api.Options{
		Logger:         logger,
		AllowedOrigins: cfg.AllowedOrigins(),
	}
	if cfg.MetricsEnabled {
		registry := prometheus.NewRegistry()
		registry.MustRegister(
			collectors.NewGoCollector(),
			collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		)
		opts.Registry = registry
	}
	router := api.NewRouter(salesService, opts)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger.Info("starting sales service",
		zap.String("addr", cfg.Addr()),
		zap.Bool("metrics_enabled", cfg.MetricsEnabled),
	)

	srv := server.New(cfg.Addr(), router, cfg.ShutdownTimeout, logger)
	if err := srv.Run(ctx); err != nil {
		logger.Error("server stopped with error", zap.Error(err))
		return fmt.Errorf("error trying to start server: %w", err)
	}

	logger.Info("sales service stopped")
	return nil
}
