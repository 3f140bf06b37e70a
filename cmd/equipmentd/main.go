package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	"equipment-tracker-backend/config"
	"equipment-tracker-backend/internal/api"
	"equipment-tracker-backend/internal/db"
	"equipment-tracker-backend/internal/logger"
	"equipment-tracker-backend/internal/metrics"
	"equipment-tracker-backend/internal/service"
)

func main() {
	// .env is optional
	_ = godotenv.Load()

	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		configPath = "./config/config.yaml" // Default path for local development
	}

	cfg, err := config.Load(configPath)
	if err != nil {
		log.Fatalf("failed to load configuration from %s: %v", configPath, err)
	}

	zapLogger, err := logger.New(&cfg.Log)
	if err != nil {
		log.Fatalf("failed to initialize logger: %v", err)
	}
	defer zapLogger.Sync()

	zapLogger.Info("Configuration loaded",
		zap.String("path", configPath),
		zap.String("mode", cfg.Server.Mode),
		zap.String("driver", cfg.Database.Driver),
	)

	if cfg.Server.Development() {
		gin.SetMode(gin.DebugMode)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	appStore, closeStore, err := db.Open(ctx, &cfg.Database, zapLogger)
	if err != nil {
		zapLogger.Fatal("Failed to initialize database", zap.Error(err))
	}
	zapLogger.Info("Data store initialized")

	m := metrics.New(zapLogger)
	svc := service.NewEquipmentService(appStore, m, zapLogger)

	router := api.NewRouter(api.RouterConfig{
		Service:  svc,
		Server:   cfg.Server,
		Logger:   zapLogger,
		Metrics:  m,
		Gatherer: prometheus.DefaultGatherer,
	})
	server := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.Server.Port),
		Handler: router,
	}

	go func() {
		zapLogger.Info("HTTP server starting", zap.Int("port", cfg.Server.Port))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			zapLogger.Fatal("HTTP server ListenAndServe", zap.Error(err))
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	<-stop
	zapLogger.Info("Shutdown signal received, stopping services...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		zapLogger.Error("HTTP server Shutdown", zap.Error(err))
	}
	if err := closeStore(shutdownCtx); err != nil {
		zapLogger.Error("Failed to close data store", zap.Error(err))
	}

	zapLogger.Info("Server gracefully stopped")
}
