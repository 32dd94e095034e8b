package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/orderhub/catalog-service/internal/config"
	delivery "github.com/orderhub/catalog-service/internal/delivery/http"
	"github.com/orderhub/catalog-service/internal/messaging/kafka"
	mongorepo "github.com/orderhub/catalog-service/internal/repository/mongo"
	"github.com/orderhub/catalog-service/internal/service"
	"github.com/orderhub/catalog-service/internal/storage/s3"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("Failed to load configuration", "err", err)
		os.Exit(1)
	}

	logger := newLogger(cfg.LogLevel)
	slog.SetDefault(logger)

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	// --- Database ---
	db, err := mongorepo.Connect(ctx, cfg.Mongo.URI, cfg.Mongo.Database)
	if err != nil {
		logger.Error("Failed to init database", "err", err)
		os.Exit(1)
	}
	defer db.Client().Disconnect(context.Background())

	// --- Object storage ---
	fileStorage, err := s3.New(ctx, s3.Config{
		Region:          cfg.S3.Region,
		Bucket:          cfg.S3.Bucket,
		AccessKeyID:     cfg.S3.AccessKeyID,
		SecretAccessKey: cfg.S3.SecretAccessKey,
	})
	if err != nil {
		logger.Error("Failed to init object storage", "err", err)
		os.Exit(1)
	}

	// --- Kafka ---
	broker := kafka.NewBroker(cfg.Kafka.Brokers, cfg.Kafka.ClientID)
	defer broker.Close()

	// --- Services ---
	categorySvc := service.NewCategoryService(mongorepo.NewCategoryRepository(db), logger)
	productSvc := service.NewProductService(mongorepo.NewProductRepository(db), fileStorage, logger)
	toppingSvc := service.NewToppingService(
		mongorepo.NewToppingRepository(db), fileStorage, broker, cfg.Kafka.ToppingTopic, logger,
	)

	// --- HTTP API ---
	router := delivery.NewRouter(delivery.RouterConfig{
		JWTSecret:      cfg.Auth.JWTSecret,
		AllowedOrigins: cfg.CORS.AllowedOrigins,
	}, categorySvc, productSvc, toppingSvc, logger)

	httpServer := &http.Server{
		Addr:         cfg.Server.Host + ":" + cfg.Server.Port,
		Handler:      router,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
	}

	go func() {
		logger.Info("HTTP server starting", "addr", httpServer.Addr)
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("HTTP server error", "err", err)
			cancel()
		}
	}()

	<-ctx.Done()
	logger.Info("Shutting down...")

	shutdownCtx, shutdownCancel := context.WithTimeout(
		context.Background(), time.Duration(cfg.Server.ShutdownTimeout)*time.Second,
	)
	defer shutdownCancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		logger.Error("HTTP server shutdown error", "err", err)
	}
}

func newLogger(level string) *slog.Logger {
	var lvl slog.Level
	switch strings.ToLower(level) {
	case "debug":
		lvl = slog.LevelDebug
	case "warn":
		lvl = slog.LevelWarn
	case "error":
		lvl = slog.LevelError
	default:
		lvl = slog.LevelInfo
	}
	return slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: lvl}))
}
