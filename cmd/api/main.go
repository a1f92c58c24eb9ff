package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.mongodb.org/mongo-driver/mongo"

	"github.com/parceldesk/shipment-api/internal/api"
	"github.com/parceldesk/shipment-api/internal/infrastructure/config"
	mongostore "github.com/parceldesk/shipment-api/internal/infrastructure/db/mongo"
	redisstore "github.com/parceldesk/shipment-api/internal/infrastructure/db/redis"
	"github.com/parceldesk/shipment-api/internal/infrastructure/queue"
	"github.com/parceldesk/shipment-api/pkg/logger"
)

func main() {
	cfg := config.Load()

	log := logger.Init(logger.Options{
		Level:  cfg.LogLevel,
		Pretty: cfg.Env == "development",
	})

	if cfg.JWTSecret == "" {
		log.Fatal().Msg("JWT_SECRET must be set")
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	client, db, err := mongostore.Connect(ctx, mongostore.Config{
		URI:      cfg.Mongo.URI,
		Database: cfg.Mongo.Database,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to mongodb")
	}
	defer func() {
		if err := client.Disconnect(context.Background()); err != nil {
			log.Error().Err(err).Msg("mongodb disconnect")
		}
	}()

	rdb, err := redisstore.Connect(ctx, redisstore.Config{
		Addr: cfg.Redis.Addr,
		DB:   cfg.Redis.DB,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to redis")
	}
	defer rdb.Close()

	if err := ensureIndexes(ctx, db); err != nil {
		log.Fatal().Err(err).Msg("failed to create indexes")
	}

	notifier := queue.NewNotifier(cfg.NotifyWorkers, queue.LogSink{Log: log}, log)
	notifier.Start(ctx)

	e := api.NewRouter(db, rdb, notifier, cfg.JWTSecret, log)

	go func() {
		addr := ":" + cfg.Port
		log.Info().Str("addr", addr).Str("env", cfg.Env).Msg("starting http server")
		if err := e.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("http server stopped")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("shutting down")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("http server shutdown")
	}
	cancel() // stops the notifier workers
}

func ensureIndexes(ctx context.Context, db *mongo.Database) error {
	if err := mongostore.NewShipmentRepository(db).EnsureIndexes(ctx); err != nil {
		return err
	}
	if err := mongostore.NewEventRepository(db).EnsureIndexes(ctx); err != nil {
		return err
	}
	return mongostore.NewAuthRepository(db).EnsureIndexes(ctx)
}
