package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/soulai-app/soulai/internal/app"
	"github.com/soulai-app/soulai/internal/assist"
	"github.com/soulai-app/soulai/internal/auth"
	"github.com/soulai-app/soulai/internal/cache"
	"github.com/soulai-app/soulai/internal/config"
	"github.com/soulai-app/soulai/internal/controller"
	"github.com/soulai-app/soulai/internal/db"
	"github.com/soulai-app/soulai/internal/logger"
	"github.com/soulai-app/soulai/internal/repository"
	"github.com/soulai-app/soulai/internal/snapshot"
	transport "github.com/soulai-app/soulai/internal/transport/http"
)

func main() {
	// .env is optional; real environments set variables directly.
	_ = godotenv.Load()

	cfg := config.New()

	// Init logger (global singleton)
	logger.InitFromConfig(cfg)
	log := logger.L()

	// Init DB
	database, err := db.NewDB(cfg)
	if err != nil {
		log.Error("failed to init db", "err", err)
		return
	}

	// Snapshot backend: the DB table by default, Redis when configured.
	var snapshots snapshot.Store
	if cfg.Storage.Backend == "redis" {
		redisCache := cache.NewRedisCache(cfg)
		if err := redisCache.Ping(context.Background()); err != nil {
			log.Error("failed to connect to redis", "err", err)
			return
		}
		snapshots = redisCache
	} else {
		snapshots = repository.NewSnapshotRepository(database)
	}

	if cfg.App.ENV == "development" {
		if err := db.SeedTestData(database); err != nil {
			log.Error("failed to seed", "err", err)
		}
	}

	appCtx := app.New(database, snapshots, log)

	ctrl := controller.New(controller.Dependencies{
		Config:    cfg,
		Gate:      auth.NewGate(appCtx.DB),
		Snapshots: appCtx.Snapshots,
		Assist:    assist.NewClient(cfg, log),
		Logger:    appCtx.Logger,
	})
	ctrl.Load(context.Background())

	handler := transport.NewHandler(ctrl, log)
	addr := cfg.HTTP.Host + ":" + cfg.HTTP.Port
	srv := &http.Server{
		Addr:              addr,
		Handler:           handler.Routes(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		log.Info("starting HTTP server", "addr", addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("server stopped", "err", err)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	<-stop

	log.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("shutdown failed", "err", err)
	}
	ctrl.Close(shutdownCtx)
}
