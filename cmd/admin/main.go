// Command admin serves the record administration API.
//
// @title                       Record Admin API
// @version                     1.0
// @description                 Back-office CRUD for users and products over a pluggable key-value store.
// @BasePath                    /
// @securityDefinitions.apikey  BearerAuth
// @in                          header
// @name                        Authorization
package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/99minutos/record-admin/internal/api"
	"github.com/99minutos/record-admin/internal/core/attachment"
	"github.com/99minutos/record-admin/internal/core/service"
	"github.com/99minutos/record-admin/internal/infrastructure/config"
	"github.com/99minutos/record-admin/internal/infrastructure/db"
	"github.com/99minutos/record-admin/internal/infrastructure/storage"
	"github.com/99minutos/record-admin/pkg/logger"
)

func main() {
	ctx := context.Background()

	cfg, err := config.Load(ctx)
	if err != nil {
		bootLog := logger.Init(logger.Options{Service: "record-admin"})
		bootLog.Fatal().Err(err).Msg("failed to load configuration")
	}

	log := logger.Init(logger.Options{
		Level:   cfg.LogLevel,
		Pretty:  cfg.Development(),
		Service: "record-admin",
	})
	log.Info().Str("env", cfg.Env).Str("store", cfg.Store.Driver).Msg("starting record admin")

	// Key-value backend
	store, err := db.Open(ctx, cfg)
	if err != nil {
		log.Fatal().Err(err).Str("driver", cfg.Store.Driver).Msg("failed to open store")
	}

	// Repositories
	opts := storage.Options{KeyPrefix: cfg.Store.KeyPrefix, Logger: log}
	users := storage.NewUserRepository(store, opts)
	products := storage.NewProductRepository(store, opts)

	// Services
	images := attachment.NewEncoder(cfg.Attachment.MaxBytes)
	seeder := service.NewSeedService(users, products, log)
	authService := service.NewAuthService(cfg.Auth.AdminUsername, cfg.Auth.AdminPasswordHash, cfg.Auth.JWTSecret, cfg.Auth.TokenTTL)

	if cfg.Store.SeedSample {
		if _, err := seeder.InitializeSampleData(ctx); err != nil {
			log.Error().Err(err).Msg("failed to seed sample data")
		}
	}

	router := api.NewRouter(api.Deps{
		Logger:    log,
		Store:     store,
		Users:     service.NewUserService(users, images, log),
		Products:  service.NewProductService(products, images, log),
		Seeder:    seeder,
		Auth:      authService,
		JWTSecret: cfg.Auth.JWTSecret,
	})

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	go func() {
		log.Info().Str("port", cfg.Port).Msg("server listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("server failed")
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info().Msg("shutting down server")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("server forced to shutdown")
	}
	if err := store.Close(shutdownCtx); err != nil {
		log.Error().Err(err).Str("store", store.Name()).Msg("failed to close store")
	}

	log.Info().Msg("server exited gracefully")
}
