package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/SherClockHolmes/webpush-go"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"

	"room-meeting-backend/config"
	"room-meeting-backend/internal/api"
	"room-meeting-backend/internal/auth"
	"room-meeting-backend/internal/db"
	"room-meeting-backend/internal/logging"
	"room-meeting-backend/internal/notification"
	"room-meeting-backend/internal/service"
	"room-meeting-backend/internal/store"
)

func main() {
	// A missing .env file is fine; the environment may be set another way.
	_ = godotenv.Load()

	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		configPath = "./config/config.yaml" // Default path for local development
	}

	cfg, err := config.Load(configPath)
	if err != nil {
		log.Fatal().Err(err).Str("path", configPath).Msg("failed to load configuration")
	}
	logging.Init("room-meeting-backend", cfg.Log.Level, cfg.Log.Format)
	log.Info().Str("path", configPath).Msg("configuration loaded")

	gormDB, err := db.Init(&cfg.Database)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to initialize database")
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	appStore := store.NewGormStore(gormDB)

	opts := service.Options{
		Location:        cfg.Booking.Location,
		MaxRoomCapacity: cfg.Booking.MaxRoomCapacity,
		Hasher:          auth.NewBcryptHasher(cfg.Auth.BcryptCost),
	}

	var webpushOptions *webpush.Options
	if cfg.Push.Enabled() {
		webpushOptions = &webpush.Options{
			VAPIDPublicKey:  cfg.Push.PublicKey,
			VAPIDPrivateKey: cfg.Push.PrivateKey,
			Subscriber:      cfg.Push.Subject,
			TTL:             cfg.Push.TTL,
		}
		pool := notification.NewWorkerPool(cfg.WorkerPool.Size, appStore, webpushOptions)
		pool.Start(ctx)
		opts.Notifier = pool
		log.Info().Int("workers", cfg.WorkerPool.Size).Msg("push notifications enabled")
	} else {
		log.Warn().Msg("VAPID keys are not configured, push notifications disabled")
	}

	services := service.New(appStore, opts)

	if cfg.Seed.Enabled {
		if _, err := services.Bootstrap.EnsureAdmin(ctx, service.ProfileInput{
			Username: cfg.Seed.AdminUsername,
			Email:    cfg.Seed.AdminEmail,
			Password: cfg.Seed.AdminPassword,
		}); err != nil {
			log.Fatal().Err(err).Msg("failed to seed administrator account")
		}
	}

	issuer := auth.NewIssuer(cfg.Auth.JWTSecret, cfg.Auth.TokenTTL(), auth.NewDenylist(10*time.Minute))
	handler := api.NewHandler(services, issuer, appStore, webpushOptions, cfg.Booking.Location)
	router := api.NewRouter(handler, api.RouterConfig{
		RatePerSecond: cfg.Server.RateLimitPerSec,
		Burst:         cfg.Server.RateLimitBurst,
	})
	server := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.Server.Port),
		Handler: router,
	}

	go func() {
		log.Info().Int("port", cfg.Server.Port).Msg("HTTP server starting")
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("HTTP server ListenAndServe")
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	<-stop
	log.Info().Msg("shutdown signal received, stopping services")
	cancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), time.Duration(cfg.Server.ShutdownTimeoutSeconds)*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Fatal().Err(err).Msg("HTTP server Shutdown")
	}

	if sqlDB, err := gormDB.DB(); err == nil {
		sqlDB.Close()
	}
	log.Info().Msg("server gracefully stopped")
}
