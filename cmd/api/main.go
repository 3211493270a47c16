package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Jeffreasy/LaventeCareTestAccount/internal/account"
	"github.com/Jeffreasy/LaventeCareTestAccount/internal/alert"
	"github.com/Jeffreasy/LaventeCareTestAccount/internal/api"
	"github.com/Jeffreasy/LaventeCareTestAccount/internal/audit"
	"github.com/Jeffreasy/LaventeCareTestAccount/internal/auth"
	"github.com/Jeffreasy/LaventeCareTestAccount/internal/config"
	"github.com/Jeffreasy/LaventeCareTestAccount/pkg/logger"
	"github.com/getsentry/sentry-go"
	"github.com/joho/godotenv"
)

func main() {
	// 0. Load .env files when present; CI sets real env vars instead.
	_ = godotenv.Load(".env.local")
	_ = godotenv.Load()

	cfg := config.Load()

	// 1. Setup Global Logger
	log := logger.Setup(cfg.Env)
	log.Info("application_startup",
		"env", cfg.Env,
		"user_id_type", cfg.UserIDType,
		"default_signed_in", cfg.DefaultAccount,
		"omit_name_once", cfg.OmitNameOnce,
		"latency", cfg.Latency,
	)

	// 2. Setup Sentry
	if cfg.SentryDSN != "" {
		err := sentry.Init(sentry.ClientOptions{
			Dsn:              cfg.SentryDSN,
			TracesSampleRate: 1.0,
			Environment:      cfg.Env,
		})
		if err != nil {
			log.Error("sentry_init_failed", "error", err)
		} else {
			defer sentry.Flush(2 * time.Second)
			log.Info("sentry_initialized")
		}
	} else {
		log.Warn("sentry_dsn_missing", "details", "skipping_init")
	}

	// 3. Account collaborators and the mock service
	host := account.NewAccount()
	alerts := alert.NewModel(log)
	service := auth.NewMockAccountService(cfg.ServiceConfig(), host, alerts, audit.NewJSONAuditLogger())

	if err := service.Configure(context.Background()); err != nil {
		log.Error("service_configure_failed", "error", err)
	}

	// 4. Setup HTTP Server
	server := api.NewServer(api.ServerConfig{
		RateLimitRPS:   cfg.RateLimitRPS,
		RateLimitBurst: cfg.RateLimitBurst,
	}, service, host, alerts)

	// No write timeout: credential changes wait for the alert indefinitely.
	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           server.Router,
		ReadHeaderTimeout: 5 * time.Second,
	}

	serverErrors := make(chan error, 1)

	go func() {
		log.Info("server_listening", "port", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			serverErrors <- err
		}
	}()

	// 5. Block for Shutdown Signal
	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-serverErrors:
		log.Error("server_startup_failed", "error", err)
		os.Exit(1)

	case sig := <-shutdown:
		log.Info("shutdown_signal_received", "signal", sig)

		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		// A request parked on an unanswered alert keeps Shutdown waiting
		// until the timeout; Close below drops it.
		if err := srv.Shutdown(ctx); err != nil {
			log.Error("graceful_shutdown_failed", "error", err)
			if err := srv.Close(); err != nil {
				log.Error("server_force_close_failed", "error", err)
			}
		}

		log.Info("server_shutdown_complete")
	}
}
