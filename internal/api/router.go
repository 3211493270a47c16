package api

import (
	"log/slog"

	customMiddleware "github.com/Jeffreasy/LaventeCareTestAccount/internal/api/middleware"
	"github.com/Jeffreasy/LaventeCareTestAccount/internal/account"
	"github.com/Jeffreasy/LaventeCareTestAccount/internal/alert"
	"github.com/Jeffreasy/LaventeCareTestAccount/internal/auth"
	sentryhttp "github.com/getsentry/sentry-go/http"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"golang.org/x/time/rate"
)

// ServerConfig tunes the HTTP surface.
type ServerConfig struct {
	RateLimitRPS   float64
	RateLimitBurst int
}

type Server struct {
	Router  *chi.Mux
	Service *auth.MockAccountService
	Account *account.Account
	Alerts  *alert.Model
	Logger  *slog.Logger
}

func NewServer(cfg ServerConfig, service *auth.MockAccountService, host *account.Account, alerts *alert.Model) *Server {
	logger := slog.Default()
	r := chi.NewRouter()

	// 1. Core Middleware
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)

	// 2. Sentry before recovery so panics are captured
	sentryHandler := sentryhttp.New(sentryhttp.Options{
		Repanic: true,
	})
	r.Use(sentryHandler.Handle)

	// 3. Logger & Recovery
	r.Use(customMiddleware.RequestLogger(logger))
	r.Use(customMiddleware.PanicRecovery)

	// 4. Rate limiting
	limiter := customMiddleware.NewIPRateLimiter(rate.Limit(cfg.RateLimitRPS), cfg.RateLimitBurst)
	r.Use(limiter.Middleware)

	s := &Server{
		Router:  r,
		Service: service,
		Account: host,
		Alerts:  alerts,
		Logger:  logger,
	}

	h := NewAccountHandler(service, host, alerts)

	r.Get("/health", s.HealthHandler())

	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/configuration", h.Configuration)

		r.Post("/auth/login", h.Login)
		r.Post("/auth/signup", h.SignUp)
		r.Post("/auth/password/reset", h.ResetPassword)
		r.Post("/auth/logout", h.Logout)

		r.Get("/account", h.Current)
		r.Patch("/account", h.UpdateDetails)
		r.Delete("/account", h.Delete)

		r.Get("/alert", h.AlertState)
		r.Post("/alert/confirm", h.ConfirmAlert)
	})

	return s
}
