package main

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/copebusiness/portal/internal/api"
	"github.com/copebusiness/portal/internal/api/metrics"
	"github.com/copebusiness/portal/internal/core/domain"
	"github.com/copebusiness/portal/internal/core/service"
	"github.com/copebusiness/portal/internal/infrastructure/db"
	"github.com/copebusiness/portal/internal/infrastructure/mail"
	"github.com/copebusiness/portal/internal/infrastructure/queue"
	"github.com/copebusiness/portal/internal/pkg/config"
	"github.com/copebusiness/portal/pkg/logger"
)

// @title                       Client Portal API
// @version                     1.0
// @description                 Backend for the marketing services client portal.
// @BasePath                    /
// @securityDefinitions.apikey  BearerAuth
// @in                          header
// @name                        Authorization
func main() {
	if err := run(); err != nil {
		l := logger.Init(logger.Options{Service: "portal"})
		l.Error().Err(err).Msg("portal stopped")
		os.Exit(1)
	}
}

// run owns the deferred cleanup; main exits only after it returns.
func run() error {
	envErr := loadLocalEnv()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load(ctx)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	log := logger.Init(logger.Options{
		Level:   cfg.LogLevel,
		Pretty:  !cfg.IsProduction(),
		Service: "portal",
	})
	if envErr != nil {
		log.Debug().Msg("no .env file found; relying on existing environment")
	}

	backend, err := db.Open(ctx, cfg, logger.Component("storage"))
	if err != nil {
		return fmt.Errorf("open %s storage: %w", cfg.StoreDriver, err)
	}
	defer backend.Close(context.Background())

	dispatcher := queue.NewDispatcher(cfg.Session.Workers, logger.Component("dispatcher"))
	dispatcher.Start(ctx)

	auth := service.NewAuthService(
		backend.Repos.Credentials,
		backend.Tokens,
		backend.Tokens,
		mail.NewLogMailer(cfg.AppBaseURL, logger.Component("mail")),
		service.AuthConfig{
			JWTSecret:                cfg.Auth.JWTSecret,
			Issuer:                   cfg.Auth.Issuer,
			TokenTTL:                 cfg.Auth.TokenTTL,
			ConfirmTTL:               cfg.Auth.ConfirmTTL,
			ResetTTL:                 cfg.Auth.ResetTTL,
			RequireEmailConfirmation: cfg.Auth.RequireEmailConfirmation,
		},
		logger.Component("auth"),
	)

	sessions := service.NewSessionManager(auth, backend.Repos.Profiles, dispatcher, cfg.Session.ProfileTTL, logger.Component("session"))
	defer sessions.Close()
	unsubscribe := sessions.Subscribe(trackSessions)
	defer unsubscribe()

	catalog := domain.DefaultCatalog()
	svc := api.Services{
		Sessions: sessions,
		Orders:   service.NewOrderService(backend.Repos.Orders, logger.Component("orders")),
		Wallet: service.NewWalletService(service.WalletDeps{
			Profiles:    backend.Repos.Profiles,
			Orders:      backend.Repos.Orders,
			Ledger:      backend.Repos.Wallet,
			Tx:          backend.Repos.Tx,
			Idempotency: backend.Tokens,
			Sessions:    sessions,
			Catalog:     catalog,
		}, logger.Component("wallet")),
		Invoices:   service.NewInvoiceService(backend.Repos.Invoices, backend.Repos.Profiles, logger.Component("invoices")),
		Reports:    service.NewReportService(backend.Repos.Reports, backend.Repos.Profiles, logger.Component("reports")),
		Tickets:    service.NewTicketService(backend.Repos.Tickets, logger.Component("tickets")),
		Dashboards: service.NewDashboardService(backend.Repos, logger.Component("dashboard")),
		Catalog:    catalog,
	}

	e := api.NewRouter(svc, api.RouterOptions{
		AllowedOrigins: cfg.CORSAllowedOrigins,
		Checks:         backend.Checks,
	}, logger.Component("http"))

	srv := &http.Server{
		Addr:              net.JoinHostPort("", cfg.Port),
		Handler:           e,
		ReadHeaderTimeout: 10 * time.Second,
	}

	serveErr := make(chan error, 1)
	go func() {
		log.Info().Str("addr", srv.Addr).Str("env", cfg.Env).Msg("portal listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
		close(serveErr)
	}()

	var runErr error
	select {
	case <-ctx.Done():
		log.Info().Msg("shutting down")
	case err := <-serveErr:
		runErr = fmt.Errorf("http server: %w", err)
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("graceful shutdown error")
	}
	return runErr
}

// trackSessions mirrors session changes into the auth metrics.
func trackSessions(ch domain.SessionChange) {
	metrics.SessionEventsTotal.WithLabelValues(string(ch.Kind)).Inc()
	switch ch.Kind {
	case domain.SessionSignedIn:
		metrics.ActiveSessions.Inc()
	case domain.SessionSignedOut:
		metrics.ActiveSessions.Dec()
	}
}

func loadLocalEnv() error {
	return godotenv.Load()
}
