package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/portfolio/backend/internal/config"
	"github.com/portfolio/backend/internal/handler"
	"github.com/portfolio/backend/internal/legal"
	"github.com/portfolio/backend/internal/logging"
	"github.com/portfolio/backend/internal/mailer"
	"github.com/portfolio/backend/internal/metrics"
	"github.com/portfolio/backend/internal/repository"
	"github.com/portfolio/backend/internal/service"
	"github.com/portfolio/backend/internal/telemetry"
	"golang.org/x/sync/errgroup"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		logging.Setup("")
		logging.Fatal("invalid configuration", "error", err)
	}
	logging.Setup(cfg.LogLevel)

	if err := cfg.ValidateServer(); err != nil {
		logging.Fatal("invalid configuration", "error", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	shutdownTracing, err := telemetry.Setup(ctx, cfg.Telemetry)
	if err != nil {
		logging.Fatal("failed to set up tracing", "error", err)
	}

	store, err := repository.Open(ctx, cfg.Database.URL, cfg.Database.MongoDatabase)
	if err != nil {
		logging.Fatal("failed to connect to database", "error", err)
	}

	sender, err := mailer.NewSender(cfg.Mail)
	if err != nil {
		logging.Fatal("failed to set up mailer", "provider", cfg.Mail.Provider, "error", err)
	}

	m := metrics.New()
	contactService := service.NewContactService(store.Contacts, sender, cfg.Mail.From, cfg.Mail.To)

	router := handler.NewRouter(handler.RouterConfig{
		Base:    handler.New(store, cfg.FrontendURL),
		Contact: handler.NewContactHandler(contactService, m),
		Legal: handler.NewLegalHandler(handler.LegalConfig{
			DocsDir:  cfg.LegalDocs,
			Fallback: legal.Docs(),
		}),
		Metrics: m,
	})

	server := &http.Server{
		Addr:         cfg.Addr(),
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		slog.Info("server listening",
			"addr", server.Addr,
			"store", store.Backend,
			"mail_provider", cfg.Mail.Provider,
		)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		slog.Info("shutting down")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			slog.Error("shutdown error", "error", err)
		}
		if err := store.Close(shutdownCtx); err != nil {
			slog.Error("store close error", "error", err)
		}
		if err := shutdownTracing(shutdownCtx); err != nil {
			slog.Error("tracing shutdown error", "error", err)
		}
		return nil
	})

	if err := g.Wait(); err != nil {
		logging.Fatal("server error", "error", err)
	}
}
