package main

import (
	"context"
	"crypto/rand"
	"database/sql"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"

	"github.com/Simplici0/dogsclub/internal/config"
	"github.com/Simplici0/dogsclub/internal/db"
	"github.com/Simplici0/dogsclub/internal/leads"
	"github.com/Simplici0/dogsclub/internal/logging"
	"github.com/Simplici0/dogsclub/internal/metrics"
	"github.com/Simplici0/dogsclub/internal/migrations"
	"github.com/Simplici0/dogsclub/internal/notify"
	"github.com/Simplici0/dogsclub/internal/seed"
)

type server struct {
	auth     *authService
	db       *sql.DB
	leads    *leads.Store
	analyzer *metrics.Analyzer
	mailer   *notify.Mailer
	logger   zerolog.Logger
	now      func() time.Time
}

func newServer(database *sql.DB, auth *authService, mailer *notify.Mailer, logger zerolog.Logger) *server {
	return &server{
		auth:     auth,
		db:       database,
		leads:    leads.NewStore(database),
		analyzer: metrics.NewAnalyzer(metrics.DefaultAssumptions(), logger),
		mailer:   mailer,
		logger:   logger,
		now:      time.Now,
	}
}

func main() {
	cfg, err := config.Load(os.Getenv("ENV_FILE"))
	if err != nil {
		l := logging.New("info", false)
		l.Fatal().Err(err).Msg("failed to load config")
	}

	logger := logging.New(cfg.LogLevel, cfg.IsDev())
	for _, w := range cfg.Warnings {
		logger.Warn().Msg(w)
	}

	if err := run(cfg, logger); err != nil {
		logger.Fatal().Err(err).Msg("server stopped")
	}
}

func run(cfg config.Config, logger zerolog.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	database, err := db.Open(ctx, cfg.DBPath)
	if err != nil {
		return err
	}
	defer database.Close()

	if err := migrations.Up(database, logger); err != nil {
		return err
	}

	stats, err := seed.Run(ctx, database, seed.Config{AdminEmail: cfg.AdminEmail, AdminPassword: cfg.AdminPassword})
	if err != nil {
		return err
	}
	logger.Info().Int("inserts", stats.Inserts).Int("updates", stats.Updates).Msg("seed completed")

	secret := []byte(cfg.SessionSecret)
	if len(secret) == 0 {
		secret = make([]byte, 32)
		if _, err := rand.Read(secret); err != nil {
			return err
		}
		logger.Warn().Msg("using a random session secret; sessions end on restart")
	}
	auth := newAuthService(database, secret, !cfg.IsDev())

	srv := newServer(database, auth, newMailer(cfg.Mail, logger), logger)

	httpServer := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           srv.routes(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info().Str("addr", httpServer.Addr).Msg("listening")
		errCh <- httpServer.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	case <-ctx.Done():
	}

	logger.Info().Msg("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return httpServer.Shutdown(shutdownCtx)
}

// newMailer returns a mailer whose sends fail with notify.ErrNotConfigured
// when the mail API settings are incomplete.
func newMailer(cfg config.MailConfig, logger zerolog.Logger) *notify.Mailer {
	if !cfg.Enabled() {
		return notify.NewMailer(nil, "", cfg.InternalRecipients, logger)
	}

	client, err := notify.NewClient(notify.ClientConfig{BaseURL: cfg.APIURL, APIKey: cfg.APIKey, Timeout: cfg.Timeout})
	if err != nil {
		logger.Warn().Err(err).Msg("email delivery disabled")
		return notify.NewMailer(nil, "", cfg.InternalRecipients, logger)
	}
	return notify.NewMailer(client, cfg.From, cfg.InternalRecipients, logger)
}
