package main

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/lib/pq"

	"invitaciones/config"
	_ "invitaciones/docs"
	"invitaciones/internal/adapters/email"
	"invitaciones/internal/adapters/realtime"
	httpdelivery "invitaciones/internal/delivery/http"
	"invitaciones/internal/delivery/http/controllers"
	"invitaciones/internal/domain"
	"invitaciones/internal/repository/postgres"
	"invitaciones/internal/services"
)

const (
	serviceTimeout  = 5 * time.Second
	shutdownTimeout = 10 * time.Second
)

// @title Invitaciones API
// @version 1.0
// @description Invitation RSVP backend: create, fetch, list and confirm invitations, with realtime updates on /ws.
// @BasePath /
func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("load config", "err", err)
		os.Exit(1)
	}
	logger := config.NewLogger(cfg)
	slog.SetDefault(logger)

	if err := run(cfg, logger); err != nil {
		logger.Error("server stopped", "err", err)
		os.Exit(1)
	}
}

func run(cfg *config.Config, logger *slog.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	shutdownTracing, err := config.SetupTracing(ctx, cfg.Tracing)
	if err != nil {
		return err
	}
	defer func() {
		flushCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := shutdownTracing(flushCtx); err != nil {
			logger.Error("flush traces", "err", err)
		}
	}()

	db, err := sql.Open("postgres", cfg.DatabaseDSN())
	if err != nil {
		return err
	}
	defer db.Close()
	if err := db.PingContext(ctx); err != nil {
		// the pool reconnects on demand; /healthz reports the outage
		logger.Warn("database not reachable at startup", "err", err)
	}

	hubCtx, stopHub := context.WithCancel(context.Background())
	defer stopHub()
	hub := realtime.NewHub(logger, cfg.AllowedOrigins)
	go hub.Run(hubCtx)

	notifiers := []domain.Notifier{hub}
	rsvpMail, err := newRSVPMailNotifier(cfg, logger)
	if err != nil {
		return err
	}
	if rsvpMail != nil {
		notifiers = append(notifiers, rsvpMail)
		defer rsvpMail.Wait()
	}

	invitationRepo := postgres.NewInvitationRepository(db, cfg.InvitationBaseURL)
	invitationService := services.NewInvitationService(invitationRepo, serviceTimeout, notifiers...)

	router := httpdelivery.NewRouter(httpdelivery.RouterConfig{
		Logger:         logger,
		Invitations:    controllers.NewInvitationController(logger, invitationService),
		Health:         controllers.NewHealthController(logger, db),
		WebSocket:      hub.ServeWS,
		AllowedOrigins: cfg.AllowedOrigins,
	})

	srv := &http.Server{
		Addr:              net.JoinHostPort("", cfg.Port),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
		ErrorLog:          slog.NewLogLogger(logger.Handler(), slog.LevelError),
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("server starting", "addr", srv.Addr, "env", cfg.Environment)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	stopHub()
	return nil
}

// newRSVPMailNotifier returns nil when no organizer should be mailed.
func newRSVPMailNotifier(cfg *config.Config, logger *slog.Logger) (*services.RSVPMailNotifier, error) {
	if len(cfg.Mail.RSVPRecipients) == 0 {
		return nil, nil
	}
	mailer, err := email.NewMailer(logger, email.MailerConfig{
		Provider:    cfg.Mail.Provider,
		FromAddress: cfg.Mail.FromAddress,
		FromName:    cfg.Mail.FromName,
		SES: email.SESConfig{
			Region:             cfg.Mail.AWSRegion,
			AccessKeyID:        cfg.Mail.AWSAccessKeyID,
			SecretAccessKey:    cfg.Mail.AWSSecretAccessKey,
			InsecureSkipVerify: cfg.Mail.InsecureSkipVerify,
		},
	})
	if err != nil {
		return nil, err
	}
	renderer, err := email.NewTemplateRenderer()
	if err != nil {
		return nil, err
	}
	emailService := services.NewEmailService(logger, mailer, renderer)
	return services.NewRSVPMailNotifier(logger, emailService, cfg.Mail.RSVPRecipients), nil
}
