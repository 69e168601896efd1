package services

import (
	"context"
	"log/slog"
	"sync"

	"invitaciones/internal/domain"
)

// RSVPMailNotifier mails every configured organizer when a guest confirms or declines.
// Mail is sent in the background; failures are logged only.
type RSVPMailNotifier struct {
	logger       *slog.Logger
	emailService domain.EmailService
	recipients   []string
	wg           sync.WaitGroup
}

var _ domain.Notifier = (*RSVPMailNotifier)(nil)

func NewRSVPMailNotifier(logger *slog.Logger, emailService domain.EmailService, recipients []string) *RSVPMailNotifier {
	return &RSVPMailNotifier{
		logger:       logger,
		emailService: emailService,
		recipients:   recipients,
	}
}

func (n *RSVPMailNotifier) Publish(ctx context.Context, ev domain.InvitationEvent) {
	if ev.Name != domain.EventInvitationUpdated || ev.Invitation == nil || len(n.recipients) == 0 {
		return
	}
	inv := *ev.Invitation
	ctx = context.WithoutCancel(ctx)

	n.wg.Add(1)
	go func() {
		defer n.wg.Done()
		for _, to := range n.recipients {
			data := &domain.RSVPNoticeEmailData{
				To:           to,
				InvitationID: inv.ID,
				Abrev:        inv.Abrev,
				Nombre:       inv.Nombre,
				Pases:        inv.Pases,
				Confirmacion: inv.Confirmacion,
				Link:         inv.Link,
			}
			if err := n.emailService.SendRSVPNotice(ctx, data); err != nil {
				n.logger.ErrorContext(ctx, "rsvp notice failed", "to", to, "invitacion_id", inv.ID, "err", err)
			}
		}
	}()
}

// Wait blocks until every pending notice has been attempted.
func (n *RSVPMailNotifier) Wait() {
	n.wg.Wait()
}
