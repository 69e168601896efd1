package services

import (
	"context"
	"fmt"
	"log/slog"

	"invitaciones/internal/domain"
)

const rsvpNoticeTemplate = "rsvp_notice"

type emailService struct {
	mailer   domain.Mailer
	renderer domain.EmailTemplateRenderer
	logger   *slog.Logger
}

// NewEmailService returns an EmailService that uses the given Mailer and template renderer.
func NewEmailService(logger *slog.Logger, mailer domain.Mailer, renderer domain.EmailTemplateRenderer) domain.EmailService {
	return &emailService{mailer: mailer, renderer: renderer, logger: logger}
}

// SendRSVPNotice mails an organizer the answer a guest gave, using the "rsvp_notice" template.
func (s *emailService) SendRSVPNotice(ctx context.Context, data *domain.RSVPNoticeEmailData) error {
	if data == nil {
		return fmt.Errorf("rsvp notice data is nil")
	}
	if data.To == "" {
		return fmt.Errorf("rsvp notice recipient is empty")
	}
	subject, htmlBody, textBody, err := s.renderer.Render(rsvpNoticeTemplate, data)
	if err != nil {
		return fmt.Errorf("failed to render %s template: %w", rsvpNoticeTemplate, err)
	}
	if err := s.mailer.Send(ctx, data.To, subject, htmlBody, textBody); err != nil {
		return fmt.Errorf("failed to send rsvp notice: %w", err)
	}
	s.logger.InfoContext(ctx, "rsvp notice sent", "to", data.To, "invitacion_id", data.InvitationID)
	return nil
}
