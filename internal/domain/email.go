package domain

import "context"

// Mailer defines the contract for sending emails (infrastructure port).
type Mailer interface {
	Send(ctx context.Context, to, subject, html, text string) error
}

// EmailTemplateRenderer renders email content from a named template with the given data.
type EmailTemplateRenderer interface {
	Render(templateName string, data any) (subject, htmlBody, textBody string, err error)
}

// RSVPNoticeEmailData holds data for the organizer notice sent when a guest answers.
type RSVPNoticeEmailData struct {
	To           string
	InvitationID int64
	Abrev        string
	Nombre       string
	Pases        int
	Confirmacion Confirmation
	Link         string
}

// Declined reports whether the guest answered they will not attend.
func (d *RSVPNoticeEmailData) Declined() bool {
	return d.Confirmacion == ConfirmationDeclined
}

// EmailService defines the contract for sending domain-level emails.
type EmailService interface {
	SendRSVPNotice(ctx context.Context, data *RSVPNoticeEmailData) error
}
