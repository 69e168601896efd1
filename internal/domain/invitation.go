package domain

import (
	"context"
	"strconv"
	"strings"
)

// Confirmation is the RSVP state stored in the confirmacion column.
// Values other than the known constants are passed through untouched.
type Confirmation string

const (
	ConfirmationPending   Confirmation = "pendiente"
	ConfirmationDeclined  Confirmation = "no_asistira"
	ConfirmationConfirmed Confirmation = "confirmado"
)

// QrsPlaceholder and LinkPlaceholder are the sentinel values written on insert.
const (
	QrsPlaceholder  = "-"
	LinkPlaceholder = "-"
)

// Invitation is one invited guest or group and their confirmation status.
type Invitation struct {
	ID           int64        `json:"id"`
	Abrev        string       `json:"abrev"`
	Nombre       string       `json:"nombre"`
	Pases        int          `json:"pases"`
	Qrs          string       `json:"qrs"`
	Confirmacion Confirmation `json:"confirmacion"`
	Link         string       `json:"link"`
}

// NewInvitation returns an Invitation with the creation defaults applied.
// ID and Link are set by the repository on create.
func NewInvitation(abrev, nombre string, pases int) *Invitation {
	return &Invitation{
		Abrev:        abrev,
		Nombre:       nombre,
		Pases:        pases,
		Qrs:          QrsPlaceholder,
		Confirmacion: ConfirmationPending,
		Link:         LinkPlaceholder,
	}
}

// EffectivePases returns the number of passes to store for a confirmation:
// zero when the guest will not attend, pases otherwise.
func EffectivePases(c Confirmation, pases int) int {
	if c == ConfirmationDeclined {
		return 0
	}
	return pases
}

// InvitationLink builds the public URL of an invitation, e.g.
// https://example.com/invitacion/42.
func InvitationLink(baseURL string, id int64) string {
	return strings.TrimRight(baseURL, "/") + "/invitacion/" + strconv.FormatInt(id, 10)
}

// InvitationRepository defines storage operations for invitations.
type InvitationRepository interface {
	// Create inserts inv and fills ID, Qrs, Confirmacion and Link.
	Create(ctx context.Context, inv *Invitation) error
	GetByID(ctx context.Context, id int64) (*Invitation, error)
	List(ctx context.Context) ([]*Invitation, error)
	// Confirm stores the confirmation and returns the updated row. Returns ErrNotFound when id does not exist.
	Confirm(ctx context.Context, id int64, confirmacion Confirmation, pases int) (*Invitation, error)
}

// InvitationService defines the invitation use cases exposed over HTTP.
type InvitationService interface {
	Create(ctx context.Context, abrev, nombre string, pases int) (*Invitation, error)
	GetByID(ctx context.Context, id int64) (*Invitation, error)
	List(ctx context.Context) ([]*Invitation, error)
	Confirm(ctx context.Context, id int64, confirmacion Confirmation, pases int) (*Invitation, error)
}
