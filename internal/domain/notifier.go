package domain

import "context"

// EventName identifies a realtime broadcast.
type EventName string

const (
	EventInvitationCreated EventName = "invitacion-nueva"
	EventInvitationUpdated EventName = "invitacion-actualizada"
)

// InvitationEvent is published after a successful create or confirm.
// Invitation is the persisted record after the operation.
type InvitationEvent struct {
	Name       EventName   `json:"event"`
	Invitation *Invitation `json:"data"`
}

// Notifier fans an event out to whoever is listening. Delivery is best effort:
// no acknowledgement, no persistence, no replay.
type Notifier interface {
	Publish(ctx context.Context, event InvitationEvent)
}
