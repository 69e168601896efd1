package services

import (
	"context"
	"fmt"
	"time"

	"invitaciones/internal/domain"
)

// publishTimeout bounds each notifier call once the change is committed.
const publishTimeout = 5 * time.Second

type invitationService struct {
	invitationRepo domain.InvitationRepository
	notifiers      []domain.Notifier
	contextTimeout time.Duration
}

// NewInvitationService returns an InvitationService backed by repo. Every successful mutation is
// published once to each notifier.
func NewInvitationService(repo domain.InvitationRepository, timeout time.Duration, notifiers ...domain.Notifier) domain.InvitationService {
	return &invitationService{
		invitationRepo: repo,
		notifiers:      notifiers,
		contextTimeout: timeout,
	}
}

func (s *invitationService) Create(ctx context.Context, abrev, nombre string, pases int) (*domain.Invitation, error) {
	dbCtx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	inv := domain.NewInvitation(abrev, nombre, pases)
	if err := s.invitationRepo.Create(dbCtx, inv); err != nil {
		return nil, fmt.Errorf("create invitation: %w", err)
	}
	s.publish(ctx, domain.EventInvitationCreated, inv)
	return inv, nil
}

func (s *invitationService) GetByID(ctx context.Context, id int64) (*domain.Invitation, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	inv, err := s.invitationRepo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get invitation %d: %w", id, err)
	}
	return inv, nil
}

func (s *invitationService) List(ctx context.Context) ([]*domain.Invitation, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	list, err := s.invitationRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list invitations: %w", err)
	}
	return list, nil
}

func (s *invitationService) Confirm(ctx context.Context, id int64, c domain.Confirmation, pases int) (*domain.Invitation, error) {
	dbCtx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	inv, err := s.invitationRepo.Confirm(dbCtx, id, c, domain.EffectivePases(c, pases))
	if err != nil {
		return nil, fmt.Errorf("confirm invitation %d: %w", id, err)
	}
	s.publish(ctx, domain.EventInvitationUpdated, inv)
	return inv, nil
}

// publish sends each notifier its own copy of inv. The row is already committed, so the
// caller going away must not drop the event.
func (s *invitationService) publish(ctx context.Context, name domain.EventName, inv *domain.Invitation) {
	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), publishTimeout)
	defer cancel()
	for _, n := range s.notifiers {
		snapshot := *inv
		n.Publish(ctx, domain.InvitationEvent{Name: name, Invitation: &snapshot})
	}
}
