package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"go.opentelemetry.io/otel/attribute"

	"invitaciones/internal/domain"
)

const invitationColumns = `id, abrev, nombre, pases, qrs, confirmacion, link`

type invitationRepository struct {
	DB      *sql.DB
	BaseURL string
}

// NewInvitationRepository returns an InvitationRepository backed by the invitacion table.
// baseURL is the prefix of the link stored for each invitation.
func NewInvitationRepository(db *sql.DB, baseURL string) domain.InvitationRepository {
	return &invitationRepository{
		DB:      db,
		BaseURL: baseURL,
	}
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanInvitation(row rowScanner) (*domain.Invitation, error) {
	inv := &domain.Invitation{}
	var confirmacion string
	if err := row.Scan(&inv.ID, &inv.Abrev, &inv.Nombre, &inv.Pases, &inv.Qrs, &confirmacion, &inv.Link); err != nil {
		return nil, err
	}
	inv.Confirmacion = domain.Confirmation(confirmacion)
	return inv, nil
}

// Create inserts the row and backfills its link in one transaction.
func (r *invitationRepository) Create(ctx context.Context, inv *domain.Invitation) (err error) {
	ctx, span := tracer.Start(ctx, "invitacion.Create")
	defer func() { endSpan(span, err) }()

	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	insert := `
		INSERT INTO invitacion (abrev, nombre, pases, qrs, confirmacion, link)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id
	`
	var id int64
	err = tx.QueryRowContext(ctx, insert,
		inv.Abrev, inv.Nombre, inv.Pases,
		domain.QrsPlaceholder, string(domain.ConfirmationPending), domain.LinkPlaceholder,
	).Scan(&id)
	if err != nil {
		return classifyError(err)
	}

	link := domain.InvitationLink(r.BaseURL, id)
	if _, err = tx.ExecContext(ctx, `UPDATE invitacion SET link = $1 WHERE id = $2`, link, id); err != nil {
		return classifyError(err)
	}
	if err = tx.Commit(); err != nil {
		return fmt.Errorf("commit: %w", err)
	}

	span.SetAttributes(attribute.Int64("invitacion.id", id))
	inv.ID = id
	inv.Qrs = domain.QrsPlaceholder
	inv.Confirmacion = domain.ConfirmationPending
	inv.Link = link
	return nil
}

func (r *invitationRepository) GetByID(ctx context.Context, id int64) (inv *domain.Invitation, err error) {
	ctx, span := tracer.Start(ctx, "invitacion.GetByID")
	span.SetAttributes(attribute.Int64("invitacion.id", id))
	defer func() { endSpan(span, err) }()

	query := `SELECT ` + invitationColumns + ` FROM invitacion WHERE id = $1`
	inv, err = scanInvitation(r.DB.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return inv, nil
}

func (r *invitationRepository) List(ctx context.Context) (invs []*domain.Invitation, err error) {
	ctx, span := tracer.Start(ctx, "invitacion.List")
	defer func() { endSpan(span, err) }()

	query := `SELECT ` + invitationColumns + ` FROM invitacion ORDER BY id`
	rows, err := r.DB.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	invs = make([]*domain.Invitation, 0)
	for rows.Next() {
		inv, err := scanInvitation(rows)
		if err != nil {
			return nil, err
		}
		invs = append(invs, inv)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	span.SetAttributes(attribute.Int("invitacion.count", len(invs)))
	return invs, nil
}

func (r *invitationRepository) Confirm(ctx context.Context, id int64, confirmacion domain.Confirmation, pases int) (inv *domain.Invitation, err error) {
	ctx, span := tracer.Start(ctx, "invitacion.Confirm")
	span.SetAttributes(
		attribute.Int64("invitacion.id", id),
		attribute.String("invitacion.confirmacion", string(confirmacion)),
	)
	defer func() { endSpan(span, err) }()

	query := `
		UPDATE invitacion SET confirmacion = $1, pases = $2
		WHERE id = $3
		RETURNING ` + invitationColumns
	row := r.DB.QueryRowContext(ctx, query, string(confirmacion), domain.EffectivePases(confirmacion, pases), id)
	inv, err = scanInvitation(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, classifyError(err)
	}
	return inv, nil
}
