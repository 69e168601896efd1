package postgres

import (
	"errors"
	"fmt"

	"github.com/jackc/pgerrcode"
	"github.com/lib/pq"

	"invitaciones/internal/domain"
)

// classifyError maps data exceptions (SQLSTATE class 22) and integrity
// constraint violations (class 23) to domain.ErrInvalidInput. Other errors are
// returned unchanged.
func classifyError(err error) error {
	var pqErr *pq.Error
	if !errors.As(err, &pqErr) {
		return err
	}
	code := string(pqErr.Code)
	if pgerrcode.IsDataException(code) || pgerrcode.IsIntegrityConstraintViolation(code) {
		return fmt.Errorf("%w: %w", domain.ErrInvalidInput, err)
	}
	return err
}
