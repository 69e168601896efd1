package postgres

import (
	"errors"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"invitaciones/internal/domain"
)

var tracer = otel.Tracer("invitaciones/internal/repository/postgres")

// endSpan closes span, marking it failed unless err is nil or a plain not-found.
func endSpan(span trace.Span, err error) {
	if err != nil && !errors.Is(err, domain.ErrNotFound) {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	span.End()
}
