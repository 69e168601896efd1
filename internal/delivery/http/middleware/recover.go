package middleware

import (
	"log/slog"
	"net/http"
	"runtime/debug"

	"invitaciones/internal/delivery/http/helpers"
)

// Recover turns a panic in next into a logged 500 response. When next had already started the
// response, the panic is only logged.
func Recover(logger *slog.Logger, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		wrapped := &responseWriter{ResponseWriter: w, status: http.StatusOK}
		defer func() {
			rec := recover()
			if rec == nil {
				return
			}
			if rec == http.ErrAbortHandler {
				panic(rec)
			}
			logger.ErrorContext(r.Context(), "panic recovered",
				"path", r.URL.Path,
				"method", r.Method,
				"panic", rec,
				"response_started", wrapped.wroteHeader,
				"stack", string(debug.Stack()),
			)
			if wrapped.wroteHeader {
				return
			}
			helpers.WriteJSONError(w, http.StatusInternalServerError, "internal error")
		}()
		next.ServeHTTP(wrapped, r)
	})
}
