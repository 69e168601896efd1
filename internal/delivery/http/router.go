package http

import (
	"log/slog"
	"net/http"

	httpSwagger "github.com/swaggo/http-swagger"

	"invitaciones/internal/delivery/http/controllers"
	"invitaciones/internal/delivery/http/middleware"
)

// RouterConfig carries everything NewRouter mounts.
type RouterConfig struct {
	Logger         *slog.Logger
	Invitations    *controllers.InvitationController
	Health         *controllers.HealthController
	WebSocket      http.HandlerFunc
	AllowedOrigins []string
}

// NewRouter initializes the HTTP router with all application routes wrapped in the middleware
// chain: request id, logging, CORS, panic recovery.
func NewRouter(cfg RouterConfig) http.Handler {
	mux := http.NewServeMux()

	// API Routes
	mux.HandleFunc("POST /api/invitaciones", cfg.Invitations.CreateInvitation)
	mux.HandleFunc("GET /api/invitaciones/{id}", cfg.Invitations.GetInvitation)
	mux.HandleFunc("PUT /api/invitaciones/{id}/confirmar", cfg.Invitations.ConfirmInvitation)
	mux.HandleFunc("GET /api/invitados", cfg.Invitations.ListGuests)
	mux.HandleFunc("GET /api/invitados/{id}", cfg.Invitations.GetGuest)

	// Realtime
	mux.HandleFunc("GET /ws", cfg.WebSocket)

	// Ops
	mux.HandleFunc("GET /healthz", cfg.Health.Health)

	// Swagger
	mux.Handle("/swagger/", httpSwagger.WrapHandler)

	var h http.Handler = mux
	h = middleware.Recover(cfg.Logger, h)
	h = middleware.CORS(cfg.AllowedOrigins, h)
	h = middleware.LoggingMiddleware(cfg.Logger, h)
	h = middleware.RequestID(h)
	return h
}
