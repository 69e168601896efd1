package controllers

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"invitaciones/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// testLogger is a no-op logger for controller tests so we don't assert on log output.
var testLogger = slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{Level: slog.LevelError}))

// fakeInvitationService implements domain.InvitationService for handler tests.
type fakeInvitationService struct {
	createErr  error
	getErr     error
	listErr    error
	confirmErr error

	byID map[int64]*domain.Invitation
	list []*domain.Invitation

	lastCreateAbrev  string
	lastCreateNombre string
	lastCreatePases  int
	lastGetID        int64
	lastConfirmID    int64
	lastConfirmValue domain.Confirmation
	lastConfirmPases int
	confirmCalls     int
	createCalls      int
}

func (f *fakeInvitationService) Create(ctx context.Context, abrev, nombre string, pases int) (*domain.Invitation, error) {
	f.createCalls++
	f.lastCreateAbrev, f.lastCreateNombre, f.lastCreatePases = abrev, nombre, pases
	if f.createErr != nil {
		return nil, f.createErr
	}
	return &domain.Invitation{
		ID:           42,
		Abrev:        abrev,
		Nombre:       nombre,
		Pases:        pases,
		Qrs:          "-",
		Confirmacion: domain.ConfirmationPending,
		Link:         "https://example.com/invitacion/42",
	}, nil
}

func (f *fakeInvitationService) GetByID(ctx context.Context, id int64) (*domain.Invitation, error) {
	f.lastGetID = id
	if f.getErr != nil {
		return nil, f.getErr
	}
	inv, ok := f.byID[id]
	if !ok {
		return nil, fmt.Errorf("get invitation %d: %w", id, domain.ErrNotFound)
	}
	return inv, nil
}

func (f *fakeInvitationService) List(ctx context.Context) ([]*domain.Invitation, error) {
	if f.listErr != nil {
		return nil, f.listErr
	}
	if f.list == nil {
		return []*domain.Invitation{}, nil
	}
	return f.list, nil
}

func (f *fakeInvitationService) Confirm(ctx context.Context, id int64, c domain.Confirmation, pases int) (*domain.Invitation, error) {
	f.confirmCalls++
	f.lastConfirmID, f.lastConfirmValue, f.lastConfirmPases = id, c, pases
	if f.confirmErr != nil {
		return nil, f.confirmErr
	}
	return &domain.Invitation{ID: id, Confirmacion: c, Pases: domain.EffectivePases(c, pases)}, nil
}

func newMux(svc domain.InvitationService) *http.ServeMux {
	c := NewInvitationController(testLogger, svc)
	mux := http.NewServeMux()
	mux.HandleFunc("POST /api/invitaciones", c.CreateInvitation)
	mux.HandleFunc("GET /api/invitaciones/{id}", c.GetInvitation)
	mux.HandleFunc("GET /api/invitados", c.ListGuests)
	mux.HandleFunc("GET /api/invitados/{id}", c.GetGuest)
	mux.HandleFunc("PUT /api/invitaciones/{id}/confirmar", c.ConfirmInvitation)
	return mux
}

func do(mux http.Handler, method, path, body string) *httptest.ResponseRecorder {
	var r io.Reader
	if body != "" {
		r = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, r)
	req.Header.Set("Content-Type", "application/json")
	rr := httptest.NewRecorder()
	mux.ServeHTTP(rr, req)
	return rr
}

func TestInvitationController_CreateInvitation(t *testing.T) {
	tests := []struct {
		name       string
		body       string
		svcErr     error
		wantStatus int
		wantError  string
		wantCalled bool
	}{
		{name: "success", body: `{"abrev":"A","nombre":"N","pases":3}`, wantStatus: http.StatusOK, wantCalled: true},
		{name: "zero passes allowed", body: `{"abrev":"A","nombre":"N","pases":0}`, wantStatus: http.StatusOK, wantCalled: true},
		{name: "missing pases", body: `{"abrev":"A","nombre":"N"}`, wantStatus: http.StatusBadRequest, wantError: "pases: is required"},
		{name: "negative pases", body: `{"abrev":"A","nombre":"N","pases":-1}`, wantStatus: http.StatusBadRequest, wantError: "pases: must be no less than 0"},
		{name: "missing names", body: `{"pases":1}`, wantStatus: http.StatusBadRequest, wantError: "abrev: cannot be blank; nombre: cannot be blank"},
		{name: "abrev too long", body: `{"abrev":"` + strings.Repeat("a", 51) + `","nombre":"N","pases":1}`, wantStatus: http.StatusBadRequest, wantError: "abrev: the length must be between 1 and 50"},
		{name: "pases as string", body: `{"abrev":"A","nombre":"N","pases":"3"}`, wantStatus: http.StatusBadRequest, wantError: "pases: expected int"},
		{name: "malformed json", body: `{`, wantStatus: http.StatusBadRequest},
		{name: "store rejected values", body: `{"abrev":"A","nombre":"N","pases":1}`, svcErr: fmt.Errorf("create invitation: %w", domain.ErrInvalidInput), wantStatus: http.StatusBadRequest, wantError: "invalid input", wantCalled: true},
		{name: "store failure", body: `{"abrev":"A","nombre":"N","pases":1}`, svcErr: errors.New("connection refused"), wantStatus: http.StatusInternalServerError, wantError: "Error creando invitación", wantCalled: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := &fakeInvitationService{createErr: tt.svcErr}
			rr := do(newMux(svc), http.MethodPost, "/api/invitaciones", tt.body)

			require.Equal(t, tt.wantStatus, rr.Code)
			assert.Equal(t, tt.wantCalled, svc.createCalls == 1)
			if tt.wantError != "" {
				assert.JSONEq(t, `{"error":"`+tt.wantError+`"}`, rr.Body.String())
			}
			if tt.wantStatus == http.StatusOK {
				var got domain.Invitation
				require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &got))
				assert.Equal(t, int64(42), got.ID)
				assert.Equal(t, "A", got.Abrev)
				assert.Equal(t, svc.lastCreatePases, got.Pases)
				assert.Equal(t, "-", got.Qrs)
				assert.Equal(t, domain.ConfirmationPending, got.Confirmacion)
			}
		})
	}
}

func TestInvitationController_CreateInvitation_BareJSON(t *testing.T) {
	rr := do(newMux(&fakeInvitationService{}), http.MethodPost, "/api/invitaciones", `{"abrev":"A","nombre":"N","pases":3}`)
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "application/json", rr.Header().Get("Content-Type"))
	assert.JSONEq(t, `{
		"id": 42,
		"abrev": "A",
		"nombre": "N",
		"pases": 3,
		"qrs": "-",
		"confirmacion": "pendiente",
		"link": "https://example.com/invitacion/42"
	}`, rr.Body.String())
}

func TestInvitationController_GetEndpoints(t *testing.T) {
	stored := &domain.Invitation{ID: 1, Abrev: "A", Nombre: "Ana", Pases: 2, Qrs: "-", Confirmacion: domain.ConfirmationPending, Link: "l"}

	tests := []struct {
		name       string
		path       string
		svcErr     error
		wantStatus int
		wantError  string
	}{
		{name: "invitation found", path: "/api/invitaciones/1", wantStatus: http.StatusOK},
		{name: "invitation missing", path: "/api/invitaciones/2", wantStatus: http.StatusNotFound, wantError: "No existe"},
		{name: "invitation bad id", path: "/api/invitaciones/abc", wantStatus: http.StatusBadRequest, wantError: "invalid id"},
		{name: "invitation zero id", path: "/api/invitaciones/0", wantStatus: http.StatusBadRequest, wantError: "invalid id"},
		{name: "invitation store failure", path: "/api/invitaciones/1", svcErr: errors.New("boom"), wantStatus: http.StatusInternalServerError, wantError: "Error obteniendo invitación"},
		{name: "guest found", path: "/api/invitados/1", wantStatus: http.StatusOK},
		{name: "guest missing", path: "/api/invitados/2", wantStatus: http.StatusNotFound, wantError: "Invitado no encontrado"},
		{name: "guest bad id", path: "/api/invitados/-1", wantStatus: http.StatusBadRequest, wantError: "invalid id"},
		{name: "guest store failure", path: "/api/invitados/1", svcErr: errors.New("boom"), wantStatus: http.StatusInternalServerError, wantError: "Error obteniendo invitado"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := &fakeInvitationService{
				getErr: tt.svcErr,
				byID:   map[int64]*domain.Invitation{1: stored},
			}
			rr := do(newMux(svc), http.MethodGet, tt.path, "")

			require.Equal(t, tt.wantStatus, rr.Code)
			if tt.wantError != "" {
				assert.JSONEq(t, `{"error":"`+tt.wantError+`"}`, rr.Body.String())
				return
			}
			var got domain.Invitation
			require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &got))
			assert.Equal(t, *stored, got)
		})
	}
}

func TestInvitationController_ListGuests(t *testing.T) {
	t.Run("empty list is an empty array", func(t *testing.T) {
		rr := do(newMux(&fakeInvitationService{}), http.MethodGet, "/api/invitados", "")
		require.Equal(t, http.StatusOK, rr.Code)
		assert.JSONEq(t, `[]`, rr.Body.String())
	})

	t.Run("returns every invitation", func(t *testing.T) {
		svc := &fakeInvitationService{list: []*domain.Invitation{{ID: 1, Nombre: "Ana"}, {ID: 2, Nombre: "Beto"}}}
		rr := do(newMux(svc), http.MethodGet, "/api/invitados", "")
		require.Equal(t, http.StatusOK, rr.Code)
		var got []domain.Invitation
		require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &got))
		require.Len(t, got, 2)
		assert.Equal(t, "Beto", got[1].Nombre)
	})

	t.Run("store failure", func(t *testing.T) {
		rr := do(newMux(&fakeInvitationService{listErr: errors.New("boom")}), http.MethodGet, "/api/invitados", "")
		require.Equal(t, http.StatusInternalServerError, rr.Code)
		assert.JSONEq(t, `{"error":"Error listando invitados"}`, rr.Body.String())
	})
}

func TestInvitationController_ConfirmInvitation(t *testing.T) {
	tests := []struct {
		name       string
		path       string
		body       string
		svcErr     error
		wantStatus int
		wantError  string
		wantValue  domain.Confirmation
		wantPases  int
	}{
		{name: "confirmed", path: "/api/invitaciones/3/confirmar", body: `{"confirmacion":"confirmado","pases":5}`, wantStatus: http.StatusOK, wantValue: domain.ConfirmationConfirmed, wantPases: 5},
		{name: "declined without pases", path: "/api/invitaciones/3/confirmar", body: `{"confirmacion":"no_asistira"}`, wantStatus: http.StatusOK, wantValue: domain.ConfirmationDeclined, wantPases: 0},
		{name: "declined with pases forces zero", path: "/api/invitaciones/3/confirmar", body: `{"confirmacion":"no_asistira","pases":5}`, wantStatus: http.StatusOK, wantValue: domain.ConfirmationDeclined, wantPases: 0},
		{name: "missing pases", path: "/api/invitaciones/3/confirmar", body: `{"confirmacion":"confirmado"}`, wantStatus: http.StatusBadRequest, wantError: "pases: is required"},
		{name: "missing confirmacion", path: "/api/invitaciones/3/confirmar", body: `{"pases":1}`, wantStatus: http.StatusBadRequest, wantError: "confirmacion: cannot be blank"},
		{name: "bad id", path: "/api/invitaciones/x/confirmar", body: `{"confirmacion":"confirmado","pases":1}`, wantStatus: http.StatusBadRequest, wantError: "invalid id"},
		{name: "unknown id", path: "/api/invitaciones/99/confirmar", body: `{"confirmacion":"confirmado","pases":1}`, svcErr: fmt.Errorf("confirm invitation 99: %w", domain.ErrNotFound), wantStatus: http.StatusNotFound, wantError: "No existe"},
		{name: "store failure", path: "/api/invitaciones/3/confirmar", body: `{"confirmacion":"confirmado","pases":1}`, svcErr: errors.New("boom"), wantStatus: http.StatusInternalServerError, wantError: "Error confirmando asistencia"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := &fakeInvitationService{confirmErr: tt.svcErr}
			rr := do(newMux(svc), http.MethodPut, tt.path, tt.body)

			require.Equal(t, tt.wantStatus, rr.Code)
			if tt.wantError != "" {
				assert.JSONEq(t, `{"error":"`+tt.wantError+`"}`, rr.Body.String())
				return
			}
			require.Equal(t, 1, svc.confirmCalls)
			assert.Equal(t, int64(3), svc.lastConfirmID)
			assert.Equal(t, tt.wantValue, svc.lastConfirmValue)

			var got domain.Invitation
			require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &got))
			assert.Equal(t, tt.wantPases, got.Pases)
			assert.Equal(t, tt.wantValue, got.Confirmacion)
		})
	}
}
