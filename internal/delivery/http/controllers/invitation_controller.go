package controllers

import (
	"errors"
	"log/slog"
	"net/http"

	validation "github.com/go-ozzo/ozzo-validation"

	"invitaciones/internal/delivery/http/helpers"
	"invitaciones/internal/domain"
)

// Fixed client-facing messages. Internal error details are logged, never returned.
const (
	msgInvalidID          = "invalid id"
	msgCreateFailed       = "Error creando invitación"
	msgInvitationNotFound = "No existe"
	msgGetInvitation      = "Error obteniendo invitación"
	msgListFailed         = "Error listando invitados"
	msgGuestNotFound      = "Invitado no encontrado"
	msgGetGuest           = "Error obteniendo invitado"
	msgConfirmFailed      = "Error confirmando asistencia"
)

// CreateInvitationRequest is the request body for POST /api/invitaciones.
type CreateInvitationRequest struct {
	Abrev  string `json:"abrev" example:"FAM-PEREZ"`
	Nombre string `json:"nombre" example:"Familia Pérez"`
	Pases  *int   `json:"pases" example:"4"`
}

// Validate implements helpers.Validator.
func (c CreateInvitationRequest) Validate() []string {
	return helpers.ValidationMessages(validation.ValidateStruct(&c,
		validation.Field(&c.Abrev, validation.Required, validation.RuneLength(1, 50)),
		validation.Field(&c.Nombre, validation.Required, validation.RuneLength(1, 255)),
		validation.Field(&c.Pases, validation.NotNil, validation.Min(0)),
	))
}

// ConfirmInvitationRequest is the request body for PUT /api/invitaciones/{id}/confirmar.
// pases may be omitted when confirmacion is "no_asistira".
type ConfirmInvitationRequest struct {
	Confirmacion string `json:"confirmacion" example:"confirmado"`
	Pases        *int   `json:"pases" example:"2"`
}

// Validate implements helpers.Validator.
func (c ConfirmInvitationRequest) Validate() []string {
	pasesRules := []validation.Rule{validation.Min(0)}
	if domain.Confirmation(c.Confirmacion) != domain.ConfirmationDeclined {
		pasesRules = append([]validation.Rule{validation.NotNil}, pasesRules...)
	}
	return helpers.ValidationMessages(validation.ValidateStruct(&c,
		validation.Field(&c.Confirmacion, validation.Required, validation.RuneLength(1, 50)),
		validation.Field(&c.Pases, pasesRules...),
	))
}

func (c ConfirmInvitationRequest) pases() int {
	if c.Pases == nil {
		return 0
	}
	return *c.Pases
}

type InvitationController struct {
	Logger  *slog.Logger
	Service domain.InvitationService
}

func NewInvitationController(logger *slog.Logger, svc domain.InvitationService) *InvitationController {
	return &InvitationController{
		Logger:  logger,
		Service: svc,
	}
}

// CreateInvitation godoc
// @Summary Create an invitation
// @Description Creates an invitation with qrs "-", confirmacion "pendiente" and a link derived from the generated id. Broadcasts invitacion-nueva.
// @Tags invitaciones
// @Accept json
// @Produce json
// @Param invitacion body CreateInvitationRequest true "Invitation data"
// @Success 200 {object} domain.Invitation
// @Failure 400 {object} helpers.ErrorResponse
// @Failure 500 {object} helpers.ErrorResponse "Error creando invitación"
// @Router /api/invitaciones [post]
func (c *InvitationController) CreateInvitation(w http.ResponseWriter, r *http.Request) {
	var req CreateInvitationRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	inv, err := c.Service.Create(r.Context(), req.Abrev, req.Nombre, *req.Pases)
	if err != nil {
		if c.invalidInput(w, r, err) {
			return
		}
		c.fail(w, r, http.StatusInternalServerError, msgCreateFailed, err)
		return
	}
	helpers.WriteJSON(w, http.StatusOK, inv)
}

// GetInvitation godoc
// @Summary Get an invitation
// @Tags invitaciones
// @Produce json
// @Param id path int true "Invitation ID"
// @Success 200 {object} domain.Invitation
// @Failure 400 {object} helpers.ErrorResponse "invalid id"
// @Failure 404 {object} helpers.ErrorResponse "No existe"
// @Failure 500 {object} helpers.ErrorResponse "Error obteniendo invitación"
// @Router /api/invitaciones/{id} [get]
func (c *InvitationController) GetInvitation(w http.ResponseWriter, r *http.Request) {
	c.get(w, r, msgInvitationNotFound, msgGetInvitation)
}

// ListGuests godoc
// @Summary List every invitation
// @Tags invitados
// @Produce json
// @Success 200 {array} domain.Invitation
// @Failure 500 {object} helpers.ErrorResponse "Error listando invitados"
// @Router /api/invitados [get]
func (c *InvitationController) ListGuests(w http.ResponseWriter, r *http.Request) {
	list, err := c.Service.List(r.Context())
	if err != nil {
		c.fail(w, r, http.StatusInternalServerError, msgListFailed, err)
		return
	}
	helpers.WriteJSON(w, http.StatusOK, list)
}

// GetGuest godoc
// @Summary Get a guest
// @Description Same record as GET /api/invitaciones/{id}, with guest-facing error messages.
// @Tags invitados
// @Produce json
// @Param id path int true "Invitation ID"
// @Success 200 {object} domain.Invitation
// @Failure 400 {object} helpers.ErrorResponse "invalid id"
// @Failure 404 {object} helpers.ErrorResponse "Invitado no encontrado"
// @Failure 500 {object} helpers.ErrorResponse "Error obteniendo invitado"
// @Router /api/invitados/{id} [get]
func (c *InvitationController) GetGuest(w http.ResponseWriter, r *http.Request) {
	c.get(w, r, msgGuestNotFound, msgGetGuest)
}

// ConfirmInvitation godoc
// @Summary Confirm attendance
// @Description Stores the answer and the number of passes (0 when confirmacion is "no_asistira"). Broadcasts invitacion-actualizada.
// @Tags invitaciones
// @Accept json
// @Produce json
// @Param id path int true "Invitation ID"
// @Param confirmacion body ConfirmInvitationRequest true "Answer"
// @Success 200 {object} domain.Invitation
// @Failure 400 {object} helpers.ErrorResponse
// @Failure 404 {object} helpers.ErrorResponse "No existe"
// @Failure 500 {object} helpers.ErrorResponse "Error confirmando asistencia"
// @Router /api/invitaciones/{id}/confirmar [put]
func (c *InvitationController) ConfirmInvitation(w http.ResponseWriter, r *http.Request) {
	id, ok := helpers.PathID(r, "id")
	if !ok {
		helpers.WriteJSONError(w, http.StatusBadRequest, msgInvalidID)
		return
	}
	var req ConfirmInvitationRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	inv, err := c.Service.Confirm(r.Context(), id, domain.Confirmation(req.Confirmacion), req.pases())
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			helpers.WriteJSONError(w, http.StatusNotFound, msgInvitationNotFound)
			return
		}
		if c.invalidInput(w, r, err) {
			return
		}
		c.fail(w, r, http.StatusInternalServerError, msgConfirmFailed, err)
		return
	}
	helpers.WriteJSON(w, http.StatusOK, inv)
}

func (c *InvitationController) get(w http.ResponseWriter, r *http.Request, notFoundMsg, failMsg string) {
	id, ok := helpers.PathID(r, "id")
	if !ok {
		helpers.WriteJSONError(w, http.StatusBadRequest, msgInvalidID)
		return
	}
	inv, err := c.Service.GetByID(r.Context(), id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			helpers.WriteJSONError(w, http.StatusNotFound, notFoundMsg)
			return
		}
		c.fail(w, r, http.StatusInternalServerError, failMsg, err)
		return
	}
	helpers.WriteJSON(w, http.StatusOK, inv)
}

// invalidInput answers 400 when the store rejected the values.
func (c *InvitationController) invalidInput(w http.ResponseWriter, r *http.Request, err error) bool {
	if !errors.Is(err, domain.ErrInvalidInput) {
		return false
	}
	c.Logger.WarnContext(r.Context(), "rejected input", "path", r.URL.Path, "method", r.Method, "err", err)
	helpers.WriteJSONError(w, http.StatusBadRequest, domain.ErrInvalidInput.Error())
	return true
}

func (c *InvitationController) fail(w http.ResponseWriter, r *http.Request, status int, msg string, err error) {
	c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
	helpers.WriteJSONError(w, status, msg)
}
