package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Hoteleria-api/internal/application/dto"
	"github.com/jhoicas/Hoteleria-api/internal/application/usecase"
)

// InvitationHandler invitaciones de usuarios al tenant.
type InvitationHandler struct {
	uc *usecase.InvitationUseCase
}

func NewInvitationHandler(uc *usecase.InvitationUseCase) *InvitationHandler {
	return &InvitationHandler{uc: uc}
}

// Create godoc
// @Summary      Invitar usuario
// @Description  Genera un token de un solo uso con vencimiento. Solo una invitación pendiente por email.
// @Tags         invitations
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateInvitationRequest  true  "email y rol"
// @Success      201   {object}  dto.InvitationResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      403   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/invitations [post]
func (h *InvitationHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateInvitationRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	out, err := h.uc.Create(c.UserContext(), GetCompanyID(c), GetUserID(c), GetRole(c), in)
	if err != nil {
		return handleError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// List godoc
// @Summary      Listar invitaciones
// @Tags         invitations
// @Security     Bearer
// @Produce      json
// @Param        page    query  int     false  "Página"  default(1)
// @Param        limit   query  int     false  "Límite"  default(10)
// @Param        search  query  string  false  "Email"
// @Param        status  query  string  false  "PENDING | ACCEPTED | CANCELLED | EXPIRED"
// @Success      200  {object}  dto.ListResponse[dto.InvitationResponse]
// @Router       /api/invitations [get]
func (h *InvitationHandler) List(c *fiber.Ctx) error { return list(c, h.uc.List) }

// Cancel godoc
// @Summary      Cancelar invitación pendiente
// @Tags         invitations
// @Security     Bearer
// @Produce      json
// @Param        id   path  int  true  "ID de la invitación"
// @Success      200  {object}  dto.InvitationResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/invitations/{id}/cancel [post]
func (h *InvitationHandler) Cancel(c *fiber.Ctx) error {
	id, err := pathID(c, "id")
	if err != nil {
		return handleError(c, err)
	}
	out, err := h.uc.Cancel(c.UserContext(), GetCompanyID(c), GetUserID(c), id)
	if err != nil {
		return handleError(c, err)
	}
	return c.JSON(out)
}

// Resend godoc
// @Summary      Reenviar invitación
// @Description  Regenera el token y renueva el vencimiento.
// @Tags         invitations
// @Security     Bearer
// @Produce      json
// @Param        id   path  int  true  "ID de la invitación"
// @Success      200  {object}  dto.InvitationResponse
// @Failure      403  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/invitations/{id}/resend [post]
func (h *InvitationHandler) Resend(c *fiber.Ctx) error {
	id, err := pathID(c, "id")
	if err != nil {
		return handleError(c, err)
	}
	out, err := h.uc.Resend(c.UserContext(), GetCompanyID(c), GetUserID(c), GetRole(c), id)
	if err != nil {
		return handleError(c, err)
	}
	return c.JSON(out)
}
