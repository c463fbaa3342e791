package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Hoteleria-api/internal/application/usecase"
)

// ClientHandler clientes del hotel y del restaurante.
type ClientHandler struct {
	uc *usecase.ClientUseCase
}

func NewClientHandler(uc *usecase.ClientUseCase) *ClientHandler {
	return &ClientHandler{uc: uc}
}

// Create godoc
// @Summary      Crear cliente
// @Tags         clients
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateClientRequest  true  "Datos del cliente"
// @Success      201   {object}  dto.ClientResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/clients [post]
func (h *ClientHandler) Create(c *fiber.Ctx) error { return create(c, h.uc.Create) }

// List godoc
// @Summary      Listar clientes
// @Tags         clients
// @Security     Bearer
// @Produce      json
// @Param        page        query  int     false  "Página"  default(1)
// @Param        limit       query  int     false  "Límite"  default(10)
// @Param        search      query  string  false  "Nombre, email, teléfono o empresa"
// @Param        status      query  string  false  "Tipo de cliente"
// @Param        sort_by     query  string  false  "first_name | last_name | email | created_at | updated_at"
// @Param        sort_order  query  string  false  "asc | desc"
// @Success      200  {object}  dto.ListResponse[dto.ClientResponse]
// @Router       /api/clients [get]
func (h *ClientHandler) List(c *fiber.Ctx) error { return list(c, h.uc.List) }

// GetByID godoc
// @Summary      Obtener cliente
// @Tags         clients
// @Security     Bearer
// @Produce      json
// @Param        id   path  int  true  "ID del cliente"
// @Success      200  {object}  dto.ClientResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/clients/{id} [get]
func (h *ClientHandler) GetByID(c *fiber.Ctx) error { return byID(c, h.uc.GetByID) }

// Update godoc
// @Summary      Actualizar cliente
// @Tags         clients
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  int                      true  "ID del cliente"
// @Param        body  body  dto.UpdateClientRequest  true  "Campos a cambiar"
// @Success      200   {object}  dto.ClientResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/clients/{id} [put]
func (h *ClientHandler) Update(c *fiber.Ctx) error { return update(c, h.uc.Update) }

// Delete godoc
// @Summary      Eliminar cliente
// @Description  Bloqueado mientras tenga órdenes abiertas.
// @Tags         clients
// @Security     Bearer
// @Param        id   path  int  true  "ID del cliente"
// @Success      204
// @Failure      403  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/clients/{id} [delete]
func (h *ClientHandler) Delete(c *fiber.Ctx) error { return remove(c, h.uc.Delete) }

// Stats godoc
// @Summary      Clientes por tipo
// @Tags         clients
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.ClientStats
// @Router       /api/clients/stats [get]
func (h *ClientHandler) Stats(c *fiber.Ctx) error { return stats(c, h.uc.Stats) }
