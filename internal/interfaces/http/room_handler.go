package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Hoteleria-api/internal/application/usecase"
)

// RoomTypeHandler catálogo de tipos de habitación.
type RoomTypeHandler struct {
	uc *usecase.RoomTypeUseCase
}

func NewRoomTypeHandler(uc *usecase.RoomTypeUseCase) *RoomTypeHandler {
	return &RoomTypeHandler{uc: uc}
}

// Create godoc
// @Summary      Crear tipo de habitación
// @Tags         room-types
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateRoomTypeRequest  true  "Datos del tipo"
// @Success      201   {object}  dto.RoomTypeResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/room-types [post]
func (h *RoomTypeHandler) Create(c *fiber.Ctx) error { return create(c, h.uc.Create) }

// List godoc
// @Summary      Listar tipos de habitación
// @Tags         room-types
// @Security     Bearer
// @Produce      json
// @Param        page        query  int     false  "Página"  default(1)
// @Param        limit       query  int     false  "Límite"  default(10)
// @Param        search      query  string  false  "Nombre o descripción"
// @Param        sort_by     query  string  false  "name | base_price | max_occupancy | created_at | updated_at"
// @Param        sort_order  query  string  false  "asc | desc"
// @Success      200  {object}  dto.ListResponse[dto.RoomTypeResponse]
// @Router       /api/room-types [get]
func (h *RoomTypeHandler) List(c *fiber.Ctx) error { return list(c, h.uc.List) }

// GetByID godoc
// @Summary      Obtener tipo de habitación
// @Tags         room-types
// @Security     Bearer
// @Produce      json
// @Param        id   path  int  true  "ID del tipo"
// @Success      200  {object}  dto.RoomTypeResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/room-types/{id} [get]
func (h *RoomTypeHandler) GetByID(c *fiber.Ctx) error { return byID(c, h.uc.GetByID) }

// Update godoc
// @Summary      Actualizar tipo de habitación
// @Tags         room-types
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  int                        true  "ID del tipo"
// @Param        body  body  dto.UpdateRoomTypeRequest  true  "Campos a cambiar"
// @Success      200   {object}  dto.RoomTypeResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/room-types/{id} [put]
func (h *RoomTypeHandler) Update(c *fiber.Ctx) error { return update(c, h.uc.Update) }

// Delete godoc
// @Summary      Eliminar tipo de habitación
// @Description  Bloqueado mientras tenga habitaciones activas.
// @Tags         room-types
// @Security     Bearer
// @Param        id   path  int  true  "ID del tipo"
// @Success      204
// @Failure      403  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/room-types/{id} [delete]
func (h *RoomTypeHandler) Delete(c *fiber.Ctx) error { return remove(c, h.uc.Delete) }

// Stats godoc
// @Summary      Estadísticas de tipos de habitación
// @Tags         room-types
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.RoomTypeStats
// @Router       /api/room-types/stats [get]
func (h *RoomTypeHandler) Stats(c *fiber.Ctx) error { return stats(c, h.uc.Stats) }

// RoomHandler habitaciones del hotel.
type RoomHandler struct {
	uc *usecase.RoomUseCase
}

func NewRoomHandler(uc *usecase.RoomUseCase) *RoomHandler {
	return &RoomHandler{uc: uc}
}

// Create godoc
// @Summary      Crear habitación
// @Tags         rooms
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateRoomRequest  true  "Datos de la habitación"
// @Success      201   {object}  dto.RoomResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/rooms [post]
func (h *RoomHandler) Create(c *fiber.Ctx) error { return create(c, h.uc.Create) }

// List godoc
// @Summary      Listar habitaciones
// @Tags         rooms
// @Security     Bearer
// @Produce      json
// @Param        page        query  int     false  "Página"  default(1)
// @Param        limit       query  int     false  "Límite"  default(10)
// @Param        search      query  string  false  "Número o notas"
// @Param        status      query  string  false  "Estado"
// @Param        parent_id   query  int     false  "ID del tipo de habitación"
// @Param        sort_by     query  string  false  "number | floor | status | created_at | updated_at"
// @Param        sort_order  query  string  false  "asc | desc"
// @Success      200  {object}  dto.ListResponse[dto.RoomResponse]
// @Router       /api/rooms [get]
func (h *RoomHandler) List(c *fiber.Ctx) error { return list(c, h.uc.List) }

// GetByID godoc
// @Summary      Obtener habitación
// @Tags         rooms
// @Security     Bearer
// @Produce      json
// @Param        id   path  int  true  "ID de la habitación"
// @Success      200  {object}  dto.RoomResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/rooms/{id} [get]
func (h *RoomHandler) GetByID(c *fiber.Ctx) error { return byID(c, h.uc.GetByID) }

// Update godoc
// @Summary      Actualizar habitación
// @Tags         rooms
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  int                    true  "ID de la habitación"
// @Param        body  body  dto.UpdateRoomRequest  true  "Campos a cambiar"
// @Success      200   {object}  dto.RoomResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/rooms/{id} [put]
func (h *RoomHandler) Update(c *fiber.Ctx) error { return update(c, h.uc.Update) }

// UpdateStatus godoc
// @Summary      Cambiar estado de la habitación
// @Tags         rooms
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  int                      true  "ID de la habitación"
// @Param        body  body  dto.UpdateStatusRequest  true  "Nuevo estado"
// @Success      200   {object}  dto.RoomResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/rooms/{id}/status [patch]
func (h *RoomHandler) UpdateStatus(c *fiber.Ctx) error { return updateStatus(c, h.uc.UpdateStatus) }

// Delete godoc
// @Summary      Eliminar habitación
// @Tags         rooms
// @Security     Bearer
// @Param        id   path  int  true  "ID de la habitación"
// @Success      204
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/rooms/{id} [delete]
func (h *RoomHandler) Delete(c *fiber.Ctx) error { return remove(c, h.uc.Delete) }

// Stats godoc
// @Summary      Ocupación de habitaciones
// @Tags         rooms
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.RoomStats
// @Router       /api/rooms/stats [get]
func (h *RoomHandler) Stats(c *fiber.Ctx) error { return stats(c, h.uc.Stats) }
