package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Hoteleria-api/internal/domain"
	"github.com/jhoicas/Hoteleria-api/internal/domain/lookup"
)

// LookupHandler expone los valores permitidos de los campos enumerados.
type LookupHandler struct{}

func NewLookupHandler() *LookupHandler { return &LookupHandler{} }

// All godoc
// @Summary      Todos los valores permitidos
// @Tags         lookups
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  map[string][]string
// @Router       /api/lookups [get]
func (h *LookupHandler) All(c *fiber.Ctx) error {
	return c.JSON(lookup.All())
}

// Field godoc
// @Summary      Valores permitidos de un campo
// @Tags         lookups
// @Security     Bearer
// @Produce      json
// @Param        field  path  string  true  "role | room_status | order_status | ..."
// @Success      200    {object}  map[string]any
// @Failure      404    {object}  dto.ErrorResponse
// @Router       /api/lookups/{field} [get]
func (h *LookupHandler) Field(c *fiber.Ctx) error {
	name := c.Params("field")
	values := lookup.Values(name)
	if values == nil {
		return handleError(c, domain.NotFound("campo "+name))
	}
	return c.JSON(fiber.Map{"field": name, "values": values})
}
