package http

import (
	"github.com/gofiber/fiber/v2"

	appanalytics "github.com/jhoicas/Hoteleria-api/internal/application/analytics"
)

// DashboardHandler maneja el endpoint del resumen del tenant.
type DashboardHandler struct {
	uc *appanalytics.DashboardUseCase
}

// NewDashboardHandler construye el handler.
func NewDashboardHandler(uc *appanalytics.DashboardUseCase) *DashboardHandler {
	return &DashboardHandler{uc: uc}
}

// GetSummary devuelve ocupación, inventario, restaurante y clientes en una sola respuesta.
// GET /api/dashboard
//
// No requiere parámetros. Los agregados salen de la caché de estadísticas cuando está activa.
//
// @Summary      Resumen del tenant
// @Tags         dashboard
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.DashboardSummaryDTO
// @Router       /api/dashboard [get]
func (h *DashboardHandler) GetSummary(c *fiber.Ctx) error { return stats(c, h.uc.GetSummary) }
