package http

import (
	"github.com/gofiber/fiber/v2"

	appanalytics "github.com/jhoicas/Hoteleria-api/internal/application/analytics"
	"github.com/jhoicas/Hoteleria-api/internal/application/dto"
	"github.com/jhoicas/Hoteleria-api/internal/domain"
)

// AnalyticsHandler reportes de rentabilidad.
type AnalyticsHandler struct {
	uc *appanalytics.ProfitabilityUseCase
}

// NewAnalyticsHandler construye el handler.
func NewAnalyticsHandler(uc *appanalytics.ProfitabilityUseCase) *AnalyticsHandler {
	return &AnalyticsHandler{uc: uc}
}

// Profitability godoc
// @Summary      Rentabilidad del restaurante
// @Description  Márgenes por método de pago y ranking de productos por utilidad bruta (órdenes pagadas del período).
// @Tags         analytics
// @Security     Bearer
// @Produce      json
// @Param        start_date  query  string  false  "YYYY-MM-DD (por defecto, inicio del mes)"
// @Param        end_date    query  string  false  "YYYY-MM-DD (por defecto, hoy)"
// @Param        top_n       query  int     false  "Máximo de productos"  default(20)
// @Success      200  {object}  dto.ProfitabilityReportDTO
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      403  {object}  dto.ErrorResponse
// @Router       /api/analytics/profitability [get]
func (h *AnalyticsHandler) Profitability(c *fiber.Ctx) error {
	var req dto.ProfitabilityRequest
	if err := c.QueryParser(&req); err != nil {
		return handleError(c, domain.Invalid("parámetros del reporte inválidos"))
	}
	out, err := h.uc.GetReport(c.UserContext(), GetCompanyID(c), req)
	if err != nil {
		return handleError(c, err)
	}
	return c.JSON(out)
}
