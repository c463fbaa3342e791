package http

import (
	"fmt"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Hoteleria-api/internal/application/dto"
	"github.com/jhoicas/Hoteleria-api/internal/application/restaurant"
	"github.com/jhoicas/Hoteleria-api/internal/domain/entity"
	"github.com/jhoicas/Hoteleria-api/internal/infrastructure/metrics"
)

// TableHandler mesas del restaurante.
type TableHandler struct {
	uc *restaurant.TableUseCase
}

func NewTableHandler(uc *restaurant.TableUseCase) *TableHandler {
	return &TableHandler{uc: uc}
}

// Create godoc
// @Summary      Crear mesa
// @Tags         restaurant-tables
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateTableRequest  true  "Datos de la mesa"
// @Success      201   {object}  dto.TableResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/restaurant/tables [post]
func (h *TableHandler) Create(c *fiber.Ctx) error { return create(c, h.uc.Create) }

// List godoc
// @Summary      Listar mesas
// @Tags         restaurant-tables
// @Security     Bearer
// @Produce      json
// @Param        page        query  int     false  "Página"  default(1)
// @Param        limit       query  int     false  "Límite"  default(10)
// @Param        search      query  string  false  "Número o ubicación"
// @Param        status      query  string  false  "Estado"
// @Param        sort_by     query  string  false  "number | capacity | status | created_at | updated_at"
// @Param        sort_order  query  string  false  "asc | desc"
// @Success      200  {object}  dto.ListResponse[dto.TableResponse]
// @Router       /api/restaurant/tables [get]
func (h *TableHandler) List(c *fiber.Ctx) error { return list(c, h.uc.List) }

// GetByID godoc
// @Summary      Obtener mesa
// @Tags         restaurant-tables
// @Security     Bearer
// @Produce      json
// @Param        id   path  int  true  "ID de la mesa"
// @Success      200  {object}  dto.TableResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/restaurant/tables/{id} [get]
func (h *TableHandler) GetByID(c *fiber.Ctx) error { return byID(c, h.uc.GetByID) }

// Update godoc
// @Summary      Actualizar mesa
// @Tags         restaurant-tables
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  int                     true  "ID de la mesa"
// @Param        body  body  dto.UpdateTableRequest  true  "Campos a cambiar"
// @Success      200   {object}  dto.TableResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/restaurant/tables/{id} [put]
func (h *TableHandler) Update(c *fiber.Ctx) error { return update(c, h.uc.Update) }

// UpdateStatus godoc
// @Summary      Cambiar estado de la mesa
// @Tags         restaurant-tables
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  int                      true  "ID de la mesa"
// @Param        body  body  dto.UpdateStatusRequest  true  "Nuevo estado"
// @Success      200   {object}  dto.TableResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/restaurant/tables/{id}/status [patch]
func (h *TableHandler) UpdateStatus(c *fiber.Ctx) error { return updateStatus(c, h.uc.UpdateStatus) }

// Delete godoc
// @Summary      Eliminar mesa
// @Description  Bloqueado mientras tenga órdenes abiertas.
// @Tags         restaurant-tables
// @Security     Bearer
// @Param        id   path  int  true  "ID de la mesa"
// @Success      204
// @Failure      403  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/restaurant/tables/{id} [delete]
func (h *TableHandler) Delete(c *fiber.Ctx) error { return remove(c, h.uc.Delete) }

// OrderHandler órdenes del restaurante, pagos y comprobante PDF.
type OrderHandler struct {
	uc      *restaurant.OrderUseCase
	receipt *restaurant.ReceiptUseCase
	metrics *metrics.Metrics
}

// NewOrderHandler construye el handler. m puede ser nil.
func NewOrderHandler(uc *restaurant.OrderUseCase, receipt *restaurant.ReceiptUseCase, m *metrics.Metrics) *OrderHandler {
	return &OrderHandler{uc: uc, receipt: receipt, metrics: m}
}

// Create godoc
// @Summary      Abrir orden
// @Description  Descuenta stock de cada línea y ocupa la mesa en una sola transacción.
// @Tags         restaurant-orders
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateOrderRequest  true  "Mesa, cliente y líneas"
// @Success      201   {object}  dto.OrderResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/restaurant/orders [post]
func (h *OrderHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateOrderRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	out, err := h.uc.Create(c.UserContext(), GetCompanyID(c), GetUserID(c), in)
	if err != nil {
		return handleError(c, err)
	}
	h.metrics.Order("created")
	return c.Status(fiber.StatusCreated).JSON(out)
}

// List godoc
// @Summary      Listar órdenes
// @Tags         restaurant-orders
// @Security     Bearer
// @Produce      json
// @Param        page        query  int     false  "Página"  default(1)
// @Param        limit       query  int     false  "Límite"  default(10)
// @Param        search      query  string  false  "Notas, mesa o cliente"
// @Param        status      query  string  false  "Estado"
// @Param        parent_id   query  int     false  "ID de la mesa"
// @Param        sort_by     query  string  false  "total | status | created_at | updated_at"
// @Param        sort_order  query  string  false  "asc | desc"
// @Success      200  {object}  dto.ListResponse[dto.OrderResponse]
// @Router       /api/restaurant/orders [get]
func (h *OrderHandler) List(c *fiber.Ctx) error { return list(c, h.uc.List) }

// GetByID godoc
// @Summary      Obtener orden con sus líneas
// @Tags         restaurant-orders
// @Security     Bearer
// @Produce      json
// @Param        id   path  int  true  "ID de la orden"
// @Success      200  {object}  dto.OrderResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/restaurant/orders/{id} [get]
func (h *OrderHandler) GetByID(c *fiber.Ctx) error { return byID(c, h.uc.GetByID) }

// Update godoc
// @Summary      Actualizar cabecera de la orden
// @Tags         restaurant-orders
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  int                     true  "ID de la orden"
// @Param        body  body  dto.UpdateOrderRequest  true  "Mesa, cliente o notas"
// @Success      200   {object}  dto.OrderResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/restaurant/orders/{id} [put]
func (h *OrderHandler) Update(c *fiber.Ctx) error { return update(c, h.uc.Update) }

// UpdateStatus godoc
// @Summary      Cambiar estado de la orden
// @Description  PENDING → PREPARING → SERVED. CANCELLED devuelve el stock y libera la mesa. PAID solo vía /pay.
// @Tags         restaurant-orders
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  int                      true  "ID de la orden"
// @Param        body  body  dto.UpdateStatusRequest  true  "Nuevo estado"
// @Success      200   {object}  dto.OrderResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/restaurant/orders/{id}/status [patch]
func (h *OrderHandler) UpdateStatus(c *fiber.Ctx) error {
	id, err := pathID(c, "id")
	if err != nil {
		return handleError(c, err)
	}
	var in dto.UpdateStatusRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	out, err := h.uc.UpdateStatus(c.UserContext(), GetCompanyID(c), GetUserID(c), id, in.Status)
	if err != nil {
		return handleError(c, err)
	}
	if out.Status == entity.OrderCancelled {
		h.metrics.Order("cancelled")
	}
	return c.JSON(out)
}

// Pay godoc
// @Summary      Pagar orden
// @Description  Registra el pago por el total, marca la orden PAID y libera la mesa.
// @Tags         restaurant-orders
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  int                  true  "ID de la orden"
// @Param        body  body  dto.PayOrderRequest  true  "Método y referencia"
// @Success      200   {object}  dto.PayOrderResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/restaurant/orders/{id}/pay [post]
func (h *OrderHandler) Pay(c *fiber.Ctx) error {
	id, err := pathID(c, "id")
	if err != nil {
		return handleError(c, err)
	}
	var in dto.PayOrderRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	out, err := h.uc.Pay(c.UserContext(), GetCompanyID(c), GetUserID(c), id, in)
	if err != nil {
		return handleError(c, err)
	}
	h.metrics.Order("paid")
	return c.JSON(out)
}

// Payments godoc
// @Summary      Pagos de la orden
// @Tags         restaurant-orders
// @Security     Bearer
// @Produce      json
// @Param        id   path  int  true  "ID de la orden"
// @Success      200  {array}   dto.PaymentResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/restaurant/orders/{id}/payments [get]
func (h *OrderHandler) Payments(c *fiber.Ctx) error { return byID(c, h.uc.Payments) }

// Receipt godoc
// @Summary      Descargar comprobante PDF
// @Tags         restaurant-orders
// @Security     Bearer
// @Produce      application/pdf
// @Param        id   path  int  true  "ID de la orden"
// @Success      200  {file}    binary
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/restaurant/orders/{id}/receipt [get]
func (h *OrderHandler) Receipt(c *fiber.Ctx) error {
	id, err := pathID(c, "id")
	if err != nil {
		return handleError(c, err)
	}
	pdf, filename, err := h.receipt.Download(c.UserContext(), GetCompanyID(c), id)
	if err != nil {
		return handleError(c, err)
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf(`attachment; filename="%s"`, filename))
	return c.Send(pdf)
}

// Delete godoc
// @Summary      Eliminar orden
// @Description  Solo órdenes cerradas (PAID o CANCELLED).
// @Tags         restaurant-orders
// @Security     Bearer
// @Param        id   path  int  true  "ID de la orden"
// @Success      204
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      403  {object}  dto.ErrorResponse
// @Router       /api/restaurant/orders/{id} [delete]
func (h *OrderHandler) Delete(c *fiber.Ctx) error { return remove(c, h.uc.Delete) }

// Stats godoc
// @Summary      Estadísticas de órdenes
// @Tags         restaurant-orders
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.OrderStats
// @Router       /api/restaurant/orders/stats [get]
func (h *OrderHandler) Stats(c *fiber.Ctx) error { return stats(c, h.uc.Stats) }
