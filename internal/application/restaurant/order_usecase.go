package restaurant

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/Hoteleria-api/internal/application/dto"
	"github.com/jhoicas/Hoteleria-api/internal/application/ports"
	"github.com/jhoicas/Hoteleria-api/internal/application/usecase"
	"github.com/jhoicas/Hoteleria-api/internal/domain"
	"github.com/jhoicas/Hoteleria-api/internal/domain/entity"
	"github.com/jhoicas/Hoteleria-api/internal/domain/lookup"
	"github.com/jhoicas/Hoteleria-api/internal/domain/repository"
)

// ErrOrderOpen una orden abierta no puede eliminarse.
var ErrOrderOpen = fmt.Errorf("%w: solo se eliminan órdenes pagadas o canceladas", domain.ErrForbidden)

// OrderUseCase ciclo de vida de las órdenes del restaurante.
// Toda operación que escribe en más de una tabla corre dentro de TxRunner.
type OrderUseCase struct {
	tx       ports.TxRunner
	orders   repository.RestaurantOrderRepository
	tables   repository.RestaurantTableRepository
	clients  repository.ClientRepository
	payments repository.PaymentRepository
	cache    ports.StatsCache
}

// NewOrderUseCase construye el caso de uso.
func NewOrderUseCase(
	tx ports.TxRunner,
	orders repository.RestaurantOrderRepository,
	tables repository.RestaurantTableRepository,
	clients repository.ClientRepository,
	payments repository.PaymentRepository,
	cache ports.StatsCache,
) *OrderUseCase {
	return &OrderUseCase{tx: tx, orders: orders, tables: tables, clients: clients, payments: payments, cache: cache}
}

// Create abre una orden: descuenta stock de cada producto, guarda la orden con precios congelados
// y ocupa la mesa. Si algún producto no alcanza, no queda nada escrito.
func (uc *OrderUseCase) Create(ctx context.Context, companyID, actorID int64, in dto.CreateOrderRequest) (*dto.OrderResponse, error) {
	items, err := mergeItems(in.Items)
	if err != nil {
		return nil, err
	}
	if err := uc.ensureClient(ctx, companyID, in.ClientID); err != nil {
		return nil, err
	}
	now := time.Now()
	order := &entity.RestaurantOrder{
		TableID:  in.TableID,
		ClientID: in.ClientID,
		Status:   entity.OrderPending,
		Notes:    strings.TrimSpace(in.Notes),
		Audit:    entity.NewAudit(companyID, actorID, now),
	}
	err = uc.tx.Run(ctx, func(r ports.TxRepos) error {
		if order.TableID != nil {
			if err := ensureTableUsable(ctx, r.Tables, companyID, *order.TableID); err != nil {
				return err
			}
		}
		for _, it := range items {
			p, err := r.Products.GetByID(ctx, companyID, it.ProductID)
			if err != nil {
				return err
			}
			if p == nil {
				return domain.Invalid("product_id %d no existe", it.ProductID)
			}
			if _, err := r.Products.AdjustStock(ctx, companyID, p.ID, -it.Quantity, actorID); err != nil {
				return fmt.Errorf("%w (%s)", err, p.Name)
			}
			order.Items = append(order.Items, entity.OrderItem{
				ProductID:   p.ID,
				ProductName: p.Name,
				Quantity:    it.Quantity,
				UnitPrice:   p.Price,
			})
		}
		order.ComputeTotal()
		if err := r.Orders.Create(ctx, order); err != nil {
			return err
		}
		if order.TableID != nil {
			return r.Tables.UpdateStatus(ctx, companyID, *order.TableID, entity.TableOccupied, actorID)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	ports.InvalidateStats(ctx, uc.cache, companyID, ports.ScopeOrders, ports.ScopeProducts)
	return uc.GetByID(ctx, companyID, order.ID)
}

// List lista órdenes. Status filtra por estado y ParentID por mesa.
func (uc *OrderUseCase) List(ctx context.Context, companyID int64, p dto.ListParams) (*dto.ListResponse[dto.OrderResponse], error) {
	q, err := p.Normalize(repository.OrderSort)
	if err != nil {
		return nil, err
	}
	if q.Status != "" {
		if q.Status, err = lookup.ValidateOrderStatus(q.Status); err != nil {
			return nil, err
		}
	}
	list, total, err := uc.orders.List(ctx, companyID, q)
	if err != nil {
		return nil, err
	}
	items := make([]dto.OrderResponse, 0, len(list))
	for _, o := range list {
		items = append(items, *toOrderResponse(o))
	}
	resp := dto.NewListResponse(items, total, p)
	return &resp, nil
}

// GetByID obtiene una orden con sus líneas.
func (uc *OrderUseCase) GetByID(ctx context.Context, companyID, id int64) (*dto.OrderResponse, error) {
	o, err := uc.get(ctx, companyID, id)
	if err != nil {
		return nil, err
	}
	return toOrderResponse(o), nil
}

// Update cambia mesa, cliente o notas de una orden abierta.
func (uc *OrderUseCase) Update(ctx context.Context, companyID, actorID, id int64, in dto.UpdateOrderRequest) (*dto.OrderResponse, error) {
	var client *int64
	if in.ClientID != nil && *in.ClientID != 0 {
		client = in.ClientID
		if err := uc.ensureClient(ctx, companyID, client); err != nil {
			return nil, err
		}
	}
	err := uc.tx.Run(ctx, func(r ports.TxRepos) error {
		o, err := lockOrder(ctx, r, companyID, id)
		if err != nil {
			return err
		}
		if !o.IsOpen() {
			return fmt.Errorf("%w: la orden está %s", domain.ErrInvalidTransition, o.Status)
		}
		if in.ClientID != nil {
			o.ClientID = client
		}
		if in.Notes != nil {
			o.Notes = strings.TrimSpace(*in.Notes)
		}
		oldTable := o.TableID
		tableChanged := false
		if in.TableID != nil {
			next := in.TableID
			if *next == 0 {
				next = nil
			}
			tableChanged = !sameID(oldTable, next)
			o.TableID = next
		}
		if tableChanged && o.TableID != nil {
			if err := ensureTableUsable(ctx, r.Tables, companyID, *o.TableID); err != nil {
				return err
			}
		}
		o.Touch(actorID, time.Now())
		if err := r.Orders.Update(ctx, o); err != nil {
			return err
		}
		if !tableChanged {
			return nil
		}
		if o.TableID != nil {
			if err := r.Tables.UpdateStatus(ctx, companyID, *o.TableID, entity.TableOccupied, actorID); err != nil {
				return err
			}
		}
		return releaseTable(ctx, r, companyID, oldTable, actorID)
	})
	if err != nil {
		return nil, err
	}
	return uc.GetByID(ctx, companyID, id)
}

// UpdateStatus avanza la orden (PENDING→PREPARING→SERVED) o la cancela.
// Cancelar devuelve el stock y libera la mesa. PAID solo se alcanza con Pay.
// La orden se relee bloqueada dentro de la tx: un pago concurrente gana o pierde completo.
func (uc *OrderUseCase) UpdateStatus(ctx context.Context, companyID, actorID, id int64, status string) (*dto.OrderResponse, error) {
	st, err := lookup.ValidateOrderStatus(status)
	if err != nil {
		return nil, err
	}
	if st == entity.OrderPaid {
		return nil, domain.Invalid("para marcar una orden como pagada registre el pago")
	}
	err = uc.tx.Run(ctx, func(r ports.TxRepos) error {
		o, err := lockOrder(ctx, r, companyID, id)
		if err != nil {
			return err
		}
		if !o.CanTransition(st) {
			return fmt.Errorf("%w: %s -> %s", domain.ErrInvalidTransition, o.Status, st)
		}
		o.Status = st
		o.Touch(actorID, time.Now())
		if st != entity.OrderCancelled {
			return r.Orders.Update(ctx, o)
		}
		if err := restoreStock(ctx, r, companyID, o.Items, actorID); err != nil {
			return err
		}
		if err := r.Orders.Update(ctx, o); err != nil {
			return err
		}
		return releaseTable(ctx, r, companyID, o.TableID, actorID)
	})
	if err != nil {
		return nil, err
	}
	scopes := []string{ports.ScopeOrders}
	if st == entity.OrderCancelled {
		scopes = append(scopes, ports.ScopeProducts)
	}
	ports.InvalidateStats(ctx, uc.cache, companyID, scopes...)
	return uc.GetByID(ctx, companyID, id)
}

// Pay registra el pago por el total, marca la orden PAID y libera la mesa en una transacción.
func (uc *OrderUseCase) Pay(ctx context.Context, companyID, actorID, id int64, in dto.PayOrderRequest) (*dto.PayOrderResponse, error) {
	method, err := lookup.ValidatePaymentMethod(in.Method)
	if err != nil {
		return nil, err
	}
	var payment *entity.Payment
	err = uc.tx.Run(ctx, func(r ports.TxRepos) error {
		o, err := lockOrder(ctx, r, companyID, id)
		if err != nil {
			return err
		}
		if !o.IsOpen() {
			return fmt.Errorf("%w: la orden está %s", domain.ErrInvalidTransition, o.Status)
		}
		now := time.Now()
		payment = &entity.Payment{
			OrderID:   o.ID,
			Amount:    o.Total,
			Method:    method,
			Reference: strings.TrimSpace(in.Reference),
			Audit:     entity.NewAudit(companyID, actorID, now),
		}
		o.Status = entity.OrderPaid
		o.PaymentMethod = method
		o.PaidAt = &now
		o.Touch(actorID, now)
		if err := r.Payments.Create(ctx, payment); err != nil {
			return err
		}
		if err := r.Orders.Update(ctx, o); err != nil {
			return err
		}
		return releaseTable(ctx, r, companyID, o.TableID, actorID)
	})
	if err != nil {
		return nil, err
	}
	ports.InvalidateStats(ctx, uc.cache, companyID, ports.ScopeOrders)
	out, err := uc.GetByID(ctx, companyID, id)
	if err != nil {
		return nil, err
	}
	return &dto.PayOrderResponse{Order: *out, Payment: toPaymentResponse(payment)}, nil
}

// Delete elimina lógicamente una orden cerrada (pagada o cancelada).
func (uc *OrderUseCase) Delete(ctx context.Context, companyID, actorID, id int64) error {
	o, err := uc.get(ctx, companyID, id)
	if err != nil {
		return err
	}
	if o.IsOpen() {
		return ErrOrderOpen
	}
	if err := uc.orders.SoftDelete(ctx, companyID, id, actorID); err != nil {
		return err
	}
	ports.InvalidateStats(ctx, uc.cache, companyID, ports.ScopeOrders)
	return nil
}

// Payments lista los pagos de una orden.
func (uc *OrderUseCase) Payments(ctx context.Context, companyID, id int64) ([]dto.PaymentResponse, error) {
	if _, err := uc.get(ctx, companyID, id); err != nil {
		return nil, err
	}
	list, err := uc.payments.ListByOrder(ctx, companyID, id)
	if err != nil {
		return nil, err
	}
	out := make([]dto.PaymentResponse, 0, len(list))
	for _, p := range list {
		out = append(out, toPaymentResponse(p))
	}
	return out, nil
}

// Stats agregados de órdenes; el ticket promedio vale 0 sin órdenes pagadas.
func (uc *OrderUseCase) Stats(ctx context.Context, companyID int64) (*dto.OrderStats, error) {
	out, err := ports.CachedStats(ctx, uc.cache, companyID, ports.ScopeOrders, func() (dto.OrderStats, error) {
		agg, err := uc.orders.Aggregate(ctx, companyID)
		if err != nil {
			return dto.OrderStats{}, err
		}
		s := dto.OrderStats{
			TotalOrders: agg.TotalOrders,
			OpenOrders:  agg.OpenOrders,
			PaidOrders:  agg.PaidOrders,
			Revenue:     agg.Revenue.Round(2),
			AvgTicket:   decimal.Zero,
		}
		if agg.PaidOrders > 0 {
			s.AvgTicket = agg.Revenue.Div(decimal.NewFromInt(agg.PaidOrders)).Round(2)
		}
		return s, nil
	})
	if err != nil {
		return nil, err
	}
	return &out, nil
}

func (uc *OrderUseCase) get(ctx context.Context, companyID, id int64) (*entity.RestaurantOrder, error) {
	o, err := uc.orders.GetByID(ctx, companyID, id)
	if err != nil {
		return nil, err
	}
	if o == nil {
		return nil, domain.NotFound("orden")
	}
	return o, nil
}

func (uc *OrderUseCase) ensureClient(ctx context.Context, companyID int64, clientID *int64) error {
	if clientID == nil {
		return nil
	}
	c, err := uc.clients.GetByID(ctx, companyID, *clientID)
	if err != nil {
		return err
	}
	if c == nil {
		return domain.Invalid("client_id %d no existe", *clientID)
	}
	return nil
}

// lockOrder relee la orden bloqueándola hasta el commit.
func lockOrder(ctx context.Context, r ports.TxRepos, companyID, id int64) (*entity.RestaurantOrder, error) {
	o, err := r.Orders.GetForUpdate(ctx, companyID, id)
	if err != nil {
		return nil, err
	}
	if o == nil {
		return nil, domain.NotFound("orden")
	}
	return o, nil
}

// restoreStock devuelve al inventario las cantidades de la orden.
// Un producto eliminado después de tomar la orden ya no lleva stock y se omite.
func restoreStock(ctx context.Context, r ports.TxRepos, companyID int64, items []entity.OrderItem, actorID int64) error {
	for _, it := range items {
		_, err := r.Products.AdjustStock(ctx, companyID, it.ProductID, it.Quantity, actorID)
		if errors.Is(err, domain.ErrNotFound) {
			continue
		}
		if err != nil {
			return fmt.Errorf("%w (%s)", err, it.ProductName)
		}
	}
	return nil
}

func ensureTableUsable(ctx context.Context, tables repository.RestaurantTableRepository, companyID, tableID int64) error {
	t, err := tables.GetByID(ctx, companyID, tableID)
	if err != nil {
		return err
	}
	if t == nil {
		return domain.Invalid("table_id %d no existe", tableID)
	}
	if t.Status == entity.TableOutOfService {
		return fmt.Errorf("%w: la mesa %s está fuera de servicio", domain.ErrConflict, t.Number)
	}
	return nil
}

// releaseTable deja la mesa disponible si estaba ocupada y ya no le quedan órdenes abiertas.
func releaseTable(ctx context.Context, r ports.TxRepos, companyID int64, tableID *int64, actorID int64) error {
	if tableID == nil {
		return nil
	}
	n, err := r.Orders.CountOpenByTable(ctx, companyID, *tableID)
	if err != nil || n > 0 {
		return err
	}
	t, err := r.Tables.GetByID(ctx, companyID, *tableID)
	if err != nil || t == nil || t.Status != entity.TableOccupied {
		return err
	}
	return r.Tables.UpdateStatus(ctx, companyID, *tableID, entity.TableAvailable, actorID)
}

// mergeItems valida las líneas y agrupa cantidades del mismo producto conservando el orden.
func mergeItems(in []dto.OrderItemRequest) ([]dto.OrderItemRequest, error) {
	if len(in) == 0 {
		return nil, domain.Invalid("la orden debe tener al menos un ítem")
	}
	idx := make(map[int64]int, len(in))
	out := make([]dto.OrderItemRequest, 0, len(in))
	for _, it := range in {
		if it.ProductID <= 0 {
			return nil, domain.Invalid("product_id es requerido")
		}
		if it.Quantity <= 0 {
			return nil, domain.Invalid("quantity debe ser mayor que 0")
		}
		if i, ok := idx[it.ProductID]; ok {
			out[i].Quantity += it.Quantity
			continue
		}
		idx[it.ProductID] = len(out)
		out = append(out, it)
	}
	return out, nil
}

func sameID(a, b *int64) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return *a == *b
}

func toOrderResponse(o *entity.RestaurantOrder) *dto.OrderResponse {
	items := make([]dto.OrderItemResponse, 0, len(o.Items))
	for _, it := range o.Items {
		items = append(items, dto.OrderItemResponse{
			ID:          it.ID,
			ProductID:   it.ProductID,
			ProductName: it.ProductName,
			Quantity:    it.Quantity,
			UnitPrice:   it.UnitPrice,
			Subtotal:    it.Subtotal,
		})
	}
	return &dto.OrderResponse{
		ID:            o.ID,
		TableID:       o.TableID,
		TableNumber:   o.TableNumber,
		ClientID:      o.ClientID,
		ClientName:    o.ClientName,
		Status:        o.Status,
		Items:         items,
		Total:         o.Total,
		Notes:         o.Notes,
		PaymentMethod: o.PaymentMethod,
		PaidAt:        o.PaidAt,
		AuditResponse: usecase.ToAudit(o.Audit),
	}
}

func toPaymentResponse(p *entity.Payment) dto.PaymentResponse {
	return dto.PaymentResponse{
		ID:        p.ID,
		OrderID:   p.OrderID,
		Amount:    p.Amount,
		Method:    p.Method,
		Reference: p.Reference,
		CreatedAt: p.CreatedAt,
	}
}
