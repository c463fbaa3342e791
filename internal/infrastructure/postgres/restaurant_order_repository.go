package postgres

import (
	"context"
	"fmt"

	"github.com/jhoicas/Hoteleria-api/internal/domain"
	"github.com/jhoicas/Hoteleria-api/internal/domain/entity"
	"github.com/jhoicas/Hoteleria-api/internal/domain/repository"
)

var _ repository.RestaurantOrderRepository = (*RestaurantOrderRepo)(nil)

// openOrder predicado de orden abierta (ni pagada ni cancelada).
func openOrder(alias string) string {
	return alias + ".status NOT IN ('PAID', 'CANCELLED')"
}

// RestaurantOrderRepo implementación del puerto RestaurantOrderRepository sobre PostgreSQL.
type RestaurantOrderRepo struct {
	q Querier
}

// NewRestaurantOrderRepository construye el adaptador. Pasar pool o tx (Querier).
func NewRestaurantOrderRepository(q Querier) *RestaurantOrderRepo {
	return &RestaurantOrderRepo{q: q}
}

var orderSelect = `
	SELECT o.id, o.table_id, COALESCE(t.number, ''), o.client_id, COALESCE(TRIM(cl.first_name || ' ' || cl.last_name), ''),
		o.status, o.total, o.notes, o.payment_method, o.paid_at, ` + auditColumns("o") + `
	FROM restaurant_orders o
	LEFT JOIN restaurant_tables t ON t.id = o.table_id
	LEFT JOIN clients cl ON cl.id = o.client_id ` + creatorJoin("o")

func scanOrder(row scanner) (*entity.RestaurantOrder, error) {
	var o entity.RestaurantOrder
	dest := append([]any{&o.ID, &o.TableID, &o.TableNumber, &o.ClientID, &o.ClientName,
		&o.Status, &o.Total, &o.Notes, &o.PaymentMethod, &o.PaidAt}, auditDest(&o.Audit)...)
	if err := row.Scan(dest...); err != nil {
		return nil, err
	}
	return &o, nil
}

// Create inserta la cabecera y las líneas. Debe correr dentro de una tx para ser atómico.
func (r *RestaurantOrderRepo) Create(ctx context.Context, o *entity.RestaurantOrder) error {
	query := `
		INSERT INTO restaurant_orders (company_id, table_id, client_id, status, total, notes, payment_method, paid_at,
			created_by, updated_by, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		RETURNING id`
	err := r.q.QueryRow(ctx, query,
		o.CompanyID, nullIfZero(o.TableID), nullIfZero(o.ClientID), o.Status, o.Total, o.Notes, o.PaymentMethod, o.PaidAt,
		o.CreatedBy, o.UpdatedBy, o.CreatedAt, o.UpdatedAt,
	).Scan(&o.ID)
	if err != nil {
		return fmt.Errorf("insert restaurant order: %w", err)
	}
	for i := range o.Items {
		it := &o.Items[i]
		it.OrderID = o.ID
		err := r.q.QueryRow(ctx, `
			INSERT INTO order_items (order_id, product_id, product_name, quantity, unit_price, subtotal)
			VALUES ($1, $2, $3, $4, $5, $6)
			RETURNING id`,
			it.OrderID, it.ProductID, it.ProductName, it.Quantity, it.UnitPrice, it.Subtotal,
		).Scan(&it.ID)
		if err != nil {
			return fmt.Errorf("insert order item: %w", err)
		}
	}
	return nil
}

// GetByID obtiene la orden activa con sus líneas.
func (r *RestaurantOrderRepo) GetByID(ctx context.Context, companyID, id int64) (*entity.RestaurantOrder, error) {
	return r.get(ctx, companyID, id, "")
}

// GetForUpdate bloquea la cabecera (FOR UPDATE OF o) para serializar pagos y cambios de estado.
func (r *RestaurantOrderRepo) GetForUpdate(ctx context.Context, companyID, id int64) (*entity.RestaurantOrder, error) {
	return r.get(ctx, companyID, id, " FOR UPDATE OF o")
}

func (r *RestaurantOrderRepo) get(ctx context.Context, companyID, id int64, lock string) (*entity.RestaurantOrder, error) {
	query := orderSelect + ` WHERE o.id = $1 AND o.company_id = $2 AND ` + activeScope("o") + lock
	o, err := scanOrder(r.q.QueryRow(ctx, query, id, companyID))
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get restaurant order: %w", err)
	}
	if err := r.loadItems(ctx, []*entity.RestaurantOrder{o}); err != nil {
		return nil, err
	}
	return o, nil
}

// List lista órdenes; ParentID filtra por mesa y Status por estado.
func (r *RestaurantOrderRepo) List(ctx context.Context, companyID int64, q repository.ListQuery) ([]*entity.RestaurantOrder, int64, error) {
	b := newListBuilder("o", companyID)
	b.search(q.Search, "o.notes")
	if q.ParentID > 0 {
		b.add("o.table_id = ?", q.ParentID)
	}
	if q.Status != "" {
		b.add("o.status = ?", q.Status)
	}
	total, err := b.count(ctx, r.q, "restaurant_orders o")
	if err != nil {
		return nil, 0, fmt.Errorf("count restaurant orders: %w", err)
	}
	page, args := b.pageSQL(q, repository.OrderSort)
	rows, err := r.q.Query(ctx, orderSelect+b.whereSQL()+page, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list restaurant orders: %w", err)
	}
	var list []*entity.RestaurantOrder
	for rows.Next() {
		o, err := scanOrder(rows)
		if err != nil {
			rows.Close()
			return nil, 0, fmt.Errorf("scan restaurant order: %w", err)
		}
		list = append(list, o)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}
	if err := r.loadItems(ctx, list); err != nil {
		return nil, 0, err
	}
	return list, total, nil
}

// loadItems carga las líneas de todas las órdenes en una sola consulta.
func (r *RestaurantOrderRepo) loadItems(ctx context.Context, orders []*entity.RestaurantOrder) error {
	if len(orders) == 0 {
		return nil
	}
	ids := make([]int64, len(orders))
	byID := make(map[int64]*entity.RestaurantOrder, len(orders))
	for i, o := range orders {
		ids[i] = o.ID
		byID[o.ID] = o
		o.Items = []entity.OrderItem{}
	}
	rows, err := r.q.Query(ctx, `
		SELECT id, order_id, product_id, product_name, quantity, unit_price, subtotal
		FROM order_items WHERE order_id = ANY($1) ORDER BY id`, ids)
	if err != nil {
		return fmt.Errorf("list order items: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var it entity.OrderItem
		if err := rows.Scan(&it.ID, &it.OrderID, &it.ProductID, &it.ProductName, &it.Quantity, &it.UnitPrice, &it.Subtotal); err != nil {
			return fmt.Errorf("scan order item: %w", err)
		}
		if o := byID[it.OrderID]; o != nil {
			o.Items = append(o.Items, it)
		}
	}
	return rows.Err()
}

// Update persiste la cabecera; las líneas son inmutables.
func (r *RestaurantOrderRepo) Update(ctx context.Context, o *entity.RestaurantOrder) error {
	query := `
		UPDATE restaurant_orders SET table_id = $3, client_id = $4, status = $5, total = $6, notes = $7,
			payment_method = $8, paid_at = $9, updated_by = $10, updated_at = $11
		WHERE id = $1 AND company_id = $2 AND deleted_at IS NULL`
	cmd, err := r.q.Exec(ctx, query,
		o.ID, o.CompanyID, nullIfZero(o.TableID), nullIfZero(o.ClientID), o.Status, o.Total, o.Notes,
		o.PaymentMethod, o.PaidAt, o.UpdatedBy, o.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update restaurant order: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *RestaurantOrderRepo) SoftDelete(ctx context.Context, companyID, id, actorID int64) error {
	return softDelete(ctx, r.q, "restaurant_orders", companyID, id, actorID)
}

// CountOpenByTable cuenta órdenes abiertas de la mesa.
func (r *RestaurantOrderRepo) CountOpenByTable(ctx context.Context, companyID, tableID int64) (int64, error) {
	return countActive(ctx, r.q, "restaurant_orders", "table_id", companyID, tableID, " AND "+openOrder("t"))
}

// CountOpenByClient cuenta órdenes abiertas del cliente.
func (r *RestaurantOrderRepo) CountOpenByClient(ctx context.Context, companyID, clientID int64) (int64, error) {
	return countActive(ctx, r.q, "restaurant_orders", "client_id", companyID, clientID, " AND "+openOrder("t"))
}

// Aggregate totales de órdenes e ingresos (solo órdenes pagadas).
func (r *RestaurantOrderRepo) Aggregate(ctx context.Context, companyID int64) (*entity.OrderAggregate, error) {
	query := `
		SELECT COUNT(*),
			COUNT(*) FILTER (WHERE ` + openOrder("o") + `),
			COUNT(*) FILTER (WHERE o.status = 'PAID'),
			COALESCE(SUM(o.total) FILTER (WHERE o.status = 'PAID'), 0)
		FROM restaurant_orders o WHERE o.company_id = $1 AND ` + activeScope("o")
	var a entity.OrderAggregate
	if err := r.q.QueryRow(ctx, query, companyID).Scan(&a.TotalOrders, &a.OpenOrders, &a.PaidOrders, &a.Revenue); err != nil {
		return nil, fmt.Errorf("aggregate restaurant orders: %w", err)
	}
	return &a, nil
}
