package memory

import (
	"cmp"
	"context"
	"slices"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/Hoteleria-api/internal/domain"
	"github.com/jhoicas/Hoteleria-api/internal/domain/entity"
	"github.com/jhoicas/Hoteleria-api/internal/domain/repository"
)

var (
	_ repository.RestaurantTableRepository = (*RestaurantTableRepo)(nil)
	_ repository.RestaurantOrderRepository = (*RestaurantOrderRepo)(nil)
	_ repository.PaymentRepository         = (*PaymentRepo)(nil)
)

// RestaurantTableRepo mesas en memoria.
type RestaurantTableRepo struct{ c conn }

func NewRestaurantTableRepository(s *Store) *RestaurantTableRepo {
	return &RestaurantTableRepo{conn{s: s}}
}

func (d *data) tableNumberTaken(companyID int64, number string, except int64) bool {
	for _, t := range d.tables.rows {
		if t.ID != except && visible(&t.Audit, companyID) && t.Number == number {
			return true
		}
	}
	return false
}

func (r *RestaurantTableRepo) Create(_ context.Context, t *entity.RestaurantTable) error {
	d, unlock := r.c.lock()
	defer unlock()
	if d.tableNumberTaken(t.CompanyID, t.Number, 0) {
		return domain.Duplicate("mesa", "number", t.Number)
	}
	t.ID = d.tables.next()
	d.tables.rows[t.ID] = *t
	return nil
}

func (r *RestaurantTableRepo) find(companyID int64, match func(*entity.RestaurantTable) bool) *entity.RestaurantTable {
	d, unlock := r.c.lock()
	defer unlock()
	for _, t := range d.tables.rows {
		if visible(&t.Audit, companyID) && match(&t) {
			d.creatorName(&t.Audit)
			return &t
		}
	}
	return nil
}

func (r *RestaurantTableRepo) GetByID(_ context.Context, companyID, id int64) (*entity.RestaurantTable, error) {
	return r.find(companyID, func(t *entity.RestaurantTable) bool { return t.ID == id }), nil
}

func (r *RestaurantTableRepo) GetByNumber(_ context.Context, companyID int64, number string) (*entity.RestaurantTable, error) {
	return r.find(companyID, func(t *entity.RestaurantTable) bool { return t.Number == number }), nil
}

func (r *RestaurantTableRepo) List(_ context.Context, companyID int64, q repository.ListQuery) ([]*entity.RestaurantTable, int64, error) {
	d, unlock := r.c.lock()
	defer unlock()
	var rows []entity.RestaurantTable
	for _, t := range d.tables.rows {
		if !visible(&t.Audit, companyID) || !matches(q.Search, t.Number, t.Location) {
			continue
		}
		if q.Status != "" && t.Status != q.Status {
			continue
		}
		rows = append(rows, t)
	}
	total := int64(len(rows))
	rows = page(rows, q, repository.TableSort, func(t entity.RestaurantTable, col string) any {
		switch col {
		case "number":
			return t.Number
		case "capacity":
			return t.Capacity
		case "status":
			return t.Status
		}
		v, _ := auditKey(&t.Audit, col)
		return v
	}, func(t entity.RestaurantTable) int64 { return t.ID })
	out := make([]*entity.RestaurantTable, len(rows))
	for i := range rows {
		t := rows[i]
		d.creatorName(&t.Audit)
		out[i] = &t
	}
	return out, total, nil
}

func (r *RestaurantTableRepo) Update(_ context.Context, t *entity.RestaurantTable) error {
	d, unlock := r.c.lock()
	defer unlock()
	cur, ok := d.tables.rows[t.ID]
	if err := notFoundIfMissing(ok && visible(&cur.Audit, t.CompanyID)); err != nil {
		return err
	}
	if d.tableNumberTaken(t.CompanyID, t.Number, t.ID) {
		return domain.Duplicate("mesa", "number", t.Number)
	}
	cur.Number, cur.Capacity, cur.Location, cur.Status = t.Number, t.Capacity, t.Location, t.Status
	cur.UpdatedBy, cur.UpdatedAt = t.UpdatedBy, t.UpdatedAt
	d.tables.rows[t.ID] = cur
	return nil
}

func (r *RestaurantTableRepo) UpdateStatus(_ context.Context, companyID, id int64, status string, actorID int64) error {
	d, unlock := r.c.lock()
	defer unlock()
	cur, ok := d.tables.rows[id]
	if err := notFoundIfMissing(ok && visible(&cur.Audit, companyID)); err != nil {
		return err
	}
	cur.Status = status
	cur.Touch(actorID, now())
	d.tables.rows[id] = cur
	return nil
}

func (r *RestaurantTableRepo) SoftDelete(_ context.Context, companyID, id, actorID int64) error {
	d, unlock := r.c.lock()
	defer unlock()
	return softDelete(&d.tables, companyID, id, actorID, func(x *entity.RestaurantTable) *entity.Audit { return &x.Audit })
}

// RestaurantOrderRepo órdenes en memoria; las líneas viven dentro de la orden.
type RestaurantOrderRepo struct{ c conn }

func NewRestaurantOrderRepository(s *Store) *RestaurantOrderRepo {
	return &RestaurantOrderRepo{conn{s: s}}
}

func (d *data) expandOrder(o entity.RestaurantOrder) *entity.RestaurantOrder {
	o.Items = slices.Clone(o.Items)
	if o.Items == nil {
		o.Items = []entity.OrderItem{}
	}
	o.TableNumber, o.ClientName = "", ""
	if o.TableID != nil {
		o.TableNumber = d.tables.rows[*o.TableID].Number
	}
	if o.ClientID != nil {
		if c, ok := d.clients.rows[*o.ClientID]; ok {
			o.ClientName = c.FullName()
		}
	}
	d.creatorName(&o.Audit)
	return &o
}

func (r *RestaurantOrderRepo) Create(_ context.Context, o *entity.RestaurantOrder) error {
	d, unlock := r.c.lock()
	defer unlock()
	o.ID = d.orders.next()
	for i := range o.Items {
		d.itemSeq++
		o.Items[i].ID = d.itemSeq
		o.Items[i].OrderID = o.ID
	}
	row := *o
	row.Items = slices.Clone(o.Items)
	d.orders.rows[o.ID] = row
	return nil
}

func (r *RestaurantOrderRepo) GetByID(_ context.Context, companyID, id int64) (*entity.RestaurantOrder, error) {
	d, unlock := r.c.lock()
	defer unlock()
	o, ok := d.orders.rows[id]
	if !ok || !visible(&o.Audit, companyID) {
		return nil, nil
	}
	return d.expandOrder(o), nil
}

// GetForUpdate no necesita bloqueo de fila: una tx del store ya tiene acceso exclusivo.
func (r *RestaurantOrderRepo) GetForUpdate(ctx context.Context, companyID, id int64) (*entity.RestaurantOrder, error) {
	return r.GetByID(ctx, companyID, id)
}

func (r *RestaurantOrderRepo) List(_ context.Context, companyID int64, q repository.ListQuery) ([]*entity.RestaurantOrder, int64, error) {
	d, unlock := r.c.lock()
	defer unlock()
	var rows []entity.RestaurantOrder
	for _, o := range d.orders.rows {
		switch {
		case !visible(&o.Audit, companyID), !matches(q.Search, o.Notes):
			continue
		case q.ParentID > 0 && (o.TableID == nil || *o.TableID != q.ParentID):
			continue
		case q.Status != "" && o.Status != q.Status:
			continue
		}
		rows = append(rows, o)
	}
	total := int64(len(rows))
	rows = page(rows, q, repository.OrderSort, func(o entity.RestaurantOrder, col string) any {
		switch col {
		case "total":
			return o.Total
		case "status":
			return o.Status
		}
		v, _ := auditKey(&o.Audit, col)
		return v
	}, func(o entity.RestaurantOrder) int64 { return o.ID })
	out := make([]*entity.RestaurantOrder, len(rows))
	for i, o := range rows {
		out[i] = d.expandOrder(o)
	}
	return out, total, nil
}

// Update persiste la cabecera; conserva las líneas guardadas.
func (r *RestaurantOrderRepo) Update(_ context.Context, o *entity.RestaurantOrder) error {
	d, unlock := r.c.lock()
	defer unlock()
	cur, ok := d.orders.rows[o.ID]
	if err := notFoundIfMissing(ok && visible(&cur.Audit, o.CompanyID)); err != nil {
		return err
	}
	cur.TableID, cur.ClientID, cur.Status, cur.Total, cur.Notes = o.TableID, o.ClientID, o.Status, o.Total, o.Notes
	cur.PaymentMethod, cur.PaidAt = o.PaymentMethod, o.PaidAt
	cur.UpdatedBy, cur.UpdatedAt = o.UpdatedBy, o.UpdatedAt
	d.orders.rows[o.ID] = cur
	return nil
}

func (r *RestaurantOrderRepo) SoftDelete(_ context.Context, companyID, id, actorID int64) error {
	d, unlock := r.c.lock()
	defer unlock()
	return softDelete(&d.orders, companyID, id, actorID, func(x *entity.RestaurantOrder) *entity.Audit { return &x.Audit })
}

func (r *RestaurantOrderRepo) countOpen(companyID int64, match func(*entity.RestaurantOrder) bool) int64 {
	d, unlock := r.c.lock()
	defer unlock()
	var n int64
	for _, o := range d.orders.rows {
		if visible(&o.Audit, companyID) && o.IsOpen() && match(&o) {
			n++
		}
	}
	return n
}

func (r *RestaurantOrderRepo) CountOpenByTable(_ context.Context, companyID, tableID int64) (int64, error) {
	return r.countOpen(companyID, func(o *entity.RestaurantOrder) bool {
		return o.TableID != nil && *o.TableID == tableID
	}), nil
}

func (r *RestaurantOrderRepo) CountOpenByClient(_ context.Context, companyID, clientID int64) (int64, error) {
	return r.countOpen(companyID, func(o *entity.RestaurantOrder) bool {
		return o.ClientID != nil && *o.ClientID == clientID
	}), nil
}

func (r *RestaurantOrderRepo) Aggregate(_ context.Context, companyID int64) (*entity.OrderAggregate, error) {
	d, unlock := r.c.lock()
	defer unlock()
	a := &entity.OrderAggregate{Revenue: decimal.Zero}
	for _, o := range d.orders.rows {
		if !visible(&o.Audit, companyID) {
			continue
		}
		a.TotalOrders++
		if o.IsOpen() {
			a.OpenOrders++
		}
		if o.Status == entity.OrderPaid {
			a.PaidOrders++
			a.Revenue = a.Revenue.Add(o.Total)
		}
	}
	return a, nil
}

// PaymentRepo pagos en memoria.
type PaymentRepo struct{ c conn }

func NewPaymentRepository(s *Store) *PaymentRepo { return &PaymentRepo{conn{s: s}} }

func (r *PaymentRepo) Create(_ context.Context, p *entity.Payment) error {
	d, unlock := r.c.lock()
	defer unlock()
	p.ID = d.payments.next()
	d.payments.rows[p.ID] = *p
	return nil
}

func (r *PaymentRepo) ListByOrder(_ context.Context, companyID, orderID int64) ([]*entity.Payment, error) {
	d, unlock := r.c.lock()
	defer unlock()
	out := []*entity.Payment{}
	for _, p := range d.payments.rows {
		if p.CompanyID == companyID && p.OrderID == orderID {
			d.creatorName(&p.Audit)
			out = append(out, &p)
		}
	}
	slices.SortFunc(out, func(a, b *entity.Payment) int { return cmp.Compare(a.ID, b.ID) })
	return out, nil
}
