package memory

import (
	"context"

	"github.com/jhoicas/Hoteleria-api/internal/domain"
	"github.com/jhoicas/Hoteleria-api/internal/domain/entity"
	"github.com/jhoicas/Hoteleria-api/internal/domain/repository"
)

var _ repository.ClientRepository = (*ClientRepo)(nil)

// ClientRepo clientes en memoria. El email, si viene, es único en el tenant.
type ClientRepo struct{ c conn }

func NewClientRepository(s *Store) *ClientRepo { return &ClientRepo{conn{s: s}} }

func (d *data) clientEmailTaken(companyID int64, email string, except int64) bool {
	if email == "" {
		return false
	}
	for _, c := range d.clients.rows {
		if c.ID != except && visible(&c.Audit, companyID) && c.Email == email {
			return true
		}
	}
	return false
}

func (d *data) expandClient(c entity.Client) *entity.Client {
	d.creatorName(&c.Audit)
	return &c
}

func (r *ClientRepo) Create(_ context.Context, c *entity.Client) error {
	d, unlock := r.c.lock()
	defer unlock()
	if d.clientEmailTaken(c.CompanyID, c.Email, 0) {
		return domain.Duplicate("cliente", "email", c.Email)
	}
	c.ID = d.clients.next()
	d.clients.rows[c.ID] = *c
	return nil
}

func (r *ClientRepo) find(companyID int64, match func(*entity.Client) bool) *entity.Client {
	d, unlock := r.c.lock()
	defer unlock()
	for _, c := range d.clients.rows {
		if visible(&c.Audit, companyID) && match(&c) {
			return d.expandClient(c)
		}
	}
	return nil
}

func (r *ClientRepo) GetByID(_ context.Context, companyID, id int64) (*entity.Client, error) {
	return r.find(companyID, func(c *entity.Client) bool { return c.ID == id }), nil
}

func (r *ClientRepo) GetByEmail(_ context.Context, companyID int64, email string) (*entity.Client, error) {
	if email == "" {
		return nil, nil
	}
	return r.find(companyID, func(c *entity.Client) bool { return c.Email == email }), nil
}

func (r *ClientRepo) List(_ context.Context, companyID int64, q repository.ListQuery) ([]*entity.Client, int64, error) {
	d, unlock := r.c.lock()
	defer unlock()
	var rows []entity.Client
	for _, c := range d.clients.rows {
		if !visible(&c.Audit, companyID) || !matches(q.Search, c.FirstName, c.LastName, c.Email, c.Phone, c.CompanyName) {
			continue
		}
		if q.Status != "" && c.Type != q.Status {
			continue
		}
		rows = append(rows, c)
	}
	total := int64(len(rows))
	rows = page(rows, q, repository.ClientSort, func(c entity.Client, col string) any {
		switch col {
		case "first_name":
			return c.FirstName
		case "last_name":
			return c.LastName
		case "email":
			return c.Email
		}
		v, _ := auditKey(&c.Audit, col)
		return v
	}, func(c entity.Client) int64 { return c.ID })
	out := make([]*entity.Client, len(rows))
	for i, c := range rows {
		out[i] = d.expandClient(c)
	}
	return out, total, nil
}

func (r *ClientRepo) Update(_ context.Context, c *entity.Client) error {
	d, unlock := r.c.lock()
	defer unlock()
	cur, ok := d.clients.rows[c.ID]
	if err := notFoundIfMissing(ok && visible(&cur.Audit, c.CompanyID)); err != nil {
		return err
	}
	if d.clientEmailTaken(c.CompanyID, c.Email, c.ID) {
		return domain.Duplicate("cliente", "email", c.Email)
	}
	upd := *c
	upd.CreatedAt, upd.CreatedBy = cur.CreatedAt, cur.CreatedBy
	d.clients.rows[c.ID] = upd
	return nil
}

func (r *ClientRepo) SoftDelete(_ context.Context, companyID, id, actorID int64) error {
	d, unlock := r.c.lock()
	defer unlock()
	return softDelete(&d.clients, companyID, id, actorID, func(x *entity.Client) *entity.Audit { return &x.Audit })
}

func (r *ClientRepo) CountByType(_ context.Context, companyID int64) (map[string]int64, error) {
	d, unlock := r.c.lock()
	defer unlock()
	out := make(map[string]int64)
	for _, c := range d.clients.rows {
		if visible(&c.Audit, companyID) {
			out[c.Type]++
		}
	}
	return out, nil
}
