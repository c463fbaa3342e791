package memory

import (
	"context"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/Hoteleria-api/internal/domain"
	"github.com/jhoicas/Hoteleria-api/internal/domain/entity"
	"github.com/jhoicas/Hoteleria-api/internal/domain/repository"
)

var (
	_ repository.CategoryRepository = (*CategoryRepo)(nil)
	_ repository.ProductRepository  = (*ProductRepo)(nil)
)

// CategoryRepo categorías en memoria.
type CategoryRepo struct{ c conn }

func NewCategoryRepository(s *Store) *CategoryRepo { return &CategoryRepo{conn{s: s}} }

func (d *data) categoryNameTaken(companyID int64, name string, except int64) bool {
	for _, c := range d.categories.rows {
		if c.ID != except && visible(&c.Audit, companyID) && strings.EqualFold(c.Name, name) {
			return true
		}
	}
	return false
}

func (d *data) countProducts(companyID, categoryID int64) int64 {
	var n int64
	for _, p := range d.products.rows {
		if visible(&p.Audit, companyID) && p.CategoryID != nil && *p.CategoryID == categoryID {
			n++
		}
	}
	return n
}

func (d *data) expandCategory(c entity.Category) *entity.Category {
	c.ProductCount = d.countProducts(c.CompanyID, c.ID)
	d.creatorName(&c.Audit)
	return &c
}

func (r *CategoryRepo) Create(_ context.Context, c *entity.Category) error {
	d, unlock := r.c.lock()
	defer unlock()
	if d.categoryNameTaken(c.CompanyID, c.Name, 0) {
		return domain.Duplicate("categoría", "name", c.Name)
	}
	c.ID = d.categories.next()
	d.categories.rows[c.ID] = *c
	return nil
}

func (r *CategoryRepo) find(companyID int64, match func(*entity.Category) bool) *entity.Category {
	d, unlock := r.c.lock()
	defer unlock()
	for _, c := range d.categories.rows {
		if visible(&c.Audit, companyID) && match(&c) {
			return d.expandCategory(c)
		}
	}
	return nil
}

func (r *CategoryRepo) GetByID(_ context.Context, companyID, id int64) (*entity.Category, error) {
	return r.find(companyID, func(c *entity.Category) bool { return c.ID == id }), nil
}

func (r *CategoryRepo) GetByName(_ context.Context, companyID int64, name string) (*entity.Category, error) {
	return r.find(companyID, func(c *entity.Category) bool { return strings.EqualFold(c.Name, name) }), nil
}

func (r *CategoryRepo) List(_ context.Context, companyID int64, q repository.ListQuery) ([]*entity.Category, int64, error) {
	d, unlock := r.c.lock()
	defer unlock()
	var rows []entity.Category
	for _, c := range d.categories.rows {
		if visible(&c.Audit, companyID) && matches(q.Search, c.Name, c.Description) {
			rows = append(rows, c)
		}
	}
	total := int64(len(rows))
	rows = page(rows, q, repository.CategorySort, func(c entity.Category, col string) any {
		if col == "name" {
			return c.Name
		}
		v, _ := auditKey(&c.Audit, col)
		return v
	}, func(c entity.Category) int64 { return c.ID })
	out := make([]*entity.Category, len(rows))
	for i, c := range rows {
		out[i] = d.expandCategory(c)
	}
	return out, total, nil
}

func (r *CategoryRepo) Update(_ context.Context, c *entity.Category) error {
	d, unlock := r.c.lock()
	defer unlock()
	cur, ok := d.categories.rows[c.ID]
	if err := notFoundIfMissing(ok && visible(&cur.Audit, c.CompanyID)); err != nil {
		return err
	}
	if d.categoryNameTaken(c.CompanyID, c.Name, c.ID) {
		return domain.Duplicate("categoría", "name", c.Name)
	}
	cur.Name, cur.Description = c.Name, c.Description
	cur.UpdatedBy, cur.UpdatedAt = c.UpdatedBy, c.UpdatedAt
	d.categories.rows[c.ID] = cur
	return nil
}

func (r *CategoryRepo) SoftDelete(_ context.Context, companyID, id, actorID int64) error {
	d, unlock := r.c.lock()
	defer unlock()
	return softDelete(&d.categories, companyID, id, actorID, func(x *entity.Category) *entity.Audit { return &x.Audit })
}

func (r *CategoryRepo) CountProducts(_ context.Context, companyID, categoryID int64) (int64, error) {
	d, unlock := r.c.lock()
	defer unlock()
	return d.countProducts(companyID, categoryID), nil
}

func (r *CategoryRepo) Aggregate(_ context.Context, companyID int64) (*entity.CategoryAggregate, error) {
	d, unlock := r.c.lock()
	defer unlock()
	a := &entity.CategoryAggregate{}
	for _, c := range d.categories.rows {
		if visible(&c.Audit, companyID) {
			a.TotalCategories++
		}
	}
	for _, p := range d.products.rows {
		if visible(&p.Audit, companyID) && p.CategoryID != nil {
			a.TotalProducts++
		}
	}
	return a, nil
}

// ProductRepo productos en memoria. AdjustStock es atómico bajo el lock del store.
type ProductRepo struct{ c conn }

func NewProductRepository(s *Store) *ProductRepo { return &ProductRepo{conn{s: s}} }

func (d *data) productNameTaken(companyID int64, name string, except int64) bool {
	for _, p := range d.products.rows {
		if p.ID != except && visible(&p.Audit, companyID) && strings.EqualFold(p.Name, name) {
			return true
		}
	}
	return false
}

func (d *data) expandProduct(p entity.Product) *entity.Product {
	p.CategoryName = ""
	if p.CategoryID != nil {
		p.CategoryName = d.categories.rows[*p.CategoryID].Name
	}
	d.creatorName(&p.Audit)
	return &p
}

func (r *ProductRepo) Create(_ context.Context, p *entity.Product) error {
	d, unlock := r.c.lock()
	defer unlock()
	if d.productNameTaken(p.CompanyID, p.Name, 0) {
		return domain.Duplicate("producto", "name", p.Name)
	}
	p.ID = d.products.next()
	d.products.rows[p.ID] = *p
	return nil
}

func (r *ProductRepo) find(companyID int64, match func(*entity.Product) bool) *entity.Product {
	d, unlock := r.c.lock()
	defer unlock()
	for _, p := range d.products.rows {
		if visible(&p.Audit, companyID) && match(&p) {
			return d.expandProduct(p)
		}
	}
	return nil
}

func (r *ProductRepo) GetByID(_ context.Context, companyID, id int64) (*entity.Product, error) {
	return r.find(companyID, func(p *entity.Product) bool { return p.ID == id }), nil
}

func (r *ProductRepo) GetByName(_ context.Context, companyID int64, name string) (*entity.Product, error) {
	return r.find(companyID, func(p *entity.Product) bool { return strings.EqualFold(p.Name, name) }), nil
}

func (r *ProductRepo) List(_ context.Context, companyID int64, q repository.ListQuery) ([]*entity.Product, int64, error) {
	d, unlock := r.c.lock()
	defer unlock()
	var rows []entity.Product
	for _, p := range d.products.rows {
		switch {
		case !visible(&p.Audit, companyID), !matches(q.Search, p.Name, p.SKU, p.Description):
			continue
		case q.ParentID > 0 && (p.CategoryID == nil || *p.CategoryID != q.ParentID):
			continue
		case q.Status == repository.StatusFilterLowStock && !p.LowStock():
			continue
		}
		rows = append(rows, p)
	}
	total := int64(len(rows))
	rows = page(rows, q, repository.ProductSort, func(p entity.Product, col string) any {
		switch col {
		case "name":
			return p.Name
		case "sku":
			return p.SKU
		case "price":
			return p.Price
		case "stock":
			return p.Stock
		}
		v, _ := auditKey(&p.Audit, col)
		return v
	}, func(p entity.Product) int64 { return p.ID })
	out := make([]*entity.Product, len(rows))
	for i, p := range rows {
		out[i] = d.expandProduct(p)
	}
	return out, total, nil
}

// Update no modifica el stock.
func (r *ProductRepo) Update(_ context.Context, p *entity.Product) error {
	d, unlock := r.c.lock()
	defer unlock()
	cur, ok := d.products.rows[p.ID]
	if err := notFoundIfMissing(ok && visible(&cur.Audit, p.CompanyID)); err != nil {
		return err
	}
	if d.productNameTaken(p.CompanyID, p.Name, p.ID) {
		return domain.Duplicate("producto", "name", p.Name)
	}
	upd := *p
	upd.Stock = cur.Stock
	upd.CreatedAt, upd.CreatedBy = cur.CreatedAt, cur.CreatedBy
	d.products.rows[p.ID] = upd
	return nil
}

func (r *ProductRepo) AdjustStock(_ context.Context, companyID, id int64, delta int, actorID int64) (int, error) {
	d, unlock := r.c.lock()
	defer unlock()
	cur, ok := d.products.rows[id]
	if !ok || !visible(&cur.Audit, companyID) {
		return 0, domain.ErrNotFound
	}
	if cur.Stock+delta < 0 {
		return 0, domain.ErrInsufficientStock
	}
	cur.Stock += delta
	cur.Touch(actorID, now())
	d.products.rows[id] = cur
	return cur.Stock, nil
}

func (r *ProductRepo) SoftDelete(_ context.Context, companyID, id, actorID int64) error {
	d, unlock := r.c.lock()
	defer unlock()
	return softDelete(&d.products, companyID, id, actorID, func(x *entity.Product) *entity.Audit { return &x.Audit })
}

func (r *ProductRepo) Aggregate(_ context.Context, companyID int64) (*entity.ProductAggregate, error) {
	d, unlock := r.c.lock()
	defer unlock()
	a := &entity.ProductAggregate{InventoryValue: decimal.Zero, SumPrice: decimal.Zero}
	for _, p := range d.products.rows {
		if !visible(&p.Audit, companyID) {
			continue
		}
		a.TotalProducts++
		if p.LowStock() {
			a.LowStock++
		}
		a.InventoryValue = a.InventoryValue.Add(p.Cost.Mul(decimal.NewFromInt(int64(p.Stock))))
		a.SumPrice = a.SumPrice.Add(p.Price)
	}
	return a, nil
}
