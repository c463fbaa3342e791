package postgres

import (
	"context"
	"fmt"

	"github.com/jhoicas/Hoteleria-api/internal/domain"
	"github.com/jhoicas/Hoteleria-api/internal/domain/entity"
	"github.com/jhoicas/Hoteleria-api/internal/domain/repository"
)

var _ repository.ProductRepository = (*ProductRepo)(nil)

// ProductRepo implementación del puerto ProductRepository sobre PostgreSQL (usable con pool o tx).
type ProductRepo struct {
	q Querier
}

// NewProductRepository construye el adaptador de persistencia para productos. Pasar pool o tx (Querier).
func NewProductRepository(q Querier) *ProductRepo {
	return &ProductRepo{q: q}
}

var productSelect = `
	SELECT p.id, p.name, p.sku, p.description, p.category_id, COALESCE(c.name, ''), p.price, p.cost,
		p.stock, p.min_stock, p.unit, ` + auditColumns("p") + `
	FROM products p
	LEFT JOIN categories c ON c.id = p.category_id ` + creatorJoin("p")

func scanProduct(row scanner) (*entity.Product, error) {
	var p entity.Product
	dest := append([]any{&p.ID, &p.Name, &p.SKU, &p.Description, &p.CategoryID, &p.CategoryName, &p.Price, &p.Cost,
		&p.Stock, &p.MinStock, &p.Unit}, auditDest(&p.Audit)...)
	if err := row.Scan(dest...); err != nil {
		return nil, err
	}
	return &p, nil
}

// Create persiste un nuevo producto con su stock inicial.
func (r *ProductRepo) Create(ctx context.Context, p *entity.Product) error {
	query := `
		INSERT INTO products (company_id, name, sku, description, category_id, price, cost, stock, min_stock, unit,
			created_by, updated_by, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
		RETURNING id`
	err := r.q.QueryRow(ctx, query,
		p.CompanyID, p.Name, p.SKU, p.Description, nullIfZero(p.CategoryID), p.Price, p.Cost, p.Stock, p.MinStock, p.Unit,
		p.CreatedBy, p.UpdatedBy, p.CreatedAt, p.UpdatedAt,
	).Scan(&p.ID)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.Duplicate("producto", "name", p.Name)
		}
		return fmt.Errorf("insert product: %w", err)
	}
	return nil
}

func (r *ProductRepo) getOne(ctx context.Context, where string, args ...any) (*entity.Product, error) {
	p, err := scanProduct(r.q.QueryRow(ctx, productSelect+" WHERE "+where+" AND "+activeScope("p"), args...))
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get product: %w", err)
	}
	return p, nil
}

// GetByID obtiene un producto activo del tenant.
func (r *ProductRepo) GetByID(ctx context.Context, companyID, id int64) (*entity.Product, error) {
	return r.getOne(ctx, "p.id = $1 AND p.company_id = $2", id, companyID)
}

// GetByName busca por nombre sin distinguir mayúsculas.
func (r *ProductRepo) GetByName(ctx context.Context, companyID int64, name string) (*entity.Product, error) {
	return r.getOne(ctx, "p.company_id = $1 AND lower(p.name) = lower($2)", companyID, name)
}

// List lista productos; ParentID filtra por categoría y Status "low_stock" por stock bajo.
func (r *ProductRepo) List(ctx context.Context, companyID int64, q repository.ListQuery) ([]*entity.Product, int64, error) {
	b := newListBuilder("p", companyID)
	b.search(q.Search, "p.name", "p.sku", "p.description")
	if q.ParentID > 0 {
		b.add("p.category_id = ?", q.ParentID)
	}
	if q.Status == repository.StatusFilterLowStock {
		b.where = append(b.where, "p.stock <= p.min_stock")
	}
	total, err := b.count(ctx, r.q, "products p")
	if err != nil {
		return nil, 0, fmt.Errorf("count products: %w", err)
	}
	page, args := b.pageSQL(q, repository.ProductSort)
	rows, err := r.q.Query(ctx, productSelect+b.whereSQL()+page, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list products: %w", err)
	}
	defer rows.Close()
	var list []*entity.Product
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("scan product: %w", err)
		}
		list = append(list, p)
	}
	return list, total, rows.Err()
}

// Update actualiza un producto existente. No modifica stock (se maneja con AdjustStock).
func (r *ProductRepo) Update(ctx context.Context, p *entity.Product) error {
	query := `
		UPDATE products SET name = $3, sku = $4, description = $5, category_id = $6, price = $7, cost = $8,
			min_stock = $9, unit = $10, updated_by = $11, updated_at = $12
		WHERE id = $1 AND company_id = $2 AND deleted_at IS NULL`
	cmd, err := r.q.Exec(ctx, query,
		p.ID, p.CompanyID, p.Name, p.SKU, p.Description, nullIfZero(p.CategoryID), p.Price, p.Cost,
		p.MinStock, p.Unit, p.UpdatedBy, p.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.Duplicate("producto", "name", p.Name)
		}
		return fmt.Errorf("update product: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// AdjustStock aplica el delta en una sola sentencia condicionada a que el resultado no sea negativo.
// Dos ajustes concurrentes nunca dejan stock < 0: la fila queda bloqueada durante el UPDATE.
func (r *ProductRepo) AdjustStock(ctx context.Context, companyID, id int64, delta int, actorID int64) (int, error) {
	var stock int
	err := r.q.QueryRow(ctx, `
		UPDATE products SET stock = stock + $3, updated_by = $4, updated_at = now()
		WHERE id = $1 AND company_id = $2 AND deleted_at IS NULL AND stock + $3 >= 0
		RETURNING stock`,
		id, companyID, delta, actorID,
	).Scan(&stock)
	if err == nil {
		return stock, nil
	}
	if isCheckViolation(err) {
		return 0, domain.ErrInsufficientStock
	}
	if !isNoRows(err) {
		return 0, fmt.Errorf("adjust stock: %w", err)
	}
	var exists bool
	if err := r.q.QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM products p WHERE p.id = $1 AND p.company_id = $2 AND `+activeScope("p")+`)`,
		id, companyID,
	).Scan(&exists); err != nil {
		return 0, fmt.Errorf("adjust stock: %w", err)
	}
	if !exists {
		return 0, domain.ErrNotFound
	}
	return 0, domain.ErrInsufficientStock
}

// SoftDelete marca el producto como eliminado.
func (r *ProductRepo) SoftDelete(ctx context.Context, companyID, id, actorID int64) error {
	return softDelete(ctx, r.q, "products", companyID, id, actorID)
}

// Aggregate totales de inventario: productos, stock bajo y valorización a costo.
func (r *ProductRepo) Aggregate(ctx context.Context, companyID int64) (*entity.ProductAggregate, error) {
	query := `
		SELECT COUNT(*),
			COUNT(*) FILTER (WHERE p.stock <= p.min_stock),
			COALESCE(SUM(p.cost * p.stock), 0),
			COALESCE(SUM(p.price), 0)
		FROM products p WHERE p.company_id = $1 AND ` + activeScope("p")
	var a entity.ProductAggregate
	if err := r.q.QueryRow(ctx, query, companyID).Scan(&a.TotalProducts, &a.LowStock, &a.InventoryValue, &a.SumPrice); err != nil {
		return nil, fmt.Errorf("aggregate products: %w", err)
	}
	return &a, nil
}
