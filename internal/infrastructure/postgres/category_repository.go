package postgres

import (
	"context"
	"fmt"

	"github.com/jhoicas/Hoteleria-api/internal/domain"
	"github.com/jhoicas/Hoteleria-api/internal/domain/entity"
	"github.com/jhoicas/Hoteleria-api/internal/domain/repository"
)

var _ repository.CategoryRepository = (*CategoryRepo)(nil)

// CategoryRepo implementación del puerto CategoryRepository sobre PostgreSQL.
type CategoryRepo struct {
	q Querier
}

// NewCategoryRepository construye el adaptador. Pasar pool o tx (Querier).
func NewCategoryRepository(q Querier) *CategoryRepo {
	return &CategoryRepo{q: q}
}

var categorySelect = `
	SELECT c.id, c.name, c.description,
		(SELECT COUNT(*) FROM products p WHERE p.category_id = c.id AND ` + activeScope("p") + `),
		` + auditColumns("c") + `
	FROM categories c ` + creatorJoin("c")

func scanCategory(row scanner) (*entity.Category, error) {
	var c entity.Category
	dest := append([]any{&c.ID, &c.Name, &c.Description, &c.ProductCount}, auditDest(&c.Audit)...)
	if err := row.Scan(dest...); err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *CategoryRepo) Create(ctx context.Context, c *entity.Category) error {
	query := `
		INSERT INTO categories (company_id, name, description, created_by, updated_by, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id`
	err := r.q.QueryRow(ctx, query,
		c.CompanyID, c.Name, c.Description, c.CreatedBy, c.UpdatedBy, c.CreatedAt, c.UpdatedAt,
	).Scan(&c.ID)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.Duplicate("categoría", "name", c.Name)
		}
		return fmt.Errorf("insert category: %w", err)
	}
	return nil
}

func (r *CategoryRepo) getOne(ctx context.Context, where string, args ...any) (*entity.Category, error) {
	c, err := scanCategory(r.q.QueryRow(ctx, categorySelect+" WHERE "+where+" AND "+activeScope("c"), args...))
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get category: %w", err)
	}
	return c, nil
}

func (r *CategoryRepo) GetByID(ctx context.Context, companyID, id int64) (*entity.Category, error) {
	return r.getOne(ctx, "c.id = $1 AND c.company_id = $2", id, companyID)
}

func (r *CategoryRepo) GetByName(ctx context.Context, companyID int64, name string) (*entity.Category, error) {
	return r.getOne(ctx, "c.company_id = $1 AND lower(c.name) = lower($2)", companyID, name)
}

func (r *CategoryRepo) List(ctx context.Context, companyID int64, q repository.ListQuery) ([]*entity.Category, int64, error) {
	b := newListBuilder("c", companyID)
	b.search(q.Search, "c.name", "c.description")
	total, err := b.count(ctx, r.q, "categories c")
	if err != nil {
		return nil, 0, fmt.Errorf("count categories: %w", err)
	}
	page, args := b.pageSQL(q, repository.CategorySort)
	rows, err := r.q.Query(ctx, categorySelect+b.whereSQL()+page, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list categories: %w", err)
	}
	defer rows.Close()
	var list []*entity.Category
	for rows.Next() {
		c, err := scanCategory(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("scan category: %w", err)
		}
		list = append(list, c)
	}
	return list, total, rows.Err()
}

func (r *CategoryRepo) Update(ctx context.Context, c *entity.Category) error {
	cmd, err := r.q.Exec(ctx, `
		UPDATE categories SET name = $3, description = $4, updated_by = $5, updated_at = $6
		WHERE id = $1 AND company_id = $2 AND deleted_at IS NULL`,
		c.ID, c.CompanyID, c.Name, c.Description, c.UpdatedBy, c.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.Duplicate("categoría", "name", c.Name)
		}
		return fmt.Errorf("update category: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *CategoryRepo) SoftDelete(ctx context.Context, companyID, id, actorID int64) error {
	return softDelete(ctx, r.q, "categories", companyID, id, actorID)
}

// CountProducts cuenta productos activos de la categoría.
func (r *CategoryRepo) CountProducts(ctx context.Context, companyID, categoryID int64) (int64, error) {
	return countActive(ctx, r.q, "products", "category_id", companyID, categoryID, "")
}

func (r *CategoryRepo) Aggregate(ctx context.Context, companyID int64) (*entity.CategoryAggregate, error) {
	query := `
		SELECT COUNT(*),
			(SELECT COUNT(*) FROM products p WHERE p.company_id = $1 AND p.category_id IS NOT NULL AND ` + activeScope("p") + `)
		FROM categories c WHERE c.company_id = $1 AND ` + activeScope("c")
	var a entity.CategoryAggregate
	if err := r.q.QueryRow(ctx, query, companyID).Scan(&a.TotalCategories, &a.TotalProducts); err != nil {
		return nil, fmt.Errorf("aggregate categories: %w", err)
	}
	return &a, nil
}
