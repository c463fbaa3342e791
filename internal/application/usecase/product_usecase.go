package usecase

import (
	"context"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/Hoteleria-api/internal/application/dto"
	"github.com/jhoicas/Hoteleria-api/internal/application/ports"
	"github.com/jhoicas/Hoteleria-api/internal/domain"
	"github.com/jhoicas/Hoteleria-api/internal/domain/entity"
	"github.com/jhoicas/Hoteleria-api/internal/domain/lookup"
	"github.com/jhoicas/Hoteleria-api/internal/domain/repository"
)

// ProductUseCase casos de uso CRUD para productos. Stock se modifica solo con AdjustStock.
type ProductUseCase struct {
	repo       repository.ProductRepository
	categories repository.CategoryRepository
	cache      ports.StatsCache
}

// NewProductUseCase construye el caso de uso.
func NewProductUseCase(repo repository.ProductRepository, categories repository.CategoryRepository, cache ports.StatsCache) *ProductUseCase {
	return &ProductUseCase{repo: repo, categories: categories, cache: cache}
}

// Create crea un nuevo producto con nombre único en el tenant.
func (uc *ProductUseCase) Create(ctx context.Context, companyID, actorID int64, in dto.CreateProductRequest) (*dto.ProductResponse, error) {
	name, err := RequireText("name", in.Name)
	if err != nil {
		return nil, err
	}
	unit := "unit"
	if strings.TrimSpace(in.Unit) != "" {
		if unit, err = lookup.ValidateProductUnit(in.Unit); err != nil {
			return nil, err
		}
	}
	if in.Stock < 0 || in.MinStock < 0 {
		return nil, domain.Invalid("stock y min_stock no pueden ser negativos")
	}
	if err := validateMoney(in.Price, in.Cost); err != nil {
		return nil, err
	}
	if err := uc.ensureCategory(ctx, companyID, in.CategoryID); err != nil {
		return nil, err
	}
	if err := uc.ensureUniqueName(ctx, companyID, 0, name); err != nil {
		return nil, err
	}
	p := &entity.Product{
		Name:        name,
		SKU:         strings.TrimSpace(in.SKU),
		Description: strings.TrimSpace(in.Description),
		CategoryID:  in.CategoryID,
		Price:       in.Price,
		Cost:        in.Cost,
		Stock:       in.Stock,
		MinStock:    in.MinStock,
		Unit:        unit,
		Audit:       entity.NewAudit(companyID, actorID, time.Now()),
	}
	if err := uc.repo.Create(ctx, p); err != nil {
		return nil, err
	}
	uc.invalidate(ctx, companyID)
	return uc.GetByID(ctx, companyID, p.ID)
}

// List lista productos. ParentID filtra por categoría y status=low_stock por stock bajo.
func (uc *ProductUseCase) List(ctx context.Context, companyID int64, p dto.ListParams) (*dto.ListResponse[dto.ProductResponse], error) {
	q, err := p.Normalize(repository.ProductSort)
	if err != nil {
		return nil, err
	}
	if q.Status != "" && q.Status != repository.StatusFilterLowStock {
		return nil, domain.Invalid("status solo admite %q", repository.StatusFilterLowStock)
	}
	list, total, err := uc.repo.List(ctx, companyID, q)
	if err != nil {
		return nil, err
	}
	resp := dto.NewListResponse(mapList(list, toProductResponse), total, p)
	return &resp, nil
}

// GetByID obtiene un producto.
func (uc *ProductUseCase) GetByID(ctx context.Context, companyID, id int64) (*dto.ProductResponse, error) {
	p, err := uc.get(ctx, companyID, id)
	if err != nil {
		return nil, err
	}
	return toProductResponse(p), nil
}

// Update actualiza un producto. No permite modificar Stock.
func (uc *ProductUseCase) Update(ctx context.Context, companyID, actorID, id int64, in dto.UpdateProductRequest) (*dto.ProductResponse, error) {
	p, err := uc.get(ctx, companyID, id)
	if err != nil {
		return nil, err
	}
	if in.Name != nil {
		name, err := RequireText("name", *in.Name)
		if err != nil {
			return nil, err
		}
		if !strings.EqualFold(name, p.Name) {
			if err := uc.ensureUniqueName(ctx, companyID, id, name); err != nil {
				return nil, err
			}
		}
		p.Name = name
	}
	applyOptional(&p.SKU, in.SKU)
	applyOptional(&p.Description, in.Description)
	if in.CategoryID != nil {
		cat := in.CategoryID
		if *cat == 0 {
			cat = nil
		}
		if err := uc.ensureCategory(ctx, companyID, cat); err != nil {
			return nil, err
		}
		p.CategoryID = cat
	}
	if in.Price != nil {
		p.Price = *in.Price
	}
	if in.Cost != nil {
		p.Cost = *in.Cost
	}
	if err := validateMoney(p.Price, p.Cost); err != nil {
		return nil, err
	}
	if in.MinStock != nil {
		if *in.MinStock < 0 {
			return nil, domain.Invalid("min_stock no puede ser negativo")
		}
		p.MinStock = *in.MinStock
	}
	if in.Unit != nil {
		if p.Unit, err = lookup.ValidateProductUnit(*in.Unit); err != nil {
			return nil, err
		}
	}
	p.Touch(actorID, time.Now())
	if err := uc.repo.Update(ctx, p); err != nil {
		return nil, err
	}
	uc.invalidate(ctx, companyID)
	return uc.GetByID(ctx, companyID, id)
}

// AdjustStock suma delta al stock en una sola operación atómica.
// Devuelve domain.ErrInsufficientStock si el resultado sería negativo.
func (uc *ProductUseCase) AdjustStock(ctx context.Context, companyID, actorID, id int64, delta int) (*dto.ProductResponse, error) {
	if delta == 0 {
		return nil, domain.Invalid("delta debe ser distinto de 0")
	}
	if _, err := uc.get(ctx, companyID, id); err != nil {
		return nil, err
	}
	if _, err := uc.repo.AdjustStock(ctx, companyID, id, delta, actorID); err != nil {
		return nil, err
	}
	ports.InvalidateStats(ctx, uc.cache, companyID, ports.ScopeProducts)
	return uc.GetByID(ctx, companyID, id)
}

// Delete elimina lógicamente el producto.
func (uc *ProductUseCase) Delete(ctx context.Context, companyID, actorID, id int64) error {
	if _, err := uc.get(ctx, companyID, id); err != nil {
		return err
	}
	if err := uc.repo.SoftDelete(ctx, companyID, id, actorID); err != nil {
		return err
	}
	uc.invalidate(ctx, companyID)
	return nil
}

// Stats agregados del inventario.
func (uc *ProductUseCase) Stats(ctx context.Context, companyID int64) (*dto.ProductStats, error) {
	out, err := ports.CachedStats(ctx, uc.cache, companyID, ports.ScopeProducts, func() (dto.ProductStats, error) {
		agg, err := uc.repo.Aggregate(ctx, companyID)
		if err != nil {
			return dto.ProductStats{}, err
		}
		s := dto.ProductStats{
			TotalProducts:  agg.TotalProducts,
			LowStock:       agg.LowStock,
			InventoryValue: agg.InventoryValue.Round(2),
			AvgPrice:       decimal.Zero,
		}
		if agg.TotalProducts > 0 {
			s.AvgPrice = agg.SumPrice.Div(decimal.NewFromInt(agg.TotalProducts)).Round(2)
		}
		return s, nil
	})
	if err != nil {
		return nil, err
	}
	return &out, nil
}

func (uc *ProductUseCase) get(ctx context.Context, companyID, id int64) (*entity.Product, error) {
	p, err := uc.repo.GetByID(ctx, companyID, id)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, domain.NotFound("producto")
	}
	return p, nil
}

func (uc *ProductUseCase) ensureCategory(ctx context.Context, companyID int64, categoryID *int64) error {
	if categoryID == nil {
		return nil
	}
	cat, err := uc.categories.GetByID(ctx, companyID, *categoryID)
	if err != nil {
		return err
	}
	if cat == nil {
		return domain.Invalid("category_id %d no existe", *categoryID)
	}
	return nil
}

func (uc *ProductUseCase) ensureUniqueName(ctx context.Context, companyID, selfID int64, name string) error {
	existing, err := uc.repo.GetByName(ctx, companyID, name)
	if err != nil {
		return err
	}
	if existing != nil && existing.ID != selfID {
		return domain.Duplicate("producto", "name", name)
	}
	return nil
}

func (uc *ProductUseCase) invalidate(ctx context.Context, companyID int64) {
	ports.InvalidateStats(ctx, uc.cache, companyID, ports.ScopeProducts, ports.ScopeCategories)
}

func validateMoney(price, cost decimal.Decimal) error {
	if price.IsNegative() || cost.IsNegative() {
		return domain.Invalid("price y cost no pueden ser negativos")
	}
	return nil
}

func toProductResponse(p *entity.Product) *dto.ProductResponse {
	return &dto.ProductResponse{
		ID:            p.ID,
		Name:          p.Name,
		SKU:           p.SKU,
		Description:   p.Description,
		CategoryID:    p.CategoryID,
		CategoryName:  p.CategoryName,
		Price:         p.Price,
		Cost:          p.Cost,
		Stock:         p.Stock,
		MinStock:      p.MinStock,
		Unit:          p.Unit,
		LowStock:      p.LowStock(),
		AuditResponse: ToAudit(p.Audit),
	}
}
