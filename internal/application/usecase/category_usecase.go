package usecase

import (
	"context"
	"strings"
	"time"

	"github.com/jhoicas/Hoteleria-api/internal/application/dto"
	"github.com/jhoicas/Hoteleria-api/internal/application/ports"
	"github.com/jhoicas/Hoteleria-api/internal/domain"
	"github.com/jhoicas/Hoteleria-api/internal/domain/entity"
	"github.com/jhoicas/Hoteleria-api/internal/domain/repository"
)

// CategoryUseCase categorías del inventario.
type CategoryUseCase struct {
	repo  repository.CategoryRepository
	cache ports.StatsCache
}

// NewCategoryUseCase construye el caso de uso.
func NewCategoryUseCase(repo repository.CategoryRepository, cache ports.StatsCache) *CategoryUseCase {
	return &CategoryUseCase{repo: repo, cache: cache}
}

// Create crea una categoría con nombre único en el tenant.
func (uc *CategoryUseCase) Create(ctx context.Context, companyID, actorID int64, in dto.CreateCategoryRequest) (*dto.CategoryResponse, error) {
	name, err := RequireText("name", in.Name)
	if err != nil {
		return nil, err
	}
	if err := uc.ensureUniqueName(ctx, companyID, 0, name); err != nil {
		return nil, err
	}
	cat := &entity.Category{
		Name:        name,
		Description: strings.TrimSpace(in.Description),
		Audit:       entity.NewAudit(companyID, actorID, time.Now()),
	}
	if err := uc.repo.Create(ctx, cat); err != nil {
		return nil, err
	}
	ports.InvalidateStats(ctx, uc.cache, companyID, ports.ScopeCategories)
	return uc.GetByID(ctx, companyID, cat.ID)
}

// List lista categorías activas.
func (uc *CategoryUseCase) List(ctx context.Context, companyID int64, p dto.ListParams) (*dto.ListResponse[dto.CategoryResponse], error) {
	q, err := p.Normalize(repository.CategorySort)
	if err != nil {
		return nil, err
	}
	list, total, err := uc.repo.List(ctx, companyID, q)
	if err != nil {
		return nil, err
	}
	resp := dto.NewListResponse(mapList(list, toCategoryResponse), total, p)
	return &resp, nil
}

// GetByID obtiene una categoría.
func (uc *CategoryUseCase) GetByID(ctx context.Context, companyID, id int64) (*dto.CategoryResponse, error) {
	cat, err := uc.get(ctx, companyID, id)
	if err != nil {
		return nil, err
	}
	return toCategoryResponse(cat), nil
}

// Update aplica los campos presentes.
func (uc *CategoryUseCase) Update(ctx context.Context, companyID, actorID, id int64, in dto.UpdateCategoryRequest) (*dto.CategoryResponse, error) {
	cat, err := uc.get(ctx, companyID, id)
	if err != nil {
		return nil, err
	}
	if in.Name != nil {
		name, err := RequireText("name", *in.Name)
		if err != nil {
			return nil, err
		}
		if !strings.EqualFold(name, cat.Name) {
			if err := uc.ensureUniqueName(ctx, companyID, id, name); err != nil {
				return nil, err
			}
		}
		cat.Name = name
	}
	applyOptional(&cat.Description, in.Description)
	cat.Touch(actorID, time.Now())
	if err := uc.repo.Update(ctx, cat); err != nil {
		return nil, err
	}
	return uc.GetByID(ctx, companyID, id)
}

// Delete elimina lógicamente la categoría si no tiene productos activos.
func (uc *CategoryUseCase) Delete(ctx context.Context, companyID, actorID, id int64) error {
	if _, err := uc.get(ctx, companyID, id); err != nil {
		return err
	}
	n, err := uc.repo.CountProducts(ctx, companyID, id)
	if err != nil {
		return err
	}
	if n > 0 {
		return domain.Blocked("la categoría", n, "productos")
	}
	if err := uc.repo.SoftDelete(ctx, companyID, id, actorID); err != nil {
		return err
	}
	ports.InvalidateStats(ctx, uc.cache, companyID, ports.ScopeCategories)
	return nil
}

// Stats agregados de categorías.
func (uc *CategoryUseCase) Stats(ctx context.Context, companyID int64) (*dto.CategoryStats, error) {
	out, err := ports.CachedStats(ctx, uc.cache, companyID, ports.ScopeCategories, func() (dto.CategoryStats, error) {
		agg, err := uc.repo.Aggregate(ctx, companyID)
		if err != nil {
			return dto.CategoryStats{}, err
		}
		s := dto.CategoryStats{TotalCategories: agg.TotalCategories, TotalProducts: agg.TotalProducts}
		if agg.TotalCategories > 0 {
			s.AvgProductsPerCategory = round2(float64(agg.TotalProducts) / float64(agg.TotalCategories))
		}
		return s, nil
	})
	if err != nil {
		return nil, err
	}
	return &out, nil
}

func (uc *CategoryUseCase) get(ctx context.Context, companyID, id int64) (*entity.Category, error) {
	cat, err := uc.repo.GetByID(ctx, companyID, id)
	if err != nil {
		return nil, err
	}
	if cat == nil {
		return nil, domain.NotFound("categoría")
	}
	return cat, nil
}

func (uc *CategoryUseCase) ensureUniqueName(ctx context.Context, companyID, selfID int64, name string) error {
	existing, err := uc.repo.GetByName(ctx, companyID, name)
	if err != nil {
		return err
	}
	if existing != nil && existing.ID != selfID {
		return domain.Duplicate("categoría", "name", name)
	}
	return nil
}

func toCategoryResponse(c *entity.Category) *dto.CategoryResponse {
	return &dto.CategoryResponse{
		ID:            c.ID,
		Name:          c.Name,
		Description:   c.Description,
		ProductCount:  c.ProductCount,
		AuditResponse: ToAudit(c.Audit),
	}
}
