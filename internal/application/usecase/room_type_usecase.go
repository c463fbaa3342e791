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
	"github.com/jhoicas/Hoteleria-api/internal/domain/repository"
)

// RoomTypeUseCase catálogo de tipos de habitación del tenant.
type RoomTypeUseCase struct {
	repo  repository.RoomTypeRepository
	cache ports.StatsCache
}

// NewRoomTypeUseCase construye el caso de uso. cache puede ser nil.
func NewRoomTypeUseCase(repo repository.RoomTypeRepository, cache ports.StatsCache) *RoomTypeUseCase {
	return &RoomTypeUseCase{repo: repo, cache: cache}
}

// Create crea un tipo de habitación. El nombre es único (sin distinguir mayúsculas) dentro del tenant.
func (uc *RoomTypeUseCase) Create(ctx context.Context, companyID, actorID int64, in dto.CreateRoomTypeRequest) (*dto.RoomTypeResponse, error) {
	name, err := RequireText("name", in.Name)
	if err != nil {
		return nil, err
	}
	if err := validateRoomTypeNumbers(in.BasePrice, in.MaxOccupancy); err != nil {
		return nil, err
	}
	if err := uc.ensureUniqueName(ctx, companyID, 0, name); err != nil {
		return nil, err
	}
	rt := &entity.RoomType{
		Name:         name,
		Description:  strings.TrimSpace(in.Description),
		BasePrice:    in.BasePrice,
		MaxOccupancy: in.MaxOccupancy,
		Amenities:    cleanList(in.Amenities),
		Audit:        entity.NewAudit(companyID, actorID, time.Now()),
	}
	if err := uc.repo.Create(ctx, rt); err != nil {
		return nil, err
	}
	ports.InvalidateStats(ctx, uc.cache, companyID, ports.ScopeRoomTypes)
	return uc.GetByID(ctx, companyID, rt.ID)
}

// List lista tipos de habitación activos.
func (uc *RoomTypeUseCase) List(ctx context.Context, companyID int64, p dto.ListParams) (*dto.ListResponse[dto.RoomTypeResponse], error) {
	q, err := p.Normalize(repository.RoomTypeSort)
	if err != nil {
		return nil, err
	}
	list, total, err := uc.repo.List(ctx, companyID, q)
	if err != nil {
		return nil, err
	}
	resp := dto.NewListResponse(mapList(list, toRoomTypeResponse), total, p)
	return &resp, nil
}

// GetByID obtiene un tipo de habitación del tenant.
func (uc *RoomTypeUseCase) GetByID(ctx context.Context, companyID, id int64) (*dto.RoomTypeResponse, error) {
	rt, err := uc.get(ctx, companyID, id)
	if err != nil {
		return nil, err
	}
	return toRoomTypeResponse(rt), nil
}

// Update aplica solo los campos presentes; revalida el nombre si cambia.
func (uc *RoomTypeUseCase) Update(ctx context.Context, companyID, actorID, id int64, in dto.UpdateRoomTypeRequest) (*dto.RoomTypeResponse, error) {
	rt, err := uc.get(ctx, companyID, id)
	if err != nil {
		return nil, err
	}
	if in.Name != nil {
		name, err := RequireText("name", *in.Name)
		if err != nil {
			return nil, err
		}
		if !strings.EqualFold(name, rt.Name) {
			if err := uc.ensureUniqueName(ctx, companyID, id, name); err != nil {
				return nil, err
			}
		}
		rt.Name = name
	}
	applyOptional(&rt.Description, in.Description)
	if in.BasePrice != nil {
		rt.BasePrice = *in.BasePrice
	}
	if in.MaxOccupancy != nil {
		rt.MaxOccupancy = *in.MaxOccupancy
	}
	if in.Amenities != nil {
		rt.Amenities = cleanList(in.Amenities)
	}
	if err := validateRoomTypeNumbers(rt.BasePrice, rt.MaxOccupancy); err != nil {
		return nil, err
	}
	rt.Touch(actorID, time.Now())
	if err := uc.repo.Update(ctx, rt); err != nil {
		return nil, err
	}
	ports.InvalidateStats(ctx, uc.cache, companyID, ports.ScopeRoomTypes)
	return uc.GetByID(ctx, companyID, id)
}

// Delete elimina lógicamente el tipo. Se rechaza mientras tenga habitaciones activas.
func (uc *RoomTypeUseCase) Delete(ctx context.Context, companyID, actorID, id int64) error {
	if _, err := uc.get(ctx, companyID, id); err != nil {
		return err
	}
	n, err := uc.repo.CountRooms(ctx, companyID, id)
	if err != nil {
		return err
	}
	if n > 0 {
		return domain.Blocked("el tipo de habitación", n, "habitaciones")
	}
	if err := uc.repo.SoftDelete(ctx, companyID, id, actorID); err != nil {
		return err
	}
	ports.InvalidateStats(ctx, uc.cache, companyID, ports.ScopeRoomTypes, ports.ScopeRooms)
	return nil
}

// Stats agregados del catálogo; los promedios valen 0 si no hay tipos.
func (uc *RoomTypeUseCase) Stats(ctx context.Context, companyID int64) (*dto.RoomTypeStats, error) {
	out, err := ports.CachedStats(ctx, uc.cache, companyID, ports.ScopeRoomTypes, func() (dto.RoomTypeStats, error) {
		agg, err := uc.repo.Aggregate(ctx, companyID)
		if err != nil {
			return dto.RoomTypeStats{}, err
		}
		s := dto.RoomTypeStats{
			TotalTypes:   agg.TotalTypes,
			TotalRooms:   agg.TotalRooms,
			AvgBasePrice: decimal.Zero,
		}
		if agg.TotalTypes > 0 {
			s.AvgRoomsPerType = round2(float64(agg.TotalRooms) / float64(agg.TotalTypes))
			s.AvgBasePrice = agg.SumBasePrice.Div(decimal.NewFromInt(agg.TotalTypes)).Round(2)
		}
		return s, nil
	})
	if err != nil {
		return nil, err
	}
	return &out, nil
}

func (uc *RoomTypeUseCase) get(ctx context.Context, companyID, id int64) (*entity.RoomType, error) {
	rt, err := uc.repo.GetByID(ctx, companyID, id)
	if err != nil {
		return nil, err
	}
	if rt == nil {
		return nil, domain.NotFound("tipo de habitación")
	}
	return rt, nil
}

func (uc *RoomTypeUseCase) ensureUniqueName(ctx context.Context, companyID, selfID int64, name string) error {
	existing, err := uc.repo.GetByName(ctx, companyID, name)
	if err != nil {
		return err
	}
	if existing != nil && existing.ID != selfID {
		return domain.Duplicate("tipo de habitación", "name", name)
	}
	return nil
}

func validateRoomTypeNumbers(price decimal.Decimal, occupancy int) error {
	if price.IsNegative() {
		return domain.Invalid("base_price no puede ser negativo")
	}
	if occupancy <= 0 {
		return domain.Invalid("max_occupancy debe ser mayor que 0")
	}
	return nil
}

func toRoomTypeResponse(rt *entity.RoomType) *dto.RoomTypeResponse {
	amenities := rt.Amenities
	if amenities == nil {
		amenities = []string{}
	}
	return &dto.RoomTypeResponse{
		ID:            rt.ID,
		Name:          rt.Name,
		Description:   rt.Description,
		BasePrice:     rt.BasePrice,
		MaxOccupancy:  rt.MaxOccupancy,
		Amenities:     amenities,
		RoomCount:     rt.RoomCount,
		AuditResponse: ToAudit(rt.Audit),
	}
}

// cleanList recorta y descarta elementos vacíos.
func cleanList(in []string) []string {
	out := make([]string, 0, len(in))
	for _, s := range in {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	return out
}

func round2(f float64) float64 {
	v, _ := decimal.NewFromFloat(f).Round(2).Float64()
	return v
}
