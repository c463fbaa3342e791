package usecase

import (
	"context"
	"strings"
	"time"

	"github.com/jhoicas/Hoteleria-api/internal/application/dto"
	"github.com/jhoicas/Hoteleria-api/internal/application/ports"
	"github.com/jhoicas/Hoteleria-api/internal/domain"
	"github.com/jhoicas/Hoteleria-api/internal/domain/entity"
	"github.com/jhoicas/Hoteleria-api/internal/domain/lookup"
	"github.com/jhoicas/Hoteleria-api/internal/domain/repository"
)

// RoomUseCase habitaciones físicas del hotel.
type RoomUseCase struct {
	repo      repository.RoomRepository
	roomTypes repository.RoomTypeRepository
	cache     ports.StatsCache
}

// NewRoomUseCase construye el caso de uso.
func NewRoomUseCase(repo repository.RoomRepository, roomTypes repository.RoomTypeRepository, cache ports.StatsCache) *RoomUseCase {
	return &RoomUseCase{repo: repo, roomTypes: roomTypes, cache: cache}
}

// Create crea una habitación. El número es único en el tenant y el tipo debe existir.
func (uc *RoomUseCase) Create(ctx context.Context, companyID, actorID int64, in dto.CreateRoomRequest) (*dto.RoomResponse, error) {
	number, err := RequireText("number", in.Number)
	if err != nil {
		return nil, err
	}
	status := entity.RoomAvailable
	if strings.TrimSpace(in.Status) != "" {
		if status, err = lookup.ValidateRoomStatus(in.Status); err != nil {
			return nil, err
		}
	}
	if err := uc.ensureRoomType(ctx, companyID, in.RoomTypeID); err != nil {
		return nil, err
	}
	if err := uc.ensureUniqueNumber(ctx, companyID, 0, number); err != nil {
		return nil, err
	}
	room := &entity.Room{
		Number:     number,
		Floor:      in.Floor,
		RoomTypeID: in.RoomTypeID,
		Status:     status,
		Notes:      strings.TrimSpace(in.Notes),
		Audit:      entity.NewAudit(companyID, actorID, time.Now()),
	}
	if err := uc.repo.Create(ctx, room); err != nil {
		return nil, err
	}
	uc.invalidate(ctx, companyID)
	return uc.GetByID(ctx, companyID, room.ID)
}

// List lista habitaciones. Status filtra por estado y ParentID por tipo.
func (uc *RoomUseCase) List(ctx context.Context, companyID int64, p dto.ListParams) (*dto.ListResponse[dto.RoomResponse], error) {
	q, err := p.Normalize(repository.RoomSort)
	if err != nil {
		return nil, err
	}
	if q.Status != "" {
		if q.Status, err = lookup.ValidateRoomStatus(q.Status); err != nil {
			return nil, err
		}
	}
	list, total, err := uc.repo.List(ctx, companyID, q)
	if err != nil {
		return nil, err
	}
	resp := dto.NewListResponse(mapList(list, toRoomResponse), total, p)
	return &resp, nil
}

// GetByID obtiene una habitación del tenant.
func (uc *RoomUseCase) GetByID(ctx context.Context, companyID, id int64) (*dto.RoomResponse, error) {
	room, err := uc.get(ctx, companyID, id)
	if err != nil {
		return nil, err
	}
	return toRoomResponse(room), nil
}

// Update aplica los campos presentes.
func (uc *RoomUseCase) Update(ctx context.Context, companyID, actorID, id int64, in dto.UpdateRoomRequest) (*dto.RoomResponse, error) {
	room, err := uc.get(ctx, companyID, id)
	if err != nil {
		return nil, err
	}
	if in.Number != nil {
		number, err := RequireText("number", *in.Number)
		if err != nil {
			return nil, err
		}
		if number != room.Number {
			if err := uc.ensureUniqueNumber(ctx, companyID, id, number); err != nil {
				return nil, err
			}
		}
		room.Number = number
	}
	if in.Floor != nil {
		room.Floor = *in.Floor
	}
	if in.RoomTypeID != nil && *in.RoomTypeID != room.RoomTypeID {
		if err := uc.ensureRoomType(ctx, companyID, *in.RoomTypeID); err != nil {
			return nil, err
		}
		room.RoomTypeID = *in.RoomTypeID
	}
	if in.Status != nil {
		if room.Status, err = lookup.ValidateRoomStatus(*in.Status); err != nil {
			return nil, err
		}
	}
	applyOptional(&room.Notes, in.Notes)
	room.Touch(actorID, time.Now())
	if err := uc.repo.Update(ctx, room); err != nil {
		return nil, err
	}
	uc.invalidate(ctx, companyID)
	return uc.GetByID(ctx, companyID, id)
}

// UpdateStatus cambia solo el estado operativo (limpieza, ocupación, etc.).
func (uc *RoomUseCase) UpdateStatus(ctx context.Context, companyID, actorID, id int64, status string) (*dto.RoomResponse, error) {
	st, err := lookup.ValidateRoomStatus(status)
	if err != nil {
		return nil, err
	}
	if _, err := uc.get(ctx, companyID, id); err != nil {
		return nil, err
	}
	if err := uc.repo.UpdateStatus(ctx, companyID, id, st, actorID); err != nil {
		return nil, err
	}
	ports.InvalidateStats(ctx, uc.cache, companyID, ports.ScopeRooms)
	return uc.GetByID(ctx, companyID, id)
}

// Delete elimina lógicamente una habitación.
func (uc *RoomUseCase) Delete(ctx context.Context, companyID, actorID, id int64) error {
	if _, err := uc.get(ctx, companyID, id); err != nil {
		return err
	}
	if err := uc.repo.SoftDelete(ctx, companyID, id, actorID); err != nil {
		return err
	}
	uc.invalidate(ctx, companyID)
	return nil
}

// Stats habitaciones por estado y tasa de ocupación (0 si no hay habitaciones).
func (uc *RoomUseCase) Stats(ctx context.Context, companyID int64) (*dto.RoomStats, error) {
	out, err := ports.CachedStats(ctx, uc.cache, companyID, ports.ScopeRooms, func() (dto.RoomStats, error) {
		byStatus, err := uc.repo.CountByStatus(ctx, companyID)
		if err != nil {
			return dto.RoomStats{}, err
		}
		s := dto.RoomStats{ByStatus: make(map[string]int64)}
		for _, st := range lookup.Values(lookup.FieldRoomStatus) {
			s.ByStatus[st] = byStatus[st]
			s.Total += byStatus[st]
		}
		if s.Total > 0 {
			s.OccupancyRate = round2(float64(s.ByStatus[entity.RoomOccupied]) / float64(s.Total))
		}
		return s, nil
	})
	if err != nil {
		return nil, err
	}
	return &out, nil
}

func (uc *RoomUseCase) get(ctx context.Context, companyID, id int64) (*entity.Room, error) {
	room, err := uc.repo.GetByID(ctx, companyID, id)
	if err != nil {
		return nil, err
	}
	if room == nil {
		return nil, domain.NotFound("habitación")
	}
	return room, nil
}

func (uc *RoomUseCase) ensureRoomType(ctx context.Context, companyID, roomTypeID int64) error {
	if roomTypeID <= 0 {
		return domain.Invalid("room_type_id es requerido")
	}
	rt, err := uc.roomTypes.GetByID(ctx, companyID, roomTypeID)
	if err != nil {
		return err
	}
	if rt == nil {
		return domain.Invalid("room_type_id %d no existe", roomTypeID)
	}
	return nil
}

func (uc *RoomUseCase) ensureUniqueNumber(ctx context.Context, companyID, selfID int64, number string) error {
	existing, err := uc.repo.GetByNumber(ctx, companyID, number)
	if err != nil {
		return err
	}
	if existing != nil && existing.ID != selfID {
		return domain.Duplicate("habitación", "number", number)
	}
	return nil
}

func (uc *RoomUseCase) invalidate(ctx context.Context, companyID int64) {
	ports.InvalidateStats(ctx, uc.cache, companyID, ports.ScopeRooms, ports.ScopeRoomTypes)
}

func toRoomResponse(r *entity.Room) *dto.RoomResponse {
	return &dto.RoomResponse{
		ID:            r.ID,
		Number:        r.Number,
		Floor:         r.Floor,
		RoomTypeID:    r.RoomTypeID,
		RoomTypeName:  r.RoomTypeName,
		Status:        r.Status,
		Notes:         r.Notes,
		AuditResponse: ToAudit(r.Audit),
	}
}
