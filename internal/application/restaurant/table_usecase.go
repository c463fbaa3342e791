// Package restaurant casos de uso del punto de venta: mesas, órdenes, pagos y comprobantes.
package restaurant

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/jhoicas/Hoteleria-api/internal/application/dto"
	"github.com/jhoicas/Hoteleria-api/internal/application/usecase"
	"github.com/jhoicas/Hoteleria-api/internal/domain"
	"github.com/jhoicas/Hoteleria-api/internal/domain/entity"
	"github.com/jhoicas/Hoteleria-api/internal/domain/lookup"
	"github.com/jhoicas/Hoteleria-api/internal/domain/repository"
)

// TableUseCase mesas del restaurante.
type TableUseCase struct {
	repo   repository.RestaurantTableRepository
	orders repository.RestaurantOrderRepository
}

// NewTableUseCase construye el caso de uso.
func NewTableUseCase(repo repository.RestaurantTableRepository, orders repository.RestaurantOrderRepository) *TableUseCase {
	return &TableUseCase{repo: repo, orders: orders}
}

// Create crea una mesa con número único en el tenant.
func (uc *TableUseCase) Create(ctx context.Context, companyID, actorID int64, in dto.CreateTableRequest) (*dto.TableResponse, error) {
	number, err := usecase.RequireText("number", in.Number)
	if err != nil {
		return nil, err
	}
	if in.Capacity <= 0 {
		return nil, domain.Invalid("capacity debe ser mayor que 0")
	}
	status := entity.TableAvailable
	if strings.TrimSpace(in.Status) != "" {
		if status, err = lookup.ValidateTableStatus(in.Status); err != nil {
			return nil, err
		}
	}
	if err := uc.ensureUniqueNumber(ctx, companyID, 0, number); err != nil {
		return nil, err
	}
	t := &entity.RestaurantTable{
		Number:   number,
		Capacity: in.Capacity,
		Location: strings.TrimSpace(in.Location),
		Status:   status,
		Audit:    entity.NewAudit(companyID, actorID, time.Now()),
	}
	if err := uc.repo.Create(ctx, t); err != nil {
		return nil, err
	}
	return uc.GetByID(ctx, companyID, t.ID)
}

// List lista mesas. Status filtra por estado.
func (uc *TableUseCase) List(ctx context.Context, companyID int64, p dto.ListParams) (*dto.ListResponse[dto.TableResponse], error) {
	q, err := p.Normalize(repository.TableSort)
	if err != nil {
		return nil, err
	}
	if q.Status != "" {
		if q.Status, err = lookup.ValidateTableStatus(q.Status); err != nil {
			return nil, err
		}
	}
	list, total, err := uc.repo.List(ctx, companyID, q)
	if err != nil {
		return nil, err
	}
	items := make([]dto.TableResponse, 0, len(list))
	for _, t := range list {
		items = append(items, *toTableResponse(t))
	}
	resp := dto.NewListResponse(items, total, p)
	return &resp, nil
}

// GetByID obtiene una mesa.
func (uc *TableUseCase) GetByID(ctx context.Context, companyID, id int64) (*dto.TableResponse, error) {
	t, err := uc.get(ctx, companyID, id)
	if err != nil {
		return nil, err
	}
	return toTableResponse(t), nil
}

// Update aplica los campos presentes.
func (uc *TableUseCase) Update(ctx context.Context, companyID, actorID, id int64, in dto.UpdateTableRequest) (*dto.TableResponse, error) {
	t, err := uc.get(ctx, companyID, id)
	if err != nil {
		return nil, err
	}
	if in.Number != nil {
		number, err := usecase.RequireText("number", *in.Number)
		if err != nil {
			return nil, err
		}
		if number != t.Number {
			if err := uc.ensureUniqueNumber(ctx, companyID, id, number); err != nil {
				return nil, err
			}
		}
		t.Number = number
	}
	if in.Capacity != nil {
		if *in.Capacity <= 0 {
			return nil, domain.Invalid("capacity debe ser mayor que 0")
		}
		t.Capacity = *in.Capacity
	}
	if in.Location != nil {
		t.Location = strings.TrimSpace(*in.Location)
	}
	if in.Status != nil {
		st, err := lookup.ValidateTableStatus(*in.Status)
		if err != nil {
			return nil, err
		}
		if err := uc.ensureStatusAllowed(ctx, companyID, t, st); err != nil {
			return nil, err
		}
		t.Status = st
	}
	t.Touch(actorID, time.Now())
	if err := uc.repo.Update(ctx, t); err != nil {
		return nil, err
	}
	return uc.GetByID(ctx, companyID, id)
}

// UpdateStatus cambia solo el estado de la mesa.
func (uc *TableUseCase) UpdateStatus(ctx context.Context, companyID, actorID, id int64, status string) (*dto.TableResponse, error) {
	st, err := lookup.ValidateTableStatus(status)
	if err != nil {
		return nil, err
	}
	t, err := uc.get(ctx, companyID, id)
	if err != nil {
		return nil, err
	}
	if err := uc.ensureStatusAllowed(ctx, companyID, t, st); err != nil {
		return nil, err
	}
	if err := uc.repo.UpdateStatus(ctx, companyID, id, st, actorID); err != nil {
		return nil, err
	}
	return uc.GetByID(ctx, companyID, id)
}

// Delete elimina lógicamente la mesa si no tiene órdenes abiertas.
func (uc *TableUseCase) Delete(ctx context.Context, companyID, actorID, id int64) error {
	if _, err := uc.get(ctx, companyID, id); err != nil {
		return err
	}
	n, err := uc.orders.CountOpenByTable(ctx, companyID, id)
	if err != nil {
		return err
	}
	if n > 0 {
		return domain.Blocked("la mesa", n, "órdenes abiertas")
	}
	return uc.repo.SoftDelete(ctx, companyID, id, actorID)
}

// ensureStatusAllowed impide liberar o sacar de servicio una mesa que aún tiene órdenes abiertas.
func (uc *TableUseCase) ensureStatusAllowed(ctx context.Context, companyID int64, t *entity.RestaurantTable, next string) error {
	if next == t.Status || (next != entity.TableAvailable && next != entity.TableOutOfService) {
		return nil
	}
	n, err := uc.orders.CountOpenByTable(ctx, companyID, t.ID)
	if err != nil {
		return err
	}
	if n > 0 {
		return fmt.Errorf("%w: la mesa %s tiene %d órdenes abiertas", domain.ErrInvalidTransition, t.Number, n)
	}
	return nil
}

func (uc *TableUseCase) get(ctx context.Context, companyID, id int64) (*entity.RestaurantTable, error) {
	t, err := uc.repo.GetByID(ctx, companyID, id)
	if err != nil {
		return nil, err
	}
	if t == nil {
		return nil, domain.NotFound("mesa")
	}
	return t, nil
}

func (uc *TableUseCase) ensureUniqueNumber(ctx context.Context, companyID, selfID int64, number string) error {
	existing, err := uc.repo.GetByNumber(ctx, companyID, number)
	if err != nil {
		return err
	}
	if existing != nil && existing.ID != selfID {
		return domain.Duplicate("mesa", "number", number)
	}
	return nil
}

func toTableResponse(t *entity.RestaurantTable) *dto.TableResponse {
	return &dto.TableResponse{
		ID:            t.ID,
		Number:        t.Number,
		Capacity:      t.Capacity,
		Location:      t.Location,
		Status:        t.Status,
		AuditResponse: usecase.ToAudit(t.Audit),
	}
}
