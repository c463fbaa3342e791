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

// ClientUseCase huéspedes y comensales registrados.
type ClientUseCase struct {
	repo   repository.ClientRepository
	orders repository.RestaurantOrderRepository
	cache  ports.StatsCache
}

// NewClientUseCase construye el caso de uso. orders se usa para bloquear el borrado con órdenes abiertas.
func NewClientUseCase(repo repository.ClientRepository, orders repository.RestaurantOrderRepository, cache ports.StatsCache) *ClientUseCase {
	return &ClientUseCase{repo: repo, orders: orders, cache: cache}
}

// Create registra un cliente. El email, si viene, es único en el tenant.
func (uc *ClientUseCase) Create(ctx context.Context, companyID, actorID int64, in dto.CreateClientRequest) (*dto.ClientResponse, error) {
	first, err := RequireText("first_name", in.FirstName)
	if err != nil {
		return nil, err
	}
	ctype := entity.ClientIndividual
	if strings.TrimSpace(in.ClientType) != "" {
		if ctype, err = lookup.ValidateClientType(in.ClientType); err != nil {
			return nil, err
		}
	}
	email, err := uc.checkEmail(ctx, companyID, 0, in.Email)
	if err != nil {
		return nil, err
	}
	c := &entity.Client{
		FirstName:   first,
		LastName:    strings.TrimSpace(in.LastName),
		Email:       email,
		Phone:       strings.TrimSpace(in.Phone),
		Type:        ctype,
		CompanyName: strings.TrimSpace(in.CompanyName),
		Notes:       strings.TrimSpace(in.Notes),
		Audit:       entity.NewAudit(companyID, actorID, time.Now()),
	}
	if err := uc.repo.Create(ctx, c); err != nil {
		return nil, err
	}
	ports.InvalidateStats(ctx, uc.cache, companyID, ports.ScopeClients)
	return uc.GetByID(ctx, companyID, c.ID)
}

// List lista clientes. Status filtra por client_type.
func (uc *ClientUseCase) List(ctx context.Context, companyID int64, p dto.ListParams) (*dto.ListResponse[dto.ClientResponse], error) {
	q, err := p.Normalize(repository.ClientSort)
	if err != nil {
		return nil, err
	}
	if q.Status != "" {
		if q.Status, err = lookup.ValidateClientType(q.Status); err != nil {
			return nil, err
		}
	}
	list, total, err := uc.repo.List(ctx, companyID, q)
	if err != nil {
		return nil, err
	}
	resp := dto.NewListResponse(mapList(list, toClientResponse), total, p)
	return &resp, nil
}

// GetByID obtiene un cliente.
func (uc *ClientUseCase) GetByID(ctx context.Context, companyID, id int64) (*dto.ClientResponse, error) {
	c, err := uc.get(ctx, companyID, id)
	if err != nil {
		return nil, err
	}
	return toClientResponse(c), nil
}

// Update aplica los campos presentes.
func (uc *ClientUseCase) Update(ctx context.Context, companyID, actorID, id int64, in dto.UpdateClientRequest) (*dto.ClientResponse, error) {
	c, err := uc.get(ctx, companyID, id)
	if err != nil {
		return nil, err
	}
	if err := applyText("first_name", &c.FirstName, in.FirstName); err != nil {
		return nil, err
	}
	applyOptional(&c.LastName, in.LastName)
	applyOptional(&c.Phone, in.Phone)
	applyOptional(&c.CompanyName, in.CompanyName)
	applyOptional(&c.Notes, in.Notes)
	if in.Email != nil {
		if c.Email, err = uc.checkEmail(ctx, companyID, id, *in.Email); err != nil {
			return nil, err
		}
	}
	if in.ClientType != nil {
		if c.Type, err = lookup.ValidateClientType(*in.ClientType); err != nil {
			return nil, err
		}
	}
	c.Touch(actorID, time.Now())
	if err := uc.repo.Update(ctx, c); err != nil {
		return nil, err
	}
	ports.InvalidateStats(ctx, uc.cache, companyID, ports.ScopeClients)
	return uc.GetByID(ctx, companyID, id)
}

// Delete elimina lógicamente un cliente sin órdenes abiertas.
func (uc *ClientUseCase) Delete(ctx context.Context, companyID, actorID, id int64) error {
	if _, err := uc.get(ctx, companyID, id); err != nil {
		return err
	}
	n, err := uc.orders.CountOpenByClient(ctx, companyID, id)
	if err != nil {
		return err
	}
	if n > 0 {
		return domain.Blocked("el cliente", n, "órdenes abiertas")
	}
	if err := uc.repo.SoftDelete(ctx, companyID, id, actorID); err != nil {
		return err
	}
	ports.InvalidateStats(ctx, uc.cache, companyID, ports.ScopeClients)
	return nil
}

// Stats clientes por tipo.
func (uc *ClientUseCase) Stats(ctx context.Context, companyID int64) (*dto.ClientStats, error) {
	out, err := ports.CachedStats(ctx, uc.cache, companyID, ports.ScopeClients, func() (dto.ClientStats, error) {
		byType, err := uc.repo.CountByType(ctx, companyID)
		if err != nil {
			return dto.ClientStats{}, err
		}
		s := dto.ClientStats{ByType: make(map[string]int64)}
		for _, t := range lookup.Values(lookup.FieldClientType) {
			s.ByType[t] = byType[t]
			s.Total += byType[t]
		}
		return s, nil
	})
	if err != nil {
		return nil, err
	}
	return &out, nil
}

func (uc *ClientUseCase) get(ctx context.Context, companyID, id int64) (*entity.Client, error) {
	c, err := uc.repo.GetByID(ctx, companyID, id)
	if err != nil {
		return nil, err
	}
	if c == nil {
		return nil, domain.NotFound("cliente")
	}
	return c, nil
}

// checkEmail normaliza el email opcional y verifica que no lo use otro cliente.
func (uc *ClientUseCase) checkEmail(ctx context.Context, companyID, selfID int64, raw string) (string, error) {
	if strings.TrimSpace(raw) == "" {
		return "", nil
	}
	email, err := NormalizeEmail(raw)
	if err != nil {
		return "", err
	}
	existing, err := uc.repo.GetByEmail(ctx, companyID, email)
	if err != nil {
		return "", err
	}
	if existing != nil && existing.ID != selfID {
		return "", domain.Duplicate("cliente", "email", email)
	}
	return email, nil
}

func toClientResponse(c *entity.Client) *dto.ClientResponse {
	return &dto.ClientResponse{
		ID:            c.ID,
		FirstName:     c.FirstName,
		LastName:      c.LastName,
		FullName:      c.FullName(),
		Email:         c.Email,
		Phone:         c.Phone,
		ClientType:    c.Type,
		CompanyName:   c.CompanyName,
		Notes:         c.Notes,
		AuditResponse: ToAudit(c.Audit),
	}
}
