package dto

import (
	"strings"
	"time"

	"github.com/jhoicas/Hoteleria-api/internal/domain"
	"github.com/jhoicas/Hoteleria-api/internal/domain/repository"
)

// Límites de paginación.
const (
	DefaultPage  = 1
	DefaultLimit = 10
	MaxLimit     = 100
)

// ListParams parámetros de listado recibidos por query string.
type ListParams struct {
	Page      int    `query:"page"`
	Limit     int    `query:"limit"`
	Search    string `query:"search"`
	SortBy    string `query:"sort_by"`
	SortOrder string `query:"sort_order"`
	Status    string `query:"status"`
	ParentID  int64  `query:"parent_id"`
}

// Normalize aplica valores por defecto, acota el límite y valida el orden contra la allow-list.
// Deja Page y Limit efectivos en p para construir el meta de la respuesta.
func (p *ListParams) Normalize(allowed repository.SortFields) (repository.ListQuery, error) {
	if p.Page <= 0 {
		p.Page = DefaultPage
	}
	if p.Limit <= 0 {
		p.Limit = DefaultLimit
	}
	if p.Limit > MaxLimit {
		p.Limit = MaxLimit
	}
	sortBy := strings.ToLower(strings.TrimSpace(p.SortBy))
	if sortBy == "" {
		sortBy = repository.DefaultSort
	}
	if !allowed.Allows(sortBy) {
		return repository.ListQuery{}, domain.Invalid("sort_by %q no permitido, valores: %s", p.SortBy, strings.Join(allowed, ", "))
	}
	desc := true
	switch strings.ToLower(strings.TrimSpace(p.SortOrder)) {
	case "", "desc":
	case "asc":
		desc = false
	default:
		return repository.ListQuery{}, domain.Invalid("sort_order debe ser asc o desc")
	}
	return repository.ListQuery{
		Search:   strings.TrimSpace(p.Search),
		SortBy:   sortBy,
		SortDesc: desc,
		Status:   strings.TrimSpace(p.Status),
		ParentID: p.ParentID,
		Limit:    p.Limit,
		Offset:   (p.Page - 1) * p.Limit,
	}, nil
}

// ListMeta metadatos de página en respuestas.
type ListMeta struct {
	Total      int64 `json:"total"`
	Page       int   `json:"page"`
	Limit      int   `json:"limit"`
	TotalPages int   `json:"total_pages"`
}

// ListResponse forma única de todos los listados.
type ListResponse[T any] struct {
	Data []T      `json:"data"`
	Meta ListMeta `json:"meta"`
}

// NewListResponse arma la respuesta; total_pages = ceil(total / limit).
func NewListResponse[T any](data []T, total int64, p ListParams) ListResponse[T] {
	if data == nil {
		data = []T{}
	}
	pages := 0
	if p.Limit > 0 {
		pages = int((total + int64(p.Limit) - 1) / int64(p.Limit))
	}
	return ListResponse[T]{
		Data: data,
		Meta: ListMeta{Total: total, Page: p.Page, Limit: p.Limit, TotalPages: pages},
	}
}

// AuditResponse campos de auditoría incluidos en cada entidad del tenant.
type AuditResponse struct {
	CompanyID     int64     `json:"company_id"`
	CreatedBy     int64     `json:"created_by"`
	CreatedByName string    `json:"created_by_name,omitempty"`
	UpdatedBy     int64     `json:"updated_by"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// ErrorResponse cuerpo de error HTTP.
type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// MessageResponse respuesta simple para operaciones sin cuerpo.
type MessageResponse struct {
	Message string `json:"message"`
}
