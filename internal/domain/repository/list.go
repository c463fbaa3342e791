package repository

import "slices"

// ListQuery filtros ya normalizados para un listado paginado.
// SortBy siempre es una columna de la allow-list de la entidad.
type ListQuery struct {
	Search   string
	SortBy   string
	SortDesc bool
	Status   string // filtro por estado/tipo cuando la entidad lo tiene
	ParentID int64  // filtro por padre (room_type_id, category_id, table_id)
	Limit    int
	Offset   int
}

// SortFields columnas por las que se permite ordenar un listado.
type SortFields []string

// Allows informa si f es una columna ordenable.
func (s SortFields) Allows(f string) bool { return slices.Contains(s, f) }

// DefaultSort orden por defecto de todos los listados (más recientes primero).
const DefaultSort = "created_at"

var (
	RoomTypeSort   = SortFields{"name", "base_price", "max_occupancy", "created_at", "updated_at"}
	RoomSort       = SortFields{"number", "floor", "status", "created_at", "updated_at"}
	CategorySort   = SortFields{"name", "created_at", "updated_at"}
	ProductSort    = SortFields{"name", "sku", "price", "stock", "created_at", "updated_at"}
	ClientSort     = SortFields{"first_name", "last_name", "email", "created_at", "updated_at"}
	TableSort      = SortFields{"number", "capacity", "status", "created_at", "updated_at"}
	OrderSort      = SortFields{"total", "status", "created_at", "updated_at"}
	UserSort       = SortFields{"email", "first_name", "last_name", "role", "created_at", "updated_at"}
	InvitationSort = SortFields{"email", "status", "expires_at", "created_at", "updated_at"}
)
