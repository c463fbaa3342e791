package ports

import "context"

// Alcances de estadísticas cacheadas por tenant.
const (
	ScopeRoomTypes  = "room_types"
	ScopeRooms      = "rooms"
	ScopeCategories = "categories"
	ScopeProducts   = "products"
	ScopeClients    = "clients"
	ScopeOrders     = "orders"
	ScopeDashboard  = "dashboard"
)

// StatsCache guarda agregados por tenant y alcance. Una falla del caché nunca debe
// impedir responder: los casos de uso ignoran sus errores y recalculan.
type StatsCache interface {
	// Get decodifica en dst; devuelve false si no hay entrada.
	Get(ctx context.Context, companyID int64, scope string, dst any) (bool, error)
	Set(ctx context.Context, companyID int64, scope string, v any) error
	Invalidate(ctx context.Context, companyID int64, scopes ...string) error
}

// CachedStats devuelve el valor cacheado o lo calcula y lo guarda. c puede ser nil.
func CachedStats[T any](ctx context.Context, c StatsCache, companyID int64, scope string, compute func() (T, error)) (T, error) {
	var out T
	if c != nil {
		if ok, err := c.Get(ctx, companyID, scope, &out); err == nil && ok {
			return out, nil
		}
	}
	out, err := compute()
	if err != nil {
		return out, err
	}
	if c != nil {
		_ = c.Set(ctx, companyID, scope, out)
	}
	return out, nil
}

// InvalidateStats descarta los alcances indicados más el dashboard. c puede ser nil.
func InvalidateStats(ctx context.Context, c StatsCache, companyID int64, scopes ...string) {
	if c == nil {
		return
	}
	_ = c.Invalidate(ctx, companyID, append(scopes, ScopeDashboard)...)
}
