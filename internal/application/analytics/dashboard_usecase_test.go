package analytics_test

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Hoteleria-api/internal/application/analytics"
	"github.com/jhoicas/Hoteleria-api/internal/application/dto"
	"github.com/jhoicas/Hoteleria-api/internal/application/ports"
	"github.com/jhoicas/Hoteleria-api/internal/infrastructure/cache"
)

type source[T any] struct {
	v     T
	err   error
	calls atomic.Int32
}

func (s *source[T]) Stats(context.Context, int64) (*T, error) {
	s.calls.Add(1)
	if s.err != nil {
		return nil, s.err
	}
	v := s.v
	return &v, nil
}

type sources struct {
	rooms    *source[dto.RoomStats]
	products *source[dto.ProductStats]
	orders   *source[dto.OrderStats]
	clients  *source[dto.ClientStats]
}

func newSources() sources {
	return sources{
		rooms:    &source[dto.RoomStats]{v: dto.RoomStats{Total: 4, ByStatus: map[string]int64{"OCCUPIED": 1, "AVAILABLE": 3}, OccupancyRate: 0.25}},
		products: &source[dto.ProductStats]{v: dto.ProductStats{TotalProducts: 2, LowStock: 1, InventoryValue: decimal.NewFromInt(40)}},
		orders:   &source[dto.OrderStats]{v: dto.OrderStats{TotalOrders: 3, PaidOrders: 2, Revenue: decimal.NewFromInt(50), AvgTicket: decimal.NewFromInt(25)}},
		clients:  &source[dto.ClientStats]{v: dto.ClientStats{Total: 1, ByType: map[string]int64{"INDIVIDUAL": 1}}},
	}
}

func (s sources) useCase(c ports.StatsCache) *analytics.DashboardUseCase {
	return analytics.NewDashboardUseCase(s.rooms, s.products, s.orders, s.clients, c)
}

func TestGetSummary_SinCache(t *testing.T) {
	src := newSources()
	out, err := src.useCase(nil).GetSummary(context.Background(), 1)
	require.NoError(t, err)

	assert.Equal(t, int64(4), out.Rooms.Total)
	assert.Equal(t, 0.25, out.Rooms.OccupancyRate)
	assert.Equal(t, int64(1), out.Products.LowStock)
	assert.True(t, decimal.NewFromInt(25).Equal(out.Orders.AvgTicket))
	assert.Equal(t, int64(1), out.Clients.Total)
	assert.WithinDuration(t, time.Now(), out.GeneratedAt, time.Minute)
}

func TestGetSummary_CacheRedis(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	statsCache := cache.NewRedisStatsCache(client, "test", time.Minute)

	ctx := context.Background()
	src := newSources()
	uc := src.useCase(statsCache)

	first, err := uc.GetSummary(ctx, 7)
	require.NoError(t, err)
	second, err := uc.GetSummary(ctx, 7)
	require.NoError(t, err)

	assert.Equal(t, int32(1), src.orders.calls.Load(), "la segunda lectura sale del caché")
	assert.True(t, mr.Exists("test:stats:7:dashboard"))
	assert.True(t, first.Orders.Revenue.Equal(second.Orders.Revenue))

	ports.InvalidateStats(ctx, statsCache, 7, ports.ScopeOrders)
	_, err = uc.GetSummary(ctx, 7)
	require.NoError(t, err)
	assert.Equal(t, int32(2), src.orders.calls.Load())
}

func TestGetSummary_PropagaError(t *testing.T) {
	src := newSources()
	boom := errors.New("sin conexión")
	src.products.err = boom

	_, err := src.useCase(nil).GetSummary(context.Background(), 1)
	require.Error(t, err)
	assert.ErrorIs(t, err, boom)
	assert.Contains(t, err.Error(), "productos")
}
