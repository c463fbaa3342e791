package cache

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Hoteleria-api/internal/application/dto"
	"github.com/jhoicas/Hoteleria-api/internal/application/ports"
)

func setupCache(t *testing.T) (*miniredis.Miniredis, *RedisStatsCache) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return mr, NewRedisStatsCache(client, "test", 30*time.Second)
}

func TestRedisStatsCache_SetGet(t *testing.T) {
	mr, c := setupCache(t)
	ctx := context.Background()

	var miss dto.ClientStats
	ok, err := c.Get(ctx, 1, ports.ScopeClients, &miss)
	require.NoError(t, err)
	assert.False(t, ok)

	in := dto.ClientStats{Total: 3, ByType: map[string]int64{"INDIVIDUAL": 2, "CORPORATE": 1}}
	require.NoError(t, c.Set(ctx, 1, ports.ScopeClients, in))
	assert.True(t, mr.Exists("test:stats:1:clients"))
	assert.Equal(t, 30*time.Second, mr.TTL("test:stats:1:clients"))

	var out dto.ClientStats
	ok, err = c.Get(ctx, 1, ports.ScopeClients, &out)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, in, out)

	ok, err = c.Get(ctx, 2, ports.ScopeClients, &out)
	require.NoError(t, err)
	assert.False(t, ok, "otro tenant no comparte entradas")
}

func TestRedisStatsCache_InvalidateYExpiracion(t *testing.T) {
	mr, c := setupCache(t)
	ctx := context.Background()

	require.NoError(t, c.Set(ctx, 1, ports.ScopeRooms, map[string]int{"total": 4}))
	require.NoError(t, c.Set(ctx, 1, ports.ScopeDashboard, map[string]int{"x": 1}))
	ports.InvalidateStats(ctx, c, 1, ports.ScopeRooms)
	assert.False(t, mr.Exists("test:stats:1:rooms"))
	assert.False(t, mr.Exists("test:stats:1:dashboard"))

	require.NoError(t, c.Set(ctx, 1, ports.ScopeRooms, map[string]int{"total": 4}))
	mr.FastForward(31 * time.Second)
	var out map[string]int
	ok, err := c.Get(ctx, 1, ports.ScopeRooms, &out)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestCachedStats_CalculaUnaVez(t *testing.T) {
	_, c := setupCache(t)
	ctx := context.Background()
	calls := 0
	compute := func() (dto.RoomStats, error) {
		calls++
		return dto.RoomStats{Total: 10}, nil
	}
	for range 3 {
		got, err := ports.CachedStats(ctx, c, 5, ports.ScopeRooms, compute)
		require.NoError(t, err)
		assert.Equal(t, int64(10), got.Total)
	}
	assert.Equal(t, 1, calls)
}
