package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/jhoicas/Hoteleria-api/internal/application/ports"
	"github.com/jhoicas/Hoteleria-api/pkg/config"
)

var _ ports.StatsCache = (*RedisStatsCache)(nil)

// RedisStatsCache guarda los agregados por tenant como JSON con TTL.
// Clave: <prefix>:stats:<company_id>:<scope>.
type RedisStatsCache struct {
	client *redis.Client
	prefix string
	ttl    time.Duration
}

// NewRedisClient crea el cliente y verifica conectividad. Acepta "host:port" o "redis://host:port".
func NewRedisClient(ctx context.Context, cfg config.RedisConfig) (*redis.Client, error) {
	var opts *redis.Options
	if strings.HasPrefix(cfg.Addr, "redis://") || strings.HasPrefix(cfg.Addr, "rediss://") {
		parsed, err := redis.ParseURL(cfg.Addr)
		if err != nil {
			return nil, fmt.Errorf("redis url: %w", err)
		}
		opts = parsed
	} else {
		opts = &redis.Options{Addr: cfg.Addr, Password: cfg.Password, DB: cfg.DB}
	}
	client := redis.NewClient(opts)
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("redis ping: %w", err)
	}
	return client, nil
}

// NewRedisStatsCache construye el caché. ttl <= 0 usa un minuto.
func NewRedisStatsCache(client *redis.Client, prefix string, ttl time.Duration) *RedisStatsCache {
	if ttl <= 0 {
		ttl = time.Minute
	}
	if prefix == "" {
		prefix = "hoteleria"
	}
	return &RedisStatsCache{client: client, prefix: prefix, ttl: ttl}
}

func (c *RedisStatsCache) key(companyID int64, scope string) string {
	return fmt.Sprintf("%s:stats:%d:%s", c.prefix, companyID, scope)
}

// Get decodifica la entrada en dst. Un miss devuelve (false, nil).
func (c *RedisStatsCache) Get(ctx context.Context, companyID int64, scope string, dst any) (bool, error) {
	data, err := c.client.Get(ctx, c.key(companyID, scope)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return false, nil
		}
		return false, err
	}
	if err := json.Unmarshal(data, dst); err != nil {
		return false, err
	}
	return true, nil
}

func (c *RedisStatsCache) Set(ctx context.Context, companyID int64, scope string, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, c.key(companyID, scope), data, c.ttl).Err()
}

// Invalidate borra los alcances indicados del tenant.
func (c *RedisStatsCache) Invalidate(ctx context.Context, companyID int64, scopes ...string) error {
	if len(scopes) == 0 {
		return nil
	}
	keys := make([]string, len(scopes))
	for i, s := range scopes {
		keys[i] = c.key(companyID, s)
	}
	return c.client.Del(ctx, keys...).Err()
}
