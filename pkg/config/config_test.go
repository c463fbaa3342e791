package config

import (
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromViper_Defaults(t *testing.T) {
	cfg := fromViper(viper.New())

	assert.Equal(t, "development", cfg.App.Env)
	assert.Equal(t, StoragePostgres, cfg.Storage.Driver)
	assert.Equal(t, 60, cfg.JWT.Expiration)
	assert.Equal(t, "0.0.0.0:8080", cfg.HTTP.Addr())
	assert.Equal(t, 72*time.Hour, cfg.Auth.InvitationTTL)
	assert.False(t, cfg.Redis.Enabled())
	assert.True(t, cfg.Metrics.Enabled)
}

func TestFromViper_StringValuesFromEnv(t *testing.T) {
	v := viper.New()
	v.Set("HTTP_PORT", "9090")
	v.Set("DB_AUTO_MIGRATE", "true")
	v.Set("CACHE_TTL_SECONDS", "15")
	v.Set("STORAGE_DRIVER", "MEMORY")
	v.Set("REDIS_ADDR", "localhost:6379")

	cfg := fromViper(v)

	assert.Equal(t, 9090, cfg.HTTP.Port)
	assert.True(t, cfg.DB.AutoMigrate)
	assert.Equal(t, 15*time.Second, cfg.Redis.TTL)
	assert.Equal(t, StorageMemory, cfg.Storage.Driver)
	assert.True(t, cfg.Redis.Enabled())
}

func TestDBConfig_ConnectionString(t *testing.T) {
	c := DBConfig{Host: "db", Port: 5432, User: "app", Password: "p@ss:word", DBName: "hoteleria", SSLMode: "disable"}
	assert.Equal(t, "postgres://app:p%40ss%3Aword@db:5432/hoteleria?sslmode=disable", c.ConnectionString())

	c.DatabaseURL = "postgres://x@y/z"
	assert.Equal(t, "postgres://x@y/z", c.ConnectionString())
}

func TestValidate(t *testing.T) {
	cfg := fromViper(viper.New())
	require.NoError(t, cfg.Validate(), "development admite secret vacío")

	cfg.App.Env = "production"
	assert.Error(t, cfg.Validate())

	cfg.JWT.Secret = "s3cret"
	require.NoError(t, cfg.Validate())

	cfg.Auth.InvitationTTL = 0
	assert.ErrorContains(t, cfg.Validate(), "INVITATION_TTL_HOURS")
	cfg.Auth.InvitationTTL = time.Hour

	cfg.Storage.Driver = "mysql"
	assert.Error(t, cfg.Validate())
}
