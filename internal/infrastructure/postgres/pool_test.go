package postgres

import (
	"bytes"
	"context"
	"testing"

	"github.com/jackc/pgx/v5/tracelog"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Hoteleria-api/pkg/config"
)

func TestPoolConfig_Limites(t *testing.T) {
	cfg := config.DBConfig{DatabaseURL: "postgres://u:p@localhost:5432/hotel?sslmode=disable", MaxConns: 8, MinConns: 20}
	pc, err := poolConfig(cfg, zerolog.Nop())
	require.NoError(t, err)
	assert.Equal(t, int32(8), pc.MaxConns)
	assert.NotEqual(t, int32(20), pc.MinConns, "min no puede superar max")
	assert.Nil(t, pc.ConnConfig.Tracer)
	assert.Equal(t, "hotel", pc.ConnConfig.Database)
}

func TestPoolConfig_DSNInvalido(t *testing.T) {
	_, err := poolConfig(config.DBConfig{DatabaseURL: "postgres://%zz"}, zerolog.Nop())
	assert.Error(t, err)
}

func TestQueryLogger_EscribeEnZerolog(t *testing.T) {
	var buf bytes.Buffer
	log := zerolog.New(&buf)
	pc, err := poolConfig(config.DBConfig{DatabaseURL: "postgres://localhost/hotel", LogQueries: true}, log)
	require.NoError(t, err)
	require.NotNil(t, pc.ConnConfig.Tracer)

	queryLogger(log).Log(context.Background(), tracelog.LogLevelInfo, "Query", map[string]any{"sql": "SELECT 1"})
	assert.Contains(t, buf.String(), `"component":"postgres"`)
	assert.Contains(t, buf.String(), `"sql":"SELECT 1"`)
	assert.Contains(t, buf.String(), `"level":"info"`)
}
