package logger

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_JSONConServicioYNivel(t *testing.T) {
	var buf bytes.Buffer
	l := New(Config{Env: "production", Level: "warn", Service: "hoteleria-test", Out: &buf})

	l.Info().Msg("descartado")
	l.Warn().Str("k", "v").Msg("visible")

	var line map[string]any
	require.NoError(t, json.Unmarshal(bytes.TrimSpace(buf.Bytes()), &line), buf.String())
	assert.Equal(t, "visible", line["message"])
	assert.Equal(t, "warn", line["level"])
	assert.Equal(t, "hoteleria-test", line["service"])
	assert.Equal(t, "v", line["k"])
}

func TestComponent(t *testing.T) {
	var buf bytes.Buffer
	l := New(Config{Level: "debug", Out: &buf})
	c := l.Component("cache")
	c.Debug().Msg("hit")
	assert.Contains(t, buf.String(), `"component":"cache"`)
}

func TestParseLevel_Invalido(t *testing.T) {
	assert.Equal(t, "info", parseLevel("ruido").String())
	assert.Equal(t, "info", parseLevel("").String())
	assert.Equal(t, "trace", parseLevel("trace").String())
}
