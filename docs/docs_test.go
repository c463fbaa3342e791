package docs

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/swaggo/swag"
)

func TestReadDoc_JSONValido(t *testing.T) {
	doc, err := swag.ReadDoc()
	require.NoError(t, err)

	var openapi struct {
		Swagger string                    `json:"swagger"`
		Info    map[string]any            `json:"info"`
		Paths   map[string]map[string]any `json:"paths"`
	}
	require.NoError(t, json.Unmarshal([]byte(doc), &openapi))
	assert.Equal(t, "2.0", openapi.Swagger)
	assert.Equal(t, SwaggerInfo.Title, openapi.Info["title"])
	assert.Contains(t, openapi.Paths, "/api/restaurant/orders/{id}/pay")
	assert.Contains(t, openapi.Paths["/api/restaurant/orders/{id}"], "delete")
}
