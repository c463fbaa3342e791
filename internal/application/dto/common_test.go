package dto

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Hoteleria-api/internal/domain"
	"github.com/jhoicas/Hoteleria-api/internal/domain/repository"
)

func TestNormalize_Defaults(t *testing.T) {
	var p ListParams
	q, err := p.Normalize(repository.RoomTypeSort)
	require.NoError(t, err)

	assert.Equal(t, 1, p.Page)
	assert.Equal(t, 10, p.Limit)
	assert.Equal(t, "created_at", q.SortBy)
	assert.True(t, q.SortDesc)
	assert.Equal(t, 0, q.Offset)
}

func TestNormalize_AcotaLimite(t *testing.T) {
	p := ListParams{Page: 3, Limit: 5000, SortBy: "Name", SortOrder: "ASC"}
	q, err := p.Normalize(repository.RoomTypeSort)
	require.NoError(t, err)

	assert.Equal(t, MaxLimit, q.Limit)
	assert.Equal(t, 200, q.Offset)
	assert.Equal(t, "name", q.SortBy)
	assert.False(t, q.SortDesc)
}

func TestNormalize_RechazaOrdenInvalido(t *testing.T) {
	p := ListParams{SortBy: "password_hash"}
	_, err := p.Normalize(repository.UserSort)
	assert.True(t, errors.Is(err, domain.ErrInvalidInput))

	p = ListParams{SortOrder: "sideways"}
	_, err = p.Normalize(repository.UserSort)
	assert.True(t, errors.Is(err, domain.ErrInvalidInput))
}

func TestNewListResponse_TotalPages(t *testing.T) {
	p := ListParams{Page: 3, Limit: 10}
	resp := NewListResponse([]int{1, 2, 3, 4, 5}, 25, p)
	assert.Equal(t, 3, resp.Meta.TotalPages)
	assert.Len(t, resp.Data, 5)

	empty := NewListResponse[int](nil, 0, ListParams{Page: 1, Limit: 10})
	assert.NotNil(t, empty.Data)
	assert.Equal(t, 0, empty.Meta.TotalPages)
}
