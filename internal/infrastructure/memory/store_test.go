package memory

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Hoteleria-api/internal/application/ports"
	"github.com/jhoicas/Hoteleria-api/internal/domain"
	"github.com/jhoicas/Hoteleria-api/internal/domain/entity"
	"github.com/jhoicas/Hoteleria-api/internal/domain/repository"
)

func TestTxRunner_RollbackRestauraSnapshot(t *testing.T) {
	ctx := context.Background()
	s := NewStore()
	products := NewProductRepository(s)
	now := time.Now()

	p := &entity.Product{Name: "Café", Price: decimal.NewFromInt(3), Stock: 5, Unit: "unit", Audit: entity.NewAudit(1, 1, now)}
	require.NoError(t, products.Create(ctx, p))

	boom := errors.New("boom")
	err := NewTxRunner(s).Run(ctx, func(r ports.TxRepos) error {
		if _, err := r.Products.AdjustStock(ctx, 1, p.ID, -3, 1); err != nil {
			return err
		}
		if err := r.Companies.Create(ctx, &entity.Company{Name: "Temporal"}); err != nil {
			return err
		}
		return boom
	})
	require.ErrorIs(t, err, boom)

	got, err := products.GetByID(ctx, 1, p.ID)
	require.NoError(t, err)
	assert.Equal(t, 5, got.Stock)
	assert.Equal(t, 0, s.Counts()["companies"])
}

func TestProductRepo_AdjustStockNuncaNegativo(t *testing.T) {
	ctx := context.Background()
	products := NewProductRepository(NewStore())
	p := &entity.Product{Name: "Agua", Stock: 2, Audit: entity.NewAudit(1, 1, time.Now())}
	require.NoError(t, products.Create(ctx, p))

	_, err := products.AdjustStock(ctx, 1, p.ID, -3, 1)
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)

	stock, err := products.AdjustStock(ctx, 1, p.ID, -2, 1)
	require.NoError(t, err)
	assert.Equal(t, 0, stock)

	_, err = products.AdjustStock(ctx, 2, p.ID, 1, 1)
	assert.ErrorIs(t, err, domain.ErrNotFound, "otro tenant no ve el producto")
}

func TestRoomRepo_ListPaginaYOrdena(t *testing.T) {
	ctx := context.Background()
	rooms := NewRoomRepository(NewStore())
	base := time.Now()
	for i := 1; i <= 25; i++ {
		rm := &entity.Room{Number: fmt.Sprintf("%03d", i), RoomTypeID: 1, Status: entity.RoomAvailable,
			Audit: entity.NewAudit(1, 1, base.Add(time.Duration(i)*time.Second))}
		require.NoError(t, rooms.Create(ctx, rm))
	}
	require.NoError(t, rooms.Create(ctx, &entity.Room{Number: "999", Audit: entity.NewAudit(2, 1, base)}))

	list, total, err := rooms.List(ctx, 1, repository.ListQuery{SortBy: "number", Limit: 10, Offset: 20})
	require.NoError(t, err)
	assert.Equal(t, int64(25), total)
	require.Len(t, list, 5)
	assert.Equal(t, "021", list[0].Number)

	list, _, err = rooms.List(ctx, 1, repository.ListQuery{SortBy: "created_at", SortDesc: true, Limit: 1})
	require.NoError(t, err)
	assert.Equal(t, "025", list[0].Number)
}

func TestSoftDelete_OcultaYLiberaUnicidad(t *testing.T) {
	ctx := context.Background()
	cats := NewCategoryRepository(NewStore())
	c := &entity.Category{Name: "Bebidas", Audit: entity.NewAudit(1, 1, time.Now())}
	require.NoError(t, cats.Create(ctx, c))

	err := cats.Create(ctx, &entity.Category{Name: "bebidas", Audit: entity.NewAudit(1, 1, time.Now())})
	assert.ErrorIs(t, err, domain.ErrDuplicate)

	require.NoError(t, cats.SoftDelete(ctx, 1, c.ID, 1))
	assert.ErrorIs(t, cats.SoftDelete(ctx, 1, c.ID, 1), domain.ErrNotFound)

	got, err := cats.GetByID(ctx, 1, c.ID)
	require.NoError(t, err)
	assert.Nil(t, got)
	require.NoError(t, cats.Create(ctx, &entity.Category{Name: "Bebidas", Audit: entity.NewAudit(1, 1, time.Now())}))
}
