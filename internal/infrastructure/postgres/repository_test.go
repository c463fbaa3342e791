package postgres

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Hoteleria-api/internal/application/ports"
	"github.com/jhoicas/Hoteleria-api/internal/domain"
	"github.com/jhoicas/Hoteleria-api/internal/domain/entity"
	"github.com/jhoicas/Hoteleria-api/internal/domain/repository"
)

func newMock(t *testing.T) pgxmock.PgxPoolIface {
	t.Helper()
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	t.Cleanup(mock.Close)
	return mock
}

func TestListBuilder_PageSQL(t *testing.T) {
	b := newListBuilder("r", 7)
	b.search("50%_off", "r.number")
	b.add("r.status = ?", "AVAILABLE")

	assert.Equal(t, " WHERE r.company_id = $1 AND r.deleted_at IS NULL AND (r.number ILIKE $2) AND r.status = $3", b.whereSQL())

	page, args := b.pageSQL(repository.ListQuery{SortBy: "number", SortDesc: true, Limit: 10, Offset: 20}, repository.RoomSort)
	assert.Equal(t, " ORDER BY r.number DESC, r.id DESC LIMIT $4 OFFSET $5", page)
	assert.Equal(t, []any{int64(7), `%50\%\_off%`, "AVAILABLE", 10, 20}, args)

	page, _ = b.pageSQL(repository.ListQuery{SortBy: "password_hash", Limit: 10}, repository.RoomSort)
	assert.Contains(t, page, "ORDER BY r.created_at ASC", "columna fuera de la allow-list cae al orden por defecto")
}

func TestProductRepo_AdjustStock(t *testing.T) {
	mock := newMock(t)
	repo := NewProductRepository(mock)

	mock.ExpectQuery(`UPDATE products SET stock = stock \+ \$3`).
		WithArgs(int64(5), int64(1), -2, int64(9)).
		WillReturnRows(pgxmock.NewRows([]string{"stock"}).AddRow(3))

	stock, err := repo.AdjustStock(context.Background(), 1, 5, -2, 9)
	require.NoError(t, err)
	assert.Equal(t, 3, stock)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestProductRepo_AdjustStock_Insuficiente(t *testing.T) {
	mock := newMock(t)
	repo := NewProductRepository(mock)

	mock.ExpectQuery(`UPDATE products SET stock = stock \+ \$3`).
		WithArgs(int64(5), int64(1), -10, int64(9)).
		WillReturnError(pgx.ErrNoRows)
	mock.ExpectQuery(`SELECT EXISTS`).
		WithArgs(int64(5), int64(1)).
		WillReturnRows(pgxmock.NewRows([]string{"exists"}).AddRow(true))

	_, err := repo.AdjustStock(context.Background(), 1, 5, -10, 9)
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestProductRepo_AdjustStock_Inexistente(t *testing.T) {
	mock := newMock(t)
	repo := NewProductRepository(mock)

	mock.ExpectQuery(`UPDATE products SET stock`).
		WithArgs(int64(99), int64(1), -1, int64(9)).
		WillReturnError(pgx.ErrNoRows)
	mock.ExpectQuery(`SELECT EXISTS`).
		WithArgs(int64(99), int64(1)).
		WillReturnRows(pgxmock.NewRows([]string{"exists"}).AddRow(false))

	_, err := repo.AdjustStock(context.Background(), 1, 99, -1, 9)
	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSoftDelete_SinFilaActiva(t *testing.T) {
	mock := newMock(t)
	repo := NewRoomRepository(mock)

	mock.ExpectExec(`UPDATE rooms t SET deleted_at = now\(\), deleted_by = \$3`).
		WithArgs(int64(4), int64(1), int64(9)).
		WillReturnResult(pgxmock.NewResult("UPDATE", 0))

	err := repo.SoftDelete(context.Background(), 1, 4, 9)
	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserRepo_Create_EmailDuplicado(t *testing.T) {
	mock := newMock(t)
	repo := NewUserRepository(mock)

	mock.ExpectQuery(`INSERT INTO users`).
		WithArgs(int64(1), "ana@acme.test", "hash", "Ana", "", "", entity.RoleAdmin, entity.UserActive,
			int64(0), int64(0), pgxmock.AnyArg(), pgxmock.AnyArg()).
		WillReturnError(&pgconn.PgError{Code: "23505"})

	now := time.Now()
	u := &entity.User{
		Email: "ana@acme.test", PasswordHash: "hash", FirstName: "Ana",
		Role: entity.RoleAdmin, Status: entity.UserActive, Audit: entity.NewAudit(1, 0, now),
	}
	err := repo.Create(context.Background(), u)
	assert.ErrorIs(t, err, domain.ErrEmailAlreadyExists)
	assert.ErrorIs(t, err, domain.ErrConflict)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRoomTypeRepo_Create_AsignaID(t *testing.T) {
	mock := newMock(t)
	repo := NewRoomTypeRepository(mock)

	mock.ExpectQuery(`INSERT INTO room_types`).
		WithArgs(int64(1), "Suite", "", decimal.NewFromInt(120), 2, []string{}, int64(9), int64(9), pgxmock.AnyArg(), pgxmock.AnyArg()).
		WillReturnRows(pgxmock.NewRows([]string{"id"}).AddRow(int64(42)))

	rt := &entity.RoomType{Name: "Suite", BasePrice: decimal.NewFromInt(120), MaxOccupancy: 2, Audit: entity.NewAudit(1, 9, time.Now())}
	require.NoError(t, repo.Create(context.Background(), rt))
	assert.Equal(t, int64(42), rt.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRoomRepo_List(t *testing.T) {
	mock := newMock(t)
	repo := NewRoomRepository(mock)
	now := time.Now()

	mock.ExpectQuery(`SELECT COUNT\(\*\) FROM rooms r WHERE r.company_id = \$1 AND r.deleted_at IS NULL AND r.status = \$2`).
		WithArgs(int64(1), "AVAILABLE").
		WillReturnRows(pgxmock.NewRows([]string{"count"}).AddRow(int64(11)))
	mock.ExpectQuery(`FROM rooms r .* ORDER BY r.number ASC, r.id ASC LIMIT \$3 OFFSET \$4`).
		WithArgs(int64(1), "AVAILABLE", 10, 10).
		WillReturnRows(pgxmock.NewRows([]string{
			"id", "number", "floor", "room_type_id", "room_type", "status", "notes",
			"company_id", "created_by", "updated_by", "creator", "created_at", "updated_at",
		}).AddRow(int64(3), "101", 1, int64(2), "Suite", "AVAILABLE", "", int64(1), int64(9), int64(9), "Ana Admin", now, now))

	list, total, err := repo.List(context.Background(), 1, repository.ListQuery{
		SortBy: "number", Status: "AVAILABLE", Limit: 10, Offset: 10,
	})
	require.NoError(t, err)
	assert.Equal(t, int64(11), total)
	require.Len(t, list, 1)
	assert.Equal(t, "Suite", list[0].RoomTypeName)
	assert.Equal(t, "Ana Admin", list[0].CreatedByName)
	assert.True(t, list[0].IsActive())
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTxRunner_CommitYRollback(t *testing.T) {
	mock := newMock(t)
	runner := NewTxRunner(mock)

	mock.ExpectBegin()
	mock.ExpectQuery(`INSERT INTO companies`).
		WithArgs("Acme", "", "", "", "", "USD", int64(0), pgxmock.AnyArg(), pgxmock.AnyArg()).
		WillReturnRows(pgxmock.NewRows([]string{"id"}).AddRow(int64(1)))
	mock.ExpectCommit()

	err := runner.Run(context.Background(), func(r ports.TxRepos) error {
		return r.Companies.Create(context.Background(), &entity.Company{Name: "Acme", Currency: "USD"})
	})
	require.NoError(t, err)

	boom := errors.New("boom")
	mock.ExpectBegin()
	mock.ExpectRollback()
	err = runner.Run(context.Background(), func(ports.TxRepos) error { return boom })
	assert.ErrorIs(t, err, boom)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRestaurantOrderRepo_GetForUpdate_BloqueaCabecera(t *testing.T) {
	mock := newMock(t)
	repo := NewRestaurantOrderRepository(mock)

	mock.ExpectQuery(`FROM restaurant_orders o .* WHERE o.id = \$1 AND o.company_id = \$2 AND o.deleted_at IS NULL FOR UPDATE OF o`).
		WithArgs(int64(8), int64(1)).
		WillReturnError(pgx.ErrNoRows)

	o, err := repo.GetForUpdate(context.Background(), 1, 8)
	require.NoError(t, err)
	assert.Nil(t, o)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAnalyticsRepo_ProductMargins(t *testing.T) {
	mock := newMock(t)
	repo := NewAnalyticsRepository(mock)
	from := time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(2025, 3, 31, 23, 59, 59, 0, time.UTC)

	mock.ExpectQuery(`LEFT JOIN products p ON p.id = i.product_id .* AND o.status = 'PAID' AND o.paid_at BETWEEN \$2 AND \$3 GROUP BY i.product_id, p.name, p.cost .* LIMIT \$4`).
		WithArgs(int64(1), from, to, 20).
		WillReturnRows(pgxmock.NewRows([]string{"product_id", "name", "units", "revenue", "cogs"}).
			AddRow(int64(3), "Vino", int64(2), decimal.NewFromInt(60), decimal.NewFromInt(20)).
			AddRow(int64(2), "Lomo", int64(1), decimal.NewFromInt(18), decimal.NewFromInt(12)))

	rows, err := repo.ProductMargins(context.Background(), 1, from, to, 20)
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, "Vino", rows[0].ProductName)
	assert.Equal(t, int64(2), rows[0].UnitsSold)
	assert.True(t, decimal.NewFromInt(40).Equal(rows[0].GrossProfit()))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAnalyticsRepo_SalesByPaymentMethod_Error(t *testing.T) {
	mock := newMock(t)
	repo := NewAnalyticsRepository(mock)
	from, to := time.Unix(0, 0), time.Unix(3600, 0)

	mock.ExpectQuery(`SELECT o.payment_method, COUNT\(DISTINCT o.id\)`).
		WithArgs(int64(1), from, to).
		WillReturnError(errors.New("conexión perdida"))

	_, err := repo.SalesByPaymentMethod(context.Background(), 1, from, to)
	assert.ErrorContains(t, err, "analytics.SalesByPaymentMethod")
	assert.NoError(t, mock.ExpectationsWereMet())
}
