package analytics_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Hoteleria-api/internal/application/analytics"
	"github.com/jhoicas/Hoteleria-api/internal/application/dto"
	"github.com/jhoicas/Hoteleria-api/internal/application/restaurant"
	"github.com/jhoicas/Hoteleria-api/internal/application/usecase"
	"github.com/jhoicas/Hoteleria-api/internal/domain"
	"github.com/jhoicas/Hoteleria-api/internal/domain/entity"
	"github.com/jhoicas/Hoteleria-api/internal/infrastructure/memory"
)

type restaurantFixture struct {
	ctx      context.Context
	products *usecase.ProductUseCase
	orders   *restaurant.OrderUseCase
	report   *analytics.ProfitabilityUseCase
}

func newRestaurantFixture() *restaurantFixture {
	s := memory.NewStore()
	orders := memory.NewRestaurantOrderRepository(s)
	return &restaurantFixture{
		ctx:      context.Background(),
		products: usecase.NewProductUseCase(memory.NewProductRepository(s), memory.NewCategoryRepository(s), nil),
		orders: restaurant.NewOrderUseCase(memory.NewTxRunner(s), orders, memory.NewRestaurantTableRepository(s),
			memory.NewClientRepository(s), memory.NewPaymentRepository(s), nil),
		report: analytics.NewProfitabilityUseCase(memory.NewAnalyticsRepository(s)),
	}
}

func (f *restaurantFixture) product(t *testing.T, name, price, cost string) int64 {
	t.Helper()
	p, err := f.products.Create(f.ctx, 1, 9, dto.CreateProductRequest{
		Name: name, Price: decimal.RequireFromString(price), Cost: decimal.RequireFromString(cost), Stock: 50,
	})
	require.NoError(t, err)
	return p.ID
}

func (f *restaurantFixture) order(t *testing.T, items ...dto.OrderItemRequest) int64 {
	t.Helper()
	o, err := f.orders.Create(f.ctx, 1, 9, dto.CreateOrderRequest{Items: items})
	require.NoError(t, err)
	return o.ID
}

func (f *restaurantFixture) pay(t *testing.T, id int64, method string) {
	t.Helper()
	_, err := f.orders.Pay(f.ctx, 1, 9, id, dto.PayOrderRequest{Method: method})
	require.NoError(t, err)
}

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func TestProfitability_SoloOrdenesPagadas(t *testing.T) {
	f := newRestaurantFixture()
	water := f.product(t, "Agua", "2.50", "1.00")
	steak := f.product(t, "Lomo", "18.00", "12.00")
	wine := f.product(t, "Vino", "30.00", "10.00")

	f.pay(t, f.order(t, dto.OrderItemRequest{ProductID: water, Quantity: 2}, dto.OrderItemRequest{ProductID: steak, Quantity: 1}), "CASH")
	f.pay(t, f.order(t, dto.OrderItemRequest{ProductID: wine, Quantity: 1}), "CARD")
	cancelled := f.order(t, dto.OrderItemRequest{ProductID: water, Quantity: 4})
	_, err := f.orders.UpdateStatus(f.ctx, 1, 9, cancelled, entity.OrderCancelled)
	require.NoError(t, err)
	f.order(t, dto.OrderItemRequest{ProductID: steak, Quantity: 1})

	r, err := f.report.GetReport(f.ctx, 1, dto.ProfitabilityRequest{})
	require.NoError(t, err)

	assert.True(t, dec("53").Equal(r.TotalRevenue), r.TotalRevenue.String())
	assert.True(t, dec("24").Equal(r.TotalCOGS), r.TotalCOGS.String())
	assert.True(t, dec("29").Equal(r.GrossProfit), r.GrossProfit.String())
	assert.True(t, dec("54.72").Equal(r.MarginPct), r.MarginPct.String())

	require.Len(t, r.ByMethod, 2)
	assert.Equal(t, entity.PaymentCard, r.ByMethod[0].Method)
	assert.Equal(t, int64(1), r.ByMethod[0].Orders)
	assert.True(t, dec("56.6").Equal(r.ByMethod[0].RevenuePct), r.ByMethod[0].RevenuePct.String())
	assert.Equal(t, entity.PaymentCash, r.ByMethod[1].Method)

	require.Len(t, r.Products, 3)
	assert.Equal(t, "Vino", r.Products[0].ProductName)
	assert.Equal(t, 1, r.Products[0].Rank)
	assert.True(t, dec("68.97").Equal(r.Products[0].CumulativeProfitPct), r.Products[0].CumulativeProfitPct.String())
	assert.True(t, r.Products[0].IsTopPareto)
	assert.Equal(t, "Lomo", r.Products[1].ProductName)
	assert.True(t, dec("89.66").Equal(r.Products[1].CumulativeProfitPct), r.Products[1].CumulativeProfitPct.String())
	assert.False(t, r.Products[1].IsTopPareto)
	assert.Equal(t, "Agua", r.Products[2].ProductName)
	assert.Equal(t, int64(2), r.Products[2].UnitsSold, "la orden cancelada no cuenta")
	require.Len(t, r.ParetoProducts, 1)
	assert.Equal(t, wine, r.ParetoProducts[0].ProductID)
}

func TestProfitability_TopNYProductoEliminado(t *testing.T) {
	f := newRestaurantFixture()
	water := f.product(t, "Agua", "2.50", "1.00")
	wine := f.product(t, "Vino", "30.00", "10.00")
	f.pay(t, f.order(t, dto.OrderItemRequest{ProductID: water, Quantity: 2}, dto.OrderItemRequest{ProductID: wine, Quantity: 1}), "CASH")
	require.NoError(t, f.products.Delete(f.ctx, 1, 9, wine))

	r, err := f.report.GetReport(f.ctx, 1, dto.ProfitabilityRequest{TopN: 1})
	require.NoError(t, err)
	require.Len(t, r.Products, 1)
	assert.Equal(t, "Vino", r.Products[0].ProductName, "un producto eliminado conserva sus ventas")
	assert.True(t, dec("35").Equal(r.TotalRevenue), "los totales no dependen del corte top_n")

	other, err := f.report.GetReport(f.ctx, 2, dto.ProfitabilityRequest{})
	require.NoError(t, err)
	assert.Empty(t, other.Products)
	assert.True(t, other.TotalRevenue.IsZero())
}

func TestProfitability_Periodo(t *testing.T) {
	f := newRestaurantFixture()
	water := f.product(t, "Agua", "2.50", "1.00")
	f.pay(t, f.order(t, dto.OrderItemRequest{ProductID: water, Quantity: 1}), "CASH")

	today := time.Now().Format("2006-01-02")
	r, err := f.report.GetReport(f.ctx, 1, dto.ProfitabilityRequest{StartDate: today, EndDate: today})
	require.NoError(t, err)
	assert.Equal(t, today, r.Period.StartDate)
	assert.Len(t, r.Products, 1, "end_date incluye todo el día")

	tomorrow := time.Now().AddDate(0, 0, 1).Format("2006-01-02")
	r, err = f.report.GetReport(f.ctx, 1, dto.ProfitabilityRequest{StartDate: tomorrow, EndDate: tomorrow})
	require.NoError(t, err)
	assert.Empty(t, r.Products)
	assert.Empty(t, r.ParetoProducts)

	_, err = f.report.GetReport(f.ctx, 1, dto.ProfitabilityRequest{StartDate: "2024-13-01"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	_, err = f.report.GetReport(f.ctx, 1, dto.ProfitabilityRequest{StartDate: tomorrow, EndDate: today})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}
