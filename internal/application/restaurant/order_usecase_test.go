package restaurant_test

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"

	"github.com/jhoicas/Hoteleria-api/internal/application/dto"
	"github.com/jhoicas/Hoteleria-api/internal/application/ports"
	"github.com/jhoicas/Hoteleria-api/internal/application/restaurant"
	"github.com/jhoicas/Hoteleria-api/internal/application/usecase"
	"github.com/jhoicas/Hoteleria-api/internal/domain"
	"github.com/jhoicas/Hoteleria-api/internal/domain/entity"
	"github.com/jhoicas/Hoteleria-api/internal/infrastructure/memory"
)

const (
	tenant int64 = 1
	other  int64 = 2
	waiter int64 = 5
)

type OrderSuite struct {
	suite.Suite
	ctx      context.Context
	store    *memory.Store
	orders   *restaurant.OrderUseCase
	tables   *restaurant.TableUseCase
	products *usecase.ProductUseCase
	clients  *usecase.ClientUseCase

	water, steak *dto.ProductResponse
	table        *dto.TableResponse
}

func TestOrderSuite(t *testing.T) {
	suite.Run(t, new(OrderSuite))
}

func (s *OrderSuite) SetupTest() {
	s.ctx = context.Background()
	s.store = memory.NewStore()
	orderRepo := memory.NewRestaurantOrderRepository(s.store)
	tableRepo := memory.NewRestaurantTableRepository(s.store)
	clientRepo := memory.NewClientRepository(s.store)
	s.orders = restaurant.NewOrderUseCase(memory.NewTxRunner(s.store), orderRepo, tableRepo, clientRepo,
		memory.NewPaymentRepository(s.store), nil)
	s.tables = restaurant.NewTableUseCase(tableRepo, orderRepo)
	s.products = usecase.NewProductUseCase(memory.NewProductRepository(s.store), memory.NewCategoryRepository(s.store), nil)
	s.clients = usecase.NewClientUseCase(clientRepo, orderRepo, nil)

	var err error
	s.water, err = s.products.Create(s.ctx, tenant, waiter, dto.CreateProductRequest{Name: "Agua", Price: decimal.RequireFromString("2.50"), Stock: 10})
	s.Require().NoError(err)
	s.steak, err = s.products.Create(s.ctx, tenant, waiter, dto.CreateProductRequest{Name: "Lomo", Price: decimal.RequireFromString("18.00"), Stock: 1})
	s.Require().NoError(err)
	s.table, err = s.tables.Create(s.ctx, tenant, waiter, dto.CreateTableRequest{Number: "M1", Capacity: 4})
	s.Require().NoError(err)
}

func (s *OrderSuite) stock(id int64) int {
	p, err := s.products.GetByID(s.ctx, tenant, id)
	s.Require().NoError(err)
	return p.Stock
}

func (s *OrderSuite) tableStatus() string {
	t, err := s.tables.GetByID(s.ctx, tenant, s.table.ID)
	s.Require().NoError(err)
	return t.Status
}

func (s *OrderSuite) open() *dto.OrderResponse {
	o, err := s.orders.Create(s.ctx, tenant, waiter, dto.CreateOrderRequest{
		TableID: &s.table.ID,
		Items: []dto.OrderItemRequest{
			{ProductID: s.water.ID, Quantity: 2},
			{ProductID: s.water.ID, Quantity: 1},
			{ProductID: s.steak.ID, Quantity: 1},
		},
	})
	s.Require().NoError(err)
	return o
}

func (s *OrderSuite) TestCreate_DescuentaStockYOcupaMesa() {
	o := s.open()

	s.Equal(entity.OrderPending, o.Status)
	s.Require().Len(o.Items, 2, "las líneas del mismo producto se agrupan")
	s.Equal(3, o.Items[0].Quantity)
	s.True(decimal.RequireFromString("25.50").Equal(o.Total), o.Total.String())
	s.Equal("M1", o.TableNumber)

	s.Equal(7, s.stock(s.water.ID))
	s.Equal(0, s.stock(s.steak.ID))
	s.Equal(entity.TableOccupied, s.tableStatus())
}

func (s *OrderSuite) TestCreate_StockInsuficienteNoEscribeNada() {
	_, err := s.orders.Create(s.ctx, tenant, waiter, dto.CreateOrderRequest{
		TableID: &s.table.ID,
		Items: []dto.OrderItemRequest{
			{ProductID: s.water.ID, Quantity: 4},
			{ProductID: s.steak.ID, Quantity: 2},
		},
	})
	s.ErrorIs(err, domain.ErrInsufficientStock)

	s.Equal(10, s.stock(s.water.ID), "el descuento del primer ítem se revierte")
	s.Equal(1, s.stock(s.steak.ID))
	s.Equal(entity.TableAvailable, s.tableStatus())
	s.Zero(s.store.Counts()["restaurant_orders"])
}

func (s *OrderSuite) TestCreate_Validaciones() {
	_, err := s.orders.Create(s.ctx, tenant, waiter, dto.CreateOrderRequest{})
	s.ErrorIs(err, domain.ErrInvalidInput)

	_, err = s.orders.Create(s.ctx, tenant, waiter, dto.CreateOrderRequest{
		Items: []dto.OrderItemRequest{{ProductID: s.water.ID, Quantity: 0}},
	})
	s.ErrorIs(err, domain.ErrInvalidInput)

	_, err = s.orders.Create(s.ctx, other, waiter, dto.CreateOrderRequest{
		Items: []dto.OrderItemRequest{{ProductID: s.water.ID, Quantity: 1}},
	})
	s.ErrorIs(err, domain.ErrInvalidInput, "producto de otro tenant")
	s.Equal(10, s.stock(s.water.ID))
}

func (s *OrderSuite) TestTransiciones() {
	o := s.open()

	_, err := s.orders.UpdateStatus(s.ctx, tenant, waiter, o.ID, entity.OrderServed)
	s.ErrorIs(err, domain.ErrInvalidTransition, "no se puede saltar PREPARING")

	_, err = s.orders.UpdateStatus(s.ctx, tenant, waiter, o.ID, entity.OrderPaid)
	s.ErrorIs(err, domain.ErrInvalidInput, "PAID solo vía Pay")

	o, err = s.orders.UpdateStatus(s.ctx, tenant, waiter, o.ID, "preparing")
	s.Require().NoError(err)
	s.Equal(entity.OrderPreparing, o.Status)

	o, err = s.orders.UpdateStatus(s.ctx, tenant, waiter, o.ID, entity.OrderServed)
	s.Require().NoError(err)
	s.Equal(entity.OrderServed, o.Status)
}

func (s *OrderSuite) TestCancelar_DevuelveStockYLiberaMesa() {
	o := s.open()

	o, err := s.orders.UpdateStatus(s.ctx, tenant, waiter, o.ID, entity.OrderCancelled)
	s.Require().NoError(err)
	s.Equal(entity.OrderCancelled, o.Status)

	s.Equal(10, s.stock(s.water.ID))
	s.Equal(1, s.stock(s.steak.ID))
	s.Equal(entity.TableAvailable, s.tableStatus())

	_, err = s.orders.UpdateStatus(s.ctx, tenant, waiter, o.ID, entity.OrderPreparing)
	s.ErrorIs(err, domain.ErrInvalidTransition, "una orden cancelada es final")
}

func (s *OrderSuite) TestCancelar_ProductoEliminadoNoBloquea() {
	o := s.open()
	s.Require().NoError(s.products.Delete(s.ctx, tenant, waiter, s.water.ID))

	o, err := s.orders.UpdateStatus(s.ctx, tenant, waiter, o.ID, entity.OrderCancelled)
	s.Require().NoError(err)
	s.Equal(entity.OrderCancelled, o.Status)

	s.Equal(1, s.stock(s.steak.ID), "el resto de las líneas sí devuelve stock")
	s.Equal(entity.TableAvailable, s.tableStatus())
}

func (s *OrderSuite) TestPagosConcurrentes_UnSoloPago() {
	o := s.open()

	const n = 8
	var wg sync.WaitGroup
	var ok atomic.Int32
	errs := make(chan error, n)
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, err := s.orders.Pay(s.ctx, tenant, waiter, o.ID, dto.PayOrderRequest{Method: "CASH"}); err != nil {
				errs <- err
				return
			}
			ok.Add(1)
		}()
	}
	wg.Wait()
	close(errs)

	s.Equal(int32(1), ok.Load())
	for err := range errs {
		s.ErrorIs(err, domain.ErrInvalidTransition)
	}
	payments, err := s.orders.Payments(s.ctx, tenant, o.ID)
	s.Require().NoError(err)
	s.Len(payments, 1)
}

func (s *OrderSuite) TestPagoYCancelacionConcurrentes_GanaUno() {
	o := s.open()

	var wg sync.WaitGroup
	var payErr, cancelErr error
	wg.Add(2)
	go func() {
		defer wg.Done()
		_, payErr = s.orders.Pay(s.ctx, tenant, waiter, o.ID, dto.PayOrderRequest{Method: "CASH"})
	}()
	go func() {
		defer wg.Done()
		_, cancelErr = s.orders.UpdateStatus(s.ctx, tenant, waiter, o.ID, entity.OrderCancelled)
	}()
	wg.Wait()

	s.True((payErr == nil) != (cancelErr == nil), "pay=%v cancel=%v", payErr, cancelErr)
	final, err := s.orders.GetByID(s.ctx, tenant, o.ID)
	s.Require().NoError(err)
	payments, err := s.orders.Payments(s.ctx, tenant, o.ID)
	s.Require().NoError(err)
	if payErr == nil {
		s.Equal(entity.OrderPaid, final.Status)
		s.Len(payments, 1)
		s.Equal(7, s.stock(s.water.ID), "una orden pagada no devuelve stock")
	} else {
		s.ErrorIs(payErr, domain.ErrInvalidTransition)
		s.Equal(entity.OrderCancelled, final.Status)
		s.Empty(payments)
		s.Equal(10, s.stock(s.water.ID))
	}
}

func (s *OrderSuite) TestMesaConOrdenAbierta_NoSeLibera() {
	o := s.open()

	_, err := s.tables.UpdateStatus(s.ctx, tenant, waiter, s.table.ID, entity.TableAvailable)
	s.ErrorIs(err, domain.ErrInvalidTransition)
	out := entity.TableOutOfService
	_, err = s.tables.Update(s.ctx, tenant, waiter, s.table.ID, dto.UpdateTableRequest{Status: &out})
	s.ErrorIs(err, domain.ErrInvalidTransition)
	s.Equal(entity.TableOccupied, s.tableStatus())

	reserved, err := s.tables.UpdateStatus(s.ctx, tenant, waiter, s.table.ID, entity.TableReserved)
	s.Require().NoError(err)
	s.Equal(entity.TableReserved, reserved.Status)

	_, err = s.orders.Pay(s.ctx, tenant, waiter, o.ID, dto.PayOrderRequest{Method: "CASH"})
	s.Require().NoError(err)
	freed, err := s.tables.UpdateStatus(s.ctx, tenant, waiter, s.table.ID, entity.TableAvailable)
	s.Require().NoError(err)
	s.Equal(entity.TableAvailable, freed.Status)
}

func (s *OrderSuite) TestPagar() {
	o := s.open()

	_, err := s.orders.Pay(s.ctx, tenant, waiter, o.ID, dto.PayOrderRequest{Method: "BITCOIN"})
	s.ErrorIs(err, domain.ErrInvalidInput)

	paid, err := s.orders.Pay(s.ctx, tenant, waiter, o.ID, dto.PayOrderRequest{Method: "card", Reference: "AUTH-1"})
	s.Require().NoError(err)
	s.Equal(entity.OrderPaid, paid.Order.Status)
	s.Equal(entity.PaymentCard, paid.Order.PaymentMethod)
	s.NotNil(paid.Order.PaidAt)
	s.True(o.Total.Equal(paid.Payment.Amount))
	s.Equal(entity.TableAvailable, s.tableStatus())

	_, err = s.orders.Pay(s.ctx, tenant, waiter, o.ID, dto.PayOrderRequest{Method: "CASH"})
	s.ErrorIs(err, domain.ErrInvalidTransition, "no se paga dos veces")

	payments, err := s.orders.Payments(s.ctx, tenant, o.ID)
	s.Require().NoError(err)
	s.Len(payments, 1)

	stats, err := s.orders.Stats(s.ctx, tenant)
	s.Require().NoError(err)
	s.Equal(int64(1), stats.PaidOrders)
	s.True(o.Total.Equal(stats.Revenue))
}

func (s *OrderSuite) TestMesaConOrdenAbierta_NoSeElimina() {
	o := s.open()

	err := s.tables.Delete(s.ctx, tenant, waiter, s.table.ID)
	s.ErrorIs(err, domain.ErrForbidden)

	err = s.orders.Delete(s.ctx, tenant, waiter, o.ID)
	s.ErrorIs(err, restaurant.ErrOrderOpen)

	_, err = s.orders.Pay(s.ctx, tenant, waiter, o.ID, dto.PayOrderRequest{Method: "CASH"})
	s.Require().NoError(err)
	s.NoError(s.orders.Delete(s.ctx, tenant, waiter, o.ID))
	s.NoError(s.tables.Delete(s.ctx, tenant, waiter, s.table.ID))
}

func (s *OrderSuite) TestClienteConOrdenAbierta_NoSeElimina() {
	c, err := s.clients.Create(s.ctx, tenant, waiter, dto.CreateClientRequest{FirstName: "Ana"})
	s.Require().NoError(err)
	_, err = s.orders.Create(s.ctx, tenant, waiter, dto.CreateOrderRequest{
		ClientID: &c.ID,
		Items:    []dto.OrderItemRequest{{ProductID: s.water.ID, Quantity: 1}},
	})
	s.Require().NoError(err)

	err = s.clients.Delete(s.ctx, tenant, waiter, c.ID)
	s.ErrorIs(err, domain.ErrForbidden)
	s.Contains(err.Error(), "1 órdenes abiertas")
}

func (s *OrderSuite) TestUpdate_CambioDeMesa() {
	o := s.open()
	t2, err := s.tables.Create(s.ctx, tenant, waiter, dto.CreateTableRequest{Number: "M2", Capacity: 2})
	s.Require().NoError(err)

	o, err = s.orders.Update(s.ctx, tenant, waiter, o.ID, dto.UpdateOrderRequest{TableID: &t2.ID})
	s.Require().NoError(err)
	s.Equal("M2", o.TableNumber)
	s.Equal(entity.TableAvailable, s.tableStatus())

	moved, err := s.tables.GetByID(s.ctx, tenant, t2.ID)
	s.Require().NoError(err)
	s.Equal(entity.TableOccupied, moved.Status)
}

func (s *OrderSuite) TestAislamientoDeTenant() {
	o := s.open()
	_, err := s.orders.GetByID(s.ctx, other, o.ID)
	s.ErrorIs(err, domain.ErrNotFound)
	_, err = s.orders.Pay(s.ctx, other, waiter, o.ID, dto.PayOrderRequest{Method: "CASH"})
	s.ErrorIs(err, domain.ErrNotFound)
}

type fakeReceipts struct{ got ports.ReceiptData }

func (f *fakeReceipts) GenerateReceipt(_ context.Context, data ports.ReceiptData) ([]byte, error) {
	f.got = data
	return []byte("%PDF-fake"), nil
}

func TestReceipt_Download(t *testing.T) {
	ctx := context.Background()
	s := memory.NewStore()
	companies := memory.NewCompanyRepository(s)
	orders := memory.NewRestaurantOrderRepository(s)
	payments := memory.NewPaymentRepository(s)

	company := &entity.Company{Name: "Hotel Sol", Currency: "USD"}
	require.NoError(t, companies.Create(ctx, company))
	products := usecase.NewProductUseCase(memory.NewProductRepository(s), memory.NewCategoryRepository(s), nil)
	p, err := products.Create(ctx, company.ID, waiter, dto.CreateProductRequest{Name: "Café", Price: decimal.NewFromInt(3), Stock: 5})
	require.NoError(t, err)
	orderUC := restaurant.NewOrderUseCase(memory.NewTxRunner(s), orders, memory.NewRestaurantTableRepository(s),
		memory.NewClientRepository(s), payments, nil)
	o, err := orderUC.Create(ctx, company.ID, waiter, dto.CreateOrderRequest{Items: []dto.OrderItemRequest{{ProductID: p.ID, Quantity: 2}}})
	require.NoError(t, err)

	gen := &fakeReceipts{}
	uc := restaurant.NewReceiptUseCase(orders, payments, companies, gen)

	pdf, name, err := uc.Download(ctx, company.ID, o.ID)
	require.NoError(t, err)
	assert.Equal(t, []byte("%PDF-fake"), pdf)
	assert.Contains(t, name, ".pdf")
	assert.Equal(t, "Hotel Sol", gen.got.Company.Name)
	assert.Len(t, gen.got.Order.Items, 1)

	_, _, err = uc.Download(ctx, company.ID+1, o.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
