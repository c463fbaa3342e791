// Package analytics contiene el resumen operativo del tenant para el dashboard.
package analytics

import (
	"context"
	"fmt"
	"time"

	"github.com/jhoicas/Hoteleria-api/internal/application/dto"
	"github.com/jhoicas/Hoteleria-api/internal/application/ports"
)

// Fuentes de cada bloque del dashboard (las implementan los casos de uso de cada módulo).
type (
	RoomStatsSource interface {
		Stats(ctx context.Context, companyID int64) (*dto.RoomStats, error)
	}
	ProductStatsSource interface {
		Stats(ctx context.Context, companyID int64) (*dto.ProductStats, error)
	}
	OrderStatsSource interface {
		Stats(ctx context.Context, companyID int64) (*dto.OrderStats, error)
	}
	ClientStatsSource interface {
		Stats(ctx context.Context, companyID int64) (*dto.ClientStats, error)
	}
)

// DashboardUseCase genera el resumen de habitaciones, inventario, restaurante y clientes.
type DashboardUseCase struct {
	rooms    RoomStatsSource
	products ProductStatsSource
	orders   OrderStatsSource
	clients  ClientStatsSource
	cache    ports.StatsCache
}

// NewDashboardUseCase construye el caso de uso.
func NewDashboardUseCase(rooms RoomStatsSource, products ProductStatsSource, orders OrderStatsSource, clients ClientStatsSource, cache ports.StatsCache) *DashboardUseCase {
	return &DashboardUseCase{rooms: rooms, products: products, orders: orders, clients: clients, cache: cache}
}

type result[T any] struct {
	v   *T
	err error
}

func collect[T any](ctx context.Context, companyID int64, f func(context.Context, int64) (*T, error)) <-chan result[T] {
	ch := make(chan result[T], 1)
	go func() {
		v, err := f(ctx, companyID)
		ch <- result[T]{v, err}
	}()
	return ch
}

// GetSummary construye el DashboardSummaryDTO con las cuatro consultas en paralelo.
func (uc *DashboardUseCase) GetSummary(ctx context.Context, companyID int64) (*dto.DashboardSummaryDTO, error) {
	out, err := ports.CachedStats(ctx, uc.cache, companyID, ports.ScopeDashboard, func() (dto.DashboardSummaryDTO, error) {
		roomsCh := collect(ctx, companyID, uc.rooms.Stats)
		productsCh := collect(ctx, companyID, uc.products.Stats)
		ordersCh := collect(ctx, companyID, uc.orders.Stats)
		clientsCh := collect(ctx, companyID, uc.clients.Stats)

		rooms, products, orders, clients := <-roomsCh, <-productsCh, <-ordersCh, <-clientsCh

		if rooms.err != nil {
			return dto.DashboardSummaryDTO{}, fmt.Errorf("dashboard: habitaciones: %w", rooms.err)
		}
		if products.err != nil {
			return dto.DashboardSummaryDTO{}, fmt.Errorf("dashboard: productos: %w", products.err)
		}
		if orders.err != nil {
			return dto.DashboardSummaryDTO{}, fmt.Errorf("dashboard: órdenes: %w", orders.err)
		}
		if clients.err != nil {
			return dto.DashboardSummaryDTO{}, fmt.Errorf("dashboard: clientes: %w", clients.err)
		}
		return dto.DashboardSummaryDTO{
			Rooms:       *rooms.v,
			Products:    *products.v,
			Orders:      *orders.v,
			Clients:     *clients.v,
			GeneratedAt: time.Now(),
		}, nil
	})
	if err != nil {
		return nil, err
	}
	return &out, nil
}
