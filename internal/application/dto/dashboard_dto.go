package dto

import "time"

// DashboardSummaryDTO respuesta de GET /api/dashboard.
// Reúne los agregados de hotel, inventario, restaurante y clientes del tenant.
type DashboardSummaryDTO struct {
	Rooms    RoomStats    `json:"rooms"`
	Products ProductStats `json:"products"`
	Orders   OrderStats   `json:"orders"`
	Clients  ClientStats  `json:"clients"`

	// Metadatos
	GeneratedAt time.Time `json:"generated_at"`
}
