package dto

import "github.com/shopspring/decimal"

// CreateRoomTypeRequest entrada para crear un tipo de habitación.
type CreateRoomTypeRequest struct {
	Name         string          `json:"name"`
	Description  string          `json:"description"`
	BasePrice    decimal.Decimal `json:"base_price"`
	MaxOccupancy int             `json:"max_occupancy"`
	Amenities    []string        `json:"amenities"`
}

// UpdateRoomTypeRequest solo se aplican los campos presentes.
type UpdateRoomTypeRequest struct {
	Name         *string          `json:"name"`
	Description  *string          `json:"description"`
	BasePrice    *decimal.Decimal `json:"base_price"`
	MaxOccupancy *int             `json:"max_occupancy"`
	Amenities    []string         `json:"amenities"`
}

// RoomTypeResponse salida de un tipo de habitación.
type RoomTypeResponse struct {
	ID           int64           `json:"id"`
	Name         string          `json:"name"`
	Description  string          `json:"description"`
	BasePrice    decimal.Decimal `json:"base_price"`
	MaxOccupancy int             `json:"max_occupancy"`
	Amenities    []string        `json:"amenities"`
	RoomCount    int64           `json:"room_count"`
	AuditResponse
}

// RoomTypeStats agregados del catálogo de tipos.
type RoomTypeStats struct {
	TotalTypes      int64           `json:"total_types"`
	TotalRooms      int64           `json:"total_rooms"`
	AvgRoomsPerType float64         `json:"avg_rooms_per_type"`
	AvgBasePrice    decimal.Decimal `json:"avg_base_price"`
}

// CreateRoomRequest entrada para crear una habitación.
type CreateRoomRequest struct {
	Number     string `json:"number"`
	Floor      int    `json:"floor"`
	RoomTypeID int64  `json:"room_type_id"`
	Status     string `json:"status"`
	Notes      string `json:"notes"`
}

// UpdateRoomRequest solo se aplican los campos presentes.
type UpdateRoomRequest struct {
	Number     *string `json:"number"`
	Floor      *int    `json:"floor"`
	RoomTypeID *int64  `json:"room_type_id"`
	Status     *string `json:"status"`
	Notes      *string `json:"notes"`
}

// UpdateStatusRequest cambio de estado genérico (habitación, mesa, orden).
type UpdateStatusRequest struct {
	Status string `json:"status"`
}

// RoomResponse salida de una habitación.
type RoomResponse struct {
	ID           int64  `json:"id"`
	Number       string `json:"number"`
	Floor        int    `json:"floor"`
	RoomTypeID   int64  `json:"room_type_id"`
	RoomTypeName string `json:"room_type_name"`
	Status       string `json:"status"`
	Notes        string `json:"notes"`
	AuditResponse
}

// RoomStats ocupación por estado.
type RoomStats struct {
	Total         int64            `json:"total"`
	ByStatus      map[string]int64 `json:"by_status"`
	OccupancyRate float64          `json:"occupancy_rate"`
}
