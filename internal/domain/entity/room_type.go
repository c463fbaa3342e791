package entity

import "github.com/shopspring/decimal"

// RoomType tipo de habitación del catálogo del hotel.
type RoomType struct {
	ID           int64
	Name         string
	Description  string
	BasePrice    decimal.Decimal
	MaxOccupancy int
	Amenities    []string
	RoomCount    int64 // expandido: habitaciones activas
	Audit
}
