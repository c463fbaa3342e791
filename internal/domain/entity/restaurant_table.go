package entity

// Estados de mesa.
const (
	TableAvailable    = "AVAILABLE"
	TableOccupied     = "OCCUPIED"
	TableReserved     = "RESERVED"
	TableOutOfService = "OUT_OF_SERVICE"
)

// RestaurantTable mesa del restaurante.
type RestaurantTable struct {
	ID       int64
	Number   string
	Capacity int
	Location string
	Status   string
	Audit
}
