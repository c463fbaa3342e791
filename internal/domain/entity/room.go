package entity

// Estados de habitación.
const (
	RoomAvailable   = "AVAILABLE"
	RoomOccupied    = "OCCUPIED"
	RoomReserved    = "RESERVED"
	RoomCleaning    = "CLEANING"
	RoomMaintenance = "MAINTENANCE"
)

// Room habitación física; pertenece a un RoomType del mismo tenant.
type Room struct {
	ID           int64
	Number       string
	Floor        int
	RoomTypeID   int64
	RoomTypeName string // expandido
	Status       string
	Notes        string
	Audit
}
