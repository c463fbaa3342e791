package entity

// Category agrupa productos del inventario.
type Category struct {
	ID           int64
	Name         string
	Description  string
	ProductCount int64 // expandido: productos activos
	Audit
}
