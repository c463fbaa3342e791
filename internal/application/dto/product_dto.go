package dto

import "github.com/shopspring/decimal"

// CreateCategoryRequest entrada para crear una categoría.
type CreateCategoryRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

// UpdateCategoryRequest solo se aplican los campos presentes.
type UpdateCategoryRequest struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
}

// CategoryResponse salida de una categoría.
type CategoryResponse struct {
	ID           int64  `json:"id"`
	Name         string `json:"name"`
	Description  string `json:"description"`
	ProductCount int64  `json:"product_count"`
	AuditResponse
}

// CategoryStats agregados de categorías.
type CategoryStats struct {
	TotalCategories        int64   `json:"total_categories"`
	TotalProducts          int64   `json:"total_products"`
	AvgProductsPerCategory float64 `json:"avg_products_per_category"`
}

// CreateProductRequest entrada para crear un producto.
type CreateProductRequest struct {
	Name        string          `json:"name"`
	SKU         string          `json:"sku"`
	Description string          `json:"description"`
	CategoryID  *int64          `json:"category_id"`
	Price       decimal.Decimal `json:"price"`
	Cost        decimal.Decimal `json:"cost"`
	Stock       int             `json:"stock"`
	MinStock    int             `json:"min_stock"`
	Unit        string          `json:"unit"`
}

// UpdateProductRequest entrada para actualizar un producto (stock solo vía ajuste).
type UpdateProductRequest struct {
	Name        *string          `json:"name"`
	SKU         *string          `json:"sku"`
	Description *string          `json:"description"`
	CategoryID  *int64           `json:"category_id"`
	Price       *decimal.Decimal `json:"price"`
	Cost        *decimal.Decimal `json:"cost"`
	MinStock    *int             `json:"min_stock"`
	Unit        *string          `json:"unit"`
}

// AdjustStockRequest ajuste relativo de stock (positivo entra, negativo sale).
type AdjustStockRequest struct {
	Delta int `json:"delta"`
}

// ProductResponse salida de un producto.
type ProductResponse struct {
	ID           int64           `json:"id"`
	Name         string          `json:"name"`
	SKU          string          `json:"sku"`
	Description  string          `json:"description"`
	CategoryID   *int64          `json:"category_id"`
	CategoryName string          `json:"category_name,omitempty"`
	Price        decimal.Decimal `json:"price"`
	Cost         decimal.Decimal `json:"cost"`
	Stock        int             `json:"stock"`
	MinStock     int             `json:"min_stock"`
	Unit         string          `json:"unit"`
	LowStock     bool            `json:"low_stock"`
	AuditResponse
}

// ProductStats agregados del inventario.
type ProductStats struct {
	TotalProducts  int64           `json:"total_products"`
	LowStock       int64           `json:"low_stock"`
	InventoryValue decimal.Decimal `json:"inventory_value"`
	AvgPrice       decimal.Decimal `json:"avg_price"`
}
