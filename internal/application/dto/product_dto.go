package dto

import "time"

// CreateProductRequest entrada para crear un producto. El stock inicia en 0 y solo cambia por movimientos.
type CreateProductRequest struct {
	Name         string `json:"name" validate:"required,min=1,max=200"`
	Model        string `json:"model" validate:"max=200"`
	Brand        string `json:"brand" validate:"max=100"`
	CategoryID   string `json:"category_id" validate:"required,uuid"`
	Type         string `json:"type" validate:"required,oneof=asset consumable"`
	MinimumStock *int   `json:"minimum_stock" validate:"omitempty,min=0"`
}

// UpdateProductRequest entrada para actualizar un producto (sin stock).
type UpdateProductRequest struct {
	Name         *string `json:"name" validate:"omitempty,min=1,max=200"`
	Model        *string `json:"model" validate:"omitempty,max=200"`
	Brand        *string `json:"brand" validate:"omitempty,max=100"`
	CategoryID   *string `json:"category_id" validate:"omitempty,uuid"`
	MinimumStock *int    `json:"minimum_stock" validate:"omitempty,min=0"`
}

// AdjustStockRequest body de PATCH /api/products/:id/stock.
type AdjustStockRequest struct {
	Delta int `json:"delta" validate:"required"`
}

// StockResponse stock resultante de un ajuste.
type StockResponse struct {
	ProductID    string `json:"product_id"`
	CurrentStock int    `json:"current_stock"`
}

// ProductResponse salida de un producto.
type ProductResponse struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Model        string    `json:"model"`
	Brand        string    `json:"brand"`
	CategoryID   string    `json:"category_id"`
	Type         string    `json:"type"`
	CurrentStock int       `json:"current_stock"`
	MinimumStock *int      `json:"minimum_stock"`
	Active       bool      `json:"active"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// ProductListResponse lista paginada de productos.
type ProductListResponse struct {
	Items []ProductResponse `json:"items"`
	Page  PageResponse      `json:"page"`
}
