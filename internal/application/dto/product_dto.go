package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateProductRequest entrada para crear un producto. El ID lo asigna el servidor.
type CreateProductRequest struct {
	Name          string          `json:"product_name"`
	SKU           string          `json:"sku"`
	UnitOfMeasure string          `json:"unit_of_measure"`
	Cost          decimal.Decimal `json:"cost"`
	SalePrice     decimal.Decimal `json:"sale_price"`
	Category      string          `json:"category"`
	Location      string          `json:"location"`
	Active        *bool           `json:"active"` // nil => true
	Photo         string          `json:"photo"`
}

// UpdateProductRequest entrada para actualizar un producto; solo se aplican los campos presentes.
type UpdateProductRequest struct {
	Name          *string          `json:"product_name"`
	SKU           *string          `json:"sku"`
	UnitOfMeasure *string          `json:"unit_of_measure"`
	Cost          *decimal.Decimal `json:"cost"`
	SalePrice     *decimal.Decimal `json:"sale_price"`
	Category      *string          `json:"category"`
	Location      *string          `json:"location"`
	Active        *bool            `json:"active"`
	Photo         *string          `json:"photo"`
}

// ProductResponse salida de un producto con su stock derivado del ledger.
type ProductResponse struct {
	ID            string          `json:"product_id"`
	Name          string          `json:"product_name"`
	SKU           string          `json:"sku"`
	UnitOfMeasure string          `json:"unit_of_measure"`
	Cost          decimal.Decimal `json:"cost"`
	SalePrice     decimal.Decimal `json:"sale_price"`
	Category      string          `json:"category"`
	Location      string          `json:"location"`
	Active        bool            `json:"active"`
	Photo         string          `json:"photo"`
	Stock         int             `json:"stock"`
	CreatedAt     time.Time       `json:"created_at"`
	UpdatedAt     time.Time       `json:"updated_at"`
}

// ProductListResponse catálogo completo.
type ProductListResponse struct {
	Items []ProductResponse `json:"items"`
}
