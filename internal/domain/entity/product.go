package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// ProductIDPrefix prefijo de los identificadores de producto (P001, P002, ...).
const ProductIDPrefix = "P"

// Product representa un producto del catálogo.
// El stock no es un atributo: se deriva en cada lectura agregando sus movimientos.
type Product struct {
	ID            string
	Name          string
	SKU           string
	UnitOfMeasure string
	Cost          decimal.Decimal
	SalePrice     decimal.Decimal
	Category      string
	Location      string
	Active        bool
	Photo         string // referencia (URL o ruta); el binario vive fuera de este servicio
	CreatedAt     time.Time
	UpdatedAt     time.Time
}
