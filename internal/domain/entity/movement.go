package entity

import "time"

// MovementIDPrefix prefijo de los identificadores de movimiento (M001, M002, ...).
const MovementIDPrefix = "M"

// Etiquetas y notas convencionales del ledger.
const (
	MovementTypeIngreso = "Ingreso" // entrada
	MovementTypeEgreso  = "Egreso"  // salida
	NoteCompra          = "Compra"
	NoteVenta           = "Venta"
)

// Movement es un evento de stock. Se crea una vez y no se modifica.
// Quantity puede ser nil en filas heredadas; cuenta como 0.
type Movement struct {
	ID        string
	Date      time.Time
	ProductID string
	Type      string
	Quantity  *int
	OrderID   string
	Notes     string
	CreatedBy string
}

// QuantityOrZero devuelve la cantidad o 0 si es nula.
func (m *Movement) QuantityOrZero() int {
	if m == nil || m.Quantity == nil {
		return 0
	}
	return *m.Quantity
}
