// Package ledger contiene la lógica pura sobre el libro de movimientos:
// clasificación entrada/salida, stock derivado y proyección de consumo.
// No conoce la base de datos ni HTTP; opera sobre entity.Movement ya leídos.
package ledger

import (
	"golang.org/x/text/cases"

	"github.com/jhoicas/stock-ledger-api/internal/domain/entity"
)

// Direction es el efecto de un movimiento sobre el stock.
type Direction int

const (
	Unclassified Direction = iota
	Inbound
	Outbound
	// Contradictory: cumple la regla de entrada y la de salida a la vez
	// (ej. tipo "Ingreso" con nota "Venta"). Suma en ambos totales, aporte neto 0.
	Contradictory
)

func (d Direction) String() string {
	switch d {
	case Inbound:
		return "inbound"
	case Outbound:
		return "outbound"
	case Contradictory:
		return "contradictory"
	default:
		return "unclassified"
	}
}

// countsInbound / countsOutbound indican en qué suma participa el movimiento.
func (d Direction) countsInbound() bool  { return d == Inbound || d == Contradictory }
func (d Direction) countsOutbound() bool { return d == Outbound || d == Contradictory }

// equalFold compara con plegado Unicode. Un cases.Caser guarda estado: uno por llamada.
func equalFold(a, b string) bool {
	f := cases.Fold()
	return f.String(a) == f.String(b)
}

// Classify aplica la regla dual del agregador (insensible a mayúsculas):
//
//	entrada: tipo == "Ingreso" o nota == "Compra"
//	salida:  tipo == "Egreso"  o nota == "Venta"
func Classify(movementType, notes string) Direction {
	in := equalFold(movementType, entity.MovementTypeIngreso) || equalFold(notes, entity.NoteCompra)
	out := equalFold(movementType, entity.MovementTypeEgreso) || equalFold(notes, entity.NoteVenta)
	switch {
	case in && out:
		return Contradictory
	case in:
		return Inbound
	case out:
		return Outbound
	}
	return Unclassified
}

// IsConsumption es la regla de salida del pronosticador: coincidencia exacta
// (sensible a mayúsculas) de nota "Venta" o tipo "Egreso", sin plegado.
func IsConsumption(movementType, notes string) bool {
	return notes == entity.NoteVenta || movementType == entity.MovementTypeEgreso
}
