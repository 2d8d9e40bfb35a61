package ledger

import "github.com/jhoicas/stock-ledger-api/internal/domain/entity"

// Totals acumula las cantidades clasificadas como entrada y salida.
type Totals struct {
	Inbound  int
	Outbound int
}

// Net devuelve entradas - salidas.
func (t Totals) Net() int { return t.Inbound - t.Outbound }

// Sum recorre los movimientos y acumula según Classify. Cantidad nula cuenta 0.
// El resultado no depende del orden de los movimientos.
func Sum(movements []*entity.Movement) Totals {
	var t Totals
	for _, m := range movements {
		if m == nil {
			continue
		}
		d := Classify(m.Type, m.Notes)
		q := m.QuantityOrZero()
		if d.countsInbound() {
			t.Inbound += q
		}
		if d.countsOutbound() {
			t.Outbound += q
		}
	}
	return t
}

// Stock es el stock derivado: Sum(movements).Net(). Sin movimientos, 0.
func Stock(movements []*entity.Movement) int {
	return Sum(movements).Net()
}
