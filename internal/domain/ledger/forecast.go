package ledger

import (
	"encoding/json"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/stock-ledger-api/internal/domain"
	"github.com/jhoicas/stock-ledger-api/internal/domain/entity"
)

// Límites de la ventana de consumo, en días.
const (
	MinWindowDays     = 7
	MaxWindowDays     = 365
	DefaultWindowDays = 30
)

// ValidateWindow rechaza ventanas fuera de [MinWindowDays, MaxWindowDays]. No ajusta el valor.
func ValidateWindow(days int) error {
	if days < MinWindowDays || days > MaxWindowDays {
		return domain.ErrInvalidWindow
	}
	return nil
}

// WindowStart devuelve el instante desde el cual cuentan los movimientos: now - days.
func WindowStart(now time.Time, days int) time.Time {
	return now.Add(-time.Duration(days) * 24 * time.Hour)
}

// Consumed suma |cantidad| de los movimientos de consumo con fecha >= since.
// Cantidad nula aporta 0.
func Consumed(movements []*entity.Movement, since time.Time) int {
	total := 0
	for _, m := range movements {
		if m == nil || m.Date.Before(since) {
			continue
		}
		if !IsConsumption(m.Type, m.Notes) || m.Quantity == nil {
			continue
		}
		q := *m.Quantity
		if q < 0 {
			q = -q
		}
		total += q
	}
	return total
}

// DaysRemaining es el resultado etiquetado de la proyección: finito (días) o ilimitado.
// El valor cero es Unbounded.
type DaysRemaining struct {
	days   decimal.Decimal
	finite bool
}

// FiniteDays construye un DaysRemaining finito redondeado a 1 decimal.
func FiniteDays(d decimal.Decimal) DaysRemaining {
	return DaysRemaining{days: d.Round(1), finite: true}
}

// Unbounded representa consumo cero: el stock nunca se agota en la proyección.
func Unbounded() DaysRemaining { return DaysRemaining{} }

// IsUnbounded informa si la proyección es ilimitada.
func (d DaysRemaining) IsUnbounded() bool { return !d.finite }

// Days devuelve los días y true si es finito.
func (d DaysRemaining) Days() (decimal.Decimal, bool) { return d.days, d.finite }

// UnboundedLabel es la representación textual del valor ilimitado.
const UnboundedLabel = "unbounded"

func (d DaysRemaining) String() string {
	if !d.finite {
		return UnboundedLabel
	}
	return d.days.StringFixed(1)
}

// MarshalJSON emite un número con 1 decimal o la cadena "unbounded".
func (d DaysRemaining) MarshalJSON() ([]byte, error) {
	if !d.finite {
		return json.Marshal(UnboundedLabel)
	}
	return []byte(d.days.StringFixed(1)), nil
}

// UnmarshalJSON acepta un número o la cadena "unbounded".
func (d *DaysRemaining) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err == nil {
		if s != UnboundedLabel {
			return domain.ErrInvalidInput
		}
		*d = Unbounded()
		return nil
	}
	v, err := decimal.NewFromString(string(b))
	if err != nil {
		return err
	}
	*d = FiniteDays(v)
	return nil
}

// Projection es el pronóstico de un producto.
type Projection struct {
	Stock            int
	Consumed         int
	WindowDays       int
	DailyConsumption decimal.Decimal // redondeado a 2 decimales
	DaysRemaining    DaysRemaining   // redondeado a 1 decimal
}

// Project calcula consumo diario y días restantes. Redondeo: mitad lejos de cero
// (decimal.Round). days_remaining usa la tasa sin redondear: stock*window/consumed.
func Project(stock, consumed, windowDays int) Projection {
	p := Projection{Stock: stock, Consumed: consumed, WindowDays: windowDays, DailyConsumption: decimal.Zero}
	if windowDays <= 0 {
		p.DaysRemaining = Unbounded()
		return p
	}
	rate := decimal.NewFromInt(int64(consumed)).Div(decimal.NewFromInt(int64(windowDays)))
	p.DailyConsumption = rate.Round(2)
	if !rate.IsPositive() {
		p.DaysRemaining = Unbounded()
		return p
	}
	days := decimal.NewFromInt(int64(stock) * int64(windowDays)).Div(decimal.NewFromInt(int64(consumed)))
	p.DaysRemaining = FiniteDays(days)
	return p
}
