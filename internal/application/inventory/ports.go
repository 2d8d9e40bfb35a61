package inventory

import (
	"context"
	"time"

	"github.com/jhoicas/stock-ledger-api/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción de BD, pasando repositorios atados a esa tx.
// La reserva del ID M### y la inserción del movimiento confirman juntas.
type TxRunner interface {
	Run(ctx context.Context, fn func(
		movRepo repository.MovementRepository,
		productRepo repository.ProductRepository,
	) error) error
}

// Clock devuelve la hora actual; se inyecta para fijar "ahora" en tests.
type Clock func() time.Time
