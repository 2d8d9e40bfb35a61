package repository

import (
	"context"
	"time"

	"github.com/jhoicas/stock-ledger-api/internal/domain/entity"
)

// MovementRepository define el puerto del ledger de movimientos. Solo inserción y lectura.
type MovementRepository interface {
	NextID(ctx context.Context) (string, error)
	Create(ctx context.Context, movement *entity.Movement) error
	// ListByProduct devuelve los movimientos del producto; since (opcional) filtra date >= since.
	ListByProduct(ctx context.Context, productID string, since *time.Time) ([]*entity.Movement, error)
	// List devuelve movimientos ordenados por fecha descendente; productID vacío = todos.
	List(ctx context.Context, productID string) ([]*entity.Movement, error)
}
