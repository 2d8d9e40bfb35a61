package repository

import (
	"context"

	"github.com/jhoicas/stock-ledger-api/internal/domain/entity"
)

// ProductRepository define el puerto de persistencia del catálogo (DIP).
// GetByID devuelve (nil, nil) si el producto no existe.
type ProductRepository interface {
	NextID(ctx context.Context) (string, error)
	Create(ctx context.Context, product *entity.Product) error
	GetByID(ctx context.Context, id string) (*entity.Product, error)
	Update(ctx context.Context, product *entity.Product) error
	List(ctx context.Context, onlyActive bool) ([]*entity.Product, error)
	Delete(ctx context.Context, id string) error
}
