package inventory

import (
	"context"

	"github.com/jhoicas/stock-ledger-api/internal/domain/ledger"
	"github.com/jhoicas/stock-ledger-api/internal/domain/repository"
)

// StockUseCase deriva el stock de un producto agregando su ledger.
type StockUseCase struct {
	movRepo repository.MovementRepository
}

// NewStockUseCase construye el agregador.
func NewStockUseCase(movRepo repository.MovementRepository) *StockUseCase {
	return &StockUseCase{movRepo: movRepo}
}

// StockOf devuelve entradas - salidas del producto. Sin movimientos (o producto
// inexistente) devuelve 0. No modifica nada.
func (uc *StockUseCase) StockOf(ctx context.Context, productID string) (int, error) {
	movements, err := uc.movRepo.ListByProduct(ctx, productID, nil)
	if err != nil {
		return 0, err
	}
	return ledger.Stock(movements), nil
}
