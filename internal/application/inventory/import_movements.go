package inventory

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/jhoicas/stock-ledger-api/internal/domain/entity"
	"github.com/jhoicas/stock-ledger-api/internal/domain/repository"
)

// ImportRow fila de un ledger heredado. Quantity nil se conserva como nula.
type ImportRow struct {
	Line      int
	Date      time.Time
	ProductID string
	Type      string
	Quantity  *int
	OrderID   string
	Notes     string
}

// ImportSkip fila descartada y el motivo.
type ImportSkip struct {
	Line   int
	Reason string
}

// ImportResult resumen de una importación.
type ImportResult struct {
	Imported int
	Skipped  []ImportSkip
}

// ImportMovementsUseCase carga movimientos históricos conservando fecha y cantidad tal cual.
// Los IDs se asignan desde la secuencia, en el orden de las filas.
type ImportMovementsUseCase struct {
	txRunner TxRunner
}

// NewImportMovementsUseCase construye el caso de uso.
func NewImportMovementsUseCase(txRunner TxRunner) *ImportMovementsUseCase {
	return &ImportMovementsUseCase{txRunner: txRunner}
}

// Import inserta las filas en una sola transacción. Filas de productos inexistentes se omiten
// y se reportan; cualquier otro error revierte todo. Con dryRun solo valida.
func (uc *ImportMovementsUseCase) Import(ctx context.Context, rows []ImportRow, dryRun bool) (*ImportResult, error) {
	res := &ImportResult{}
	err := uc.txRunner.Run(ctx, func(movRepo repository.MovementRepository, productRepo repository.ProductRepository) error {
		known := make(map[string]bool)
		for _, row := range rows {
			pid := strings.TrimSpace(row.ProductID)
			exists, seen := known[pid]
			if !seen {
				p, err := productRepo.GetByID(ctx, pid)
				if err != nil {
					return err
				}
				exists = p != nil
				known[pid] = exists
			}
			if !exists {
				res.Skipped = append(res.Skipped, ImportSkip{Line: row.Line, Reason: fmt.Sprintf("producto %q no existe", pid)})
				continue
			}
			if dryRun {
				res.Imported++
				continue
			}
			id, err := movRepo.NextID(ctx)
			if err != nil {
				return err
			}
			m := &entity.Movement{
				ID:        id,
				Date:      row.Date,
				ProductID: pid,
				Type:      row.Type,
				Quantity:  row.Quantity,
				OrderID:   row.OrderID,
				Notes:     row.Notes,
			}
			if err := movRepo.Create(ctx, m); err != nil {
				return fmt.Errorf("línea %d: %w", row.Line, err)
			}
			res.Imported++
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return res, nil
}
