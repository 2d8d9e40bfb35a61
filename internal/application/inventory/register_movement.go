package inventory

import (
	"context"
	"strings"
	"time"

	"github.com/jhoicas/stock-ledger-api/internal/application/dto"
	"github.com/jhoicas/stock-ledger-api/internal/domain"
	"github.com/jhoicas/stock-ledger-api/internal/domain/entity"
	"github.com/jhoicas/stock-ledger-api/internal/domain/repository"
)

// RegisterMovementUseCase agrega movimientos al ledger y los lista.
// El ledger es de solo inserción: no hay caso de uso de edición ni borrado.
type RegisterMovementUseCase struct {
	txRunner TxRunner
	movRepo  repository.MovementRepository
	now      Clock
}

// NewRegisterMovementUseCase construye el caso de uso.
func NewRegisterMovementUseCase(txRunner TxRunner, movRepo repository.MovementRepository) *RegisterMovementUseCase {
	return &RegisterMovementUseCase{txRunner: txRunner, movRepo: movRepo, now: time.Now}
}

// WithClock reemplaza el reloj (tests).
func (uc *RegisterMovementUseCase) WithClock(now Clock) *RegisterMovementUseCase {
	uc.now = now
	return uc
}

// Register valida la entrada y persiste el movimiento dentro de una transacción:
// el producto debe existir, la cantidad es obligatoria y la fecha es la del servidor.
func (uc *RegisterMovementUseCase) Register(ctx context.Context, userID string, in dto.CreateMovementRequest) (*dto.MovementResponse, error) {
	in.ProductID = strings.TrimSpace(in.ProductID)
	if in.ProductID == "" || strings.TrimSpace(in.Type) == "" || in.Quantity == nil {
		return nil, domain.ErrInvalidInput
	}
	qty := *in.Quantity

	var created *entity.Movement
	err := uc.txRunner.Run(ctx, func(movRepo repository.MovementRepository, productRepo repository.ProductRepository) error {
		product, err := productRepo.GetByID(ctx, in.ProductID)
		if err != nil {
			return err
		}
		if product == nil {
			return domain.ErrNotFound
		}
		id, err := movRepo.NextID(ctx)
		if err != nil {
			return err
		}
		m := &entity.Movement{
			ID:        id,
			Date:      uc.now(),
			ProductID: product.ID,
			Type:      in.Type,
			Quantity:  &qty,
			OrderID:   in.OrderID,
			Notes:     in.Notes,
			CreatedBy: userID,
		}
		if err := movRepo.Create(ctx, m); err != nil {
			return err
		}
		created = m
		return nil
	})
	if err != nil {
		return nil, err
	}
	return ToMovementResponse(created), nil
}

// List devuelve los movimientos (todos o de un producto) del más reciente al más antiguo.
func (uc *RegisterMovementUseCase) List(ctx context.Context, productID string) (*dto.MovementListResponse, error) {
	list, err := uc.movRepo.List(ctx, strings.TrimSpace(productID))
	if err != nil {
		return nil, err
	}
	items := make([]dto.MovementResponse, 0, len(list))
	for _, m := range list {
		items = append(items, *ToMovementResponse(m))
	}
	return &dto.MovementListResponse{Items: items}, nil
}

// Entries devuelve las entidades tal cual, para exportadores.
func (uc *RegisterMovementUseCase) Entries(ctx context.Context, productID string) ([]*entity.Movement, error) {
	return uc.movRepo.List(ctx, strings.TrimSpace(productID))
}

// ToMovementResponse mapea la entidad al DTO de salida.
func ToMovementResponse(m *entity.Movement) *dto.MovementResponse {
	if m == nil {
		return nil
	}
	return &dto.MovementResponse{
		ID:        m.ID,
		Date:      m.Date,
		ProductID: m.ProductID,
		Type:      m.Type,
		Quantity:  m.Quantity,
		OrderID:   m.OrderID,
		Notes:     m.Notes,
		CreatedBy: m.CreatedBy,
	}
}
