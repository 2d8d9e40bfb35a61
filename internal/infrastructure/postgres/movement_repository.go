package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/stock-ledger-api/internal/domain"
	"github.com/jhoicas/stock-ledger-api/internal/domain/entity"
	"github.com/jhoicas/stock-ledger-api/internal/domain/repository"
)

var _ repository.MovementRepository = (*MovementRepo)(nil)

const movementColumns = `id, date, product_id, movement_type, quantity, order_id, notes, created_by`

// MovementRepo implementación del ledger sobre PostgreSQL (usable con pool o tx).
// Solo inserta y lee: no existe camino de actualización ni borrado.
type MovementRepo struct {
	q Querier
}

// NewMovementRepository construye el adaptador. Pasar pool o tx (Querier).
func NewMovementRepository(q Querier) *MovementRepo {
	return &MovementRepo{q: q}
}

// NextID reserva el siguiente identificador M### desde la secuencia movement_id_seq.
func (r *MovementRepo) NextID(ctx context.Context) (string, error) {
	var n int64
	if err := r.q.QueryRow(ctx, `SELECT nextval('movement_id_seq')`).Scan(&n); err != nil {
		return "", fmt.Errorf("next movement id: %w", err)
	}
	return entity.FormatSequentialID(entity.MovementIDPrefix, n), nil
}

// Create persiste un movimiento.
func (r *MovementRepo) Create(ctx context.Context, m *entity.Movement) error {
	query := `
		INSERT INTO movements (` + movementColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	_, err := r.q.Exec(ctx, query,
		m.ID, m.Date, m.ProductID, m.Type, m.Quantity,
		nullIfEmpty(m.OrderID), nullIfEmpty(m.Notes), nullIfEmpty(m.CreatedBy),
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		if isForeignKeyViolation(err) {
			return domain.ErrNotFound
		}
		return fmt.Errorf("create movement: %w", err)
	}
	return nil
}

// ListByProduct lista los movimientos de un producto, opcionalmente desde una fecha (inclusive).
func (r *MovementRepo) ListByProduct(ctx context.Context, productID string, since *time.Time) ([]*entity.Movement, error) {
	query := `SELECT ` + movementColumns + ` FROM movements WHERE product_id = $1`
	args := []any{productID}
	if since != nil {
		query += ` AND date >= $2`
		args = append(args, *since)
	}
	query += ` ORDER BY date, length(id), id`
	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list movements by product: %w", err)
	}
	return collectMovements(rows)
}

// List lista movimientos (todos o de un producto) del más reciente al más antiguo.
func (r *MovementRepo) List(ctx context.Context, productID string) ([]*entity.Movement, error) {
	query := `SELECT ` + movementColumns + ` FROM movements`
	var args []any
	if productID != "" {
		query += ` WHERE product_id = $1`
		args = append(args, productID)
	}
	query += ` ORDER BY date DESC, length(id) DESC, id DESC`
	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list movements: %w", err)
	}
	return collectMovements(rows)
}

func collectMovements(rows pgx.Rows) ([]*entity.Movement, error) {
	defer rows.Close()
	list := make([]*entity.Movement, 0)
	for rows.Next() {
		var m entity.Movement
		var orderID, notes, createdBy *string
		if err := rows.Scan(&m.ID, &m.Date, &m.ProductID, &m.Type, &m.Quantity,
			&orderID, &notes, &createdBy); err != nil {
			return nil, fmt.Errorf("scan movement: %w", err)
		}
		m.OrderID = derefString(orderID)
		m.Notes = derefString(notes)
		m.CreatedBy = derefString(createdBy)
		list = append(list, &m)
	}
	return list, rows.Err()
}
