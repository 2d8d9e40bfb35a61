package dto

import "time"

// CreateMovementRequest body para POST /api/movements.
// Quantity es puntero para distinguir "ausente" de 0: ausente se rechaza.
type CreateMovementRequest struct {
	ProductID string `json:"product_id"`
	Type      string `json:"movement_type"`
	Quantity  *int   `json:"quantity"`
	OrderID   string `json:"order_id"`
	Notes     string `json:"notes"`
}

// MovementResponse salida de un movimiento del ledger.
type MovementResponse struct {
	ID        string    `json:"movement_id"`
	Date      time.Time `json:"date"`
	ProductID string    `json:"product_id"`
	Type      string    `json:"movement_type"`
	Quantity  *int      `json:"quantity"`
	OrderID   string    `json:"order_id,omitempty"`
	Notes     string    `json:"notes"`
	CreatedBy string    `json:"created_by,omitempty"`
}

// MovementListResponse movimientos del más reciente al más antiguo.
type MovementListResponse struct {
	Items []MovementResponse `json:"items"`
}
