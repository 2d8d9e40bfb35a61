package dto

import (
	"encoding/json"

	"github.com/jhoicas/stock-ledger-api/internal/domain/ledger"
)

// ForecastResponse proyección de agotamiento de un producto.
// daily_consumption se serializa como número con dos decimales fijos; days_remaining
// es un número con un decimal o la cadena "unbounded" cuando no hay consumo.
type ForecastResponse struct {
	ProductID        string               `json:"product_id"`
	ProductName      string               `json:"product_name"`
	CurrentStock     int                  `json:"stock"`
	TotalConsumed    int                  `json:"total_consumed"`
	WindowDays       int                  `json:"window_days"`
	DailyConsumption json.Number          `json:"daily_consumption"`
	DaysRemaining    ledger.DaysRemaining `json:"days_remaining"`
}

// ForecastListResponse pronóstico del catálogo.
type ForecastListResponse struct {
	WindowDays int                `json:"window_days"`
	Items      []ForecastResponse `json:"items"`
}
