package pdf

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/stock-ledger-api/internal/application/dto"
	"github.com/jhoicas/stock-ledger-api/internal/domain/ledger"
)

func TestGenerateForecastPDF(t *testing.T) {
	report := &dto.ForecastListResponse{
		WindowDays: 30,
		Items: []dto.ForecastResponse{
			{ProductID: "P001", ProductName: "Tornillo", CurrentStock: 70, TotalConsumed: 30,
				WindowDays: 30, DailyConsumption: "1.00", DaysRemaining: ledger.FiniteDays(decimal.NewFromInt(70))},
			{ProductID: "P002", ProductName: "Tuerca", CurrentStock: 5, TotalConsumed: 0,
				WindowDays: 30, DailyConsumption: "0.00", DaysRemaining: ledger.Unbounded()},
		},
	}
	b, err := NewMarotoForecastGenerator("").GenerateForecastPDF(context.Background(), report, time.Now())
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(b, []byte("%PDF")), "debe ser un documento PDF")
}

func TestGenerateForecastPDF_NilReport(t *testing.T) {
	_, err := NewMarotoForecastGenerator("x").GenerateForecastPDF(context.Background(), nil, time.Now())
	assert.Error(t, err)
}

func TestAtRisk(t *testing.T) {
	assert.True(t, atRisk(dto.ForecastResponse{DaysRemaining: ledger.FiniteDays(decimal.RequireFromString("6.9"))}))
	assert.False(t, atRisk(dto.ForecastResponse{DaysRemaining: ledger.FiniteDays(decimal.NewFromInt(7))}))
	assert.False(t, atRisk(dto.ForecastResponse{DaysRemaining: ledger.Unbounded()}))
}
