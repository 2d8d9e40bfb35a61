package inventory_test

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/stock-ledger-api/internal/application/dto"
	"github.com/jhoicas/stock-ledger-api/internal/application/inventory"
	"github.com/jhoicas/stock-ledger-api/internal/domain"
	"github.com/jhoicas/stock-ledger-api/internal/domain/entity"
	"github.com/jhoicas/stock-ledger-api/internal/infrastructure/memory"
)

var fixedNow = time.Date(2024, 6, 30, 12, 0, 0, 0, time.UTC)

func qty(n int) *int { return &n }

type fixture struct {
	store    *memory.Store
	stock    *inventory.StockUseCase
	forecast *inventory.ForecastUseCase
	register *inventory.RegisterMovementUseCase
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	store := memory.NewStore()
	stock := inventory.NewStockUseCase(store.Movements())
	return &fixture{
		store:    store,
		stock:    stock,
		forecast: inventory.NewForecastUseCase(store.Products(), store.Movements(), stock, 30).WithClock(func() time.Time { return fixedNow }),
		register: inventory.NewRegisterMovementUseCase(store.TxRunner(), store.Movements()).WithClock(func() time.Time { return fixedNow }),
	}
}

func (f *fixture) addProduct(t *testing.T, id, name string, active bool) {
	t.Helper()
	require.NoError(t, f.store.Products().Create(context.Background(), &entity.Product{ID: id, Name: name, Active: active}))
}

func (f *fixture) addMovement(id, productID, typ, notes string, q *int, daysAgo int) {
	f.store.Movements().Append(&entity.Movement{
		ID:        id,
		Date:      fixedNow.Add(-time.Duration(daysAgo) * 24 * time.Hour),
		ProductID: productID,
		Type:      typ,
		Quantity:  q,
		Notes:     notes,
	})
}

// ──────────────────────────────────────────────────────────────────────────────
// StockOf
// ──────────────────────────────────────────────────────────────────────────────

func TestStockOf_InboundMinusOutbound(t *testing.T) {
	f := newFixture(t)
	f.addProduct(t, "P001", "Tornillo", true)
	f.addMovement("M001", "P001", "Ingreso", "", qty(100), 40)
	f.addMovement("M002", "P001", "Egreso", "Venta", qty(30), 10)
	f.addMovement("M003", "P001", "", "compra", qty(5), 5)
	f.addMovement("M004", "P001", "Ajuste", "", qty(999), 1)

	stock, err := f.stock.StockOf(context.Background(), "P001")
	require.NoError(t, err)
	assert.Equal(t, 75, stock)
}

func TestStockOf_UnknownProductIsZero(t *testing.T) {
	f := newFixture(t)
	stock, err := f.stock.StockOf(context.Background(), "P999")
	require.NoError(t, err)
	assert.Equal(t, 0, stock)
}

func TestStockOf_NullQuantityCountsZero(t *testing.T) {
	f := newFixture(t)
	f.addProduct(t, "P001", "Tornillo", true)
	f.addMovement("M001", "P001", "Ingreso", "", nil, 3)
	f.addMovement("M002", "P001", "Ingreso", "", qty(4), 2)

	stock, err := f.stock.StockOf(context.Background(), "P001")
	require.NoError(t, err)
	assert.Equal(t, 4, stock)
}

// ──────────────────────────────────────────────────────────────────────────────
// Forecast
// ──────────────────────────────────────────────────────────────────────────────

func TestForecast_EndToEnd(t *testing.T) {
	f := newFixture(t)
	f.addProduct(t, "P001", "Tornillo", true)
	f.addMovement("M001", "P001", "Ingreso", "", qty(100), 60)
	f.addMovement("M002", "P001", "Egreso", "", qty(30), 5)

	out, err := f.forecast.Forecast(context.Background(), "P001", 30)
	require.NoError(t, err)
	assert.Equal(t, "Tornillo", out.ProductName)
	assert.Equal(t, 70, out.CurrentStock)
	assert.Equal(t, 30, out.TotalConsumed)
	assert.Equal(t, json.Number("1.00"), out.DailyConsumption)
	assert.Equal(t, "70.0", out.DaysRemaining.String())
}

func TestForecast_DefaultWindow(t *testing.T) {
	f := newFixture(t)
	f.addProduct(t, "P001", "Tornillo", true)

	out, err := f.forecast.Forecast(context.Background(), "P001", 0)
	require.NoError(t, err)
	assert.Equal(t, 30, out.WindowDays)
	assert.True(t, out.DaysRemaining.IsUnbounded())
	assert.Equal(t, json.Number("0.00"), out.DailyConsumption)
}

func TestForecast_WindowOutOfRange(t *testing.T) {
	f := newFixture(t)
	f.addProduct(t, "P001", "Tornillo", true)

	for _, days := range []int{6, 366, -1} {
		_, err := f.forecast.Forecast(context.Background(), "P001", days)
		assert.ErrorIs(t, err, domain.ErrInvalidWindow, "days=%d", days)
	}
}

func TestForecast_UnknownProduct(t *testing.T) {
	f := newFixture(t)
	_, err := f.forecast.Forecast(context.Background(), "P404", 30)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestForecast_ExcludesOldAndNonExactRows(t *testing.T) {
	f := newFixture(t)
	f.addProduct(t, "P001", "Tornillo", true)
	f.addMovement("M001", "P001", "Ingreso", "", qty(500), 100)
	f.addMovement("M002", "P001", "Egreso", "", qty(14), 3)
	f.addMovement("M003", "P001", "egreso", "", qty(50), 3) // descuenta stock, no consumo
	f.addMovement("M004", "P001", "Egreso", "", qty(70), 8) // fuera de la ventana de 7 días
	f.addMovement("M005", "P001", "Otro", "Venta", qty(-7), 1)

	out, err := f.forecast.Forecast(context.Background(), "P001", 7)
	require.NoError(t, err)
	assert.Equal(t, 500-14-50-70-(-7), out.CurrentStock)
	assert.Equal(t, 21, out.TotalConsumed)
	assert.Equal(t, json.Number("3.00"), out.DailyConsumption)
}

func TestForecastCatalog_AllAndActive(t *testing.T) {
	f := newFixture(t)
	f.addProduct(t, "P001", "Tornillo", true)
	f.addProduct(t, "P002", "Tuerca", false)
	f.addProduct(t, "P010", "Arandela", true)
	f.addMovement("M001", "P002", "Ingreso", "", qty(10), 20)
	f.addMovement("M002", "P002", "Egreso", "", qty(3), 2)

	all, err := f.forecast.ForecastCatalog(context.Background(), 30, false)
	require.NoError(t, err)
	require.Len(t, all.Items, 3)
	assert.Equal(t, []string{"P001", "P002", "P010"}, []string{all.Items[0].ProductID, all.Items[1].ProductID, all.Items[2].ProductID})
	assert.Equal(t, json.Number("0.10"), all.Items[1].DailyConsumption)
	assert.Equal(t, "70.0", all.Items[1].DaysRemaining.String())

	active, err := f.forecast.ForecastCatalog(context.Background(), 30, true)
	require.NoError(t, err)
	assert.Len(t, active.Items, 2)
}

func TestForecastCatalog_EmptyCatalog(t *testing.T) {
	f := newFixture(t)
	out, err := f.forecast.ForecastCatalog(context.Background(), 30, false)
	require.NoError(t, err)
	assert.NotNil(t, out.Items)
	assert.Empty(t, out.Items)
}

// ──────────────────────────────────────────────────────────────────────────────
// RegisterMovement
// ──────────────────────────────────────────────────────────────────────────────

func TestRegister_AssignsSequentialIDsAndServerDate(t *testing.T) {
	f := newFixture(t)
	f.addProduct(t, "P001", "Tornillo", true)

	first, err := f.register.Register(context.Background(), "u-1", dto.CreateMovementRequest{ProductID: "P001", Type: "Ingreso", Quantity: qty(10)})
	require.NoError(t, err)
	second, err := f.register.Register(context.Background(), "u-1", dto.CreateMovementRequest{ProductID: "P001", Type: "Egreso", Quantity: qty(4), Notes: "Venta"})
	require.NoError(t, err)

	assert.Equal(t, "M001", first.ID)
	assert.Equal(t, "M002", second.ID)
	assert.Equal(t, fixedNow, second.Date)
	assert.Equal(t, "u-1", second.CreatedBy)

	stock, err := f.stock.StockOf(context.Background(), "P001")
	require.NoError(t, err)
	assert.Equal(t, 6, stock)
}

func TestRegister_Validation(t *testing.T) {
	f := newFixture(t)
	f.addProduct(t, "P001", "Tornillo", true)

	_, err := f.register.Register(context.Background(), "u-1", dto.CreateMovementRequest{ProductID: "P001", Type: "Ingreso"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput, "cantidad nula se rechaza")

	_, err = f.register.Register(context.Background(), "u-1", dto.CreateMovementRequest{Type: "Ingreso", Quantity: qty(1)})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = f.register.Register(context.Background(), "u-1", dto.CreateMovementRequest{ProductID: "P404", Type: "Ingreso", Quantity: qty(1)})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestList_NewestFirst(t *testing.T) {
	f := newFixture(t)
	f.addProduct(t, "P001", "Tornillo", true)
	f.addProduct(t, "P002", "Tuerca", true)
	f.addMovement("M001", "P001", "Ingreso", "", qty(1), 3)
	f.addMovement("M002", "P002", "Ingreso", "", qty(1), 2)
	f.addMovement("M003", "P001", "Ingreso", "", qty(1), 1)

	all, err := f.register.List(context.Background(), "")
	require.NoError(t, err)
	require.Len(t, all.Items, 3)
	assert.Equal(t, "M003", all.Items[0].ID)
	assert.Equal(t, "M001", all.Items[2].ID)

	one, err := f.register.List(context.Background(), "P002")
	require.NoError(t, err)
	require.Len(t, one.Items, 1)
	assert.Equal(t, "M002", one.Items[0].ID)
}

// ──────────────────────────────────────────────────────────────────────────────
// ImportMovements
// ──────────────────────────────────────────────────────────────────────────────

func TestImport_SkipsUnknownProductsAndKeepsNullQuantity(t *testing.T) {
	f := newFixture(t)
	f.addProduct(t, "P001", "Tornillo", true)
	uc := inventory.NewImportMovementsUseCase(f.store.TxRunner())

	rows := []inventory.ImportRow{
		{Line: 2, Date: fixedNow.AddDate(0, 0, -3), ProductID: "P001", Type: "Ingreso", Quantity: qty(10)},
		{Line: 3, Date: fixedNow.AddDate(0, 0, -2), ProductID: "P404", Type: "Ingreso", Quantity: qty(1)},
		{Line: 4, Date: fixedNow.AddDate(0, 0, -1), ProductID: "P001", Type: "Egreso"},
	}

	dry, err := uc.Import(context.Background(), rows, true)
	require.NoError(t, err)
	assert.Equal(t, 2, dry.Imported)
	all, err := f.register.List(context.Background(), "")
	require.NoError(t, err)
	assert.Empty(t, all.Items, "dry-run no inserta")

	res, err := uc.Import(context.Background(), rows, false)
	require.NoError(t, err)
	assert.Equal(t, 2, res.Imported)
	require.Len(t, res.Skipped, 1)
	assert.Equal(t, 3, res.Skipped[0].Line)

	all, err = f.register.List(context.Background(), "P001")
	require.NoError(t, err)
	require.Len(t, all.Items, 2)
	assert.Equal(t, "M002", all.Items[0].ID)
	assert.Nil(t, all.Items[0].Quantity)

	stock, err := f.stock.StockOf(context.Background(), "P001")
	require.NoError(t, err)
	assert.Equal(t, 10, stock)
}
