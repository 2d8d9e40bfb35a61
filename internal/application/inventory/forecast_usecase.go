package inventory

import (
	"context"
	"encoding/json"
	"time"

	"github.com/jhoicas/stock-ledger-api/internal/application/dto"
	"github.com/jhoicas/stock-ledger-api/internal/domain"
	"github.com/jhoicas/stock-ledger-api/internal/domain/entity"
	"github.com/jhoicas/stock-ledger-api/internal/domain/ledger"
	"github.com/jhoicas/stock-ledger-api/internal/domain/repository"
)

// StockCalculator puerto del agregador de stock.
type StockCalculator interface {
	StockOf(ctx context.Context, productID string) (int, error)
}

// ForecastUseCase proyecta cuántos días dura el stock al ritmo de consumo reciente.
type ForecastUseCase struct {
	productRepo   repository.ProductRepository
	movRepo       repository.MovementRepository
	stock         StockCalculator
	defaultWindow int
	now           Clock
}

// NewForecastUseCase construye el pronosticador. defaultWindow se usa cuando la petición trae 0.
func NewForecastUseCase(
	productRepo repository.ProductRepository,
	movRepo repository.MovementRepository,
	stock StockCalculator,
	defaultWindow int,
) *ForecastUseCase {
	if defaultWindow == 0 {
		defaultWindow = ledger.DefaultWindowDays
	}
	return &ForecastUseCase{
		productRepo:   productRepo,
		movRepo:       movRepo,
		stock:         stock,
		defaultWindow: defaultWindow,
		now:           time.Now,
	}
}

// WithClock reemplaza el reloj (tests).
func (uc *ForecastUseCase) WithClock(now Clock) *ForecastUseCase {
	uc.now = now
	return uc
}

// Window resuelve y valida la ventana pedida: 0 => por defecto; fuera de [7, 365] => domain.ErrInvalidWindow.
func (uc *ForecastUseCase) Window(days int) (int, error) {
	if days == 0 {
		days = uc.defaultWindow
	}
	if err := ledger.ValidateWindow(days); err != nil {
		return 0, err
	}
	return days, nil
}

// Forecast pronóstico de un producto. Producto inexistente => domain.ErrNotFound.
func (uc *ForecastUseCase) Forecast(ctx context.Context, productID string, days int) (*dto.ForecastResponse, error) {
	window, err := uc.Window(days)
	if err != nil {
		return nil, err
	}
	product, err := uc.productRepo.GetByID(ctx, productID)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.ErrNotFound
	}
	return uc.project(ctx, product, window, ledger.WindowStart(uc.now(), window))
}

// ForecastCatalog pronóstico de todos los productos (onlyActive filtra los activos).
// Todas las entradas comparten el mismo instante de corte.
func (uc *ForecastUseCase) ForecastCatalog(ctx context.Context, days int, onlyActive bool) (*dto.ForecastListResponse, error) {
	window, err := uc.Window(days)
	if err != nil {
		return nil, err
	}
	products, err := uc.productRepo.List(ctx, onlyActive)
	if err != nil {
		return nil, err
	}
	since := ledger.WindowStart(uc.now(), window)
	items := make([]dto.ForecastResponse, 0, len(products))
	for _, p := range products {
		f, err := uc.project(ctx, p, window, since)
		if err != nil {
			return nil, err
		}
		items = append(items, *f)
	}
	return &dto.ForecastListResponse{WindowDays: window, Items: items}, nil
}

func (uc *ForecastUseCase) project(ctx context.Context, p *entity.Product, window int, since time.Time) (*dto.ForecastResponse, error) {
	stock, err := uc.stock.StockOf(ctx, p.ID)
	if err != nil {
		return nil, err
	}
	recent, err := uc.movRepo.ListByProduct(ctx, p.ID, &since)
	if err != nil {
		return nil, err
	}
	proj := ledger.Project(stock, ledger.Consumed(recent, since), window)
	return &dto.ForecastResponse{
		ProductID:        p.ID,
		ProductName:      p.Name,
		CurrentStock:     proj.Stock,
		TotalConsumed:    proj.Consumed,
		WindowDays:       proj.WindowDays,
		DailyConsumption: json.Number(proj.DailyConsumption.StringFixed(2)),
		DaysRemaining:    proj.DaysRemaining,
	}, nil
}
