package inventory

import (
	"context"
	"fmt"
	"time"

	"github.com/jhoicas/stock-ledger-api/internal/application/dto"
	"github.com/jhoicas/stock-ledger-api/internal/domain/entity"
)

// ForecastPDFGenerator genera la representación PDF del pronóstico del catálogo.
type ForecastPDFGenerator interface {
	GenerateForecastPDF(ctx context.Context, report *dto.ForecastListResponse, generatedAt time.Time) ([]byte, error)
}

// LedgerExporter serializa movimientos del ledger a un documento (XML).
type LedgerExporter interface {
	ExportLedger(ctx context.Context, movements []*entity.Movement, generatedAt time.Time) ([]byte, error)
}

// ReportUseCase arma los documentos descargables: pronóstico en PDF y ledger en XML.
type ReportUseCase struct {
	forecast  *ForecastUseCase
	movements *RegisterMovementUseCase
	pdf       ForecastPDFGenerator
	exporter  LedgerExporter
	now       Clock
}

// NewReportUseCase construye el caso de uso.
func NewReportUseCase(
	forecast *ForecastUseCase,
	movements *RegisterMovementUseCase,
	pdf ForecastPDFGenerator,
	exporter LedgerExporter,
) *ReportUseCase {
	return &ReportUseCase{forecast: forecast, movements: movements, pdf: pdf, exporter: exporter, now: time.Now}
}

// WithClock reemplaza el reloj (tests).
func (uc *ReportUseCase) WithClock(now Clock) *ReportUseCase {
	uc.now = now
	return uc
}

// ForecastPDF genera el PDF del pronóstico. Devuelve bytes y nombre de archivo sugerido.
func (uc *ReportUseCase) ForecastPDF(ctx context.Context, days int, onlyActive bool) ([]byte, string, error) {
	report, err := uc.forecast.ForecastCatalog(ctx, days, onlyActive)
	if err != nil {
		return nil, "", err
	}
	at := uc.now()
	b, err := uc.pdf.GenerateForecastPDF(ctx, report, at)
	if err != nil {
		return nil, "", fmt.Errorf("report: generar pdf: %w", err)
	}
	return b, fmt.Sprintf("pronostico_%dd_%s.pdf", report.WindowDays, at.Format("20060102")), nil
}

// LedgerXML exporta los movimientos (todos o de un producto) a XML.
func (uc *ReportUseCase) LedgerXML(ctx context.Context, productID string) ([]byte, string, error) {
	list, err := uc.movements.Entries(ctx, productID)
	if err != nil {
		return nil, "", err
	}
	at := uc.now()
	b, err := uc.exporter.ExportLedger(ctx, list, at)
	if err != nil {
		return nil, "", fmt.Errorf("report: exportar ledger: %w", err)
	}
	name := "movimientos"
	if productID != "" {
		name += "_" + productID
	}
	return b, fmt.Sprintf("%s_%s.xml", name, at.Format("20060102")), nil
}
