// Package pdf genera el reporte de pronóstico de agotamiento en PDF.
//
// Layout de la página A4:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: título + ventana           │  fecha de generación  │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TABLA: ID | Producto | Stock | Consumido | Diario | Días    │
//	│  ─────────────────────────────────────────────────────────  │
//	│  RESUMEN: productos / en riesgo / sin consumo                │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"context"
	"fmt"
	"strconv"
	"time"

	maroto "github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/stock-ledger-api/internal/application/dto"
	"github.com/jhoicas/stock-ledger-api/internal/application/inventory"
)

var _ inventory.ForecastPDFGenerator = (*MarotoForecastGenerator)(nil)

// ── Paleta de colores ─────────────────────────────────────────────────────────

var (
	colorPrimary = &props.Color{Red: 0, Green: 70, Blue: 127}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
	colorAlert   = &props.Color{Red: 180, Green: 30, Blue: 30}
)

// RiskThresholdDays productos con menos días restantes se resaltan.
const RiskThresholdDays = 7

// MarotoForecastGenerator implementa inventory.ForecastPDFGenerator usando Maroto v2.
type MarotoForecastGenerator struct {
	title string
}

// NewMarotoForecastGenerator construye el generador. title aparece en el encabezado y metadatos.
func NewMarotoForecastGenerator(title string) *MarotoForecastGenerator {
	if title == "" {
		title = "Pronóstico de stock"
	}
	return &MarotoForecastGenerator{title: title}
}

// GenerateForecastPDF genera el PDF y devuelve sus bytes.
func (g *MarotoForecastGenerator) GenerateForecastPDF(
	_ context.Context,
	report *dto.ForecastListResponse,
	generatedAt time.Time,
) ([]byte, error) {
	if report == nil {
		return nil, fmt.Errorf("pdf: reporte vacío")
	}
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle(g.title, true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(g.headerRow(report.WindowDays, generatedAt))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))

	m.AddRows(tableHeaderRow())
	m.AddRows(tableRows(report.Items)...)

	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
	m.AddRows(summaryRow(report.Items))

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar documento: %w", err)
	}
	return doc.GetBytes(), nil
}

// ── Secciones ─────────────────────────────────────────────────────────────────

func (g *MarotoForecastGenerator) headerRow(window int, at time.Time) core.Row {
	return row.New(16).Add(
		col.New(8).Add(
			text.New(g.title, props.Text{
				Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1,
			}),
			text.New(fmt.Sprintf("Consumo de los últimos %d días", window), props.Text{
				Size: 9, Top: 9, Color: colorGray,
			}),
		),
		col.New(4).Add(
			text.New("Generado: "+at.Format("02/01/2006 15:04"), props.Text{
				Size: 8, Align: align.Right, Top: 2, Color: colorGray,
			}),
		),
	)
}

func tableHeaderRow() core.Row {
	h := func(label string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: a,
			Color: colorPrimary, Top: 2, Left: 1, Right: 1,
		}))
	}
	return row.New(8).Add(
		h("ID", 1, align.Left),
		h("Producto", 4, align.Left),
		h("Stock", 2, align.Right),
		h("Consumido", 2, align.Right),
		h("Diario", 1, align.Right),
		h("Días rest.", 2, align.Right),
	)
}

// tableRows una fila por producto; los que se agotan antes de RiskThresholdDays van en rojo.
func tableRows(items []dto.ForecastResponse) []core.Row {
	rows := make([]core.Row, 0, len(items))
	for _, it := range items {
		color := (*props.Color)(nil)
		if atRisk(it) {
			color = colorAlert
		}
		cell := func(s string, size int, a align.Type) core.Col {
			return col.New(size).Add(text.New(s, props.Text{
				Size: 8, Align: a, Top: 1, Left: 1, Right: 1, Color: color,
			}))
		}
		rows = append(rows, row.New(6).Add(
			cell(it.ProductID, 1, align.Left),
			cell(it.ProductName, 4, align.Left),
			cell(strconv.Itoa(it.CurrentStock), 2, align.Right),
			cell(strconv.Itoa(it.TotalConsumed), 2, align.Right),
			cell(it.DailyConsumption.String(), 1, align.Right),
			cell(daysLabel(it), 2, align.Right),
		))
	}
	return rows
}

func summaryRow(items []dto.ForecastResponse) core.Row {
	risk, idle := 0, 0
	for _, it := range items {
		if it.DaysRemaining.IsUnbounded() {
			idle++
		} else if atRisk(it) {
			risk++
		}
	}
	return row.New(10).Add(col.New(12).Add(
		text.New(fmt.Sprintf("Productos: %d   |   En riesgo (< %d días): %d   |   Sin consumo: %d",
			len(items), RiskThresholdDays, risk, idle),
			props.Text{Style: fontstyle.Bold, Size: 8, Top: 3, Color: colorGray}),
	))
}

// ── helpers ───────────────────────────────────────────────────────────────────

func atRisk(it dto.ForecastResponse) bool {
	d, finite := it.DaysRemaining.Days()
	return finite && d.LessThan(decimal.NewFromInt(RiskThresholdDays))
}

func daysLabel(it dto.ForecastResponse) string {
	if it.DaysRemaining.IsUnbounded() {
		return "ilimitado"
	}
	return it.DaysRemaining.String()
}
