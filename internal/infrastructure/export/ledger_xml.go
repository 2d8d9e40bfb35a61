// Package export serializa el ledger de movimientos para intercambio con otros sistemas.
package export

import (
	"bytes"
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/beevik/etree"

	"github.com/jhoicas/stock-ledger-api/internal/application/inventory"
	"github.com/jhoicas/stock-ledger-api/internal/domain/entity"
	"github.com/jhoicas/stock-ledger-api/internal/domain/ledger"
)

var _ inventory.LedgerExporter = (*XMLLedgerExporter)(nil)

// XMLLedgerExporter genera un documento <Ledger> con un <Movement> por fila y un <Summary>
// con los totales de entrada y salida según la regla del agregador.
type XMLLedgerExporter struct{}

// NewXMLLedgerExporter crea el exportador.
func NewXMLLedgerExporter() *XMLLedgerExporter { return &XMLLedgerExporter{} }

// ExportLedger construye el XML. Cantidad nula se emite como elemento vacío con nil="true".
func (e *XMLLedgerExporter) ExportLedger(_ context.Context, movements []*entity.Movement, generatedAt time.Time) ([]byte, error) {
	doc := etree.NewDocument()
	doc.CreateProcInst("xml", `version="1.0" encoding="UTF-8"`)

	root := doc.CreateElement("Ledger")
	root.CreateAttr("generatedAt", generatedAt.UTC().Format(time.RFC3339))
	root.CreateAttr("count", strconv.Itoa(len(movements)))

	for _, m := range movements {
		if m == nil {
			continue
		}
		el := root.CreateElement("Movement")
		el.CreateAttr("id", m.ID)
		el.CreateAttr("direction", ledger.Classify(m.Type, m.Notes).String())
		el.CreateElement("Date").SetText(m.Date.UTC().Format(time.RFC3339))
		el.CreateElement("ProductID").SetText(m.ProductID)
		el.CreateElement("Type").SetText(m.Type)
		q := el.CreateElement("Quantity")
		if m.Quantity != nil {
			q.SetText(strconv.Itoa(*m.Quantity))
		} else {
			q.CreateAttr("nil", "true")
		}
		if m.OrderID != "" {
			el.CreateElement("OrderID").SetText(m.OrderID)
		}
		el.CreateElement("Notes").SetText(m.Notes)
	}

	totals := ledger.Sum(movements)
	summary := root.CreateElement("Summary")
	summary.CreateElement("Inbound").SetText(strconv.Itoa(totals.Inbound))
	summary.CreateElement("Outbound").SetText(strconv.Itoa(totals.Outbound))
	summary.CreateElement("Net").SetText(strconv.Itoa(totals.Net()))

	doc.Indent(2)
	var out bytes.Buffer
	if _, err := doc.WriteTo(&out); err != nil {
		return nil, fmt.Errorf("export: escribir xml: %w", err)
	}
	return out.Bytes(), nil
}
