package export

import (
	"context"
	"testing"
	"time"

	"github.com/beevik/etree"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/stock-ledger-api/internal/domain/entity"
)

func intp(n int) *int { return &n }

func TestExportLedger(t *testing.T) {
	at := time.Date(2024, 6, 30, 12, 0, 0, 0, time.UTC)
	movements := []*entity.Movement{
		{ID: "M001", Date: at.Add(-48 * time.Hour), ProductID: "P001", Type: "Ingreso", Quantity: intp(100), Notes: "Compra"},
		{ID: "M002", Date: at.Add(-24 * time.Hour), ProductID: "P001", Type: "Egreso", Quantity: intp(30), Notes: "Venta", OrderID: "OV-7"},
		{ID: "M003", Date: at, ProductID: "P001", Type: "Ajuste", Quantity: nil, Notes: "<conteo & revisión>"},
	}

	b, err := NewXMLLedgerExporter().ExportLedger(context.Background(), movements, at)
	require.NoError(t, err)

	doc := etree.NewDocument()
	require.NoError(t, doc.ReadFromBytes(b))
	root := doc.SelectElement("Ledger")
	require.NotNil(t, root)
	assert.Equal(t, "3", root.SelectAttrValue("count", ""))

	els := root.SelectElements("Movement")
	require.Len(t, els, 3)
	assert.Equal(t, "inbound", els[0].SelectAttrValue("direction", ""))
	assert.Equal(t, "outbound", els[1].SelectAttrValue("direction", ""))
	assert.Equal(t, "OV-7", els[1].SelectElement("OrderID").Text())
	assert.Equal(t, "unclassified", els[2].SelectAttrValue("direction", ""))
	assert.Equal(t, "true", els[2].SelectElement("Quantity").SelectAttrValue("nil", ""))
	assert.Equal(t, "<conteo & revisión>", els[2].SelectElement("Notes").Text())

	summary := root.SelectElement("Summary")
	require.NotNil(t, summary)
	assert.Equal(t, "100", summary.SelectElement("Inbound").Text())
	assert.Equal(t, "30", summary.SelectElement("Outbound").Text())
	assert.Equal(t, "70", summary.SelectElement("Net").Text())
}

func TestExportLedger_Empty(t *testing.T) {
	b, err := NewXMLLedgerExporter().ExportLedger(context.Background(), nil, time.Now())
	require.NoError(t, err)

	doc := etree.NewDocument()
	require.NoError(t, doc.ReadFromBytes(b))
	assert.Equal(t, "0", doc.SelectElement("Ledger").SelectAttrValue("count", ""))
}
