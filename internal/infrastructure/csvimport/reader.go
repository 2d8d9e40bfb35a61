// Package csvimport lee ledgers de movimientos exportados como CSV (UTF-8 o Latin-1).
package csvimport

import (
	"bufio"
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/transform"

	"github.com/jhoicas/stock-ledger-api/internal/application/inventory"
)

// Encodings soportados para el archivo de entrada.
const (
	EncodingUTF8   = "utf-8"
	EncodingLatin1 = "latin1"
	EncodingCP1252 = "windows-1252"
)

// Encabezados aceptados por columna (en minúsculas).
var headerAliases = map[string][]string{
	"date":          {"date", "fecha"},
	"product_id":    {"product_id", "id_producto", "producto"},
	"movement_type": {"movement_type", "tipo", "tipo_movimiento"},
	"quantity":      {"quantity", "cantidad"},
	"order_id":      {"order_id", "pedido", "id_pedido"},
	"notes":         {"notes", "notas", "observaciones"},
}

var dateLayouts = []string{
	time.RFC3339,
	"2006-01-02 15:04:05",
	"2006-01-02T15:04:05",
	"2006-01-02",
	"02/01/2006 15:04",
	"02/01/2006",
}

// ErrMissingColumn el encabezado no trae una columna obligatoria.
var ErrMissingColumn = errors.New("csvimport: columna obligatoria ausente")

// Reader convierte filas CSV en inventory.ImportRow.
type Reader struct {
	loc *time.Location
}

// NewReader crea un lector; las fechas sin zona se interpretan en loc (nil => UTC).
func NewReader(loc *time.Location) *Reader {
	if loc == nil {
		loc = time.UTC
	}
	return &Reader{loc: loc}
}

// Read decodifica r con el encoding indicado. Filas con fecha o cantidad inválida se
// devuelven como omitidas; un encabezado incompleto es error.
func (rd *Reader) Read(r io.Reader, encoding string) ([]inventory.ImportRow, []inventory.ImportSkip, error) {
	src, err := decoded(r, encoding)
	if err != nil {
		return nil, nil, err
	}
	cr := csv.NewReader(src)
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true
	cr.Comma = sniffComma(src)

	header, err := cr.Read()
	if err != nil {
		return nil, nil, fmt.Errorf("csvimport: leer encabezado: %w", err)
	}
	cols, err := mapHeader(header)
	if err != nil {
		return nil, nil, err
	}

	var rows []inventory.ImportRow
	var skipped []inventory.ImportSkip
	for {
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, nil, fmt.Errorf("csvimport: %w", err)
		}
		// Línea física donde empieza el registro: csv omite líneas vacías y un campo
		// entre comillas puede ocupar varias.
		line, _ := cr.FieldPos(0)
		if blank(rec) {
			continue
		}
		row, reason := rd.toRow(rec, cols, line)
		if reason != "" {
			skipped = append(skipped, inventory.ImportSkip{Line: line, Reason: reason})
			continue
		}
		rows = append(rows, row)
	}
	return rows, skipped, nil
}

func (rd *Reader) toRow(rec []string, cols map[string]int, line int) (inventory.ImportRow, string) {
	get := func(key string) string {
		i, ok := cols[key]
		if !ok || i >= len(rec) {
			return ""
		}
		return strings.TrimSpace(rec[i])
	}
	row := inventory.ImportRow{
		Line:      line,
		ProductID: get("product_id"),
		Type:      get("movement_type"),
		OrderID:   get("order_id"),
		Notes:     get("notes"),
	}
	if row.ProductID == "" {
		return row, "product_id vacío"
	}
	date, ok := rd.parseDate(get("date"))
	if !ok {
		return row, fmt.Sprintf("fecha inválida %q", get("date"))
	}
	row.Date = date
	if q := get("quantity"); q != "" {
		n, err := strconv.Atoi(q)
		if err != nil {
			return row, fmt.Sprintf("cantidad inválida %q", q)
		}
		row.Quantity = &n
	}
	return row, ""
}

func (rd *Reader) parseDate(s string) (time.Time, bool) {
	for _, layout := range dateLayouts {
		if t, err := time.ParseInLocation(layout, s, rd.loc); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

func decoded(r io.Reader, encoding string) (*bufio.Reader, error) {
	switch strings.ToLower(strings.TrimSpace(encoding)) {
	case "", EncodingUTF8, "utf8":
		br := bufio.NewReader(r)
		if bom, err := br.Peek(3); err == nil && bytes.Equal(bom, []byte{0xEF, 0xBB, 0xBF}) {
			_, _ = br.Discard(3)
		}
		return br, nil
	case EncodingLatin1, "iso-8859-1", "iso8859-1":
		return bufio.NewReader(transform.NewReader(r, charmap.ISO8859_1.NewDecoder())), nil
	case EncodingCP1252, "cp1252":
		return bufio.NewReader(transform.NewReader(r, charmap.Windows1252.NewDecoder())), nil
	default:
		return nil, fmt.Errorf("csvimport: encoding no soportado %q", encoding)
	}
}

// sniffComma usa ';' si la primera línea lo trae y no trae ',' (exportaciones de Excel en es-CO).
func sniffComma(br *bufio.Reader) rune {
	peek, _ := br.Peek(br.Size())
	if i := bytes.IndexByte(peek, '\n'); i >= 0 {
		peek = peek[:i]
	}
	if bytes.IndexByte(peek, ';') >= 0 && bytes.IndexByte(peek, ',') < 0 {
		return ';'
	}
	return ','
}

func mapHeader(header []string) (map[string]int, error) {
	pos := make(map[string]int, len(header))
	for i, h := range header {
		pos[strings.ToLower(strings.TrimSpace(h))] = i
	}
	cols := make(map[string]int)
	for key, aliases := range headerAliases {
		for _, a := range aliases {
			if i, ok := pos[a]; ok {
				cols[key] = i
				break
			}
		}
	}
	for _, required := range []string{"date", "product_id", "movement_type"} {
		if _, ok := cols[required]; !ok {
			return nil, fmt.Errorf("%w: %s", ErrMissingColumn, required)
		}
	}
	return cols, nil
}

func blank(rec []string) bool {
	for _, f := range rec {
		if strings.TrimSpace(f) != "" {
			return false
		}
	}
	return true
}
