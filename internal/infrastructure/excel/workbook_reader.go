// Package excel lee hojas de un libro .xlsx y las entrega como dataset.Table.
package excel

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"
	"golang.org/x/text/unicode/norm"

	"github.com/jhoicas/retail-pipeline/internal/application/ports"
	"github.com/jhoicas/retail-pipeline/internal/domain"
	"github.com/jhoicas/retail-pipeline/internal/domain/dataset"
)

var _ ports.WorkbookReader = (*WorkbookReader)(nil)

// WorkbookReader lee un archivo .xlsx. Abre el archivo en cada lectura; no mantiene estado.
type WorkbookReader struct {
	path string
}

// NewWorkbookReader construye el lector para el archivo indicado.
func NewWorkbookReader(path string) *WorkbookReader {
	return &WorkbookReader{path: path}
}

// ReadSheet devuelve la hoja como tabla. La primera fila son los encabezados (normalizados a NFC y sin
// espacios en los extremos). Las celdas vacías son nil, las numéricas float64, las booleanas bool y
// las de texto string aunque parezcan números ("02134" conserva el cero).
// Las fechas llegan como serial de Excel (float64) y se interpretan en la capa de transformación.
func (r *WorkbookReader) ReadSheet(ctx context.Context, sheet string) (*dataset.Table, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	f, err := excelize.OpenFile(r.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", domain.ErrSourceNotFound, r.path)
		}
		return nil, fmt.Errorf("%w: abrir %s: %v", domain.ErrMalformedSource, r.path, err)
	}
	defer func() { _ = f.Close() }()

	rows, err := f.GetRows(sheet, excelize.Options{RawCellValue: true})
	if err != nil {
		return nil, fmt.Errorf("%w: hoja %s: %v", domain.ErrMalformedSource, sheet, err)
	}
	if len(rows) == 0 {
		return dataset.New(sheet, nil), nil
	}

	header := make([]string, len(rows[0]))
	for i, h := range rows[0] {
		header[i] = normalizeHeader(h)
	}
	t := dataset.New(sheet, header)
	t.Rows = make([][]any, 0, len(rows)-1)
	for n, raw := range rows[1:] {
		if isBlank(raw) {
			continue
		}
		row := make([]any, len(header))
		for i := range header {
			if i >= len(raw) {
				continue
			}
			// rows[k] corresponde a la fila k+1 de la hoja; la primera de datos es la 2.
			cell, err := excelize.CoordinatesToCellName(i+1, n+2)
			if err != nil {
				return nil, fmt.Errorf("%w: hoja %s: %v", domain.ErrMalformedSource, sheet, err)
			}
			typ, err := f.GetCellType(sheet, cell)
			if err != nil {
				return nil, fmt.Errorf("%w: hoja %s celda %s: %v", domain.ErrMalformedSource, sheet, cell, err)
			}
			row[i] = parseCell(raw[i], typ)
		}
		t.Rows = append(t.Rows, row)
	}
	return t, nil
}

func normalizeHeader(h string) string {
	return norm.NFC.String(strings.TrimSpace(h))
}

func isBlank(raw []string) bool {
	for _, v := range raw {
		if strings.TrimSpace(v) != "" {
			return false
		}
	}
	return true
}

// parseCell interpreta el valor crudo según el tipo de la celda. Solo las celdas sin tipo
// (numéricas por defecto en OOXML), numéricas o de fecha se convierten a float64.
func parseCell(v string, typ excelize.CellType) any {
	if strings.TrimSpace(v) == "" {
		return nil
	}
	switch typ {
	case excelize.CellTypeSharedString, excelize.CellTypeInlineString, excelize.CellTypeFormula, excelize.CellTypeError:
		return v
	case excelize.CellTypeBool:
		return v == "1" || strings.EqualFold(v, "true")
	}
	if f, err := strconv.ParseFloat(v, 64); err == nil {
		return f
	}
	return v
}
