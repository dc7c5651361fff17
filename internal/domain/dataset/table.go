// Package dataset modela una tabla en memoria: columnas con nombre y filas de celdas
// heterogéneas. Es el formato de intercambio entre las fuentes (API, hoja de cálculo)
// y quien consume los resultados del pipeline.
package dataset

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"

	"github.com/shopspring/decimal"
)

// Table tabla rectangular: cada fila tiene exactamente len(Columns) celdas.
// Una celda nil (o NaN) se considera faltante.
type Table struct {
	Name    string
	Columns []string
	Rows    [][]any
}

// New construye una tabla vacía con las columnas indicadas.
func New(name string, columns []string) *Table {
	cols := make([]string, len(columns))
	copy(cols, columns)
	return &Table{Name: name, Columns: cols}
}

// Len número de filas.
func (t *Table) Len() int { return len(t.Rows) }

// Width número de columnas.
func (t *Table) Width() int { return len(t.Columns) }

// Index devuelve la posición de la columna o -1 si no existe.
func (t *Table) Index(column string) int {
	for i, c := range t.Columns {
		if c == column {
			return i
		}
	}
	return -1
}

// HasColumn indica si la columna existe.
func (t *Table) HasColumn(column string) bool { return t.Index(column) >= 0 }

// Append agrega una fila; falla si el número de celdas no coincide con las columnas.
func (t *Table) Append(row []any) error {
	if len(row) != len(t.Columns) {
		return fmt.Errorf("tabla %q: fila con %d celdas, se esperaban %d", t.Name, len(row), len(t.Columns))
	}
	t.Rows = append(t.Rows, row)
	return nil
}

// Value devuelve la celda (fila, columna). ok es false si la columna no existe o la fila está fuera de rango.
func (t *Table) Value(row int, column string) (any, bool) {
	idx := t.Index(column)
	if idx < 0 || row < 0 || row >= len(t.Rows) {
		return nil, false
	}
	return t.Rows[row][idx], true
}

// Column devuelve una copia de los valores de la columna (nil si no existe).
func (t *Table) Column(column string) []any {
	idx := t.Index(column)
	if idx < 0 {
		return nil
	}
	out := make([]any, len(t.Rows))
	for i, r := range t.Rows {
		out[i] = r[idx]
	}
	return out
}

// SetColumn calcula fn por cada fila y lo guarda en la columna; la crea al final si no existe.
// fn recibe la fila tal como estaba antes de escribir la nueva celda.
func (t *Table) SetColumn(column string, fn func(row []any) any) {
	idx := t.Index(column)
	if idx < 0 {
		t.Columns = append(t.Columns, column)
		for i, r := range t.Rows {
			t.Rows[i] = append(r, fn(r))
		}
		return
	}
	for _, r := range t.Rows {
		r[idx] = fn(r)
	}
}

// Get lee una celda de la fila por nombre de columna usando los índices de t.
func (t *Table) Get(row []any, column string) any {
	idx := t.Index(column)
	if idx < 0 || idx >= len(row) {
		return nil
	}
	return row[idx]
}

// MissingCells cuenta las celdas faltantes de toda la tabla.
func (t *Table) MissingCells() int {
	n := 0
	for _, r := range t.Rows {
		for _, v := range r {
			if IsMissing(v) {
				n++
			}
		}
	}
	return n
}

// MissingRatio fracción de celdas faltantes sobre filas*columnas. 0 si la tabla no tiene celdas.
func (t *Table) MissingRatio() float64 {
	total := t.Len() * t.Width()
	if total == 0 {
		return 0
	}
	return float64(t.MissingCells()) / float64(total)
}

// IsMissing indica si una celda representa un dato ausente.
func IsMissing(v any) bool {
	switch x := v.(type) {
	case nil:
		return true
	case float64:
		return math.IsNaN(x)
	case float32:
		return math.IsNaN(float64(x))
	default:
		return false
	}
}

// AsFloat convierte una celda numérica a float64. ok es false para celdas faltantes o no numéricas.
func AsFloat(v any) (float64, bool) {
	switch x := v.(type) {
	case float64:
		return x, !math.IsNaN(x)
	case float32:
		return float64(x), !math.IsNaN(float64(x))
	case int:
		return float64(x), true
	case int64:
		return float64(x), true
	case int32:
		return float64(x), true
	case decimal.Decimal:
		return x.InexactFloat64(), true
	case json.Number:
		f, err := x.Float64()
		return f, err == nil
	case string:
		f, err := strconv.ParseFloat(x, 64)
		return f, err == nil && !math.IsNaN(f)
	default:
		return 0, false
	}
}

// AsDecimal convierte una celda numérica a decimal.Decimal.
func AsDecimal(v any) (decimal.Decimal, bool) {
	switch x := v.(type) {
	case decimal.Decimal:
		return x, true
	case json.Number:
		d, err := decimal.NewFromString(x.String())
		return d, err == nil
	case string:
		d, err := decimal.NewFromString(x)
		return d, err == nil
	case int:
		return decimal.NewFromInt(int64(x)), true
	case int64:
		return decimal.NewFromInt(x), true
	}
	f, ok := AsFloat(v)
	if !ok || math.IsInf(f, 0) {
		return decimal.Zero, false
	}
	return decimal.NewFromFloat(f), true
}

// AsInt convierte una celda numérica entera a int.
func AsInt(v any) (int, bool) {
	switch x := v.(type) {
	case int:
		return x, true
	case int64:
		return int(x), true
	case json.Number:
		n, err := x.Int64()
		if err == nil {
			return int(n), true
		}
	}
	f, ok := AsFloat(v)
	if !ok || math.IsInf(f, 0) || f != math.Trunc(f) {
		return 0, false
	}
	return int(f), true
}
