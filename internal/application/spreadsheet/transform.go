package spreadsheet

import (
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/jhoicas/retail-pipeline/internal/domain"
	"github.com/jhoicas/retail-pipeline/internal/domain/dataset"
)

// Columnas de la hoja Orders.
const (
	colOrderDate    = "Order Date"
	colShipDate     = "Ship Date"
	colSales        = "Sales"
	colQuantity     = "Quantity"
	colLeadTime     = "Lead Time (Days)"
	colOrderYear    = "Order Year"
	colOrderMonth   = "Order Month"
	colOrderQuarter = "Order Quarter"
	colOrderValue   = "Order Value"
	colReturnDate   = "Return Date"
	colPerson       = "Person"

	// UnknownPerson valor por defecto cuando la hoja People no trae la columna Person.
	UnknownPerson = "Unknown"
)

// Formatos de fecha en texto aceptados además del serial de Excel.
// Con día y mes numéricos el mes va primero, sea cual sea el separador.
var dateLayouts = []string{
	"2006-01-02",
	"2006-01-02 15:04:05",
	time.RFC3339,
	"01/02/2006",
	"1/2/2006",
	"01-02-2006",
	"1-2-2006",
	"01-02-06",
	"2006/01/02",
}

// TransformOrders normaliza fechas y deriva Lead Time, año/mes/trimestre y Order Value.
// Cada paso depende solo de que existan sus columnas de entrada.
func TransformOrders(t *dataset.Table) error {
	for _, col := range []string{colOrderDate, colShipDate} {
		if err := toDateColumn(t, col); err != nil {
			return err
		}
	}

	if t.HasColumn(colOrderDate) && t.HasColumn(colShipDate) {
		t.SetColumn(colLeadTime, func(row []any) any {
			order, ok1 := t.Get(row, colOrderDate).(time.Time)
			ship, ok2 := t.Get(row, colShipDate).(time.Time)
			if !ok1 || !ok2 {
				return nil
			}
			return int(math.Floor(ship.Sub(order).Hours() / 24))
		})
	}

	if t.HasColumn(colOrderDate) {
		dateField := func(f func(time.Time) int) func([]any) any {
			return func(row []any) any {
				d, ok := t.Get(row, colOrderDate).(time.Time)
				if !ok {
					return nil
				}
				return f(d)
			}
		}
		t.SetColumn(colOrderYear, dateField(func(d time.Time) int { return d.Year() }))
		t.SetColumn(colOrderMonth, dateField(func(d time.Time) int { return int(d.Month()) }))
		t.SetColumn(colOrderQuarter, dateField(func(d time.Time) int { return (int(d.Month())-1)/3 + 1 }))
	}

	if t.HasColumn(colSales) && t.HasColumn(colQuantity) {
		t.SetColumn(colOrderValue, func(row []any) any {
			sales, ok1 := dataset.AsDecimal(t.Get(row, colSales))
			qty, ok2 := dataset.AsDecimal(t.Get(row, colQuantity))
			if !ok1 || !ok2 {
				return nil
			}
			return sales.Mul(qty)
		})
	}
	return nil
}

// TransformReturns normaliza Return Date si existe.
func TransformReturns(t *dataset.Table) error {
	return toDateColumn(t, colReturnDate)
}

// TransformPeople agrega Person = "Unknown" si la columna no existe.
func TransformPeople(t *dataset.Table) error {
	if !t.HasColumn(colPerson) {
		t.SetColumn(colPerson, func([]any) any { return UnknownPerson })
	}
	return nil
}

// toDateColumn convierte la columna a time.Time. Las celdas faltantes quedan nil;
// un valor que no se puede interpretar como fecha falla la transformación.
func toDateColumn(t *dataset.Table, column string) error {
	idx := t.Index(column)
	if idx < 0 {
		return nil
	}
	for i, row := range t.Rows {
		if dataset.IsMissing(row[idx]) {
			row[idx] = nil
			continue
		}
		d, err := ParseDate(row[idx])
		if err != nil {
			return fmt.Errorf("%w: %s fila %d: %v", domain.ErrMalformedSource, column, i+2, err)
		}
		row[idx] = d
	}
	return nil
}

// ParseDate interpreta un serial de Excel (sistema 1900) o una fecha en texto.
func ParseDate(v any) (time.Time, error) {
	switch x := v.(type) {
	case time.Time:
		return x, nil
	case string:
		s := strings.TrimSpace(x)
		for _, layout := range dateLayouts {
			if d, err := time.Parse(layout, s); err == nil {
				return d, nil
			}
		}
		if f, ok := dataset.AsFloat(s); ok {
			return fromExcelSerial(f)
		}
		return time.Time{}, fmt.Errorf("fecha no reconocida %q", x)
	}
	if f, ok := dataset.AsFloat(v); ok {
		return fromExcelSerial(f)
	}
	return time.Time{}, fmt.Errorf("tipo de fecha no soportado %T", v)
}

// fromExcelSerial convierte un serial del sistema 1900, redondeado al segundo.
func fromExcelSerial(serial float64) (time.Time, error) {
	d, err := excelize.ExcelDateToTime(serial, false)
	if err != nil {
		return time.Time{}, err
	}
	return d.Round(time.Second), nil
}
