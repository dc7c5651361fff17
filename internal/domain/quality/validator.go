// Package quality calcula señales de calidad de datos sobre tablas de origen.
// Las señales son informativas: se envían a un Recorder y nunca modifican ni bloquean los datos.
package quality

import (
	"fmt"
	"strings"

	"github.com/jhoicas/retail-pipeline/internal/domain/dataset"
	"github.com/jhoicas/retail-pipeline/internal/domain/entity"
)

// MissingDataThreshold fracción máxima de celdas faltantes antes de emitir WARNING.
const MissingDataThreshold = 0.05

// Columnas requeridas por fuente.
var (
	ProductRequiredColumns = []string{"id", "title", "price", "category"}
	OrderRequiredColumns   = []string{"Order ID", "Order Date", "Ship Date", "Customer ID", "Product ID"}
)

// Recorder sumidero de señales de calidad (log, reporte, BD).
type Recorder interface {
	Record(check entity.QualityCheck)
}

// RecorderFunc adapta una función a Recorder.
type RecorderFunc func(check entity.QualityCheck)

// Record implementa Recorder.
func (f RecorderFunc) Record(check entity.QualityCheck) { f(check) }

// Nop descarta las señales.
var Nop Recorder = RecorderFunc(func(entity.QualityCheck) {})

// MissingData PASS si la fracción de celdas faltantes es <= 5%, WARNING en otro caso.
func MissingData(label string, t *dataset.Table) entity.QualityCheck {
	ratio := t.MissingRatio()
	status := entity.QualityPass
	if ratio > MissingDataThreshold {
		status = entity.QualityWarning
	}
	return entity.QualityCheck{
		Name:   label + " Missing Data",
		Status: status,
		Detail: fmt.Sprintf("Missing data: %.2f%%", ratio*100),
	}
}

// RequiredColumns FAIL si falta alguna de las columnas requeridas (las nombra en el detalle).
func RequiredColumns(label string, t *dataset.Table, required []string) entity.QualityCheck {
	missing := MissingColumns(t, required)
	if len(missing) > 0 {
		return entity.QualityCheck{
			Name:   label + " Required Columns",
			Status: entity.QualityFail,
			Detail: "Missing columns: " + quoteList(missing),
		}
	}
	return entity.QualityCheck{Name: label + " Required Columns", Status: entity.QualityPass}
}

// MissingColumns devuelve las columnas requeridas ausentes, en el orden dado.
func MissingColumns(t *dataset.Table, required []string) []string {
	var missing []string
	for _, c := range required {
		if !t.HasColumn(c) {
			missing = append(missing, c)
		}
	}
	return missing
}

// PositivePrices WARNING si algún precio numérico es <= 0. ok es false si la columna no existe
// (en ese caso no se emite señal).
func PositivePrices(label string, t *dataset.Table, column string) (check entity.QualityCheck, ok bool) {
	if !t.HasColumn(column) {
		return entity.QualityCheck{}, false
	}
	invalid := 0
	for _, v := range t.Column(column) {
		if f, isNum := dataset.AsFloat(v); isNum && f <= 0 {
			invalid++
		}
	}
	if invalid > 0 {
		return entity.QualityCheck{
			Name:   label + " Price Validation",
			Status: entity.QualityWarning,
			Detail: fmt.Sprintf("Invalid prices: %d", invalid),
		}, true
	}
	return entity.QualityCheck{Name: label + " Price Validation", Status: entity.QualityPass}, true
}

// ValidateProducts emite las tres señales de la tabla de productos.
func ValidateProducts(t *dataset.Table, rec Recorder) {
	rec.Record(MissingData("Products", t))
	rec.Record(RequiredColumns("Products", t, ProductRequiredColumns))
	if check, ok := PositivePrices("Products", t, "price"); ok {
		rec.Record(check)
	}
}

// ValidateOrders emite faltantes y columnas requeridas de pedidos.
func ValidateOrders(t *dataset.Table, rec Recorder) {
	rec.Record(MissingData("Orders", t))
	rec.Record(RequiredColumns("Orders", t, OrderRequiredColumns))
}

// ValidateReturns emite faltantes de devoluciones.
func ValidateReturns(t *dataset.Table, rec Recorder) {
	rec.Record(MissingData("Returns", t))
}

// ValidatePeople emite faltantes de la hoja de personas.
func ValidatePeople(t *dataset.Table, rec Recorder) {
	rec.Record(MissingData("People", t))
}

// quoteList formatea nombres como ['a', 'b'].
func quoteList(names []string) string {
	quoted := make([]string, len(names))
	for i, n := range names {
		quoted[i] = "'" + n + "'"
	}
	return "[" + strings.Join(quoted, ", ") + "]"
}
