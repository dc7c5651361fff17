package entity

// QualityStatus resultado de un chequeo de calidad de datos.
type QualityStatus string

const (
	QualityPass    QualityStatus = "PASS"
	QualityWarning QualityStatus = "WARNING"
	QualityFail    QualityStatus = "FAIL"
)

// QualityCheck señal de calidad de datos (solo informativa; nunca bloquea los datos).
type QualityCheck struct {
	Name   string // p.ej. "Orders Required Columns"
	Status QualityStatus
	Detail string
}
