// Package qualitylog implementa el sumidero de señales de calidad sobre el logger estructurado.
package qualitylog

import (
	"github.com/rs/zerolog"

	"github.com/jhoicas/retail-pipeline/internal/domain/entity"
	"github.com/jhoicas/retail-pipeline/internal/domain/quality"
	"github.com/jhoicas/retail-pipeline/pkg/logger"
)

var _ quality.Recorder = (*Recorder)(nil)

// Recorder registra cada señal en el log (PASS=info, WARNING=warn, FAIL=error)
// y la conserva para el reporte y la persistencia de la corrida.
// No es seguro para uso concurrente; el pipeline es secuencial.
type Recorder struct {
	log    *logger.Logger
	checks []entity.QualityCheck
}

// NewRecorder construye el sumidero. log nil descarta la salida.
func NewRecorder(log *logger.Logger) *Recorder {
	if log == nil {
		log = logger.Nop()
	}
	return &Recorder{log: log}
}

// Record implementa quality.Recorder.
func (r *Recorder) Record(check entity.QualityCheck) {
	r.checks = append(r.checks, check)

	ev := r.log.WithLevel(levelFor(check.Status)).
		Str("check", check.Name).
		Str("status", string(check.Status))
	if check.Detail != "" {
		ev = ev.Str("detail", check.Detail)
	}
	ev.Msg("data quality check")
}

// Checks devuelve una copia de las señales registradas.
func (r *Recorder) Checks() []entity.QualityCheck {
	out := make([]entity.QualityCheck, len(r.checks))
	copy(out, r.checks)
	return out
}

// Reset descarta las señales acumuladas (una corrida nueva).
func (r *Recorder) Reset() { r.checks = r.checks[:0] }

func levelFor(s entity.QualityStatus) zerolog.Level {
	switch s {
	case entity.QualityFail:
		return zerolog.ErrorLevel
	case entity.QualityWarning:
		return zerolog.WarnLevel
	default:
		return zerolog.InfoLevel
	}
}
