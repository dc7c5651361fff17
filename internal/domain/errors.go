package domain

import (
	"context"
	"errors"
)

// Errores de dominio (sin dependencias externas).
// Los adaptadores envuelven estos sentinels con fmt.Errorf("...: %w", ...) para que
// quien consume un resultado pueda distinguir la causa sin leer los logs.
var (
	ErrTransport       = errors.New("fallo de transporte")
	ErrSourceNotFound  = errors.New("fuente no encontrada")
	ErrMalformedSource = errors.New("fuente con formato inválido")
	ErrEmptySource     = errors.New("fuente sin datos")
	ErrInvalidInput    = errors.New("entrada inválida")
	ErrMissingColumn   = errors.New("columna requerida ausente")
)

// Reason devuelve un código estable para la causa de un fallo (logs, reporte, BD).
func Reason(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return "canceled"
	case errors.Is(err, ErrTransport):
		return "transport"
	case errors.Is(err, ErrSourceNotFound):
		return "not_found"
	case errors.Is(err, ErrMalformedSource):
		return "malformed"
	case errors.Is(err, ErrEmptySource):
		return "empty"
	case errors.Is(err, ErrMissingColumn):
		return "missing_column"
	case errors.Is(err, ErrInvalidInput):
		return "invalid_input"
	default:
		return "unknown"
	}
}
