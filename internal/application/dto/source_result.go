package dto

import (
	"github.com/jhoicas/retail-pipeline/internal/domain"
	"github.com/jhoicas/retail-pipeline/internal/domain/dataset"
)

// SourceResult resultado de un agregador: tablas producidas y causa de cada fuente ausente.
// Una fuente nunca aparece con tabla no nil y fallo a la vez.
type SourceResult struct {
	Tables   map[string]*dataset.Table
	Failures map[string]error
}

// NewSourceResult construye un resultado vacío.
func NewSourceResult() SourceResult {
	return SourceResult{
		Tables:   map[string]*dataset.Table{},
		Failures: map[string]error{},
	}
}

// Table devuelve la tabla de la fuente si se produjo.
func (r SourceResult) Table(source string) (*dataset.Table, bool) {
	t, ok := r.Tables[source]
	return t, ok && t != nil
}

// Statuses resume el estado de las fuentes en el orden indicado.
func (r SourceResult) Statuses(sources ...string) []SourceStatusDTO {
	out := make([]SourceStatusDTO, 0, len(sources))
	for _, s := range sources {
		st := SourceStatusDTO{Source: s}
		if t, ok := r.Table(s); ok {
			st.Available = true
			st.Rows = t.Len()
		} else if err := r.Failures[s]; err != nil {
			st.Reason = domain.Reason(err)
			st.Error = err.Error()
		}
		out = append(out, st)
	}
	return out
}
