package repository

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/retail-pipeline/internal/domain/entity"
)

// SourceStatus estado de una fuente al cierre de la corrida.
type SourceStatus struct {
	Source    string
	Available bool
	Rows      int
	Reason    string // código de domain.Reason, vacío si la fuente está disponible
}

// RunSnapshot datos persistibles de una corrida del pipeline.
type RunSnapshot struct {
	RunID      uuid.UUID
	StartedAt  time.Time
	FinishedAt time.Time
	Sources    []SourceStatus
	Inventory  []entity.InventoryRecord
	Checks     []entity.QualityCheck
}

// RunSnapshotRepository define el puerto de persistencia de corridas (DIP).
// SaveRun es atómico: o se guarda la corrida completa o nada.
type RunSnapshotRepository interface {
	SaveRun(ctx context.Context, snapshot RunSnapshot) error
}
