package ports

import (
	"context"

	"github.com/jhoicas/retail-pipeline/internal/application/dto"
)

// RunReportGenerator genera la representación imprimible (PDF) de una corrida del pipeline.
type RunReportGenerator interface {
	GenerateRunReport(ctx context.Context, report dto.RunReport) ([]byte, error)
}
