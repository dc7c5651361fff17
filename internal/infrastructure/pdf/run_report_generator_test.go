package pdf

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/retail-pipeline/internal/application/dto"
)

func TestMarotoReportGenerator_GenerateRunReport(t *testing.T) {
	start := time.Date(2024, 3, 1, 8, 0, 0, 0, time.UTC)
	report := dto.RunReport{
		RunID:      "5f2b6a0e-7c1d-4b8a-9e3f-0a1b2c3d4e5f",
		StartedAt:  start,
		FinishedAt: start.Add(42 * time.Second),
		Sources: []dto.SourceStatusDTO{
			{Source: "products", Available: true, Rows: 20},
			{Source: "orders", Reason: "not_found", Error: "fuente no encontrada"},
		},
		Checks: []dto.QualityCheckDTO{
			{Name: "Products Missing Data", Status: "PASS", Detail: "Missing data: 0.00%"},
			{Name: "Orders Required Columns", Status: "FAIL", Detail: "Missing columns: ['Sales']"},
		},
		Inventory: []dto.CategoryInventorySummaryDTO{{
			Category: "electronics", Products: 6, Records: 180, StockoutRiskDays: 3,
			StockoutRiskPct: decimal.RequireFromString("1.67"), AvgFillRate: decimal.NewFromInt(1),
			AvgTurnover: decimal.RequireFromString("12.5"), Restocks: 30, AvgPriceChangePct: decimal.RequireFromString("0.12"),
		}},
	}

	out, err := NewMarotoReportGenerator("").GenerateRunReport(context.Background(), report)

	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(out, []byte("%PDF")))
}

func TestMarotoReportGenerator_EmptyReport(t *testing.T) {
	out, err := NewMarotoReportGenerator("Pipeline").GenerateRunReport(context.Background(), dto.RunReport{RunID: "r"})

	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(out, []byte("%PDF")))
}

func TestMarotoReportGenerator_CanceledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewMarotoReportGenerator("").GenerateRunReport(ctx, dto.RunReport{})
	assert.ErrorIs(t, err, context.Canceled)
}
