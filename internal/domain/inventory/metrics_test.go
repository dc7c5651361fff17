package inventory_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/retail-pipeline/internal/domain/entity"
	"github.com/jhoicas/retail-pipeline/internal/domain/inventory"
)

func TestDeriveMetrics(t *testing.T) {
	tests := []struct {
		name         string
		demand       int
		stock        int
		wantDOI      float64
		wantRisk     bool
		wantTurnover float64
		wantFill     float64
	}{
		{"stock holgado", 5, 100, 20, false, 18.25, 1},
		{"riesgo de quiebre", 10, 25, 2.5, true, 146, 1},
		{"justo en el umbral", 4, 12, 3, false, 121.66666666666667, 1},
		{"stock menor a la demanda", 8, 4, 0.5, true, 730, 0.5},
		{"sin stock", 6, 0, 0, true, 0, 0},
		{"sin demanda", 0, 40, math.Inf(1), false, 0, 1},
		{"sin demanda ni stock", 0, 0, math.Inf(1), false, 0, 1},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := inventory.DeriveMetrics(entity.InventoryRecord{DailyDemand: tc.demand, StockLevel: tc.stock})

			if math.IsInf(tc.wantDOI, 1) {
				assert.True(t, math.IsInf(got.DaysOfInventory, 1))
			} else {
				assert.InDelta(t, tc.wantDOI, got.DaysOfInventory, 1e-9)
			}
			assert.Equal(t, tc.wantRisk, got.StockoutRisk)
			assert.InDelta(t, tc.wantTurnover, got.AnnualizedTurnover, 1e-9)
			assert.InDelta(t, tc.wantFill, got.FillRate, 1e-9)
		})
	}
}

func TestDeriveMetrics_KeepsBaseFields(t *testing.T) {
	in := entity.InventoryRecord{ProductID: 3, ProductName: "Ring", DailyDemand: 2, StockLevel: 9, RestockAmount: 55, Restocked: true}
	got := inventory.DeriveMetrics(in)

	assert.Equal(t, in.ProductID, got.ProductID)
	assert.Equal(t, in.ProductName, got.ProductName)
	assert.Equal(t, in.StockLevel, got.StockLevel)
	assert.Equal(t, in.RestockAmount, got.RestockAmount)
	assert.True(t, got.Restocked)
}
