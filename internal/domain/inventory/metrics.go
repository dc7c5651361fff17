package inventory

import (
	"math"

	"github.com/jhoicas/retail-pipeline/internal/domain/entity"
)

const (
	stockoutRiskDays = 3
	daysPerYear      = 365
)

// DeriveMetrics calcula las métricas analíticas de un registro (función pura por fila):
//
//	DaysOfInventory    = stock / demanda           (+Inf si demanda == 0)
//	StockoutRisk       = DaysOfInventory < 3
//	AnnualizedTurnover = demanda * 365 / stock     (0 si stock == 0)
//	FillRate           = min(1, stock / demanda)   (1 si demanda == 0)
func DeriveMetrics(r entity.InventoryRecord) entity.InventoryRecord {
	if r.DailyDemand > 0 {
		r.DaysOfInventory = float64(r.StockLevel) / float64(r.DailyDemand)
		r.FillRate = math.Min(1.0, r.DaysOfInventory)
	} else {
		r.DaysOfInventory = math.Inf(1)
		r.FillRate = 1.0
	}
	r.StockoutRisk = r.DaysOfInventory < stockoutRiskDays

	if r.StockLevel > 0 {
		r.AnnualizedTurnover = float64(r.DailyDemand*daysPerYear) / float64(r.StockLevel)
	} else {
		r.AnnualizedTurnover = 0
	}
	return r
}
