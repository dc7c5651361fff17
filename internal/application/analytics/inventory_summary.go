package analytics

import (
	"math"
	"sort"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/retail-pipeline/internal/application/dto"
	"github.com/jhoicas/retail-pipeline/internal/domain/entity"
)

var hundred = decimal.NewFromInt(100)

type categoryAcc struct {
	products    map[int]struct{}
	records     int
	risk        int
	restocks    int
	fillSum     float64
	turnoverSum float64
	turnoverN   int
	priceChgSum decimal.Decimal
}

// SummarizeInventory agrega los registros simulados por categoría (orden alfabético):
//   - % de registros con riesgo de quiebre.
//   - Promedios de fill rate, rotación anualizada (solo valores finitos) y variación de precio.
//   - Número de reposiciones.
func SummarizeInventory(records []entity.InventoryRecord) []dto.CategoryInventorySummaryDTO {
	if len(records) == 0 {
		return []dto.CategoryInventorySummaryDTO{}
	}

	byCategory := map[string]*categoryAcc{}
	for _, r := range records {
		acc, ok := byCategory[r.Category]
		if !ok {
			acc = &categoryAcc{products: map[int]struct{}{}}
			byCategory[r.Category] = acc
		}
		acc.products[r.ProductID] = struct{}{}
		acc.records++
		if r.StockoutRisk {
			acc.risk++
		}
		if r.Restocked {
			acc.restocks++
		}
		acc.fillSum += r.FillRate
		if !math.IsInf(r.AnnualizedTurnover, 0) && !math.IsNaN(r.AnnualizedTurnover) {
			acc.turnoverSum += r.AnnualizedTurnover
			acc.turnoverN++
		}
		acc.priceChgSum = acc.priceChgSum.Add(r.PriceChangePct)
	}

	out := make([]dto.CategoryInventorySummaryDTO, 0, len(byCategory))
	for category, acc := range byCategory {
		n := decimal.NewFromInt(int64(acc.records))
		avgTurnover := decimal.Zero
		if acc.turnoverN > 0 {
			avgTurnover = decimal.NewFromFloat(acc.turnoverSum / float64(acc.turnoverN)).Round(2)
		}
		out = append(out, dto.CategoryInventorySummaryDTO{
			Category:          category,
			Products:          len(acc.products),
			Records:           acc.records,
			StockoutRiskDays:  acc.risk,
			StockoutRiskPct:   decimal.NewFromInt(int64(acc.risk)).Div(n).Mul(hundred).Round(2),
			AvgFillRate:       decimal.NewFromFloat(acc.fillSum / float64(acc.records)).Round(4),
			AvgTurnover:       avgTurnover,
			Restocks:          acc.restocks,
			AvgPriceChangePct: acc.priceChgSum.Div(n).Round(2),
		})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Category < out[j].Category })
	return out
}
