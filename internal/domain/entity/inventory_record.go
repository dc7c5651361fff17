package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// InventoryRecord fila de la simulación diaria de inventario para un producto.
// Se crea una vez por (producto, día), se enriquece con las métricas y no se vuelve a modificar.
type InventoryRecord struct {
	Date          time.Time
	ProductID     int
	ProductName   string
	Category      string
	DailyDemand   int // >= 0
	StockLevel    int // >= 0, después de demanda y reposición
	RestockAmount int
	Restocked     bool

	Price          decimal.Decimal // precio del día
	OriginalPrice  decimal.Decimal
	PriceChangePct decimal.Decimal // (Price - OriginalPrice) / OriginalPrice * 100

	// Métricas derivadas
	DaysOfInventory    float64 // +Inf si DailyDemand == 0
	StockoutRisk       bool    // DaysOfInventory < 3
	AnnualizedTurnover float64 // 0 si StockLevel == 0
	FillRate           float64 // [0, 1]
}

// InventoryColumns orden de columnas de la tabla "inventory".
var InventoryColumns = []string{
	"date", "product_id", "product_name", "category",
	"daily_demand", "stock_level", "restock_amount", "restocked",
	"price", "original_price", "price_change_pct",
	"days_of_inventory", "stockout_risk", "annualized_turnover", "fill_rate",
}

// Cells devuelve los valores del registro en el orden de InventoryColumns.
func (r InventoryRecord) Cells() []any {
	return []any{
		r.Date, r.ProductID, r.ProductName, r.Category,
		r.DailyDemand, r.StockLevel, r.RestockAmount, r.Restocked,
		r.Price, r.OriginalPrice, r.PriceChangePct,
		r.DaysOfInventory, r.StockoutRisk, r.AnnualizedTurnover, r.FillRate,
	}
}
