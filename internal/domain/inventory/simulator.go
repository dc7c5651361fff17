package inventory

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/retail-pipeline/internal/domain"
	"github.com/jhoicas/retail-pipeline/internal/domain/entity"
)

// Rangos de la simulación (enteros inclusivos).
const (
	minBaseDemand   = 1
	maxBaseDemand   = 10
	minInitialStock = 50
	maxInitialStock = 200
	minRestock      = 50
	maxRestock      = 100
)

var (
	minPriceFactor  = 0.95
	priceFactorSpan = 0.10
	hundred         = decimal.NewFromInt(100)
)

// RandSource fuente pseudoaleatoria inyectable. *math/rand/v2.Rand la satisface.
type RandSource interface {
	IntN(n int) int
	Float64() float64
}

// SimulationConfig parámetros de la simulación.
type SimulationConfig struct {
	Days                int     // días simulados (> 0)
	RestockingFrequency int     // hay reposición cuando day % RestockingFrequency == 0 (> 0)
	DemandVariability   float64 // ruido multiplicativo de la demanda, en [0, 1)
}

// Validate verifica los rangos de la configuración.
func (c SimulationConfig) Validate() error {
	if c.Days <= 0 {
		return fmt.Errorf("%w: days debe ser positivo (%d)", domain.ErrInvalidInput, c.Days)
	}
	if c.RestockingFrequency <= 0 {
		return fmt.Errorf("%w: restocking frequency debe ser positiva (%d)", domain.ErrInvalidInput, c.RestockingFrequency)
	}
	if c.DemandVariability < 0 || c.DemandVariability >= 1 {
		return fmt.Errorf("%w: demand variability fuera de [0,1) (%v)", domain.ErrInvalidInput, c.DemandVariability)
	}
	return nil
}

// Simulator genera la serie sintética de inventario/demanda por producto y día.
type Simulator struct {
	rnd RandSource
	now func() time.Time
}

// NewSimulator construye el simulador. now puede ser nil (usa time.Now).
func NewSimulator(rnd RandSource, now func() time.Time) *Simulator {
	if now == nil {
		now = time.Now
	}
	return &Simulator{rnd: rnd, now: now}
}

// Simulate produce cfg.Days * len(products) registros ya enriquecidos con DeriveMetrics,
// en orden día a día (todos los productos del día 0, luego el día 1, ...).
// Cualquier error aborta la simulación completa: nunca devuelve datos parciales.
func (s *Simulator) Simulate(products []entity.Product, cfg SimulationConfig) ([]entity.InventoryRecord, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if len(products) == 0 {
		return nil, fmt.Errorf("%w: lista de productos vacía", domain.ErrInvalidInput)
	}
	if s.rnd == nil {
		return nil, fmt.Errorf("%w: fuente aleatoria no configurada", domain.ErrInvalidInput)
	}

	now := s.now()
	start := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location()).AddDate(0, 0, -cfg.Days)

	records := make([]entity.InventoryRecord, 0, cfg.Days*len(products))
	// Stock de cierre del día anterior por producto; el primer registro del día gana ante IDs duplicados.
	var prevDay map[int]int
	for day := 0; day < cfg.Days; day++ {
		date := start.AddDate(0, 0, day)
		currDay := make(map[int]int, len(products))

		for _, p := range products {
			demand := s.dailyDemand(cfg.DemandVariability)

			var stock int
			if day == 0 {
				stock = s.intBetween(minInitialStock, maxInitialStock)
			} else if prev, ok := prevDay[p.ID]; ok {
				stock = prev
			} else {
				stock = s.intBetween(minInitialStock, maxInitialStock)
			}
			stock -= demand

			restockAmount := 0
			restocked := day%cfg.RestockingFrequency == 0
			if restocked {
				restockAmount = s.intBetween(minRestock, maxRestock)
				stock += restockAmount
			}

			factor := minPriceFactor + s.rnd.Float64()*priceFactorSpan
			price := p.Price.Mul(decimal.NewFromFloat(factor))

			rec := entity.InventoryRecord{
				Date:           date,
				ProductID:      p.ID,
				ProductName:    p.Title,
				Category:       p.Category,
				DailyDemand:    demand,
				StockLevel:     max(0, stock),
				RestockAmount:  restockAmount,
				Restocked:      restocked,
				Price:          price,
				OriginalPrice:  p.Price,
				PriceChangePct: priceChangePct(price, p.Price),
			}
			records = append(records, DeriveMetrics(rec))

			if _, seen := currDay[p.ID]; !seen {
				currDay[p.ID] = rec.StockLevel
			}
		}
		prevDay = currDay
	}
	return records, nil
}

// dailyDemand max(0, floor(base * ruido)) con base en [1,10] y ruido en [1-v, 1+v].
func (s *Simulator) dailyDemand(variability float64) int {
	base := s.intBetween(minBaseDemand, maxBaseDemand)
	noise := 1 - variability + s.rnd.Float64()*2*variability
	return max(0, int(float64(base)*noise))
}

func (s *Simulator) intBetween(lo, hi int) int {
	return lo + s.rnd.IntN(hi-lo+1)
}

// priceChangePct variación porcentual; 0 si el precio original es cero.
func priceChangePct(price, original decimal.Decimal) decimal.Decimal {
	if original.IsZero() {
		return decimal.Zero
	}
	return price.Sub(original).Div(original).Mul(hundred)
}
