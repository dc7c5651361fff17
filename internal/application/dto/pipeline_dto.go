package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// ── Estado por fuente ─────────────────────────────────────────────────────────

// SourceStatusDTO resultado de una fuente dentro de una corrida.
type SourceStatusDTO struct {
	Source    string `json:"source"`    // products|inventory|categories|orders|returns|people
	Available bool   `json:"available"` // false si la fuente quedó ausente
	Rows      int    `json:"rows"`
	Reason    string `json:"reason,omitempty"` // código estable de domain.Reason
	Error     string `json:"error,omitempty"`
}

// QualityCheckDTO señal de calidad de datos.
type QualityCheckDTO struct {
	Name   string `json:"name"`
	Status string `json:"status"` // PASS|WARNING|FAIL
	Detail string `json:"detail,omitempty"`
}

// ── Inventario simulado ───────────────────────────────────────────────────────

// CategoryInventorySummaryDTO KPIs de la simulación agregados por categoría.
type CategoryInventorySummaryDTO struct {
	Category          string          `json:"category"`
	Products          int             `json:"products"`
	Records           int             `json:"records"`
	StockoutRiskDays  int             `json:"stockout_risk_days"` // registros con stockout_risk
	StockoutRiskPct   decimal.Decimal `json:"stockout_risk_pct"`  // StockoutRiskDays / Records * 100
	AvgFillRate       decimal.Decimal `json:"avg_fill_rate"`
	AvgTurnover       decimal.Decimal `json:"avg_annualized_turnover"`
	Restocks          int             `json:"restocks"`
	AvgPriceChangePct decimal.Decimal `json:"avg_price_change_pct"`
}

// ── Reporte de corrida ────────────────────────────────────────────────────────

// RunReport contenido del reporte PDF de una corrida.
type RunReport struct {
	RunID      string                        `json:"run_id"`
	StartedAt  time.Time                     `json:"started_at"`
	FinishedAt time.Time                     `json:"finished_at"`
	Sources    []SourceStatusDTO             `json:"sources"`
	Checks     []QualityCheckDTO             `json:"checks"`
	Inventory  []CategoryInventorySummaryDTO `json:"inventory"`
}
