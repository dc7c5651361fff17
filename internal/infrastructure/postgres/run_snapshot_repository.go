package postgres

import (
	"context"
	"fmt"
	"math"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/retail-pipeline/internal/domain/entity"
	"github.com/jhoicas/retail-pipeline/internal/domain/repository"
)

var _ repository.RunSnapshotRepository = (*RunSnapshotRepo)(nil)

// inventorySnapshotColumns columnas de inventory_snapshots en el orden de inventorySnapshotRow.
var inventorySnapshotColumns = []string{
	"run_id", "snapshot_date", "product_id", "product_name", "category",
	"daily_demand", "stock_level", "restock_amount", "restocked",
	"price", "original_price", "price_change_pct",
	"days_of_inventory", "stockout_risk", "annualized_turnover", "fill_rate",
}

// RunSnapshotRepo persiste corridas del pipeline en PostgreSQL.
type RunSnapshotRepo struct {
	db TxBeginner
}

// NewRunSnapshotRepository construye el adaptador sobre el pool.
func NewRunSnapshotRepository(db TxBeginner) *RunSnapshotRepo {
	return &RunSnapshotRepo{db: db}
}

// SaveRun guarda cabecera, estado de fuentes, inventario (COPY) y chequeos en una sola transacción.
func (r *RunSnapshotRepo) SaveRun(ctx context.Context, s repository.RunSnapshot) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if err := saveRun(ctx, tx, s); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

func saveRun(ctx context.Context, q Querier, s repository.RunSnapshot) error {
	_, err := q.Exec(ctx, `
		INSERT INTO pipeline_runs (id, started_at, finished_at, inventory_rows, checks)
		VALUES ($1, $2, $3, $4, $5)`,
		s.RunID, s.StartedAt, s.FinishedAt, len(s.Inventory), len(s.Checks),
	)
	if err != nil {
		return fmt.Errorf("insert pipeline_run: %w", err)
	}

	for _, src := range s.Sources {
		_, err := q.Exec(ctx, `
			INSERT INTO pipeline_run_sources (run_id, source, available, row_count, reason)
			VALUES ($1, $2, $3, $4, NULLIF($5, ''))`,
			s.RunID, src.Source, src.Available, src.Rows, src.Reason,
		)
		if err != nil {
			return fmt.Errorf("insert source %s: %w", src.Source, err)
		}
	}

	if len(s.Inventory) > 0 {
		rows := make([][]any, len(s.Inventory))
		for i, rec := range s.Inventory {
			rows[i] = inventorySnapshotRow(s.RunID, rec)
		}
		n, err := q.CopyFrom(ctx, pgx.Identifier{"inventory_snapshots"}, inventorySnapshotColumns, pgx.CopyFromRows(rows))
		if err != nil {
			return fmt.Errorf("copy inventory_snapshots: %w", err)
		}
		if int(n) != len(rows) {
			return fmt.Errorf("copy inventory_snapshots: %d de %d filas", n, len(rows))
		}
	}

	for _, c := range s.Checks {
		_, err := q.Exec(ctx, `
			INSERT INTO quality_checks (run_id, name, status, detail)
			VALUES ($1, $2, $3, $4)`,
			s.RunID, c.Name, string(c.Status), c.Detail,
		)
		if err != nil {
			return fmt.Errorf("insert quality_check %q: %w", c.Name, err)
		}
	}
	return nil
}

// inventorySnapshotRow fila para COPY. days_of_inventory infinito se guarda como NULL.
func inventorySnapshotRow(runID any, r entity.InventoryRecord) []any {
	var daysOfInventory any
	if !math.IsInf(r.DaysOfInventory, 0) && !math.IsNaN(r.DaysOfInventory) {
		daysOfInventory = r.DaysOfInventory
	}
	return []any{
		runID, r.Date, r.ProductID, r.ProductName, r.Category,
		r.DailyDemand, r.StockLevel, r.RestockAmount, r.Restocked,
		r.Price, r.OriginalPrice, r.PriceChangePct,
		daysOfInventory, r.StockoutRisk, r.AnnualizedTurnover, r.FillRate,
	}
}
