package catalog

import (
	"context"
	"fmt"

	"github.com/jhoicas/retail-pipeline/internal/application/dto"
	"github.com/jhoicas/retail-pipeline/internal/application/ports"
	"github.com/jhoicas/retail-pipeline/internal/domain"
	"github.com/jhoicas/retail-pipeline/internal/domain/dataset"
	"github.com/jhoicas/retail-pipeline/internal/domain/entity"
	"github.com/jhoicas/retail-pipeline/internal/domain/inventory"
	"github.com/jhoicas/retail-pipeline/internal/domain/quality"
)

// Nombres de las fuentes del lado API.
const (
	SourceProducts   = "products"
	SourceInventory  = "inventory"
	SourceCategories = "categories"
)

// Sources orden canónico de las fuentes del lado API.
var Sources = []string{SourceProducts, SourceInventory, SourceCategories}

// APIData resultado de GetAllAPIData. Tables solo contiene las fuentes producidas;
// Inventory conserva los registros tipados de la simulación para analítica y persistencia.
type APIData struct {
	dto.SourceResult
	Inventory []entity.InventoryRecord
}

// UseCase orquesta el catálogo: productos, categorías y simulación de inventario.
type UseCase struct {
	client    ports.CatalogClient
	simulator *inventory.Simulator
	simCfg    inventory.SimulationConfig
	recorder  quality.Recorder
}

// NewUseCase construye el caso de uso. recorder puede ser nil (se descartan las señales).
func NewUseCase(
	client ports.CatalogClient,
	simulator *inventory.Simulator,
	simCfg inventory.SimulationConfig,
	recorder quality.Recorder,
) *UseCase {
	if recorder == nil {
		recorder = quality.Nop
	}
	return &UseCase{client: client, simulator: simulator, simCfg: simCfg, recorder: recorder}
}

// GetProducts descarga los productos, emite las señales de calidad y devuelve la tabla.
func (uc *UseCase) GetProducts(ctx context.Context) (*dataset.Table, error) {
	t, err := uc.client.FetchProducts(ctx)
	if err != nil {
		return nil, fmt.Errorf("catalog: productos: %w", err)
	}
	if t.Len() == 0 || t.Width() == 0 {
		return nil, fmt.Errorf("catalog: productos: %w", domain.ErrEmptySource)
	}
	t.Name = SourceProducts
	quality.ValidateProducts(t, uc.recorder)
	return t, nil
}

// GetCategories devuelve las categorías como tabla de una columna "category".
func (uc *UseCase) GetCategories(ctx context.Context) (*dataset.Table, error) {
	names, err := uc.client.FetchCategories(ctx)
	if err != nil {
		return nil, fmt.Errorf("catalog: categorías: %w", err)
	}
	t := dataset.New(SourceCategories, []string{"category"})
	for _, n := range names {
		t.Rows = append(t.Rows, []any{n})
	}
	return t, nil
}

// Simulate convierte la tabla de productos y ejecuta la simulación. days <= 0 usa el valor configurado.
func (uc *UseCase) Simulate(products *dataset.Table, days int) ([]entity.InventoryRecord, error) {
	list, err := ProductsFromTable(products)
	if err != nil {
		return nil, fmt.Errorf("catalog: simulación: %w", err)
	}
	cfg := uc.simCfg
	if days > 0 {
		cfg.Days = days
	}
	records, err := uc.simulator.Simulate(list, cfg)
	if err != nil {
		return nil, fmt.Errorf("catalog: simulación: %w", err)
	}
	return records, nil
}

// SimulateInventory igual que Simulate pero devuelve la tabla "inventory".
func (uc *UseCase) SimulateInventory(products *dataset.Table, days int) (*dataset.Table, error) {
	records, err := uc.Simulate(products, days)
	if err != nil {
		return nil, err
	}
	return InventoryTable(records), nil
}

// GetAllAPIData ejecuta productos → inventario (si hay productos) → categorías.
// Tables solo contiene las fuentes producidas; Failures registra la causa de las ausentes.
func (uc *UseCase) GetAllAPIData(ctx context.Context) APIData {
	out := APIData{SourceResult: dto.NewSourceResult()}

	products, err := uc.GetProducts(ctx)
	if err != nil {
		out.Failures[SourceProducts] = err
		out.Failures[SourceInventory] = fmt.Errorf("catalog: simulación omitida: %w", err)
	} else {
		out.Tables[SourceProducts] = products
		if records, err := uc.Simulate(products, 0); err != nil {
			out.Failures[SourceInventory] = err
		} else {
			out.Tables[SourceInventory] = InventoryTable(records)
			out.Inventory = records
		}
	}

	if categories, err := uc.GetCategories(ctx); err != nil {
		out.Failures[SourceCategories] = err
	} else {
		out.Tables[SourceCategories] = categories
	}
	return out
}
