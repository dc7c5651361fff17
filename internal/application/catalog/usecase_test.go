package catalog_test

import (
	"context"
	"encoding/json"
	"fmt"
	"math/rand/v2"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/retail-pipeline/internal/application/catalog"
	"github.com/jhoicas/retail-pipeline/internal/domain"
	"github.com/jhoicas/retail-pipeline/internal/domain/dataset"
	"github.com/jhoicas/retail-pipeline/internal/domain/entity"
	"github.com/jhoicas/retail-pipeline/internal/domain/inventory"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fakes
// ──────────────────────────────────────────────────────────────────────────────

type fakeClient struct {
	products      *dataset.Table
	productsErr   error
	categories    []string
	categoriesErr error
}

func (f *fakeClient) FetchProducts(context.Context) (*dataset.Table, error) {
	return f.products, f.productsErr
}

func (f *fakeClient) FetchCategories(context.Context) ([]string, error) {
	return f.categories, f.categoriesErr
}

type collector struct{ checks []entity.QualityCheck }

func (c *collector) Record(check entity.QualityCheck) { c.checks = append(c.checks, check) }

func productsTable(t *testing.T) *dataset.Table {
	t.Helper()
	tbl := dataset.New("raw", []string{"id", "title", "price", "description", "category"})
	require.NoError(t, tbl.Append([]any{json.Number("1"), "Backpack", json.Number("109.95"), "bag", "men's clothing"}))
	require.NoError(t, tbl.Append([]any{json.Number("2"), "Ring", json.Number("168"), nil, "jewelery"}))
	return tbl
}

var simCfg = inventory.SimulationConfig{Days: 4, RestockingFrequency: 2, DemandVariability: 0.2}

func newUseCase(client *fakeClient, rec *collector) *catalog.UseCase {
	sim := inventory.NewSimulator(rand.New(rand.NewPCG(1, 2)), func() time.Time {
		return time.Date(2024, 1, 10, 8, 0, 0, 0, time.UTC)
	})
	return catalog.NewUseCase(client, sim, simCfg, rec)
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests
// ──────────────────────────────────────────────────────────────────────────────

func TestGetAllAPIData_AllSourcesPresent(t *testing.T) {
	rec := &collector{}
	uc := newUseCase(&fakeClient{
		products:   productsTable(t),
		categories: []string{"electronics", "jewelery"},
	}, rec)

	data := uc.GetAllAPIData(context.Background())

	require.Empty(t, data.Failures)
	require.Len(t, data.Tables, 3)

	inv, ok := data.Table(catalog.SourceInventory)
	require.True(t, ok)
	assert.Equal(t, simCfg.Days*2, inv.Len())
	assert.Equal(t, entity.InventoryColumns, inv.Columns)
	assert.Len(t, data.Inventory, simCfg.Days*2)

	cats, ok := data.Table(catalog.SourceCategories)
	require.True(t, ok)
	assert.Equal(t, []string{"category"}, cats.Columns)
	assert.Equal(t, []any{"electronics", "jewelery"}, cats.Column("category"))

	// Missing Data (10% de celdas nulas → WARNING), Required Columns, Price Validation
	require.Len(t, rec.checks, 3)
	assert.Equal(t, entity.QualityWarning, rec.checks[0].Status)
	assert.Equal(t, entity.QualityPass, rec.checks[1].Status)
	assert.Equal(t, entity.QualityPass, rec.checks[2].Status)
}

func TestGetAllAPIData_ProductsFailureOmitsInventory(t *testing.T) {
	uc := newUseCase(&fakeClient{
		productsErr: fmt.Errorf("GET /products: %w", domain.ErrTransport),
		categories:  []string{"electronics"},
	}, &collector{})

	data := uc.GetAllAPIData(context.Background())

	assert.NotContains(t, data.Tables, catalog.SourceProducts)
	assert.NotContains(t, data.Tables, catalog.SourceInventory)
	assert.Contains(t, data.Tables, catalog.SourceCategories)
	assert.ErrorIs(t, data.Failures[catalog.SourceProducts], domain.ErrTransport)
	assert.ErrorIs(t, data.Failures[catalog.SourceInventory], domain.ErrTransport)
	assert.Nil(t, data.Inventory)

	statuses := data.Statuses(catalog.Sources...)
	require.Len(t, statuses, 3)
	assert.Equal(t, "transport", statuses[0].Reason)
	assert.False(t, statuses[1].Available)
	assert.True(t, statuses[2].Available)
	assert.Equal(t, 1, statuses[2].Rows)
}

func TestGetProducts_EmptyResponseIsAbsent(t *testing.T) {
	uc := newUseCase(&fakeClient{products: dataset.New("raw", nil)}, &collector{})

	tbl, err := uc.GetProducts(context.Background())
	assert.Nil(t, tbl)
	assert.ErrorIs(t, err, domain.ErrEmptySource)
}

func TestSimulateInventory_MissingRequiredColumnFails(t *testing.T) {
	rec := &collector{}
	tbl := dataset.New("raw", []string{"id", "title", "price"})
	require.NoError(t, tbl.Append([]any{1, "Backpack", 10.0}))

	uc := newUseCase(&fakeClient{products: tbl, categories: []string{}}, rec)

	data := uc.GetAllAPIData(context.Background())
	assert.Contains(t, data.Tables, catalog.SourceProducts, "la validación no bloquea los datos")
	assert.NotContains(t, data.Tables, catalog.SourceInventory)
	assert.ErrorIs(t, data.Failures[catalog.SourceInventory], domain.ErrMissingColumn)

	require.Len(t, rec.checks, 3)
	assert.Equal(t, entity.QualityFail, rec.checks[1].Status)
	assert.Contains(t, rec.checks[1].Detail, "category")
}

func TestSimulateInventory_DaysOverride(t *testing.T) {
	uc := newUseCase(&fakeClient{}, &collector{})

	inv, err := uc.SimulateInventory(productsTable(t), 7)
	require.NoError(t, err)
	assert.Equal(t, 14, inv.Len())
}

func TestProductsFromTable(t *testing.T) {
	products, err := catalog.ProductsFromTable(productsTable(t))
	require.NoError(t, err)
	require.Len(t, products, 2)
	assert.Equal(t, 1, products[0].ID)
	assert.Equal(t, "109.95", products[0].Price.String())
	assert.Equal(t, "jewelery", products[1].Category)

	bad := dataset.New("raw", []string{"id", "title", "price", "category"})
	require.NoError(t, bad.Append([]any{"x", "A", 1.0, "c"}))
	_, err = catalog.ProductsFromTable(bad)
	assert.ErrorIs(t, err, domain.ErrMalformedSource)
}
