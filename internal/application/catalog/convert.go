package catalog

import (
	"fmt"

	"github.com/jhoicas/retail-pipeline/internal/domain"
	"github.com/jhoicas/retail-pipeline/internal/domain/dataset"
	"github.com/jhoicas/retail-pipeline/internal/domain/entity"
	"github.com/jhoicas/retail-pipeline/internal/domain/quality"
)

// ProductsFromTable convierte la tabla del catálogo en productos tipados.
// Requiere id, title, price y category; cualquier celda inválida falla la conversión completa.
func ProductsFromTable(t *dataset.Table) ([]entity.Product, error) {
	if t == nil {
		return nil, fmt.Errorf("%w: tabla de productos nula", domain.ErrInvalidInput)
	}
	if missing := quality.MissingColumns(t, quality.ProductRequiredColumns); len(missing) > 0 {
		return nil, fmt.Errorf("%w: %v", domain.ErrMissingColumn, missing)
	}

	products := make([]entity.Product, 0, t.Len())
	for i, row := range t.Rows {
		id, ok := dataset.AsInt(t.Get(row, "id"))
		if !ok {
			return nil, fmt.Errorf("%w: fila %d: id inválido %v", domain.ErrMalformedSource, i, t.Get(row, "id"))
		}
		price, ok := dataset.AsDecimal(t.Get(row, "price"))
		if !ok {
			return nil, fmt.Errorf("%w: fila %d: precio inválido %v", domain.ErrMalformedSource, i, t.Get(row, "price"))
		}
		title, _ := t.Get(row, "title").(string)
		category, _ := t.Get(row, "category").(string)
		products = append(products, entity.Product{ID: id, Title: title, Price: price, Category: category})
	}
	return products, nil
}

// InventoryTable construye la tabla "inventory" a partir de los registros simulados.
func InventoryTable(records []entity.InventoryRecord) *dataset.Table {
	t := dataset.New(SourceInventory, entity.InventoryColumns)
	t.Rows = make([][]any, 0, len(records))
	for _, r := range records {
		t.Rows = append(t.Rows, r.Cells())
	}
	return t
}
