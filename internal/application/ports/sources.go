package ports

import (
	"context"

	"github.com/jhoicas/retail-pipeline/internal/domain/dataset"
)

// CatalogClient puerto hacia la API REST del catálogo de productos.
type CatalogClient interface {
	// FetchProducts devuelve los productos tal como los expone la API (una columna por campo).
	FetchProducts(ctx context.Context) (*dataset.Table, error)
	// FetchCategories devuelve los nombres de categoría.
	FetchCategories(ctx context.Context) ([]string, error)
}

// WorkbookReader puerto de lectura de una hoja del libro de cálculo.
// La primera fila de la hoja son los encabezados; las celdas vacías se devuelven como nil.
type WorkbookReader interface {
	ReadSheet(ctx context.Context, sheet string) (*dataset.Table, error)
}

// DatasetDownloader descarga y descomprime un dataset externo en un directorio local.
type DatasetDownloader interface {
	Download(ctx context.Context, dataset, dir string) error
}
