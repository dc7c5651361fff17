package excel_test

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/jhoicas/retail-pipeline/internal/application/spreadsheet"
	"github.com/jhoicas/retail-pipeline/internal/domain"
	"github.com/jhoicas/retail-pipeline/internal/infrastructure/excel"
)

// writeWorkbook crea un libro con las hojas Orders y People en un directorio temporal.
func writeWorkbook(t *testing.T) string {
	t.Helper()
	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	_, err := f.NewSheet("Orders")
	require.NoError(t, err)
	require.NoError(t, f.SetSheetRow("Orders", "A1", &[]any{" Order ID ", "Order Date", "Ship Date", "Sales", "Quantity", "Region"}))
	require.NoError(t, f.SetSheetRow("Orders", "A2", &[]any{"CA-1", time.Date(2016, 11, 8, 0, 0, 0, 0, time.UTC), time.Date(2016, 11, 11, 0, 0, 0, 0, time.UTC), 261.96, 2, "South"}))
	require.NoError(t, f.SetSheetRow("Orders", "A3", &[]any{"CA-2", time.Date(2016, 6, 12, 0, 0, 0, 0, time.UTC), nil, 14.62, 2}))

	_, err = f.NewSheet("People")
	require.NoError(t, err)
	require.NoError(t, f.SetSheetRow("People", "A1", &[]any{"Person", "Region", "Postal Code", "Active"}))
	require.NoError(t, f.SetSheetRow("People", "A2", &[]any{"Anna Andreadi", "West"}))
	require.NoError(t, f.SetCellStr("People", "C2", "02134"))
	require.NoError(t, f.SetCellBool("People", "D2", true))
	require.NoError(t, f.SetSheetRow("People", "A3", &[]any{"Chuck Magee", "East", 10024}))

	path := filepath.Join(t.TempDir(), "superstore.xlsx")
	require.NoError(t, f.SaveAs(path))
	return path
}

func TestReadSheet(t *testing.T) {
	reader := excel.NewWorkbookReader(writeWorkbook(t))

	orders, err := reader.ReadSheet(context.Background(), "Orders")
	require.NoError(t, err)

	assert.Equal(t, []string{"Order ID", "Order Date", "Ship Date", "Sales", "Quantity", "Region"}, orders.Columns)
	require.Equal(t, 2, orders.Len())

	sales, _ := orders.Value(0, "Sales")
	assert.Equal(t, 261.96, sales)
	qty, _ := orders.Value(0, "Quantity")
	assert.Equal(t, 2.0, qty)

	ship, _ := orders.Value(1, "Ship Date")
	assert.Nil(t, ship)
	region, _ := orders.Value(1, "Region")
	assert.Nil(t, region, "fila corta se completa con nil")

	// La fecha llega como serial y la transformación la interpreta.
	raw, _ := orders.Value(0, "Order Date")
	d, err := spreadsheet.ParseDate(raw)
	require.NoError(t, err)
	assert.True(t, time.Date(2016, 11, 8, 0, 0, 0, 0, time.UTC).Equal(d), "fecha %v", d)
}

func TestReadSheet_TextCellsKeepLeadingZeros(t *testing.T) {
	reader := excel.NewWorkbookReader(writeWorkbook(t))

	people, err := reader.ReadSheet(context.Background(), "People")
	require.NoError(t, err)
	require.Equal(t, 2, people.Len())

	postal, _ := people.Value(0, "Postal Code")
	assert.Equal(t, "02134", postal, "celda de texto se conserva como string")
	active, _ := people.Value(0, "Active")
	assert.Equal(t, true, active)

	numeric, _ := people.Value(1, "Postal Code")
	assert.Equal(t, 10024.0, numeric)
	person, _ := people.Value(1, "Person")
	assert.Equal(t, "Chuck Magee", person)
}

func TestReadSheet_WithSpreadsheetUseCase(t *testing.T) {
	reader := excel.NewWorkbookReader(writeWorkbook(t))
	uc := spreadsheet.NewUseCase(reader, nil, spreadsheet.Config{}, nil)

	data := uc.GetAllData(context.Background())

	require.NotNil(t, data.Tables["orders"])
	assert.Equal(t, []any{3, nil}, data.Tables["orders"].Column("Lead Time (Days)"))
	require.NotNil(t, data.Tables["people"])
	assert.Nil(t, data.Tables["returns"])
	assert.ErrorIs(t, data.Failures["returns"], domain.ErrMalformedSource, "hoja inexistente")
}

func TestReadSheet_MissingFile(t *testing.T) {
	reader := excel.NewWorkbookReader(filepath.Join(t.TempDir(), "nope.xlsx"))

	_, err := reader.ReadSheet(context.Background(), "Orders")
	assert.ErrorIs(t, err, domain.ErrSourceNotFound)
}
