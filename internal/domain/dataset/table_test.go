package dataset_test

import (
	"encoding/json"
	"math"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/retail-pipeline/internal/domain/dataset"
)

func TestTable_AppendRejectsWrongWidth(t *testing.T) {
	tbl := dataset.New("orders", []string{"a", "b"})
	require.NoError(t, tbl.Append([]any{1, 2}))
	assert.Error(t, tbl.Append([]any{1}))
	assert.Equal(t, 1, tbl.Len())
	assert.Equal(t, 2, tbl.Width())
}

func TestTable_SetColumnAddsAndReplaces(t *testing.T) {
	tbl := dataset.New("orders", []string{"Sales", "Quantity"})
	require.NoError(t, tbl.Append([]any{10.0, 2.0}))
	require.NoError(t, tbl.Append([]any{nil, 3.0}))

	tbl.SetColumn("Order Value", func(row []any) any {
		s, ok1 := dataset.AsFloat(tbl.Get(row, "Sales"))
		q, ok2 := dataset.AsFloat(tbl.Get(row, "Quantity"))
		if !ok1 || !ok2 {
			return nil
		}
		return s * q
	})
	assert.Equal(t, []string{"Sales", "Quantity", "Order Value"}, tbl.Columns)
	assert.Equal(t, []any{20.0, nil}, tbl.Column("Order Value"))

	tbl.SetColumn("Sales", func(row []any) any { return 1.0 })
	assert.Equal(t, []any{1.0, 1.0}, tbl.Column("Sales"))
	assert.Equal(t, 3, tbl.Width())
}

func TestTable_MissingRatio(t *testing.T) {
	tbl := dataset.New("t", []string{"a", "b"})
	assert.Zero(t, tbl.MissingRatio(), "tabla vacía")

	require.NoError(t, tbl.Append([]any{nil, 1}))
	require.NoError(t, tbl.Append([]any{math.NaN(), "x"}))
	assert.Equal(t, 2, tbl.MissingCells())
	assert.InDelta(t, 0.5, tbl.MissingRatio(), 1e-12)
}

func TestTable_ValueAndIndex(t *testing.T) {
	tbl := dataset.New("t", []string{"a", "b"})
	require.NoError(t, tbl.Append([]any{"x", 2}))

	v, ok := tbl.Value(0, "b")
	assert.True(t, ok)
	assert.Equal(t, 2, v)

	_, ok = tbl.Value(0, "zz")
	assert.False(t, ok)
	_, ok = tbl.Value(3, "a")
	assert.False(t, ok)
	assert.Equal(t, -1, tbl.Index("zz"))
	assert.Nil(t, tbl.Column("zz"))
}

func TestConversions(t *testing.T) {
	f, ok := dataset.AsFloat(json.Number("12.5"))
	assert.True(t, ok)
	assert.Equal(t, 12.5, f)

	_, ok = dataset.AsFloat("abc")
	assert.False(t, ok)
	_, ok = dataset.AsFloat(nil)
	assert.False(t, ok)

	d, ok := dataset.AsDecimal(json.Number("109.95"))
	assert.True(t, ok)
	assert.True(t, d.Equal(decimal.RequireFromString("109.95")))

	n, ok := dataset.AsInt(3.0)
	assert.True(t, ok)
	assert.Equal(t, 3, n)
	_, ok = dataset.AsInt(3.5)
	assert.False(t, ok)
	n, ok = dataset.AsInt(json.Number("7"))
	assert.True(t, ok)
	assert.Equal(t, 7, n)
}
