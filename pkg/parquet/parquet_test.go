package parquet

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"lakehouse-go/internal/model"
)

func orderRows() []model.OrderRow {
	base := time.Date(2025, 3, 14, 9, 26, 53, 589000000, time.UTC)
	return []model.OrderRow{
		{
			OrderID:     "orders/0001-A",
			CustomerID:  "customers/7-A",
			OrderDate:   base.UnixMilli(),
			TotalAmount: 69.97,
			Status:      "Shipped",
			ShipCity:    "Seattle",
			ShipCountry: "USA",
			LineCount:   2,
			SyncedAt:    base.Add(24 * time.Hour).UnixMilli(),
		},
		{
			OrderID:     "orders/0002-A",
			CustomerID:  "customers/9-A",
			OrderDate:   base.Add(time.Hour).UnixMilli(),
			TotalAmount: 199.99,
			Status:      "Pending",
			ShipCity:    "Boston",
			ShipCountry: "USA",
			LineCount:   1,
			SyncedAt:    base.Add(24 * time.Hour).UnixMilli(),
		},
	}
}

func TestOrderRowRoundTrip(t *testing.T) {
	rows := orderRows()

	data, err := WriteRows(rows)
	require.NoError(t, err)
	require.NotEmpty(t, data)

	got, err := ReadRows[model.OrderRow](data)
	require.NoError(t, err)
	assert.Equal(t, rows, got)
}

func TestTimestampsSurviveAtMillisecondPrecision(t *testing.T) {
	rows := orderRows()

	data, err := WriteRows(rows)
	require.NoError(t, err)

	got, err := ReadRows[model.OrderRow](data)
	require.NoError(t, err)

	for i := range rows {
		assert.Equal(t, rows[i].OrderDate, got[i].OrderDate)
		assert.Equal(t, rows[i].SyncedAt, got[i].SyncedAt)
	}
}

func TestSchemaStableAcrossBatches(t *testing.T) {
	// 模式在批次之间必须完全一致，模式漂移是合并阶段的硬失败
	first := SchemaString[model.OrderRow]()
	second := SchemaString[model.OrderRow]()

	assert.Equal(t, first, second)
	assert.Contains(t, first, "OrderId")
	assert.Contains(t, first, "SyncedAt")
}

func TestVectorRowRoundTrip(t *testing.T) {
	rows := []model.VectorRow{
		{OrderID: "orders/0001-A", Vector: []float32{0.1, -0.2, 0.3}, Text: "Order orders/0001-A"},
		{OrderID: "orders/0002-A", Vector: []float32{0.4, 0.5, -0.6}, Text: "Order orders/0002-A"},
	}

	data, err := WriteRows(rows)
	require.NoError(t, err)

	got, err := ReadRows[model.VectorRow](data)
	require.NoError(t, err)
	assert.Equal(t, rows, got)
}
