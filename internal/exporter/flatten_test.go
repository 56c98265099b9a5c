package exporter

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"lakehouse-go/internal/model"
)

func sampleOrder() *model.Order {
	return &model.Order{
		ID:         "orders/0001-A",
		CustomerID: "customers/7-A",
		OrderDate:  "2025-03-14T09:26:53.589793Z",
		Status:     "Shipped",
		Lines: []model.OrderLine{
			{ProductName: "Widget Pro", Price: 29.99, Quantity: 2},
			{ProductName: "Basic Pack", Price: 9.99, Quantity: 1},
		},
		TotalAmount: 69.97,
		ShipTo:      model.ShipTo{City: "Seattle", Country: "USA"},
	}
}

func TestFlatten(t *testing.T) {
	syncedAt := time.Date(2026, 8, 28, 12, 0, 0, 123456789, time.UTC)

	row, err := Flatten(sampleOrder(), syncedAt)
	require.NoError(t, err)

	assert.Equal(t, "orders/0001-A", row.OrderID)
	assert.Equal(t, "customers/7-A", row.CustomerID)
	assert.Equal(t, "Shipped", row.Status)
	assert.Equal(t, "Seattle", row.ShipCity)
	assert.Equal(t, "USA", row.ShipCountry)
	assert.Equal(t, int64(2), row.LineCount)
	assert.Equal(t, 69.97, row.TotalAmount)
}

func TestFlattenTruncatesToMilliseconds(t *testing.T) {
	syncedAt := time.Date(2026, 8, 28, 12, 0, 0, 123456789, time.UTC)

	row, err := Flatten(sampleOrder(), syncedAt)
	require.NoError(t, err)

	// 亚毫秒部分必须被丢弃
	orderDate := time.UnixMilli(row.OrderDate).UTC()
	assert.Equal(t, "2025-03-14T09:26:53.589Z", orderDate.Format("2006-01-02T15:04:05.000Z"))

	syncedBack := time.UnixMilli(row.SyncedAt).UTC()
	assert.Equal(t, "2026-08-28T12:00:00.123Z", syncedBack.Format("2006-01-02T15:04:05.000Z"))
}

func TestFlattenRecomputesMissingTotal(t *testing.T) {
	order := sampleOrder()
	order.TotalAmount = 0

	row, err := Flatten(order, time.Now())
	require.NoError(t, err)

	// 29.99*2 + 9.99*1 = 69.97
	assert.Equal(t, 69.97, row.TotalAmount)
}

func TestFlattenDefaultsEmptyStatus(t *testing.T) {
	order := sampleOrder()
	order.Status = ""

	row, err := Flatten(order, time.Now())
	require.NoError(t, err)
	assert.Equal(t, "Unknown", row.Status)
}

func TestFlattenFailsOnMalformedDate(t *testing.T) {
	order := sampleOrder()
	order.OrderDate = "not-a-date"

	_, err := Flatten(order, time.Now())
	assert.Error(t, err)
}

func TestFlattenFailsOnMissingID(t *testing.T) {
	order := sampleOrder()
	order.ID = ""

	_, err := Flatten(order, time.Now())
	assert.Error(t, err)
}

func TestParseOrderDateAcceptsLegacyFormats(t *testing.T) {
	// 种子脚本历史上写过不带时区的 ISO 日期
	cases := []string{
		"2025-03-14T09:26:53Z",
		"2025-03-14T09:26:53.589793Z",
		"2025-03-14T09:26:53.589793",
		"2025-03-14T09:26:53",
	}
	for _, value := range cases {
		parsed, err := ParseOrderDate(value)
		require.NoError(t, err, value)
		assert.Equal(t, 2025, parsed.Year())
	}
}

func TestNewBatchID(t *testing.T) {
	now := time.Date(2026, 8, 28, 15, 4, 5, 0, time.FixedZone("CST", 8*3600))

	// 批次标识总是 UTC，按时间排序
	assert.Equal(t, "20260828T070405Z", NewBatchID(now))
	assert.Less(t, NewBatchID(now), NewBatchID(now.Add(time.Second)))
}
