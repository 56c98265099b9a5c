package embedder

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"lakehouse-go/internal/model"
)

func TestEmbeddingText(t *testing.T) {
	row := model.OrderRow{
		OrderID:     "orders/0001-A",
		CustomerID:  "customers/7-A",
		Status:      "Shipped",
		TotalAmount: 69.97,
		ShipCity:    "Seattle",
		ShipCountry: "USA",
		LineCount:   2,
	}

	assert.Equal(t,
		"Order orders/0001-A. Customer: customers/7-A. Status: Shipped. "+
			"Amount: $69.97. Ship to: Seattle, USA. Items: 2 line items",
		EmbeddingText(row))
}

func TestEmbeddingTextFillsMissingFields(t *testing.T) {
	row := model.OrderRow{OrderID: "orders/0002-A"}

	text := EmbeddingText(row)
	assert.Contains(t, text, "Customer: unknown")
	assert.Contains(t, text, "Ship to: unknown, unknown")
}

func TestEmbeddingTextEmptyForMissingID(t *testing.T) {
	// 无标识符的行确定性地产出空文本，由调用方跳过
	assert.Empty(t, EmbeddingText(model.OrderRow{}))
}

func TestLatestPerOrderKeepsNewestRow(t *testing.T) {
	rows := []model.OrderRow{
		{OrderID: "orders/0001-A", Status: "Pending", SyncedAt: 100},
		{OrderID: "orders/0002-A", Status: "Shipped", SyncedAt: 100},
		{OrderID: "orders/0001-A", Status: "Delivered", SyncedAt: 200},
	}

	latest := LatestPerOrder(rows)
	assert.Len(t, latest, 2)
	assert.Equal(t, "orders/0001-A", latest[0].OrderID)
	assert.Equal(t, "Delivered", latest[0].Status)
	assert.Equal(t, "orders/0002-A", latest[1].OrderID)
}

func TestLatestPerOrderIgnoresStaleRow(t *testing.T) {
	rows := []model.OrderRow{
		{OrderID: "orders/0001-A", Status: "Delivered", SyncedAt: 200},
		{OrderID: "orders/0001-A", Status: "Pending", SyncedAt: 100},
	}

	latest := LatestPerOrder(rows)
	assert.Len(t, latest, 1)
	assert.Equal(t, "Delivered", latest[0].Status)
}

func TestValidateDimension(t *testing.T) {
	assert.NoError(t, ValidateDimension(make([]float32, 384), 384))
	assert.Error(t, ValidateDimension(make([]float32, 383), 384))
	assert.Error(t, ValidateDimension(nil, 384))
}
