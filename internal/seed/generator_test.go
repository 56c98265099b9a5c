package seed

import (
	"math/rand"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestGenerator() *Generator {
	now := time.Date(2026, 8, 28, 12, 0, 0, 0, time.UTC)
	return NewGenerator(rand.New(rand.NewSource(42)), now)
}

func TestOrderID(t *testing.T) {
	assert.Equal(t, "orders/0001-A", OrderID(0))
	assert.Equal(t, "orders/0500-A", OrderID(499))
}

func TestGenerateOrderShape(t *testing.T) {
	g := newTestGenerator()

	for i := 0; i < 200; i++ {
		order := g.Generate(i)

		require.NotEmpty(t, order.Lines)
		assert.LessOrEqual(t, len(order.Lines), 5)
		assert.Contains(t, statuses, order.Status)
		assert.Equal(t, "USA", order.ShipTo.Country)
		assert.NotEmpty(t, order.ShipTo.City)

		// 总额等于行项目之和（四舍五入到分）
		var total float64
		for _, line := range order.Lines {
			assert.GreaterOrEqual(t, line.Quantity, int64(1))
			assert.LessOrEqual(t, line.Quantity, int64(10))
			total += line.Price * float64(line.Quantity)
		}
		assert.InDelta(t, total, order.TotalAmount, 0.005)

		// 订单日期落在过去两年内
		orderDate, err := time.Parse(time.RFC3339, order.OrderDate)
		require.NoError(t, err)
		assert.False(t, orderDate.After(g.now))
		assert.False(t, orderDate.Before(g.now.AddDate(0, 0, -731)))
	}
}

func TestGenerateShippedDateOnlyWhenShipped(t *testing.T) {
	g := newTestGenerator()

	for i := 0; i < 200; i++ {
		order := g.Generate(i)
		if order.Status == "Shipped" || order.Status == "Delivered" {
			assert.NotNil(t, order.ShippedDate)
		} else {
			assert.Nil(t, order.ShippedDate)
		}
	}
}

func TestGenerateDeterministicWithFixedSeed(t *testing.T) {
	first := newTestGenerator().Generate(0)
	second := newTestGenerator().Generate(0)

	assert.Equal(t, first, second)
}

func TestGenerateNotesCarryBatchNumber(t *testing.T) {
	g := newTestGenerator()

	assert.Contains(t, g.Generate(0).Notes, "Batch 1.")
	assert.Contains(t, g.Generate(150).Notes, "Batch 2.")
}
