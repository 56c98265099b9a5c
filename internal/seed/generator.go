// Package seed 负责向源数据库写入演示用的样例订单。
package seed

import (
	"fmt"
	"math"
	"math/rand"
	"time"

	"lakehouse-go/internal/model"
)

type product struct {
	name  string
	price float64
}

var products = []product{
	{"Widget Pro", 29.99},
	{"Gadget Plus", 49.99},
	{"Super Component", 15.99},
	{"Mega Module", 89.99},
	{"Ultra Kit", 199.99},
	{"Basic Pack", 9.99},
	{"Premium Bundle", 299.99},
	{"Starter Set", 39.99},
	{"Advanced Tool", 79.99},
	{"Essential Item", 19.99},
}

var statuses = []string{"Pending", "Processing", "Shipped", "Delivered", "Cancelled"}

// 历史订单偏向已完成状态，近 30 天内的订单偏向进行中状态。
var (
	oldStatusWeights    = []float64{0.1, 0.15, 0.25, 0.45, 0.05}
	recentStatusWeights = []float64{0.3, 0.3, 0.2, 0.15, 0.05}
)

var shipCities = []string{
	"New York", "Los Angeles", "Chicago", "Houston",
	"Phoenix", "Seattle", "Denver", "Boston",
}

// OrderID 返回第 n 个（从 0 开始）样例订单的文档标识符。
func OrderID(n int) string {
	return fmt.Sprintf("orders/%04d-A", n+1)
}

// Generator 基于给定随机源生成样例订单，便于测试时使用固定种子。
type Generator struct {
	rng *rand.Rand
	now time.Time
}

// NewGenerator 创建一个订单生成器。
func NewGenerator(rng *rand.Rand, now time.Time) *Generator {
	return &Generator{rng: rng, now: now}
}

// Generate 生成一个样例订单文档。
func (g *Generator) Generate(orderNum int) *model.Order {
	// 订单日期落在过去两年内
	daysAgo := g.rng.Intn(731)
	orderDate := g.now.AddDate(0, 0, -daysAgo)

	lines := g.generateLines()
	var total float64
	for _, line := range lines {
		total += line.Price * float64(line.Quantity)
	}

	weights := recentStatusWeights
	if daysAgo > 30 {
		weights = oldStatusWeights
	}
	status := g.pickStatus(weights)

	var shippedDate *string
	if status == "Shipped" || status == "Delivered" {
		s := orderDate.AddDate(0, 0, 1+g.rng.Intn(7)).Format(time.RFC3339)
		shippedDate = &s
	}

	return &model.Order{
		CustomerID:   fmt.Sprintf("customers/%d-A", 1+g.rng.Intn(50)),
		OrderDate:    orderDate.Format(time.RFC3339),
		RequiredDate: orderDate.AddDate(0, 0, 3+g.rng.Intn(12)).Format(time.RFC3339),
		ShippedDate:  shippedDate,
		Status:       status,
		Lines:        lines,
		TotalAmount:  math.Round(total*100) / 100,
		ShipTo: model.ShipTo{
			City:    shipCities[g.rng.Intn(len(shipCities))],
			Country: "USA",
		},
		Notes: fmt.Sprintf("Order generated for demo purposes. Batch %d.", orderNum/100+1),
	}
}

func (g *Generator) generateLines() []model.OrderLine {
	numLines := 1 + g.rng.Intn(5)
	lines := make([]model.OrderLine, 0, numLines)
	for i := 0; i < numLines; i++ {
		p := products[g.rng.Intn(len(products))]
		lines = append(lines, model.OrderLine{
			ProductName: p.name,
			Price:       p.price,
			Quantity:    int64(1 + g.rng.Intn(10)),
		})
	}
	return lines
}

func (g *Generator) pickStatus(weights []float64) string {
	roll := g.rng.Float64()
	var cumulative float64
	for i, w := range weights {
		cumulative += w
		if roll < cumulative {
			return statuses[i]
		}
	}
	return statuses[len(statuses)-1]
}
