// Package embedder 实现了 Embedding 生成阶段：读取落地区的订单行，
// 组装语义文本并批量计算定长向量，结果写入 gold 分区。
package embedder

import (
	"fmt"
	"strings"
	"time"

	"lakehouse-go/internal/model"
)

// EmbeddingText 将一个订单行组装为用于向量化的语义文本。
func EmbeddingText(row model.OrderRow) string {
	if row.OrderID == "" {
		return ""
	}
	parts := []string{
		fmt.Sprintf("Order %s", row.OrderID),
		fmt.Sprintf("Customer: %s", orDefault(row.CustomerID)),
		fmt.Sprintf("Status: %s", orDefault(row.Status)),
		fmt.Sprintf("Amount: $%.2f", row.TotalAmount),
		fmt.Sprintf("Ship to: %s, %s", orDefault(row.ShipCity), orDefault(row.ShipCountry)),
		fmt.Sprintf("Items: %d line items", row.LineCount),
	}
	return strings.Join(parts, ". ")
}

func orDefault(s string) string {
	if s == "" {
		return "unknown"
	}
	return s
}

// LatestPerOrder 按 SyncedAt 保留每个订单标识符最新的一行。
// 落地区按批次累积，同一订单可能出现在多个批次里；向量只为最新状态生成。
func LatestPerOrder(rows []model.OrderRow) []model.OrderRow {
	latest := make(map[string]model.OrderRow, len(rows))
	order := make([]string, 0, len(rows))
	for _, row := range rows {
		existing, ok := latest[row.OrderID]
		if !ok {
			order = append(order, row.OrderID)
			latest[row.OrderID] = row
			continue
		}
		if row.SyncedAt > existing.SyncedAt {
			latest[row.OrderID] = row
		}
	}
	result := make([]model.OrderRow, 0, len(latest))
	for _, id := range order {
		result = append(result, latest[id])
	}
	return result
}

// ValidateDimension 校验向量维度与目标索引配置一致，不一致立即失败。
func ValidateDimension(vector []float32, want int) error {
	if len(vector) != want {
		return fmt.Errorf("向量维度不匹配: 期望 %d, 实际 %d", want, len(vector))
	}
	return nil
}

// NewBatchID 返回向量批次的标识。
func NewBatchID(now time.Time) string {
	return now.UTC().Format("20060102T150405Z")
}
