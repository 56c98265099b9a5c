// Package exporter 实现了文档导出阶段：全量读取源数据库的订单集合，
// 扁平化后以 Parquet 批次写入落地区。
package exporter

import (
	"fmt"
	"math"
	"time"

	"lakehouse-go/internal/model"
)

// 种子脚本历史上写过不带时区的 ISO 日期，解析时按序尝试。
var dateLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05.999999999",
	"2006-01-02T15:04:05",
}

// ParseOrderDate 解析订单日期字符串。
func ParseOrderDate(value string) (time.Time, error) {
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, value); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("无法解析订单日期 '%s'", value)
}

// Flatten 将一个订单文档转换为落地区的扁平行。
// 时间戳一律截断到毫秒：亚毫秒精度会被下游计算引擎推断为不兼容的
// 时间戳类型，是已知的合并失败原因。
// 任何字段无法转换都返回错误，整个批次失败（没有逐行跳过策略）。
func Flatten(doc *model.Order, syncedAt time.Time) (model.OrderRow, error) {
	if doc.ID == "" {
		return model.OrderRow{}, fmt.Errorf("订单文档缺少标识符")
	}

	orderDate, err := ParseOrderDate(doc.OrderDate)
	if err != nil {
		return model.OrderRow{}, fmt.Errorf("订单 %s: %w", doc.ID, err)
	}

	// 总额缺失时由行项目重新计算
	total := doc.TotalAmount
	if total == 0 && len(doc.Lines) > 0 {
		for _, line := range doc.Lines {
			total += line.Price * float64(line.Quantity)
		}
	}
	total = math.Round(total*100) / 100

	return model.OrderRow{
		OrderID:     doc.ID,
		CustomerID:  doc.CustomerID,
		OrderDate:   orderDate.Truncate(time.Millisecond).UnixMilli(),
		TotalAmount: total,
		Status:      status(doc.Status),
		ShipCity:    doc.ShipTo.City,
		ShipCountry: doc.ShipTo.Country,
		LineCount:   int64(len(doc.Lines)),
		SyncedAt:    syncedAt.Truncate(time.Millisecond).UnixMilli(),
	}, nil
}

func status(s string) string {
	if s == "" {
		return "Unknown"
	}
	return s
}

// NewBatchID 返回一个按时间排序且每次调用唯一的批次标识。
func NewBatchID(now time.Time) string {
	return now.UTC().Format("20060102T150405Z")
}
