// Package model 定义了流水线各阶段之间流转的数据结构。
package model

// OrderLine 是订单中的一个行项目。
type OrderLine struct {
	ProductName string  `json:"ProductName"`
	Price       float64 `json:"Price"`
	Quantity    int64   `json:"Quantity"`
}

// ShipTo 是订单的收货地址。
type ShipTo struct {
	City    string `json:"City"`
	Country string `json:"Country"`
}

// Order 代表源数据库中的订单文档。文档归属数据库所有，流水线只读。
// 日期以字符串存储，兼容既有种子数据中不带时区的 ISO 格式。
type Order struct {
	ID           string
	CustomerID   string      `json:"CustomerId"`
	OrderDate    string      `json:"OrderDate"`
	RequiredDate string      `json:"RequiredDate"`
	ShippedDate  *string     `json:"ShippedDate"`
	Status       string      `json:"Status"`
	Lines        []OrderLine `json:"Lines"`
	TotalAmount  float64     `json:"TotalAmount"`
	ShipTo       ShipTo      `json:"ShipTo"`
	Notes        string      `json:"Notes"`
}
