package model

// OrderRow 是写入落地区 Parquet 文件的扁平行。
// 时间戳列必须是毫秒精度（timestamp(millisecond)），否则下游计算引擎
// 会将其推断为不兼容的类型导致合并失败。
type OrderRow struct {
	OrderID     string  `parquet:"OrderId"`
	CustomerID  string  `parquet:"CustomerId"`
	OrderDate   int64   `parquet:"OrderDate,timestamp(millisecond)"`
	TotalAmount float64 `parquet:"TotalAmount"`
	Status      string  `parquet:"Status"`
	ShipCity    string  `parquet:"ShipCity"`
	ShipCountry string  `parquet:"ShipCountry"`
	LineCount   int64   `parquet:"LineCount"`
	SyncedAt    int64   `parquet:"SyncedAt,timestamp(millisecond)"`
}

// VectorRow 是写入 gold 分区的 Embedding 记录：标识符、定长向量与生成文本。
type VectorRow struct {
	OrderID string    `parquet:"order_id"`
	Vector  []float32 `parquet:"vector,list"`
	Text    string    `parquet:"text"`
}

// InventoryRow 是 bronze 分区原始文件的清单行，供计算引擎合并进文件注册表。
type InventoryRow struct {
	FilePath      string `parquet:"file_path"`
	FileName      string `parquet:"file_name"`
	FileExtension string `parquet:"file_extension"`
	SizeBytes     int64  `parquet:"size_bytes"`
	ContentType   string `parquet:"content_type"`
	IngestedAt    int64  `parquet:"ingested_at,timestamp(millisecond)"`
}
