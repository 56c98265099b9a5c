// Package bridge 实现了表合并作业的驱动：构造 Spark SQL 脚本与提交参数，
// 并把作业交给外部计算引擎执行。合并本身的原子性完全由 Iceberg 保证。
package bridge

import (
	"fmt"
	"strings"

	"lakehouse-go/pkg/storage"
)

// Catalog 是 Spark 会话中 Nessie 目录的固定名称。
const Catalog = "nessie"

// OrdersTable 是订单合并的目标托管表。
const OrdersTable = Catalog + ".structured_data.orders"

// FileRegistryTable 是原始文件清单的目标托管表。
const FileRegistryTable = Catalog + ".unstructured.file_registry"

// LandingGlob 返回订单落地区全部批次 Parquet 文件的通配路径。
func LandingGlob(bucket string) string {
	return fmt.Sprintf("s3a://%s/%s*/*.parquet", bucket, storage.ZoneRavenLanding)
}

// InventoryGlob 返回文件清单批次 Parquet 文件的通配路径。
func InventoryGlob(bucket string) string {
	return fmt.Sprintf("s3a://%s/%s*/*.parquet", bucket, storage.ZoneFileInventory)
}

// BuildOrdersScript 生成订单合并作业的完整 SQL 脚本。
//
// 合并键是 OrderId。落地区会累积多个批次，同一订单可能出现在多个批次里，
// 因此 MERGE 的源先按 SyncedAt 取每个 OrderId 最新的一行——否则源中键重复
// 会使 Spark 的 MERGE 以 multiple-match 错误中止。重复执行不会产生重复行，
// 且字段值等于最近一次导出（幂等合并）。
func BuildOrdersScript(bucket string) string {
	var sb strings.Builder

	sb.WriteString("CREATE NAMESPACE IF NOT EXISTS " + Catalog + ".structured_data;\n\n")

	sb.WriteString(`CREATE TABLE IF NOT EXISTS ` + OrdersTable + ` (
    OrderId STRING,
    CustomerId STRING,
    OrderDate TIMESTAMP,
    TotalAmount DOUBLE,
    Status STRING,
    ShipCity STRING,
    ShipCountry STRING,
    LineCount BIGINT,
    SyncedAt TIMESTAMP
) USING iceberg
PARTITIONED BY (days(OrderDate));

`)

	sb.WriteString(fmt.Sprintf(`MERGE INTO %s AS target
USING (
    SELECT OrderId, CustomerId, OrderDate, TotalAmount, Status,
           ShipCity, ShipCountry, LineCount, SyncedAt
    FROM (
        SELECT *, ROW_NUMBER() OVER (PARTITION BY OrderId ORDER BY SyncedAt DESC) AS rn
        FROM parquet.`+"`%s`"+`
    )
    WHERE rn = 1
) AS source
ON target.OrderId = source.OrderId
WHEN MATCHED THEN
    UPDATE SET
        CustomerId = source.CustomerId,
        OrderDate = source.OrderDate,
        TotalAmount = source.TotalAmount,
        Status = source.Status,
        ShipCity = source.ShipCity,
        ShipCountry = source.ShipCountry,
        LineCount = source.LineCount,
        SyncedAt = source.SyncedAt
WHEN NOT MATCHED THEN
    INSERT (OrderId, CustomerId, OrderDate, TotalAmount, Status,
            ShipCity, ShipCountry, LineCount, SyncedAt)
    VALUES (source.OrderId, source.CustomerId, source.OrderDate,
            source.TotalAmount, source.Status, source.ShipCity,
            source.ShipCountry, source.LineCount, source.SyncedAt);
`, OrdersTable, LandingGlob(bucket)))

	sb.WriteString(statsSQL(OrdersTable))
	return sb.String()
}

// BuildInventoryScript 生成文件注册表合并作业的 SQL 脚本，合并键是 file_path。
func BuildInventoryScript(bucket string) string {
	var sb strings.Builder

	sb.WriteString("CREATE NAMESPACE IF NOT EXISTS " + Catalog + ".unstructured;\n\n")

	sb.WriteString(`CREATE TABLE IF NOT EXISTS ` + FileRegistryTable + ` (
    file_path STRING,
    file_name STRING,
    file_extension STRING,
    size_bytes BIGINT,
    content_type STRING,
    ingested_at TIMESTAMP
) USING iceberg;

`)

	sb.WriteString(fmt.Sprintf(`MERGE INTO %s AS target
USING (
    SELECT file_path, file_name, file_extension, size_bytes, content_type, ingested_at
    FROM (
        SELECT *, ROW_NUMBER() OVER (PARTITION BY file_path ORDER BY ingested_at DESC) AS rn
        FROM parquet.`+"`%s`"+`
    )
    WHERE rn = 1
) AS source
ON target.file_path = source.file_path
WHEN MATCHED THEN
    UPDATE SET
        file_name = source.file_name,
        file_extension = source.file_extension,
        size_bytes = source.size_bytes,
        content_type = source.content_type,
        ingested_at = source.ingested_at
WHEN NOT MATCHED THEN
    INSERT (file_path, file_name, file_extension, size_bytes, content_type, ingested_at)
    VALUES (source.file_path, source.file_name, source.file_extension,
            source.size_bytes, source.content_type, source.ingested_at);
`, FileRegistryTable, InventoryGlob(bucket)))

	sb.WriteString(statsSQL(FileRegistryTable))
	return sb.String()
}

// statsSQL 在合并后输出行数与最近的快照历史，便于操作员核对。
func statsSQL(table string) string {
	return fmt.Sprintf(`
SELECT COUNT(*) AS total_rows FROM %s;

SELECT snapshot_id, committed_at, operation
FROM %s.snapshots
ORDER BY committed_at DESC
LIMIT 5;
`, table, table)
}
