package bridge

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBuildOrdersScript(t *testing.T) {
	script := BuildOrdersScript("lakehouse")

	assert.Contains(t, script, "CREATE NAMESPACE IF NOT EXISTS nessie.structured_data;")
	assert.Contains(t, script, "CREATE TABLE IF NOT EXISTS nessie.structured_data.orders")
	assert.Contains(t, script, "USING iceberg")
	assert.Contains(t, script, "PARTITIONED BY (days(OrderDate))")

	// 合并键是订单标识符
	assert.Contains(t, script, "MERGE INTO nessie.structured_data.orders AS target")
	assert.Contains(t, script, "ON target.OrderId = source.OrderId")

	// 源必须去重到每个订单最新的一行，否则跨批次重复键会使 MERGE 中止
	assert.Contains(t, script, "ROW_NUMBER() OVER (PARTITION BY OrderId ORDER BY SyncedAt DESC)")
	assert.Contains(t, script, "WHERE rn = 1")

	// 全量扫描落地区的所有批次
	assert.Contains(t, script, "parquet.`s3a://lakehouse/silver/ravendb_landing/orders/*/*.parquet`")

	assert.Contains(t, script, "WHEN MATCHED THEN")
	assert.Contains(t, script, "WHEN NOT MATCHED THEN")
}

func TestBuildOrdersScriptIsIdempotentText(t *testing.T) {
	// 脚本不含任何随时间变化的内容，重复生成完全一致
	assert.Equal(t, BuildOrdersScript("lakehouse"), BuildOrdersScript("lakehouse"))
}

func TestBuildInventoryScript(t *testing.T) {
	script := BuildInventoryScript("lakehouse")

	assert.Contains(t, script, "CREATE NAMESPACE IF NOT EXISTS nessie.unstructured;")
	assert.Contains(t, script, "CREATE TABLE IF NOT EXISTS nessie.unstructured.file_registry")
	assert.Contains(t, script, "ON target.file_path = source.file_path")
	assert.Contains(t, script, "parquet.`s3a://lakehouse/silver/file_inventory/*/*.parquet`")
}

func TestStatsSQLAppended(t *testing.T) {
	script := BuildOrdersScript("lakehouse")

	assert.Contains(t, script, "SELECT COUNT(*) AS total_rows FROM nessie.structured_data.orders;")
	assert.Contains(t, script, "FROM nessie.structured_data.orders.snapshots")
	// 统计查询在 MERGE 之后执行
	assert.Greater(t, strings.Index(script, "total_rows"), strings.Index(script, "MERGE INTO"))
}
