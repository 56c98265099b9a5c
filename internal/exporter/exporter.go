package exporter

import (
	"context"
	"fmt"
	"time"

	"lakehouse-go/internal/config"
	"lakehouse-go/internal/model"
	"lakehouse-go/pkg/log"
	"lakehouse-go/pkg/parquet"
	pkgravendb "lakehouse-go/pkg/ravendb"
	"lakehouse-go/pkg/storage"
)

// Exporter 封装了文档导出阶段的所有依赖和逻辑。
type Exporter struct {
	ravenCfg config.RavenDBConfig
	minioCfg config.MinIOConfig
}

// NewExporter 创建一个新的 Exporter 实例。
func NewExporter(ravenCfg config.RavenDBConfig, minioCfg config.MinIOConfig) *Exporter {
	return &Exporter{
		ravenCfg: ravenCfg,
		minioCfg: minioCfg,
	}
}

// Result 描述一次导出批次的产出。
type Result struct {
	BatchID string
	Key     string
	Records int
}

// Run 执行一次完整导出：全量扫描集合 → 扁平化 → 写入一个新的批次对象。
// 每次调用写入唯一子路径下的单个 Parquet 文件，绝不改写既有对象。
func (e *Exporter) Run(ctx context.Context) (*Result, error) {
	// 1. 全量读取集合文档
	log.Infof("[Exporter] 步骤1: 从 RavenDB 读取集合 '%s'", e.ravenCfg.Collection)
	orders, err := e.fetchAll()
	if err != nil {
		return nil, fmt.Errorf("读取集合 '%s' 失败: %w", e.ravenCfg.Collection, err)
	}
	log.Infof("[Exporter] 步骤1: 共读取 %d 条文档", len(orders))

	if len(orders) == 0 {
		log.Warnf("[Exporter] 集合 '%s' 为空, 未写入任何批次, 请先运行 seed", e.ravenCfg.Collection)
		return &Result{}, nil
	}

	// 2. 扁平化为固定模式的行，任一文档失败则整批失败
	syncedAt := time.Now()
	log.Info("[Exporter] 步骤2: 扁平化文档")
	rows := make([]model.OrderRow, 0, len(orders))
	for _, order := range orders {
		row, err := Flatten(order, syncedAt)
		if err != nil {
			return nil, fmt.Errorf("扁平化失败: %w", err)
		}
		rows = append(rows, row)
	}

	// 3. 序列化为单个 Parquet 文件
	log.Info("[Exporter] 步骤3: 序列化为 Parquet (snappy, 毫秒时间戳)")
	data, err := parquet.WriteRows(rows)
	if err != nil {
		return nil, err
	}

	// 4. 单次上传到落地区的新批次子路径
	batchID := NewBatchID(syncedAt)
	key := fmt.Sprintf("%s%s/data.parquet", storage.ZoneRavenLanding, batchID)
	log.Infof("[Exporter] 步骤4: 上传 s3://%s/%s (%d 字节)", e.minioCfg.BucketName, key, len(data))
	if err := storage.PutBytes(ctx, e.minioCfg.BucketName, key, data, "application/octet-stream"); err != nil {
		return nil, err
	}

	log.Infof("[Exporter] 导出完成: batch=%s, records=%d", batchID, len(rows))
	return &Result{BatchID: batchID, Key: key, Records: len(rows)}, nil
}

// fetchAll 全量扫描集合，不做增量游标（见设计文档中的已知限制）。
func (e *Exporter) fetchAll() ([]*model.Order, error) {
	session, err := pkgravendb.Store.OpenSession("")
	if err != nil {
		return nil, fmt.Errorf("打开会话失败: %w", err)
	}
	defer session.Close()

	var orders []*model.Order
	query := session.QueryCollection(e.ravenCfg.Collection)
	if err := query.GetResults(&orders); err != nil {
		return nil, err
	}
	return orders, nil
}
