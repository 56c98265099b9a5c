// Package vectorindex 实现了向量装载阶段：读取 gold 分区的 Embedding 批次，
// 批量写入向量索引。写入以订单标识符为 _id，重复执行覆盖而不是追加。
package vectorindex

import (
	"context"
	"fmt"
	"time"

	"lakehouse-go/internal/config"
	"lakehouse-go/internal/model"
	"lakehouse-go/pkg/es"
	"lakehouse-go/pkg/log"
	"lakehouse-go/pkg/parquet"
	"lakehouse-go/pkg/storage"
)

// bulkChunkSize 是单次 Bulk 请求的最大文档数。
const bulkChunkSize = 500

// Loader 封装了向量装载阶段的所有依赖和逻辑。
type Loader struct {
	minioCfg config.MinIOConfig
	esCfg    config.ElasticsearchConfig
	model    string
}

// NewLoader 创建一个新的 Loader 实例。model 是生成向量所用的模型名，随文档入库。
func NewLoader(minioCfg config.MinIOConfig, esCfg config.ElasticsearchConfig, model string) *Loader {
	return &Loader{
		minioCfg: minioCfg,
		esCfg:    esCfg,
		model:    model,
	}
}

// Result 描述一次装载的产出。
type Result struct {
	Records int
}

// Run 执行一次完整装载。gold 分区的批次键按时间排序，逐批写入时后写覆盖
// 先写，最终索引中保留每个订单最新批次的向量。
func (l *Loader) Run(ctx context.Context) (*Result, error) {
	// 1. 发现向量批次
	log.Info("[VectorLoader] 步骤1: 读取 gold 分区向量文件")
	keys, err := storage.ListKeys(ctx, l.minioCfg.BucketName, storage.ZoneGoldVectors, ".parquet")
	if err != nil {
		return nil, err
	}
	if len(keys) == 0 {
		return nil, fmt.Errorf("分区 '%s' 中没有向量文件, 请先运行 embeddings", storage.ZoneGoldVectors)
	}
	log.Infof("[VectorLoader] 步骤1: 发现 %d 个向量文件", len(keys))

	// 2. 逐文件读出并校验维度，再分块批量写入
	loadedAt := time.Now().UTC().Format(time.RFC3339)
	total := 0
	for _, key := range keys {
		data, err := storage.GetBytes(ctx, l.minioCfg.BucketName, key)
		if err != nil {
			return nil, err
		}
		rows, err := parquet.ReadRows[model.VectorRow](data)
		if err != nil {
			return nil, fmt.Errorf("读取 '%s' 失败: %w", key, err)
		}

		docs := make([]es.VectorDocument, 0, len(rows))
		for _, row := range rows {
			if len(row.Vector) != l.esCfg.Dims {
				return nil, fmt.Errorf("'%s' 中订单 %s 的向量维度 %d 与索引维度 %d 不一致",
					key, row.OrderID, len(row.Vector), l.esCfg.Dims)
			}
			docs = append(docs, es.VectorDocument{
				OrderID:  row.OrderID,
				Text:     row.Text,
				Vector:   row.Vector,
				Model:    l.model,
				LoadedAt: loadedAt,
			})
		}

		for start := 0; start < len(docs); start += bulkChunkSize {
			end := start + bulkChunkSize
			if end > len(docs) {
				end = len(docs)
			}
			if err := es.BulkUpsert(ctx, l.esCfg.IndexName, docs[start:end]); err != nil {
				return nil, fmt.Errorf("写入索引 '%s' 失败: %w", l.esCfg.IndexName, err)
			}
		}
		total += len(docs)
		log.Infof("[VectorLoader] 步骤2: %s -> %d 条文档", key, len(docs))
	}

	log.Infof("[VectorLoader] 装载完成: index=%s, records=%d", l.esCfg.IndexName, total)
	return &Result{Records: total}, nil
}
