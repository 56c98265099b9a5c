package embedder

import (
	"context"
	"fmt"
	"time"

	"lakehouse-go/internal/config"
	"lakehouse-go/internal/model"
	"lakehouse-go/pkg/embedding"
	"lakehouse-go/pkg/log"
	"lakehouse-go/pkg/parquet"
	"lakehouse-go/pkg/storage"
)

// Generator 封装了 Embedding 生成阶段的所有依赖和逻辑。
type Generator struct {
	minioCfg     config.MinIOConfig
	embeddingCfg config.EmbeddingConfig
	client       embedding.Client
}

// NewGenerator 创建一个新的 Generator 实例。
func NewGenerator(minioCfg config.MinIOConfig, embeddingCfg config.EmbeddingConfig, client embedding.Client) *Generator {
	return &Generator{
		minioCfg:     minioCfg,
		embeddingCfg: embeddingCfg,
		client:       client,
	}
}

// Result 描述一次向量生成批次的产出。
type Result struct {
	BatchID string
	Key     string
	Records int
	Skipped int
}

// Run 执行一次完整的向量生成。
func (g *Generator) Run(ctx context.Context) (*Result, error) {
	// 1. 读取落地区全部批次
	log.Info("[Embedder] 步骤1: 读取落地区 Parquet 文件")
	keys, err := storage.ListKeys(ctx, g.minioCfg.BucketName, storage.ZoneRavenLanding, ".parquet")
	if err != nil {
		return nil, err
	}
	if len(keys) == 0 {
		return nil, fmt.Errorf("落地区 '%s' 中没有 Parquet 文件, 请先运行 sync", storage.ZoneRavenLanding)
	}
	log.Infof("[Embedder] 步骤1: 发现 %d 个 Parquet 文件", len(keys))

	var rows []model.OrderRow
	for _, key := range keys {
		data, err := storage.GetBytes(ctx, g.minioCfg.BucketName, key)
		if err != nil {
			return nil, err
		}
		batch, err := parquet.ReadRows[model.OrderRow](data)
		if err != nil {
			return nil, fmt.Errorf("读取 '%s' 失败: %w", key, err)
		}
		rows = append(rows, batch...)
	}
	log.Infof("[Embedder] 步骤1: 共加载 %d 行", len(rows))

	// 2. 每个订单只保留最新状态
	rows = LatestPerOrder(rows)
	log.Infof("[Embedder] 步骤2: 去重后剩余 %d 个订单", len(rows))

	// 3. 组装文本，空文本行确定性跳过
	texts := make([]string, 0, len(rows))
	kept := make([]model.OrderRow, 0, len(rows))
	skipped := 0
	for _, row := range rows {
		text := EmbeddingText(row)
		if text == "" {
			skipped++
			continue
		}
		texts = append(texts, text)
		kept = append(kept, row)
	}
	if skipped > 0 {
		log.Warnf("[Embedder] 步骤3: 跳过 %d 行空文本", skipped)
	}

	// 4. 分批调用 Embedding API，逐个校验维度
	batchSize := g.embeddingCfg.BatchSize
	if batchSize <= 0 {
		batchSize = 32
	}
	log.Infof("[Embedder] 步骤4: 生成向量, batch_size=%d, dimensions=%d", batchSize, g.embeddingCfg.Dimensions)

	vectorRows := make([]model.VectorRow, 0, len(kept))
	for start := 0; start < len(kept); start += batchSize {
		end := start + batchSize
		if end > len(kept) {
			end = len(kept)
		}
		vectors, err := g.client.CreateEmbeddings(ctx, texts[start:end])
		if err != nil {
			return nil, fmt.Errorf("生成向量失败 (rows %d-%d): %w", start, end-1, err)
		}
		for i, vector := range vectors {
			if err := ValidateDimension(vector, g.embeddingCfg.Dimensions); err != nil {
				return nil, fmt.Errorf("订单 %s: %w", kept[start+i].OrderID, err)
			}
			vectorRows = append(vectorRows, model.VectorRow{
				OrderID: kept[start+i].OrderID,
				Vector:  vector,
				Text:    texts[start+i],
			})
		}
		log.Infof("[Embedder] 步骤4: 已处理 %d/%d 个订单", end, len(kept))
	}

	// 5. 写入 gold 分区的新批次
	data, err := parquet.WriteRows(vectorRows)
	if err != nil {
		return nil, err
	}
	batchID := NewBatchID(time.Now())
	key := fmt.Sprintf("%sorders/%s/vectors.parquet", storage.ZoneGoldVectors, batchID)
	log.Infof("[Embedder] 步骤5: 上传 s3://%s/%s (%d 字节)", g.minioCfg.BucketName, key, len(data))
	if err := storage.PutBytes(ctx, g.minioCfg.BucketName, key, data, "application/octet-stream"); err != nil {
		return nil, err
	}

	log.Infof("[Embedder] 向量生成完成: batch=%s, records=%d, skipped=%d", batchID, len(vectorRows), skipped)
	return &Result{BatchID: batchID, Key: key, Records: len(vectorRows), Skipped: skipped}, nil
}
