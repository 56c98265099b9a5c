// Package main 为落地区的订单生成定长向量，写入 gold 分区。
package main

import (
	"context"
	"time"

	"lakehouse-go/internal/config"
	"lakehouse-go/internal/embedder"
	"lakehouse-go/pkg/embedding"
	"lakehouse-go/pkg/kafka"
	"lakehouse-go/pkg/log"
	"lakehouse-go/pkg/storage"
)

func main() {
	config.Init("./configs/config.yaml")
	cfg := config.Conf

	log.Init(cfg.Log.Level, cfg.Log.Format, cfg.Log.OutputPath)
	defer log.Sync()

	log.Info("===== 向量生成 =====")
	start := time.Now()
	ctx := context.Background()

	if err := storage.Init(cfg.MinIO); err != nil {
		log.Fatal("初始化 MinIO 客户端失败", err)
	}

	client := embedding.NewClient(cfg.Embedding)
	result, err := embedder.NewGenerator(cfg.MinIO, cfg.Embedding, client).Run(ctx)
	if err != nil {
		log.Fatal("向量生成失败", err)
	}

	kafka.InitProducer(cfg.Kafka)
	defer kafka.Close()
	kafka.PublishEvent(ctx, "embeddings", result.BatchID, result.Records, time.Since(start))

	log.Infof("向量生成完成: %d 条记录, 维度 %d, 模型 %s, 下一步运行 vectorload 装载进索引",
		result.Records, cfg.Embedding.Dimensions, cfg.Embedding.Model)
}
