// Package main 把 gold 分区的向量批次装载进向量索引。
package main

import (
	"context"
	"time"

	"lakehouse-go/internal/config"
	"lakehouse-go/internal/vectorindex"
	"lakehouse-go/pkg/es"
	"lakehouse-go/pkg/kafka"
	"lakehouse-go/pkg/log"
	"lakehouse-go/pkg/storage"
)

func main() {
	config.Init("./configs/config.yaml")
	cfg := config.Conf

	log.Init(cfg.Log.Level, cfg.Log.Format, cfg.Log.OutputPath)
	defer log.Sync()

	log.Info("===== 向量索引装载 =====")
	start := time.Now()
	ctx := context.Background()

	if err := storage.Init(cfg.MinIO); err != nil {
		log.Fatal("初始化 MinIO 客户端失败", err)
	}
	if err := es.InitES(cfg.Elasticsearch); err != nil {
		log.Fatal("初始化 Elasticsearch 客户端失败", err)
	}

	loader := vectorindex.NewLoader(cfg.MinIO, cfg.Elasticsearch, cfg.Embedding.Model)
	result, err := loader.Run(ctx)
	if err != nil {
		log.Fatal("向量装载失败", err)
	}

	kafka.InitProducer(cfg.Kafka)
	defer kafka.Close()
	kafka.PublishEvent(ctx, "vectorload", "", result.Records, time.Since(start))

	log.Infof("向量装载完成: index=%s, records=%d", cfg.Elasticsearch.IndexName, result.Records)
}
