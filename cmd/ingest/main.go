// Package main 把本地原始文件摄取进 bronze 分区并产出清单批次。
package main

import (
	"context"
	"flag"
	"time"

	"lakehouse-go/internal/config"
	"lakehouse-go/internal/ingest"
	"lakehouse-go/pkg/kafka"
	"lakehouse-go/pkg/log"
	"lakehouse-go/pkg/storage"
)

func main() {
	path := flag.String("path", "", "要摄取的文件或目录")
	flag.Parse()

	config.Init("./configs/config.yaml")
	cfg := config.Conf

	log.Init(cfg.Log.Level, cfg.Log.Format, cfg.Log.OutputPath)
	defer log.Sync()

	if *path == "" {
		log.Fatalf("缺少 -path 参数")
	}

	log.Info("===== 原始文件摄取 =====")
	start := time.Now()
	ctx := context.Background()

	if err := storage.Init(cfg.MinIO); err != nil {
		log.Fatal("初始化 MinIO 客户端失败", err)
	}

	result, err := ingest.NewIngester(cfg.MinIO).Run(ctx, *path)
	if err != nil {
		log.Fatal("摄取失败", err)
	}

	kafka.InitProducer(cfg.Kafka)
	defer kafka.Close()
	kafka.PublishEvent(ctx, "ingest", result.BatchID, result.Files, time.Since(start))

	log.Infof("摄取完成: %d 个文件, 清单 s3://%s/%s, 下一步运行 bridge -job inventory 注册进文件注册表",
		result.Files, cfg.MinIO.BucketName, result.InventoryKey)
}
