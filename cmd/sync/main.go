// Package main 执行 RavenDB 到 Parquet 的导出：全量读取订单集合，
// 写入落地区的一个新批次。
package main

import (
	"context"
	"time"

	"lakehouse-go/internal/config"
	"lakehouse-go/internal/exporter"
	"lakehouse-go/pkg/kafka"
	"lakehouse-go/pkg/log"
	"lakehouse-go/pkg/ravendb"
	"lakehouse-go/pkg/storage"
)

func main() {
	config.Init("./configs/config.yaml")
	cfg := config.Conf

	log.Init(cfg.Log.Level, cfg.Log.Format, cfg.Log.OutputPath)
	defer log.Sync()

	log.Info("===== RavenDB -> Parquet 导出 =====")
	start := time.Now()
	ctx := context.Background()

	if err := ravendb.Init(cfg.RavenDB); err != nil {
		log.Fatal("初始化 RavenDB 客户端失败", err)
	}
	defer ravendb.Close()
	if err := storage.Init(cfg.MinIO); err != nil {
		log.Fatal("初始化 MinIO 客户端失败", err)
	}

	result, err := exporter.NewExporter(cfg.RavenDB, cfg.MinIO).Run(ctx)
	if err != nil {
		log.Fatal("导出失败", err)
	}

	if result.Records > 0 {
		kafka.InitProducer(cfg.Kafka)
		defer kafka.Close()
		kafka.PublishEvent(ctx, "sync", result.BatchID, result.Records, time.Since(start))
		log.Infof("导出完成: s3://%s/%s (%d 条记录), 下一步运行 bridge 合并进 Iceberg",
			cfg.MinIO.BucketName, result.Key, result.Records)
	}
}
