// Package main 初始化湖仓的存储桶与分区结构，可重复执行且不破坏已有数据。
package main

import (
	"context"
	"time"

	"lakehouse-go/internal/config"
	"lakehouse-go/pkg/kafka"
	"lakehouse-go/pkg/log"
	"lakehouse-go/pkg/storage"
)

func main() {
	config.Init("./configs/config.yaml")
	cfg := config.Conf

	log.Init(cfg.Log.Level, cfg.Log.Format, cfg.Log.OutputPath)
	defer log.Sync()

	log.Info("===== 湖仓存储初始化 =====")
	start := time.Now()
	ctx := context.Background()

	if err := storage.Init(cfg.MinIO); err != nil {
		log.Fatal("初始化 MinIO 客户端失败", err)
	}
	if err := storage.WaitReady(ctx, cfg.Export.ReadyAttempts,
		time.Duration(cfg.Export.ReadyDelaySeconds)*time.Second); err != nil {
		log.Fatal("等待 MinIO 就绪失败", err)
	}
	if err := storage.EnsureZones(ctx, cfg.MinIO.BucketName); err != nil {
		log.Fatal("初始化分区结构失败", err)
	}

	kafka.InitProducer(cfg.Kafka)
	defer kafka.Close()
	kafka.PublishEvent(ctx, "initbuckets", "", len(storage.Zones()), time.Since(start))

	log.Infof("存储初始化完成, bucket: s3://%s/", cfg.MinIO.BucketName)
}
