// Package main 驱动外部 Spark 把落地区数据合并（upsert）进 Iceberg 托管表。
package main

import (
	"context"
	"flag"
	"time"

	"lakehouse-go/internal/bridge"
	"lakehouse-go/internal/config"
	"lakehouse-go/pkg/kafka"
	"lakehouse-go/pkg/log"
)

func main() {
	job := flag.String("job", "orders", "合并作业名称 (orders | inventory)")
	flag.Parse()

	config.Init("./configs/config.yaml")
	cfg := config.Conf

	log.Init(cfg.Log.Level, cfg.Log.Format, cfg.Log.OutputPath)
	defer log.Sync()

	log.Infof("===== 表合并作业: %s =====", *job)
	start := time.Now()
	ctx := context.Background()

	driver := bridge.NewDriver(cfg.Spark, cfg.Nessie, cfg.MinIO)
	if err := driver.RunJob(ctx, *job); err != nil {
		log.Fatal("合并作业失败", err)
	}

	kafka.InitProducer(cfg.Kafka)
	defer kafka.Close()
	kafka.PublishEvent(ctx, "bridge:"+*job, "", 0, time.Since(start))

	log.Infof("合并作业 '%s' 完成", *job)
}
