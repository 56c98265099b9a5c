// Package main 向源数据库写入演示用的样例订单。
package main

import (
	"context"
	"time"

	"lakehouse-go/internal/config"
	"lakehouse-go/internal/seed"
	"lakehouse-go/pkg/kafka"
	"lakehouse-go/pkg/log"
	"lakehouse-go/pkg/ravendb"
)

func main() {
	config.Init("./configs/config.yaml")
	cfg := config.Conf

	log.Init(cfg.Log.Level, cfg.Log.Format, cfg.Log.OutputPath)
	defer log.Sync()

	log.Info("===== RavenDB 样例数据写入 =====")
	start := time.Now()
	ctx := context.Background()

	if err := ravendb.WaitReady(ctx, cfg.RavenDB.URL, cfg.Export.ReadyAttempts,
		time.Duration(cfg.Export.ReadyDelaySeconds)*time.Second); err != nil {
		log.Fatal("等待 RavenDB 就绪失败", err)
	}
	if err := ravendb.Init(cfg.RavenDB); err != nil {
		log.Fatal("初始化 RavenDB 客户端失败", err)
	}
	defer ravendb.Close()

	if err := ravendb.EnsureDatabase(cfg.RavenDB.Database); err != nil {
		log.Fatal("创建数据库失败", err)
	}
	if err := seed.Run(cfg.Seed.NumOrders); err != nil {
		log.Fatal("写入样例数据失败", err)
	}

	kafka.InitProducer(cfg.Kafka)
	defer kafka.Close()
	kafka.PublishEvent(ctx, "seed", "", cfg.Seed.NumOrders, time.Since(start))

	log.Infof("样例数据写入完成, database: %s, collection: %s (%d 条文档)",
		cfg.RavenDB.Database, cfg.RavenDB.Collection, cfg.Seed.NumOrders)
}
