// Package main 启动湖仓控制台：一个只读的巡检 HTTP 服务。
package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"lakehouse-go/internal/config"
	"lakehouse-go/internal/handler"
	"lakehouse-go/internal/middleware"
	"lakehouse-go/pkg/log"
	"lakehouse-go/pkg/storage"

	"github.com/gin-gonic/gin"
)

func main() {
	config.Init("./configs/config.yaml")
	cfg := config.Conf

	log.Init(cfg.Log.Level, cfg.Log.Format, cfg.Log.OutputPath)
	defer log.Sync()

	if err := storage.Init(cfg.MinIO); err != nil {
		log.Fatal("初始化 MinIO 客户端失败", err)
	}

	gin.SetMode(cfg.Console.Mode)
	r := gin.New()
	r.Use(middleware.RequestLogger(), gin.Recovery())

	lakehouseHandler := handler.NewLakehouseHandler(cfg.MinIO)
	apiV1 := r.Group("/api/v1")
	{
		apiV1.GET("/zones", lakehouseHandler.ListZones)
		apiV1.GET("/batches", lakehouseHandler.ListBatches)
		apiV1.GET("/objects/download", lakehouseHandler.GenerateDownloadURL)
	}

	srv := &http.Server{
		Addr:    fmt.Sprintf(":%s", cfg.Console.Port),
		Handler: r,
	}

	go func() {
		log.Infof("控制台启动于 %s", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("HTTP 服务监听失败: %s\n", err)
		}
	}()

	// 等待中断信号以实现优雅停机
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("接收到停机信号，正在关闭服务...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Fatalf("HTTP 服务器关闭失败: %v", err)
	}
	log.Info("控制台已优雅关闭")
}
