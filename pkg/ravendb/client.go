// Package ravendb 提供了与源文档数据库（RavenDB）交互的客户端功能。
package ravendb

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"lakehouse-go/internal/config"
	"lakehouse-go/pkg/log"

	ravendb "github.com/ravendb/ravendb-go-client"
)

// Store 是一个全局的 RavenDB DocumentStore 实例。
var Store *ravendb.DocumentStore

// Init 初始化 DocumentStore。
func Init(cfg config.RavenDBConfig) error {
	store := ravendb.NewDocumentStore([]string{cfg.URL}, cfg.Database)
	if err := store.Initialize(); err != nil {
		return fmt.Errorf("初始化 RavenDB DocumentStore 失败: %w", err)
	}
	Store = store
	log.Infof("RavenDB 客户端初始化成功, url: %s, database: %s", cfg.URL, cfg.Database)
	return nil
}

// Close 关闭 DocumentStore。
func Close() {
	if Store != nil {
		Store.Close()
	}
}

// WaitReady 通过 /databases 端点探测 RavenDB 是否就绪。
func WaitReady(ctx context.Context, baseURL string, attempts int, delay time.Duration) error {
	log.Info("等待 RavenDB 就绪...")
	client := &http.Client{Timeout: 5 * time.Second}
	probeURL := strings.TrimRight(baseURL, "/") + "/databases"

	var lastErr error
	for i := 0; i < attempts; i++ {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, probeURL, nil)
		if err != nil {
			return err
		}
		resp, err := client.Do(req)
		if err == nil {
			resp.Body.Close()
			log.Info("RavenDB 已就绪")
			return nil
		}
		lastErr = err
		log.Infof("  第 %d/%d 次探测: RavenDB 尚未就绪", i+1, attempts)
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(delay):
		}
	}
	return fmt.Errorf("RavenDB 在限定时间内未就绪: %w", lastErr)
}

// EnsureDatabase 创建数据库，已存在时视为成功（幂等）。
func EnsureDatabase(name string) error {
	record := ravendb.NewDatabaseRecord()
	record.DatabaseName = name

	op := ravendb.NewCreateDatabaseOperation(record, 1)
	if err := Store.Maintenance().Server().Send(op); err != nil {
		if strings.Contains(strings.ToLower(err.Error()), "already exists") {
			log.Infof("数据库 '%s' 已存在", name)
			return nil
		}
		return fmt.Errorf("创建数据库 '%s' 失败: %w", name, err)
	}
	log.Infof("数据库 '%s' 创建成功", name)
	return nil
}
