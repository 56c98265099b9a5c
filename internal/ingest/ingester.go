// Package ingest 实现了原始文件摄取：把本地文件上传到 bronze 分区，
// 并产出一份清单 Parquet，供合并作业注册进文件注册表。
package ingest

import (
	"context"
	"fmt"
	"io/fs"
	"mime"
	"os"
	"path/filepath"
	"time"

	"lakehouse-go/internal/config"
	"lakehouse-go/internal/model"
	"lakehouse-go/pkg/log"
	"lakehouse-go/pkg/parquet"
	"lakehouse-go/pkg/storage"

	"github.com/google/uuid"
)

// Ingester 封装了原始文件摄取的依赖和逻辑。
type Ingester struct {
	minioCfg config.MinIOConfig
}

// NewIngester 创建一个新的 Ingester 实例。
func NewIngester(minioCfg config.MinIOConfig) *Ingester {
	return &Ingester{minioCfg: minioCfg}
}

// Result 描述一次摄取批次的产出。
type Result struct {
	BatchID      string
	Files        int
	InventoryKey string
}

// InventoryRowFor 为一个已上传的对象构造清单行。
func InventoryRowFor(objectKey, fileName string, size int64, ingestedAt time.Time) model.InventoryRow {
	ext := filepath.Ext(fileName)
	contentType := mime.TypeByExtension(ext)
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	return model.InventoryRow{
		FilePath:      objectKey,
		FileName:      fileName,
		FileExtension: ext,
		SizeBytes:     size,
		ContentType:   contentType,
		IngestedAt:    ingestedAt.Truncate(time.Millisecond).UnixMilli(),
	}
}

// Run 摄取一个文件或目录。每个文件上传到 bronze 分区的独立前缀下，
// 整个批次的清单写入一个新的 Parquet 对象。
func (i *Ingester) Run(ctx context.Context, path string) (*Result, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("访问路径 '%s' 失败: %w", path, err)
	}

	var files []string
	if info.IsDir() {
		err = filepath.WalkDir(path, func(p string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if !d.IsDir() {
				files = append(files, p)
			}
			return nil
		})
		if err != nil {
			return nil, fmt.Errorf("遍历目录 '%s' 失败: %w", path, err)
		}
	} else {
		files = []string{path}
	}
	if len(files) == 0 {
		return nil, fmt.Errorf("路径 '%s' 下没有可摄取的文件", path)
	}
	log.Infof("[Ingest] 步骤1: 发现 %d 个文件", len(files))

	ingestedAt := time.Now()
	rows := make([]model.InventoryRow, 0, len(files))
	for _, file := range files {
		data, err := os.ReadFile(file)
		if err != nil {
			return nil, fmt.Errorf("读取文件 '%s' 失败: %w", file, err)
		}
		fileName := filepath.Base(file)
		row := InventoryRowFor(
			fmt.Sprintf("%s%s/%s", storage.ZoneBronzeFiles, uuid.NewString(), fileName),
			fileName, int64(len(data)), ingestedAt)

		log.Infof("[Ingest] 步骤2: 上传 s3://%s/%s (%d 字节)", i.minioCfg.BucketName, row.FilePath, len(data))
		if err := storage.PutBytes(ctx, i.minioCfg.BucketName, row.FilePath, data, row.ContentType); err != nil {
			return nil, err
		}
		rows = append(rows, row)
	}

	inventoryData, err := parquet.WriteRows(rows)
	if err != nil {
		return nil, err
	}
	batchID := ingestedAt.UTC().Format("20060102T150405Z")
	inventoryKey := fmt.Sprintf("%s%s/inventory.parquet", storage.ZoneFileInventory, batchID)
	log.Infof("[Ingest] 步骤3: 写入清单 s3://%s/%s", i.minioCfg.BucketName, inventoryKey)
	if err := storage.PutBytes(ctx, i.minioCfg.BucketName, inventoryKey, inventoryData, "application/octet-stream"); err != nil {
		return nil, err
	}

	log.Infof("[Ingest] 摄取完成: batch=%s, files=%d", batchID, len(rows))
	return &Result{BatchID: batchID, Files: len(rows), InventoryKey: inventoryKey}, nil
}
