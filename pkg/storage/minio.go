// Package storage 提供了与对象存储服务（MinIO）交互的功能，并定义了湖仓的分区结构。
package storage

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/url"
	"sort"
	"strings"
	"time"

	"lakehouse-go/internal/config"
	"lakehouse-go/pkg/log"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

// 湖仓内固定的逻辑分区（Zone），按数据成熟度划分。
const (
	ZoneBronzeFiles   = "bronze/files/"
	ZoneRavenLanding  = "silver/ravendb_landing/orders/"
	ZoneFileInventory = "silver/file_inventory/"
	ZoneGoldVectors   = "gold/vectors/"
	ZoneWarehouse     = "warehouse/"
)

// Zones 返回初始化时需要保证存在的全部分区前缀。
func Zones() []string {
	return []string{
		ZoneBronzeFiles,
		ZoneRavenLanding,
		ZoneFileInventory,
		ZoneGoldVectors,
		ZoneWarehouse,
	}
}

// MinioClient 是一个全局的 MinIO 客户端实例。
var MinioClient *minio.Client

// Init 初始化 MinIO 客户端（不创建任何桶或前缀，创建由 EnsureZones 负责）。
func Init(cfg config.MinIOConfig) error {
	endpoint := cfg.Endpoint
	// 兼容脚本里 MINIO_URL=http://host:port 的写法
	if strings.Contains(endpoint, "://") {
		u, err := url.Parse(endpoint)
		if err != nil {
			return fmt.Errorf("解析 MinIO endpoint 失败: %w", err)
		}
		endpoint = u.Host
	}

	client, err := minio.New(endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKeyID, cfg.SecretAccessKey, ""),
		Secure: cfg.UseSSL,
	})
	if err != nil {
		return fmt.Errorf("初始化 MinIO 客户端失败: %w", err)
	}

	MinioClient = client
	log.Info("MinIO 客户端初始化成功")
	return nil
}

// WaitReady 等待 MinIO 服务就绪，尝试次数用尽后返回错误。
func WaitReady(ctx context.Context, attempts int, delay time.Duration) error {
	log.Info("等待 MinIO 就绪...")
	var lastErr error
	for i := 0; i < attempts; i++ {
		_, lastErr = MinioClient.ListBuckets(ctx)
		if lastErr == nil {
			log.Info("MinIO 已就绪")
			return nil
		}
		log.Infof("  第 %d/%d 次探测: MinIO 尚未就绪", i+1, attempts)
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(delay):
		}
	}
	return fmt.Errorf("MinIO 在限定时间内未就绪: %w", lastErr)
}

// EnsureZones 创建湖仓桶及全部分区前缀，重复执行不影响已有数据（幂等）。
func EnsureZones(ctx context.Context, bucketName string) error {
	exists, err := MinioClient.BucketExists(ctx, bucketName)
	if err != nil {
		return fmt.Errorf("检查存储桶失败: %w", err)
	}
	if exists {
		log.Infof("存储桶 '%s' 已存在", bucketName)
	} else {
		if err := MinioClient.MakeBucket(ctx, bucketName, minio.MakeBucketOptions{}); err != nil {
			return fmt.Errorf("创建存储桶失败: %w", err)
		}
		log.Infof("存储桶 '%s' 创建成功", bucketName)
	}

	// S3 没有真正的目录，这里写入空对象作为前缀占位
	for _, prefix := range Zones() {
		_, err := MinioClient.PutObject(ctx, bucketName, prefix,
			bytes.NewReader(nil), 0, minio.PutObjectOptions{})
		if err != nil {
			return fmt.Errorf("创建前缀 '%s' 失败: %w", prefix, err)
		}
		log.Infof("  分区就绪: s3://%s/%s", bucketName, prefix)
	}
	return nil
}

// PutBytes 单次上传一个完整对象，失败时不会留下部分可见的文件。
func PutBytes(ctx context.Context, bucketName, key string, data []byte, contentType string) error {
	_, err := MinioClient.PutObject(ctx, bucketName, key,
		bytes.NewReader(data), int64(len(data)),
		minio.PutObjectOptions{ContentType: contentType})
	if err != nil {
		return fmt.Errorf("上传对象 '%s' 失败: %w", key, err)
	}
	return nil
}

// GetBytes 完整读取一个对象的内容。
func GetBytes(ctx context.Context, bucketName, key string) ([]byte, error) {
	object, err := MinioClient.GetObject(ctx, bucketName, key, minio.GetObjectOptions{})
	if err != nil {
		return nil, fmt.Errorf("读取对象 '%s' 失败: %w", key, err)
	}
	defer object.Close()

	data, err := io.ReadAll(object)
	if err != nil {
		return nil, fmt.Errorf("读取对象流 '%s' 失败: %w", key, err)
	}
	return data, nil
}

// ListKeys 递归列出前缀下所有满足后缀条件的对象键（后缀为空时返回全部）。
func ListKeys(ctx context.Context, bucketName, prefix, suffix string) ([]string, error) {
	var keys []string
	for object := range MinioClient.ListObjects(ctx, bucketName, minio.ListObjectsOptions{
		Prefix:    prefix,
		Recursive: true,
	}) {
		if object.Err != nil {
			return nil, fmt.Errorf("列举前缀 '%s' 失败: %w", prefix, object.Err)
		}
		if suffix == "" || strings.HasSuffix(object.Key, suffix) {
			keys = append(keys, object.Key)
		}
	}
	sort.Strings(keys)
	return keys, nil
}

// ZoneStat 描述一个分区内的对象统计。
type ZoneStat struct {
	Prefix     string `json:"prefix"`
	Objects    int64  `json:"objects"`
	TotalBytes int64  `json:"totalBytes"`
}

// StatZone 统计一个分区前缀下的对象数量与字节数（不含前缀占位对象）。
func StatZone(ctx context.Context, bucketName, prefix string) (ZoneStat, error) {
	stat := ZoneStat{Prefix: prefix}
	for object := range MinioClient.ListObjects(ctx, bucketName, minio.ListObjectsOptions{
		Prefix:    prefix,
		Recursive: true,
	}) {
		if object.Err != nil {
			return stat, fmt.Errorf("统计前缀 '%s' 失败: %w", prefix, object.Err)
		}
		if strings.HasSuffix(object.Key, "/") && object.Size == 0 {
			continue
		}
		stat.Objects++
		stat.TotalBytes += object.Size
	}
	return stat, nil
}

// GetPresignedURL generates a presigned URL for a given object.
func GetPresignedURL(bucketName, objectName string, expiry time.Duration) (string, error) {
	presignedURL, err := MinioClient.PresignedGetObject(context.Background(), bucketName, objectName, expiry, nil)
	if err != nil {
		log.Errorf("Error generating presigned URL: %s", err)
		return "", err
	}
	return presignedURL.String(), nil
}
