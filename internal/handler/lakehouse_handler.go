// Package handler 存放控制台的 Gin 处理器。控制台是只读的巡检接口，
// 不修改湖仓中的任何数据。
package handler

import (
	"net/http"
	"sort"
	"strings"
	"time"

	"lakehouse-go/internal/config"
	"lakehouse-go/pkg/log"
	"lakehouse-go/pkg/storage"

	"github.com/gin-gonic/gin"
)

// LakehouseHandler 结构体定义了湖仓巡检相关的处理器。
type LakehouseHandler struct {
	minioCfg config.MinIOConfig
}

// NewLakehouseHandler 创建一个新的 LakehouseHandler 实例。
func NewLakehouseHandler(minioCfg config.MinIOConfig) *LakehouseHandler {
	return &LakehouseHandler{minioCfg: minioCfg}
}

// ListZones 返回每个分区的对象统计。
func (h *LakehouseHandler) ListZones(c *gin.Context) {
	stats := make([]storage.ZoneStat, 0, len(storage.Zones()))
	for _, zone := range storage.Zones() {
		stat, err := storage.StatZone(c.Request.Context(), h.minioCfg.BucketName, zone)
		if err != nil {
			log.Errorf("[LakehouseHandler] 统计分区失败, zone: %s, error: %v", zone, err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "统计分区失败"})
			return
		}
		stats = append(stats, stat)
	}
	c.JSON(http.StatusOK, gin.H{"code": 200, "data": stats, "message": "success"})
}

// BatchInfo 描述落地区的一个导出批次。
type BatchInfo struct {
	BatchID string `json:"batchId"`
	Files   int    `json:"files"`
}

// ListBatches 返回落地区的全部导出批次。
func (h *LakehouseHandler) ListBatches(c *gin.Context) {
	keys, err := storage.ListKeys(c.Request.Context(), h.minioCfg.BucketName, storage.ZoneRavenLanding, ".parquet")
	if err != nil {
		log.Errorf("[LakehouseHandler] 列举落地区批次失败, error: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "列举批次失败"})
		return
	}

	counts := map[string]int{}
	for _, key := range keys {
		rest := strings.TrimPrefix(key, storage.ZoneRavenLanding)
		batchID, _, found := strings.Cut(rest, "/")
		if !found {
			continue
		}
		counts[batchID]++
	}

	batches := make([]BatchInfo, 0, len(counts))
	for batchID, files := range counts {
		batches = append(batches, BatchInfo{BatchID: batchID, Files: files})
	}
	sort.Slice(batches, func(i, j int) bool { return batches[i].BatchID < batches[j].BatchID })

	c.JSON(http.StatusOK, gin.H{"code": 200, "data": batches, "message": "success"})
}

// GenerateDownloadURL 为指定对象生成预签名下载链接。
func (h *LakehouseHandler) GenerateDownloadURL(c *gin.Context) {
	key := c.Query("key")
	if key == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "缺少 key 参数"})
		return
	}

	url, err := storage.GetPresignedURL(h.minioCfg.BucketName, key, 15*time.Minute)
	if err != nil {
		log.Errorf("[LakehouseHandler] 生成预签名链接失败, key: %s, error: %v", key, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "生成下载链接失败"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"code": 200, "data": gin.H{"url": url}, "message": "success"})
}
