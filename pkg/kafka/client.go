// Package kafka 提供了流水线审计事件的发布功能。
package kafka

import (
	"context"
	"encoding/json"
	"time"

	"lakehouse-go/internal/config"
	"lakehouse-go/pkg/log"

	"github.com/segmentio/kafka-go"
)

// PipelineEvent 记录一个阶段的执行结果，供外部审计消费。
// 事件只在阶段成功后发布，不参与编排，各阶段仍由操作员手动串联。
type PipelineEvent struct {
	Stage       string `json:"stage"`
	BatchID     string `json:"batch_id,omitempty"`
	Records     int    `json:"records"`
	DurationMS  int64  `json:"duration_ms"`
	CompletedAt string `json:"completed_at"`
}

var producer *kafka.Writer

// InitProducer 初始化 Kafka 生产者。Brokers 为空时跳过（事件发布禁用）。
func InitProducer(cfg config.KafkaConfig) {
	if cfg.Brokers == "" {
		log.Info("未配置 Kafka brokers, 流水线事件发布已禁用")
		return
	}
	producer = &kafka.Writer{
		Addr:     kafka.TCP(cfg.Brokers),
		Topic:    cfg.Topic,
		Balancer: &kafka.LeastBytes{},
	}
	log.Info("Kafka 生产者初始化成功")
}

// PublishEvent 发布一个阶段完成事件。发布失败只记录日志，不影响阶段结果。
func PublishEvent(ctx context.Context, stage, batchID string, records int, duration time.Duration) {
	if producer == nil {
		return
	}
	event := PipelineEvent{
		Stage:       stage,
		BatchID:     batchID,
		Records:     records,
		DurationMS:  duration.Milliseconds(),
		CompletedAt: time.Now().UTC().Format(time.RFC3339),
	}
	eventBytes, err := json.Marshal(event)
	if err != nil {
		log.Errorf("序列化流水线事件失败: %v", err)
		return
	}
	if err := producer.WriteMessages(ctx, kafka.Message{
		Key:   []byte(stage),
		Value: eventBytes,
	}); err != nil {
		log.Errorf("发布流水线事件失败: stage=%s, err=%v", stage, err)
		return
	}
	log.Infof("流水线事件已发布: stage=%s, batch=%s, records=%d", stage, batchID, records)
}

// Close 关闭 Kafka 生产者。
func Close() {
	if producer != nil {
		_ = producer.Close()
	}
}
