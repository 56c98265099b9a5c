// Package es 提供了与向量索引（Elasticsearch）交互的客户端功能。
package es

import (
	"bytes"
	"context"
	"crypto/tls"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"lakehouse-go/internal/config"
	"lakehouse-go/pkg/log"

	"github.com/elastic/go-elasticsearch/v8"
)

var ESClient *elasticsearch.Client

// InitES 初始化 Elasticsearch 客户端并保证向量索引存在。
func InitES(esCfg config.ElasticsearchConfig) error {
	cfg := elasticsearch.Config{
		Addresses: []string{esCfg.Addresses},
		Username:  esCfg.Username,
		Password:  esCfg.Password,
		Transport: &http.Transport{
			TLSClientConfig: &tls.Config{InsecureSkipVerify: true},
		},
	}
	client, err := elasticsearch.NewClient(cfg)
	if err != nil {
		return err
	}
	ESClient = client
	return createIndexIfNotExists(esCfg)
}

// VectorIndexMapping 生成向量索引的 mapping，维度与相似度来自配置。
func VectorIndexMapping(dims int, similarity string) string {
	return fmt.Sprintf(`{
		"mappings": {
			"properties": {
				"order_id": { "type": "keyword" },
				"text": { "type": "text" },
				"vector": {
					"type": "dense_vector",
					"dims": %d,
					"index": true,
					"similarity": %q
				},
				"model": { "type": "keyword" },
				"loaded_at": { "type": "date" }
			}
		}
	}`, dims, similarity)
}

// createIndexIfNotExists 检查索引是否存在，如果不存在则按配置的维度创建它
func createIndexIfNotExists(esCfg config.ElasticsearchConfig) error {
	indexName := esCfg.IndexName
	res, err := ESClient.Indices.Exists([]string{indexName})
	if err != nil {
		log.Errorf("检查索引是否存在时出错: %v", err)
		return err
	}
	if !res.IsError() && res.StatusCode == http.StatusOK {
		log.Infof("索引 '%s' 已存在", indexName)
		return nil
	}
	if res.StatusCode != http.StatusNotFound {
		log.Errorf("检查索引 '%s' 是否存在时收到意外的状态码: %d", indexName, res.StatusCode)
		return fmt.Errorf("检查索引是否存在时收到意外的状态码: %d", res.StatusCode)
	}

	mapping := VectorIndexMapping(esCfg.Dims, esCfg.Similarity)
	res, err = ESClient.Indices.Create(
		indexName,
		ESClient.Indices.Create.WithBody(bytes.NewReader([]byte(mapping))),
	)
	if err != nil {
		log.Errorf("创建索引 '%s' 失败: %v", indexName, err)
		return err
	}
	if res.IsError() {
		log.Errorf("创建索引 '%s' 时 Elasticsearch 返回错误: %s", indexName, res.String())
		return errors.New("创建索引时 Elasticsearch 返回错误")
	}

	log.Infof("索引 '%s' 创建成功 (dims=%d, similarity=%s)", indexName, esCfg.Dims, esCfg.Similarity)
	return nil
}

// VectorDocument 代表存储在 Elasticsearch 中的向量文档。
type VectorDocument struct {
	OrderID  string    `json:"order_id"`
	Text     string    `json:"text"`
	Vector   []float32 `json:"vector"`
	Model    string    `json:"model"`
	LoadedAt string    `json:"loaded_at"`
}

// BuildBulkUpsertBody 构造 Bulk API 请求体，以 order_id 作为 _id 实现覆盖写。
func BuildBulkUpsertBody(indexName string, docs []VectorDocument) ([]byte, error) {
	var body bytes.Buffer
	for _, doc := range docs {
		action := map[string]map[string]string{
			"index": {"_index": indexName, "_id": doc.OrderID},
		}
		actionBytes, err := json.Marshal(action)
		if err != nil {
			return nil, err
		}
		docBytes, err := json.Marshal(doc)
		if err != nil {
			return nil, err
		}
		body.Write(actionBytes)
		body.WriteByte('\n')
		body.Write(docBytes)
		body.WriteByte('\n')
	}
	return body.Bytes(), nil
}

// bulkResponse 仅解析错误判定所需的字段。
type bulkResponse struct {
	Errors bool `json:"errors"`
	Items  []map[string]struct {
		Status int `json:"status"`
		Error  *struct {
			Type   string `json:"type"`
			Reason string `json:"reason"`
		} `json:"error"`
	} `json:"items"`
}

// BulkUpsert 将一批向量文档写入索引，任何单条失败都会使整批失败。
func BulkUpsert(ctx context.Context, indexName string, docs []VectorDocument) error {
	if len(docs) == 0 {
		return nil
	}
	body, err := BuildBulkUpsertBody(indexName, docs)
	if err != nil {
		return fmt.Errorf("构造 Bulk 请求体失败: %w", err)
	}

	res, err := ESClient.Bulk(bytes.NewReader(body),
		ESClient.Bulk.WithContext(ctx),
		ESClient.Bulk.WithIndex(indexName),
	)
	if err != nil {
		return fmt.Errorf("调用 Bulk API 失败: %w", err)
	}
	defer res.Body.Close()

	if res.IsError() {
		return fmt.Errorf("Bulk API 返回错误: %s", res.String())
	}

	var parsed bulkResponse
	if err := json.NewDecoder(res.Body).Decode(&parsed); err != nil {
		return fmt.Errorf("解析 Bulk 响应失败: %w", err)
	}
	if parsed.Errors {
		for _, item := range parsed.Items {
			for op, detail := range item {
				if detail.Error != nil {
					return fmt.Errorf("Bulk 部分条目失败: op=%s, type=%s, reason=%s",
						op, detail.Error.Type, detail.Error.Reason)
				}
			}
		}
		return errors.New("Bulk 部分条目失败")
	}
	return nil
}
