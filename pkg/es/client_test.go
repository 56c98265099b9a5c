package es

import (
	"bufio"
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestVectorIndexMapping(t *testing.T) {
	mapping := VectorIndexMapping(384, "cosine")

	var parsed map[string]any
	require.NoError(t, json.Unmarshal([]byte(mapping), &parsed))

	properties := parsed["mappings"].(map[string]any)["properties"].(map[string]any)
	vector := properties["vector"].(map[string]any)

	assert.Equal(t, "dense_vector", vector["type"])
	assert.Equal(t, float64(384), vector["dims"])
	assert.Equal(t, "cosine", vector["similarity"])
	assert.Equal(t, true, vector["index"])

	keyword := properties["order_id"].(map[string]any)
	assert.Equal(t, "keyword", keyword["type"])
}

func TestBuildBulkUpsertBody(t *testing.T) {
	docs := []VectorDocument{
		{OrderID: "orders/0001-A", Text: "Order orders/0001-A", Vector: []float32{0.1, 0.2}},
		{OrderID: "orders/0002-A", Text: "Order orders/0002-A", Vector: []float32{0.3, 0.4}},
	}

	body, err := BuildBulkUpsertBody("order_vectors", docs)
	require.NoError(t, err)

	scanner := bufio.NewScanner(bytes.NewReader(body))
	var lines []string
	for scanner.Scan() {
		lines = append(lines, scanner.Text())
	}
	// 每个文档两行：action 行 + 文档行
	require.Len(t, lines, 4)

	var action map[string]map[string]string
	require.NoError(t, json.Unmarshal([]byte(lines[0]), &action))
	// _id 取订单标识符，重复装载覆盖而不是追加
	assert.Equal(t, "orders/0001-A", action["index"]["_id"])
	assert.Equal(t, "order_vectors", action["index"]["_index"])

	var doc VectorDocument
	require.NoError(t, json.Unmarshal([]byte(lines[1]), &doc))
	assert.Equal(t, docs[0].OrderID, doc.OrderID)
	assert.Equal(t, docs[0].Vector, doc.Vector)
}

func TestBuildBulkUpsertBodyEmpty(t *testing.T) {
	body, err := BuildBulkUpsertBody("order_vectors", nil)
	require.NoError(t, err)
	assert.Empty(t, body)
}
