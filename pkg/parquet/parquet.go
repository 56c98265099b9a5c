// Package parquet 封装了列式文件的内存读写，所有阶段统一经由这里产出和消费
// Parquet 对象，保证批次之间模式稳定。
package parquet

import (
	"bytes"
	"fmt"

	"github.com/parquet-go/parquet-go"
)

// WriteRows 将一组行序列化为一个完整的 Parquet 文件（snappy 压缩）。
func WriteRows[T any](rows []T) ([]byte, error) {
	var buf bytes.Buffer
	writer := parquet.NewGenericWriter[T](&buf, parquet.Compression(&parquet.Snappy))

	if _, err := writer.Write(rows); err != nil {
		return nil, fmt.Errorf("写入 Parquet 行失败: %w", err)
	}
	if err := writer.Close(); err != nil {
		return nil, fmt.Errorf("关闭 Parquet writer 失败: %w", err)
	}
	return buf.Bytes(), nil
}

// ReadRows 从一个完整的 Parquet 文件内容中读出全部行。
func ReadRows[T any](data []byte) ([]T, error) {
	rows, err := parquet.Read[T](bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, fmt.Errorf("读取 Parquet 文件失败: %w", err)
	}
	return rows, nil
}

// SchemaString 返回类型 T 的 Parquet 模式描述，用于批次间的模式比对。
func SchemaString[T any]() string {
	var zero T
	return parquet.SchemaOf(&zero).String()
}
