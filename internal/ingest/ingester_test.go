package ingest

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestInventoryRowFor(t *testing.T) {
	ingestedAt := time.Date(2026, 8, 28, 12, 0, 0, 123456789, time.UTC)

	row := InventoryRowFor("bronze/files/abc/run_001.nxs.h5", "run_001.nxs.h5", 2048, ingestedAt)

	assert.Equal(t, "bronze/files/abc/run_001.nxs.h5", row.FilePath)
	assert.Equal(t, "run_001.nxs.h5", row.FileName)
	assert.Equal(t, ".h5", row.FileExtension)
	assert.Equal(t, int64(2048), row.SizeBytes)
	// 未知扩展名回退到通用类型
	assert.Equal(t, "application/octet-stream", row.ContentType)
	// 摄取时间截断到毫秒
	assert.Equal(t, ingestedAt.Truncate(time.Millisecond).UnixMilli(), row.IngestedAt)
}

func TestInventoryRowForKnownContentType(t *testing.T) {
	row := InventoryRowFor("bronze/files/abc/notes.txt", "notes.txt", 10, time.Now())

	assert.Equal(t, ".txt", row.FileExtension)
	assert.Contains(t, row.ContentType, "text/plain")
}

func TestInventoryRowForNoExtension(t *testing.T) {
	row := InventoryRowFor("bronze/files/abc/README", "README", 10, time.Now())

	assert.Empty(t, row.FileExtension)
	assert.Equal(t, "application/octet-stream", row.ContentType)
}
