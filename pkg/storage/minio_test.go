package storage

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestZonesAreFixed(t *testing.T) {
	zones := Zones()

	// 分区集合是固定的，初始化的幂等性建立在这个不变量上
	assert.Equal(t, []string{
		"bronze/files/",
		"silver/ravendb_landing/orders/",
		"silver/file_inventory/",
		"gold/vectors/",
		"warehouse/",
	}, zones)

	seen := map[string]bool{}
	for _, zone := range zones {
		assert.True(t, strings.HasSuffix(zone, "/"), "前缀必须以 / 结尾: %s", zone)
		assert.False(t, strings.HasPrefix(zone, "/"), "前缀不能以 / 开头: %s", zone)
		assert.False(t, seen[zone], "前缀重复: %s", zone)
		seen[zone] = true
	}
}
