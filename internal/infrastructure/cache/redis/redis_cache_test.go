package redis

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCacheKeys(t *testing.T) {
	tests := []struct {
		source, dataset, want string
	}{
		{"sql", "machines", "maintenance:sql:machines"},
		{"mock", "history", "maintenance:mock:history"},
		{"http", "maintenance", "maintenance:http:maintenance"},
	}

	for _, tc := range tests {
		assert.Equal(t, tc.want, GenerateCacheKey(tc.source, tc.dataset))
	}
	assert.Equal(t, "maintenance:csv:*", SourcePattern("csv"))
}
