// Package cache memoizes ranked recommendation batches for a fixed TTL.
package cache

import (
	"context"
	"sort"
	"strings"

	"github.com/filmvibe/app-discover-api/internal/models"
)

// Store holds ranked batches keyed by a canonical request key. A failed or
// corrupt read is reported as a miss.
type Store interface {
	Get(ctx context.Context, key string) ([]models.RankedItem, bool)
	Put(ctx context.Context, key string, payload []models.RankedItem)
	Clear(ctx context.Context)
	Stats(ctx context.Context) Stats
}

// Stats describes the cache contents.
type Stats struct {
	Backend string `json:"backend"`
	Size    int    `json:"size"`
	Expired int    `json:"expired"`
	TTLSec  int64  `json:"ttl_seconds"`
}

// Key builds the canonical key: name=value pairs sorted by name and joined
// with '&'. Field order in the input never changes the key.
func Key(fields map[string]string) string {
	names := make([]string, 0, len(fields))
	for name := range fields {
		names = append(names, name)
	}
	sort.Strings(names)

	var b strings.Builder
	for i, name := range names {
		if i > 0 {
			b.WriteByte('&')
		}
		b.WriteString(name)
		b.WriteByte('=')
		b.WriteString(fields[name])
	}
	return b.String()
}
