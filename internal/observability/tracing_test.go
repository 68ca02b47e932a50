package observability

import (
	"testing"

	"github.com/stretchr/testify/assert"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"

	"github.com/filmvibe/app-discover-api/internal/config"
)

func TestResourceAttributes(t *testing.T) {
	cfg := &config.Config{
		CatalogBackend: config.BackendTypesense,
		Cache:          config.CacheConfig{Backend: config.CacheRedis},
		Recommend:      config.RecommendConfig{FetchPages: 5},
		TMDB:           config.TMDBConfig{Language: "en-US"},
	}

	got := map[string]interface{}{}
	for _, kv := range ResourceAttributes(cfg) {
		got[string(kv.Key)] = kv.Value.AsInterface()
	}

	assert.Equal(t, ServiceName, got["service.name"])
	assert.Equal(t, config.BackendTypesense, got["discover.catalog.backend"])
	assert.Equal(t, config.CacheRedis, got["discover.cache.backend"])
	assert.Equal(t, int64(5), got["discover.recommend.fetch_pages"])
	assert.Equal(t, false, got["discover.mood.enabled"])
}

func TestSampler(t *testing.T) {
	tests := []struct {
		name  string
		ratio float64
		want  string
	}{
		{"always", 1, sdktrace.ParentBased(sdktrace.AlwaysSample()).Description()},
		{"ratio", 0.25, sdktrace.ParentBased(sdktrace.TraceIDRatioBased(0.25)).Description()},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := Sampler(&config.Config{TracingSampleRatio: tt.ratio})
			assert.Equal(t, tt.want, s.Description())
		})
	}
}
