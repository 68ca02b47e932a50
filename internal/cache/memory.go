package cache

import (
	"context"
	"sync"
	"time"

	"github.com/filmvibe/app-discover-api/internal/logging"
	"github.com/filmvibe/app-discover-api/internal/metrics"
	"github.com/filmvibe/app-discover-api/internal/models"
)

const memoryBackend = "memory"

// MemoryStore is an in-process Store. Entries expire ttl after insertion and
// are dropped lazily on read or by the optional janitor.
type MemoryStore struct {
	data    map[string]*entry
	mu      sync.RWMutex
	ttl     time.Duration
	maxSize int
	now     func() time.Time
}

type entry struct {
	payload  []models.RankedItem
	storedAt time.Time
}

type MemoryOption func(*MemoryStore)

// WithClock replaces time.Now.
func WithClock(now func() time.Time) MemoryOption {
	return func(s *MemoryStore) { s.now = now }
}

func NewMemoryStore(ttl time.Duration, maxSize int, opts ...MemoryOption) *MemoryStore {
	if ttl <= 0 {
		ttl = time.Hour
	}
	if maxSize <= 0 {
		maxSize = 2000
	}
	s := &MemoryStore{
		data:    make(map[string]*entry),
		ttl:     ttl,
		maxSize: maxSize,
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *MemoryStore) expired(e *entry, now time.Time) bool {
	return now.Sub(e.storedAt) >= s.ttl
}

func (s *MemoryStore) Get(ctx context.Context, key string) ([]models.RankedItem, bool) {
	now := s.now()

	s.mu.RLock()
	e, ok := s.data[key]
	s.mu.RUnlock()

	if ok && !s.expired(e, now) {
		metrics.CacheLookupsTotal.WithLabelValues(memoryBackend, "hit").Inc()
		return e.payload, true
	}
	if ok {
		s.mu.Lock()
		if cur, still := s.data[key]; still && s.expired(cur, now) {
			delete(s.data, key)
		}
		s.mu.Unlock()
	}
	metrics.CacheLookupsTotal.WithLabelValues(memoryBackend, "miss").Inc()
	return nil, false
}

// Put stores payload. Callers must not mutate payload afterwards.
func (s *MemoryStore) Put(ctx context.Context, key string, payload []models.RankedItem) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.data[key]; !exists && len(s.data) >= s.maxSize {
		s.evict()
	}
	s.data[key] = &entry{payload: payload, storedAt: s.now()}
	metrics.CacheEntries.WithLabelValues(memoryBackend).Set(float64(len(s.data)))
}

// evict drops expired entries, then the oldest one if still full. mu must be held.
func (s *MemoryStore) evict() {
	now := s.now()
	for key, e := range s.data {
		if s.expired(e, now) {
			delete(s.data, key)
		}
	}
	if len(s.data) < s.maxSize {
		return
	}

	var oldestKey string
	var oldest time.Time
	for key, e := range s.data {
		if oldestKey == "" || e.storedAt.Before(oldest) {
			oldest, oldestKey = e.storedAt, key
		}
	}
	delete(s.data, oldestKey)
}

func (s *MemoryStore) Clear(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data = make(map[string]*entry)
	metrics.CacheEntries.WithLabelValues(memoryBackend).Set(0)
}

func (s *MemoryStore) Stats(ctx context.Context) Stats {
	s.mu.RLock()
	defer s.mu.RUnlock()

	st := Stats{Backend: memoryBackend, Size: len(s.data), TTLSec: int64(s.ttl.Seconds())}
	now := s.now()
	for _, e := range s.data {
		if s.expired(e, now) {
			st.Expired++
		}
	}
	return st
}

// Sweep removes every expired entry and returns how many were dropped.
func (s *MemoryStore) Sweep() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	removed := 0
	for key, e := range s.data {
		if s.expired(e, now) {
			delete(s.data, key)
			removed++
		}
	}
	metrics.CacheEntries.WithLabelValues(memoryBackend).Set(float64(len(s.data)))
	return removed
}

// StartJanitor sweeps every interval until ctx is done.
func (s *MemoryStore) StartJanitor(ctx context.Context, interval time.Duration) {
	if interval <= 0 {
		return
	}
	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				if n := s.Sweep(); n > 0 {
					logging.Debug().Int("removed", n).Msg("cache sweep")
				}
			}
		}
	}()
}
