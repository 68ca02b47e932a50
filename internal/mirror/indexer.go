// Package mirror copies catalog pages into the Typesense collections served
// by the typesense catalog backend.
package mirror

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync/atomic"
	"time"

	"github.com/sourcegraph/conc/pool"
	"github.com/typesense/typesense-go/v3/typesense"
	"github.com/typesense/typesense-go/v3/typesense/api"

	"github.com/filmvibe/app-discover-api/internal/catalog"
	"github.com/filmvibe/app-discover-api/internal/discover"
	"github.com/filmvibe/app-discover-api/internal/logging"
	"github.com/filmvibe/app-discover-api/internal/models"
)

var ErrNoCollection = errors.New("no mirror collection configured for kind")

// Writer stores mirror documents.
type Writer interface {
	EnsureCollection(ctx context.Context, schema *api.CollectionSchema) error
	Upsert(ctx context.Context, collection string, doc map[string]interface{}) error
}

// RuntimeLookup fills film runtimes that discover pages leave out.
type RuntimeLookup interface {
	MovieRuntime(ctx context.Context, id int64) (int, error)
}

type Config struct {
	// Pages is the number of upstream discover pages harvested per kind.
	Pages   int
	Workers int
	DryRun  bool
	SortBy  models.SortKey
	// MinVotes skips obscure titles upstream.
	MinVotes int
}

func DefaultConfig() Config {
	return Config{
		Pages:    50,
		Workers:  3,
		SortBy:   models.SortPopularityDesc,
		MinVotes: 20,
	}
}

type Stats struct {
	Pages     int64
	Indexed   int64
	Runtimes  int64
	Errors    int64
	StartTime time.Time
}

type Indexer struct {
	source      catalog.Source
	writer      Writer
	collections map[models.ContentKind]string
	runtimes    RuntimeLookup
	cfg         Config
	stats       *Stats
}

type IndexerOption func(*Indexer)

// WithRuntimeLookup enriches films without a runtime before they are written.
func WithRuntimeLookup(l RuntimeLookup) IndexerOption {
	return func(ix *Indexer) { ix.runtimes = l }
}

func NewIndexer(source catalog.Source, writer Writer, collections map[models.ContentKind]string, cfg Config, opts ...IndexerOption) *Indexer {
	if cfg.Workers < 1 {
		cfg.Workers = 1
	}
	if cfg.SortBy == "" {
		cfg.SortBy = models.SortPopularityDesc
	}
	ix := &Indexer{
		source:      source,
		writer:      writer,
		collections: collections,
		cfg:         cfg,
		stats:       &Stats{StartTime: time.Now()},
	}
	for _, opt := range opts {
		opt(ix)
	}
	return ix
}

// Run mirrors the first cfg.Pages discover pages of kind. Page and document
// failures are counted and logged; only setup failures abort the run.
func (ix *Indexer) Run(ctx context.Context, kind models.ContentKind) error {
	collection, ok := ix.collections[kind]
	if !ok || collection == "" {
		return fmt.Errorf("%w: %s", ErrNoCollection, kind)
	}

	if !ix.cfg.DryRun {
		if err := ix.writer.EnsureCollection(ctx, CollectionSchema(kind, collection)); err != nil {
			return fmt.Errorf("ensure collection %s: %w", collection, err)
		}
	}

	logging.Info().
		Str("kind", string(kind)).
		Str("collection", collection).
		Int("pages", ix.cfg.Pages).
		Int("workers", ix.cfg.Workers).
		Bool("dry_run", ix.cfg.DryRun).
		Msg("mirror run started")

	var lastPage atomic.Int64
	lastPage.Store(int64(ix.cfg.Pages))

	p := pool.New().WithMaxGoroutines(ix.cfg.Workers)
	for page := 1; page <= ix.cfg.Pages; page++ {
		p.Go(func() {
			if ctx.Err() != nil || int64(page) > lastPage.Load() {
				return
			}
			ix.indexPage(ctx, kind, collection, page, &lastPage)
		})
	}
	p.Wait()

	return ctx.Err()
}

func (ix *Indexer) indexPage(ctx context.Context, kind models.ContentKind, collection string, page int, lastPage *atomic.Int64) {
	minVotes := ix.cfg.MinVotes
	params := discover.BuildParams(models.DiscoverFilters{
		SortBy:       ix.cfg.SortBy,
		VoteCountMin: &minVotes,
		Page:         page,
	}, kind)

	result, err := ix.source.Discover(ctx, kind, params)
	if err != nil {
		atomic.AddInt64(&ix.stats.Errors, 1)
		logging.Warn().Err(err).Int("page", page).Msg("mirror page fetch failed")
		return
	}
	atomic.AddInt64(&ix.stats.Pages, 1)

	if result.TotalPages > 0 && int64(result.TotalPages) < lastPage.Load() {
		lastPage.Store(int64(result.TotalPages))
	}

	for _, c := range result.Items {
		c = ix.withRuntime(ctx, c)
		if ix.cfg.DryRun {
			atomic.AddInt64(&ix.stats.Indexed, 1)
			continue
		}
		if err := ix.writer.Upsert(ctx, collection, Document(c)); err != nil {
			atomic.AddInt64(&ix.stats.Errors, 1)
			logging.Warn().Err(err).Int64("id", c.Item().ID).Msg("mirror upsert failed")
			continue
		}
		atomic.AddInt64(&ix.stats.Indexed, 1)
	}

	logging.Debug().Int("page", page).Int("items", len(result.Items)).Msg("mirror page indexed")
}

// withRuntime returns c with its runtime filled in when a lookup is
// configured and c is a film without one. Lookup failures leave c unchanged.
func (ix *Indexer) withRuntime(ctx context.Context, c models.Candidate) models.Candidate {
	f, ok := c.(*models.Film)
	if !ok || f.Runtime > 0 || ix.runtimes == nil {
		return c
	}

	runtime, err := ix.runtimes.MovieRuntime(ctx, f.ID)
	if err != nil {
		logging.Debug().Err(err).Int64("id", f.ID).Msg("mirror runtime lookup failed")
		return c
	}
	if runtime <= 0 {
		return c
	}

	atomic.AddInt64(&ix.stats.Runtimes, 1)
	enriched := *f
	enriched.Runtime = runtime
	return &enriched
}

// Stats returns a snapshot of the counters.
func (ix *Indexer) Stats() Stats {
	return Stats{
		Pages:     atomic.LoadInt64(&ix.stats.Pages),
		Indexed:   atomic.LoadInt64(&ix.stats.Indexed),
		Runtimes:  atomic.LoadInt64(&ix.stats.Runtimes),
		Errors:    atomic.LoadInt64(&ix.stats.Errors),
		StartTime: ix.stats.StartTime,
	}
}

func (ix *Indexer) LogStats() {
	s := ix.Stats()
	logging.Info().
		Int64("pages", s.Pages).
		Int64("indexed", s.Indexed).
		Int64("runtimes", s.Runtimes).
		Int64("errors", s.Errors).
		Dur("elapsed", time.Since(s.StartTime)).
		Bool("dry_run", ix.cfg.DryRun).
		Msg("mirror run finished")
}

// TypesenseWriter writes mirror documents with the Typesense client.
type TypesenseWriter struct {
	client *typesense.Client
}

func NewTypesenseWriter(client *typesense.Client) *TypesenseWriter {
	return &TypesenseWriter{client: client}
}

func (w *TypesenseWriter) EnsureCollection(ctx context.Context, schema *api.CollectionSchema) error {
	_, err := w.client.Collection(schema.Name).Retrieve(ctx)
	if err == nil {
		return nil
	}
	if !isNotFound(err) {
		return err
	}

	if _, err := w.client.Collections().Create(ctx, schema); err != nil {
		return fmt.Errorf("create collection %s: %w", schema.Name, err)
	}
	logging.Info().Str("collection", schema.Name).Msg("mirror collection created")
	return nil
}

func (w *TypesenseWriter) Upsert(ctx context.Context, collection string, doc map[string]interface{}) error {
	_, err := w.client.Collection(collection).Documents().Upsert(ctx, doc, &api.DocumentIndexParameters{})
	return err
}

func isNotFound(err error) bool {
	var httpErr *typesense.HTTPError
	if errors.As(err, &httpErr) {
		return httpErr.Status == 404
	}
	return strings.Contains(err.Error(), "404") || strings.Contains(err.Error(), "Not found")
}
