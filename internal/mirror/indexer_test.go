package mirror

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/typesense/typesense-go/v3/typesense/api"

	"github.com/filmvibe/app-discover-api/internal/catalog"
	"github.com/filmvibe/app-discover-api/internal/models"
)

type pagedSource struct {
	mu         sync.Mutex
	totalPages int
	failPage   int
	requested  []string
}

func (s *pagedSource) Name() string                   { return "fake" }
func (s *pagedSource) Ping(ctx context.Context) error { return nil }

func (s *pagedSource) Discover(ctx context.Context, kind models.ContentKind, params map[string]string) (*models.CatalogPage, error) {
	s.mu.Lock()
	s.requested = append(s.requested, params[catalog.ParamPage])
	s.mu.Unlock()

	page := 1
	if params[catalog.ParamPage] == "2" {
		page = 2
	}
	if page == s.failPage {
		return nil, catalog.ErrUnavailable
	}
	items := []models.Candidate{
		&models.Film{CatalogItem: models.CatalogItem{ID: int64(page*10 + 1), Title: "a", ReleaseDate: "2019-05-01"}, Runtime: 101},
		&models.Film{CatalogItem: models.CatalogItem{ID: int64(page*10 + 2), Title: "b"}},
	}
	return &models.CatalogPage{Kind: kind, Items: items, Page: page, TotalPages: s.totalPages}, nil
}

type memoryWriter struct {
	mu        sync.Mutex
	schemas   []*api.CollectionSchema
	docs      map[string][]map[string]interface{}
	upsertErr error
}

func (w *memoryWriter) EnsureCollection(ctx context.Context, schema *api.CollectionSchema) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.schemas = append(w.schemas, schema)
	return nil
}

func (w *memoryWriter) Upsert(ctx context.Context, collection string, doc map[string]interface{}) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.upsertErr != nil {
		return w.upsertErr
	}
	if w.docs == nil {
		w.docs = map[string][]map[string]interface{}{}
	}
	w.docs[collection] = append(w.docs[collection], doc)
	return nil
}

type runtimeTable struct {
	mu       sync.Mutex
	runtimes map[int64]int
	err      error
	lookups  []int64
}

func (r *runtimeTable) MovieRuntime(ctx context.Context, id int64) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.lookups = append(r.lookups, id)
	if r.err != nil {
		return 0, r.err
	}
	return r.runtimes[id], nil
}

var collections = map[models.ContentKind]string{
	models.KindFilm:   "catalog_movies",
	models.KindSeries: "catalog_series",
}

func TestDocument(t *testing.T) {
	film := &models.Film{
		CatalogItem: models.CatalogItem{
			ID: 550, Title: "Fight Club", GenreIDs: []int{18}, Popularity: 61.4,
			VoteAverage: 8.4, VoteCount: 27000, ReleaseDate: "1999-10-15",
			PosterPath: "/p.jpg", OriginalLanguage: "en",
		},
		Runtime: 139,
	}

	doc := Document(film)
	assert.Equal(t, "550", doc["id"])
	assert.Equal(t, 1999, doc["release_year"])
	assert.Equal(t, 139, doc["runtime"])
	assert.Equal(t, []int{18}, doc["genre_ids"])

	bare := Document(&models.Series{CatalogItem: models.CatalogItem{ID: 1}})
	assert.Equal(t, []int{}, bare["genre_ids"])
	assert.NotContains(t, bare, "release_year")
	assert.NotContains(t, bare, "runtime")
	assert.NotContains(t, bare, "poster_path")
}

func TestCollectionSchema(t *testing.T) {
	names := func(s *api.CollectionSchema) []string {
		var out []string
		for _, f := range s.Fields {
			out = append(out, f.Name)
		}
		return out
	}

	movies := CollectionSchema(models.KindFilm, "catalog_movies")
	assert.Equal(t, "catalog_movies", movies.Name)
	assert.Contains(t, names(movies), "runtime")
	assert.Contains(t, names(movies), "release_year")
	require.NotNil(t, movies.DefaultSortingField)
	assert.Equal(t, "popularity", *movies.DefaultSortingField)

	series := CollectionSchema(models.KindSeries, "catalog_series")
	assert.NotContains(t, names(series), "runtime")
}

func TestIndexerStopsAtLastUpstreamPage(t *testing.T) {
	source := &pagedSource{totalPages: 2}
	writer := &memoryWriter{}
	cfg := DefaultConfig()
	cfg.Pages = 5
	cfg.Workers = 1

	ix := NewIndexer(source, writer, collections, cfg)
	require.NoError(t, ix.Run(context.Background(), models.KindFilm))

	assert.Equal(t, []string{"1", "2"}, source.requested)
	require.Len(t, writer.schemas, 1)
	assert.Equal(t, "catalog_movies", writer.schemas[0].Name)
	assert.Len(t, writer.docs["catalog_movies"], 4)

	stats := ix.Stats()
	assert.Equal(t, int64(2), stats.Pages)
	assert.Equal(t, int64(4), stats.Indexed)
	assert.Zero(t, stats.Errors)
}

func TestIndexerCountsFailures(t *testing.T) {
	tests := []struct {
		name        string
		failPage    int
		upsertErr   error
		wantIndexed int64
		wantErrors  int64
	}{
		{"page fetch fails", 2, nil, 2, 1},
		{"upserts fail", 0, errors.New("boom"), 0, 4},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			source := &pagedSource{totalPages: 2, failPage: tt.failPage}
			writer := &memoryWriter{upsertErr: tt.upsertErr}
			cfg := DefaultConfig()
			cfg.Pages = 2

			ix := NewIndexer(source, writer, collections, cfg)
			require.NoError(t, ix.Run(context.Background(), models.KindSeries))

			stats := ix.Stats()
			assert.Equal(t, tt.wantIndexed, stats.Indexed)
			assert.Equal(t, tt.wantErrors, stats.Errors)
		})
	}
}

func TestIndexerDryRunWritesNothing(t *testing.T) {
	source := &pagedSource{totalPages: 1}
	writer := &memoryWriter{}
	cfg := DefaultConfig()
	cfg.Pages = 3
	cfg.Workers = 1
	cfg.DryRun = true

	ix := NewIndexer(source, writer, collections, cfg)
	require.NoError(t, ix.Run(context.Background(), models.KindFilm))

	assert.Empty(t, writer.schemas)
	assert.Empty(t, writer.docs)
	assert.Equal(t, int64(2), ix.Stats().Indexed)
}

func TestIndexerUnknownCollection(t *testing.T) {
	ix := NewIndexer(&pagedSource{}, &memoryWriter{}, map[models.ContentKind]string{}, DefaultConfig())
	err := ix.Run(context.Background(), models.KindFilm)
	assert.ErrorIs(t, err, ErrNoCollection)
}

func TestIndexerFillsMissingRuntimes(t *testing.T) {
	source := &pagedSource{totalPages: 1}
	writer := &memoryWriter{}
	lookup := &runtimeTable{runtimes: map[int64]int{12: 88}}
	cfg := DefaultConfig()
	cfg.Pages = 1

	ix := NewIndexer(source, writer, collections, cfg, WithRuntimeLookup(lookup))
	require.NoError(t, ix.Run(context.Background(), models.KindFilm))

	assert.Equal(t, []int64{12}, lookup.lookups, "films with a known runtime are not looked up")

	docs := writer.docs["catalog_movies"]
	require.Len(t, docs, 2)
	runtimes := map[string]interface{}{}
	for _, d := range docs {
		runtimes[d["id"].(string)] = d["runtime"]
	}
	assert.Equal(t, 101, runtimes["11"])
	assert.Equal(t, 88, runtimes["12"])
	assert.Equal(t, int64(1), ix.Stats().Runtimes)
}

func TestIndexerRuntimeLookupFailureStillIndexes(t *testing.T) {
	tests := []struct {
		name   string
		lookup *runtimeTable
	}{
		{"lookup error", &runtimeTable{err: catalog.ErrUnavailable}},
		{"unknown upstream", &runtimeTable{runtimes: map[int64]int{}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			writer := &memoryWriter{}
			cfg := DefaultConfig()
			cfg.Pages = 1

			ix := NewIndexer(&pagedSource{totalPages: 1}, writer, collections, cfg, WithRuntimeLookup(tt.lookup))
			require.NoError(t, ix.Run(context.Background(), models.KindFilm))

			assert.Len(t, writer.docs["catalog_movies"], 2)
			assert.Zero(t, ix.Stats().Errors)
			assert.Zero(t, ix.Stats().Runtimes)
		})
	}
}

func TestIndexerSkipsRuntimeLookupForSeries(t *testing.T) {
	lookup := &runtimeTable{runtimes: map[int64]int{1: 50}}
	source := &seriesSource{}
	cfg := DefaultConfig()
	cfg.Pages = 1

	ix := NewIndexer(source, &memoryWriter{}, collections, cfg, WithRuntimeLookup(lookup))
	require.NoError(t, ix.Run(context.Background(), models.KindSeries))
	assert.Empty(t, lookup.lookups)
}

type seriesSource struct{}

func (s *seriesSource) Name() string                   { return "fake" }
func (s *seriesSource) Ping(ctx context.Context) error { return nil }

func (s *seriesSource) Discover(ctx context.Context, kind models.ContentKind, params map[string]string) (*models.CatalogPage, error) {
	return &models.CatalogPage{
		Kind:       kind,
		Items:      []models.Candidate{&models.Series{CatalogItem: models.CatalogItem{ID: 1, Title: "s"}}},
		Page:       1,
		TotalPages: 1,
	}, nil
}
