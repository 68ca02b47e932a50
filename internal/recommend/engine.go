package recommend

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/sourcegraph/conc"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/sync/singleflight"

	"github.com/filmvibe/app-discover-api/internal/cache"
	"github.com/filmvibe/app-discover-api/internal/catalog"
	"github.com/filmvibe/app-discover-api/internal/discover"
	"github.com/filmvibe/app-discover-api/internal/logging"
	"github.com/filmvibe/app-discover-api/internal/models"
)

const (
	defaultFetchPages = 5
	computeTimeout    = 20 * time.Second

	hiddenGemRatingFloor = 7.0
	hiddenGemVoteFloor   = 50
	defaultVoteFloor     = 100
)

// Engine serves vibe recommendations: fetch an over-sized candidate batch,
// rank it, cache the ranking, then apply per-caller exclusions and shuffling.
type Engine struct {
	source     catalog.Source
	cache      cache.Store
	registry   *Registry
	moods      MoodResolver
	shuffler   *Shuffler
	fetchPages int
	now        func() time.Time
	tracer     trace.Tracer
	group      singleflight.Group
}

type Option func(*Engine)

// WithMoodResolver enables free-text mood requests.
func WithMoodResolver(m MoodResolver) Option {
	return func(e *Engine) { e.moods = m }
}

func WithShuffler(s *Shuffler) Option {
	return func(e *Engine) { e.shuffler = s }
}

// WithFetchPages sets how many upstream pages make up one ranked batch.
func WithFetchPages(n int) Option {
	return func(e *Engine) {
		if n > 0 {
			e.fetchPages = n
		}
	}
}

func WithNow(now func() time.Time) Option {
	return func(e *Engine) { e.now = now }
}

func NewEngine(source catalog.Source, store cache.Store, registry *Registry, opts ...Option) *Engine {
	e := &Engine{
		source:     source,
		cache:      store,
		registry:   registry,
		fetchPages: defaultFetchPages,
		now:        time.Now,
		tracer:     otel.Tracer("recommend"),
	}
	for _, opt := range opts {
		opt(e)
	}
	if e.shuffler == nil {
		e.shuffler = NewSeededShuffler(0)
	}
	return e
}

// Registry exposes the vibe set the engine ranks against.
func (e *Engine) Registry() *Registry { return e.registry }

// Recommend validates req and returns one page of ranked items.
func (e *Engine) Recommend(ctx context.Context, req *models.RecommendRequest) (*models.RecommendResponse, error) {
	start := e.now()

	if err := req.Validate(); err != nil {
		return nil, err
	}
	if last := req.Page * e.fetchPages; last > catalog.MaxPage {
		return nil, fmt.Errorf("%w: page %d needs upstream page %d, the catalog stops at %d (max page %d)",
			models.ErrInvalidPage, req.Page, last, catalog.MaxPage, catalog.MaxPage/e.fetchPages)
	}

	if req.Vibe == "" {
		if e.moods == nil {
			return nil, fmt.Errorf("%w: mood resolution is not configured", ErrMoodUnresolved)
		}
		id, err := e.moods.Resolve(ctx, req.Mood)
		if err != nil {
			return nil, err
		}
		req.Vibe = id
	}

	vibe, ok := e.registry.Get(req.Vibe)
	if !ok {
		return nil, fmt.Errorf("%w: %q", models.ErrUnknownVibe, req.Vibe)
	}

	params := ScoringParams{
		Vibe:       vibe,
		Era:        req.Era,
		Runtime:    req.Runtime,
		HiddenGems: req.HiddenGems,
	}
	key := cacheKey(vibe.ID, req)

	ranked, fromCache := e.cache.Get(ctx, key)
	if !fromCache {
		var err error
		ranked, err = e.computeOnce(ctx, key, req.MediaType, req.Page, params)
		if err != nil {
			return nil, err
		}
	}

	results := Exclude(ranked, req.ParsedExclude)
	total := len(results)
	if req.Shuffle {
		results = e.shuffler.ShuffleTop(results, req.ShuffleN)
	}
	if len(results) > req.PageSize {
		results = results[:req.PageSize]
	}

	return &models.RecommendResponse{
		Results:        results,
		Vibe:           vibe.ID,
		VibeName:       vibe.DisplayName,
		Total:          total,
		Page:           req.Page,
		FromCache:      fromCache,
		ResponseTimeMs: float64(e.now().Sub(start).Microseconds()) / 1000,
	}, nil
}

// computeOnce collapses concurrent misses for one key into a single
// computation. The computation is detached from the caller so one caller
// going away does not fail the others.
func (e *Engine) computeOnce(ctx context.Context, key string, kind models.ContentKind, page int, params ScoringParams) ([]models.RankedItem, error) {
	ch := e.group.DoChan(key, func() (interface{}, error) {
		cctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), computeTimeout)
		defer cancel()

		ranked, err := e.compute(cctx, kind, page, params)
		if err != nil {
			return nil, err
		}
		e.cache.Put(cctx, key, ranked)
		return ranked, nil
	})

	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case res := <-ch:
		if res.Err != nil {
			return nil, res.Err
		}
		return res.Val.([]models.RankedItem), nil
	}
}

func (e *Engine) compute(ctx context.Context, kind models.ContentKind, page int, params ScoringParams) ([]models.RankedItem, error) {
	ctx, span := e.tracer.Start(ctx, "recommend.compute", trace.WithAttributes(
		attribute.String("vibe", params.Vibe.ID),
		attribute.String("kind", string(kind)),
		attribute.Int("page", page),
	))
	defer span.End()

	filters := e.filtersFor(kind, params)
	firstPage := (page-1)*e.fetchPages + 1

	pages := make([]*models.CatalogPage, e.fetchPages)
	errs := make([]error, e.fetchPages)
	var wg conc.WaitGroup
	for i := range e.fetchPages {
		wg.Go(func() {
			f := filters
			f.Page = firstPage + i
			pages[i], errs[i] = e.source.Discover(ctx, kind, discover.BuildParams(f, kind))
		})
	}
	wg.Wait()

	var batch []models.Candidate
	var failed []error
	for i, p := range pages {
		if errs[i] != nil {
			failed = append(failed, errs[i])
			continue
		}
		batch = append(batch, p.Items...)
	}
	if len(failed) == len(pages) {
		span.RecordError(failed[0])
		return nil, fmt.Errorf("%w: %w", ErrUpstreamUnavailable, errors.Join(failed...))
	}
	if len(failed) > 0 {
		logging.Ctx(ctx).Warn().Int("failed_pages", len(failed)).Str("vibe", params.Vibe.ID).Msg("ranking a reduced candidate batch")
	}

	batch = Dedupe(batch)
	span.SetAttributes(attribute.Int("candidates", len(batch)))
	return Rank(batch, params), nil
}

// filtersFor derives the upstream query for a vibe: its primary and
// secondary genres as any-of, anti genres excluded, era and runtime bounds,
// and a quality floor that depends on hidden-gems mode.
func (e *Engine) filtersFor(kind models.ContentKind, p ScoringParams) models.DiscoverFilters {
	f := models.DiscoverFilters{
		GenreMatch:     models.GenreMatchAny,
		ExcludedGenres: p.Vibe.Anti,
	}
	for _, g := range append(append([]int{}, p.Vibe.Primary...), p.Vibe.Secondary...) {
		if !contains(f.Genres, g) {
			f.Genres = append(f.Genres, g)
		}
	}

	if from, to := p.Era.YearBounds(e.now().Year()); from > 0 || to > 0 {
		if from > 0 {
			f.YearFrom = &from
		}
		if to > 0 {
			f.YearTo = &to
		}
	}

	if kind == models.KindFilm {
		if lo, hi := p.Runtime.Bounds(); lo > 0 || hi > 0 {
			if lo > 0 {
				f.RuntimeMin = &lo
			}
			if hi > 0 {
				f.RuntimeMax = &hi
			}
		}
	}

	if p.HiddenGems {
		rating, votes := hiddenGemRatingFloor, hiddenGemVoteFloor
		f.SortBy = models.SortRatingDesc
		f.RatingMin = &rating
		f.VoteCountMin = &votes
	} else {
		votes := defaultVoteFloor
		f.SortBy = models.SortPopularityDesc
		f.VoteCountMin = &votes
	}
	return f
}

func cacheKey(vibeID string, req *models.RecommendRequest) string {
	return cache.Key(map[string]string{
		"vibe":        vibeID,
		"era":         string(req.Era),
		"runtime":     string(req.Runtime),
		"kind":        string(req.MediaType),
		"hidden_gems": strconv.FormatBool(req.HiddenGems),
		"page":        strconv.Itoa(req.Page),
	})
}

// ClearCache empties the result cache.
func (e *Engine) ClearCache(ctx context.Context) {
	e.cache.Clear(ctx)
}

// CacheStats reports result cache contents.
func (e *Engine) CacheStats(ctx context.Context) cache.Stats {
	return e.cache.Stats(ctx)
}

// Ping checks the catalog backend.
func (e *Engine) Ping(ctx context.Context) error {
	return e.source.Ping(ctx)
}
