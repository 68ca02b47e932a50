package discover

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/sourcegraph/conc"

	"github.com/filmvibe/app-discover-api/internal/catalog"
	"github.com/filmvibe/app-discover-api/internal/logging"
	"github.com/filmvibe/app-discover-api/internal/metrics"
	"github.com/filmvibe/app-discover-api/internal/models"
)

// Service runs discover queries against a catalog source.
type Service struct {
	source catalog.Source
}

func NewService(source catalog.Source) *Service {
	return &Service{source: source}
}

// Discover fetches one page per requested kind concurrently and merges them.
// A kind whose fetch fails contributes an empty page and is reported in
// FailedKinds; only when every kind fails is an error returned.
func (s *Service) Discover(ctx context.Context, kind models.ContentKind, f models.DiscoverFilters) (*models.DiscoverResponse, error) {
	start := time.Now()
	kinds := kind.Kinds()

	pages := make([]*models.CatalogPage, len(kinds))
	errs := make([]error, len(kinds))

	var wg conc.WaitGroup
	for i, k := range kinds {
		wg.Go(func() {
			pages[i], errs[i] = s.source.Discover(ctx, k, BuildParams(f, k))
		})
	}
	wg.Wait()
	upstream := time.Since(start)

	resp := &models.DiscoverResponse{Page: f.Page}
	var failed []error
	for i, err := range errs {
		if err == nil {
			continue
		}
		failed = append(failed, err)
		resp.FailedKinds = append(resp.FailedKinds, kinds[i])
		pages[i] = models.EmptyPage(kinds[i], f.Page)
		logging.Ctx(ctx).Warn().Err(err).Str("kind", string(kinds[i])).Msg("catalog fetch failed, degrading kind to empty")
	}

	if len(failed) == len(kinds) {
		return nil, fmt.Errorf("%w: %w", ErrUpstreamUnavailable, errors.Join(failed...))
	}
	if len(failed) > 0 {
		resp.Partial = true
		for _, k := range resp.FailedKinds {
			metrics.PartialResponsesTotal.WithLabelValues(string(k)).Inc()
		}
	}

	resp.Results, resp.TotalResults, resp.TotalPages = Merge(pages, f.SortBy)
	resp.Timing = models.TimingMeta{
		TotalMs:    float64(time.Since(start).Microseconds()) / 1000,
		UpstreamMs: float64(upstream.Microseconds()) / 1000,
	}
	return resp, nil
}

// Merge concatenates pages in order, tagging each item with its kind. Only
// release-date and rating sort keys are re-sorted across kinds; any other key
// keeps each kind's upstream order, one kind after the other. Total results
// is the sum over kinds and total pages the max, which approximates
// pagination over the combined set.
func Merge(pages []*models.CatalogPage, sortKey models.SortKey) ([]models.ResultItem, int, int) {
	var totalResults, totalPages, n int
	for _, p := range pages {
		n += len(p.Items)
	}

	items := make([]models.ResultItem, 0, n)
	for _, p := range pages {
		for _, c := range p.Items {
			items = append(items, models.NewResultItem(c))
		}
		totalResults += p.TotalResults
		totalPages = max(totalPages, p.TotalPages)
	}

	if len(pages) > 1 && sortKey.ClientOrderable() {
		sort.SliceStable(items, lessFor(items, sortKey))
	}
	return items, totalResults, totalPages
}

func lessFor(items []models.ResultItem, key models.SortKey) func(i, j int) bool {
	switch key {
	case models.SortRatingDesc:
		return func(i, j int) bool { return items[i].VoteAverage > items[j].VoteAverage }
	case models.SortRatingAsc:
		return func(i, j int) bool { return items[i].VoteAverage < items[j].VoteAverage }
	case models.SortReleaseDateDesc:
		return func(i, j int) bool { return dateLess(items[j].ReleaseDate, items[i].ReleaseDate) }
	default:
		return func(i, j int) bool { return dateLess(items[i].ReleaseDate, items[j].ReleaseDate) }
	}
}

// dateLess orders ISO dates ascending. Missing dates compare lowest.
func dateLess(a, b string) bool {
	return a < b
}
