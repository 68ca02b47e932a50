package catalog

import (
	"context"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/typesense/typesense-go/v3/typesense"
	"github.com/typesense/typesense-go/v3/typesense/api"
	"github.com/typesense/typesense-go/v3/typesense/api/pointer"

	"github.com/filmvibe/app-discover-api/internal/config"
	"github.com/filmvibe/app-discover-api/internal/metrics"
	"github.com/filmvibe/app-discover-api/internal/models"
)

const (
	typesenseBackend = "typesense"
	typesensePerPage = 20
)

// TypesenseSource serves discover pages from a Typesense mirror of the
// catalog. Mirror documents carry the CatalogItem fields plus release_year
// (int32) and, for films, runtime and revenue.
type TypesenseSource struct {
	client      *typesense.Client
	collections map[models.ContentKind]string
}

func NewTypesenseSource(cfg config.TypesenseConfig) *TypesenseSource {
	client := typesense.NewClient(
		typesense.WithServer(cfg.ServerURL()),
		typesense.WithAPIKey(cfg.APIKey),
	)
	return NewTypesenseSourceWithClient(client, cfg.MovieCollection, cfg.SeriesCollection)
}

func NewTypesenseSourceWithClient(client *typesense.Client, movies, series string) *TypesenseSource {
	return &TypesenseSource{
		client: client,
		collections: map[models.ContentKind]string{
			models.KindFilm:   movies,
			models.KindSeries: series,
		},
	}
}

func (s *TypesenseSource) Name() string { return typesenseBackend }

func (s *TypesenseSource) Discover(ctx context.Context, kind models.ContentKind, params map[string]string) (*models.CatalogPage, error) {
	if err := checkKind(kind); err != nil {
		return nil, err
	}

	searchParams, page := buildSearchParams(params)

	start := time.Now()
	result, err := s.client.Collection(s.collections[kind]).Documents().Search(ctx, searchParams)
	metrics.UpstreamRequestDuration.WithLabelValues(typesenseBackend, string(kind)).Observe(time.Since(start).Seconds())
	if err != nil {
		metrics.UpstreamRequestsTotal.WithLabelValues(typesenseBackend, string(kind), "error").Inc()
		return nil, fmt.Errorf("catalog: typesense search %s: %w", s.collections[kind], err)
	}
	metrics.UpstreamRequestsTotal.WithLabelValues(typesenseBackend, string(kind), "ok").Inc()

	return transformResult(kind, page, result), nil
}

func (s *TypesenseSource) Ping(ctx context.Context) error {
	ok, err := s.client.Health(ctx, 2*time.Second)
	if err != nil {
		return err
	}
	if !ok {
		return ErrUnavailable
	}
	return nil
}

// buildSearchParams translates discover parameters into a Typesense query.
func buildSearchParams(params map[string]string) (*api.SearchCollectionParams, int) {
	page := 1
	if p, err := strconv.Atoi(params[ParamPage]); err == nil && p > 0 {
		page = p
	}

	sp := &api.SearchCollectionParams{
		Q:       pointer.String("*"),
		QueryBy: pointer.String("title"),
		Page:    pointer.Int(page),
		PerPage: pointer.Int(typesensePerPage),
	}
	if filterBy := buildFilterBy(params); filterBy != "" {
		sp.FilterBy = &filterBy
	}
	if sortBy := translateSort(params[ParamSortBy]); sortBy != "" {
		sp.SortBy = &sortBy
	}
	return sp, page
}

func buildFilterBy(params map[string]string) string {
	var parts []string

	if g := params[ParamWithGenres]; g != "" {
		if strings.Contains(g, GenreSepAny) {
			parts = append(parts, fmt.Sprintf("genre_ids:=[%s]", strings.ReplaceAll(g, GenreSepAny, ",")))
		} else {
			for _, id := range strings.Split(g, GenreSepAll) {
				parts = append(parts, "genre_ids:="+id)
			}
		}
	}
	if g := params[ParamWithoutGenres]; g != "" {
		parts = append(parts, fmt.Sprintf("genre_ids:!=[%s]", g))
	}
	if v := params[ParamVoteAverage]; v != "" {
		parts = append(parts, "vote_average:>="+v)
	}
	if v := params[ParamVoteCount]; v != "" {
		parts = append(parts, "vote_count:>="+v)
	}
	if v := params[ParamLanguage]; v != "" {
		parts = append(parts, "original_language:="+v)
	}
	if v := params[ParamRuntimeMin]; v != "" {
		parts = append(parts, "runtime:>="+v)
	}
	if v := params[ParamRuntimeMax]; v != "" {
		parts = append(parts, "runtime:<="+v)
	}

	for _, key := range []string{ParamMovieDateFrom, ParamTVDateFrom} {
		if y := yearOf(params[key]); y != "" {
			parts = append(parts, "release_year:>="+y)
		}
	}
	for _, key := range []string{ParamMovieDateTo, ParamTVDateTo} {
		if y := yearOf(params[key]); y != "" {
			parts = append(parts, "release_year:<="+y)
		}
	}
	for _, key := range []string{ParamMovieYear, ParamTVYear} {
		if y := params[key]; y != "" {
			parts = append(parts, "release_year:="+y)
		}
	}

	return strings.Join(parts, " && ")
}

func yearOf(date string) string {
	if len(date) < 4 {
		return ""
	}
	return date[:4]
}

// translateSort maps "field.dir" upstream sort names to "field:dir".
func translateSort(sortBy string) string {
	i := strings.LastIndex(sortBy, ".")
	if i <= 0 {
		return ""
	}
	field, dir := sortBy[:i], sortBy[i+1:]
	switch field {
	case "primary_release_date", "first_air_date":
		field = "release_year"
	case "original_title", "original_name":
		field = "title"
	}
	return field + ":" + dir
}

func transformResult(kind models.ContentKind, page int, result *api.SearchResult) *models.CatalogPage {
	out := &models.CatalogPage{Kind: kind, Items: []models.Candidate{}, Page: page}
	if result == nil {
		return out
	}
	if result.Found != nil {
		out.TotalResults = *result.Found
		out.TotalPages = int(math.Ceil(float64(*result.Found) / typesensePerPage))
	}
	if result.Hits == nil {
		return out
	}

	for _, hit := range *result.Hits {
		if hit.Document == nil {
			continue
		}
		if c, ok := documentToCandidate(kind, *hit.Document); ok {
			out.Items = append(out.Items, c)
		}
	}
	return out
}

func documentToCandidate(kind models.ContentKind, doc map[string]interface{}) (models.Candidate, bool) {
	id := int64(numberField(doc, "id"))
	if id <= 0 {
		return nil, false
	}
	item := models.CatalogItem{
		ID:               id,
		Title:            stringField(doc, "title"),
		Overview:         stringField(doc, "overview"),
		Popularity:       numberField(doc, "popularity"),
		VoteAverage:      numberField(doc, "vote_average"),
		VoteCount:        int(numberField(doc, "vote_count")),
		ReleaseDate:      stringField(doc, "release_date"),
		PosterPath:       stringField(doc, "poster_path"),
		OriginalLanguage: stringField(doc, "original_language"),
	}
	if raw, ok := doc["genre_ids"].([]interface{}); ok {
		for _, g := range raw {
			if n, ok := toFloat(g); ok {
				item.GenreIDs = append(item.GenreIDs, int(n))
			}
		}
	}

	if kind == models.KindSeries {
		return &models.Series{CatalogItem: item}, true
	}
	return &models.Film{CatalogItem: item, Runtime: int(numberField(doc, "runtime"))}, true
}

func stringField(doc map[string]interface{}, key string) string {
	if s, ok := doc[key].(string); ok {
		return s
	}
	return ""
}

// numberField reads a numeric field. Typesense document ids are strings.
func numberField(doc map[string]interface{}, key string) float64 {
	n, _ := toFloat(doc[key])
	return n
}

func toFloat(v interface{}) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	case string:
		f, err := strconv.ParseFloat(n, 64)
		return f, err == nil
	}
	return 0, false
}
