// Package catalog talks to the upstream film/series catalog. Every backend
// accepts the same flat parameter vocabulary (TMDB discover names) and returns
// one page of candidates per call.
package catalog

import (
	"context"
	"errors"
	"fmt"

	"github.com/filmvibe/app-discover-api/internal/models"
)

// Parameter names understood by every Source.
const (
	ParamWithGenres    = "with_genres"
	ParamWithoutGenres = "without_genres"
	ParamVoteAverage   = "vote_average.gte"
	ParamVoteCount     = "vote_count.gte"
	ParamLanguage      = "with_original_language"
	ParamRuntimeMin    = "with_runtime.gte"
	ParamRuntimeMax    = "with_runtime.lte"
	ParamSortBy        = "sort_by"
	ParamPage          = "page"

	ParamMovieDateFrom = "primary_release_date.gte"
	ParamMovieDateTo   = "primary_release_date.lte"
	ParamMovieYear     = "primary_release_year"

	ParamTVDateFrom = "first_air_date.gte"
	ParamTVDateTo   = "first_air_date.lte"
	ParamTVYear     = "first_air_date_year"
)

// MaxPage is the last discover page upstream catalogs serve.
const MaxPage = 500

// Genre list separators: all-of and any-of.
const (
	GenreSepAll = ","
	GenreSepAny = "|"
)

var (
	ErrUnsupportedKind = errors.New("catalog: unsupported content kind")
	ErrUnavailable     = errors.New("catalog: upstream unavailable")
)

// StatusError is a non-200 upstream answer.
type StatusError struct {
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("catalog: upstream returned %d: %s", e.StatusCode, e.Body)
}

// Retryable reports whether a repeat of the same request may succeed.
func (e *StatusError) Retryable() bool {
	return e.StatusCode == 429 || e.StatusCode >= 500
}

// Source fetches discover pages from a catalog backend.
type Source interface {
	// Name identifies the backend in logs and metrics.
	Name() string
	// Discover returns one page for kind. params uses the Param* names.
	Discover(ctx context.Context, kind models.ContentKind, params map[string]string) (*models.CatalogPage, error)
	// Ping checks backend reachability.
	Ping(ctx context.Context) error
}

func checkKind(kind models.ContentKind) error {
	if kind != models.KindFilm && kind != models.KindSeries {
		return fmt.Errorf("%w: %q", ErrUnsupportedKind, kind)
	}
	return nil
}
