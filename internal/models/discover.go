package models

import (
	"strconv"
	"strings"

	"github.com/filmvibe/app-discover-api/internal/utils"
)

const (
	minYear    = 1870
	maxYear    = 2100
	maxPage    = 500
	maxRuntime = 1000
)

// DiscoverRequest is the query-string form of a discovery request.
// @Description Filters for catalog discovery across movies and series.
type DiscoverRequest struct {
	// movie, tv or all (default: movie)
	MediaType ContentKind `form:"media_type" example:"all" enums:"movie,tv,all"`
	// Comma-separated genre ids, all must match
	Genres string `form:"genres" example:"35,10751"`
	// Comma-separated genre ids to exclude
	WithoutGenres string `form:"without_genres" example:"27"`
	// First release year (inclusive)
	YearFrom *int `form:"year_from" example:"2000"`
	// Last release year (inclusive)
	YearTo *int `form:"year_to" example:"2010"`
	// Minimum average rating (0-10)
	RatingMin *float64 `form:"rating_min" example:"7"`
	// Minimum vote count
	VoteCountMin *int `form:"vote_count_min" example:"100"`
	// ISO 639-1 original language
	Language string `form:"language" example:"en"`
	// Sort order (default: popularity.desc)
	SortBy SortKey `form:"sort_by" binding:"omitempty,sortkey" example:"vote_average.desc"`
	// Minimum runtime in minutes
	RuntimeMin *int `form:"runtime_min" example:"90"`
	// Maximum runtime in minutes
	RuntimeMax *int `form:"runtime_max" example:"120"`
	// Page number (default: 1)
	Page int `form:"page" example:"1"`
}

// DiscoverFilters is the validated, typed filter set the query builder consumes.
type DiscoverFilters struct {
	Genres         []int
	GenreMatch     GenreMatch
	ExcludedGenres []int
	YearFrom       *int
	YearTo         *int
	RatingMin      *float64
	VoteCountMin   *int
	Language       string
	SortBy         SortKey
	RuntimeMin     *int
	RuntimeMax     *int
	Page           int
}

// Validate applies defaults and converts the request into filters.
// Malformed values are rejected, never coerced.
func (r *DiscoverRequest) Validate() (ContentKind, DiscoverFilters, error) {
	var f DiscoverFilters

	if r.MediaType == "" {
		r.MediaType = KindFilm
	}
	if !r.MediaType.IsValid() {
		return "", f, ErrInvalidMediaType
	}

	genres, err := ParseIntList(r.Genres)
	if err != nil {
		return "", f, ErrInvalidGenre
	}
	excluded, err := ParseIntList(r.WithoutGenres)
	if err != nil {
		return "", f, ErrInvalidGenre
	}
	f.Genres = genres
	f.GenreMatch = GenreMatchAll
	f.ExcludedGenres = excluded

	if r.YearFrom != nil && (*r.YearFrom < minYear || *r.YearFrom > maxYear) {
		return "", f, ErrInvalidYear
	}
	if r.YearTo != nil && (*r.YearTo < minYear || *r.YearTo > maxYear) {
		return "", f, ErrInvalidYear
	}
	if r.YearFrom != nil && r.YearTo != nil && *r.YearFrom > *r.YearTo {
		return "", f, ErrInvalidYear
	}
	f.YearFrom, f.YearTo = r.YearFrom, r.YearTo

	if r.RatingMin != nil && (*r.RatingMin < 0 || *r.RatingMin > 10) {
		return "", f, ErrInvalidRating
	}
	f.RatingMin = r.RatingMin

	if r.VoteCountMin != nil && *r.VoteCountMin < 0 {
		return "", f, ErrInvalidVoteCount
	}
	f.VoteCountMin = r.VoteCountMin

	if r.Language != "" {
		code, ok := utils.NormalizeLanguageCode(r.Language)
		if !ok {
			return "", f, ErrInvalidLanguage
		}
		f.Language = code
	}

	if r.SortBy == "" {
		r.SortBy = SortPopularityDesc
	}
	if !r.SortBy.IsValid() {
		return "", f, ErrInvalidSort
	}
	f.SortBy = r.SortBy

	for _, v := range []*int{r.RuntimeMin, r.RuntimeMax} {
		if v != nil && (*v < 0 || *v > maxRuntime) {
			return "", f, ErrInvalidRuntime
		}
	}
	if r.RuntimeMin != nil && r.RuntimeMax != nil && *r.RuntimeMin > *r.RuntimeMax {
		return "", f, ErrInvalidRuntime
	}
	f.RuntimeMin, f.RuntimeMax = r.RuntimeMin, r.RuntimeMax

	if r.Page == 0 {
		r.Page = 1
	}
	if r.Page < 1 || r.Page > maxPage {
		return "", f, ErrInvalidPage
	}
	f.Page = r.Page

	return r.MediaType, f, nil
}

// ParseIntList parses a comma-separated list of positive integers. Empty
// input yields nil.
func ParseIntList(s string) ([]int, error) {
	if strings.TrimSpace(s) == "" {
		return nil, nil
	}
	parts := strings.Split(s, ",")
	out := make([]int, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		n, err := strconv.Atoi(p)
		if err != nil {
			return nil, err
		}
		if n <= 0 {
			return nil, strconv.ErrRange
		}
		out = append(out, n)
	}
	return out, nil
}

// DiscoverResponse is the merged discovery result.
type DiscoverResponse struct {
	Results      []ResultItem  `json:"results"`
	Page         int           `json:"page"`
	TotalResults int           `json:"total_results"`
	TotalPages   int           `json:"total_pages"`
	Partial      bool          `json:"partial"`
	FailedKinds  []ContentKind `json:"failed_kinds,omitempty"`
	Timing       TimingMeta    `json:"timing"`
}

// TimingMeta carries request timings in milliseconds.
type TimingMeta struct {
	TotalMs    float64 `json:"total_ms"`
	UpstreamMs float64 `json:"upstream_ms,omitempty"`
	RankingMs  float64 `json:"ranking_ms,omitempty"`
}
