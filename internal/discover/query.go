// Package discover maps user filters onto the catalog vocabulary and merges
// per-kind result pages.
package discover

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/filmvibe/app-discover-api/internal/catalog"
	"github.com/filmvibe/app-discover-api/internal/models"
)

type kindFields struct {
	dateFrom, dateTo, exactYear string
	releaseSort                 string
	titleSort                   string
	revenueSort                 string
}

var fieldsByKind = map[models.ContentKind]kindFields{
	models.KindFilm: {
		dateFrom:    catalog.ParamMovieDateFrom,
		dateTo:      catalog.ParamMovieDateTo,
		exactYear:   catalog.ParamMovieYear,
		releaseSort: "primary_release_date",
		titleSort:   "original_title.asc",
		revenueSort: "revenue.desc",
	},
	models.KindSeries: {
		dateFrom:    catalog.ParamTVDateFrom,
		dateTo:      catalog.ParamTVDateTo,
		exactYear:   catalog.ParamTVYear,
		releaseSort: "first_air_date",
		titleSort:   "original_name.asc",
		revenueSort: string(models.SortPopularityDesc),
	},
}

// BuildParams maps f to the flat upstream parameter set for one concrete
// kind. Absent filters are omitted. The result is a fresh map on every call.
func BuildParams(f models.DiscoverFilters, kind models.ContentKind) map[string]string {
	fields, ok := fieldsByKind[kind]
	if !ok {
		fields = fieldsByKind[models.KindFilm]
	}

	params := make(map[string]string)

	if len(f.Genres) > 0 {
		sep := catalog.GenreSepAll
		if f.GenreMatch == models.GenreMatchAny {
			sep = catalog.GenreSepAny
		}
		params[catalog.ParamWithGenres] = joinInts(f.Genres, sep)
	}
	if len(f.ExcludedGenres) > 0 {
		params[catalog.ParamWithoutGenres] = joinInts(f.ExcludedGenres, catalog.GenreSepAll)
	}

	switch {
	case f.YearFrom != nil && f.YearTo != nil:
		params[fields.dateFrom] = fmt.Sprintf("%04d-01-01", *f.YearFrom)
		params[fields.dateTo] = fmt.Sprintf("%04d-12-31", *f.YearTo)
	case f.YearFrom != nil:
		params[fields.exactYear] = strconv.Itoa(*f.YearFrom)
	case f.YearTo != nil:
		params[fields.dateTo] = fmt.Sprintf("%04d-12-31", *f.YearTo)
	}

	if f.RatingMin != nil {
		params[catalog.ParamVoteAverage] = strconv.FormatFloat(*f.RatingMin, 'f', -1, 64)
	}
	if f.VoteCountMin != nil {
		params[catalog.ParamVoteCount] = strconv.Itoa(*f.VoteCountMin)
	}
	if f.Language != "" {
		params[catalog.ParamLanguage] = f.Language
	}
	if f.RuntimeMin != nil {
		params[catalog.ParamRuntimeMin] = strconv.Itoa(*f.RuntimeMin)
	}
	if f.RuntimeMax != nil {
		params[catalog.ParamRuntimeMax] = strconv.Itoa(*f.RuntimeMax)
	}

	params[catalog.ParamSortBy] = upstreamSort(f.SortBy, fields)

	page := f.Page
	if page < 1 {
		page = 1
	}
	params[catalog.ParamPage] = strconv.Itoa(page)

	return params
}

func upstreamSort(key models.SortKey, fields kindFields) string {
	switch key {
	case models.SortReleaseDateDesc:
		return fields.releaseSort + ".desc"
	case models.SortReleaseDateAsc:
		return fields.releaseSort + ".asc"
	case models.SortTitleAsc:
		return fields.titleSort
	case models.SortRevenueDesc:
		return fields.revenueSort
	case "":
		return string(models.SortPopularityDesc)
	}
	return string(key)
}

func joinInts(ids []int, sep string) string {
	parts := make([]string, len(ids))
	for i, id := range ids {
		parts[i] = strconv.Itoa(id)
	}
	return strings.Join(parts, sep)
}
