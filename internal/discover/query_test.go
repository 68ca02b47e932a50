package discover

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/filmvibe/app-discover-api/internal/catalog"
	"github.com/filmvibe/app-discover-api/internal/models"
)

func intPtr(v int) *int           { return &v }
func floatPtr(v float64) *float64 { return &v }

func TestBuildParams(t *testing.T) {
	tests := []struct {
		name    string
		filters models.DiscoverFilters
		kind    models.ContentKind
		want    map[string]string
	}{
		{
			name:    "defaults only",
			filters: models.DiscoverFilters{Page: 1},
			kind:    models.KindFilm,
			want: map[string]string{
				catalog.ParamSortBy: "popularity.desc",
				catalog.ParamPage:   "1",
			},
		},
		{
			name: "film year range",
			filters: models.DiscoverFilters{
				YearFrom: intPtr(2000), YearTo: intPtr(2010),
				SortBy: models.SortPopularityDesc, Page: 1,
			},
			kind: models.KindFilm,
			want: map[string]string{
				catalog.ParamMovieDateFrom: "2000-01-01",
				catalog.ParamMovieDateTo:   "2010-12-31",
				catalog.ParamSortBy:        "popularity.desc",
				catalog.ParamPage:          "1",
			},
		},
		{
			name:    "film exact year when only year_from",
			filters: models.DiscoverFilters{YearFrom: intPtr(2000), SortBy: models.SortPopularityDesc, Page: 1},
			kind:    models.KindFilm,
			want: map[string]string{
				catalog.ParamMovieYear: "2000",
				catalog.ParamSortBy:    "popularity.desc",
				catalog.ParamPage:      "1",
			},
		},
		{
			name:    "series upper bound only",
			filters: models.DiscoverFilters{YearTo: intPtr(1999), SortBy: models.SortPopularityDesc, Page: 4},
			kind:    models.KindSeries,
			want: map[string]string{
				catalog.ParamTVDateTo: "1999-12-31",
				catalog.ParamSortBy:   "popularity.desc",
				catalog.ParamPage:     "4",
			},
		},
		{
			name: "series field names and sort mapping",
			filters: models.DiscoverFilters{
				YearFrom: intPtr(2005), YearTo: intPtr(2006),
				SortBy: models.SortReleaseDateDesc, Page: 1,
			},
			kind: models.KindSeries,
			want: map[string]string{
				catalog.ParamTVDateFrom: "2005-01-01",
				catalog.ParamTVDateTo:   "2006-12-31",
				catalog.ParamSortBy:     "first_air_date.desc",
				catalog.ParamPage:       "1",
			},
		},
		{
			name: "every threshold",
			filters: models.DiscoverFilters{
				Genres:         []int{35, 10751},
				GenreMatch:     models.GenreMatchAll,
				ExcludedGenres: []int{27},
				RatingMin:      floatPtr(7.5),
				VoteCountMin:   intPtr(100),
				Language:       "ja",
				RuntimeMin:     intPtr(90),
				RuntimeMax:     intPtr(120),
				SortBy:         models.SortRatingDesc,
				Page:           2,
			},
			kind: models.KindFilm,
			want: map[string]string{
				catalog.ParamWithGenres:    "35,10751",
				catalog.ParamWithoutGenres: "27",
				catalog.ParamVoteAverage:   "7.5",
				catalog.ParamVoteCount:     "100",
				catalog.ParamLanguage:      "ja",
				catalog.ParamRuntimeMin:    "90",
				catalog.ParamRuntimeMax:    "120",
				catalog.ParamSortBy:        "vote_average.desc",
				catalog.ParamPage:          "2",
			},
		},
		{
			name:    "any-of genres",
			filters: models.DiscoverFilters{Genres: []int{18, 80}, GenreMatch: models.GenreMatchAny, SortBy: models.SortTitleAsc, Page: 1},
			kind:    models.KindSeries,
			want: map[string]string{
				catalog.ParamWithGenres: "18|80",
				catalog.ParamSortBy:     "original_name.asc",
				catalog.ParamPage:       "1",
			},
		},
		{
			name:    "revenue falls back for series",
			filters: models.DiscoverFilters{SortBy: models.SortRevenueDesc, Page: 1},
			kind:    models.KindSeries,
			want: map[string]string{
				catalog.ParamSortBy: "popularity.desc",
				catalog.ParamPage:   "1",
			},
		},
		{
			name:    "revenue kept for films",
			filters: models.DiscoverFilters{SortBy: models.SortRevenueDesc, Page: 1},
			kind:    models.KindFilm,
			want: map[string]string{
				catalog.ParamSortBy: "revenue.desc",
				catalog.ParamPage:   "1",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, BuildParams(tt.filters, tt.kind))
		})
	}
}

func TestBuildParamsDoesNotShareMaps(t *testing.T) {
	f := models.DiscoverFilters{Page: 1}
	a := BuildParams(f, models.KindFilm)
	a["extra"] = "x"
	b := BuildParams(f, models.KindFilm)
	assert.NotContains(t, b, "extra")
}
