package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func intPtr(v int) *int             { return &v }
func floatPtr(v float64) *float64 { return &v }

func TestDiscoverRequestValidate(t *testing.T) {
	t.Run("defaults", func(t *testing.T) {
		req := &DiscoverRequest{}
		kind, f, err := req.Validate()
		require.NoError(t, err)
		assert.Equal(t, KindFilm, kind)
		assert.Equal(t, SortPopularityDesc, f.SortBy)
		assert.Equal(t, 1, f.Page)
		assert.Equal(t, GenreMatchAll, f.GenreMatch)
		assert.Nil(t, f.Genres)
	})

	t.Run("full filter set", func(t *testing.T) {
		req := &DiscoverRequest{
			MediaType:     KindAll,
			Genres:        "35, 10751",
			WithoutGenres: "27",
			YearFrom:      intPtr(2000),
			YearTo:        intPtr(2010),
			RatingMin:     floatPtr(7),
			VoteCountMin:  intPtr(100),
			Language:      "pt-BR",
			SortBy:        SortRatingDesc,
			RuntimeMin:    intPtr(90),
			RuntimeMax:    intPtr(120),
			Page:          3,
		}
		kind, f, err := req.Validate()
		require.NoError(t, err)
		assert.Equal(t, KindAll, kind)
		assert.Equal(t, []int{35, 10751}, f.Genres)
		assert.Equal(t, []int{27}, f.ExcludedGenres)
		assert.Equal(t, "pt", f.Language)
		assert.Equal(t, 3, f.Page)
	})

	tests := []struct {
		name string
		req  DiscoverRequest
		want error
	}{
		{"unknown media type", DiscoverRequest{MediaType: "music"}, ErrInvalidMediaType},
		{"malformed genre", DiscoverRequest{Genres: "35,abc"}, ErrInvalidGenre},
		{"negative genre", DiscoverRequest{WithoutGenres: "-3"}, ErrInvalidGenre},
		{"inverted years", DiscoverRequest{YearFrom: intPtr(2010), YearTo: intPtr(2000)}, ErrInvalidYear},
		{"year out of range", DiscoverRequest{YearFrom: intPtr(1200)}, ErrInvalidYear},
		{"rating above ten", DiscoverRequest{RatingMin: floatPtr(11)}, ErrInvalidRating},
		{"negative votes", DiscoverRequest{VoteCountMin: intPtr(-1)}, ErrInvalidVoteCount},
		{"bad language", DiscoverRequest{Language: "klingon"}, ErrInvalidLanguage},
		{"bad sort", DiscoverRequest{SortBy: "budget.desc"}, ErrInvalidSort},
		{"inverted runtime", DiscoverRequest{RuntimeMin: intPtr(150), RuntimeMax: intPtr(90)}, ErrInvalidRuntime},
		{"negative page", DiscoverRequest{Page: -2}, ErrInvalidPage},
		{"page beyond upstream limit", DiscoverRequest{Page: 501}, ErrInvalidPage},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := tt.req
			_, _, err := req.Validate()
			assert.ErrorIs(t, err, tt.want)
			assert.True(t, IsInvalidInput(err))
		})
	}
}

func TestParseIntList(t *testing.T) {
	got, err := ParseIntList(" 28 ,12,,16 ")
	require.NoError(t, err)
	assert.Equal(t, []int{28, 12, 16}, got)

	got, err = ParseIntList("")
	require.NoError(t, err)
	assert.Nil(t, got)

	_, err = ParseIntList("1,x")
	assert.Error(t, err)
}

func TestEraAndRuntimeBuckets(t *testing.T) {
	assert.True(t, EraModern.Contains(2015))
	assert.False(t, EraModern.Contains(2009))
	assert.True(t, Era2000s.Contains(2000))
	assert.True(t, Era90s.Contains(1999))
	assert.True(t, EraClassic.Contains(1975))
	assert.False(t, EraClassic.Contains(1990))

	from, to := EraModern.YearBounds(2026)
	assert.Equal(t, 2010, from)
	assert.Equal(t, 2026, to)

	assert.True(t, RuntimeShort.Contains(90))
	assert.True(t, RuntimeStandard.Contains(90))
	assert.True(t, RuntimeStandard.Contains(120))
	assert.False(t, RuntimeStandard.Contains(121))
	assert.True(t, RuntimeEpic.Contains(180))
	assert.True(t, RuntimeAny.Contains(5))
}

func TestSortKeyClientOrderable(t *testing.T) {
	assert.True(t, SortRatingDesc.ClientOrderable())
	assert.True(t, SortReleaseDateAsc.ClientOrderable())
	assert.False(t, SortPopularityDesc.ClientOrderable())
	assert.False(t, SortTitleAsc.ClientOrderable())
}

func TestCatalogItemReleaseYear(t *testing.T) {
	year, ok := CatalogItem{ReleaseDate: "1999-10-15"}.ReleaseYear()
	assert.True(t, ok)
	assert.Equal(t, 1999, year)

	_, ok = CatalogItem{ReleaseDate: ""}.ReleaseYear()
	assert.False(t, ok)
	_, ok = CatalogItem{ReleaseDate: "19x9"}.ReleaseYear()
	assert.False(t, ok)
}

func TestNewResultItem(t *testing.T) {
	film := &Film{CatalogItem: CatalogItem{ID: 7, Title: "Up"}, Runtime: 96}
	item := NewResultItem(film)
	assert.Equal(t, KindFilm, item.MediaType)
	assert.Equal(t, 96, item.Runtime)

	series := &Series{CatalogItem: CatalogItem{ID: 8, Title: "Bluey"}}
	item = NewResultItem(series)
	assert.Equal(t, KindSeries, item.MediaType)
	assert.Zero(t, item.Runtime)
}
