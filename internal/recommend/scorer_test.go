package recommend

import (
	"math/rand/v2"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/filmvibe/app-discover-api/internal/models"
)

func testVibe() *Vibe {
	return &Vibe{
		ID:        "feel-good",
		Primary:   []int{35, 10751},
		Secondary: []int{16},
		Anti:      []int{27, 53},
	}
}

func newFilm(id int64, genres []int, pop, rating float64, date string, runtime int) *models.Film {
	return &models.Film{
		CatalogItem: models.CatalogItem{
			ID: id, GenreIDs: genres, Popularity: pop, VoteAverage: rating,
			ReleaseDate: date, PosterPath: "/poster.jpg",
		},
		Runtime: runtime,
	}
}

func newSeries(id int64, genres []int, pop, rating float64, date string) *models.Series {
	return &models.Series{CatalogItem: models.CatalogItem{
		ID: id, GenreIDs: genres, Popularity: pop, VoteAverage: rating,
		ReleaseDate: date, PosterPath: "/poster.jpg",
	}}
}

func TestScoreGenreAffinity(t *testing.T) {
	tests := []struct {
		name   string
		genres []int
		want   float64
	}{
		{"no overlap", []int{99}, 0},
		{"one primary", []int{35}, 4},
		{"two primary", []int{35, 10751}, 8},
		{"primary and secondary", []int{35, 16}, 6},
		{"anti only", []int{27}, -6},
		{"two anti is a fixed penalty", []int{27, 53}, -6},
		{"primary with anti", []int{35, 27}, -2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, b := Score(newFilm(1, tt.genres, 0, 0, "", 0), ScoringParams{Vibe: testVibe()})
			assert.Equal(t, tt.want, b.Genre)
		})
	}
}

func TestAntiGenreAlwaysScoresLower(t *testing.T) {
	p := ScoringParams{Vibe: testVibe(), Era: models.EraModern, Runtime: models.RuntimeStandard}
	rng := rand.New(rand.NewPCG(1, 2))

	for i := 0; i < 200; i++ {
		pop := rng.Float64() * 1000
		rating := rng.Float64() * 10
		runtime := 60 + rng.IntN(120)
		year := []string{"1985-01-01", "2005-01-01", "2019-01-01", ""}[rng.IntN(4)]

		clean := newFilm(1, []int{99}, pop, rating, year, runtime)
		anti := newFilm(2, []int{99, 27}, pop, rating, year, runtime)

		cs, _ := Score(clean, p)
		as, _ := Score(anti, p)
		require.Less(t, as, cs)
	}
}

func TestScoreEraAndRuntime(t *testing.T) {
	tests := []struct {
		name        string
		c           models.Candidate
		era         models.Era
		runtime     models.RuntimePref
		wantEra     float64
		wantRuntime float64
	}{
		{"era match", newFilm(1, nil, 0, 0, "2015-05-01", 0), models.EraModern, models.RuntimeAny, 2, 0},
		{"era mismatch", newFilm(1, nil, 0, 0, "1995-05-01", 0), models.EraModern, models.RuntimeAny, -1, 0},
		{"era unknown date", newFilm(1, nil, 0, 0, "", 0), models.EraModern, models.RuntimeAny, 0, 0},
		{"era any", newFilm(1, nil, 0, 0, "1950-01-01", 0), models.EraAny, models.RuntimeAny, 0, 0},
		{"classic", newFilm(1, nil, 0, 0, "1989-12-31", 0), models.EraClassic, models.RuntimeAny, 2, 0},
		{"runtime in bucket", newFilm(1, nil, 0, 0, "", 120), "", models.RuntimeStandard, 0, 1.5},
		{"runtime edge belongs to epic too", newFilm(1, nil, 0, 0, "", 120), "", models.RuntimeEpic, 0, 1.5},
		{"runtime outside bucket", newFilm(1, nil, 0, 0, "", 150), "", models.RuntimeShort, 0, -1.5},
		{"runtime unknown", newFilm(1, nil, 0, 0, "", 0), "", models.RuntimeShort, 0, 0},
		{"series ignore runtime", newSeries(1, nil, 0, 0, "2012-01-01"), models.Era2000s, models.RuntimeShort, -1, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, b := Score(tt.c, ScoringParams{Vibe: testVibe(), Era: tt.era, Runtime: tt.runtime})
			assert.Equal(t, tt.wantEra, b.Era)
			assert.Equal(t, tt.wantRuntime, b.Runtime)
		})
	}
}

func TestHiddenGemsFavorsLowPopularity(t *testing.T) {
	blockbuster := newFilm(1, []int{35}, 500, 6.0, "2015-01-01", 100)
	gem := newFilm(2, []int{35}, 5, 8.5, "2015-01-01", 100)

	ranked := Rank([]models.Candidate{blockbuster, gem}, ScoringParams{Vibe: testVibe(), HiddenGems: true})
	require.Len(t, ranked, 2)
	assert.Equal(t, int64(2), ranked[0].ID)

	_, b := Score(blockbuster, ScoringParams{Vibe: testVibe(), HiddenGems: true})
	assert.Less(t, b.Popularity, 0.0)
}

func TestRankTieBreak(t *testing.T) {
	batch := []models.Candidate{
		newSeries(7, nil, 10, 5, ""),
		newFilm(9, nil, 10, 5, "", 0),
		newFilm(7, nil, 10, 5, "", 0),
		newFilm(3, nil, 10, 5, "", 0),
	}
	// equal ratings and popularity give equal scores
	ranked := Rank(batch, ScoringParams{Vibe: testVibe()})

	got := make([]string, len(ranked))
	for i, r := range ranked {
		got[i] = string(r.MediaType) + ":" + strconv.FormatInt(r.ID, 10)
	}
	assert.Equal(t, []string{"movie:3", "movie:7", "tv:7", "movie:9"}, got)
}

func TestRankIsIdempotentTotalOrder(t *testing.T) {
	rng := rand.New(rand.NewPCG(7, 7))
	var batch []models.Candidate
	for i := int64(1); i <= 60; i++ {
		batch = append(batch, newFilm(i, []int{[]int{35, 27, 16, 99}[rng.IntN(4)]}, float64(rng.IntN(5)), float64(rng.IntN(3)), "", 0))
	}

	ranked := Rank(batch, ScoringParams{Vibe: testVibe()})
	again := make([]models.RankedItem, len(ranked))
	copy(again, ranked)
	rng.Shuffle(len(again), func(i, j int) { again[i], again[j] = again[j], again[i] })
	SortRanked(again)

	assert.Equal(t, ranked, again)

	reversed := make([]models.Candidate, len(batch))
	for i, c := range batch {
		reversed[len(batch)-1-i] = c
	}
	assert.Equal(t, ranked, Rank(reversed, ScoringParams{Vibe: testVibe()}))
}

func TestRankRemovesExcluded(t *testing.T) {
	batch := []models.Candidate{
		newFilm(1, []int{35}, 10, 8, "", 0),
		newFilm(2, []int{35}, 10, 8, "", 0),
		newSeries(2, []int{35}, 10, 8, ""),
		newFilm(3, []int{35}, 10, 8, "", 0),
	}
	ranked := Rank(batch, ScoringParams{Vibe: testVibe(), Exclude: []int64{2}})
	for _, r := range ranked {
		assert.NotEqual(t, int64(2), r.ID)
	}
	assert.Len(t, ranked, 2)
}

func TestExcludeDoesNotMutateInput(t *testing.T) {
	ranked := Rank([]models.Candidate{newFilm(1, nil, 1, 1, "", 0), newFilm(2, nil, 2, 2, "", 0)}, ScoringParams{Vibe: testVibe()})
	out := Exclude(ranked, []int64{2})
	require.Len(t, out, 1)
	assert.Equal(t, int64(1), out[0].ID)
	assert.Len(t, ranked, 2)
}

func TestDedupe(t *testing.T) {
	noPoster := newFilm(4, nil, 0, 0, "", 0)
	noPoster.PosterPath = ""

	out := Dedupe([]models.Candidate{
		newFilm(1, nil, 0, 0, "", 0),
		newFilm(1, nil, 99, 0, "", 0),
		newSeries(1, nil, 0, 0, ""),
		noPoster,
	})

	require.Len(t, out, 2)
	assert.Equal(t, models.KindFilm, out[0].Kind())
	assert.Equal(t, 0.0, out[0].Item().Popularity)
	assert.Equal(t, models.KindSeries, out[1].Kind())
}
