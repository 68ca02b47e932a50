package catalog

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/filmvibe/app-discover-api/internal/config"
	"github.com/filmvibe/app-discover-api/internal/models"
)

const movieBody = `{
  "page": 2,
  "total_pages": 40,
  "total_results": 800,
  "results": [
    {"id": 550, "title": "Fight Club", "overview": "An **insomniac** office worker.", "genre_ids": [18],
     "popularity": 61.4, "vote_average": 8.4, "vote_count": 26280, "release_date": "1999-10-15",
     "poster_path": "/pB8BM7pdSp6B6Ih7QZ4DrQ3PmJK.jpg", "original_language": "en"},
    {"id": 551, "title": "No Poster", "genre_ids": [], "poster_path": null}
  ]
}`

const tvBody = `{
  "page": 1, "total_pages": 1, "total_results": 1,
  "results": [{"id": 1396, "name": "Breaking Bad", "first_air_date": "2008-01-20", "genre_ids": [18, 80],
               "popularity": 300.2, "vote_average": 8.9, "vote_count": 13000, "poster_path": "/bb.jpg"}]
}`

func newTestClient(t *testing.T, handler http.HandlerFunc, retries int) *TMDBClient {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	return NewTMDBClient(config.TMDBConfig{
		APIKey:     "test-key",
		BaseURL:    srv.URL,
		Language:   "en-US",
		Timeout:    2 * time.Second,
		MaxRetries: retries,
	}, WithRetryDelay(time.Millisecond))
}

func TestTMDBDiscoverMovie(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/discover/movie", r.URL.Path)
		assert.Equal(t, "test-key", r.URL.Query().Get("api_key"))
		assert.Equal(t, "35,18", r.URL.Query().Get(ParamWithGenres))
		assert.Equal(t, "2", r.URL.Query().Get(ParamPage))
		w.Write([]byte(movieBody))
	}, 1)

	page, err := client.Discover(context.Background(), models.KindFilm, map[string]string{
		ParamWithGenres: "35,18",
		ParamPage:       "2",
	})
	require.NoError(t, err)

	assert.Equal(t, models.KindFilm, page.Kind)
	assert.Equal(t, 2, page.Page)
	assert.Equal(t, 800, page.TotalResults)
	assert.Equal(t, 40, page.TotalPages)
	require.Len(t, page.Items, 2)

	first := page.Items[0].Item()
	assert.Equal(t, int64(550), first.ID)
	assert.Equal(t, "An insomniac office worker.", first.Overview)
	assert.Equal(t, "1999-10-15", first.ReleaseDate)
	assert.NotEmpty(t, first.PosterPath)
	assert.Empty(t, page.Items[1].Item().PosterPath)
}

func TestTMDBDiscoverSeriesMapsNameAndAirDate(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/discover/tv", r.URL.Path)
		w.Write([]byte(tvBody))
	}, 1)

	page, err := client.Discover(context.Background(), models.KindSeries, nil)
	require.NoError(t, err)
	require.Len(t, page.Items, 1)

	s, ok := page.Items[0].(*models.Series)
	require.True(t, ok)
	assert.Equal(t, "Breaking Bad", s.Title)
	assert.Equal(t, "2008-01-20", s.ReleaseDate)
	assert.Equal(t, models.KindSeries, s.Kind())
}

func TestTMDBRetriesServerErrors(t *testing.T) {
	var calls atomic.Int32
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) < 3 {
			w.WriteHeader(http.StatusBadGateway)
			return
		}
		w.Write([]byte(tvBody))
	}, 3)

	page, err := client.Discover(context.Background(), models.KindSeries, nil)
	require.NoError(t, err)
	assert.Len(t, page.Items, 1)
	assert.Equal(t, int32(3), calls.Load())
}

func TestTMDBDoesNotRetryClientErrors(t *testing.T) {
	var calls atomic.Int32
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte(`{"status_message":"Invalid API key"}`))
	}, 3)

	_, err := client.Discover(context.Background(), models.KindFilm, nil)
	require.Error(t, err)

	var se *StatusError
	require.True(t, errors.As(err, &se))
	assert.Equal(t, http.StatusUnauthorized, se.StatusCode)
	assert.Equal(t, int32(1), calls.Load())
}

func TestTMDBCircuitOpensAfterConsecutiveFailures(t *testing.T) {
	var calls atomic.Int32
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusInternalServerError)
	}, 1)

	for i := 0; i < 5; i++ {
		_, err := client.Discover(context.Background(), models.KindFilm, nil)
		require.Error(t, err)
	}

	_, err := client.Discover(context.Background(), models.KindFilm, nil)
	assert.ErrorIs(t, err, ErrUnavailable)
	assert.Equal(t, int32(5), calls.Load())
}

func TestTMDBRejectsUnknownKind(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("no request expected")
	}, 1)

	_, err := client.Discover(context.Background(), models.KindAll, nil)
	assert.ErrorIs(t, err, ErrUnsupportedKind)
}

func TestTMDBPing(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/configuration", r.URL.Path)
		w.Write([]byte(`{"images":{}}`))
	}, 1)

	assert.NoError(t, client.Ping(context.Background()))
}

func TestTMDBMovieRuntime(t *testing.T) {
	tests := []struct {
		name string
		body string
		want int
	}{
		{"known runtime", `{"id": 550, "runtime": 139}`, 139},
		{"missing runtime", `{"id": 551}`, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
				assert.Equal(t, "/movie/550", r.URL.Path)
				w.Write([]byte(tt.body))
			}, 1)

			got, err := client.MovieRuntime(context.Background(), 550)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
