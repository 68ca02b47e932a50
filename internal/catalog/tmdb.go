package catalog

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/avast/retry-go/v4"
	"github.com/goccy/go-json"
	gobreaker "github.com/sony/gobreaker/v2"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/time/rate"

	"github.com/filmvibe/app-discover-api/internal/config"
	"github.com/filmvibe/app-discover-api/internal/logging"
	"github.com/filmvibe/app-discover-api/internal/metrics"
	"github.com/filmvibe/app-discover-api/internal/models"
	"github.com/filmvibe/app-discover-api/internal/utils"
)

const (
	tmdbBackend     = "tmdb"
	maxResponseSize = 4 << 20
)

// TMDBClient is a Source backed by the TMDB v3 discover API. Calls are rate
// limited, retried with backoff on 429/5xx and network errors, and guarded by
// a circuit breaker.
type TMDBClient struct {
	httpClient *http.Client
	baseURL    string
	apiKey     string
	language   string
	attempts   uint
	retryDelay time.Duration
	limiter    *rate.Limiter
	breaker    *gobreaker.CircuitBreaker[[]byte]
	tracer     trace.Tracer
}

type TMDBOption func(*TMDBClient)

// WithHTTPClient replaces the default http client.
func WithHTTPClient(c *http.Client) TMDBOption {
	return func(t *TMDBClient) { t.httpClient = c }
}

// WithRetryDelay sets the base backoff delay.
func WithRetryDelay(d time.Duration) TMDBOption {
	return func(t *TMDBClient) { t.retryDelay = d }
}

func NewTMDBClient(cfg config.TMDBConfig, opts ...TMDBOption) *TMDBClient {
	attempts := cfg.MaxRetries
	if attempts < 1 {
		attempts = 1
	}
	limit := rate.Limit(cfg.RateLimit)
	if cfg.RateLimit <= 0 {
		limit = rate.Inf
	}

	c := &TMDBClient{
		httpClient: &http.Client{Timeout: cfg.Timeout},
		baseURL:    cfg.BaseURL,
		apiKey:     cfg.APIKey,
		language:   cfg.Language,
		attempts:   uint(attempts),
		retryDelay: 200 * time.Millisecond,
		limiter:    rate.NewLimiter(limit, max(1, int(cfg.RateLimit))),
		tracer:     otel.Tracer("catalog"),
	}
	for _, opt := range opts {
		opt(c)
	}

	c.breaker = gobreaker.NewCircuitBreaker[[]byte](gobreaker.Settings{
		Name:        tmdbBackend,
		MaxRequests: 1,
		Interval:    time.Minute,
		Timeout:     30 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= 5
		},
		IsSuccessful: func(err error) bool {
			var se *StatusError
			if errors.As(err, &se) {
				return !se.Retryable()
			}
			return err == nil || errors.Is(err, context.Canceled)
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			metrics.CircuitBreakerState.WithLabelValues(name).Set(float64(to))
			logging.Warn().Str("breaker", name).Str("from", from.String()).Str("to", to.String()).Msg("circuit breaker state changed")
		},
	})

	return c
}

func (c *TMDBClient) Name() string { return tmdbBackend }

type tmdbDiscoverResponse struct {
	Page         int          `json:"page"`
	Results      []tmdbResult `json:"results"`
	TotalPages   int          `json:"total_pages"`
	TotalResults int          `json:"total_results"`
}

type tmdbResult struct {
	ID               int64   `json:"id"`
	Title            string  `json:"title"`
	Name             string  `json:"name"`
	Overview         string  `json:"overview"`
	GenreIDs         []int   `json:"genre_ids"`
	Popularity       float64 `json:"popularity"`
	VoteAverage      float64 `json:"vote_average"`
	VoteCount        int     `json:"vote_count"`
	ReleaseDate      string  `json:"release_date"`
	FirstAirDate     string  `json:"first_air_date"`
	PosterPath       *string `json:"poster_path"`
	OriginalLanguage string  `json:"original_language"`
	Runtime          int     `json:"runtime"`
}

func (r tmdbResult) candidate(kind models.ContentKind) models.Candidate {
	item := models.CatalogItem{
		ID:               r.ID,
		Title:            r.Title,
		Overview:         utils.PlainOverview(r.Overview),
		GenreIDs:         r.GenreIDs,
		Popularity:       r.Popularity,
		VoteAverage:      r.VoteAverage,
		VoteCount:        r.VoteCount,
		ReleaseDate:      r.ReleaseDate,
		OriginalLanguage: r.OriginalLanguage,
	}
	if r.PosterPath != nil {
		item.PosterPath = *r.PosterPath
	}
	if kind == models.KindSeries {
		item.Title = r.Name
		item.ReleaseDate = r.FirstAirDate
		return &models.Series{CatalogItem: item}
	}
	return &models.Film{CatalogItem: item, Runtime: r.Runtime}
}

// Discover calls /discover/{movie|tv}.
func (c *TMDBClient) Discover(ctx context.Context, kind models.ContentKind, params map[string]string) (*models.CatalogPage, error) {
	if err := checkKind(kind); err != nil {
		return nil, err
	}

	start := time.Now()
	body, err := c.get(ctx, string(kind), "/discover/"+string(kind), params)
	metrics.UpstreamRequestDuration.WithLabelValues(tmdbBackend, string(kind)).Observe(time.Since(start).Seconds())
	if err != nil {
		metrics.UpstreamRequestsTotal.WithLabelValues(tmdbBackend, string(kind), "error").Inc()
		return nil, err
	}

	var resp tmdbDiscoverResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		metrics.UpstreamRequestsTotal.WithLabelValues(tmdbBackend, string(kind), "decode_error").Inc()
		return nil, fmt.Errorf("catalog: decode tmdb response: %w", err)
	}
	metrics.UpstreamRequestsTotal.WithLabelValues(tmdbBackend, string(kind), "ok").Inc()

	page := &models.CatalogPage{
		Kind:         kind,
		Items:        make([]models.Candidate, 0, len(resp.Results)),
		Page:         resp.Page,
		TotalResults: resp.TotalResults,
		TotalPages:   resp.TotalPages,
	}
	for _, r := range resp.Results {
		page.Items = append(page.Items, r.candidate(kind))
	}
	return page, nil
}

// MovieRuntime fetches /movie/{id} for the runtime discover pages omit.
// Zero means TMDB has no runtime for the film.
func (c *TMDBClient) MovieRuntime(ctx context.Context, id int64) (int, error) {
	body, err := c.get(ctx, string(models.KindFilm), "/movie/"+strconv.FormatInt(id, 10), nil)
	if err != nil {
		return 0, err
	}

	var details struct {
		Runtime int `json:"runtime"`
	}
	if err := json.Unmarshal(body, &details); err != nil {
		return 0, fmt.Errorf("catalog: decode tmdb movie %d: %w", id, err)
	}
	return details.Runtime, nil
}

// Ping fetches /configuration, the cheapest authenticated endpoint.
func (c *TMDBClient) Ping(ctx context.Context) error {
	_, err := c.get(ctx, "none", "/configuration", nil)
	return err
}

func (c *TMDBClient) get(ctx context.Context, kind, path string, params map[string]string) ([]byte, error) {
	ctx, span := c.tracer.Start(ctx, "tmdb.get", trace.WithAttributes(
		attribute.String("catalog.path", path),
		attribute.String("catalog.kind", kind),
	))
	defer span.End()

	query := url.Values{}
	for k, v := range params {
		query.Set(k, v)
	}
	query.Set("api_key", c.apiKey)
	if c.language != "" {
		query.Set("language", c.language)
	}
	target := c.baseURL + path + "?" + query.Encode()

	body, err := c.breaker.Execute(func() ([]byte, error) {
		return retry.DoWithData(
			func() ([]byte, error) { return c.do(ctx, target) },
			retry.Context(ctx),
			retry.Attempts(c.attempts),
			retry.Delay(c.retryDelay),
			retry.DelayType(retry.BackOffDelay),
			retry.LastErrorOnly(true),
			retry.RetryIf(isRetryable),
			retry.OnRetry(func(n uint, err error) {
				logging.Ctx(ctx).Debug().Uint("attempt", n+1).Str("path", path).Err(err).Msg("retrying catalog request")
			}),
		)
	})
	if err != nil {
		if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
			err = fmt.Errorf("%w: %v", ErrUnavailable, err)
		}
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}
	return body, nil
}

func (c *TMDBClient) do(ctx context.Context, target string) ([]byte, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, retry.Unrecoverable(err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return nil, retry.Unrecoverable(err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseSize))
	if err != nil {
		return nil, err
	}
	if resp.StatusCode != http.StatusOK {
		snippet := string(body)
		if len(snippet) > 200 {
			snippet = snippet[:200]
		}
		return nil, &StatusError{StatusCode: resp.StatusCode, Body: snippet}
	}
	return body, nil
}

func isRetryable(err error) bool {
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return false
	}
	var se *StatusError
	if errors.As(err, &se) {
		return se.Retryable()
	}
	return true
}
