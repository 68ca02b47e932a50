package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	_ "github.com/filmvibe/app-discover-api/docs"
	"github.com/filmvibe/app-discover-api/internal/api/routes"
	"github.com/filmvibe/app-discover-api/internal/cache"
	"github.com/filmvibe/app-discover-api/internal/catalog"
	"github.com/filmvibe/app-discover-api/internal/config"
	"github.com/filmvibe/app-discover-api/internal/discover"
	"github.com/filmvibe/app-discover-api/internal/logging"
	"github.com/filmvibe/app-discover-api/internal/observability"
	"github.com/filmvibe/app-discover-api/internal/recommend"
)

// @title           Discover API
// @version         1.0
// @description     Filtered movie/TV discovery and vibe-based recommendations over TMDB or Typesense
// @termsOfService  http://swagger.io/terms/

// @license.name  Apache 2.0
// @license.url   http://www.apache.org/licenses/LICENSE-2.0.html

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		logging.Fatal().Err(err).Msg("invalid configuration")
	}

	logging.Init(logging.Config{
		Level:      cfg.Log.Level,
		Format:     cfg.Log.Format,
		File:       cfg.Log.File,
		MaxSizeMB:  cfg.Log.MaxSizeMB,
		MaxBackups: cfg.Log.MaxBackups,
	})
	gin.SetMode(cfg.GinMode)

	observability.InitTracer(cfg)
	defer observability.ShutdownTracer()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	source := newSource(cfg)
	store := newStore(ctx, cfg)
	registry := recommend.DefaultRegistry()

	opts := []recommend.Option{
		recommend.WithFetchPages(cfg.Recommend.FetchPages),
		recommend.WithShuffler(recommend.NewSeededShuffler(cfg.Recommend.ShuffleSeed)),
	}
	if cfg.GeminiAPIKey != "" {
		resolver, err := recommend.NewGeminiMoodResolver(ctx, cfg.GeminiAPIKey, cfg.GeminiChatModel, registry)
		if err != nil {
			logging.Warn().Err(err).Msg("mood resolution disabled")
		} else {
			opts = append(opts, recommend.WithMoodResolver(resolver))
		}
	}
	engine := recommend.NewEngine(source, store, registry, opts...)

	r := routes.SetupRouter(cfg, routes.Deps{
		Catalog:   source,
		Discover:  discover.NewService(source),
		Recommend: engine,
		Cache:     engine,
	})

	srv := &http.Server{
		Addr:              ":" + cfg.ServerPort,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logging.Info().
			Str("port", cfg.ServerPort).
			Str("catalog", source.Name()).
			Str("cache", cfg.Cache.Backend).
			Msg("server started")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logging.Fatal().Err(err).Msg("server failed")
		}
	}()

	<-ctx.Done()
	logging.Info().Msg("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logging.Error().Err(err).Msg("graceful shutdown")
	}
}

func newSource(cfg *config.Config) catalog.Source {
	if cfg.CatalogBackend == config.BackendTypesense {
		return catalog.NewTypesenseSource(cfg.Typesense)
	}
	return catalog.NewTMDBClient(cfg.TMDB)
}

func newStore(ctx context.Context, cfg *config.Config) cache.Store {
	if cfg.Cache.Backend == config.CacheRedis {
		client := cache.NewRedisClient(cfg.Redis)
		if err := client.Ping(ctx).Err(); err != nil {
			logging.Fatal().Err(err).Str("addr", cfg.Redis.Addr).Msg("redis unreachable")
		}
		return cache.NewRedisStore(client, cfg.Cache.TTL)
	}

	store := cache.NewMemoryStore(cfg.Cache.TTL, cfg.Cache.MaxEntries)
	store.StartJanitor(ctx, cfg.Cache.Sweep)
	return store
}
