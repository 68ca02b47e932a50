package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"syscall"

	"github.com/typesense/typesense-go/v3/typesense"

	"github.com/filmvibe/app-discover-api/internal/catalog"
	"github.com/filmvibe/app-discover-api/internal/config"
	"github.com/filmvibe/app-discover-api/internal/logging"
	"github.com/filmvibe/app-discover-api/internal/mirror"
	"github.com/filmvibe/app-discover-api/internal/models"
)

// reindex harvests TMDB discover pages into the Typesense mirror collections.
func main() {
	defaults := mirror.DefaultConfig()

	kind := flag.String("kind", "all", "Kind to mirror: movie, tv, all")
	pages := flag.Int("pages", defaults.Pages, "Upstream pages per kind")
	workers := flag.Int("workers", defaults.Workers, "Parallel page workers")
	minVotes := flag.Int("min-votes", defaults.MinVotes, "Minimum vote count upstream")
	sortBy := flag.String("sort", string(defaults.SortBy), "Upstream sort order")
	dryRun := flag.Bool("dry-run", false, "Fetch without writing to Typesense")
	runtimes := flag.Bool("runtimes", true, "Look up film runtimes (one extra TMDB call per film)")
	flag.Parse()

	cfg, err := config.LoadConfig()
	if err != nil {
		logging.Fatal().Err(err).Msg("invalid configuration")
	}
	logging.Init(logging.Config{Level: cfg.Log.Level, Format: cfg.Log.Format})
	if cfg.TMDB.APIKey == "" {
		logging.Fatal().Msg("TMDB_API_KEY is required to harvest the catalog")
	}

	kinds, err := parseKinds(*kind)
	if err != nil {
		logging.Fatal().Err(err).Str("kind", *kind).Msg("invalid kind")
	}
	sort := models.SortKey(*sortBy)
	if !sort.IsValid() {
		logging.Fatal().Str("sort", *sortBy).Msg("invalid sort")
	}

	client := typesense.NewClient(
		typesense.WithServer(cfg.Typesense.ServerURL()),
		typesense.WithAPIKey(cfg.Typesense.APIKey),
	)

	tmdb := catalog.NewTMDBClient(cfg.TMDB)
	var opts []mirror.IndexerOption
	if *runtimes {
		opts = append(opts, mirror.WithRuntimeLookup(tmdb))
	}

	ix := mirror.NewIndexer(
		tmdb,
		mirror.NewTypesenseWriter(client),
		map[models.ContentKind]string{
			models.KindFilm:   cfg.Typesense.MovieCollection,
			models.KindSeries: cfg.Typesense.SeriesCollection,
		},
		mirror.Config{
			Pages:    *pages,
			Workers:  *workers,
			DryRun:   *dryRun,
			SortBy:   sort,
			MinVotes: *minVotes,
		},
		opts...,
	)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	for _, k := range kinds {
		if err := ix.Run(ctx, k); err != nil {
			ix.LogStats()
			logging.Fatal().Err(err).Str("kind", string(k)).Msg("mirror run failed")
		}
	}
	ix.LogStats()
}

func parseKinds(s string) ([]models.ContentKind, error) {
	k := models.ContentKind(s)
	if !k.IsValid() {
		return nil, models.ErrInvalidMediaType
	}
	return k.Kinds(), nil
}
