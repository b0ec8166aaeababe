package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"

	"github.com/swasthly/healthassist/internal/adapters/directory"
	"github.com/swasthly/healthassist/internal/adapters/search"
	"github.com/swasthly/healthassist/internal/infrastructure/clients/typesense"
	"github.com/swasthly/healthassist/internal/infrastructure/observability"
	"github.com/swasthly/healthassist/pkg/config"
)

func main() {
	var reset bool
	var intervalFlag string
	flag.BoolVar(&reset, "reset", false, "delete existing Typesense collection before reindexing")
	flag.StringVar(&intervalFlag, "interval", "", "repeat interval for reindexing (e.g. 6h, 30m)")
	flag.Parse()

	_ = godotenv.Load()
	observability.InitLogger("healthassist-indexer", os.Getenv("APP_ENV"))

	intervalValue := strings.TrimSpace(intervalFlag)
	if intervalValue == "" {
		intervalValue = strings.TrimSpace(os.Getenv("REINDEX_INTERVAL"))
	}

	var interval time.Duration
	var err error
	if intervalValue != "" {
		interval, err = time.ParseDuration(intervalValue)
		if err != nil {
			log.Fatal().Str("interval", intervalValue).Err(err).Msg("Invalid interval")
		}
		if interval <= 0 {
			log.Fatal().Msg("Interval must be greater than zero")
		}
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	for {
		if err := indexOnce(ctx, reset); err != nil {
			log.Error().Err(err).Msg("Reindex failed")
		}

		if interval <= 0 {
			break
		}

		reset = false
		log.Info().Dur("interval", interval).Msg("Reindex complete, waiting for next run")

		select {
		case <-ctx.Done():
			log.Info().Msg("Reindexer shutting down")
			return
		case <-time.After(interval):
		}
	}
}

func indexOnce(ctx context.Context, reset bool) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	tsClient, err := typesense.NewClient(&cfg.Typesense)
	if err != nil {
		return err
	}

	if reset || os.Getenv("RESET_TYPESENSE") == "true" {
		log.Info().Msg("Deleting pharmacies collection before reindex")
		if _, err := tsClient.Client().Collection(search.PharmaciesCollection).Delete(ctx); err != nil {
			log.Warn().Err(err).Msg("Failed to delete collection")
		}
	}

	adapter := search.NewTypesenseAdapter(tsClient)
	if err := adapter.InitSchema(ctx); err != nil {
		return err
	}

	pharmacies, err := directory.NewSeedAdapter().List(ctx)
	if err != nil {
		return err
	}

	log.Info().Int("count", len(pharmacies)).Msg("Indexing pharmacies")

	for _, pharmacy := range pharmacies {
		if pharmacy == nil {
			continue
		}
		if err := adapter.Index(ctx, pharmacy); err != nil {
			log.Error().Str("id", pharmacy.ID).Err(err).Msg("Failed to index pharmacy")
		} else {
			log.Info().Str("name", pharmacy.Name).Msg("Indexed")
		}
	}

	log.Info().Msg("Indexing complete")
	return nil
}
