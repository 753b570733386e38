package main

import (
	"context"
	"flag"
	"os"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"

	"fundamental_metrics/pkg/core/refresh"
	"fundamental_metrics/pkg/core/store"
)

// Batch refresher: recomputes derived series for one entity or for all.
func main() {
	godotenv.Load()

	ticker := flag.String("ticker", "", "refresh a single entity (default: all)")
	flag.Parse()

	ctx := context.Background()
	if err := store.InitDB(ctx); err != nil {
		log.Fatal().Err(err).Msg("Failed to initialize database")
	}
	defer store.Close()

	orch := refresh.New(store.NewFactRepo(), store.NewConfigRepo())

	if *ticker != "" {
		if err := orch.RefreshEntity(ctx, *ticker); err != nil {
			log.Error().Err(err).Str("ticker", *ticker).Msg("Refresh failed")
			os.Exit(1)
		}
		log.Info().Str("ticker", *ticker).Msg("Refresh complete")
		return
	}

	if err := orch.RefreshAll(ctx); err != nil {
		log.Error().Err(err).Msg("Refresh failed")
		os.Exit(1)
	}
}
