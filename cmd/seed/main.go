package main

import (
	"context"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"

	"fundamental_metrics/pkg/core/refresh"
	"fundamental_metrics/pkg/core/store"
)

// Bootstrap: creates the schema, seeds the configuration tables, and runs a
// full refresh so derived series exist for any facts already loaded.
func main() {
	godotenv.Load()

	ctx := context.Background()
	if err := store.InitDB(ctx); err != nil {
		log.Fatal().Err(err).Msg("Failed to initialize database")
	}
	defer store.Close()

	if err := store.EnsureSchema(ctx); err != nil {
		log.Fatal().Err(err).Msg("Failed to ensure schema")
	}
	if err := store.SeedDefaults(ctx); err != nil {
		log.Fatal().Err(err).Msg("Failed to seed defaults")
	}

	orch := refresh.New(store.NewFactRepo(), store.NewConfigRepo())
	if err := orch.RefreshAll(ctx); err != nil {
		log.Fatal().Err(err).Msg("Post-seed refresh failed")
	}

	log.Info().Msg("Seed complete")
}
