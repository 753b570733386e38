package main

import (
	"context"
	"fmt"
	"net/http"
	"os"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"gopkg.in/yaml.v2"

	"fundamental_metrics/pkg/api/admin"
	"fundamental_metrics/pkg/api/scores"
	"fundamental_metrics/pkg/api/series"
	"fundamental_metrics/pkg/core/refresh"
	"fundamental_metrics/pkg/core/store"
)

type appConfig struct {
	Listen   string `yaml:"listen"`
	LogLevel string `yaml:"log_level"`
}

func main() {
	// Load environment variables
	godotenv.Load()

	cfg := appConfig{Listen: ":8080", LogLevel: "info"}
	if data, err := os.ReadFile("config/app.yaml"); err == nil {
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			log.Fatal().Err(err).Msg("Invalid config/app.yaml")
		}
	}

	if level, err := zerolog.ParseLevel(cfg.LogLevel); err == nil {
		zerolog.SetGlobalLevel(level)
	}

	ctx := context.Background()
	if err := store.InitDB(ctx); err != nil {
		log.Fatal().Err(err).Msg("Failed to initialize database")
	}
	defer store.Close()

	if err := store.EnsureSchema(ctx); err != nil {
		log.Fatal().Err(err).Msg("Failed to ensure schema")
	}

	facts := store.NewFactRepo()
	config := store.NewConfigRepo()
	orch := refresh.New(facts, config)

	// Series endpoints (compute-then-read)
	seriesHandler := series.NewHandler(orch, facts)
	http.HandleFunc("/api/series/derived", seriesHandler.HandleDerived)

	// Score endpoints
	scoresHandler := scores.NewHandler(orch, facts, config)
	http.HandleFunc("/api/scores", scoresHandler.HandleScores)

	// Admin endpoints
	adminHandler := admin.NewHandler(config)
	http.HandleFunc("/api/admin/weights", adminHandler.HandleWeights)

	fmt.Printf("API server starting on %s...\n", cfg.Listen)
	fmt.Println("  - GET  /api/series/derived")
	fmt.Println("  - GET  /api/scores")
	fmt.Println("  - GET  /api/admin/weights")
	fmt.Println("  - POST /api/admin/weights")

	if err := http.ListenAndServe(cfg.Listen, nil); err != nil {
		log.Fatal().Err(err).Msg("Server failed to start")
	}
}
