package main

import (
	"context"
	"log"
	"os"
	"strings"

	"github.com/joho/godotenv"

	"github.com/draftmill/draftmill/internal/config"
	"github.com/draftmill/draftmill/internal/llm"
	"github.com/draftmill/draftmill/internal/server"
	"github.com/draftmill/draftmill/internal/store"
	"github.com/draftmill/draftmill/internal/youtube"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using defaults")
	}

	cfgPath := os.Getenv("CONFIG_PATH")
	if cfgPath == "" {
		cfgPath = "config/config.toml"
	}
	cfg, err := config.Load(cfgPath)
	if err != nil {
		log.Printf("Could not load %s: %v. Using defaults", cfgPath, err)
		cfg = config.Default()
	}
	cfg.ApplyEnv()

	ctx := context.Background()

	var sup *llm.Supervisor
	if strings.ToLower(cfg.LLM.Provider) == "ollama" {
		sup = llm.NewSupervisor(cfg.LLM.BaseURL)
		if err := sup.EnsureRunning(ctx); err != nil {
			log.Fatalf("Local model service unavailable: %v", err)
		}
		if err := sup.EnsureModel(ctx, cfg.LLM.Model); err != nil {
			log.Fatalf("Model %s unavailable: %v", cfg.LLM.Model, err)
		}
	}

	llmClient, err := llm.NewClient(ctx, cfg.LLM)
	if err != nil {
		log.Fatalf("Failed to initialize LLM client: %v", err)
	}

	var yt *youtube.Client
	if cfg.YouTube.APIKey != "" {
		yt, err = youtube.NewClient(ctx, cfg.YouTube.APIKey, cfg.YouTube.MaxResults)
		if err != nil {
			log.Fatalf("Failed to initialize YouTube client: %v", err)
		}
	} else {
		log.Println("YOUTUBE_API_KEY not set; fetch will only serve cached results")
	}

	st := store.New(cfg.Storage.CacheDir, cfg.Storage.OutlineDir)

	srv := server.New(cfg, llmClient, yt, st, sup)
	r := srv.SetupRouter()

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	log.Printf("Starting server on port %s", port)
	if err := r.Run(":" + port); err != nil {
		log.Fatal(err)
	}
}
