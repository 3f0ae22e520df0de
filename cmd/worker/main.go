package main

import (
	"context"
	"log"
	"strings"
	"time"

	"ariadne/internal/activities"
	"ariadne/internal/config"
	"ariadne/internal/storage"
	"ariadne/internal/workflows"

	"github.com/joho/godotenv"
	"go.temporal.io/sdk/client"
	"go.temporal.io/sdk/worker"
)

func main() {
	_ = godotenv.Load(".env")
	cfg := config.Load()
	c, err := client.Dial(client.Options{HostPort: cfg.TemporalAddress})
	if err != nil {
		log.Fatal(err)
	}
	defer c.Close()

	w := worker.New(c, cfg.TemporalTaskQueue, worker.Options{})
	workflows.Register(w)
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	db, err := storage.NewDB(ctx, cfg.PostgresURL)
	if err != nil {
		log.Fatal(err)
	}
	defer db.Close()
	if err := storage.EnsureSchema(ctx, db); err != nil {
		log.Fatal(err)
	}
	a, err := activities.New(cfg, db)
	if err != nil {
		log.Fatal(err)
	}
	activities.Register(w, a)

	startBackgroundWorkflows(c, cfg)

	log.Printf("ariadne worker listening on %s queue=%s llm_providers=%q", cfg.TemporalAddress, cfg.TemporalTaskQueue, cfg.LLMProviders)
	if err := w.Run(worker.InterruptCh()); err != nil {
		log.Fatal(err)
	}
}

// startBackgroundWorkflows launches the discovery cadence and publication scan
// loops. Both use stable workflow IDs, so an already running loop is left
// alone.
func startBackgroundWorkflows(c client.Client, cfg config.Config) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	providerCount := 0
	for _, part := range strings.Split(cfg.LLMProviders, "|") {
		if strings.TrimSpace(part) != "" {
			providerCount++
		}
	}
	if providerCount == 0 {
		providerCount = 1
	}

	if _, err := c.ExecuteWorkflow(ctx, client.StartWorkflowOptions{
		ID:        "discovery-cadence",
		TaskQueue: cfg.TemporalTaskQueue,
	}, workflows.DiscoveryCadenceWorkflow, workflows.DiscoveryCadenceInput{
		CadenceHours:    cfg.DiscoveryCadenceHrs,
		MaxTerms:        cfg.MaxTermsPerRun,
		MaxPromotions:   cfg.MaxPromotionsPerRun,
		LLMProviders:    providerCount,
		CooldownSeconds: cfg.ProviderCooldownSecs,
	}); err != nil {
		log.Printf("discovery cadence not started: %v", err)
	}

	if _, err := c.ExecuteWorkflow(ctx, client.StartWorkflowOptions{
		ID:        "publication-scan",
		TaskQueue: cfg.TemporalTaskQueue,
	}, workflows.PublicationScanWorkflow, workflows.PublicationScanInput{
		ScanIntervalHours: cfg.ScanIntervalHours,
		SendWindowHours:   cfg.SendWindowHours,
		SendWindowLimit:   cfg.SendWindowLimit,
		LLMProviders:      providerCount,
		CooldownSeconds:   cfg.ProviderCooldownSecs,
	}); err != nil {
		log.Printf("publication scan not started: %v", err)
	}
}
