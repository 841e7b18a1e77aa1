package main

import (
	"fmt"
	"net/http"
	"os"
	"time"

	"dealer-pricing/config"
	"dealer-pricing/ingest"
	"dealer-pricing/metrics"
	"dealer-pricing/services"
	"dealer-pricing/storage"
	"dealer-pricing/utils"
)

func main() {
	logger := utils.NewLogger()
	cfg := config.Load()

	logger.Info("=== Dealer pricing daily update starting ===")
	logger.Info("Config — adjust/10k km: %.0f | base sale days: %.0f | batch: %d",
		cfg.AdjustPer10kKm, cfg.BaseSaleDays, cfg.WriteBatchSize)

	store, err := storage.NewPostgresStore(cfg.DSN(), logger)
	if err != nil {
		logger.Error("Failed to connect to PostgreSQL: %v", err)
		logger.Error("Make sure Docker is running: docker compose up -d")
		os.Exit(1)
	}
	defer store.Close()
	store.SetBatchSize(cfg.WriteBatchSize)

	if cfg.MetricsAddr != "" {
		go func() {
			mux := http.NewServeMux()
			mux.Handle("/metrics", metrics.Handler())
			logger.Info("Metrics listening on %s", cfg.MetricsAddr)
			if err := http.ListenAndServe(cfg.MetricsAddr, mux); err != nil {
				logger.Error("Metrics listener failed: %v", err)
			}
		}()
	}

	// Ingestion sources are external collaborators; register them here when
	// linking a scraper or importer build.
	pool := utils.NewWorkerPool(cfg.MaxConcurrency, 0)
	retry := &utils.RetryConfig{MaxAttempts: cfg.MaxRetries, BaseDelay: 2 * time.Second, Logger: logger}
	runner := ingest.NewRunner(store, pool, retry, logger)

	ingestStats := runner.Run()
	logger.Info("Ingestion finished: %d new, %d duplicates, %d errors",
		ingestStats.New, ingestStats.Duplicates, ingestStats.Errors)

	// Snapshot what this run will normalize, for auditing.
	snapshot, err := store.FetchUnprocessed()
	if err != nil {
		logger.Error("Failed to load raw snapshot: %v", err)
		os.Exit(1)
	}
	if len(snapshot) > 0 {
		csvWriter, err := storage.NewCSVWriter(cfg.CSVSnapshotPath)
		if err != nil {
			logger.Error("Failed to create CSV writer: %v", err)
		} else {
			if err := csvWriter.WriteRaw(snapshot); err != nil {
				logger.Error("CSV snapshot failed: %v", err)
			} else {
				logger.Info("Raw snapshot saved to %s (%d rows)", cfg.CSVSnapshotPath, len(snapshot))
			}
			csvWriter.Close()
		}
	}

	normalizer := services.NewNormalizer(store, store, store, logger)
	normStats, err := normalizer.Run()
	if err != nil {
		logger.Error("Normalization failed: %v", err)
		os.Exit(1)
	}
	logger.Info("Normalization: processed=%d normalized=%d unmatched=%d outliers=%d",
		normStats.Processed, normStats.Normalized, normStats.Unmatched, normStats.OutliersFiltered)

	comparables := services.NewComparablesService(store, logger)
	engine := services.NewEngine(comparables, store, store, store, services.EngineConfig{
		AdjustPer10kKm: cfg.AdjustPer10kKm,
		MaxComparables: cfg.MaxComparables,
	}, logger)

	suggestions, err := engine.AnalyzeInventory()
	if err != nil {
		logger.Error("Inventory analysis failed: %v", err)
		os.Exit(1)
	}

	stats, err := engine.InventoryStats()
	if err != nil {
		logger.Error("Inventory stats failed: %v", err)
		os.Exit(1)
	}

	// Sale-time outlook at the suggested price for every vehicle that got one.
	simulator := services.NewSimulator(store, store, store, services.SimulatorConfig{
		BaseSaleDays:    cfg.BaseSaleDays,
		DaysPerPctOver:  cfg.DaysPerPctOver,
		DaysPerPctUnder: cfg.DaysPerPctUnder,
		MinSaleDays:     cfg.MinSaleDays,
	}, logger)
	for _, s := range suggestions {
		if s.SuggestedPrice == nil {
			continue
		}
		sim, err := simulator.Simulate(s.VehicleID, *s.SuggestedPrice)
		if err != nil {
			logger.Warn("Simulation for vehicle %d failed: %v", s.VehicleID, err)
			continue
		}
		logger.Info("[outlook] %s %s %d at %.0f: ~%.0f days, %.0f%% within 30",
			s.Brand, s.Model, s.Year, sim.ProposedPrice, sim.DaysEstimated, sim.Probability30Days)
	}

	services.NewReporter().Print(suggestions, stats)

	fmt.Printf("  Done. Raw snapshot → %s | Market data → PostgreSQL (market_listings)\n\n",
		cfg.CSVSnapshotPath)
}
