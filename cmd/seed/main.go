package main

// Load sample reference data into the configured record store:
//   go run ./cmd/seed

import (
	"context"
	"fmt"
	"os"

	"nta-reimbursement/internal/bootstrap"
	"nta-reimbursement/internal/shared/config"
	"nta-reimbursement/internal/shared/telemetry"
)

func main() {
	cfg := config.Load()
	if err := telemetry.Init(cfg.Env); err != nil {
		fmt.Fprintf(os.Stderr, "init logger: %v\n", err)
		os.Exit(1)
	}
	cfg.LogWarnings()
	defer telemetry.Sync()

	if cfg.RecordStore == "memory" {
		telemetry.Warn("seed.memory_store", map[string]any{
			"hint": "set MONGO_URL or DATABASE_URL; seeded data will not persist",
		})
	}

	app, err := bootstrap.Build(cfg)
	if err != nil {
		telemetry.Error("seed.bootstrap_failed", map[string]any{"error": err})
		telemetry.Sync()
		os.Exit(1)
	}
	defer app.Close()

	result, err := seedRecords(context.Background(), app.RecordsRepo, sampleRecords())
	if err != nil {
		telemetry.Error("seed.failed", map[string]any{"error": err})
		telemetry.Sync()
		os.Exit(1)
	}
	telemetry.Info("seed.done", map[string]any{
		"removed":  result.Removed,
		"inserted": result.Inserted,
		"cities":   result.Cities,
	})
}
