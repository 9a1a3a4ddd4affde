package main

// Run database migrations:
//   go run ./cmd/migrate
//   go run ./cmd/migrate -down

import (
	"context"
	"flag"
	"os"

	"interview-coach/internal/shared/config"
	"interview-coach/internal/shared/storage/db"
	"interview-coach/internal/shared/telemetry"
)

func main() {
	down := flag.Bool("down", false, "roll back the latest migration")
	flag.Parse()

	cfg := config.Load()
	_ = telemetry.Configure(cfg.LogLevel, cfg.LogFormat)
	defer telemetry.Sync()
	ctx := context.Background()

	opts := db.OptionsFromEnv(db.DefaultMigrateOptions())
	sqlDB, err := db.Connect(ctx, cfg.DatabaseURL, opts)
	if err != nil {
		telemetry.Error("migrate.connect_failed", map[string]any{"error": err})
		os.Exit(1)
	}
	defer sqlDB.Close()

	run := db.RunMigrations
	if *down {
		run = db.RollbackMigration
	}
	if err := run(ctx, sqlDB); err != nil {
		telemetry.Error("migrate.failed", map[string]any{"error": err, "down": *down})
		os.Exit(1)
	}
}
