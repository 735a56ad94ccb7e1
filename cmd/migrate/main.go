package main

// Run database migrations, optionally seeding the tools table from catalog partition files:
//   go run ./cmd/migrate
//   go run ./cmd/migrate -seed

import (
	"context"
	"flag"
	"log"
	"os"

	"stackfast/internal/bootstrap"
	"stackfast/internal/catalog"
	"stackfast/internal/shared/config"
	"stackfast/internal/shared/storage/db"
)

func main() {
	seed := flag.Bool("seed", false, "upsert catalog partition files from OBJECT_STORE into the tools table")
	flag.Parse()

	cfg := config.Load()
	ctx := context.Background()

	opts := db.OptionsFromEnv(db.DefaultMigrateOptions())
	sqlDB, err := db.Connect(ctx, cfg.DatabaseURL, opts)
	if err != nil {
		log.Printf("failed to connect database: %v", err)
		os.Exit(1)
	}
	defer sqlDB.Close()

	if err := db.RunMigrations(ctx, sqlDB); err != nil {
		log.Printf("failed to run migrations: %v", err)
		os.Exit(1)
	}
	if !*seed {
		return
	}

	store, err := bootstrap.BuildStore(ctx, cfg)
	if err != nil {
		log.Printf("failed to open object store: %v", err)
		os.Exit(1)
	}
	source := &catalog.ObjectRepo{Store: store, Prefix: cfg.CatalogPrefix}
	tools, err := source.ListTools(ctx)
	if err != nil {
		log.Printf("failed to read catalog partitions: %v", err)
		os.Exit(1)
	}
	if err := (&catalog.PGRepo{DB: sqlDB}).UpsertTools(ctx, tools); err != nil {
		log.Printf("failed to seed tools: %v", err)
		os.Exit(1)
	}
	log.Printf("seeded %d tools", len(tools))
}
