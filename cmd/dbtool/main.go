package main

import (
	"context"
	"flag"
	"log"
	"time"

	"visit-schedule-service/internal/adapters/repositories"
	"visit-schedule-service/internal/config"
	"visit-schedule-service/internal/platform/db"
	"visit-schedule-service/internal/ports"
	"visit-schedule-service/migrations"
)

func main() {
	seed := flag.Bool("seed", true, "seed saved origins from SEED_PATH")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	ctx := context.Background()

	var repo ports.OriginRepository
	if cfg.DatabaseURL != "" {
		conn, err := db.Open(cfg.DatabaseURL)
		if err != nil {
			log.Fatal(err)
		}
		defer conn.Close()

		log.Println("Applying Postgres migrations...")
		if err := migrations.Up(ctx, conn); err != nil {
			log.Fatalf("migration failed: %v", err)
		}
		repo = repositories.NewSQLOriginRepository(conn)
	} else {
		conn, err := db.OpenSQLite(cfg.DBPath)
		if err != nil {
			log.Fatal(err)
		}
		defer conn.Close()

		log.Println("Initializing SQLite schema...")
		if err := repositories.InitSchema(conn); err != nil {
			log.Fatalf("schema initialization failed: %v", err)
		}
		repo = repositories.NewSqliteOriginRepository(conn)
	}
	log.Println("Schema ready.")

	if !*seed {
		return
	}

	log.Printf("Seeding saved origins from %s...", cfg.SeedPath)
	if err := repositories.SeedFromJSON(ctx, repo, cfg.SeedPath, time.Now()); err != nil {
		log.Fatalf("seeding failed: %v", err)
	}
	log.Println("Seeding complete.")
}
