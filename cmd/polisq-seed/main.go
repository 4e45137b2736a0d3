package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/polisq/polisq/internal/config"
	"github.com/polisq/polisq/internal/migrations"
	"github.com/polisq/polisq/internal/seed"
	"github.com/polisq/polisq/internal/store"
)

func main() {
	records := flag.Int("records", 0, "number of fixture records; 0 uses POLISQ_SEED_RECORDS")
	force := flag.Bool("force", false, "seed even when the store already has data")
	flag.Parse()

	cfg, err := config.LoadFromEnv("polisq-seed")
	if err != nil {
		fmt.Fprintf(os.Stderr, "config error: %v\n", err)
		os.Exit(1)
	}
	count := *records
	if count <= 0 {
		count = cfg.Seed.Records
	}

	ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
	defer cancel()

	db, err := store.Open(ctx, store.Config{DSN: cfg.Store.DSN})
	if err != nil {
		fmt.Fprintf(os.Stderr, "store open error: %v\n", err)
		os.Exit(1)
	}
	defer func() { _ = db.Close() }()

	if _, err := migrations.NewRunner().Up(ctx, db, 0); err != nil {
		fmt.Fprintf(os.Stderr, "migration failed: %v\n", err)
		os.Exit(1)
	}

	seeder := seed.New(db)
	if !*force {
		hasData, err := seeder.HasData(ctx)
		if err != nil {
			fmt.Fprintf(os.Stderr, "store inspection failed: %v\n", err)
			os.Exit(1)
		}
		if hasData {
			fmt.Println("store already has data; use -force to seed anyway")
			return
		}
	}

	summary, err := seeder.Seed(ctx, count)
	if err != nil {
		fmt.Fprintf(os.Stderr, "seed failed: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("seeded %d customers, %d policies, %d claims, %d prospects\n",
		summary.Customers, summary.Policies, summary.Claims, summary.Prospects)
}
