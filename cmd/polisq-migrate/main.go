package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/polisq/polisq/internal/config"
	"github.com/polisq/polisq/internal/migrations"
	"github.com/polisq/polisq/internal/store"
)

func main() {
	direction := flag.String("direction", "up", "migration direction: up|down|reset|status")
	steps := flag.Int("steps", 0, "number of migration steps; 0 means all for up, 1 for down")
	flag.Parse()

	cfg, err := config.LoadFromEnv("polisq-migrate")
	if err != nil {
		fmt.Fprintf(os.Stderr, "config error: %v\n", err)
		os.Exit(1)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	db, err := store.Open(ctx, store.Config{DSN: cfg.Store.DSN})
	if err != nil {
		fmt.Fprintf(os.Stderr, "store open error: %v\n", err)
		os.Exit(1)
	}
	defer func() { _ = db.Close() }()

	runner := migrations.NewRunner()
	switch *direction {
	case "up":
		applied, err := runner.Up(ctx, db, *steps)
		if err != nil {
			fmt.Fprintf(os.Stderr, "migration up failed: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("applied %d migration(s)\n", applied)
	case "down":
		applied, err := runner.Down(ctx, db, *steps)
		if err != nil {
			fmt.Fprintf(os.Stderr, "migration down failed: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("rolled back %d migration(s)\n", applied)
	case "reset":
		if err := runner.Reset(ctx, db); err != nil {
			fmt.Fprintf(os.Stderr, "migration reset failed: %v\n", err)
			os.Exit(1)
		}
		fmt.Println("schema reset")
	case "status":
		applied, err := runner.AppliedCount(ctx, db)
		if err != nil {
			fmt.Fprintf(os.Stderr, "migration status failed: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("%d migration(s) applied\n", applied)
	default:
		fmt.Fprintf(os.Stderr, "invalid direction: %s\n", *direction)
		os.Exit(1)
	}
}
