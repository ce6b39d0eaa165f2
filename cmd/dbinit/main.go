package main

import (
	"context"
	"flag"
	"log"

	"golf-coach/internal/config"
	"golf-coach/internal/logger"
	"golf-coach/internal/store"
)

func main() {
	configFile := flag.String("config", "etc/config-dev.yaml", "config file")
	seed := flag.Bool("seed", true, "insert the demo user and sample data")
	flag.Parse()

	logger.Init(config.LogConfig{Level: "info", Console: true})

	cfg := config.Load(*configFile)
	db, err := cfg.OpenGormDB()
	if err != nil {
		log.Fatal(err)
	}
	if db == nil {
		log.Fatalf("database driver %q has nothing to migrate", cfg.Database.Driver)
	}

	// Step 1: schema
	if err := store.Migrate(db); err != nil {
		log.Fatal("migrate failed: ", err)
	}
	logger.Info("dbinit.migrate", "driver", cfg.Database.Driver)

	// Step 2: demo data
	if *seed {
		u, err := store.Seed(context.Background(), store.NewGorm(db))
		if err != nil {
			log.Fatal("seed failed: ", err)
		}
		logger.Info("dbinit.seed", "user_id", u.ID, "username", u.Username)
	}

	logger.Info("dbinit.done")
}
