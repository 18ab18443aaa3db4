// Command seed resets the users table.
//
//	seed -i   drop, migrate and import the fake users
//	seed -d   drop the users table
package main

import (
	"context"
	"flag"
	"os"
	"time"

	"health_backend/internal/config"
	"health_backend/internal/feature/user/seed"
	"health_backend/internal/platform/db"
	"health_backend/internal/platform/logger"
)

func main() {
	importData := flag.Bool("i", false, "import fake data")
	deleteData := flag.Bool("d", false, "delete all data")
	flag.Parse()

	if *importData == *deleteData {
		flag.Usage()
		os.Exit(2)
	}

	config.LoadEnvFiles("")
	cfg := config.Load()
	log := logger.New(cfg.AppName+"-seed", cfg.Env)

	gdb, err := db.Open(cfg.Database(), cfg.Retry(), log, cfg.IsDevelopment())
	if err != nil {
		log.WithError(err).Fatal("database unavailable")
	}
	sqlDB, err := gdb.DB()
	if err != nil {
		log.WithError(err).Fatal("failed to get sql.DB")
	}
	defer func() { _ = sqlDB.Close() }()

	if *deleteData {
		if err := seed.Delete(gdb, log); err != nil {
			log.WithError(err).Fatal("delete failed")
		}
		return
	}

	users, err := seed.LoadUsers(cfg.SeedFile)
	if err != nil {
		log.WithError(err).Fatal("failed to load seed users")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()
	if _, err := seed.Import(ctx, gdb, users, log); err != nil {
		log.WithError(err).Fatal("import failed")
	}
}
