package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/joho/godotenv"

	"github.com/acedk/steakout-backend/pkg/config"
	"github.com/acedk/steakout-backend/pkg/db"
	"github.com/acedk/steakout-backend/pkg/logger"
	"github.com/acedk/steakout-backend/pkg/migrate"
)

const usage = `usage: migrate [-dir path] <command> [args]

commands:
  up                  apply all pending migrations
  up-to <version>     migrate up or down to a specific version
  down                roll back the latest migration
  status              print migration status
  version             print the current version
  create <name>       scaffold a new SQL migration
  validate            check migration filenames and annotations
`

func main() {
	dir := flag.String("dir", migrate.DefaultDir, "migrations directory")
	flag.Usage = func() { fmt.Fprint(os.Stderr, usage) }
	flag.Parse()

	args := flag.Args()
	if len(args) == 0 {
		flag.Usage()
		os.Exit(2)
	}
	command := args[0]

	// create and validate work without a database.
	switch command {
	case "create":
		if len(args) < 2 {
			fail(fmt.Errorf("create requires a migration name"))
		}
		path, err := migrate.CreateSQLMigration(*dir, args[1])
		if err != nil {
			fail(err)
		}
		fmt.Println(path)
		return
	case "validate":
		if err := migrate.ValidateDir(*dir); err != nil {
			fail(err)
		}
		fmt.Println("ok")
		return
	}

	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		fail(err)
	}

	logg := logger.New(logger.Options{
		ServiceName: "steakout-migrate",
		Level:       logger.ParseLevel(cfg.App.LogLevel),
	})

	ctx := context.Background()
	client, err := db.New(ctx, cfg.DB, cfg.FeatureFlags.UseSQLite, logg)
	if err != nil {
		fail(err)
	}
	defer client.Close()

	sqlDB, err := client.DB().DB()
	if err != nil {
		fail(err)
	}

	switch command {
	case "up-to":
		if len(args) < 2 {
			fail(fmt.Errorf("up-to requires a target version"))
		}
		err = migrate.MigrateToVersion(ctx, sqlDB, *dir, args[1])
	default:
		err = migrate.Run(ctx, sqlDB, *dir, command, args[1:]...)
	}
	if err != nil {
		fail(err)
	}
}

func fail(err error) {
	fmt.Fprintln(os.Stderr, "migrate:", err)
	os.Exit(1)
}
