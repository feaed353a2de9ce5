// Command migrate manages the database schema.
//
// Usage:
//
//	migrate [-path migrations] up
//	migrate [-path migrations] down
//	migrate [-path migrations] step <n>
//	migrate [-path migrations] version
//	migrate [-path migrations] force <version>
//	migrate [-path migrations] create <name>
package main

import (
	"database/sql"
	"flag"
	"fmt"
	"os"
	"strconv"

	_ "github.com/lib/pq"
	"go.uber.org/zap"

	"github.com/onlineshop/backend/internal/infrastructure/config"
	"github.com/onlineshop/backend/internal/infrastructure/logger"
	"github.com/onlineshop/backend/internal/infrastructure/migration"
)

func main() {
	var migrationsPath string
	flag.StringVar(&migrationsPath, "path", "migrations", "path to migration files")
	flag.Parse()

	args := flag.Args()
	if len(args) == 0 {
		usage()
		os.Exit(2)
	}
	command := args[0]

	log, err := logger.New(&logger.Config{Level: "info", Format: "console", Output: "stdout"})
	if err != nil {
		fmt.Fprintln(os.Stderr, "failed to initialize logger:", err)
		os.Exit(1)
	}
	defer log.Sync() //nolint:errcheck

	// create works without a database connection
	if command == "create" {
		if len(args) < 2 {
			log.Fatal("create requires a migration name")
		}
		mf, err := migration.CreateMigration(migrationsPath, args[1])
		if err != nil {
			log.Fatal("Failed to create migration", zap.Error(err))
		}
		log.Info("Migration files created",
			zap.String("up", mf.UpPath),
			zap.String("down", mf.DownPath),
		)
		return
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Failed to load config", zap.Error(err))
	}

	db, err := sql.Open("postgres", cfg.Database.DSN())
	if err != nil {
		log.Fatal("Failed to open database", zap.Error(err))
	}
	defer db.Close() //nolint:errcheck

	migrator, err := migration.New(db, migrationsPath, log)
	if err != nil {
		log.Fatal("Failed to create migrator", zap.Error(err))
	}
	defer migrator.Close() //nolint:errcheck

	switch command {
	case "up":
		err = migrator.Up()
	case "down":
		err = migrator.Down()
	case "step":
		if len(args) < 2 {
			log.Fatal("step requires a number of steps")
		}
		n, convErr := strconv.Atoi(args[1])
		if convErr != nil {
			log.Fatal("step argument must be an integer", zap.String("got", args[1]))
		}
		err = migrator.Steps(n)
	case "version":
		version, dirty, verErr := migrator.Version()
		if verErr != nil {
			log.Fatal("Failed to get version", zap.Error(verErr))
		}
		log.Info("Current migration version",
			zap.Uint("version", version),
			zap.Bool("dirty", dirty),
		)
		return
	case "force":
		if len(args) < 2 {
			log.Fatal("force requires a version")
		}
		v, convErr := strconv.Atoi(args[1])
		if convErr != nil {
			log.Fatal("force argument must be an integer", zap.String("got", args[1]))
		}
		err = migrator.Force(v)
	default:
		usage()
		os.Exit(2)
	}

	if err != nil {
		log.Fatal("Migration failed", zap.Error(err))
	}
}

func usage() {
	fmt.Fprintln(os.Stderr, `usage: migrate [-path dir] <command>

commands:
  up               apply all pending migrations
  down             roll back one migration
  step <n>         apply n migrations (negative rolls back)
  version          print the current version
  force <version>  set the version without running migrations
  create <name>    create an empty up/down migration pair`)
}
