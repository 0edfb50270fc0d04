package main

import (
	"database/sql"
	"flag"
	"fmt"
	"io/fs"
	"os"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/joho/godotenv"
	"github.com/pressly/goose/v3"
	"go.uber.org/zap"

	"github.com/kevin07696/pxpost/internal/config"
	"github.com/kevin07696/pxpost/internal/db/migrations"
)

const dialect = "postgres"

var (
	flags = flag.NewFlagSet("migrate", flag.ExitOnError)
	dir     = flags.String("dir", "", "directory with migration files (default: embedded migrations)")
	envFile = flags.String("env-file", "", "load environment variables from this file first")
)

func main() {
	flags.Usage = usage
	flags.Parse(os.Args[1:]) //nolint:errcheck

	args := flags.Args()
	if len(args) < 1 {
		flags.Usage()
		return
	}

	command := args[0]

	logger, _ := zap.NewProduction()
	defer logger.Sync() //nolint:errcheck

	if *envFile != "" {
		if err := godotenv.Load(*envFile); err != nil {
			logger.Fatal("Failed to load env file", zap.String("path", *envFile), zap.Error(err))
		}
	}

	dbCfg := config.LoadDatabaseFromEnv()

	db, err := sql.Open("pgx", dbCfg.ConnectionString())
	if err != nil {
		logger.Fatal("Failed to open database", zap.Error(err))
	}
	defer db.Close()

	if err := db.Ping(); err != nil {
		logger.Fatal("Failed to connect to database",
			zap.String("host", dbCfg.Host),
			zap.String("database", dbCfg.Database),
			zap.Error(err),
		)
	}

	if err := goose.SetDialect(dialect); err != nil {
		logger.Fatal("Failed to set dialect", zap.Error(err))
	}

	migrationsDir := *dir
	if migrationsDir == "" {
		goose.SetBaseFS(migrations.FS)
		migrationsDir = "."
	} else if _, err := fs.Stat(os.DirFS(migrationsDir), "."); err != nil {
		logger.Fatal("Migrations directory not readable", zap.String("dir", migrationsDir), zap.Error(err))
	}

	if err := goose.Run(command, db, migrationsDir, args[1:]...); err != nil {
		logger.Fatal("Migration failed", zap.String("command", command), zap.Error(err))
	}
}

func usage() {
	fmt.Print(`Usage: migrate COMMAND

Connection settings are read from DB_HOST, DB_PORT, DB_USER, DB_PASSWORD,
DB_NAME and DB_SSL_MODE.

Commands:
    up                   Migrate the DB to the most recent version available
    up-by-one            Migrate the DB up by 1
    up-to VERSION        Migrate the DB to a specific VERSION
    down                 Roll back the version by 1
    down-to VERSION      Roll back to a specific VERSION
    redo                 Re-run the latest migration
    reset                Roll back all migrations
    status               Dump the migration status for the current DB
    version              Print the current version of the database

Examples:
    migrate up
    migrate status
    migrate -dir internal/db/migrations down
`)
}
