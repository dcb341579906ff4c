package repositories

import (
	"database/sql"
	"embed"
	"fmt"
	"log/slog"

	"github.com/momconnect/hub/infra"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"
)

// embed migrations sql folder
//
//go:embed migrations/*.sql
var embedMigrations embed.FS

func setupDbConnection(pgConfig infra.PgConfig) (*sql.DB, error) {
	migrationDB, err := sql.Open("pgx", pgConfig.GetConnectionString())
	if err != nil {
		return nil, fmt.Errorf("unable to connect to database: %w", err)
	}

	if err := migrationDB.Ping(); err != nil {
		return nil, fmt.Errorf("unable to ping database: %w", err)
	}

	return migrationDB, nil
}

// RunMigrations applies the hub's own schema. The task queue's tables are
// managed separately with the river migrate CLI.
func RunMigrations(pgConfig infra.PgConfig, logger *slog.Logger) error {
	db, err := setupDbConnection(pgConfig)
	if err != nil {
		return fmt.Errorf("setupDbConnection error: %w", err)
	}
	defer db.Close()

	logger.Info("Migrations starting to setup DB")
	goose.SetBaseFS(embedMigrations)

	if err := goose.SetDialect("postgres"); err != nil {
		return err
	}

	if err := goose.Up(db, "migrations"); err != nil {
		return fmt.Errorf("unable to run migrations: %w", err)
	}
	return nil
}
