package infra_pg_init

import (
	"context"
	"fmt"
	"log"

	"github.com/humanbelnik/popchoice/internal/config"
	"github.com/humanbelnik/popchoice/internal/model"
	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
)

func DSN(cfg config.Postgres) string {
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		cfg.Host,
		cfg.Port,
		cfg.User,
		cfg.Password,
		cfg.DBName,
		cfg.SSLMode,
	)
}

func MustEstablishConn(cfg config.Postgres) *sqlx.DB {
	db, err := sqlx.Connect("postgres", DSN(cfg))
	if err != nil {
		log.Fatal(err)
	}

	return db
}

var schema = []string{
	`CREATE EXTENSION IF NOT EXISTS vector`,
	fmt.Sprintf(`CREATE TABLE IF NOT EXISTS popchoice (
		id          UUID PRIMARY KEY,
		title       TEXT NOT NULL,
		releaseyear INTEGER NOT NULL,
		content     TEXT NOT NULL,
		embedding   vector(%d) NOT NULL
	)`, model.EmbeddingDimension),
	`CREATE UNIQUE INDEX IF NOT EXISTS popchoice_title_year_idx ON popchoice (title, releaseyear)`,
}

// Migrate creates the catalog table. Safe to run on every start.
func Migrate(ctx context.Context, db *sqlx.DB) error {
	for _, stmt := range schema {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("failed to migrate: %w", err)
		}
	}
	return nil
}
