package db

import (
	"context"
	"database/sql"
	"fmt"
)

// ArticlesTitleKey is the name of the unique constraint on articles.title.
const ArticlesTitleKey = "articles_title_key"

var schema = []string{
	`CREATE TABLE IF NOT EXISTS articles (
    id          BIGSERIAL PRIMARY KEY,
    title       TEXT NOT NULL,
    description VARCHAR(300),
    body        TEXT NOT NULL,
    published   BOOLEAN NOT NULL DEFAULT FALSE,
    created_at  TIMESTAMPTZ NOT NULL DEFAULT now(),
    updated_at  TIMESTAMPTZ NOT NULL DEFAULT now(),
    CONSTRAINT ` + ArticlesTitleKey + ` UNIQUE (title)
)`,
	// list queries filter on published and order by id
	`CREATE INDEX IF NOT EXISTS idx_articles_published_id ON articles(published, id)`,
}

// Execer runs statements. *sql.DB and *circuitbreaker.DBCircuitBreaker both satisfy it.
type Execer interface {
	ExecContext(ctx context.Context, query string, args ...interface{}) (sql.Result, error)
}

// MigrateUp creates the schema. It is idempotent.
func MigrateUp(ctx context.Context, db Execer) error {
	for _, stmt := range schema {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("migrate up: %w", err)
		}
	}
	return nil
}
