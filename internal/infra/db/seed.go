package db

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
)

// DemoArticle is a fixed record inserted by SeedDemoArticles.
type DemoArticle struct {
	ID          int64
	Title       string
	Description string
	Body        string
	Published   bool
}

// DemoArticles are the records used by local environments and end-to-end checks.
var DemoArticles = []DemoArticle{
	{
		ID:          100001,
		Title:       "Seeded published article",
		Description: "A published article inserted at startup",
		Body:        "This article is visible in the published listing.",
		Published:   true,
	},
	{
		ID:          100002,
		Title:       "Seeded draft article",
		Description: "A draft article inserted at startup",
		Body:        "This article is only visible in the drafts listing.",
		Published:   false,
	},
}

const seedInsert = `INSERT INTO articles (id, title, description, body, published)
VALUES ($1, $2, $3, $4, $5)
ON CONFLICT DO NOTHING`

// setval keeps BIGSERIAL from handing out an id the seed already used.
const seedSequence = `SELECT setval(pg_get_serial_sequence('articles', 'id'),
GREATEST((SELECT COALESCE(MAX(id), 1) FROM articles), 1))`

// SeedDemoArticles inserts DemoArticles. Existing rows are left untouched,
// whether they clash on id or on title.
func SeedDemoArticles(ctx context.Context, db *sql.DB) error {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("seed: begin: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	var inserted int64
	for _, a := range DemoArticles {
		res, err := tx.ExecContext(ctx, seedInsert, a.ID, a.Title, a.Description, a.Body, a.Published)
		if err != nil {
			return fmt.Errorf("seed article %d: %w", a.ID, err)
		}
		if n, err := res.RowsAffected(); err == nil {
			inserted += n
		}
	}

	if _, err := tx.ExecContext(ctx, seedSequence); err != nil {
		return fmt.Errorf("seed: advance sequence: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("seed: commit: %w", err)
	}

	slog.Info("demo articles seeded", slog.Int64("inserted", inserted))
	return nil
}
