// Package postgres provides PostgreSQL implementations of repository interfaces.
package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	sq "github.com/Masterminds/squirrel"

	"articles-api/internal/domain/entity"
	"articles-api/internal/repository"
)

// Querier is the subset of *sql.DB the repository needs.
// *circuitbreaker.DBCircuitBreaker satisfies it as well.
type Querier interface {
	QueryContext(ctx context.Context, query string, args ...interface{}) (*sql.Rows, error)
}

var articleColumns = []string{
	"id", "title", "description", "body", "published", "created_at", "updated_at",
}

type ArticleRepo struct {
	db Querier
	sb sq.StatementBuilderType
}

func NewArticleRepo(db Querier) repository.ArticleRepository {
	return &ArticleRepo{
		db: db,
		sb: sq.StatementBuilder.PlaceholderFormat(sq.Dollar),
	}
}

func (repo *ArticleRepo) FindPublished(ctx context.Context) ([]*entity.Article, error) {
	return repo.listByPublished(ctx, "FindPublished", true)
}

func (repo *ArticleRepo) FindDrafts(ctx context.Context) ([]*entity.Article, error) {
	return repo.listByPublished(ctx, "FindDrafts", false)
}

func (repo *ArticleRepo) listByPublished(ctx context.Context, op string, published bool) ([]*entity.Article, error) {
	query, args, err := repo.sb.
		Select(articleColumns...).
		From("articles").
		Where(sq.Eq{"published": published}).
		OrderBy("id ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%s: build query: %w", op, err)
	}

	rows, err := repo.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, translateError(op, err)
	}
	defer func() { _ = rows.Close() }()

	articles := make([]*entity.Article, 0, 16)
	for rows.Next() {
		article, err := scanArticle(rows)
		if err != nil {
			return nil, fmt.Errorf("%s: Scan: %w", op, err)
		}
		articles = append(articles, article)
	}
	if err := rows.Err(); err != nil {
		return nil, translateError(op, err)
	}
	return articles, nil
}

func (repo *ArticleRepo) FindByID(ctx context.Context, id int64) (*entity.Article, error) {
	query, args, err := repo.sb.
		Select(articleColumns...).
		From("articles").
		Where(sq.Eq{"id": id}).
		Limit(1).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("FindByID: build query: %w", err)
	}
	return repo.queryOne(ctx, "FindByID", query, args)
}

func (repo *ArticleRepo) Create(ctx context.Context, in repository.NewArticle) (*entity.Article, error) {
	query, args, err := repo.sb.
		Insert("articles").
		Columns("title", "description", "body", "published").
		Values(in.Title, in.Description, in.Body, in.Published).
		Suffix("RETURNING " + strings.Join(articleColumns, ", ")).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("Create: build query: %w", err)
	}

	article, err := repo.queryOne(ctx, "Create", query, args)
	if err != nil {
		return nil, err
	}
	if article == nil {
		return nil, fmt.Errorf("Create: %w", sql.ErrNoRows)
	}
	return article, nil
}

func (repo *ArticleRepo) Update(ctx context.Context, id int64, patch repository.ArticlePatch) (*entity.Article, error) {
	b := repo.sb.Update("articles")
	if patch.Title != nil {
		b = b.Set("title", *patch.Title)
	}
	if patch.Description != nil {
		b = b.Set("description", *patch.Description)
	}
	if patch.Body != nil {
		b = b.Set("body", *patch.Body)
	}
	if patch.Published != nil {
		b = b.Set("published", *patch.Published)
	}
	query, args, err := b.
		Set("updated_at", sq.Expr("now()")).
		Where(sq.Eq{"id": id}).
		Suffix("RETURNING " + strings.Join(articleColumns, ", ")).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("Update: build query: %w", err)
	}
	return repo.queryOne(ctx, "Update", query, args)
}

func (repo *ArticleRepo) Count(ctx context.Context) (int64, error) {
	query, args, err := repo.sb.Select("COUNT(*)").From("articles").ToSql()
	if err != nil {
		return 0, fmt.Errorf("Count: build query: %w", err)
	}

	rows, err := repo.db.QueryContext(ctx, query, args...)
	if err != nil {
		return 0, translateError("Count", err)
	}
	defer func() { _ = rows.Close() }()

	var count int64
	if rows.Next() {
		if err := rows.Scan(&count); err != nil {
			return 0, fmt.Errorf("Count: Scan: %w", err)
		}
	}
	if err := rows.Err(); err != nil {
		return 0, translateError("Count", err)
	}
	return count, nil
}

// queryOne runs a statement expected to yield at most one article row.
// QueryContext is used instead of QueryRowContext so that the circuit breaker
// observes the error. Returns (nil, nil) when no row comes back.
func (repo *ArticleRepo) queryOne(ctx context.Context, op, query string, args []interface{}) (*entity.Article, error) {
	rows, err := repo.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, translateError(op, err)
	}
	defer func() { _ = rows.Close() }()

	if !rows.Next() {
		if err := rows.Err(); err != nil {
			return nil, translateError(op, err)
		}
		return nil, nil
	}
	article, err := scanArticle(rows)
	if err != nil {
		return nil, fmt.Errorf("%s: Scan: %w", op, err)
	}
	return article, nil
}

func scanArticle(rows *sql.Rows) (*entity.Article, error) {
	var (
		article     entity.Article
		description sql.NullString
	)
	if err := rows.Scan(&article.ID, &article.Title, &description, &article.Body,
		&article.Published, &article.CreatedAt, &article.UpdatedAt); err != nil {
		return nil, err
	}
	if description.Valid {
		article.Description = &description.String
	}
	return &article, nil
}
