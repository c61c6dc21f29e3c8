// Package repository declares the persistence ports used by the use case layer,
// together with the structured failure type that storage adapters surface.
package repository

import (
	"context"

	"articles-api/internal/domain/entity"
)

// NewArticle carries the validated fields persisted by Create.
// ID and timestamps are assigned by the store.
type NewArticle struct {
	Title       string
	Description *string
	Body        string
	Published   bool
}

// ArticlePatch lists the columns to change on Update. Nil fields are left untouched.
type ArticlePatch struct {
	Title       *string
	Description *string
	Body        *string
	Published   *bool
}

// Empty reports whether the patch changes nothing.
func (p ArticlePatch) Empty() bool {
	return p.Title == nil && p.Description == nil && p.Body == nil && p.Published == nil
}

type ArticleRepository interface {
	// FindPublished returns every article with published = true, ordered by id.
	FindPublished(ctx context.Context) ([]*entity.Article, error)
	// FindDrafts returns every article with published = false, ordered by id.
	FindDrafts(ctx context.Context) ([]*entity.Article, error)
	// FindByID returns (nil, nil) if no article has the given id.
	FindByID(ctx context.Context, id int64) (*entity.Article, error)
	// Create persists the article and returns the hydrated record.
	Create(ctx context.Context, in NewArticle) (*entity.Article, error)
	// Update applies the patch, refreshes updated_at and returns the hydrated record.
	// Returns (nil, nil) if no article has the given id.
	Update(ctx context.Context, id int64, patch ArticlePatch) (*entity.Article, error)
	// Count returns the total number of stored articles.
	Count(ctx context.Context) (int64, error)
}
