// Package memory provides an in-process implementation of the article repository.
// It enforces the same title uniqueness as the Postgres schema and reports
// violations as *repository.StoreError, so callers see identical failures.
package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"articles-api/internal/domain/entity"
	"articles-api/internal/repository"
)

const titleConstraint = "articles_title_key"

// ArticleRepo is safe for concurrent use.
type ArticleRepo struct {
	mu     sync.RWMutex
	rows   map[int64]entity.Article
	nextID int64
	now    func() time.Time
}

// NewArticleRepo returns an empty repository whose first id is 1.
func NewArticleRepo() *ArticleRepo {
	return &ArticleRepo{
		rows:   make(map[int64]entity.Article),
		nextID: 1,
		now:    time.Now,
	}
}

// Seed inserts articles with explicit ids, skipping ids already present.
// Later Create calls never reuse a seeded id.
func (r *ArticleRepo) Seed(articles ...entity.Article) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, a := range articles {
		if _, ok := r.rows[a.ID]; ok {
			continue
		}
		if a.CreatedAt.IsZero() {
			a.CreatedAt = r.now()
		}
		if a.UpdatedAt.IsZero() {
			a.UpdatedAt = a.CreatedAt
		}
		r.rows[a.ID] = a
		if a.ID >= r.nextID {
			r.nextID = a.ID + 1
		}
	}
}

func (r *ArticleRepo) FindPublished(ctx context.Context) ([]*entity.Article, error) {
	return r.filter(ctx, func(a *entity.Article) bool { return !a.IsDraft() })
}

func (r *ArticleRepo) FindDrafts(ctx context.Context) ([]*entity.Article, error) {
	return r.filter(ctx, (*entity.Article).IsDraft)
}

func (r *ArticleRepo) FindByID(ctx context.Context, id int64) (*entity.Article, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	a, ok := r.rows[id]
	if !ok {
		return nil, nil
	}
	return &a, nil
}

func (r *ArticleRepo) Create(ctx context.Context, in repository.NewArticle) (*entity.Article, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	if err := r.checkTitle(in.Title, 0); err != nil {
		return nil, err
	}

	now := r.now()
	a := entity.Article{
		ID:          r.nextID,
		Title:       in.Title,
		Description: copyString(in.Description),
		Body:        in.Body,
		Published:   in.Published,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	r.nextID++
	r.rows[a.ID] = a
	return &a, nil
}

func (r *ArticleRepo) Update(ctx context.Context, id int64, patch repository.ArticlePatch) (*entity.Article, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	a, ok := r.rows[id]
	if !ok {
		return nil, nil
	}
	if patch.Title != nil {
		if err := r.checkTitle(*patch.Title, id); err != nil {
			return nil, err
		}
		a.Title = *patch.Title
	}
	if patch.Description != nil {
		a.Description = copyString(patch.Description)
	}
	if patch.Body != nil {
		a.Body = *patch.Body
	}
	if patch.Published != nil {
		a.Published = *patch.Published
	}
	a.UpdatedAt = r.now()
	r.rows[id] = a
	return &a, nil
}

func (r *ArticleRepo) Count(ctx context.Context) (int64, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	return int64(len(r.rows)), nil
}

func (r *ArticleRepo) filter(ctx context.Context, keep func(*entity.Article) bool) ([]*entity.Article, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]*entity.Article, 0, len(r.rows))
	for _, a := range r.rows {
		a := a
		if keep(&a) {
			out = append(out, &a)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

// checkTitle must be called with mu held.
func (r *ArticleRepo) checkTitle(title string, self int64) error {
	for id, a := range r.rows {
		if id != self && a.Title == title {
			return &repository.StoreError{
				Code: repository.CodeUniqueViolation,
				Message: fmt.Sprintf("duplicate key value violates unique constraint %q\nKey (title)=(%s) already exists.",
					titleConstraint, title),
				Constraint: titleConstraint,
			}
		}
	}
	return nil
}

func copyString(s *string) *string {
	if s == nil {
		return nil
	}
	v := *s
	return &v
}
