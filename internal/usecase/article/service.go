package article

import (
	"context"
	"fmt"

	"articles-api/internal/domain/entity"
	"articles-api/internal/repository"
)

// Service provides article management use cases.
// It handles business logic for article operations and delegates persistence to the repository.
type Service struct {
	Repo repository.ArticleRepository
}

// ListPublished returns every published article. The result is never nil.
func (s *Service) ListPublished(ctx context.Context) ([]*entity.Article, error) {
	articles, err := s.Repo.FindPublished(ctx)
	if err != nil {
		return nil, fmt.Errorf("list published articles: %w", err)
	}
	return nonNil(articles), nil
}

// ListDrafts returns every unpublished article. The result is never nil.
func (s *Service) ListDrafts(ctx context.Context) ([]*entity.Article, error) {
	articles, err := s.Repo.FindDrafts(ctx)
	if err != nil {
		return nil, fmt.Errorf("list draft articles: %w", err)
	}
	return nonNil(articles), nil
}

// Get retrieves a single article by its raw identifier token.
// Returns an error wrapping entity.ErrMalformedID if the token is not an integer,
// before the repository is queried.
// Returns an error wrapping ErrArticleNotFound if the article does not exist.
func (s *Service) Get(ctx context.Context, rawID string) (*entity.Article, error) {
	id, err := entity.ParseID(rawID)
	if err != nil {
		return nil, err
	}

	article, err := s.Repo.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get article: %w", err)
	}
	if article == nil {
		return nil, &NotFoundError{ID: id}
	}
	return article, nil
}

// Create validates the input and persists a new article.
// Returns entity.ValidationErrors if any input field is invalid; the
// repository is not called in that case.
func (s *Service) Create(ctx context.Context, in CreateInput) (*entity.Article, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}

	article, err := s.Repo.Create(ctx, in.toNewArticle())
	if err != nil {
		return nil, fmt.Errorf("create article: %w", err)
	}
	return article, nil
}

// Update applies the present fields of in to the article identified by rawID.
// An input with no fields returns the current record unchanged.
func (s *Service) Update(ctx context.Context, rawID string, in UpdateInput) (*entity.Article, error) {
	id, err := entity.ParseID(rawID)
	if err != nil {
		return nil, err
	}
	if err := in.Validate(); err != nil {
		return nil, err
	}

	patch := in.toPatch()
	if patch.Empty() {
		article, err := s.Repo.FindByID(ctx, id)
		if err != nil {
			return nil, fmt.Errorf("get article: %w", err)
		}
		if article == nil {
			return nil, &NotFoundError{ID: id}
		}
		return article, nil
	}

	article, err := s.Repo.Update(ctx, id, patch)
	if err != nil {
		return nil, fmt.Errorf("update article: %w", err)
	}
	if article == nil {
		return nil, &NotFoundError{ID: id}
	}
	return article, nil
}

// Count returns the number of stored articles.
func (s *Service) Count(ctx context.Context) (int64, error) {
	n, err := s.Repo.Count(ctx)
	if err != nil {
		return 0, fmt.Errorf("count articles: %w", err)
	}
	return n, nil
}

func nonNil(articles []*entity.Article) []*entity.Article {
	if articles == nil {
		return []*entity.Article{}
	}
	return articles
}
