// Package article provides use cases for reading, creating and updating articles.
// It validates input before any repository call and wraps repository failures
// so that the HTTP layer can classify them.
package article

import (
	"errors"
	"fmt"

	"articles-api/internal/domain/entity"
)

// ErrArticleNotFound indicates that no article has the requested id.
// Errors returned by the service wrap it in a *NotFoundError carrying the id.
var ErrArticleNotFound = errors.New("article not found")

// NotFoundError reports the id that could not be found.
type NotFoundError struct {
	ID int64
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("Article with id %d not found", e.ID)
}

// Is makes errors.Is hold for ErrArticleNotFound and the domain-wide entity.ErrNotFound.
func (e *NotFoundError) Is(target error) bool {
	return target == ErrArticleNotFound || target == entity.ErrNotFound
}
