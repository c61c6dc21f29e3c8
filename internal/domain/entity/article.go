// Package entity defines the core domain entities and validation errors for the application.
// It contains the Article resource along with its identifier rules and domain-specific errors.
package entity

import "time"

// Article represents a persisted article resource.
// ID, CreatedAt and UpdatedAt are assigned by the data store.
type Article struct {
	ID          int64
	Title       string
	Description *string
	Body        string
	Published   bool
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// IsDraft reports whether the article has not been published yet.
func (a *Article) IsDraft() bool {
	return !a.Published
}
