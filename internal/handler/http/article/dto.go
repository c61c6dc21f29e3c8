// Package article provides HTTP handlers for the article endpoints.
package article

import (
	"time"

	"articles-api/internal/domain/entity"
)

// DTO represents the JSON structure for article data transfer.
// Published and Description are always present; a missing description is null.
type DTO struct {
	ID          int64     `json:"id" example:"1"`
	Title       string    `json:"title" example:"Getting started with Go"`
	Description *string   `json:"description" example:"A short introduction"`
	Body        string    `json:"body" example:"Go is an open source programming language..."`
	Published   bool      `json:"published" example:"true"`
	CreatedAt   time.Time `json:"createdAt" example:"2026-01-15T10:00:00Z"`
	UpdatedAt   time.Time `json:"updatedAt" example:"2026-01-15T10:00:00Z"`
} // @name Article

func toDTO(a *entity.Article) DTO {
	return DTO{
		ID:          a.ID,
		Title:       a.Title,
		Description: a.Description,
		Body:        a.Body,
		Published:   a.Published,
		CreatedAt:   a.CreatedAt,
		UpdatedAt:   a.UpdatedAt,
	}
}

func toDTOs(articles []*entity.Article) []DTO {
	out := make([]DTO, 0, len(articles))
	for _, a := range articles {
		out = append(out, toDTO(a))
	}
	return out
}

// CreateRequest documents the accepted create payload. Unknown fields are dropped.
type CreateRequest struct {
	Title       string  `json:"title" example:"Getting started with Go"`
	Description *string `json:"description,omitempty" example:"A short introduction" maxLength:"300"`
	Body        string  `json:"body" example:"Go is an open source programming language..."`
	Published   bool    `json:"published,omitempty" example:"false"`
} // @name CreateArticleRequest

// UpdateRequest documents the accepted update payload. Every field is optional.
type UpdateRequest struct {
	Title       *string `json:"title,omitempty"`
	Description *string `json:"description,omitempty" maxLength:"300"`
	Body        *string `json:"body,omitempty"`
	Published   *bool   `json:"published,omitempty"`
} // @name UpdateArticleRequest
