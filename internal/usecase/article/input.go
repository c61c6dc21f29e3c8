package article

import (
	"errors"
	"reflect"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"

	"articles-api/internal/domain/entity"
	"articles-api/internal/repository"
)

// MaxDescriptionLength is the maximum number of characters in a description.
const MaxDescriptionLength = 300

// CreateInput represents the input parameters for creating a new article.
type CreateInput struct {
	Title       string  `json:"title" validate:"required"`
	Description *string `json:"description" validate:"omitempty,max=300"`
	Body        string  `json:"body" validate:"required"`
	Published   bool    `json:"published"`
}

// UpdateInput represents the input parameters for updating an existing article.
// Fields with nil values will not be updated.
type UpdateInput struct {
	Title       *string `json:"title" validate:"omitempty,min=1"`
	Description *string `json:"description" validate:"omitempty,max=300"`
	Body        *string `json:"body" validate:"omitempty,min=1"`
	Published   *bool   `json:"published"`
}

// Validate checks the field rules and returns entity.ValidationErrors listing
// every violation, or nil.
func (in CreateInput) Validate() error {
	return validateStruct(in)
}

// Validate checks the rules of every present field.
func (in UpdateInput) Validate() error {
	return validateStruct(in)
}

func (in CreateInput) toNewArticle() repository.NewArticle {
	return repository.NewArticle{
		Title:       in.Title,
		Description: in.Description,
		Body:        in.Body,
		Published:   in.Published,
	}
}

func (in UpdateInput) toPatch() repository.ArticlePatch {
	return repository.ArticlePatch{
		Title:       in.Title,
		Description: in.Description,
		Body:        in.Body,
		Published:   in.Published,
	}
}

var (
	validateOnce sync.Once
	validate     *validator.Validate
)

// structValidator returns the shared validator. Field names in reported
// errors are the JSON names.
func structValidator() *validator.Validate {
	validateOnce.Do(func() {
		validate = validator.New(validator.WithRequiredStructEnabled())
		validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
			name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
			if name == "-" {
				return ""
			}
			return name
		})
	})
	return validate
}

func validateStruct(s any) error {
	err := structValidator().Struct(s)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return err
	}

	var verrs entity.ValidationErrors
	for _, fe := range fieldErrs {
		verrs.Add(fe.Field(), violationMessage(fe))
	}
	return verrs.Err()
}

func violationMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required", "min":
		return "should not be empty"
	case "max":
		return "must be shorter than or equal to " + fe.Param() + " characters"
	default:
		return "is invalid"
	}
}
