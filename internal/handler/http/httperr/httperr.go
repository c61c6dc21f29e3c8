// Package httperr is the single place where a failure becomes an HTTP outcome.
//
// Classify is total: every error maps to exactly one Outcome, and anything it
// does not recognize becomes the generic internal error.
package httperr

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"articles-api/internal/domain/entity"
	"articles-api/internal/handler/http/respond"
	"articles-api/internal/repository"
	artUC "articles-api/internal/usecase/article"
)

// MalformedIDMessage is returned for an identifier that is not an integer.
const MalformedIDMessage = "Validation failed (numeric string is expected)"

// Kind names the failure category an Outcome was derived from.
type Kind string

const (
	KindValidation  Kind = "validation"
	KindMalformedID Kind = "malformed_id"
	KindNotFound    Kind = "not_found"
	KindConflict    Kind = "conflict"
	KindInternal    Kind = "internal"
)

// Outcome is the normalized result of classifying a failure.
type Outcome struct {
	Kind   Kind
	Status int
	// Message is a string or a []string.
	Message any
}

// Internal reports whether the outcome is the generic 500.
func (o Outcome) Internal() bool {
	return o.Kind == KindInternal
}

var outcomesTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Name: "http_error_outcomes_total",
		Help: "Failures translated into HTTP responses, by kind and status",
	},
	[]string{"kind", "status"},
)

// Classify maps err to its outcome.
func Classify(err error) Outcome {
	var verrs entity.ValidationErrors
	if errors.As(err, &verrs) {
		return Outcome{Kind: KindValidation, Status: http.StatusBadRequest, Message: verrs.Violations()}
	}

	var verr *entity.ValidationError
	if errors.As(err, &verr) {
		return Outcome{Kind: KindValidation, Status: http.StatusBadRequest, Message: []string{verr.Violation()}}
	}

	if errors.Is(err, entity.ErrMalformedID) {
		return Outcome{Kind: KindMalformedID, Status: http.StatusBadRequest, Message: MalformedIDMessage}
	}

	var nf *artUC.NotFoundError
	if errors.As(err, &nf) {
		return Outcome{Kind: KindNotFound, Status: http.StatusNotFound, Message: nf.Error()}
	}
	if errors.Is(err, artUC.ErrArticleNotFound) || errors.Is(err, entity.ErrNotFound) {
		return Outcome{Kind: KindNotFound, Status: http.StatusNotFound, Message: "Article not found"}
	}

	var storeErr *repository.StoreError
	if errors.As(err, &storeErr) {
		return classifyStore(storeErr)
	}

	return internal()
}

func classifyStore(e *repository.StoreError) Outcome {
	switch e.Code {
	case repository.CodeUniqueViolation:
		return Outcome{Kind: KindConflict, Status: http.StatusConflict, Message: stripNewlines(e.Message)}
	case repository.CodeForeignKeyViolation,
		repository.CodeNotNullViolation,
		repository.CodeValueTooLong,
		repository.CodeValueOutOfRange:
		// Known to the adapter but deliberately unmapped.
		return internal()
	default:
		return internal()
	}
}

func internal() Outcome {
	return Outcome{Kind: KindInternal, Status: http.StatusInternalServerError, Message: respond.InternalErrorMessage}
}

var newlineReplacer = strings.NewReplacer("\r\n", "", "\n", "", "\r", "")

func stripNewlines(s string) string {
	return newlineReplacer.Replace(s)
}

// Write classifies err and writes the envelope. Internal outcomes are logged
// with credentials masked; client errors are logged at debug level.
func Write(w http.ResponseWriter, logger *slog.Logger, err error) Outcome {
	if logger == nil {
		logger = slog.Default()
	}

	out := Classify(err)
	outcomesTotal.WithLabelValues(string(out.Kind), strconv.Itoa(out.Status)).Inc()

	if out.Internal() {
		respond.InternalError(w, logger, err)
		return out
	}

	logger.Debug("request failed",
		slog.String("kind", string(out.Kind)),
		slog.Int("status", out.Status),
		slog.String("error", respond.SanitizeError(err)))
	// The conflict envelope carries only statusCode and message.
	respond.Error(w, out.Status, out.Message, out.Kind != KindConflict)
	return out
}
