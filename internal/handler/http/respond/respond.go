// Package respond provides utilities for sending HTTP responses in JSON format.
// Every failure response shares one envelope, see ErrorBody.
package respond

import (
	"encoding/json"
	"log/slog"
	"net/http"
)

// ErrorBody is the envelope returned for every failure.
// Message is either a string or a list of strings. Error carries the HTTP
// status text and is omitted on the generic internal error.
type ErrorBody struct {
	StatusCode int    `json:"statusCode" example:"404"`
	Message    any    `json:"message" swaggertype:"string" example:"Article with id 100 not found"`
	Error      string `json:"error,omitempty" example:"Not Found"`
} // @name ErrorResponse

// JSON writes a JSON response with the given status code and data.
func JSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if v != nil {
		if err := json.NewEncoder(w).Encode(v); err != nil {
			// Log the error but cannot send error response as headers already sent
			slog.Default().Error("failed to encode JSON response",
				slog.Int("status_code", code),
				slog.Any("error", err))
		}
	}
}

// Error writes the failure envelope. message must be a string or []string.
// withStatusText controls whether the "error" field is present.
func Error(w http.ResponseWriter, code int, message any, withStatusText bool) {
	body := ErrorBody{StatusCode: code, Message: message}
	if withStatusText {
		body.Error = http.StatusText(code)
	}
	JSON(w, code, body)
}

// InternalError writes the generic 500 envelope. Nothing about err is exposed;
// it is logged with secrets masked.
func InternalError(w http.ResponseWriter, logger *slog.Logger, err error) {
	if logger == nil {
		logger = slog.Default()
	}
	if err != nil {
		logger.Error("internal server error",
			slog.Int("code", http.StatusInternalServerError),
			slog.String("error", SanitizeError(err)))
	}
	Error(w, http.StatusInternalServerError, InternalErrorMessage, false)
}

// InternalErrorMessage is the only text a client ever sees for a 500.
const InternalErrorMessage = "Internal server error"
