package article

import (
	"log/slog"
	"net/http"

	artUC "articles-api/internal/usecase/article"
)

// Register registers all article-related HTTP handlers with the given mux.
func Register(mux *http.ServeMux, svc artUC.Service, logger *slog.Logger) {
	if logger == nil {
		logger = slog.Default()
	}

	mux.Handle("GET /articles", ListHandler{Svc: svc, Logger: logger})
	mux.Handle("GET /articles/drafts", DraftsHandler{Svc: svc, Logger: logger})
	mux.Handle("GET /articles/{id}", GetHandler{Svc: svc, Logger: logger})
	mux.Handle("POST /articles", CreateHandler{Svc: svc, Logger: logger})
	mux.Handle("PATCH /articles/{id}", UpdateHandler{Svc: svc, Logger: logger})
}
