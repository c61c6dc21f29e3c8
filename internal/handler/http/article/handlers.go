package article

import (
	"log/slog"
	"net/http"

	"articles-api/internal/handler/http/httperr"
	"articles-api/internal/handler/http/respond"
	"articles-api/internal/observability/logging"
	artUC "articles-api/internal/usecase/article"
)

type ListHandler struct {
	Svc    artUC.Service
	Logger *slog.Logger
}

// ServeHTTP lists published articles
// @Summary      List published articles
// @Description  Returns every article with published = true, ordered by id
// @Tags         articles
// @Produce      json
// @Success      200 {array}  DTO
// @Failure      429 {object} respond.ErrorBody "Too many requests"
// @Failure      500 {object} respond.ErrorBody
// @Router       /articles [get]
func (h ListHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	articles, err := h.Svc.ListPublished(r.Context())
	if err != nil {
		httperr.Write(w, logging.WithRequestID(r.Context(), h.Logger), err)
		return
	}
	respond.JSON(w, http.StatusOK, toDTOs(articles))
}

type DraftsHandler struct {
	Svc    artUC.Service
	Logger *slog.Logger
}

// ServeHTTP lists draft articles
// @Summary      List draft articles
// @Description  Returns every article with published = false, ordered by id
// @Tags         articles
// @Produce      json
// @Success      200 {array}  DTO
// @Failure      500 {object} respond.ErrorBody
// @Router       /articles/drafts [get]
func (h DraftsHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	articles, err := h.Svc.ListDrafts(r.Context())
	if err != nil {
		httperr.Write(w, logging.WithRequestID(r.Context(), h.Logger), err)
		return
	}
	respond.JSON(w, http.StatusOK, toDTOs(articles))
}

type GetHandler struct {
	Svc    artUC.Service
	Logger *slog.Logger
}

// ServeHTTP returns one article
// @Summary      Get an article
// @Tags         articles
// @Produce      json
// @Param        id  path      int  true  "Article ID"
// @Success      200 {object}  DTO
// @Failure      400 {object}  respond.ErrorBody "Identifier is not an integer"
// @Failure      404 {object}  respond.ErrorBody
// @Failure      500 {object}  respond.ErrorBody
// @Router       /articles/{id} [get]
func (h GetHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	article, err := h.Svc.Get(r.Context(), r.PathValue("id"))
	if err != nil {
		httperr.Write(w, logging.WithRequestID(r.Context(), h.Logger), err)
		return
	}
	respond.JSON(w, http.StatusOK, toDTO(article))
}

type CreateHandler struct {
	Svc    artUC.Service
	Logger *slog.Logger
}

// ServeHTTP creates an article
// @Summary      Create an article
// @Description  Fields other than title, description, body and published are ignored
// @Tags         articles
// @Accept       json
// @Produce      json
// @Param        article body     CreateRequest true "Article"
// @Success      201     {object} DTO
// @Failure      400     {object} respond.ErrorBody "Validation failed"
// @Failure      409     {object} respond.ErrorBody "Title already exists"
// @Failure      500     {object} respond.ErrorBody
// @Router       /articles [post]
func (h CreateHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	logger := logging.WithRequestID(r.Context(), h.Logger)

	in, err := decodeCreate(r.Body)
	if err != nil {
		httperr.Write(w, logger, err)
		return
	}

	article, err := h.Svc.Create(r.Context(), in)
	if err != nil {
		httperr.Write(w, logger, err)
		return
	}
	respond.JSON(w, http.StatusCreated, toDTO(article))
}

type UpdateHandler struct {
	Svc    artUC.Service
	Logger *slog.Logger
}

// ServeHTTP updates an article
// @Summary      Update an article
// @Description  Only the fields present in the body are changed
// @Tags         articles
// @Accept       json
// @Produce      json
// @Param        id      path     int           true "Article ID"
// @Param        article body     UpdateRequest true "Fields to change"
// @Success      200     {object} DTO
// @Failure      400     {object} respond.ErrorBody
// @Failure      404     {object} respond.ErrorBody
// @Failure      409     {object} respond.ErrorBody
// @Failure      500     {object} respond.ErrorBody
// @Router       /articles/{id} [patch]
func (h UpdateHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	logger := logging.WithRequestID(r.Context(), h.Logger)

	in, err := decodeUpdate(r.Body)
	if err != nil {
		httperr.Write(w, logger, err)
		return
	}

	article, err := h.Svc.Update(r.Context(), r.PathValue("id"), in)
	if err != nil {
		httperr.Write(w, logger, err)
		return
	}
	respond.JSON(w, http.StatusOK, toDTO(article))
}
