package articles

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/mirinai/goblog/apperror"
	"github.com/mirinai/goblog/auth"
)

// Handlers exposes the article REST API. It delegates everything to an
// ArticleService and only concerns itself with HTTP shapes: decoding bodies,
// parsing path ids, and choosing status codes.
type Handlers struct {
	service ArticleService
}

// NewHandlers creates the article Handlers.
func NewHandlers(service ArticleService) *Handlers {
	return &Handlers{service: service}
}

// RegisterRoutes mounts the REST endpoints on the given router. The caller
// mounts this router at /api/articles.
func (h *Handlers) RegisterRoutes(r chi.Router) {
	r.Get("/", h.list)
	r.Post("/", h.create)
	r.Get("/{id}", h.get)
	r.Put("/{id}", h.update)
	r.Delete("/{id}", h.delete)
}

// list godoc
// @Summary List all articles
// @Produce json
// @Success 200 {array} articles.ArticleResponse
// @Router /api/articles [get]
func (h *Handlers) list(w http.ResponseWriter, r *http.Request) {
	stored, err := h.service.List(r.Context())
	if err != nil {
		auth.WriteError(w, r, err)
		return
	}

	// The list endpoint returns the title/content projection, never ids.
	response := make([]ArticleResponse, 0, len(stored))
	for i := range stored {
		response = append(response, NewArticleResponse(&stored[i]))
	}
	auth.WriteJSON(w, http.StatusOK, response)
}

// create godoc
// @Summary Create an article
// @Accept json
// @Produce json
// @Param article body articles.AddArticleRequest true "Article to create"
// @Success 201 {object} articles.Article
// @Failure 400 {object} apperror.ErrorResponse
// @Router /api/articles [post]
func (h *Handlers) create(w http.ResponseWriter, r *http.Request) {
	var req AddArticleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		auth.WriteError(w, r, apperror.NewBadRequestError("invalid request body: "+err.Error(), nil))
		return
	}
	defer r.Body.Close()

	article, err := h.service.Create(r.Context(), req)
	if err != nil {
		auth.WriteError(w, r, err)
		return
	}

	// The create response carries the full entity, id and timestamps included.
	auth.WriteJSON(w, http.StatusCreated, article)
}

// get godoc
// @Summary Get one article
// @Produce json
// @Param id path int true "Article id"
// @Success 200 {object} articles.ArticleResponse
// @Failure 404 {object} apperror.ErrorResponse
// @Router /api/articles/{id} [get]
func (h *Handlers) get(w http.ResponseWriter, r *http.Request) {
	id, ok := articleID(w, r)
	if !ok {
		return
	}

	article, err := h.service.Get(r.Context(), id)
	if err != nil {
		auth.WriteError(w, r, err)
		return
	}

	auth.WriteJSON(w, http.StatusOK, NewArticleResponse(article))
}

// update godoc
// @Summary Update an article
// @Accept json
// @Produce json
// @Param id path int true "Article id"
// @Param article body articles.UpdateArticleRequest true "New title and content"
// @Success 200 {object} articles.Article
// @Failure 404 {object} apperror.ErrorResponse
// @Router /api/articles/{id} [put]
func (h *Handlers) update(w http.ResponseWriter, r *http.Request) {
	id, ok := articleID(w, r)
	if !ok {
		return
	}

	var req UpdateArticleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		auth.WriteError(w, r, apperror.NewBadRequestError("invalid request body: "+err.Error(), nil))
		return
	}
	defer r.Body.Close()

	article, err := h.service.Update(r.Context(), id, req)
	if err != nil {
		auth.WriteError(w, r, err)
		return
	}

	auth.WriteJSON(w, http.StatusOK, article)
}

// delete godoc
// @Summary Delete an article
// @Param id path int true "Article id"
// @Success 200 "Deleted (empty body)"
// @Router /api/articles/{id} [delete]
func (h *Handlers) delete(w http.ResponseWriter, r *http.Request) {
	id, ok := articleID(w, r)
	if !ok {
		return
	}

	if err := h.service.Delete(r.Context(), id); err != nil {
		auth.WriteError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusOK)
}

// articleID parses the {id} path parameter. A malformed id is a bad request,
// reported here so the handlers above only see valid ids.
func articleID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	raw := chi.URLParam(r, "id")
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		auth.WriteError(w, r, apperror.NewBadRequestError("invalid article id: "+raw, nil))
		return 0, false
	}
	return id, true
}
