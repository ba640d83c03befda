package web

import (
	"html/template"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/mirinai/goblog/apperror"
	"github.com/mirinai/goblog/articles"
)

// Views renders the HTML pages. It maps stored entities into
// presentation-shaped records before handing them to the templates: the list
// page gets id/title/content rows, the detail page additionally gets the
// created timestamp.
type Views struct {
	service articles.ArticleService
	tmpl    *template.Template
	logger  *zap.SugaredLogger
}

// NewViews parses the embedded templates and creates the Views.
func NewViews(service articles.ArticleService, logger *zap.SugaredLogger) (*Views, error) {
	tmpl, err := parseTemplates()
	if err != nil {
		return nil, apperror.NewInternalError("failed to parse templates", err)
	}
	return &Views{service: service, tmpl: tmpl, logger: logger}, nil
}

// HandleArticleList renders the article list page.
func (v *Views) HandleArticleList() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		stored, err := v.service.List(r.Context())
		if err != nil {
			v.renderError(w, err)
			return
		}

		rows := make([]articles.ArticleListViewResponse, 0, len(stored))
		for i := range stored {
			rows = append(rows, articles.NewArticleListViewResponse(&stored[i]))
		}

		v.render(w, "articleList.html", map[string]any{"Articles": rows})
	}
}

// HandleArticleDetail renders the detail page for a single article.
func (v *Views) HandleArticleDetail() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		raw := chi.URLParam(r, "id")
		id, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			http.Error(w, "invalid article id: "+raw, http.StatusBadRequest)
			return
		}

		article, err := v.service.Get(r.Context(), id)
		if err != nil {
			v.renderError(w, err)
			return
		}

		v.render(w, "article.html", map[string]any{"Article": articles.NewArticleViewResponse(article)})
	}
}

// HandleLoginPage renders the login form. The error flag is set when the
// login handler redirected back here after a failed attempt.
func (v *Views) HandleLoginPage() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		_, hasError := r.URL.Query()["error"]
		v.render(w, "login.html", map[string]any{"Error": hasError})
	}
}

// HandleSignupPage renders the signup form.
func (v *Views) HandleSignupPage() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		_, hasError := r.URL.Query()["error"]
		v.render(w, "signup.html", map[string]any{"Error": hasError})
	}
}

// render executes a page template. Template failures after headers are out
// can only be logged.
func (v *Views) render(w http.ResponseWriter, name string, data any) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := v.tmpl.ExecuteTemplate(w, name, data); err != nil {
		v.logger.Errorw("failed to render template", "template", name, "error", err)
	}
}

// renderError maps service errors onto plain status pages; a missing article
// is a 404, not a generic server error.
func (v *Views) renderError(w http.ResponseWriter, err error) {
	if appErr, ok := apperror.FromError(err); ok {
		http.Error(w, appErr.Message, appErr.StatusCode())
		return
	}
	http.Error(w, "internal server error", http.StatusInternalServerError)
}
