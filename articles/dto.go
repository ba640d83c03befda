package articles

import "time"

// AddArticleRequest is the payload for creating an article.
type AddArticleRequest struct {
	Title   string `json:"title" example:"title"`
	Content string `json:"content" example:"content"`
}

// UpdateArticleRequest is the payload for updating an article's title and
// content. Nothing else about an article can be changed.
type UpdateArticleRequest struct {
	Title   string `json:"title" example:"new title"`
	Content string `json:"content" example:"new content"`
}

// ArticleResponse is the projection returned by the read endpoints of the
// REST API: title and content only, no identifier.
type ArticleResponse struct {
	Title   string `json:"title"`
	Content string `json:"content"`
}

// NewArticleResponse maps an entity to its API projection.
func NewArticleResponse(a *Article) ArticleResponse {
	return ArticleResponse{Title: a.Title, Content: a.Content}
}

// ArticleListViewResponse is the row shape for the rendered list page.
type ArticleListViewResponse struct {
	ID      int64
	Title   string
	Content string
}

// NewArticleListViewResponse maps an entity to a list page row.
func NewArticleListViewResponse(a *Article) ArticleListViewResponse {
	return ArticleListViewResponse{ID: a.ID, Title: a.Title, Content: a.Content}
}

// ArticleViewResponse is the shape for the rendered detail page. Unlike the
// list row it includes the created timestamp.
type ArticleViewResponse struct {
	ID        int64
	Title     string
	Content   string
	CreatedAt time.Time
}

// NewArticleViewResponse maps an entity to the detail page shape.
func NewArticleViewResponse(a *Article) ArticleViewResponse {
	return ArticleViewResponse{ID: a.ID, Title: a.Title, Content: a.Content, CreatedAt: a.CreatedAt}
}
