package articles

import (
	"context"

	"go.uber.org/zap"
)

// ArticleService defines the article operations exposed to the HTTP surface.
// Handlers depend on this interface rather than a concrete store, which keeps
// them testable against an in-memory backend.
type ArticleService interface {
	Create(ctx context.Context, req AddArticleRequest) (*Article, error)
	List(ctx context.Context) ([]Article, error)
	Get(ctx context.Context, id int64) (*Article, error)
	Update(ctx context.Context, id int64, req UpdateArticleRequest) (*Article, error)
	Delete(ctx context.Context, id int64) error
}

// articleService is the Store-backed implementation of ArticleService.
type articleService struct {
	store  Store
	logger *zap.SugaredLogger
}

// NewArticleService creates an ArticleService over the given store.
func NewArticleService(store Store, logger *zap.SugaredLogger) ArticleService {
	return &articleService{store: store, logger: logger}
}

// Create persists a new article. Validation of non-empty title/content is a
// storage-boundary concern, so the request passes straight through.
func (s *articleService) Create(ctx context.Context, req AddArticleRequest) (*Article, error) {
	article, err := s.store.Insert(ctx, req.Title, req.Content)
	if err != nil {
		s.logger.Errorw("failed to create article", "error", err)
		return nil, err
	}
	s.logger.Infow("article created", "id", article.ID)
	return article, nil
}

// List returns every stored article as a finite snapshot.
func (s *articleService) List(ctx context.Context) ([]Article, error) {
	articles, err := s.store.List(ctx)
	if err != nil {
		s.logger.Errorw("failed to list articles", "error", err)
		return nil, err
	}
	return articles, nil
}

// Get returns the article with the given id, or NotFound.
func (s *articleService) Get(ctx context.Context, id int64) (*Article, error) {
	return s.store.Get(ctx, id)
}

// Update replaces title and content of an existing article, or NotFound.
func (s *articleService) Update(ctx context.Context, id int64, req UpdateArticleRequest) (*Article, error) {
	article, err := s.store.Update(ctx, id, req.Title, req.Content)
	if err != nil {
		return nil, err
	}
	s.logger.Infow("article updated", "id", id)
	return article, nil
}

// Delete removes the article; absent ids are silently ignored.
func (s *articleService) Delete(ctx context.Context, id int64) error {
	if err := s.store.Delete(ctx, id); err != nil {
		s.logger.Errorw("failed to delete article", "id", id, "error", err)
		return err
	}
	s.logger.Infow("article deleted", "id", id)
	return nil
}
