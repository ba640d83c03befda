package articles

import "context"

// Store is the persistence boundary for articles. Implementations own all
// storage-level invariants: server-assigned immutable ids, server-controlled
// timestamps, and the non-empty title/content constraint, which is enforced
// here rather than pre-validated in handlers.
//
// Error contract: Get and Update return apperror.NotFoundError for a missing
// id; Insert returns apperror.ValidationError when the non-empty constraint
// is violated; Delete never fails for a missing id.
type Store interface {
	// Insert persists a new article and returns it with its assigned id and
	// timestamps filled in.
	Insert(ctx context.Context, title, content string) (*Article, error)
	// List returns every stored article in storage-default order.
	List(ctx context.Context) ([]Article, error)
	// Get returns the article with the given id.
	Get(ctx context.Context, id int64) (*Article, error)
	// Update replaces title and content and refreshes the updated timestamp.
	// The read and write happen as one atomic unit against the store.
	Update(ctx context.Context, id int64, title, content string) (*Article, error)
	// Delete removes the article if present. Deleting an absent id is not an
	// error (idempotent delete).
	Delete(ctx context.Context, id int64) error
}
