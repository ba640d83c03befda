// Package articles implements the blog article feature: the article entity,
// its stores, the service layer, and the REST handlers.
package articles

import "time"

// Article represents a blog post. The ID is assigned by the store and is
// immutable once set; both timestamps are server-controlled and never taken
// from client input.
type Article struct {
	ID        int64     `json:"id"`
	Title     string    `json:"title"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
