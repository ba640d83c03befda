package articles

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/mirinai/goblog/apperror"
)

// PostgreSQL error codes relevant to the articles table.
const (
	pgCheckViolation   = "23514" // CHECK constraint (non-empty title/content)
	pgNotNullViolation = "23502"
)

// PostgresStore persists articles in the articles table.
type PostgresStore struct {
	db *pgxpool.Pool
}

// NewPostgresStore creates a Store backed by the given connection pool.
func NewPostgresStore(db *pgxpool.Pool) *PostgresStore {
	return &PostgresStore{db: db}
}

// Insert persists a new article. The id and both timestamps come back from
// the database; the non-empty constraint is a CHECK on the table, so an
// empty title or content surfaces as a validation error from here.
func (s *PostgresStore) Insert(ctx context.Context, title, content string) (*Article, error) {
	article := &Article{Title: title, Content: content}
	query := `INSERT INTO articles (title, content)
	          VALUES ($1, $2)
	          RETURNING id, created_at, updated_at`
	err := s.db.QueryRow(ctx, query, title, content).Scan(&article.ID, &article.CreatedAt, &article.UpdatedAt)
	if err != nil {
		if isConstraintViolation(err) {
			return nil, apperror.NewValidationError("title and content must not be empty", err)
		}
		return nil, apperror.NewDatabaseError("failed to insert article", err)
	}
	return article, nil
}

// List returns all articles. No ORDER BY: the contract is storage-default
// ordering.
func (s *PostgresStore) List(ctx context.Context) ([]Article, error) {
	query := `SELECT id, title, content, created_at, updated_at FROM articles`
	rows, err := s.db.Query(ctx, query)
	if err != nil {
		return nil, apperror.NewDatabaseError("failed to list articles", err)
	}
	defer rows.Close()

	var articles []Article
	for rows.Next() {
		var a Article
		if err := rows.Scan(&a.ID, &a.Title, &a.Content, &a.CreatedAt, &a.UpdatedAt); err != nil {
			return nil, apperror.NewDatabaseError("failed to scan article row", err)
		}
		articles = append(articles, a)
	}
	if err := rows.Err(); err != nil {
		return nil, apperror.NewDatabaseError("failed to read article rows", err)
	}
	return articles, nil
}

// Get returns the article with the given id.
func (s *PostgresStore) Get(ctx context.Context, id int64) (*Article, error) {
	var a Article
	query := `SELECT id, title, content, created_at, updated_at FROM articles WHERE id = $1`
	err := s.db.QueryRow(ctx, query, id).Scan(&a.ID, &a.Title, &a.Content, &a.CreatedAt, &a.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperror.NewNotFoundError(fmt.Sprintf("article not found: %d", id), nil)
		}
		return nil, apperror.NewDatabaseError("failed to get article", err)
	}
	return &a, nil
}

// Update replaces title and content inside a transaction. The row is locked
// with SELECT ... FOR UPDATE first, so the read-modify-write is a single
// atomic unit and two overlapping updates cannot lose each other's write.
// Named returns let the deferred commit/rollback report its own failure.
func (s *PostgresStore) Update(ctx context.Context, id int64, title, content string) (article *Article, err error) {
	tx, err := s.db.Begin(ctx)
	if err != nil {
		return nil, apperror.NewDatabaseError("failed to begin transaction", err)
	}
	defer func() {
		if p := recover(); p != nil {
			_ = tx.Rollback(ctx)
			panic(p)
		} else if err != nil {
			_ = tx.Rollback(ctx)
		} else if commitErr := tx.Commit(ctx); commitErr != nil {
			article = nil
			err = apperror.NewDatabaseError("failed to commit article update", commitErr)
		}
	}()

	var existing int64
	err = tx.QueryRow(ctx, `SELECT id FROM articles WHERE id = $1 FOR UPDATE`, id).Scan(&existing)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperror.NewNotFoundError(fmt.Sprintf("article not found: %d", id), nil)
		}
		return nil, apperror.NewDatabaseError("failed to lock article for update", err)
	}

	var a Article
	query := `UPDATE articles
	          SET title = $2, content = $3, updated_at = now()
	          WHERE id = $1
	          RETURNING id, title, content, created_at, updated_at`
	err = tx.QueryRow(ctx, query, id, title, content).Scan(&a.ID, &a.Title, &a.Content, &a.CreatedAt, &a.UpdatedAt)
	if err != nil {
		if isConstraintViolation(err) {
			return nil, apperror.NewValidationError("title and content must not be empty", err)
		}
		return nil, apperror.NewDatabaseError("failed to update article", err)
	}

	return &a, nil
}

// Delete removes the article if present. A delete that matches no rows is
// still a success.
func (s *PostgresStore) Delete(ctx context.Context, id int64) error {
	_, err := s.db.Exec(ctx, `DELETE FROM articles WHERE id = $1`, id)
	if err != nil {
		return apperror.NewDatabaseError("failed to delete article", err)
	}
	return nil
}

// isConstraintViolation reports whether err is a CHECK or NOT NULL violation
// from PostgreSQL.
func isConstraintViolation(err error) bool {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return false
	}
	return pgErr.Code == pgCheckViolation || pgErr.Code == pgNotNullViolation
}
