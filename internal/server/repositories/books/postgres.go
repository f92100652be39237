// Package books provides PostgreSQL-backed, owner-scoped book persistence.
package books

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/l1t48/Test-backend/internal/common"
	"github.com/l1t48/Test-backend/internal/dbx"
	"github.com/l1t48/Test-backend/internal/server/models"
)

// PostgresRepository implements Repository over a dbx.DBTX.
type PostgresRepository struct {
	db dbx.DBTX
}

// NewPostgresRepository constructs a repository bound to the given DBTX.
func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// List returns the owner's books, newest first.
func (r *PostgresRepository) List(ctx context.Context, ownerID int64) ([]*models.Book, error) {
	query := `SELECT id, title, author, description, owner_id, created_at FROM books
		WHERE owner_id = $1
		ORDER BY created_at DESC, id DESC
		`
	rows, err := r.db.QueryContext(ctx, query, ownerID)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	result := make([]*models.Book, 0)
	for rows.Next() {
		var b models.Book
		if err := rows.Scan(&b.ID, &b.Title, &b.Author, &b.Description, &b.OwnerID, &b.CreatedAt); err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		result = append(result, &b)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	return result, nil
}

// Get returns one book of the owner or common.ErrorNotFound.
func (r *PostgresRepository) Get(ctx context.Context, ownerID, id int64) (*models.Book, error) {
	query := `SELECT id, title, author, description, owner_id, created_at FROM books
		WHERE id = $1 AND owner_id = $2
		`
	b := &models.Book{}
	err := r.db.QueryRowContext(ctx, query, id, ownerID).
		Scan(&b.ID, &b.Title, &b.Author, &b.Description, &b.OwnerID, &b.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return b, nil
}

// Create inserts book and fills in ID and CreatedAt.
func (r *PostgresRepository) Create(ctx context.Context, book *models.Book) (*models.Book, error) {
	query := `INSERT INTO books (title, author, description, owner_id)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at
		`
	err := r.db.QueryRowContext(ctx, query, book.Title, book.Author, book.Description, book.OwnerID).
		Scan(&book.ID, &book.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return book, nil
}

// Update overwrites title, author and description of a book the owner holds.
// A missing or foreign row yields common.ErrorNotFound.
func (r *PostgresRepository) Update(ctx context.Context, book *models.Book) (*models.Book, error) {
	query := `UPDATE books SET title = $1, author = $2, description = $3
		WHERE id = $4 AND owner_id = $5
		RETURNING created_at
		`
	err := r.db.QueryRowContext(ctx, query, book.Title, book.Author, book.Description, book.ID, book.OwnerID).
		Scan(&book.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return book, nil
}

// Delete removes a book the owner holds, or returns common.ErrorNotFound.
func (r *PostgresRepository) Delete(ctx context.Context, ownerID, id int64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM books WHERE id = $1 AND owner_id = $2`, id, ownerID)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected error: %w", err)
	}
	switch n {
	case 1:
		return nil
	case 0:
		return common.ErrorNotFound
	default:
		return fmt.Errorf("unexpected rows affected: %d", n)
	}
}
