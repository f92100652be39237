// Package quotes provides PostgreSQL-backed, owner-scoped quote persistence.
package quotes

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/l1t48/Test-backend/internal/common"
	"github.com/l1t48/Test-backend/internal/dbx"
	"github.com/l1t48/Test-backend/internal/server/models"
)

type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// Recent returns up to limit of the owner's quotes, newest first.
func (r *PostgresRepository) Recent(ctx context.Context, ownerID int64, limit int) ([]*models.Quote, error) {
	query := `SELECT id, text, author, owner_id, created_at FROM quotes
		WHERE owner_id = $1
		ORDER BY created_at DESC, id DESC
		LIMIT $2
		`
	rows, err := r.db.QueryContext(ctx, query, ownerID, limit)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	result := make([]*models.Quote, 0, limit)
	for rows.Next() {
		var q models.Quote
		if err := rows.Scan(&q.ID, &q.Text, &q.Author, &q.OwnerID, &q.CreatedAt); err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		result = append(result, &q)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	return result, nil
}

func (r *PostgresRepository) Get(ctx context.Context, ownerID, id int64) (*models.Quote, error) {
	query := `SELECT id, text, author, owner_id, created_at FROM quotes
		WHERE id = $1 AND owner_id = $2
		`
	q := &models.Quote{}
	err := r.db.QueryRowContext(ctx, query, id, ownerID).
		Scan(&q.ID, &q.Text, &q.Author, &q.OwnerID, &q.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return q, nil
}

func (r *PostgresRepository) Create(ctx context.Context, quote *models.Quote) (*models.Quote, error) {
	query := `INSERT INTO quotes (text, author, owner_id)
		VALUES ($1, $2, $3)
		RETURNING id, created_at
		`
	err := r.db.QueryRowContext(ctx, query, quote.Text, quote.Author, quote.OwnerID).
		Scan(&quote.ID, &quote.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return quote, nil
}

func (r *PostgresRepository) Update(ctx context.Context, quote *models.Quote) (*models.Quote, error) {
	query := `UPDATE quotes SET text = $1, author = $2
		WHERE id = $3 AND owner_id = $4
		RETURNING created_at
		`
	err := r.db.QueryRowContext(ctx, query, quote.Text, quote.Author, quote.ID, quote.OwnerID).
		Scan(&quote.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return quote, nil
}

func (r *PostgresRepository) Delete(ctx context.Context, ownerID, id int64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM quotes WHERE id = $1 AND owner_id = $2`, id, ownerID)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected error: %w", err)
	}
	if n == 0 {
		return common.ErrorNotFound
	}
	return nil
}
