package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/l1t48/Test-backend/internal/common"
	"github.com/l1t48/Test-backend/internal/server/models"
	"github.com/l1t48/Test-backend/internal/server/repositories/repomanager"
)

// Field limits for books, in characters.
const (
	MaxBookTitle       = 200
	MaxBookAuthor      = 150
	MaxBookDescription = 2000
)

// BookInput is the writable part of a book.
type BookInput struct {
	Title       string
	Author      string
	Description string
}

func (in BookInput) normalize() (*models.Book, error) {
	b := &models.Book{
		Title:       strings.TrimSpace(in.Title),
		Author:      strings.TrimSpace(in.Author),
		Description: optional(in.Description),
	}

	fe := FieldErrors{}
	fe.required("title", b.Title)
	fe.max("title", b.Title, MaxBookTitle)
	fe.required("author", b.Author)
	fe.max("author", b.Author, MaxBookAuthor)
	if b.Description != nil {
		fe.max("description", *b.Description, MaxBookDescription)
	}
	return b, fe.errOrNil()
}

// BookService manages books on behalf of their owner.
type BookService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
}

func NewBookService(db *sql.DB, m repomanager.RepositoryManager) *BookService {
	return &BookService{db: db, repomanager: m}
}

// List returns the owner's books, newest first.
func (s *BookService) List(ctx context.Context, ownerID int64) ([]*models.Book, error) {
	items, err := s.repomanager.Books(s.db).List(ctx, ownerID)
	if err != nil {
		return nil, internal("list books", err)
	}
	return items, nil
}

// Get returns a book the owner holds or common.ErrorNotFound.
func (s *BookService) Get(ctx context.Context, ownerID, id int64) (*models.Book, error) {
	b, err := s.repomanager.Books(s.db).Get(ctx, ownerID, id)
	if err != nil {
		return nil, notFoundOrInternal("get book", err)
	}
	return b, nil
}

func (s *BookService) Create(ctx context.Context, ownerID int64, in BookInput) (*models.Book, error) {
	b, err := in.normalize()
	if err != nil {
		return nil, err
	}
	b.OwnerID = ownerID

	created, err := s.repomanager.Books(s.db).Create(ctx, b)
	if err != nil {
		return nil, internal("create book", err)
	}
	return created, nil
}

func (s *BookService) Update(ctx context.Context, ownerID, id int64, in BookInput) (*models.Book, error) {
	b, err := in.normalize()
	if err != nil {
		return nil, err
	}
	b.ID = id
	b.OwnerID = ownerID

	updated, err := s.repomanager.Books(s.db).Update(ctx, b)
	if err != nil {
		return nil, notFoundOrInternal("update book", err)
	}
	return updated, nil
}

func (s *BookService) Delete(ctx context.Context, ownerID, id int64) error {
	if err := s.repomanager.Books(s.db).Delete(ctx, ownerID, id); err != nil {
		return notFoundOrInternal("delete book", err)
	}
	return nil
}

func internal(op string, err error) error {
	return fmt.Errorf("%w: %s: %v", common.ErrorInternal, op, err)
}

func notFoundOrInternal(op string, err error) error {
	if errors.Is(err, common.ErrorNotFound) {
		return common.ErrorNotFound
	}
	return internal(op, err)
}
