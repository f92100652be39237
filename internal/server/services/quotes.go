package services

import (
	"context"
	"database/sql"
	"strings"

	"github.com/l1t48/Test-backend/internal/server/models"
	"github.com/l1t48/Test-backend/internal/server/repositories/repomanager"
)

// RecentQuotesLimit is how many quotes Recent returns.
const RecentQuotesLimit = 5

// Field limits for quotes, in characters.
const (
	MaxQuoteText   = 1000
	MaxQuoteAuthor = 150
)

// QuoteInput is the writable part of a quote. Author is optional.
type QuoteInput struct {
	Text   string
	Author string
}

func (in QuoteInput) normalize() (*models.Quote, error) {
	q := &models.Quote{
		Text:   strings.TrimSpace(in.Text),
		Author: optional(in.Author),
	}

	fe := FieldErrors{}
	fe.required("text", q.Text)
	fe.max("text", q.Text, MaxQuoteText)
	if q.Author != nil {
		fe.max("author", *q.Author, MaxQuoteAuthor)
	}
	return q, fe.errOrNil()
}

// QuoteService manages quotes on behalf of their owner.
type QuoteService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
}

func NewQuoteService(db *sql.DB, m repomanager.RepositoryManager) *QuoteService {
	return &QuoteService{db: db, repomanager: m}
}

// Recent returns the owner's RecentQuotesLimit newest quotes.
func (s *QuoteService) Recent(ctx context.Context, ownerID int64) ([]*models.Quote, error) {
	items, err := s.repomanager.Quotes(s.db).Recent(ctx, ownerID, RecentQuotesLimit)
	if err != nil {
		return nil, internal("list quotes", err)
	}
	return items, nil
}

func (s *QuoteService) Get(ctx context.Context, ownerID, id int64) (*models.Quote, error) {
	q, err := s.repomanager.Quotes(s.db).Get(ctx, ownerID, id)
	if err != nil {
		return nil, notFoundOrInternal("get quote", err)
	}
	return q, nil
}

func (s *QuoteService) Create(ctx context.Context, ownerID int64, in QuoteInput) (*models.Quote, error) {
	q, err := in.normalize()
	if err != nil {
		return nil, err
	}
	q.OwnerID = ownerID

	created, err := s.repomanager.Quotes(s.db).Create(ctx, q)
	if err != nil {
		return nil, internal("create quote", err)
	}
	return created, nil
}

func (s *QuoteService) Update(ctx context.Context, ownerID, id int64, in QuoteInput) (*models.Quote, error) {
	q, err := in.normalize()
	if err != nil {
		return nil, err
	}
	q.ID = id
	q.OwnerID = ownerID

	updated, err := s.repomanager.Quotes(s.db).Update(ctx, q)
	if err != nil {
		return nil, notFoundOrInternal("update quote", err)
	}
	return updated, nil
}

func (s *QuoteService) Delete(ctx context.Context, ownerID, id int64) error {
	if err := s.repomanager.Quotes(s.db).Delete(ctx, ownerID, id); err != nil {
		return notFoundOrInternal("delete quote", err)
	}
	return nil
}
