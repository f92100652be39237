package services

import (
	"context"
	"database/sql"
	"sort"
	"sync"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"

	"github.com/l1t48/Test-backend/internal/common"
	"github.com/l1t48/Test-backend/internal/dbx"
	"github.com/l1t48/Test-backend/internal/server/models"
	"github.com/l1t48/Test-backend/internal/server/repositories/books"
	"github.com/l1t48/Test-backend/internal/server/repositories/quotes"
	"github.com/l1t48/Test-backend/internal/server/repositories/users"
)

type errBoom struct{}

func (errBoom) Error() string { return "boom" }

func newSQLMockDB(t *testing.T) (*sql.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New error: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })
	return db, mock
}

// fakeUsersRepo is an in-memory credential store keyed by exact email.
type fakeUsersRepo struct {
	mu     sync.Mutex
	nextID int64
	byMail map[string]*models.User

	getErr    error
	createErr error
}

func newFakeUsersRepo() *fakeUsersRepo {
	return &fakeUsersRepo{byMail: map[string]*models.User{}}
}

func (f *fakeUsersRepo) Create(_ context.Context, u *models.User) (*models.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.createErr != nil {
		return nil, f.createErr
	}
	f.nextID++
	u.ID = f.nextID
	u.CreatedAt = time.Now()
	cp := *u
	f.byMail[u.Email] = &cp
	return u, nil
}

func (f *fakeUsersRepo) GetUserByEmail(_ context.Context, email string) (*models.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.getErr != nil {
		return nil, f.getErr
	}
	u, ok := f.byMail[email]
	if !ok {
		return nil, common.ErrorNotFound
	}
	cp := *u
	return &cp, nil
}

// fakeBooksRepo keeps books in memory and enforces owner scoping.
type fakeBooksRepo struct {
	mu     sync.Mutex
	nextID int64
	rows   map[int64]*models.Book
	err    error
}

func newFakeBooksRepo() *fakeBooksRepo {
	return &fakeBooksRepo{rows: map[int64]*models.Book{}}
}

func (f *fakeBooksRepo) List(_ context.Context, ownerID int64) ([]*models.Book, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return nil, f.err
	}
	out := make([]*models.Book, 0)
	for _, b := range f.rows {
		if b.OwnerID == ownerID {
			cp := *b
			out = append(out, &cp)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID > out[j].ID })
	return out, nil
}

func (f *fakeBooksRepo) Get(_ context.Context, ownerID, id int64) (*models.Book, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return nil, f.err
	}
	b, ok := f.rows[id]
	if !ok || b.OwnerID != ownerID {
		return nil, common.ErrorNotFound
	}
	cp := *b
	return &cp, nil
}

func (f *fakeBooksRepo) Create(_ context.Context, b *models.Book) (*models.Book, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return nil, f.err
	}
	f.nextID++
	b.ID = f.nextID
	b.CreatedAt = time.Now()
	cp := *b
	f.rows[b.ID] = &cp
	return b, nil
}

func (f *fakeBooksRepo) Update(_ context.Context, b *models.Book) (*models.Book, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return nil, f.err
	}
	cur, ok := f.rows[b.ID]
	if !ok || cur.OwnerID != b.OwnerID {
		return nil, common.ErrorNotFound
	}
	b.CreatedAt = cur.CreatedAt
	cp := *b
	f.rows[b.ID] = &cp
	return b, nil
}

func (f *fakeBooksRepo) Delete(_ context.Context, ownerID, id int64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return f.err
	}
	cur, ok := f.rows[id]
	if !ok || cur.OwnerID != ownerID {
		return common.ErrorNotFound
	}
	delete(f.rows, id)
	return nil
}

// fakeQuotesRepo keeps quotes in memory and enforces owner scoping.
type fakeQuotesRepo struct {
	mu     sync.Mutex
	nextID int64
	rows   map[int64]*models.Quote
	err    error
}

func newFakeQuotesRepo() *fakeQuotesRepo {
	return &fakeQuotesRepo{rows: map[int64]*models.Quote{}}
}

func (f *fakeQuotesRepo) Recent(_ context.Context, ownerID int64, limit int) ([]*models.Quote, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return nil, f.err
	}
	out := make([]*models.Quote, 0)
	for _, q := range f.rows {
		if q.OwnerID == ownerID {
			cp := *q
			out = append(out, &cp)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID > out[j].ID })
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (f *fakeQuotesRepo) Get(_ context.Context, ownerID, id int64) (*models.Quote, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return nil, f.err
	}
	q, ok := f.rows[id]
	if !ok || q.OwnerID != ownerID {
		return nil, common.ErrorNotFound
	}
	cp := *q
	return &cp, nil
}

func (f *fakeQuotesRepo) Create(_ context.Context, q *models.Quote) (*models.Quote, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return nil, f.err
	}
	f.nextID++
	q.ID = f.nextID
	q.CreatedAt = time.Now()
	cp := *q
	f.rows[q.ID] = &cp
	return q, nil
}

func (f *fakeQuotesRepo) Update(_ context.Context, q *models.Quote) (*models.Quote, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return nil, f.err
	}
	cur, ok := f.rows[q.ID]
	if !ok || cur.OwnerID != q.OwnerID {
		return nil, common.ErrorNotFound
	}
	q.CreatedAt = cur.CreatedAt
	cp := *q
	f.rows[q.ID] = &cp
	return q, nil
}

func (f *fakeQuotesRepo) Delete(_ context.Context, ownerID, id int64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return f.err
	}
	cur, ok := f.rows[id]
	if !ok || cur.OwnerID != ownerID {
		return common.ErrorNotFound
	}
	delete(f.rows, id)
	return nil
}

type fakeRepoManager struct {
	u *fakeUsersRepo
	b *fakeBooksRepo
	q *fakeQuotesRepo
}

func newFakeRepoManager() *fakeRepoManager {
	return &fakeRepoManager{u: newFakeUsersRepo(), b: newFakeBooksRepo(), q: newFakeQuotesRepo()}
}

func (m *fakeRepoManager) RunMigrations(context.Context, *sql.DB) error { return nil }
func (m *fakeRepoManager) Users(dbx.DBTX) users.Repository            { return m.u }
func (m *fakeRepoManager) Books(dbx.DBTX) books.Repository            { return m.b }
func (m *fakeRepoManager) Quotes(dbx.DBTX) quotes.Repository          { return m.q }
