package repomanager

import (
	"context"
	"database/sql"

	"github.com/l1t48/Test-backend/internal/dbx"
	"github.com/l1t48/Test-backend/internal/server/repositories/books"
	"github.com/l1t48/Test-backend/internal/server/repositories/quotes"
	"github.com/l1t48/Test-backend/internal/server/repositories/users"
)

// RepositoryManager vends repositories bound to a DB handle or transaction
// and runs schema migrations.
type RepositoryManager interface {
	RunMigrations(context.Context, *sql.DB) error
	Users(db dbx.DBTX) users.Repository
	Books(db dbx.DBTX) books.Repository
	Quotes(db dbx.DBTX) quotes.Repository
}
