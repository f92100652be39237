package books

import (
	"context"

	"github.com/l1t48/Test-backend/internal/server/models"
)

// Repository persists books. Every method is scoped to an owner; rows of
// other owners behave as if they did not exist.
type Repository interface {
	List(ctx context.Context, ownerID int64) ([]*models.Book, error)
	Get(ctx context.Context, ownerID, id int64) (*models.Book, error)
	Create(ctx context.Context, book *models.Book) (*models.Book, error)
	Update(ctx context.Context, book *models.Book) (*models.Book, error)
	Delete(ctx context.Context, ownerID, id int64) error
}
