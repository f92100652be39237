package quotes

import (
	"context"

	"github.com/l1t48/Test-backend/internal/server/models"
)

// Repository persists quotes, scoped to an owner like books.Repository.
type Repository interface {
	Recent(ctx context.Context, ownerID int64, limit int) ([]*models.Quote, error)
	Get(ctx context.Context, ownerID, id int64) (*models.Quote, error)
	Create(ctx context.Context, quote *models.Quote) (*models.Quote, error)
	Update(ctx context.Context, quote *models.Quote) (*models.Quote, error)
	Delete(ctx context.Context, ownerID, id int64) error
}
