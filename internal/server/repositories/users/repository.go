package users

import (
	"context"

	"github.com/l1t48/Test-backend/internal/server/models"
)

// Repository is the credential store. Email lookups are exact matches.
type Repository interface {
	Create(ctx context.Context, user *models.User) (*models.User, error)
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)
}
