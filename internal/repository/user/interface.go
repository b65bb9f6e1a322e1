package user

import (
	"context"

	"github.com/iitigpt/go-campusgpt/internal/domain"
)

// UserRepository handles user identity records.
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
	FindByID(ctx context.Context, id uint) (*domain.User, error)
}
