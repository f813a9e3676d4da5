package ports

import (
	"context"

	"github.com/99minutos/user-accounts/internal/core/domain"
)

// UserService defines use-case operations for user accounts.
// Single-user lookups return (nil, nil) when the user does not exist.
type UserService interface {
	GetUsers(ctx context.Context) ([]*domain.User, error)
	GetUser(ctx context.Context, identity domain.UserIdentity) (*domain.User, error)
	GetUserByEmail(ctx context.Context, email string) (*domain.User, error)
	AddUser(ctx context.Context, user *domain.User) error
	UpdateUser(ctx context.Context, user *domain.User) error
	DeleteUser(ctx context.Context, identity domain.UserIdentity) error
}
