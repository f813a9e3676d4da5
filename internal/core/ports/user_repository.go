package ports

import (
	"context"

	"github.com/99minutos/user-accounts/internal/core/domain"
)

// UserRepository defines persistence operations for user records.
// Lookups return domain.ErrUserNotFound when no record matches.
type UserRepository interface {
	GetUsers(ctx context.Context) ([]*domain.User, error)
	GetUser(ctx context.Context, identity domain.UserIdentity) (*domain.User, error)
	// GetUserByEmail matches the email case-insensitively.
	GetUserByEmail(ctx context.Context, email string) (*domain.User, error)
	AddUser(ctx context.Context, user *domain.User) error
	UpdateUser(ctx context.Context, user *domain.User) error
	DeleteUser(ctx context.Context, user *domain.User) error
}
