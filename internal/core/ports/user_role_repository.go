package ports

import (
	"context"

	"github.com/google/uuid"

	"github.com/99minutos/user-accounts/internal/core/domain"
)

// UserRoleRepository persists (user, role) memberships.
type UserRoleRepository interface {
	FindByUsers(ctx context.Context, userIDs []uuid.UUID) ([]domain.UserRole, error)
	FindByUser(ctx context.Context, userID uuid.UUID) ([]domain.UserRole, error)
	// Add is a no-op when the membership already exists.
	Add(ctx context.Context, role domain.UserRole) error
	DeleteByUser(ctx context.Context, userID uuid.UUID) error
}
