package ports

import (
	"context"

	"github.com/google/uuid"

	"github.com/99minutos/user-accounts/internal/core/domain"
)

// UserRoleService resolves and mutates role memberships.
type UserRoleService interface {
	// GetRoles returns the memberships of every given user, keyed by user id,
	// using a single store call.
	GetRoles(ctx context.Context, identities []domain.UserIdentity) (map[uuid.UUID][]domain.UserRole, error)
	GetUserRoles(ctx context.Context, identity domain.UserIdentity) ([]domain.UserRole, error)
	GetRoleNames(ctx context.Context, identity domain.UserIdentity) ([]string, error)
	AddRole(ctx context.Context, identity domain.UserIdentity, roleName string) error
	DeleteRoles(ctx context.Context, identity domain.UserIdentity) error
}
