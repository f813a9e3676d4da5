package identity

import (
	"context"
	"fmt"
	"slices"

	"github.com/99minutos/user-accounts/internal/core/domain"
	"github.com/99minutos/user-accounts/internal/core/ports"
)

// EnsureAdmin creates the account for email when it is missing and grants it
// RoleAdmin. An existing account keeps its password.
func EnsureAdmin(ctx context.Context, m *Manager, roles ports.UserRoleService, email, password string) (*domain.User, error) {
	user, err := m.FindByEmail(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("look up admin: %w", err)
	}

	if user == nil {
		user = &domain.User{Email: email, FirstName: "Administrator"}
		res, err := m.Create(ctx, user, password)
		if err != nil {
			return nil, fmt.Errorf("create admin: %w", err)
		}
		if !res.Succeeded {
			return nil, fmt.Errorf("create admin: %s", res)
		}
	}

	names, err := roles.GetRoleNames(ctx, user)
	if err != nil {
		return nil, fmt.Errorf("load admin roles: %w", err)
	}
	if slices.Contains(names, domain.RoleAdmin) {
		return user, nil
	}
	if err := roles.AddRole(ctx, user, domain.RoleAdmin); err != nil {
		return nil, fmt.Errorf("grant admin role: %w", err)
	}
	m.log.Info().Str("user_id", user.ID.String()).Msg("admin role granted")
	return user, nil
}
