package service

import (
	"context"
	"strings"

	"github.com/google/uuid"

	"github.com/99minutos/user-accounts/internal/core/domain"
	"github.com/99minutos/user-accounts/internal/core/ports"
)

type userRoleService struct {
	repo ports.UserRoleRepository
}

// NewUserRoleService returns a UserRoleService backed by repo.
func NewUserRoleService(repo ports.UserRoleRepository) ports.UserRoleService {
	return &userRoleService{repo: repo}
}

func (s *userRoleService) GetRoles(ctx context.Context, identities []domain.UserIdentity) (map[uuid.UUID][]domain.UserRole, error) {
	byUser := make(map[uuid.UUID][]domain.UserRole, len(identities))
	if len(identities) == 0 {
		return byUser, nil
	}

	ids := make([]uuid.UUID, 0, len(identities))
	seen := make(map[uuid.UUID]struct{}, len(identities))
	for _, identity := range identities {
		id := identity.UserID()
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		ids = append(ids, id)
	}

	roles, err := s.repo.FindByUsers(ctx, ids)
	if err != nil {
		return nil, err
	}
	for _, r := range roles {
		byUser[r.ID] = append(byUser[r.ID], r)
	}
	return byUser, nil
}

func (s *userRoleService) GetUserRoles(ctx context.Context, identity domain.UserIdentity) ([]domain.UserRole, error) {
	return s.repo.FindByUser(ctx, identity.UserID())
}

func (s *userRoleService) GetRoleNames(ctx context.Context, identity domain.UserIdentity) ([]string, error) {
	roles, err := s.repo.FindByUser(ctx, identity.UserID())
	if err != nil {
		return nil, err
	}
	names := make([]string, 0, len(roles))
	for _, r := range roles {
		names = append(names, r.RoleName)
	}
	return names, nil
}

func (s *userRoleService) AddRole(ctx context.Context, identity domain.UserIdentity, roleName string) error {
	return s.repo.Add(ctx, domain.UserRole{
		UserRef:  domain.UserRef{ID: identity.UserID()},
		RoleName: strings.ToLower(strings.TrimSpace(roleName)),
	})
}

func (s *userRoleService) DeleteRoles(ctx context.Context, identity domain.UserIdentity) error {
	return s.repo.DeleteByUser(ctx, identity.UserID())
}
