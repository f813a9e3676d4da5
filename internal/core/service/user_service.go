package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/99minutos/user-accounts/internal/core/domain"
	"github.com/99minutos/user-accounts/internal/core/ports"
)

// UserService assembles user aggregates from the user repository and the
// role service. It holds no per-request state.
type UserService struct {
	repo   ports.UserRepository
	roles  ports.UserRoleService
	logger zerolog.Logger
}

func NewUserService(repo ports.UserRepository, roles ports.UserRoleService, logger zerolog.Logger) *UserService {
	return &UserService{repo: repo, roles: roles, logger: logger}
}

// GetUsers returns every user with roles attached. Roles for the whole set
// are fetched with one call.
func (s *UserService) GetUsers(ctx context.Context) ([]*domain.User, error) {
	users, err := s.repo.GetUsers(ctx)
	if err != nil {
		return nil, err
	}

	identities := make([]domain.UserIdentity, len(users))
	for i, u := range users {
		identities[i] = u
	}

	roles, err := s.roles.GetRoles(ctx, identities)
	if err != nil {
		return nil, err
	}

	for _, u := range users {
		if r, ok := roles[u.ID]; ok {
			u.Roles = r
		} else {
			u.Roles = []domain.UserRole{}
		}
	}
	return users, nil
}

func (s *UserService) GetUser(ctx context.Context, identity domain.UserIdentity) (*domain.User, error) {
	user, err := s.repo.GetUser(ctx, identity)
	return s.withRoles(ctx, user, err)
}

func (s *UserService) GetUserByEmail(ctx context.Context, email string) (*domain.User, error) {
	user, err := s.repo.GetUserByEmail(ctx, email)
	return s.withRoles(ctx, user, err)
}

// withRoles turns a not-found lookup into an absent result and attaches the
// roles of a found user.
func (s *UserService) withRoles(ctx context.Context, user *domain.User, err error) (*domain.User, error) {
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return nil, nil
		}
		return nil, err
	}
	if user == nil {
		return nil, nil
	}

	roles, err := s.roles.GetUserRoles(ctx, user)
	if err != nil {
		return nil, err
	}
	if roles == nil {
		roles = []domain.UserRole{}
	}
	user.Roles = roles
	return user, nil
}

func (s *UserService) AddUser(ctx context.Context, user *domain.User) error {
	if err := s.repo.AddUser(ctx, user); err != nil {
		return err
	}
	s.logger.Info().Str("user_id", user.ID.String()).Msg("user created")
	return nil
}

func (s *UserService) UpdateUser(ctx context.Context, user *domain.User) error {
	return s.repo.UpdateUser(ctx, user)
}

// DeleteUser removes the user record and its role memberships. Both deletes
// are attempted; they are separate store calls and a failure in one does not
// roll back the other.
func (s *UserService) DeleteUser(ctx context.Context, identity domain.UserIdentity) error {
	user, err := s.repo.GetUser(ctx, identity)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return nil
		}
		return err
	}

	userErr := s.repo.DeleteUser(ctx, user)
	if userErr != nil {
		userErr = fmt.Errorf("delete user: %w", userErr)
	}
	rolesErr := s.roles.DeleteRoles(ctx, user)
	if rolesErr != nil {
		rolesErr = fmt.Errorf("delete user roles: %w", rolesErr)
	}

	if userErr != nil || rolesErr != nil {
		s.logger.Warn().
			Str("user_id", user.ID.String()).
			AnErr("user_err", userErr).
			AnErr("roles_err", rolesErr).
			Msg("user deletion incomplete")
		return errors.Join(userErr, rolesErr)
	}

	s.logger.Info().Str("user_id", user.ID.String()).Msg("user deleted")
	return nil
}
