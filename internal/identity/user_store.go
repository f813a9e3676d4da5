package identity

import (
	"context"

	"github.com/google/uuid"

	"github.com/99minutos/user-accounts/internal/core/domain"
	"github.com/99minutos/user-accounts/internal/core/ports"
)

var _ AccountStore = (*Store)(nil)

// Store implements the identity store contracts on top of the user and role
// services. The email doubles as user name and normalized user name.
type Store struct {
	users ports.UserService
	roles ports.UserRoleService
}

func NewStore(users ports.UserService, roles ports.UserRoleService) *Store {
	return &Store{users: users, roles: roles}
}

func (s *Store) GetUserID(_ context.Context, user *domain.User) (string, error) {
	return user.ID.String(), nil
}

func (s *Store) GetUserName(_ context.Context, user *domain.User) (string, error) {
	return user.Email, nil
}

func (s *Store) SetUserName(_ context.Context, user *domain.User, userName string) error {
	user.Email = userName
	return nil
}

func (s *Store) GetNormalizedUserName(_ context.Context, user *domain.User) (string, error) {
	return user.Email, nil
}

// SetNormalizedUserName stores normalizedName as the email, verbatim.
func (s *Store) SetNormalizedUserName(_ context.Context, user *domain.User, normalizedName string) error {
	user.Email = normalizedName
	return nil
}

func (s *Store) Create(ctx context.Context, user *domain.User) (Result, error) {
	if err := s.users.AddUser(ctx, user); err != nil {
		return Result{}, err
	}
	return Success, nil
}

func (s *Store) Update(ctx context.Context, user *domain.User) (Result, error) {
	if err := s.users.UpdateUser(ctx, user); err != nil {
		return Result{}, err
	}
	return Success, nil
}

func (s *Store) Delete(ctx context.Context, user *domain.User) (Result, error) {
	if err := s.users.DeleteUser(ctx, user); err != nil {
		return Result{}, err
	}
	return Success, nil
}

func (s *Store) FindByID(ctx context.Context, userID string) (*domain.User, error) {
	id, err := uuid.Parse(userID)
	if err != nil {
		return nil, nil
	}
	return s.users.GetUser(ctx, domain.UserRef{ID: id})
}

func (s *Store) FindByName(ctx context.Context, normalizedUserName string) (*domain.User, error) {
	return s.users.GetUserByEmail(ctx, normalizedUserName)
}

func (s *Store) SetPasswordHash(_ context.Context, user *domain.User, passwordHash string) error {
	user.PasswordHash = passwordHash
	return nil
}

func (s *Store) GetPasswordHash(_ context.Context, user *domain.User) (string, error) {
	return user.PasswordHash, nil
}

func (s *Store) HasPassword(context.Context, *domain.User) (bool, error) {
	return false, ErrNotSupported
}

func (s *Store) GetRoles(ctx context.Context, user *domain.User) ([]string, error) {
	return s.roles.GetRoleNames(ctx, user)
}

func (s *Store) AddToRole(context.Context, *domain.User, string) error {
	return ErrNotSupported
}

func (s *Store) RemoveFromRole(context.Context, *domain.User, string) error {
	return ErrNotSupported
}

func (s *Store) IsInRole(context.Context, *domain.User, string) (bool, error) {
	return false, ErrNotSupported
}

func (s *Store) GetUsersInRole(context.Context, string) ([]*domain.User, error) {
	return nil, ErrNotSupported
}
