package identity

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/99minutos/user-accounts/internal/core/domain"
)

// memUserService is an in-memory ports.UserService that records calls.
type memUserService struct {
	users map[uuid.UUID]domain.User
	calls []string
	err   error
}

func newMemUserService() *memUserService {
	return &memUserService{users: make(map[uuid.UUID]domain.User)}
}

func (s *memUserService) GetUsers(_ context.Context) ([]*domain.User, error) {
	s.calls = append(s.calls, "GetUsers")
	out := make([]*domain.User, 0, len(s.users))
	for _, u := range s.users {
		u := u
		out = append(out, &u)
	}
	return out, s.err
}

func (s *memUserService) GetUser(_ context.Context, identity domain.UserIdentity) (*domain.User, error) {
	s.calls = append(s.calls, "GetUser")
	if s.err != nil {
		return nil, s.err
	}
	u, ok := s.users[identity.UserID()]
	if !ok {
		return nil, nil
	}
	return &u, nil
}

func (s *memUserService) GetUserByEmail(_ context.Context, email string) (*domain.User, error) {
	s.calls = append(s.calls, "GetUserByEmail:"+email)
	if s.err != nil {
		return nil, s.err
	}
	for _, u := range s.users {
		if strings.EqualFold(u.Email, email) {
			u := u
			return &u, nil
		}
	}
	return nil, nil
}

func (s *memUserService) AddUser(_ context.Context, user *domain.User) error {
	s.calls = append(s.calls, "AddUser")
	if s.err != nil {
		return s.err
	}
	s.users[user.ID] = *user
	return nil
}

func (s *memUserService) UpdateUser(_ context.Context, user *domain.User) error {
	s.calls = append(s.calls, "UpdateUser")
	if s.err != nil {
		return s.err
	}
	s.users[user.ID] = *user
	return nil
}

func (s *memUserService) DeleteUser(_ context.Context, identity domain.UserIdentity) error {
	s.calls = append(s.calls, "DeleteUser")
	if s.err != nil {
		return s.err
	}
	delete(s.users, identity.UserID())
	return nil
}

// memRoleService is an in-memory ports.UserRoleService.
type memRoleService struct {
	names map[uuid.UUID][]string
	calls int
}

func newMemRoleService() *memRoleService {
	return &memRoleService{names: make(map[uuid.UUID][]string)}
}

func (s *memRoleService) GetRoles(_ context.Context, identities []domain.UserIdentity) (map[uuid.UUID][]domain.UserRole, error) {
	s.calls++
	out := make(map[uuid.UUID][]domain.UserRole)
	for _, identity := range identities {
		for _, n := range s.names[identity.UserID()] {
			out[identity.UserID()] = append(out[identity.UserID()], domain.UserRole{UserRef: domain.UserRef{ID: identity.UserID()}, RoleName: n})
		}
	}
	return out, nil
}

func (s *memRoleService) GetUserRoles(_ context.Context, identity domain.UserIdentity) ([]domain.UserRole, error) {
	s.calls++
	var out []domain.UserRole
	for _, n := range s.names[identity.UserID()] {
		out = append(out, domain.UserRole{UserRef: domain.UserRef{ID: identity.UserID()}, RoleName: n})
	}
	return out, nil
}

func (s *memRoleService) GetRoleNames(_ context.Context, identity domain.UserIdentity) ([]string, error) {
	s.calls++
	return s.names[identity.UserID()], nil
}

func (s *memRoleService) AddRole(_ context.Context, identity domain.UserIdentity, roleName string) error {
	s.calls++
	s.names[identity.UserID()] = append(s.names[identity.UserID()], roleName)
	return nil
}

func (s *memRoleService) DeleteRoles(_ context.Context, identity domain.UserIdentity) error {
	s.calls++
	delete(s.names, identity.UserID())
	return nil
}

// memTokenStore is an in-memory ports.TokenStore.
type memTokenStore struct {
	revoked map[string]time.Time
	err     error
}

func newMemTokenStore() *memTokenStore {
	return &memTokenStore{revoked: make(map[string]time.Time)}
}

func (s *memTokenStore) Revoke(_ context.Context, tokenID string, expiresAt time.Time) error {
	if s.err != nil {
		return s.err
	}
	s.revoked[tokenID] = expiresAt
	return nil
}

func (s *memTokenStore) IsRevoked(_ context.Context, tokenID string) (bool, error) {
	if s.err != nil {
		return false, s.err
	}
	_, ok := s.revoked[tokenID]
	return ok, nil
}

// plainHasher keeps tests fast; it is not a real hash.
type plainHasher struct{}

func (plainHasher) Hash(password string) (string, error) { return "hashed:" + password, nil }

func (plainHasher) Verify(hash, password string) (bool, error) {
	return hash == "hashed:"+password, nil
}
