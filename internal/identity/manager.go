package identity

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/99minutos/user-accounts/internal/core/domain"
)

const (
	minPasswordLength = 8
	// bcrypt only hashes the first 72 bytes and rejects longer input.
	maxPasswordBytes = 72
)

// NormalizeName is the lookup normalizer applied to user names before they
// reach the store.
func NormalizeName(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}

// Manager drives account lifecycle operations through an AccountStore.
type Manager struct {
	store  AccountStore
	hasher PasswordHasher
	log    zerolog.Logger
	now    func() time.Time
}

func NewManager(store AccountStore, hasher PasswordHasher, log zerolog.Logger) *Manager {
	return &Manager{store: store, hasher: hasher, log: log, now: time.Now}
}

// Create validates and stores a new account with the given password.
// Validation problems are reported in the Result, not as errors.
func (m *Manager) Create(ctx context.Context, user *domain.User, password string) (Result, error) {
	var problems []string
	if strings.TrimSpace(user.Email) == "" {
		problems = append(problems, "email is required")
	}
	if len(password) < minPasswordLength {
		problems = append(problems, fmt.Sprintf("password must be at least %d characters", minPasswordLength))
	}
	if len(password) > maxPasswordBytes {
		problems = append(problems, fmt.Sprintf("password must be at most %d bytes", maxPasswordBytes))
	}
	if len(problems) > 0 {
		return Failed(problems...), nil
	}

	if err := m.normalize(ctx, user); err != nil {
		return Result{}, err
	}

	normalized, err := m.store.GetNormalizedUserName(ctx, user)
	if err != nil {
		return Result{}, err
	}
	existing, err := m.store.FindByName(ctx, normalized)
	if err != nil {
		return Result{}, err
	}
	if existing != nil {
		return Failed("email is already taken"), nil
	}

	hash, err := m.hasher.Hash(password)
	if err != nil {
		return Result{}, fmt.Errorf("hash password: %w", err)
	}
	if err := m.store.SetPasswordHash(ctx, user, hash); err != nil {
		return Result{}, err
	}

	if user.ID == uuid.Nil {
		user.ID = uuid.New()
	}
	now := m.now().UTC()
	user.CreatedAt = now
	user.UpdatedAt = now

	res, err := m.store.Create(ctx, user)
	if err != nil {
		return Result{}, err
	}
	m.log.Info().Str("user_id", user.ID.String()).Msg("account created")
	return res, nil
}

func (m *Manager) Update(ctx context.Context, user *domain.User) (Result, error) {
	if err := m.normalize(ctx, user); err != nil {
		return Result{}, err
	}
	user.UpdatedAt = m.now().UTC()
	return m.store.Update(ctx, user)
}

func (m *Manager) Delete(ctx context.Context, user *domain.User) (Result, error) {
	return m.store.Delete(ctx, user)
}

func (m *Manager) FindByID(ctx context.Context, userID string) (*domain.User, error) {
	return m.store.FindByID(ctx, userID)
}

func (m *Manager) FindByEmail(ctx context.Context, email string) (*domain.User, error) {
	return m.store.FindByName(ctx, NormalizeName(email))
}

func (m *Manager) GetRoles(ctx context.Context, user *domain.User) ([]string, error) {
	return m.store.GetRoles(ctx, user)
}

func (m *Manager) IsInRole(ctx context.Context, user *domain.User, roleName string) (bool, error) {
	return m.store.IsInRole(ctx, user, roleName)
}

// CheckPassword reports whether password matches the stored hash. A user
// without a hash never matches.
func (m *Manager) CheckPassword(ctx context.Context, user *domain.User, password string) (bool, error) {
	hash, err := m.store.GetPasswordHash(ctx, user)
	if err != nil {
		return false, err
	}
	if hash == "" {
		return false, nil
	}
	return m.hasher.Verify(hash, password)
}

func (m *Manager) normalize(ctx context.Context, user *domain.User) error {
	name, err := m.store.GetUserName(ctx, user)
	if err != nil {
		return err
	}
	return m.store.SetNormalizedUserName(ctx, user, NormalizeName(name))
}
