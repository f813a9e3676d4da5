// Package identity holds the account identity layer: the store capability
// contracts, the Store adapter that satisfies them on top of the user and
// role services, and the managers that drive sign-up, sign-in and sign-out
// through those contracts.
package identity

import (
	"context"
	"errors"
	"strings"

	"github.com/99minutos/user-accounts/internal/core/domain"
)

// ErrNotSupported is returned by store members that are part of a contract
// but have no backing implementation.
var ErrNotSupported = errors.New("identity: operation not supported")

// Result reports the outcome of a store or manager mutation. Validation
// failures are carried in Errors; infrastructure failures are returned as
// errors alongside a zero Result.
type Result struct {
	Succeeded bool
	Errors    []string
}

// Success is the Result of a mutation that completed.
var Success = Result{Succeeded: true}

// Failed builds an unsuccessful Result.
func Failed(errs ...string) Result {
	return Result{Errors: errs}
}

func (r Result) String() string {
	if r.Succeeded {
		return "succeeded"
	}
	return "failed: " + strings.Join(r.Errors, "; ")
}

// UserStore is the base capability: identifier, names, lifecycle and lookup.
type UserStore interface {
	GetUserID(ctx context.Context, user *domain.User) (string, error)
	GetUserName(ctx context.Context, user *domain.User) (string, error)
	SetUserName(ctx context.Context, user *domain.User, userName string) error
	GetNormalizedUserName(ctx context.Context, user *domain.User) (string, error)
	SetNormalizedUserName(ctx context.Context, user *domain.User, normalizedName string) error
	Create(ctx context.Context, user *domain.User) (Result, error)
	Update(ctx context.Context, user *domain.User) (Result, error)
	Delete(ctx context.Context, user *domain.User) (Result, error)
	// FindByID returns (nil, nil) when userID is not a well-formed id or no
	// user has it.
	FindByID(ctx context.Context, userID string) (*domain.User, error)
	FindByName(ctx context.Context, normalizedUserName string) (*domain.User, error)
}

// UserPasswordStore adds storage of password hashes.
type UserPasswordStore interface {
	UserStore
	SetPasswordHash(ctx context.Context, user *domain.User, passwordHash string) error
	GetPasswordHash(ctx context.Context, user *domain.User) (string, error)
	HasPassword(ctx context.Context, user *domain.User) (bool, error)
}

// UserRoleStore adds role membership queries and mutation.
type UserRoleStore interface {
	UserStore
	AddToRole(ctx context.Context, user *domain.User, roleName string) error
	RemoveFromRole(ctx context.Context, user *domain.User, roleName string) error
	GetRoles(ctx context.Context, user *domain.User) ([]string, error)
	IsInRole(ctx context.Context, user *domain.User, roleName string) (bool, error)
	GetUsersInRole(ctx context.Context, roleName string) ([]*domain.User, error)
}

// AccountStore is the full capability set the managers depend on.
type AccountStore interface {
	UserPasswordStore
	UserRoleStore
}
