package domain

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// UserIdentity is anything that can name a user: a full User, a role
// membership, or a bare UserRef.
type UserIdentity interface {
	UserID() uuid.UUID
}

// UserRef is the minimal UserIdentity, used when only the id is known.
type UserRef struct {
	ID uuid.UUID `json:"user_id"`
}

func (r UserRef) UserID() uuid.UUID { return r.ID }

// User is the account aggregate. Roles are attached by the user service and
// are never persisted together with the user record.
type User struct {
	ID           uuid.UUID  `json:"id"`
	Email        string     `json:"email"`
	PasswordHash string     `json:"-"`
	FirstName    string     `json:"first_name"`
	LastName     string     `json:"last_name"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`
	Roles        []UserRole `json:"roles"`
}

func (u *User) UserID() uuid.UUID { return u.ID }

// Name returns the display name built from the profile fields.
func (u *User) Name() string {
	return strings.TrimSpace(u.FirstName + " " + u.LastName)
}

// RoleNames returns the names of the attached role memberships.
func (u *User) RoleNames() []string {
	names := make([]string, 0, len(u.Roles))
	for _, r := range u.Roles {
		names = append(names, r.RoleName)
	}
	return names
}

// IsAdmin reports whether the attached roles include RoleAdmin.
func (u *User) IsAdmin() bool {
	for _, r := range u.Roles {
		if r.RoleName == RoleAdmin {
			return true
		}
	}
	return false
}
