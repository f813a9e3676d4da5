package postgres

import (
	"context"
	"errors"
	"os"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/99minutos/user-accounts/internal/core/domain"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	url := os.Getenv("POSTGRES_TEST_URL")
	if url == "" {
		t.Skip("set POSTGRES_TEST_URL to run postgres integration tests")
	}

	s, err := Open(context.Background(), url)
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() {
		_, _ = s.pool.Exec(context.Background(), `TRUNCATE users, user_roles`)
		_ = s.Close(context.Background())
	})
	return s
}

func TestPostgresUserRepository_Lifecycle(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	u := &domain.User{
		ID:        uuid.New(),
		Email:     "bob@example.com",
		FirstName: "Bob",
		CreatedAt: time.Now().UTC().Truncate(time.Microsecond),
	}
	if err := s.Users.AddUser(ctx, u); err != nil {
		t.Fatalf("AddUser: %v", err)
	}
	if err := s.Users.AddUser(ctx, &domain.User{ID: uuid.New(), Email: "BOB@example.com"}); !errors.Is(err, domain.ErrUserExists) {
		t.Fatalf("expected ErrUserExists, got %v", err)
	}

	got, err := s.Users.GetUserByEmail(ctx, "Bob@Example.com")
	if err != nil {
		t.Fatalf("GetUserByEmail: %v", err)
	}
	if got.ID != u.ID || got.PasswordHash != "" {
		t.Fatalf("unexpected user: %+v", got)
	}

	got.PasswordHash = "opaque"
	if err := s.Users.UpdateUser(ctx, got); err != nil {
		t.Fatalf("UpdateUser: %v", err)
	}
	got, err = s.Users.GetUser(ctx, domain.UserRef{ID: u.ID})
	if err != nil || got.PasswordHash != "opaque" {
		t.Fatalf("expected hash persisted, got %+v, %v", got, err)
	}

	if err := s.Users.DeleteUser(ctx, got); err != nil {
		t.Fatalf("DeleteUser: %v", err)
	}
	if err := s.Users.DeleteUser(ctx, got); !errors.Is(err, domain.ErrUserNotFound) {
		t.Fatalf("expected ErrUserNotFound on second delete, got %v", err)
	}
}

func TestPostgresUserRoleRepository(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()
	a, b := uuid.New(), uuid.New()

	for _, r := range []domain.UserRole{
		{UserRef: domain.UserRef{ID: a}, RoleName: domain.RoleAdmin},
		{UserRef: domain.UserRef{ID: a}, RoleName: domain.RoleAdmin},
		{UserRef: domain.UserRef{ID: b}, RoleName: domain.RoleUser},
	} {
		if err := s.Roles.Add(ctx, r); err != nil {
			t.Fatalf("Add: %v", err)
		}
	}

	roles, err := s.Roles.FindByUsers(ctx, []uuid.UUID{a, b})
	if err != nil || len(roles) != 2 {
		t.Fatalf("expected 2 memberships, got %+v, %v", roles, err)
	}
	if err := s.Roles.DeleteByUser(ctx, b); err != nil {
		t.Fatalf("DeleteByUser: %v", err)
	}
	roles, err = s.Roles.FindByUser(ctx, b)
	if err != nil || len(roles) != 0 {
		t.Fatalf("expected no memberships, got %+v, %v", roles, err)
	}
}

func TestPostgresRepositories_CancelledContext(t *testing.T) {
	s := openTestStore(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := s.Users.GetUsers(ctx); err == nil {
		t.Fatalf("expected cancelled context to abort the users query")
	}
	if _, err := s.Users.GetUserByEmail(ctx, "bob@example.com"); err == nil || errors.Is(err, domain.ErrUserNotFound) {
		t.Fatalf("expected cancellation error rather than not-found, got %v", err)
	}
	if _, err := s.Roles.FindByUser(ctx, uuid.New()); err == nil {
		t.Fatalf("expected cancelled context to abort the roles query")
	}
}
