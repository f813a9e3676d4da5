package handler

import (
	"context"
	"net/http/httptest"
	"strings"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/99minutos/user-accounts/internal/api/middleware"
	"github.com/99minutos/user-accounts/internal/core/domain"
	"github.com/99minutos/user-accounts/internal/identity"
)

type stubAccounts struct {
	createFn   func(ctx context.Context, user *domain.User, password string) (identity.Result, error)
	updateFn   func(ctx context.Context, user *domain.User) (identity.Result, error)
	deleteFn   func(ctx context.Context, user *domain.User) (identity.Result, error)
	findByIDFn func(ctx context.Context, userID string) (*domain.User, error)
}

func (s *stubAccounts) Create(ctx context.Context, user *domain.User, password string) (identity.Result, error) {
	return s.createFn(ctx, user, password)
}

func (s *stubAccounts) Update(ctx context.Context, user *domain.User) (identity.Result, error) {
	return s.updateFn(ctx, user)
}

func (s *stubAccounts) Delete(ctx context.Context, user *domain.User) (identity.Result, error) {
	return s.deleteFn(ctx, user)
}

func (s *stubAccounts) FindByID(ctx context.Context, userID string) (*domain.User, error) {
	return s.findByIDFn(ctx, userID)
}

type stubSignIn struct {
	signInFn  func(ctx context.Context, email, password string) (*identity.SignInResult, error)
	signOutFn func(ctx context.Context, claims *identity.Claims) error
}

func (s *stubSignIn) PasswordSignIn(ctx context.Context, email, password string) (*identity.SignInResult, error) {
	return s.signInFn(ctx, email, password)
}

func (s *stubSignIn) SignOut(ctx context.Context, claims *identity.Claims) error {
	return s.signOutFn(ctx, claims)
}

type stubUserService struct {
	users []*domain.User
	err   error
}

func (s *stubUserService) GetUsers(context.Context) ([]*domain.User, error) { return s.users, s.err }

func (s *stubUserService) GetUser(context.Context, domain.UserIdentity) (*domain.User, error) {
	panic("not used")
}

func (s *stubUserService) GetUserByEmail(context.Context, string) (*domain.User, error) {
	panic("not used")
}

func (s *stubUserService) AddUser(context.Context, *domain.User) error    { panic("not used") }
func (s *stubUserService) UpdateUser(context.Context, *domain.User) error { panic("not used") }
func (s *stubUserService) DeleteUser(context.Context, domain.UserIdentity) error {
	panic("not used")
}

func newTestUser() *domain.User {
	id := uuid.MustParse("7d7a3c4e-1b2f-4f51-8f0a-2b6b5d2e9c10")
	return &domain.User{
		ID:        id,
		Email:     "alice@example.com",
		FirstName: "Alice",
		LastName:  "Smith",
		Roles: []domain.UserRole{
			{UserRef: domain.UserRef{ID: id}, RoleName: domain.RoleAdmin},
		},
	}
}

// newContext builds an echo context with the validator installed and, when
// userID is set, the values the Auth middleware would inject.
func newContext(method, target, body, userID string) (echo.Context, *httptest.ResponseRecorder) {
	e := echo.New()
	e.Validator = NewValidator()

	req := httptest.NewRequest(method, target, strings.NewReader(body))
	if body != "" {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if userID != "" {
		c.Set(middleware.CtxUserID, userID)
		c.Set(middleware.CtxClaims, &identity.Claims{})
	}
	return c, rec
}
