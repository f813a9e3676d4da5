package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"

	"github.com/99minutos/user-accounts/internal/api/handler"
	"github.com/99minutos/user-accounts/internal/core/domain"
	"github.com/99minutos/user-accounts/internal/identity"
)

type stubTokens struct {
	claims map[string]*identity.Claims
}

func (s stubTokens) ValidateToken(_ context.Context, raw string) (*identity.Claims, error) {
	if c, ok := s.claims[raw]; ok {
		return c, nil
	}
	return nil, domain.ErrInvalidCredentials
}

type stubUsers struct {
	users []*domain.User
}

func (s stubUsers) GetUsers(context.Context) ([]*domain.User, error) { return s.users, nil }
func (s stubUsers) GetUser(context.Context, domain.UserIdentity) (*domain.User, error) {
	return nil, nil
}
func (s stubUsers) GetUserByEmail(context.Context, string) (*domain.User, error) { return nil, nil }
func (s stubUsers) AddUser(context.Context, *domain.User) error                  { return nil }
func (s stubUsers) UpdateUser(context.Context, *domain.User) error               { return nil }
func (s stubUsers) DeleteUser(context.Context, domain.UserIdentity) error        { return nil }

type stubAccounts struct {
	handler.AccountManager
	user *domain.User
}

func (s stubAccounts) FindByID(_ context.Context, userID string) (*domain.User, error) {
	if s.user != nil && s.user.ID.String() == userID {
		return s.user, nil
	}
	return nil, nil
}

func newTestRouter() (http.Handler, *domain.User) {
	user := &domain.User{ID: uuid.New(), Email: "alice@example.com", FirstName: "Alice"}
	tokens := stubTokens{claims: map[string]*identity.Claims{
		"user-token": {
			Roles:            []string{domain.RoleUser},
			RegisteredClaims: jwt.RegisteredClaims{Subject: user.ID.String()},
		},
		"admin-token": {
			Roles:            []string{domain.RoleAdmin},
			RegisteredClaims: jwt.RegisteredClaims{Subject: uuid.NewString()},
		},
	}}

	e := NewRouter(Dependencies{
		Accounts: stubAccounts{user: user},
		Tokens:   tokens,
		Users:    stubUsers{users: []*domain.User{user}},
		HealthChecks: map[string]handler.HealthCheck{
			"store": func(context.Context) error { return nil },
		},
		Registry: prometheus.NewRegistry(),
	}, zerolog.Nop())
	return e, user
}

func serve(h http.Handler, method, target, token string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, target, nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func TestRouter_Access(t *testing.T) {
	h, _ := newTestRouter()

	cases := []struct {
		name   string
		method string
		target string
		token  string
		code   int
	}{
		{"liveness", http.MethodGet, "/health", "", http.StatusOK},
		{"readiness", http.MethodGet, "/health/ready", "", http.StatusOK},
		{"metrics", http.MethodGet, "/metrics", "", http.StatusOK},
		{"account without token", http.MethodGet, "/v1/account", "", http.StatusUnauthorized},
		{"account with bad token", http.MethodGet, "/v1/account", "garbage", http.StatusUnauthorized},
		{"account", http.MethodGet, "/v1/account", "user-token", http.StatusOK},
		{"profile of missing user", http.MethodGet, "/v1/profile", "admin-token", http.StatusNotFound},
		{"users as user", http.MethodGet, "/v1/users", "user-token", http.StatusForbidden},
		{"users as admin", http.MethodGet, "/v1/users", "admin-token", http.StatusOK},
		{"delete unknown user", http.MethodDelete, "/v1/users/not-a-guid", "admin-token", http.StatusNotFound},
		{"unknown route", http.MethodGet, "/v2/nothing", "", http.StatusNotFound},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rec := serve(h, tc.method, tc.target, tc.token)
			if rec.Code != tc.code {
				t.Fatalf("expected %d, got %d: %s", tc.code, rec.Code, rec.Body.String())
			}
		})
	}
}

func TestRouter_ErrorEnvelope(t *testing.T) {
	h, _ := newTestRouter()

	rec := serve(h, http.MethodGet, "/v1/profile", "admin-token")
	var body errorResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if body.Error != "user not found" {
		t.Fatalf("unexpected error message %q", body.Error)
	}
}

func TestRouter_ForbiddenEnvelope(t *testing.T) {
	h, _ := newTestRouter()

	rec := serve(h, http.MethodDelete, "/v1/users/not-a-guid", "user-token")
	if rec.Code != http.StatusForbidden {
		t.Fatalf("expected 403, got %d", rec.Code)
	}
	var body errorResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if body.Error != "access forbidden" {
		t.Fatalf("unexpected error message %q", body.Error)
	}
}

func TestResolveError(t *testing.T) {
	cases := []struct {
		err  error
		code int
	}{
		{domain.ErrUserNotFound, http.StatusNotFound},
		{domain.ErrUserExists, http.StatusConflict},
		{domain.ErrInvalidCredentials, http.StatusUnauthorized},
		{domain.ErrTokenRevoked, http.StatusUnauthorized},
		{domain.ErrForbidden, http.StatusForbidden},
		{identity.ErrNotSupported, http.StatusNotImplemented},
		{errors.Join(errors.New("delete user"), domain.ErrUserNotFound), http.StatusNotFound},
		{errors.New("boom"), http.StatusInternalServerError},
	}

	e := echo.New()
	for _, tc := range cases {
		t.Run(tc.err.Error(), func(t *testing.T) {
			rec := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			c := e.NewContext(req, rec)

			code, msg := resolveError(tc.err, zerolog.Nop(), c)
			if code != tc.code {
				t.Fatalf("expected %d, got %d", tc.code, code)
			}
			if code == http.StatusInternalServerError && strings.Contains(msg, "boom") {
				t.Fatalf("internal error details leaked: %q", msg)
			}
		})
	}
}
