package identity

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/99minutos/user-accounts/internal/core/domain"
	"github.com/99minutos/user-accounts/internal/core/ports"
)

const defaultTokenTTL = 24 * time.Hour

// Claims is the access token payload. Subject carries the user id and ID the
// token id used for revocation.
type Claims struct {
	Email string   `json:"email"`
	Roles []string `json:"roles"`
	jwt.RegisteredClaims
}

// HasRole reports whether the token grants roleName.
func (c *Claims) HasRole(roleName string) bool {
	for _, r := range c.Roles {
		if r == roleName {
			return true
		}
	}
	return false
}

// SignInResult is returned by a successful password sign-in.
type SignInResult struct {
	Token     string
	ExpiresAt time.Time
	User      *domain.User
}

// SignInManager issues, validates and revokes access tokens.
type SignInManager struct {
	users     *Manager
	tokens    ports.TokenStore
	jwtSecret []byte
	tokenTTL  time.Duration
	log       zerolog.Logger
}

func NewSignInManager(users *Manager, tokens ports.TokenStore, jwtSecret string, tokenTTL time.Duration, log zerolog.Logger) *SignInManager {
	if tokenTTL <= 0 {
		tokenTTL = defaultTokenTTL
	}
	return &SignInManager{
		users:     users,
		tokens:    tokens,
		jwtSecret: []byte(jwtSecret),
		tokenTTL:  tokenTTL,
		log:       log,
	}
}

// PasswordSignIn checks the credentials and issues a token. Unknown emails and
// wrong passwords both yield domain.ErrInvalidCredentials.
func (s *SignInManager) PasswordSignIn(ctx context.Context, email, password string) (*SignInResult, error) {
	if email == "" || password == "" {
		return nil, domain.ErrInvalidCredentials
	}

	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrInvalidCredentials
	}

	ok, err := s.users.CheckPassword(ctx, user, password)
	if err != nil {
		return nil, err
	}
	if !ok {
		s.log.Debug().Str("user_id", user.ID.String()).Msg("password mismatch")
		return nil, domain.ErrInvalidCredentials
	}

	roles, err := s.users.GetRoles(ctx, user)
	if err != nil {
		return nil, err
	}

	token, expiresAt, err := s.generateToken(user, roles)
	if err != nil {
		return nil, err
	}
	return &SignInResult{Token: token, ExpiresAt: expiresAt, User: user}, nil
}

// SignOut revokes the token described by claims until it expires.
func (s *SignInManager) SignOut(ctx context.Context, claims *Claims) error {
	if claims == nil || claims.ID == "" {
		return domain.ErrInvalidCredentials
	}
	expiresAt := time.Now().Add(s.tokenTTL)
	if claims.ExpiresAt != nil {
		expiresAt = claims.ExpiresAt.Time
	}
	if err := s.tokens.Revoke(ctx, claims.ID, expiresAt); err != nil {
		return fmt.Errorf("revoke token: %w", err)
	}
	s.log.Info().Str("user_id", claims.Subject).Msg("signed out")
	return nil
}

// ValidateToken parses raw, checks its signature and expiry, and rejects
// revoked tokens.
func (s *SignInManager) ValidateToken(ctx context.Context, raw string) (*Claims, error) {
	claims := &Claims{}
	tkn, err := jwt.ParseWithClaims(raw, claims, func(token *jwt.Token) (interface{}, error) {
		return s.jwtSecret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil || !tkn.Valid {
		return nil, domain.ErrInvalidCredentials
	}

	revoked, err := s.tokens.IsRevoked(ctx, claims.ID)
	if err != nil {
		return nil, fmt.Errorf("check revocation: %w", err)
	}
	if revoked {
		return nil, domain.ErrTokenRevoked
	}
	return claims, nil
}

func (s *SignInManager) generateToken(user *domain.User, roles []string) (string, time.Time, error) {
	now := time.Now()
	expiresAt := now.Add(s.tokenTTL)
	claims := Claims{
		Email: user.Email,
		Roles: roles,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			Subject:   user.ID.String(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
	}

	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := t.SignedString(s.jwtSecret)
	if err != nil {
		return "", time.Time{}, err
	}
	return signed, expiresAt, nil
}

// IsAuthError reports whether err means the caller is not authenticated.
func IsAuthError(err error) bool {
	return errors.Is(err, domain.ErrInvalidCredentials) || errors.Is(err, domain.ErrTokenRevoked)
}
