package handler

import (
	"strings"
	"time"

	"github.com/99minutos/user-accounts/internal/core/domain"
)

// --- Requests ---

type signUpRequest struct {
	Email     string `json:"email"      validate:"required,email"`
	Password  string `json:"password"   validate:"required,min=8,max=72"`
	FirstName string `json:"first_name" validate:"max=100"`
	LastName  string `json:"last_name"  validate:"max=100"`
}

type signInRequest struct {
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type updateProfileRequest struct {
	FirstName string `json:"first_name" validate:"required,max=100"`
	LastName  string `json:"last_name"  validate:"required,max=100"`
}

// --- Responses ---

type accountResponse struct {
	UserID          string `json:"user_id"`
	FirstName       string `json:"first_name"`
	LastName        string `json:"last_name"`
	IsAuthenticated bool   `json:"is_authenticated"`
	IsAdmin         bool   `json:"is_admin"`
}

type signInResponse struct {
	Token     string          `json:"token"`
	ExpiresAt string          `json:"expires_at"`
	Account   accountResponse `json:"account"`
}

type profileResponse struct {
	UserID string `json:"user_id"`
	Name   string `json:"name"`
	Email  string `json:"email"`
}

type userSummary struct {
	UserID    string `json:"user_id"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Email     string `json:"email"`
	Roles     string `json:"roles"`
}

type listUsersResponse struct {
	Users []userSummary `json:"users"`
}

// --- Mappers ---

func toAccountResponse(u *domain.User) accountResponse {
	return accountResponse{
		UserID:          u.ID.String(),
		FirstName:       u.FirstName,
		LastName:        u.LastName,
		IsAuthenticated: true,
		IsAdmin:         u.IsAdmin(),
	}
}

func toProfileResponse(u *domain.User) profileResponse {
	return profileResponse{
		UserID: u.ID.String(),
		Name:   u.Name(),
		Email:  u.Email,
	}
}

func toSignInResponse(token string, expiresAt time.Time, u *domain.User) signInResponse {
	return signInResponse{
		Token:     token,
		ExpiresAt: expiresAt.UTC().Format(time.RFC3339),
		Account:   toAccountResponse(u),
	}
}

func toListUsersResponse(users []*domain.User) listUsersResponse {
	out := make([]userSummary, 0, len(users))
	for _, u := range users {
		out = append(out, userSummary{
			UserID:    u.ID.String(),
			FirstName: u.FirstName,
			LastName:  u.LastName,
			Email:     u.Email,
			Roles:     strings.Join(u.RoleNames(), ", "),
		})
	}
	return listUsersResponse{Users: out}
}
