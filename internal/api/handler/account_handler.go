package handler

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/99minutos/user-accounts/internal/api/metrics"
	"github.com/99minutos/user-accounts/internal/core/domain"
	"github.com/99minutos/user-accounts/internal/identity"
)

// AccountManager is the slice of *identity.Manager the HTTP layer uses.
type AccountManager interface {
	Create(ctx context.Context, user *domain.User, password string) (identity.Result, error)
	Update(ctx context.Context, user *domain.User) (identity.Result, error)
	Delete(ctx context.Context, user *domain.User) (identity.Result, error)
	FindByID(ctx context.Context, userID string) (*domain.User, error)
}

// SignInService is satisfied by *identity.SignInManager.
type SignInService interface {
	PasswordSignIn(ctx context.Context, email, password string) (*identity.SignInResult, error)
	SignOut(ctx context.Context, claims *identity.Claims) error
}

// AccountHandler serves sign-up, sign-in, sign-out and the current account.
type AccountHandler struct {
	accounts AccountManager
	signIn   SignInService
}

func NewAccountHandler(accounts AccountManager, signIn SignInService) *AccountHandler {
	return &AccountHandler{accounts: accounts, signIn: signIn}
}

// SignUp registers a new account.
//
// @Summary      Register a new account
// @Tags         account
// @Accept       json
// @Produce      json
// @Param        body  body      signUpRequest  true  "Account details"
// @Success      201   {object}  profileResponse
// @Failure      400   {object}  map[string]string
// @Failure      500   {object}  map[string]string
// @Router       /v1/account/signup [post]
func (h *AccountHandler) SignUp(c echo.Context) error {
	var req signUpRequest
	if err := bindAndValidate(c, &req); err != nil {
		metrics.RegistrationsTotal.WithLabelValues("rejected").Inc()
		return err
	}

	user := &domain.User{
		Email:     req.Email,
		FirstName: strings.TrimSpace(req.FirstName),
		LastName:  strings.TrimSpace(req.LastName),
	}
	res, err := h.accounts.Create(c.Request().Context(), user, req.Password)
	if err != nil {
		metrics.RegistrationsTotal.WithLabelValues("error").Inc()
		return err
	}
	if !res.Succeeded {
		metrics.RegistrationsTotal.WithLabelValues("rejected").Inc()
		return echo.NewHTTPError(http.StatusBadRequest, strings.Join(res.Errors, "; "))
	}

	metrics.RegistrationsTotal.WithLabelValues("created").Inc()
	return c.JSON(http.StatusCreated, toProfileResponse(user))
}

// SignIn exchanges credentials for an access token.
//
// @Summary      Sign in
// @Tags         account
// @Accept       json
// @Produce      json
// @Param        body  body      signInRequest  true  "Credentials"
// @Success      200   {object}  signInResponse
// @Failure      400   {object}  map[string]string
// @Failure      401   {object}  map[string]string
// @Router       /v1/account/signin [post]
func (h *AccountHandler) SignIn(c echo.Context) error {
	var req signInRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	res, err := h.signIn.PasswordSignIn(c.Request().Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidCredentials) {
			metrics.SignInsTotal.WithLabelValues("invalid_credentials").Inc()
		} else {
			metrics.SignInsTotal.WithLabelValues("error").Inc()
		}
		return err
	}

	metrics.SignInsTotal.WithLabelValues("success").Inc()
	return c.JSON(http.StatusOK, toSignInResponse(res.Token, res.ExpiresAt, res.User))
}

// SignOut revokes the presented access token.
//
// @Summary      Sign out
// @Tags         account
// @Security     BearerAuth
// @Success      204
// @Failure      401  {object}  map[string]string
// @Router       /v1/account/signout [post]
func (h *AccountHandler) SignOut(c echo.Context) error {
	claims, err := ctxClaims(c)
	if err != nil {
		return err
	}
	if err := h.signIn.SignOut(c.Request().Context(), claims); err != nil {
		return err
	}
	metrics.SignOutsTotal.Inc()
	return c.NoContent(http.StatusNoContent)
}

// Current returns the authenticated account.
//
// @Summary      Current account
// @Tags         account
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  accountResponse
// @Failure      401  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Router       /v1/account [get]
func (h *AccountHandler) Current(c echo.Context) error {
	user, err := currentUser(c, h.accounts)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toAccountResponse(user))
}

// currentUser loads the account named by the token subject.
func currentUser(c echo.Context, accounts AccountManager) (*domain.User, error) {
	userID, err := ctxUserID(c)
	if err != nil {
		return nil, err
	}
	user, err := accounts.FindByID(c.Request().Context(), userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrUserNotFound
	}
	return user, nil
}
