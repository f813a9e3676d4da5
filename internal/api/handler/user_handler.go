package handler

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/99minutos/user-accounts/internal/api/metrics"
	"github.com/99minutos/user-accounts/internal/core/domain"
	"github.com/99minutos/user-accounts/internal/core/ports"
)

// UserHandler serves the profile of the caller and the admin user listing.
type UserHandler struct {
	users    ports.UserService
	accounts AccountManager
}

func NewUserHandler(users ports.UserService, accounts AccountManager) *UserHandler {
	return &UserHandler{users: users, accounts: accounts}
}

// GetProfile returns the caller's profile.
//
// @Summary      Get profile
// @Tags         profile
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  profileResponse
// @Failure      401  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Router       /v1/profile [get]
func (h *UserHandler) GetProfile(c echo.Context) error {
	user, err := currentUser(c, h.accounts)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toProfileResponse(user))
}

// UpdateProfile changes the caller's first and last name.
//
// @Summary      Update profile
// @Tags         profile
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      updateProfileRequest  true  "Profile fields"
// @Success      200   {object}  profileResponse
// @Failure      400   {object}  map[string]string
// @Failure      404   {object}  map[string]string
// @Router       /v1/profile [put]
func (h *UserHandler) UpdateProfile(c echo.Context) error {
	var req updateProfileRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	user, err := currentUser(c, h.accounts)
	if err != nil {
		return err
	}
	user.FirstName = strings.TrimSpace(req.FirstName)
	user.LastName = strings.TrimSpace(req.LastName)

	res, err := h.accounts.Update(c.Request().Context(), user)
	if err != nil {
		return err
	}
	if !res.Succeeded {
		return echo.NewHTTPError(http.StatusBadRequest, strings.Join(res.Errors, "; "))
	}
	return c.JSON(http.StatusOK, toProfileResponse(user))
}

// ListUsers returns every account with its roles.
//
// @Summary      List users
// @Tags         users
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  listUsersResponse
// @Failure      403  {object}  map[string]string
// @Router       /v1/users [get]
func (h *UserHandler) ListUsers(c echo.Context) error {
	users, err := h.users.GetUsers(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toListUsersResponse(users))
}

// DeleteUser removes an account and its role memberships.
//
// @Summary      Delete user
// @Tags         users
// @Security     BearerAuth
// @Param        id   path  string  true  "User id"
// @Success      204
// @Failure      403  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Router       /v1/users/{id} [delete]
func (h *UserHandler) DeleteUser(c echo.Context) error {
	ctx := c.Request().Context()

	user, err := h.accounts.FindByID(ctx, c.Param("id"))
	if err != nil {
		return err
	}
	if user == nil {
		return domain.ErrUserNotFound
	}

	res, err := h.accounts.Delete(ctx, user)
	if err != nil {
		return err
	}
	if !res.Succeeded {
		return echo.NewHTTPError(http.StatusBadRequest, strings.Join(res.Errors, "; "))
	}

	metrics.UsersDeletedTotal.Inc()
	return c.NoContent(http.StatusNoContent)
}
