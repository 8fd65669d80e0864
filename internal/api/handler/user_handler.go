package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/cleanhub/marketplace-api/internal/core/domain"
	"github.com/cleanhub/marketplace-api/internal/core/ports"
)

// UserHandler handles HTTP requests for user accounts, sign-in, and role
// management.
type UserHandler struct {
	users ports.UserService
}

func NewUserHandler(users ports.UserService) *UserHandler {
	return &UserHandler{users: users}
}

type profileRequest struct {
	Name     string `json:"name"`
	Phone    string `json:"phone"`
	Address  string `json:"address"`
	ImageURL string `json:"image_url"`
}

func (r profileRequest) toInput() ports.UserProfile {
	return ports.UserProfile{
		Name:     r.Name,
		Phone:    r.Phone,
		Address:  r.Address,
		ImageURL: r.ImageURL,
	}
}

type signInResponse struct {
	Result *domain.User `json:"result"`
	Token  string       `json:"token"`
}

type adminResponse struct {
	Admin bool `json:"admin"`
}

// SignIn handles PUT /user/:email.
//
// @Summary      Upsert a user and issue a bearer token
// @Tags         users
// @Accept       json
// @Produce      json
// @Param        email  path      string          true  "User email"
// @Param        body   body      profileRequest  true  "Profile fields"
// @Success      200    {object}  signInResponse
// @Failure      400    {object}  map[string]string
// @Router       /user/{email} [put]
func (h *UserHandler) SignIn(c echo.Context) error {
	var req profileRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid payload"})
	}

	result, err := h.users.SignIn(c.Request().Context(), c.Param("email"), req.toInput())
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, signInResponse{Result: result.User, Token: result.Token})
}

// UpdateProfile handles PUT /user/update/:email. Same upsert as sign-in but
// no token is issued.
func (h *UserHandler) UpdateProfile(c echo.Context) error {
	var req profileRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid payload"})
	}

	user, err := h.users.UpdateProfile(c.Request().Context(), c.Param("email"), req.toInput())
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, user)
}

// Promote handles PUT /user/admin/:email (admin only).
//
// @Summary      Grant the admin role to a user
// @Tags         users
// @Produce      json
// @Security     BearerAuth
// @Param        email  path      string  true  "User email"
// @Success      200    {object}  map[string]string
// @Failure      401    {object}  map[string]string
// @Failure      403    {object}  map[string]string
// @Router       /user/admin/{email} [put]
func (h *UserHandler) Promote(c echo.Context) error {
	if err := h.users.Promote(c.Request().Context(), c.Param("email")); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, map[string]string{"role": string(domain.RoleAdmin)})
}

// IsAdmin handles GET /admin/:email. An unknown email is reported as a
// plain non-admin rather than an error; the endpoint exists for UI role
// checks and must never fault on absent accounts.
func (h *UserHandler) IsAdmin(c echo.Context) error {
	isAdmin, err := h.users.IsAdmin(c.Request().Context(), c.Param("email"))
	if err != nil {
		if errors.Is(err, domain.ErrUnknownIdentity) {
			return c.JSON(http.StatusOK, adminResponse{Admin: false})
		}
		return err
	}
	return c.JSON(http.StatusOK, adminResponse{Admin: isAdmin})
}

// Get handles GET /user/:email.
func (h *UserHandler) Get(c echo.Context) error {
	user, err := h.users.Get(c.Request().Context(), c.Param("email"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, user)
}

// List handles GET /users (admin only).
func (h *UserHandler) List(c echo.Context) error {
	users, err := h.users.List(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, users)
}

// Delete handles DELETE /user/:id (admin only).
func (h *UserHandler) Delete(c echo.Context) error {
	if err := h.users.Delete(c.Request().Context(), c.Param("id")); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}
