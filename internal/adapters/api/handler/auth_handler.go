package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"randohub/internal/ports/input"
	"randohub/internal/ports/output"
)

// AuthHandler serves account creation, verification and login.
type AuthHandler struct {
	users input.UserUseCase
	auth  input.AuthUseCase
	t     output.T
}

func NewAuthHandler(users input.UserUseCase, auth input.AuthUseCase, t output.T) *AuthHandler {
	return &AuthHandler{users: users, auth: auth, t: t}
}

// Register creates an unverified account and emails its verification code.
func (h *AuthHandler) Register(c echo.Context) error {
	var req registerUserRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	user, err := h.users.Register(c.Request().Context(), input.NewUser{
		Email:     req.Email,
		Password:  req.Password,
		FirstName: req.FirstName,
		LastName:  req.LastName,
	})
	if err != nil {
		return err
	}

	return c.JSON(http.StatusCreated, map[string]any{
		"message": h.t.T(Locale(c), "http.user_created", nil),
		"user":    toUserResponse(user),
	})
}

func (h *AuthHandler) Verify(c echo.Context) error {
	var req verifyRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}
	if err := h.users.Verify(c.Request().Context(), req.Email, req.Code); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, messageResponse{Message: h.t.T(Locale(c), "http.verified", nil)})
}

func (h *AuthHandler) Login(c echo.Context) error {
	var req loginRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	token, user, err := h.auth.Login(c.Request().Context(), req.Email, req.Password)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, authResponse{Token: token, User: toUserResponse(user)})
}
