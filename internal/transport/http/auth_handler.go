package http

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/odovalley/odo-valley-api/internal/service"
	"github.com/odovalley/odo-valley-api/internal/util"
)

type AuthHandler struct {
	auth *service.AuthService
}

func RegisterAuth(e *echo.Echo, auth *service.AuthService) {
	h := &AuthHandler{auth: auth}

	g := e.Group("/api/auth")
	g.POST("/login", h.login)
	g.POST("/google", h.google)
	g.GET("/me", h.me, RequireAuth(auth))
}

func (h *AuthHandler) login(c echo.Context) error {
	var req struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, util.Fail("invalid request body"))
	}

	result, err := h.auth.Login(c.Request().Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) {
			return c.JSON(http.StatusUnauthorized, util.Fail("Invalid email or password"))
		}
		c.Logger().Error(err)
		return c.JSON(http.StatusInternalServerError, util.Fail("Server error"))
	}

	return c.JSON(http.StatusOK, util.Envelope{
		"success":   true,
		"token":     result.Token,
		"expiresAt": result.ExpiresAt,
		"user":      result.User,
	})
}

func (h *AuthHandler) google(c echo.Context) error {
	var req struct {
		Token string `json:"token"`
	}
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, util.Fail("invalid request body"))
	}

	result, err := h.auth.LoginWithGoogle(c.Request().Context(), req.Token)
	if err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) {
			return c.JSON(http.StatusUnauthorized, util.Fail("Invalid Google token"))
		}
		c.Logger().Error(err)
		return c.JSON(http.StatusInternalServerError, util.Fail("Server error"))
	}

	return c.JSON(http.StatusOK, util.Envelope{
		"success":   true,
		"token":     result.Token,
		"expiresAt": result.ExpiresAt,
		"user":      result.User,
	})
}

func (h *AuthHandler) me(c echo.Context) error {
	user, ok := CurrentUser(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, util.Fail("authentication required"))
	}
	return c.JSON(http.StatusOK, util.OK(user))
}
