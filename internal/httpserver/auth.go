package httpserver

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/arkhipovd/storefront/internal/logging"
	authmw "github.com/arkhipovd/storefront/internal/middleware/auth"
	"github.com/arkhipovd/storefront/internal/models"
	"github.com/arkhipovd/storefront/internal/service"
	"github.com/arkhipovd/storefront/internal/tokens"
)

type AuthHTTP struct {
	Svc *service.AuthService
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Role     string `json:"role"`
}

func (h *AuthHTTP) Login(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "auth.login")

	var req loginRequest
	if err := c.Bind(&req); err != nil {
		l.Warn("login_failed", "status", 400, "reason", "invalid body", "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}

	res, err := h.Svc.Login(ctx, req.Email, req.Password, req.Role)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrValidation):
			l.Warn("login_failed", "status", 400, "error", err)
			return echo.NewHTTPError(http.StatusBadRequest, err.Error())
		case errors.Is(err, service.ErrInvalidCredentials):
			l.Warn("login_failed", "status", 401)
			return echo.NewHTTPError(http.StatusUnauthorized, "Invalid credentials")
		case errors.Is(err, service.ErrRoleMismatch):
			l.Warn("login_failed", "status", 403)
			return echo.NewHTTPError(http.StatusForbidden, "Access denied for this role")
		default:
			l.Error("login_failed", "status", 500, "error", err)
			return echo.NewHTTPError(http.StatusInternalServerError, "Internal server error")
		}
	}

	return c.JSON(http.StatusOK, echo.Map{
		"user":  res.User.Public(),
		"token": res.Token,
	})
}

func (h *AuthHTTP) Signup(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "auth.signup")

	var req models.InsertUser
	if err := c.Bind(&req); err != nil {
		l.Warn("signup_failed", "status", 400, "reason", "invalid body", "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}

	res, err := h.Svc.Signup(ctx, req)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrValidation):
			l.Warn("signup_failed", "status", 400, "error", err)
			return echo.NewHTTPError(http.StatusBadRequest, err.Error())
		case errors.Is(err, service.ErrEmailTaken):
			l.Warn("signup_failed", "status", 409)
			return echo.NewHTTPError(http.StatusConflict, "User already exists with this email")
		default:
			l.Error("signup_failed", "status", 500, "error", err)
			return echo.NewHTTPError(http.StatusInternalServerError, "Internal server error")
		}
	}

	return c.JSON(http.StatusOK, echo.Map{
		"user":  res.User.Public(),
		"token": res.Token,
	})
}

func (h *AuthHTTP) Logout(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "auth.logout")

	if err := h.Svc.Logout(ctx); err != nil {
		l.Error("logout_failed", "status", 500, "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "Internal server error")
	}

	l.Info("logout_successful")
	return c.JSON(http.StatusOK, echo.Map{"message": "Logged out successfully"})
}

func (h *AuthHTTP) Me(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "auth.me")

	token := authmw.BearerToken(c)
	if token == "" {
		return echo.NewHTTPError(http.StatusUnauthorized, "No token provided")
	}

	user, err := h.Svc.UserFromToken(ctx, token)
	if err != nil {
		if errors.Is(err, tokens.ErrInvalidToken) {
			l.Warn("me_failed", "status", 401)
			return echo.NewHTTPError(http.StatusUnauthorized, "Invalid token")
		}
		l.Error("me_failed", "status", 500, "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "Internal server error")
	}

	return c.JSON(http.StatusOK, echo.Map{"user": user.Public()})
}
