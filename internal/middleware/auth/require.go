package auth

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/arkhipovd/storefront/internal/tokens"
)

// Middleware guards routes behind the bearer session token.
type Middleware struct {
	Secret []byte
}

func New(secret []byte) *Middleware {
	return &Middleware{Secret: secret}
}

type validatorFunc func(claims *tokens.SessionClaims) error

func (m *Middleware) RequireAuth(next echo.HandlerFunc) echo.HandlerFunc {
	return m.requireWithValidator(next, nil)
}

func (m *Middleware) RequireAdmin(next echo.HandlerFunc) echo.HandlerFunc {
	return m.requireWithValidator(next, func(claims *tokens.SessionClaims) error {
		if claims.Role != "admin" {
			return echo.NewHTTPError(http.StatusForbidden, "admin access required")
		}
		return nil
	})
}

func (m *Middleware) requireWithValidator(next echo.HandlerFunc, validator validatorFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		token := BearerToken(c)
		if token == "" {
			return echo.NewHTTPError(http.StatusUnauthorized, "no token provided")
		}

		claims, err := tokens.SessionClaimsFromToken(token, m.Secret)
		if err != nil {
			return echo.NewHTTPError(http.StatusUnauthorized, "invalid token")
		}

		if validator != nil {
			if err := validator(claims); err != nil {
				return err
			}
		}

		setUserContext(c, claims)
		return next(c)
	}
}

// BearerToken pulls the token out of the Authorization header, empty
// when the header is missing or malformed.
func BearerToken(c echo.Context) string {
	header := c.Request().Header.Get(echo.HeaderAuthorization)
	if header == "" {
		return ""
	}
	const prefix = "Bearer "
	if !strings.HasPrefix(header, prefix) {
		return ""
	}
	return strings.TrimPrefix(header, prefix)
}

func setUserContext(c echo.Context, claims *tokens.SessionClaims) {
	if id, err := strconv.ParseUint(claims.Subject, 10, 64); err == nil {
		c.Set("userID", uint(id))
	}
	c.Set("role", claims.Role)
}
