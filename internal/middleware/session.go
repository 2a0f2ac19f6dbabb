package middleware

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/shopstack/shopstack/internal/tokens"
)

const SessionCookie = "sessionToken"

// SessionMiddleware resolves the request principal from the session token.
// It never touches the store: an absent or invalid session fails with 401
// before any handler logic runs.
type SessionMiddleware struct {
	Secret []byte
}

func NewSessionMiddleware(secret []byte) *SessionMiddleware {
	return &SessionMiddleware{Secret: secret}
}

type ValidatorFunc func(claims *tokens.SessionClaims) error

func (m *SessionMiddleware) RequireSession(next echo.HandlerFunc) echo.HandlerFunc {
	return m.requireSessionWithValidator(next, nil)
}

func (m *SessionMiddleware) RequireAdmin(next echo.HandlerFunc) echo.HandlerFunc {
	return m.requireSessionWithValidator(next, func(claims *tokens.SessionClaims) error {
		if claims.Role != "admin" {
			return echo.NewHTTPError(http.StatusForbidden, "admin access required")
		}
		return nil
	})
}

func (m *SessionMiddleware) requireSessionWithValidator(next echo.HandlerFunc, validator ValidatorFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		tokenStr := tokenFromRequest(c)
		if tokenStr == "" {
			return echo.NewHTTPError(http.StatusUnauthorized, "missing session token")
		}

		claims, err := tokens.SessionClaimsFromToken(tokenStr, m.Secret)
		if err != nil || claims == nil {
			return echo.NewHTTPError(http.StatusUnauthorized, "invalid session token")
		}

		if validator != nil {
			if validationErr := validator(claims); validationErr != nil {
				return validationErr
			}
		}

		c.Set("user_id", claims.Subject)
		c.Set("role", claims.Role)
		return next(c)
	}
}

func tokenFromRequest(c echo.Context) string {
	if cookie, err := c.Cookie(SessionCookie); err == nil && cookie.Value != "" {
		return cookie.Value
	}
	auth := c.Request().Header.Get(echo.HeaderAuthorization)
	if strings.HasPrefix(auth, "Bearer ") {
		return strings.TrimPrefix(auth, "Bearer ")
	}
	return ""
}
