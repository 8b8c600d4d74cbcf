package middleware

import (
	"net/http"
	"strings"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/borderpass/borderpass-backend/pkg/jwt"
)

// Context keys set by the auth middleware
const (
	UserIDContextKey = "user_id"
	EmailContextKey  = "user_email"
	RoleContextKey   = "user_role"
)

// EchoAuth returns an Echo middleware that validates the access token and
// sets "user_id" (uuid.UUID), "user_email" and "user_role" into Echo context.
// Tokens are issued by the hosted auth provider; only verification happens
// here.
func EchoAuth(manager *jwt.Manager) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			token := extractToken(c)
			if token == "" {
				return echo.NewHTTPError(http.StatusUnauthorized, "Missing authorization token")
			}

			claims, err := manager.ValidateAccessToken(token)
			if err != nil {
				return echo.NewHTTPError(http.StatusUnauthorized, "Invalid or expired token")
			}

			c.Set(UserIDContextKey, claims.UserID)
			c.Set(EmailContextKey, claims.Email)
			c.Set(RoleContextKey, claims.Role)

			return next(c)
		}
	}
}

// UserIDFromContext retrieves the authenticated user id set by EchoAuth
func UserIDFromContext(c echo.Context) (uuid.UUID, bool) {
	userID, ok := c.Get(UserIDContextKey).(uuid.UUID)
	return userID, ok
}

// extractToken reads the bearer token from the Authorization header, falling
// back to the access_token cookie
func extractToken(c echo.Context) string {
	authHeader := c.Request().Header.Get("Authorization")
	if authHeader != "" {
		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) == 2 && strings.ToLower(parts[0]) == "bearer" {
			return strings.TrimSpace(parts[1])
		}
	}

	if cookie, err := c.Cookie("access_token"); err == nil {
		return cookie.Value
	}

	return ""
}
