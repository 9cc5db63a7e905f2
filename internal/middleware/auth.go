package middleware

import (
	"fmt"
	"net/http"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"
)

const (
	// ContextUserID is the echo context key holding the session user id.
	ContextUserID = "user_id"
	// ContextUserRole is the echo context key holding the session role.
	ContextUserRole = "user_role"

	RoleSuperAdmin = "SUPER_ADMIN"
)

// SessionClaims are the claims carried by the externally issued session
// cookie. Token issuance lives in the auth service; this backend only
// verifies.
type SessionClaims struct {
	UserID string `json:"userId"`
	Role   string `json:"role"`
	jwt.RegisteredClaims
}

// AuthenticateJWT validates the session cookie and stores the user identity
// on the request context. Missing or invalid cookies yield 401.
func AuthenticateJWT(secret, cookieName string) echo.MiddlewareFunc {
	key := []byte(secret)

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			cookie, err := c.Cookie(cookieName)
			if err != nil || cookie.Value == "" {
				return echo.NewHTTPError(http.StatusUnauthorized, "Unauthenticated user")
			}

			claims := &SessionClaims{}
			token, err := jwt.ParseWithClaims(cookie.Value, claims,
				func(t *jwt.Token) (interface{}, error) {
					if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
						return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
					}
					return key, nil
				})
			if err != nil || !token.Valid || claims.UserID == "" {
				return echo.NewHTTPError(http.StatusUnauthorized, "Unauthenticated user")
			}

			c.Set(ContextUserID, claims.UserID)
			c.Set(ContextUserRole, claims.Role)
			return next(c)
		}
	}
}

// RequireSuperAdmin guards administrative routes. Must run after
// AuthenticateJWT.
func RequireSuperAdmin() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			role, _ := c.Get(ContextUserRole).(string)
			if role != RoleSuperAdmin {
				return echo.NewHTTPError(http.StatusForbidden, "Access denied")
			}
			return next(c)
		}
	}
}

// UserID extracts the authenticated user id set by AuthenticateJWT.
func UserID(c echo.Context) (string, error) {
	userID, _ := c.Get(ContextUserID).(string)
	if userID == "" {
		return "", echo.NewHTTPError(http.StatusUnauthorized, "Unauthenticated user")
	}
	return userID, nil
}
