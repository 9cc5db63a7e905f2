package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret"

func signToken(t *testing.T, secret, userID, role string) string {
	t.Helper()

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, &SessionClaims{
		UserID: userID,
		Role:   role,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	})
	signed, err := token.SignedString([]byte(secret))
	require.NoError(t, err)

	return signed
}

func doAuthRequest(t *testing.T, cookie string, mws ...echo.MiddlewareFunc) *httptest.ResponseRecorder {
	t.Helper()

	e := echo.New()
	handler := func(c echo.Context) error {
		userID, err := UserID(c)
		if err != nil {
			return err
		}
		return c.String(http.StatusOK, userID)
	}
	for i := len(mws) - 1; i >= 0; i-- {
		handler = mws[i](handler)
	}

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if cookie != "" {
		req.AddCookie(&http.Cookie{Name: "accessToken", Value: cookie})
	}
	rec := httptest.NewRecorder()

	err := handler(e.NewContext(req, rec))
	if err != nil {
		e.HTTPErrorHandler(err, e.NewContext(req, rec))
	}

	return rec
}

func TestAuthenticateJWT(t *testing.T) {
	auth := AuthenticateJWT(testSecret, "accessToken")

	t.Run("valid cookie passes identity through", func(t *testing.T) {
		token := signToken(t, testSecret, "user-1", "USER")
		rec := doAuthRequest(t, token, auth)

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "user-1", rec.Body.String())
	})

	t.Run("missing cookie", func(t *testing.T) {
		rec := doAuthRequest(t, "", auth)
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("wrong signing key", func(t *testing.T) {
		token := signToken(t, "other-secret", "user-1", "USER")
		rec := doAuthRequest(t, token, auth)
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("expired token", func(t *testing.T) {
		token := jwt.NewWithClaims(jwt.SigningMethodHS256, &SessionClaims{
			UserID: "user-1",
			RegisteredClaims: jwt.RegisteredClaims{
				ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Hour)),
			},
		})
		signed, err := token.SignedString([]byte(testSecret))
		require.NoError(t, err)

		rec := doAuthRequest(t, signed, auth)
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("token without user id", func(t *testing.T) {
		token := signToken(t, testSecret, "", "USER")
		rec := doAuthRequest(t, token, auth)
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})
}

func TestRequireSuperAdmin(t *testing.T) {
	auth := AuthenticateJWT(testSecret, "accessToken")
	admin := RequireSuperAdmin()

	t.Run("super admin allowed", func(t *testing.T) {
		token := signToken(t, testSecret, "admin-1", RoleSuperAdmin)
		rec := doAuthRequest(t, token, auth, admin)
		assert.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("regular user denied", func(t *testing.T) {
		token := signToken(t, testSecret, "user-1", "USER")
		rec := doAuthRequest(t, token, auth, admin)
		assert.Equal(t, http.StatusForbidden, rec.Code)
	})
}
