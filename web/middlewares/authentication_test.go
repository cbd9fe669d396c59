package middlewares

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"timekeeper.app/timekeeper/security"
)

var secret = []byte("0123456789abcdef0123456789abcdef")

func token(t *testing.T, role string) string {
	t.Helper()
	tok, err := security.CreateIdentityToken(security.Identity{ID: 1, Email: "jane@example.com", Role: role}, secret, time.Hour, time.Now())
	require.NoError(t, err)
	return tok
}

func newRouter(validate SessionValidator) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	api := r.Group("/api", Authentication(secret, validate))
	api.GET("/me", func(c *gin.Context) {
		identity, _ := GetIdentity(c)
		c.JSON(http.StatusOK, gin.H{"email": identity.Email})
	})
	api.GET("/admin", RequireRole("ADMIN"), func(c *gin.Context) {
		c.Status(http.StatusNoContent)
	})
	return r
}

func TestAuthentication(t *testing.T) {
	revoked := func(_ context.Context, _ *security.IdentityClaims) (bool, error) { return false, nil }
	broken := func(_ context.Context, _ *security.IdentityClaims) (bool, error) { return false, errors.New("db down") }

	tests := []struct {
		name     string
		validate SessionValidator
		header   string
		cookie   string
		path     string
		expected int
	}{
		{name: "No token", path: "/api/me", expected: http.StatusUnauthorized},
		{name: "Malformed header", header: "Token abc", path: "/api/me", expected: http.StatusUnauthorized},
		{name: "Bad token", header: "Bearer abc", path: "/api/me", expected: http.StatusUnauthorized},
		{name: "Valid bearer", header: "Bearer " + token(t, "EMPLOYEE"), path: "/api/me", expected: http.StatusOK},
		{name: "Valid cookie", cookie: token(t, "EMPLOYEE"), path: "/api/me", expected: http.StatusOK},
		{name: "Revoked session", validate: revoked, header: "Bearer " + token(t, "EMPLOYEE"), path: "/api/me", expected: http.StatusUnauthorized},
		{name: "Validator failure", validate: broken, header: "Bearer " + token(t, "EMPLOYEE"), path: "/api/me", expected: http.StatusInternalServerError},
		{name: "Employee on admin route", header: "Bearer " + token(t, "EMPLOYEE"), path: "/api/admin", expected: http.StatusForbidden},
		{name: "Admin on admin route", header: "Bearer " + token(t, "ADMIN"), path: "/api/admin", expected: http.StatusNoContent},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, tt.path, nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			if tt.cookie != "" {
				req.AddCookie(&http.Cookie{Name: cookieName, Value: tt.cookie})
			}
			w := httptest.NewRecorder()
			newRouter(tt.validate).ServeHTTP(w, req)
			assert.Equal(t, tt.expected, w.Code)
		})
	}
}
