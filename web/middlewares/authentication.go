package middlewares

import (
	"context"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"timekeeper.app/timekeeper/security"
	"timekeeper.app/timekeeper/web/common"
)

const (
	identityKey = "identity"
	cookieName  = "timekeeper.ApplicationCookie"
)

// SessionValidator decides whether a verified token may still be used,
// e.g. after a role change moved the user's watermark.
type SessionValidator func(ctx context.Context, claims *security.IdentityClaims) (bool, error)

func bearerToken(c *gin.Context) (string, bool) {
	authHeader := c.GetHeader("Authorization")
	if authHeader == "" {
		// Try to get from cookie
		cookie, err := c.Cookie(cookieName)
		if err != nil {
			return "", false
		}
		return cookie, true
	}

	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return "", false
	}
	return parts[1], true
}

// Authentication checks for a valid Bearer token and stores its identity in the context.
func Authentication(jwtSecret []byte, validate SessionValidator) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenStr, ok := bearerToken(c)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, common.NewErrorResponse("missing bearer token"))
			return
		}

		claims, err := security.ParseIdentityToken(tokenStr, jwtSecret)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, common.NewErrorResponse("invalid or expired token"))
			return
		}

		if validate != nil {
			valid, err := validate(c.Request.Context(), claims)
			if err != nil {
				c.AbortWithStatusJSON(http.StatusInternalServerError, common.NewErrorResponse(err.Error()))
				return
			}
			if !valid {
				c.AbortWithStatusJSON(http.StatusUnauthorized, common.NewErrorResponse("session has been revoked, sign in again"))
				return
			}
		}

		c.Set(identityKey, claims)
		c.Next()
	}
}

// RequireRole rejects identities whose role is not one of roles.
func RequireRole(roles ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		identity, ok := GetIdentity(c)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, common.NewErrorResponse("not authenticated"))
			return
		}
		for _, role := range roles {
			if identity.Role == role {
				c.Next()
				return
			}
		}
		c.AbortWithStatusJSON(http.StatusForbidden, common.NewErrorResponse("insufficient role"))
	}
}

func GetIdentity(c *gin.Context) (*security.IdentityClaims, bool) {
	v, ok := c.Get(identityKey)
	if !ok {
		return nil, false
	}
	claims, ok := v.(*security.IdentityClaims)
	return claims, ok
}
