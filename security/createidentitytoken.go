package security

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

const (
	Issuer   = "timekeeper"
	Audience = "timekeeper-api"
)

type Identity struct {
	ID    int32  `json:"nameid"`
	Email string `json:"email"`
	Role  string `json:"role"`
}

// IdentityClaims includes Identity and standard JWT claims
type IdentityClaims struct {
	Identity
	jwt.RegisteredClaims
}

func CreateIdentityToken(identity Identity, secret []byte, expiresIn time.Duration, now time.Time) (string, error) {
	if len(secret) == 0 {
		return "", errors.New("signing secret is empty")
	}
	claims := IdentityClaims{
		Identity: identity,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    Issuer,
			Subject:   identity.Email,
			Audience:  []string{Audience},
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(expiresIn)),
		},
	}

	// Use HS256 signing method (symmetric key)
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(secret)
}

// ParseIdentityToken verifies signature, expiry, issuer and audience.
func ParseIdentityToken(tokenStr string, secret []byte) (*IdentityClaims, error) {
	claims := &IdentityClaims{}
	token, err := jwt.ParseWithClaims(tokenStr, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return secret, nil
	}, jwt.WithIssuer(Issuer), jwt.WithAudience(Audience), jwt.WithIssuedAt())
	if err != nil {
		return nil, fmt.Errorf("invalid token: %w", err)
	}
	if !token.Valid {
		return nil, errors.New("invalid token")
	}
	return claims, nil
}

// IssuedBefore reports whether the token was issued strictly before watermark.
// Tokens without iat are treated as issued before any watermark.
func (c *IdentityClaims) IssuedBefore(watermark time.Time) bool {
	if c.IssuedAt == nil {
		return true
	}
	return c.IssuedAt.Time.Before(watermark.Truncate(time.Second))
}
