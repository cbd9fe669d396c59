package security

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var secret = []byte("0123456789abcdef0123456789abcdef")

func TestCreateAndParseIdentityToken(t *testing.T) {
	now := time.Now()
	token, err := CreateIdentityToken(Identity{ID: 3, Email: "jane@example.com", Role: "ADMIN"}, secret, time.Hour, now)
	require.NoError(t, err)

	claims, err := ParseIdentityToken(token, secret)
	require.NoError(t, err)
	assert.Equal(t, int32(3), claims.Identity.ID)
	assert.Equal(t, "jane@example.com", claims.Email)
	assert.Equal(t, "ADMIN", claims.Role)
	assert.Equal(t, "jane@example.com", claims.Subject)
}

func TestParseIdentityTokenRejects(t *testing.T) {
	now := time.Now()
	expired, err := CreateIdentityToken(Identity{ID: 1, Email: "a@example.com"}, secret, -time.Minute, now.Add(-time.Hour))
	require.NoError(t, err)
	_, err = ParseIdentityToken(expired, secret)
	assert.Error(t, err)

	valid, err := CreateIdentityToken(Identity{ID: 1, Email: "a@example.com"}, secret, time.Hour, now)
	require.NoError(t, err)
	_, err = ParseIdentityToken(valid, []byte("another-secret"))
	assert.Error(t, err)

	_, err = ParseIdentityToken("not-a-token", secret)
	assert.Error(t, err)

	_, err = CreateIdentityToken(Identity{}, nil, time.Hour, now)
	assert.Error(t, err)
}

func TestIssuedBefore(t *testing.T) {
	issued := time.Date(2024, 1, 1, 9, 0, 0, 0, time.UTC)
	token, err := CreateIdentityToken(Identity{ID: 1, Email: "a@example.com"}, secret, 100000*time.Hour, issued)
	require.NoError(t, err)
	claims, err := ParseIdentityToken(token, secret)
	require.NoError(t, err)

	assert.True(t, claims.IssuedBefore(issued.Add(time.Second)))
	assert.False(t, claims.IssuedBefore(issued))
	// sub-second watermarks compare at token resolution
	assert.False(t, claims.IssuedBefore(issued.Add(500*time.Millisecond)))
	assert.False(t, claims.IssuedBefore(issued.Add(-time.Hour)))
}
