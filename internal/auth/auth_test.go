package auth_test

import (
	"testing"

	"github.com/golang-jwt/jwt/v4"
	"github.com/mauv0809/crispy-paddle/internal/auth"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func signedToken(t *testing.T, claims jwt.MapClaims) string {
	t.Helper()
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("test-secret"))
	require.NoError(t, err)
	return token
}

func TestParseIdentity(t *testing.T) {
	token := signedToken(t, jwt.MapClaims{
		"sub":              "user-123",
		"email":            "alice@example.com",
		"name":             "Alice",
		"cognito:username": "alice",
		"picture":          "https://example.com/alice.png",
	})

	id, err := auth.ParseIdentity("Bearer " + token)
	require.NoError(t, err)
	assert.Equal(t, "user-123", id.Sub)
	assert.Equal(t, "alice@example.com", id.Email)
	assert.Equal(t, "Alice", id.Name)
	assert.Equal(t, "alice", id.Username)
	assert.Equal(t, "https://example.com/alice.png", id.Picture)
}

func TestParseIdentityPreferredUsernameFallback(t *testing.T) {
	token := signedToken(t, jwt.MapClaims{
		"sub":                "user-456",
		"preferred_username": "bob",
	})

	id, err := auth.ParseIdentity(token)
	require.NoError(t, err)
	assert.Equal(t, "bob", id.Username)
}

func TestParseIdentityRejectsGarbage(t *testing.T) {
	_, err := auth.ParseIdentity("")
	assert.ErrorIs(t, err, auth.ErrNoIdentity)

	_, err = auth.ParseIdentity("Bearer not-a-token")
	assert.Error(t, err)

	// A syntactically valid token with no usable claims.
	empty := signedToken(t, jwt.MapClaims{"aud": "nobody"})
	_, err = auth.ParseIdentity(empty)
	assert.ErrorIs(t, err, auth.ErrNoIdentity)
}

func TestAuthorize(t *testing.T) {
	authorizer := auth.NewAuthorizer("Admin@Example.com, boss@example.com")

	admin := authorizer.Authorize(&auth.Identity{Sub: "u1", Email: "admin@example.com"})
	assert.True(t, admin.IsAdmin)
	assert.Equal(t, "u1", admin.Principal)

	member := authorizer.Authorize(&auth.Identity{Sub: "u2", Email: "member@example.com"})
	assert.False(t, member.IsAdmin)

	assert.False(t, authorizer.Authorize(nil).IsAdmin)

	nobody := auth.NewAuthorizer("")
	assert.False(t, nobody.Authorize(&auth.Identity{Email: "admin@example.com"}).IsAdmin)
}
