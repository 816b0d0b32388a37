package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHashPassword_RoundTrip(t *testing.T) {
	hash, err := HashPassword("secret1")
	require.NoError(t, err)

	assert.NotEqual(t, "secret1", hash)
	assert.True(t, CheckPasswordHash("secret1", hash))
	assert.False(t, CheckPasswordHash("secret2", hash))
	assert.False(t, CheckPasswordHash("", hash))
}

func TestHashPassword_Salted(t *testing.T) {
	h1, err := HashPassword("same-password")
	require.NoError(t, err)
	h2, err := HashPassword("same-password")
	require.NoError(t, err)

	assert.NotEqual(t, h1, h2)
	assert.True(t, CheckPasswordHash("same-password", h1))
	assert.True(t, CheckPasswordHash("same-password", h2))
}

func TestCheckPasswordHash_MalformedDigest(t *testing.T) {
	// Corrupted storage must read as a failed verification, not a panic.
	assert.False(t, CheckPasswordHash("secret1", "not-a-bcrypt-digest"))
	assert.False(t, CheckPasswordHash("secret1", ""))
}
