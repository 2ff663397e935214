package security

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestBcryptHasher(t *testing.T) {
	h := NewBcryptHasher(bcrypt.MinCost)

	hash, err := h.Hash("admin123")
	require.NoError(t, err)
	assert.True(t, IsBcryptHash(hash))
	assert.NoError(t, h.Compare(hash, "admin123"))
	assert.Error(t, h.Compare(hash, "admin124"))
}

func TestHashRejectsShortPassword(t *testing.T) {
	h := NewBcryptHasher(bcrypt.MinCost)

	_, err := h.Hash("short")
	assert.ErrorIs(t, err, ErrPasswordTooShort)

	hash, err := h.Rehash("short")
	require.NoError(t, err)
	assert.NoError(t, h.Compare(hash, "short"))
}

func TestNewBcryptHasherClampsCost(t *testing.T) {
	assert.Equal(t, DefaultCost, NewBcryptHasher(0).cost)
	assert.Equal(t, DefaultCost, NewBcryptHasher(99).cost)
}

func TestIsBcryptHash(t *testing.T) {
	assert.True(t, IsBcryptHash("$2b$12$abcdefghijklmnopqrstuv"))
	assert.True(t, IsBcryptHash("$2y$10$abcdefghijklmnopqrstuv"))
	assert.False(t, IsBcryptHash("admin123"))
	assert.False(t, IsBcryptHash(""))
}
