package hash

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestBcryptHasher(t *testing.T) {
	h := NewBcryptHasher(bcrypt.MinCost)

	t.Run("hash and verify round trip", func(t *testing.T) {
		hashed, err := h.Hash("secret123")
		require.NoError(t, err)
		assert.NotEqual(t, "secret123", hashed)
		assert.True(t, h.Verify("secret123", hashed))
	})

	t.Run("wrong password fails verification", func(t *testing.T) {
		hashed, err := h.Hash("secret123")
		require.NoError(t, err)
		assert.False(t, h.Verify("secret124", hashed))
	})

	t.Run("same password hashes differently", func(t *testing.T) {
		h1, err := h.Hash("secret123")
		require.NoError(t, err)
		h2, err := h.Hash("secret123")
		require.NoError(t, err)
		assert.NotEqual(t, h1, h2)
	})

	t.Run("out of range cost falls back to default", func(t *testing.T) {
		bad := NewBcryptHasher(99)
		hashed, err := bad.Hash("pw")
		require.NoError(t, err)
		assert.True(t, bad.Verify("pw", hashed))
	})
}
