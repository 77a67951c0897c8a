// AngelaMos | 2026
// security_test.go

package core

import (
	"encoding/hex"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPasswordHashing(t *testing.T) {
	t.Run("hash verifies its own password", func(t *testing.T) {
		hash, err := HashPassword("correct horse battery staple")
		require.NoError(t, err)
		assert.True(t, strings.HasPrefix(hash, "$argon2id$"))

		valid, err := VerifyPassword("correct horse battery staple", hash)
		require.NoError(t, err)
		assert.True(t, valid)
	})

	t.Run("wrong password fails", func(t *testing.T) {
		hash, err := HashPassword("correct horse battery staple")
		require.NoError(t, err)

		valid, err := VerifyPassword("wrong horse", hash)
		require.NoError(t, err)
		assert.False(t, valid)
	})

	t.Run("same password hashes differently", func(t *testing.T) {
		first, err := HashPassword("p@ssw0rd")
		require.NoError(t, err)
		second, err := HashPassword("p@ssw0rd")
		require.NoError(t, err)
		assert.NotEqual(t, first, second)
	})

	t.Run("malformed hash is an error", func(t *testing.T) {
		_, err := VerifyPassword("anything", "not-a-hash")
		assert.Error(t, err)
	})
}

func TestVerifyPasswordTimingSafe(t *testing.T) {
	t.Run("nil hash always fails without error", func(t *testing.T) {
		valid, rehash, err := VerifyPasswordTimingSafe("anything", nil)
		require.NoError(t, err)
		assert.False(t, valid)
		assert.Empty(t, rehash)
	})

	t.Run("real hash still verifies", func(t *testing.T) {
		hash, err := HashPassword("p@ssw0rd")
		require.NoError(t, err)

		valid, rehash, err := VerifyPasswordTimingSafe("p@ssw0rd", &hash)
		require.NoError(t, err)
		assert.True(t, valid)
		assert.Empty(t, rehash, "current params should not trigger a rehash")
	})
}

func TestInviteTokens(t *testing.T) {
	t.Run("token is 64 hex characters", func(t *testing.T) {
		token, err := GenerateInviteToken()
		require.NoError(t, err)
		assert.Len(t, token, 64)

		_, err = hex.DecodeString(token)
		assert.NoError(t, err)
	})

	t.Run("digest round-trips through comparison", func(t *testing.T) {
		token, err := GenerateInviteToken()
		require.NoError(t, err)

		digest := HashToken(token)
		assert.Len(t, digest, 64)
		assert.NotEqual(t, token, digest)

		assert.True(t, CompareTokenHash(token, digest))
		assert.False(t, CompareTokenHash("tampered", digest))
	})

	t.Run("tokens do not repeat", func(t *testing.T) {
		seen := map[string]bool{}
		for range 32 {
			token, err := GenerateInviteToken()
			require.NoError(t, err)
			assert.False(t, seen[token])
			seen[token] = true
		}
	})
}
