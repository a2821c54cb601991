package authhash

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestArgon2HashAndVerify(t *testing.T) {
	h := NewArgon2Hasher()

	encoded, err := h.Hash("correct horse battery")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(encoded, "$argon2id$"))

	ok, err := h.Verify("correct horse battery", encoded)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = h.Verify("wrong password", encoded)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestArgon2HashesAreSalted(t *testing.T) {
	h := NewArgon2Hasher()

	first, err := h.Hash("same password")
	require.NoError(t, err)
	second, err := h.Hash("same password")
	require.NoError(t, err)

	assert.NotEqual(t, first, second)
}

func TestLegacyChecksum(t *testing.T) {
	h := LegacyChecksumHasher{}

	sum, err := h.Hash("password123")
	require.NoError(t, err)

	ok, err := h.Verify("password123", sum)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = h.Verify("password124", sum)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestMigratingHasherVerifiesBothSchemes(t *testing.T) {
	h := Default()

	// new records are argon2id
	encoded, err := h.Hash("fresh password")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(encoded, "$argon2id$"))

	ok, err := h.Verify("fresh password", encoded)
	require.NoError(t, err)
	assert.True(t, ok)

	// old records still verify through the legacy fallback
	legacySum, err := LegacyChecksumHasher{}.Hash("old password")
	require.NoError(t, err)

	ok, err = h.Verify("old password", legacySum)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = h.Verify("not the password", legacySum)
	require.NoError(t, err)
	assert.False(t, ok)
}
