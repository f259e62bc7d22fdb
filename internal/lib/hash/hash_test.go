package hash_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"authcore/internal/lib/hash"
)

func TestSHA256_HashIsDeterministicHex(t *testing.T) {
	hasher := hash.NewSHA256()

	digest, err := hasher.Hash("password")
	require.NoError(t, err)

	assert.Equal(t, "5e884898da28047151d0e56f8dc6292773603d0d6aabbdd62a11ef721d1542d8", digest)
	assert.Len(t, digest, 64)

	again, err := hasher.Hash("password")
	require.NoError(t, err)
	assert.Equal(t, digest, again)
}

func TestSHA256_Verify(t *testing.T) {
	hasher := hash.NewSHA256()

	digest, err := hasher.Hash("Valid123")
	require.NoError(t, err)

	ok, err := hasher.Verify("Valid123", digest)
	require.NoError(t, err)
	assert.True(t, ok)

	// Stored digest case does not matter, hex is hex.
	ok, err = hasher.Verify("Valid123", strings.ToUpper(digest))
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = hasher.Verify("valid123", digest)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestBcrypt_RoundTrip(t *testing.T) {
	hasher := hash.NewBcrypt(4)

	digest, err := hasher.Hash("Valid123")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(digest, "$2"))

	ok, err := hasher.Verify("Valid123", digest)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = hasher.Verify("Wrong123", digest)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestBcrypt_InvalidStoredDigest(t *testing.T) {
	hasher := hash.NewBcrypt(4)

	_, err := hasher.Verify("Valid123", "not-a-bcrypt-hash")
	require.Error(t, err)
}
