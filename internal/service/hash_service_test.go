package service

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestArgon2HashService_VerifyMatch(t *testing.T) {
	svc := NewArgon2HashService()

	hash, err := svc.Hash("my-password")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(hash, "$argon2id$"))

	ok, err := svc.Verify("my-password", hash)
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestArgon2HashService_VerifyMismatch(t *testing.T) {
	svc := NewArgon2HashService()

	hash, err := svc.Hash("my-password")
	require.NoError(t, err)

	ok, err := svc.Verify("other-password", hash)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestArgon2HashService_UniqueSalts(t *testing.T) {
	svc := NewArgon2HashService()

	h1, err := svc.Hash("same-password")
	require.NoError(t, err)
	h2, err := svc.Hash("same-password")
	require.NoError(t, err)
	assert.NotEqual(t, h1, h2)
}

func TestArgon2HashService_MalformedHash(t *testing.T) {
	svc := NewArgon2HashService()

	_, err := svc.Verify("password", "not-an-encoded-hash")
	assert.Error(t, err)
}
