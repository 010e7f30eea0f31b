package services_test

import (
	"testing"

	"swiftstock/internal/services"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSHA256Hasher(t *testing.T) {
	hasher := services.SHA256Hasher{}

	first, err := hasher.Hash("12345")
	require.NoError(t, err)
	second, err := hasher.Hash("12345")
	require.NoError(t, err)

	assert.Equal(t, first, second, "digest is deterministic")
	assert.Len(t, first, 64)
	assert.True(t, hasher.Verify(first, "12345"))
	assert.False(t, hasher.Verify(first, "123456"))
}

func TestBcryptHasher(t *testing.T) {
	hasher := services.BcryptHasher{Cost: 4}

	first, err := hasher.Hash("12345")
	require.NoError(t, err)
	second, err := hasher.Hash("12345")
	require.NoError(t, err)

	assert.NotEqual(t, first, second, "hashes are salted")
	assert.True(t, hasher.Verify(first, "12345"))
	assert.True(t, hasher.Verify(second, "12345"))
	assert.False(t, hasher.Verify(first, "wrong"))
}

func TestNewPasswordHasher(t *testing.T) {
	h, err := services.NewPasswordHasher("sha256")
	require.NoError(t, err)
	assert.IsType(t, services.SHA256Hasher{}, h)

	h, err = services.NewPasswordHasher("bcrypt")
	require.NoError(t, err)
	assert.IsType(t, services.BcryptHasher{}, h)

	_, err = services.NewPasswordHasher("md5")
	assert.Error(t, err)
}
