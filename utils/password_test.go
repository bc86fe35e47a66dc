package utils

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHashAndCheckPassword(t *testing.T) {
	hash, err := HashPassword("correct horse")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(hash, "$2a$10$"), "unexpected hash format %q", hash)

	assert.True(t, CheckPassword(hash, "correct horse"))
	assert.False(t, CheckPassword(hash, "battery staple"))
	assert.False(t, CheckPassword("not-a-hash", "correct horse"))
}

func TestGenerateSecurePassword(t *testing.T) {
	short, err := GenerateSecurePassword(3)
	require.NoError(t, err)
	assert.Len(t, short, 8)

	first, err := GenerateSecurePassword(16)
	require.NoError(t, err)
	second, err := GenerateSecurePassword(16)
	require.NoError(t, err)
	assert.Len(t, first, 16)
	assert.NotEqual(t, first, second)
}
