package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateSecureRandomString(t *testing.T) {
	key, err := GenerateSecureRandomString(20)
	require.NoError(t, err)
	assert.Len(t, key, 20)

	for _, r := range key {
		assert.Contains(t, randomAlphabet, string(r))
	}
}

func TestGenerateSecureRandomString_InvalidLength(t *testing.T) {
	_, err := GenerateSecureRandomString(0)
	assert.Error(t, err)

	_, err = GenerateSecureRandomString(-5)
	assert.Error(t, err)
}

func TestGenerateSecureRandomString_Uniqueness(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 100; i++ {
		key, err := GenerateSecureRandomString(20)
		require.NoError(t, err)
		assert.False(t, seen[key], "anahtar tekrar üretildi: %s", key)
		seen[key] = true
	}
}
