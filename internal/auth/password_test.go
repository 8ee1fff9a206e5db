package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHashAndComparePassword(t *testing.T) {
	hash, err := HashPassword("secret123", 4)
	require.NoError(t, err)
	assert.NotEqual(t, "secret123", hash)

	assert.NoError(t, ComparePassword(hash, "secret123"))
	assert.Error(t, ComparePassword(hash, "wrong"))
}

func TestHashPasswordClampsBadCost(t *testing.T) {
	hash, err := HashPassword("secret123", 99)
	require.NoError(t, err)
	assert.NoError(t, ComparePassword(hash, "secret123"))
}
