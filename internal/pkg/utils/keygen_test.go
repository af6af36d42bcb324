package utils

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateKey(t *testing.T) {
	a, err := GenerateKey("req-", 16)
	require.NoError(t, err)
	b, err := GenerateKey("req-", 16)
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(a, "req-"))
	assert.Len(t, a, 20)
	assert.NotEqual(t, a, b)
	for _, ch := range strings.TrimPrefix(a, "req-") {
		assert.Contains(t, base62Chars, string(ch))
	}
}

func TestGenerateKey_ZeroLength(t *testing.T) {
	k, err := GenerateKey("req-", 0)
	require.NoError(t, err)
	assert.Equal(t, "req-", k)
}
