package referralcode

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewFormat(t *testing.T) {
	for i := 0; i < 200; i++ {
		code, err := New()
		require.NoError(t, err)
		assert.Len(t, code, Length)
		for _, ch := range code {
			assert.True(t, strings.ContainsRune(alphabet, ch), "unexpected character %q in %q", ch, code)
		}
	}
}

func TestNewNotConstant(t *testing.T) {
	seen := make(map[string]struct{})
	for i := 0; i < 50; i++ {
		code, err := New()
		require.NoError(t, err)
		seen[code] = struct{}{}
	}
	// 50 draws from a 36^6 space colliding down to one value would mean the
	// generator is broken.
	assert.Greater(t, len(seen), 1)
}
