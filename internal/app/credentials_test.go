package app

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPlaintextVerifier(t *testing.T) {
	v := PlaintextVerifier{}

	stored, err := v.Seal("hunter2")
	require.NoError(t, err)
	assert.Equal(t, "hunter2", stored)

	assert.True(t, v.Verify(stored, "hunter2"))
	assert.False(t, v.Verify(stored, "hunter3"))
}

func TestBcryptVerifier(t *testing.T) {
	v := BcryptVerifier{}

	stored, err := v.Seal("hunter2")
	require.NoError(t, err)
	assert.NotEqual(t, "hunter2", stored)

	assert.True(t, v.Verify(stored, "hunter2"))
	assert.False(t, v.Verify(stored, "hunter3"))
}

func TestVerifierForScheme(t *testing.T) {
	v, err := VerifierForScheme("plaintext")
	require.NoError(t, err)
	assert.IsType(t, PlaintextVerifier{}, v)

	v, err = VerifierForScheme("")
	require.NoError(t, err)
	assert.IsType(t, PlaintextVerifier{}, v)

	v, err = VerifierForScheme("bcrypt")
	require.NoError(t, err)
	assert.IsType(t, BcryptVerifier{}, v)

	_, err = VerifierForScheme("md5")
	assert.Error(t, err)
}
