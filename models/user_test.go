package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCredential_PasswordRoundTrip(t *testing.T) {
	cred := Credential{Email: "a@b.com"}
	require.NoError(t, cred.HashPassword("hunter22"))

	assert.NotEqual(t, "hunter22", cred.PasswordHash)
	assert.True(t, cred.ComparePassword("hunter22"))
	assert.False(t, cred.ComparePassword("hunter23"))
}
