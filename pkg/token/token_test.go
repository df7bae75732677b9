package token_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cecepns/trailrun/pkg/token"
)

func TestGenerateAndVerify(t *testing.T) {
	token.Init("test-secret", time.Hour)

	signed, err := token.Generate(42, "budi@example.com", "admin")
	require.NoError(t, err)
	require.NotEmpty(t, signed)

	claims, err := token.Verify(signed)
	require.NoError(t, err)
	assert.Equal(t, int64(42), claims.UserID)
	assert.Equal(t, "budi@example.com", claims.Email)
	assert.Equal(t, "admin", claims.Role)
}

func TestVerifyRejectsGarbage(t *testing.T) {
	token.Init("test-secret", time.Hour)

	_, err := token.Verify("not.a.token")
	assert.ErrorIs(t, err, token.ErrInvalidToken)

	_, err = token.Verify("")
	assert.ErrorIs(t, err, token.ErrInvalidToken)
}

func TestVerifyRejectsWrongSecret(t *testing.T) {
	token.Init("secret-one", time.Hour)
	signed, err := token.Generate(1, "a@example.com", "user")
	require.NoError(t, err)

	token.Init("secret-two", time.Hour)
	_, err = token.Verify(signed)
	assert.ErrorIs(t, err, token.ErrInvalidToken)
}

func TestVerifyRejectsExpired(t *testing.T) {
	token.Init("test-secret", time.Millisecond)
	signed, err := token.Generate(1, "a@example.com", "user")
	require.NoError(t, err)

	time.Sleep(1100 * time.Millisecond)

	_, err = token.Verify(signed)
	assert.ErrorIs(t, err, token.ErrInvalidToken)
}
