package token

import (
	"testing"

	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret"

func TestGenerateAndValidate(t *testing.T) {
	tok, err := Generate("abc123", "moderator", testSecret, 1)
	require.NoError(t, err)
	require.NotEmpty(t, tok)

	claims, err := Validate(tok, testSecret)
	require.NoError(t, err)
	require.Equal(t, "abc123", claims.AdminID)
	require.Equal(t, "moderator", claims.Username)
}

func TestValidateWrongSecret(t *testing.T) {
	tok, err := Generate("abc123", "moderator", testSecret, 1)
	require.NoError(t, err)

	_, err = Validate(tok, "other-secret")
	require.ErrorIs(t, err, ErrMalformed)
}

func TestValidateExpired(t *testing.T) {
	tok, err := Generate("abc123", "moderator", testSecret, -1)
	require.NoError(t, err)

	_, err = Validate(tok, testSecret)
	require.ErrorIs(t, err, ErrExpired)
}

func TestValidateGarbage(t *testing.T) {
	_, err := Validate("not.a.token", testSecret)
	require.ErrorIs(t, err, ErrMalformed)
}
