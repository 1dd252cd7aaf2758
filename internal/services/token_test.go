package services

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestToken_RoundTrip(t *testing.T) {
	svc := NewTokenService("test-secret", 24)
	userID := uuid.New()

	token, err := svc.Generate(userID)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	parsed, err := svc.Parse(token)
	require.NoError(t, err)
	assert.Equal(t, userID, parsed)
}

func TestToken_WrongSecretRejected(t *testing.T) {
	issuer := NewTokenService("secret-one", 24)
	verifier := NewTokenService("secret-two", 24)

	token, err := issuer.Generate(uuid.New())
	require.NoError(t, err)

	_, err = verifier.Parse(token)
	assert.Error(t, err)
}

func TestToken_GarbageRejected(t *testing.T) {
	svc := NewTokenService("test-secret", 24)

	_, err := svc.Parse("not.a.token")
	assert.Error(t, err)

	_, err = svc.Parse("")
	assert.Error(t, err)
}

func TestToken_ExpiredRejected(t *testing.T) {
	svc := NewTokenService("test-secret", -1)

	token, err := svc.Generate(uuid.New())
	require.NoError(t, err)

	_, err = svc.Parse(token)
	assert.Error(t, err)
}
