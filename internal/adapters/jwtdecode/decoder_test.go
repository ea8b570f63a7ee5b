package jwtdecode

import (
	"context"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func signToken(t *testing.T, claims jwt.MapClaims) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte("test-key"))
	require.NoError(t, err)
	return signed
}

func TestDecode_ValidCredential(t *testing.T) {
	exp := time.Now().Add(time.Hour).Truncate(time.Second)
	credential := signToken(t, jwt.MapClaims{
		"name":    "Ada Lovelace",
		"email":   "ada@example.com",
		"picture": "https://example.com/ada.png",
		"exp":     exp.Unix(),
	})

	identity, err := New().Decode(context.Background(), credential)
	require.NoError(t, err)
	assert.Equal(t, "Ada Lovelace", identity.Name)
	assert.Equal(t, "ada@example.com", identity.Email)
	assert.Equal(t, "https://example.com/ada.png", identity.Picture)
	assert.True(t, identity.ExpiresAt.Equal(exp))
}

func TestDecode_ExpiredCredentialStillDecodes(t *testing.T) {
	credential := signToken(t, jwt.MapClaims{
		"name":  "Ada Lovelace",
		"email": "ada@example.com",
		"exp":   time.Now().Add(-time.Hour).Unix(),
	})

	identity, err := New().Decode(context.Background(), credential)
	require.NoError(t, err, "expiry is reported, not enforced, by the decoder")
	assert.True(t, identity.Expired(time.Now()))
}

func TestDecode_MissingClaims(t *testing.T) {
	exp := time.Now().Add(time.Hour).Unix()
	tests := []struct {
		name   string
		claims jwt.MapClaims
	}{
		{"no name", jwt.MapClaims{"email": "a@b.c", "exp": exp}},
		{"no email", jwt.MapClaims{"name": "Ada", "exp": exp}},
		{"no exp", jwt.MapClaims{"name": "Ada", "email": "a@b.c"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := New().Decode(context.Background(), signToken(t, tt.claims))
			assert.Error(t, err)
		})
	}
}

func TestDecode_Garbage(t *testing.T) {
	_, err := New().Decode(context.Background(), "not.a.jwt")
	assert.Error(t, err)

	_, err = New().Decode(context.Background(), "")
	assert.Error(t, err)
}
