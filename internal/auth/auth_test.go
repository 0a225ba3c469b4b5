package auth

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"vercel-runtime/internal/config"
)

const testSecret = "0123456789abcdef0123456789abcdef"

func TestVerifyAuthorization(t *testing.T) {
	verifier := NewVerifier(config.AuthConfig{JWTSecret: testSecret})

	token, err := verifier.GenerateToken("u-1", "ada", []string{"admin"}, time.Hour)
	require.NoError(t, err)

	claims, err := verifier.VerifyAuthorization("Bearer " + token)
	require.NoError(t, err)
	assert.Equal(t, "u-1", claims.UserID)
	assert.Equal(t, "ada", claims.Username)
	assert.Equal(t, []string{"admin"}, claims.Roles)
}

func TestVerifyAuthorization_Rejects(t *testing.T) {
	verifier := NewVerifier(config.AuthConfig{JWTSecret: testSecret})
	other := NewVerifier(config.AuthConfig{JWTSecret: "another-secret-value-0000"})
	otherIssuer := NewVerifier(config.AuthConfig{JWTSecret: testSecret, Issuer: "someone-else"})

	expired, err := verifier.GenerateToken("u-1", "ada", nil, -time.Minute)
	require.NoError(t, err)
	foreign, err := other.GenerateToken("u-1", "ada", nil, time.Hour)
	require.NoError(t, err)
	wrongIssuer, err := otherIssuer.GenerateToken("u-1", "ada", nil, time.Hour)
	require.NoError(t, err)

	tests := []struct {
		name    string
		header  string
		wantErr error
	}{
		{name: "missing", header: "", wantErr: ErrMissingToken},
		{name: "wrong scheme", header: "Basic abc", wantErr: ErrInvalidToken},
		{name: "no token", header: "Bearer ", wantErr: ErrInvalidToken},
		{name: "garbage", header: "Bearer not.a.jwt", wantErr: ErrInvalidToken},
		{name: "expired", header: "Bearer " + expired, wantErr: ErrInvalidToken},
		{name: "wrong secret", header: "Bearer " + foreign, wantErr: ErrInvalidToken},
		{name: "wrong issuer", header: "Bearer " + wrongIssuer, wantErr: ErrInvalidToken},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := verifier.VerifyAuthorization(tt.header)
			require.Error(t, err)
			assert.True(t, errors.Is(err, tt.wantErr), "got %v", err)
		})
	}
}
