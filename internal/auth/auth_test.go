// ABOUTME: Tests for the bearer credential gate and verifiers
// ABOUTME: Validates the three gate failure modes and exact-equality matching

package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGate_Authorize(t *testing.T) {
	gate := NewGate(NewStaticVerifier("my-secret-token-12345"))

	tests := []struct {
		name   string
		header string
		want   error
	}{
		{"missing header", "", ErrMissingHeader},
		{"wrong scheme", "Basic dXNlcjpwYXNz", ErrInvalidScheme},
		{"lowercase scheme", "bearer my-secret-token-12345", ErrInvalidScheme},
		{"scheme only, no space", "Bearer", ErrInvalidScheme},
		{"empty token", "Bearer ", ErrInvalidToken},
		{"wrong token", "Bearer nope", ErrInvalidToken},
		{"token with trailing space", "Bearer my-secret-token-12345 ", ErrInvalidToken},
		{"valid", "Bearer my-secret-token-12345", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := gate.Authorize(tt.header)
			if tt.want == nil {
				assert.NoError(t, err)
			} else {
				assert.ErrorIs(t, err, tt.want)
			}
		})
	}
}

func TestGate_ErrorMessages(t *testing.T) {
	// These strings are returned to clients verbatim; pin them.
	assert.Equal(t, "Missing Authorization header", ErrMissingHeader.Error())
	assert.Equal(t, "Invalid authentication scheme. Expected Bearer token.", ErrInvalidScheme.Error())
	assert.Equal(t, "Invalid bearer token", ErrInvalidToken.Error())
}

func TestStaticVerifier_ExactEquality(t *testing.T) {
	v := NewStaticVerifier("abc")

	assert.NoError(t, v.Verify("abc"))
	assert.Error(t, v.Verify("ABC"))
	assert.Error(t, v.Verify("abc "))
	assert.Error(t, v.Verify(""))
}

func TestJWTVerifier(t *testing.T) {
	v := NewJWTVerifier([]byte("test-secret"))

	t.Run("valid token", func(t *testing.T) {
		token, err := v.Generate("agent-1", time.Hour)
		require.NoError(t, err)
		assert.NoError(t, v.Verify(token))
	})

	t.Run("expired token", func(t *testing.T) {
		token, err := v.Generate("agent-1", -time.Hour)
		require.NoError(t, err)
		assert.ErrorIs(t, v.Verify(token), ErrExpiredToken)
	})

	t.Run("wrong secret", func(t *testing.T) {
		other := NewJWTVerifier([]byte("other-secret"))
		token, err := other.Generate("agent-1", time.Hour)
		require.NoError(t, err)
		assert.Error(t, v.Verify(token))
	})

	t.Run("garbage token", func(t *testing.T) {
		assert.Error(t, v.Verify("not-a-jwt"))
	})

	t.Run("gate maps jwt failure to invalid bearer token", func(t *testing.T) {
		gate := NewGate(v)
		err := gate.Authorize("Bearer not-a-jwt")
		assert.ErrorIs(t, err, ErrInvalidToken)
	})
}
