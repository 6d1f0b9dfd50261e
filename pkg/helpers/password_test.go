package helpers

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestBcrypt(t *testing.T) {
	tests := []struct {
		name     string
		password string
		wantErr  bool
	}{
		{name: "simple password", password: "password123"},
		{name: "complex password", password: "P@ssw0rd!2023#$%^&*()"},
		{name: "72 bytes", password: strings.Repeat("a", 72)},
		{name: "73 bytes", password: strings.Repeat("a", 73), wantErr: true},
	}

	h := NewBcrypt(bcrypt.MinCost)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			hash, err := h.Hash(tt.password)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.NotEqual(t, tt.password, hash)
			assert.True(t, h.Matches(hash, tt.password))
			assert.False(t, h.Matches(hash, tt.password+"x"))
		})
	}
}

func TestNewBcrypt_InvalidCostFallsBack(t *testing.T) {
	assert.Equal(t, bcrypt.DefaultCost, NewBcrypt(0).Cost)
	assert.Equal(t, bcrypt.DefaultCost, NewBcrypt(99).Cost)
	assert.Equal(t, bcrypt.MinCost, NewBcrypt(bcrypt.MinCost).Cost)
}

func TestCompareHashAndPassword_SaltedHashes(t *testing.T) {
	a, err := HashPassword("secret-password")
	require.NoError(t, err)
	b, err := HashPassword("secret-password")
	require.NoError(t, err)

	assert.NotEqual(t, a, b)
	assert.True(t, CompareHashAndPassword(a, "secret-password"))
	assert.True(t, CompareHashAndPassword(b, "secret-password"))
	assert.False(t, CompareHashAndPassword("not-a-hash", "secret-password"))
}
