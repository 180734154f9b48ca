package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrijs2005/docuchat/internal/common"
)

var testSecret = []byte("test-secret")

func TestSessionToken_Roundtrip(t *testing.T) {
	token, err := NewSessionToken(testSecret, time.Hour)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	require.NoError(t, VerifySessionToken(token, testSecret))
}

func TestVerifySessionToken_WrongSecret(t *testing.T) {
	token, err := NewSessionToken(testSecret, time.Hour)
	require.NoError(t, err)

	err = VerifySessionToken(token, []byte("other-secret"))
	assert.ErrorIs(t, err, common.ErrInvalidToken)
}

func TestVerifySessionToken_Expired(t *testing.T) {
	token, err := NewSessionToken(testSecret, -time.Minute)
	require.NoError(t, err)

	err = VerifySessionToken(token, testSecret)
	assert.ErrorIs(t, err, common.ErrTokenExpired)
}

func TestVerifySessionToken_Garbage(t *testing.T) {
	err := VerifySessionToken("not-a-token", testSecret)
	assert.ErrorIs(t, err, common.ErrInvalidToken)
}

func TestCheckCredentials(t *testing.T) {
	tests := []struct {
		name     string
		username string
		password string
		want     bool
	}{
		{"valid pair", "admin", "password123", true},
		{"wrong password", "admin", "nope", false},
		{"wrong username", "root", "password123", false},
		{"both empty", "", "", false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := CheckCredentials(tc.username, tc.password, "admin", "password123")
			assert.Equal(t, tc.want, got)
		})
	}
}
