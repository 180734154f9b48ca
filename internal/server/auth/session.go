// Package auth issues and verifies the signed session tokens that gate the
// admin-only upload surface.
package auth

import (
	"crypto/subtle"
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/dmitrijs2005/docuchat/internal/common"
)

// Claims carries the standard registered claims plus the admin flag set on
// successful login.
type Claims struct {
	jwt.RegisteredClaims
	Admin bool `json:"admin"`
}

// NewSessionToken mints a signed session token (HS256) valid for the given
// duration.
func NewSessionToken(secretKey []byte, validityDuration time.Duration) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(validityDuration)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
		Admin: true,
	})

	tokenString, err := token.SignedString(secretKey)
	if err != nil {
		return "", err
	}

	return tokenString, nil
}

// VerifySessionToken parses tokenString and reports whether it represents a
// valid admin session. Expired tokens yield common.ErrTokenExpired; any other
// parse or validation failure yields common.ErrInvalidToken.
func VerifySessionToken(tokenString string, secretKey []byte) error {
	claims := &Claims{}

	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		return secretKey, nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return common.ErrTokenExpired
		}
		return common.ErrInvalidToken
	}

	if !token.Valid || !claims.Admin {
		return common.ErrInvalidToken
	}

	return nil
}

// CheckCredentials compares the submitted username/password pair against the
// configured admin credential in constant time.
func CheckCredentials(username, password, wantUsername, wantPassword string) bool {
	userOK := subtle.ConstantTimeCompare([]byte(username), []byte(wantUsername)) == 1
	passOK := subtle.ConstantTimeCompare([]byte(password), []byte(wantPassword)) == 1
	return userOK && passOK
}
