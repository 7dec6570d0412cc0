package token

import (
	"errors"

	"github.com/golang-jwt/jwt/v5"
)

// SessionClaims carries the user id inside a signed session token. No
// expiry claim is set: session liveness is controlled by the registry
// clearing the stored token on logout, not by the encoding.
type SessionClaims struct {
	UserID int64 `json:"uID"`
	jwt.RegisteredClaims
}

var jwtSecret []byte

func Setup(key string) {
	jwtSecret = []byte(key)
}

func Encode(userID int64) (string, error) {
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, SessionClaims{UserID: userID})
	return t.SignedString(jwtSecret)
}

// Decode returns the user id embedded in tokenString, or an error on
// any tampering or malformed input.
func Decode(tokenString string) (int64, error) {
	claims := &SessionClaims{}
	t, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		return jwtSecret, nil
	})
	if err != nil {
		return 0, err
	}
	if !t.Valid {
		return 0, errors.New("invalid token")
	}
	return claims.UserID, nil
}
