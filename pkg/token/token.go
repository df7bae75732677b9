// Package token issues and verifies the HS256 bearer tokens the API uses
// for authentication. Claims carry the user id, email and role so handlers
// never reach back into the database just to authorize a request.
package token

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var (
	ErrInvalidToken = errors.New("invalid token")

	secret []byte
	ttl    = 24 * time.Hour
)

// Claims is the verified (userId, role) pair every operation receives
// explicitly instead of reading ambient request state.
type Claims struct {
	UserID int64
	Email  string
	Role   string
}

func Init(signingSecret string, tokenTTL time.Duration) {
	secret = []byte(signingSecret)
	if tokenTTL > 0 {
		ttl = tokenTTL
	}
}

func Generate(userID int64, email, role string) (string, error) {
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"userId": userID,
		"email":  email,
		"role":   role,
		"exp":    time.Now().Add(ttl).Unix(),
	})

	return t.SignedString(secret)
}

func Verify(tokenString string) (*Claims, error) {
	parsed, err := jwt.Parse(tokenString, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return secret, nil
	})
	if err != nil || !parsed.Valid {
		return nil, ErrInvalidToken
	}

	mapClaims, ok := parsed.Claims.(jwt.MapClaims)
	if !ok {
		return nil, ErrInvalidToken
	}

	userID, ok := mapClaims["userId"].(float64)
	if !ok {
		return nil, ErrInvalidToken
	}
	email, _ := mapClaims["email"].(string)
	role, ok := mapClaims["role"].(string)
	if !ok {
		return nil, ErrInvalidToken
	}

	return &Claims{UserID: int64(userID), Email: email, Role: role}, nil
}
