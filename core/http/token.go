package http

import (
	"errors"
	"fmt"
	"time"

	"github.com/dgrijalva/jwt-go"
)

var (
	ErrTokenExpired = errors.New("token expired")
	ErrTokenInvalid = errors.New("token invalid")
)

// SignToken issues an HS256 token carrying userID. A zero ttl never
// expires; a negative one is already expired.
func SignToken(secret, userID string, ttl time.Duration) (string, error) {
	claims := jwt.MapClaims{
		"user_id": userID,
		"iat":     time.Now().Unix(),
	}
	if ttl != 0 {
		claims["exp"] = time.Now().Add(ttl).Unix()
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
}

// ParseToken validates raw and returns its user id.
func ParseToken(secret, raw string) (string, error) {
	if secret == "" {
		return "", fmt.Errorf("%w: no application secret", ErrTokenInvalid)
	}

	signed, err := jwt.Parse(raw, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return []byte(secret), nil
	})

	// Branch out into the possible error from signing
	switch err := err.(type) {
	case nil:
	case *jwt.ValidationError:
		if err.Errors&jwt.ValidationErrorExpired != 0 {
			return "", ErrTokenExpired
		}
		return "", fmt.Errorf("%w: %v", ErrTokenInvalid, err)
	default:
		return "", fmt.Errorf("%w: %v", ErrTokenInvalid, err)
	}
	if !signed.Valid {
		return "", ErrTokenInvalid
	}

	claims, ok := signed.Claims.(jwt.MapClaims)
	if !ok {
		return "", ErrTokenInvalid
	}
	userID, ok := claims["user_id"].(string)
	if !ok || userID == "" {
		return "", fmt.Errorf("%w: missing user_id", ErrTokenInvalid)
	}
	return userID, nil
}
