// Package token signs and verifies the opaque bearer credential: an
// HS256 JWT whose payload carries the account id.
package token

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var (
	ErrExpired = errors.New("token has expired")
	ErrInvalid = errors.New("token is not valid")
)

type Codec struct {
	secret []byte
	ttl    time.Duration
}

func NewCodec(secret string, ttl time.Duration) *Codec {
	return &Codec{secret: []byte(secret), ttl: ttl}
}

// Encode signs a token for the given account id. Expiry matches the
// session cache TTL so a token never outlives its cache entry.
func (c *Codec) Encode(userID int) (string, error) {
	now := time.Now().UTC()
	claims := jwt.MapClaims{
		"id":  userID,
		"iat": now.Unix(),
		"exp": now.Add(c.ttl).Unix(),
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(c.secret)
}

// Decode verifies the signature and expiry and returns the embedded
// account id. Expired tokens return ErrExpired, anything else ErrInvalid.
func (c *Codec) Decode(raw string) (int, error) {
	parsed, err := jwt.Parse(raw, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return c.secret, nil
	})
	if errors.Is(err, jwt.ErrTokenExpired) {
		return 0, ErrExpired
	}
	if err != nil || !parsed.Valid {
		return 0, ErrInvalid
	}

	claims, ok := parsed.Claims.(jwt.MapClaims)
	if !ok {
		return 0, ErrInvalid
	}

	id, ok := claims["id"].(float64)
	if !ok || id <= 0 {
		return 0, ErrInvalid
	}
	return int(id), nil
}
