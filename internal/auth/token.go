package auth

import (
	"errors"
	"fmt"
	"time"

	jwt "github.com/golang-jwt/jwt/v5"

	"sira/backend/internal/apperr"
	"sira/backend/internal/config"
)

const tokenIssuer = "sira-backend"

// TokenIssuer signs and verifies bearer session tokens.
// The token binds nothing but the user ID; the server keeps no session
// state, so verification is the only check a token ever gets.
type TokenIssuer struct {
	Secret string
	TTL    time.Duration
}

// NewTokenIssuer returns an issuer with the standard 30-day validity.
func NewTokenIssuer(secret string) *TokenIssuer {
	return &TokenIssuer{Secret: secret, TTL: config.TokenTTL}
}

// Issue signs a token for the given user ID.
func (t *TokenIssuer) Issue(userID string) (string, error) {
	if t.Secret == "" {
		return "", apperr.Configuration("JWT secret key is not set")
	}
	claims := jwt.MapClaims{
		"id":  userID,
		"exp": time.Now().Add(t.TTL).Unix(),
		"iss": tokenIssuer,
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(t.Secret))
}

// Verify parses tokenString and returns the user ID it was issued for.
// Expired tokens and malformed/unsigned input yield distinct error
// classes so the boundary can answer with distinct messages.
func (t *TokenIssuer) Verify(tokenString string) (string, error) {
	if t.Secret == "" {
		return "", apperr.Configuration("JWT secret key is not set")
	}
	token, err := jwt.Parse(tokenString, func(tk *jwt.Token) (interface{}, error) {
		if _, ok := tk.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", tk.Header["alg"])
		}
		return []byte(t.Secret), nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return "", apperr.New(apperr.ErrExpiredToken, "token expired")
		}
		return "", apperr.New(apperr.ErrInvalidToken, "invalid token")
	}
	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return "", apperr.New(apperr.ErrInvalidToken, "invalid token")
	}
	id, ok := claims["id"].(string)
	if !ok || id == "" {
		return "", apperr.New(apperr.ErrInvalidToken, "invalid token")
	}
	return id, nil
}
