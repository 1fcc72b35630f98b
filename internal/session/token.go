package session

import (
	"errors"
	"time" // Time for token expiration

	"bank_system/internal/domain"

	"github.com/golang-jwt/jwt/v5" // JWT library
)

// Claims carried by a session token
type Claims struct {
	UserID               uint        `json:"user_id"`  // Custom claim for user ID
	Username             string      `json:"username"` // Audit identity
	Role                 domain.Role `json:"role"`     // Role at issue time, re-checked on use
	jwt.RegisteredClaims             // Standard JWT claims
}

// signToken creates an HS256 token for actor expiring after ttl
func signToken(actor domain.Actor, secret []byte, now time.Time, ttl time.Duration) (string, error) {
	claims := Claims{
		UserID:   actor.UserID,
		Username: actor.Username,
		Role:     actor.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   actor.Username,
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
			IssuedAt:  jwt.NewNumericDate(now),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims) // Create token with claims
	return token.SignedString(secret)                          // Sign the token with the secret
}

// parseToken parses and validates a token string
func parseToken(tokenStr string, secret []byte, now time.Time) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenStr, &Claims{}, func(token *jwt.Token) (any, error) {
		return secret, nil // Return the secret key for validation
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithTimeFunc(func() time.Time { return now }),
	)
	if err != nil {
		return nil, err
	}
	if claims, ok := token.Claims.(*Claims); ok && token.Valid {
		return claims, nil
	}
	return nil, errors.New("invalid token")
}
