package services

import (
	"fmt"
	"os"
	"time"

	"conduit/internal/models"

	"github.com/golang-jwt/jwt/v5"
)

// tokenClaims is the internal claims type used for JWT parsing.
type tokenClaims struct {
	jwt.RegisteredClaims
	UserID uint `json:"user_id"`
}

// TokenService issues and verifies the opaque auth tokens handed to clients.
// HS256 with a shared secret; the only payload the rest of the system reads
// back is the user id.
type TokenService struct {
	secret []byte
	ttl    time.Duration
}

func NewTokenService() *TokenService {
	secret := os.Getenv("JWT_SECRET")
	if secret == "" {
		secret = "secret_key_change_me"
	}
	return &TokenService{
		secret: []byte(secret),
		ttl:    72 * time.Hour,
	}
}

// Issue returns a signed token for the user.
func (s *TokenService) Issue(user *models.User) (string, error) {
	now := time.Now()
	claims := tokenClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   user.Username,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
		},
		UserID: user.ID,
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return signed, nil
}

// Verify parses and validates a token and returns the embedded user id.
func (s *TokenService) Verify(tokenString string) (uint, error) {
	var claims tokenClaims
	_, err := jwt.ParseWithClaims(tokenString, &claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %q", t.Method.Alg())
		}
		return s.secret, nil
	})
	if err != nil {
		return 0, fmt.Errorf("parse token: %w", err)
	}
	if claims.UserID == 0 {
		return 0, fmt.Errorf("token has no user id")
	}
	return claims.UserID, nil
}
