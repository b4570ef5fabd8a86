package identity

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/trustmarket/trustmarket/pkg/middleware"
)

// tokenClaims are the JWT claims issued by the identity service.
type tokenClaims struct {
	UserID string `json:"user_id"`
	Name   string `json:"name"`
	Email  string `json:"email"`
	jwt.RegisteredClaims
}

// TokenVerifier validates HS256 session tokens and exposes their claims in
// the shape the auth middleware expects.
type TokenVerifier struct {
	secret []byte
}

// NewTokenVerifier creates a verifier for tokens signed with the given secret.
func NewTokenVerifier(secret string) *TokenVerifier {
	return &TokenVerifier{secret: []byte(secret)}
}

// Validate parses and verifies a token. It satisfies middleware.TokenValidator.
func (v *TokenVerifier) Validate(tokenString string) (*middleware.Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &tokenClaims{}, func(token *jwt.Token) (any, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return v.secret, nil
	})
	if err != nil {
		return nil, fmt.Errorf("parse session token: %w", err)
	}

	claims, ok := token.Claims.(*tokenClaims)
	if !ok || !token.Valid {
		return nil, fmt.Errorf("invalid session token claims")
	}

	userID := claims.UserID
	if userID == "" {
		userID = claims.Subject
	}

	return &middleware.Claims{
		UserID: userID,
		Name:   claims.Name,
		Email:  claims.Email,
	}, nil
}

// SignToken issues a token for the given profile, used by tests and the local
// development login helper.
func SignToken(secret string, profile Profile, ttl time.Duration) (string, error) {
	now := time.Now().UTC()
	claims := &tokenClaims{
		UserID: profile.UserID,
		Name:   profile.Name,
		Email:  profile.Email,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   profile.UserID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
			Issuer:    "trustmarket",
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(secret))
	if err != nil {
		return "", fmt.Errorf("sign session token: %w", err)
	}

	return signed, nil
}
