package auth

import (
	"anonymity-service/domain"
	"anonymity-service/errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

const issuer = "anonymity-service"

// CustomClaims defines the structure of the data stored inside the JWT.
// The registered subject carries the caller principal.
type CustomClaims struct {
	jwt.RegisteredClaims
}

// Tokens signs and validates caller identities with an HMAC secret.
type Tokens struct {
	key      []byte
	duration time.Duration
}

func NewTokens(secret string, duration time.Duration) (*Tokens, error) {
	if len(secret) < 16 {
		return nil, fmt.Errorf("jwt secret must be at least 16 characters")
	}
	return &Tokens{key: []byte(secret), duration: duration}, nil
}

// Generate creates a signed JWT for principal.
func (t *Tokens) Generate(principal domain.Principal) (string, error) {
	if principal == "" {
		return "", errors.ErrMissingIdentity
	}
	now := time.Now()
	claims := &CustomClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   principal.String(),
			ExpiresAt: jwt.NewNumericDate(now.Add(t.duration)),
			IssuedAt:  jwt.NewNumericDate(now),
			Issuer:    issuer,
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(t.key)
}

// Validate parses the token, checks signature, expiry and issuer, and returns
// the principal it was issued for.
func (t *Tokens) Validate(tokenString string) (domain.Principal, error) {
	token, err := jwt.ParseWithClaims(tokenString, &CustomClaims{}, func(token *jwt.Token) (interface{}, error) {
		return t.key, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(issuer),
	)
	if err != nil {
		return "", fmt.Errorf("%w: %v", errors.ErrInvalidToken, err)
	}

	claims, ok := token.Claims.(*CustomClaims)
	if !ok || !token.Valid || claims.Subject == "" {
		return "", errors.ErrInvalidToken
	}
	return domain.Principal(claims.Subject), nil
}
