package application

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// TokenIssuer mints and verifies the signed bearer tokens that stand in for
// server sessions. Every issued token carries a unique jti claim, so two
// tokens minted in the same second still differ.
type TokenIssuer struct {
	secret       []byte
	ttl          time.Duration
	now          func() time.Time
	jtiGenerator func() string
}

// NewTokenIssuer constructs a TokenIssuer with the provided dependencies.
func NewTokenIssuer(secret string, ttl time.Duration, now func() time.Time, jtiGenerator func() string) *TokenIssuer {
	if now == nil {
		now = time.Now
	}
	if jtiGenerator == nil {
		jtiGenerator = func() string { return "" }
	}
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	return &TokenIssuer{
		secret:       []byte(secret),
		ttl:          ttl,
		now:          now,
		jtiGenerator: jtiGenerator,
	}
}

// Issue signs a token carrying the identity's claims.
func (t *TokenIssuer) Issue(identity Identity) (string, error) {
	if t == nil {
		return "", fmt.Errorf("TokenIssuer is nil")
	}

	now := t.now()
	claims := jwt.MapClaims{
		"sub":   identity.ID,
		"email": identity.Email,
		"name":  identity.Name,
		"role":  string(identity.Role),
		"iat":   now.Unix(),
		"exp":   now.Add(t.ttl).Unix(),
		"jti":   t.jtiGenerator(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(t.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}
	return signed, nil
}

// Verify parses and validates a token, returning the principal it encodes.
// Expired tokens map to ErrSessionExpired; everything else invalid maps to
// ErrUnauthorized.
func (t *TokenIssuer) Verify(tokenString string) (Principal, error) {
	if t == nil {
		return Principal{}, fmt.Errorf("TokenIssuer is nil")
	}

	claims := jwt.MapClaims{}
	_, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (any, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", token.Header["alg"])
		}
		return t.secret, nil
	}, jwt.WithTimeFunc(t.now))
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return Principal{}, ErrSessionExpired
		}
		return Principal{}, ErrUnauthorized
	}

	sub, _ := claims["sub"].(string)
	email, _ := claims["email"].(string)
	name, _ := claims["name"].(string)
	role, _ := claims["role"].(string)
	if sub == "" || !Role(role).Valid() {
		return Principal{}, ErrUnauthorized
	}

	return Principal{
		UserID: sub,
		Name:   name,
		Email:  email,
		Role:   Role(role),
	}, nil
}
