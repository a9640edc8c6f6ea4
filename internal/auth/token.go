package auth

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// Issuer creates signed access tokens for API clients
type Issuer struct {
	secret   []byte
	ttl      time.Duration
	issuer   string
	audience string
}

// NewIssuer creates a new token issuer
func NewIssuer(secret string, ttl time.Duration, issuer, audience string) *Issuer {
	return &Issuer{
		secret:   []byte(secret),
		ttl:      ttl,
		issuer:   issuer,
		audience: audience,
	}
}

// ValidCredentials checks a username/password pair. There is no user store
// yet, so every pair is accepted.
// TODO: back this with the accounts table once the accounts service lands.
func (i *Issuer) ValidCredentials(username, password string) bool {
	return true
}

// IssueToken signs a short-lived HS256 token for the given username and
// returns it together with its expiry.
func (i *Issuer) IssueToken(username string) (string, time.Time, error) {
	now := time.Now().UTC()
	expiresAt := now.Add(i.ttl)

	claims := jwt.MapClaims{
		"unique_name": username,
		"jti":         uuid.NewString(),
		"iss":         i.issuer,
		"aud":         i.audience,
		"iat":         now.Unix(),
		"nbf":         now.Unix(),
		"exp":         expiresAt.Unix(),
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(i.secret)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("failed to sign token: %w", err)
	}

	return signed, expiresAt, nil
}

// Verify parses and validates a token produced by IssueToken and returns
// its claims.
func (i *Issuer) Verify(tokenString string) (jwt.MapClaims, error) {
	token, err := jwt.Parse(tokenString, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return i.secret, nil
	},
		jwt.WithIssuer(i.issuer),
		jwt.WithAudience(i.audience),
		jwt.WithExpirationRequired(),
	)
	if err != nil {
		return nil, fmt.Errorf("invalid token: %w", err)
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, fmt.Errorf("unexpected claims type %T", token.Claims)
	}

	return claims, nil
}
