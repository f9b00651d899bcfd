package auth

import (
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/messagely/messaging-system/internal/core/domain"
)

// TokenIssuer mints and resolves stateless session tokens. Resolution is a
// pure function of the token and the signing secret: no session table, no
// revocation list. Logout is client-side token discard.
type TokenIssuer struct {
	secret []byte
	ttl    time.Duration
}

// NewTokenIssuer creates a TokenIssuer with the process-wide signing secret.
// The secret is fixed at startup and never mutated. If ttl <= 0 a 24h default
// is applied.
func NewTokenIssuer(secret string, ttl time.Duration) *TokenIssuer {
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	return &TokenIssuer{secret: []byte(secret), ttl: ttl}
}

// Issue signs a token for the given identity. The payload is the minimal
// identity claim: username as subject plus issue/expiry timestamps. It never
// embeds the password or password hash.
func (t *TokenIssuer) Issue(username string) (string, error) {
	now := time.Now()
	claims := jwt.RegisteredClaims{
		Subject:   username,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(t.ttl)),
	}

	tkn := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return tkn.SignedString(t.secret)
}

// Resolve verifies a token and returns the identity it was issued for.
// Malformed tokens, bad signatures, foreign signing algorithms, and expired
// tokens all resolve to domain.ErrInvalidToken.
func (t *TokenIssuer) Resolve(token string) (string, error) {
	claims := &jwt.RegisteredClaims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(tkn *jwt.Token) (interface{}, error) {
		if tkn.Method.Alg() != jwt.SigningMethodHS256.Alg() {
			return nil, jwt.ErrTokenSignatureInvalid
		}
		return t.secret, nil
	})
	if err != nil || !parsed.Valid || claims.Subject == "" {
		return "", domain.ErrInvalidToken
	}
	return claims.Subject, nil
}
