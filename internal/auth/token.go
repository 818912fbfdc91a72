package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// ErrInvalidCredential is returned for tokens that fail signature, issuer or
// expiry checks, or that name an unknown owner.
var ErrInvalidCredential = errors.New("invalid credential")

// Claims is the payload of a wallet credential. Subject carries the owner id
// and ID a per-issuance nonce so no two credentials are alike.
type Claims struct {
	jwt.RegisteredClaims
}

// Tokens signs and verifies HS256 credentials.
type Tokens struct {
	secret []byte
	ttl    time.Duration
	issuer string
	now    func() time.Time
}

// NewTokens builds a token codec. A zero ttl issues non-expiring credentials.
func NewTokens(secret string, ttl time.Duration, issuer string) *Tokens {
	return &Tokens{secret: []byte(secret), ttl: ttl, issuer: issuer, now: time.Now}
}

// Issue signs a fresh credential bound to ownerID. The returned expiry is zero
// when credentials do not expire.
func (t *Tokens) Issue(ownerID string) (string, time.Time, error) {
	now := t.now()
	claims := Claims{RegisteredClaims: jwt.RegisteredClaims{
		ID:       uuid.NewString(),
		Subject:  ownerID,
		Issuer:   t.issuer,
		IssuedAt: jwt.NewNumericDate(now),
	}}
	var exp time.Time
	if t.ttl > 0 {
		exp = now.Add(t.ttl)
		claims.ExpiresAt = jwt.NewNumericDate(exp)
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(t.secret)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("sign credential: %w", err)
	}
	return signed, exp, nil
}

// Parse verifies a credential and returns its claims.
func (t *Tokens) Parse(token string) (Claims, error) {
	var claims Claims
	parsed, err := jwt.ParseWithClaims(token, &claims, func(*jwt.Token) (any, error) {
		return t.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(t.issuer),
		jwt.WithTimeFunc(t.now),
	)
	if err != nil || !parsed.Valid {
		return Claims{}, ErrInvalidCredential
	}
	if claims.Subject == "" {
		return Claims{}, ErrInvalidCredential
	}
	return claims, nil
}
