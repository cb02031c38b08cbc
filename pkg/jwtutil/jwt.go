package jwtutil

import (
	"errors"
	"fmt"
	"time"

	"weeld-core/pkg/config"

	"github.com/golang-jwt/jwt/v4"
)

var (
	// ErrExpiredToken is returned when the token's lifetime has elapsed.
	ErrExpiredToken = errors.New("token expired")
	// ErrInvalidToken is returned for any other verification failure,
	// including a bad signature.
	ErrInvalidToken = errors.New("invalid token")
)

// SessionClaims carries the tenant-scoped identity embedded in a session
// token. Downstream request authorization can run off these claims without a
// further database round trip.
type SessionClaims struct {
	Email         string `json:"email"`
	SaasAdmin     bool   `json:"saasAdmin"`
	TenantID      string `json:"tenantId,omitempty"`
	CompanyNumber string `json:"companyNumber,omitempty"`
	jwt.RegisteredClaims
}

// Issuer mints and verifies signed session tokens. The signing key and token
// lifetime come from configuration; tokens cannot be revoked, expiry is the
// only way one stops being valid.
type Issuer struct {
	key []byte
	ttl time.Duration
}

// NewIssuer creates an Issuer from JWT configuration.
func NewIssuer(cfg *config.JWTConfig) *Issuer {
	ttl := cfg.ExpiresIn
	if ttl == 0 {
		ttl = time.Hour
	}
	return &Issuer{key: []byte(cfg.Secret), ttl: ttl}
}

// Issue signs the claims with the configured key, stamping issue and expiry
// times.
func (i *Issuer) Issue(claims SessionClaims) (string, error) {
	now := time.Now()
	claims.RegisteredClaims.IssuedAt = jwt.NewNumericDate(now)
	claims.RegisteredClaims.ExpiresAt = jwt.NewNumericDate(now.Add(i.ttl))

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(i.key)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return signed, nil
}

// Verify validates and parses a session token.
func (i *Issuer) Verify(tokenString string) (*SessionClaims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &SessionClaims{}, func(token *jwt.Token) (interface{}, error) {
		return i.key, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))

	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrExpiredToken
		}
		return nil, ErrInvalidToken
	}

	claims, ok := token.Claims.(*SessionClaims)
	if !ok || !token.Valid {
		return nil, ErrInvalidToken
	}
	return claims, nil
}
