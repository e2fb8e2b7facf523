// Package auth issues and validates the bearer tokens that protect the
// admin API surface. Tokens are stateless HS256 JWTs; there is no account
// store, operators mint tokens out of band.
package auth

import (
	"crypto/rand"
	"encoding/base64"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// TokenExpiry is how long issued tokens are valid. Admin tokens are
// short-lived; operators re-mint rather than refresh.
const TokenExpiry = 1 * time.Hour

// Predefined token errors.
var (
	ErrInvalidToken = errors.New("invalid token")
	ErrTokenExpired = errors.New("token has expired")
)

// Claims are the claims carried by admin tokens.
type Claims struct {
	jwt.RegisteredClaims
}

// Config holds configuration for the token service.
type Config struct {
	// SigningKey is the secret used to sign tokens (required).
	SigningKey string

	// Issuer is the issuer claim (default "worldloop").
	Issuer string

	// Audience is the audience claim (default "worldloop-api").
	Audience string

	// Expiry overrides TokenExpiry when positive.
	Expiry time.Duration
}

// Service signs and verifies admin tokens.
type Service struct {
	signingKey []byte
	issuer     string
	audience   string
	expiry     time.Duration
}

// NewService creates a new token service.
func NewService(cfg Config) *Service {
	issuer := cfg.Issuer
	if issuer == "" {
		issuer = "worldloop"
	}
	audience := cfg.Audience
	if audience == "" {
		audience = "worldloop-api"
	}
	expiry := cfg.Expiry
	if expiry <= 0 {
		expiry = TokenExpiry
	}
	return &Service{
		signingKey: []byte(cfg.SigningKey),
		issuer:     issuer,
		audience:   audience,
		expiry:     expiry,
	}
}

// Issue creates a signed token for the given subject.
func (s *Service) Issue(subject string) (string, time.Time, error) {
	now := time.Now()
	expiresAt := now.Add(s.expiry)

	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    s.issuer,
			Subject:   subject,
			Audience:  jwt.ClaimStrings{s.audience},
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
			NotBefore: jwt.NewNumericDate(now),
			ID:        tokenID(),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(s.signingKey)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("signing token: %w", err)
	}
	return signed, expiresAt, nil
}

// Verify validates a token and returns its subject.
func (s *Service) Verify(tokenString string) (string, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return s.signingKey, nil
	}, jwt.WithValidMethods([]string{"HS256"}),
		jwt.WithIssuer(s.issuer),
		jwt.WithAudience(s.audience),
		jwt.WithExpirationRequired(),
	)

	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return "", ErrTokenExpired
		}
		return "", fmt.Errorf("%w: %s", ErrInvalidToken, err.Error())
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return "", ErrInvalidToken
	}
	return claims.Subject, nil
}

func tokenID() string {
	bytes := make([]byte, 16)
	if _, err := rand.Read(bytes); err != nil {
		return ""
	}
	return base64.RawURLEncoding.EncodeToString(bytes)
}
