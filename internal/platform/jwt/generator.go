package jwtmw

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"jobtracker_backend/internal/platform/config"
	"jobtracker_backend/internal/shared/apperr"
)

// Issuer signs session tokens with HS256.
type Issuer struct {
	secret   []byte
	issuer   string
	audience string
	lifetime time.Duration
	now      func() time.Time
}

// NewIssuer creates an Issuer. The secret must be at least 128 bits; a weaker or missing
// secret is a configuration error.
func NewIssuer(secret, issuer, audience string, lifetime time.Duration) (*Issuer, error) {
	if err := checkSecret(secret); err != nil {
		return nil, err
	}
	if lifetime <= 0 {
		return nil, fmt.Errorf("%w: token lifetime must be positive", apperr.ErrConfiguration)
	}
	return &Issuer{
		secret:   []byte(secret),
		issuer:   issuer,
		audience: audience,
		lifetime: lifetime,
		now:      time.Now,
	}, nil
}

// GenerateToken creates a signed token for the given user, valid from now for the
// configured lifetime.
func (g *Issuer) GenerateToken(userID, username, email string) (string, error) {
	return g.GenerateTokenAt(g.now(), userID, username, email)
}

// GenerateTokenAt is GenerateToken with an explicit issuance time. The expiry is an
// absolute UTC timestamp computed from issuedAt.
func (g *Issuer) GenerateTokenAt(issuedAt time.Time, userID, username, email string) (string, error) {
	if userID == "" {
		return "", fmt.Errorf("failed to sign token: user id is required")
	}
	issuedAt = issuedAt.UTC()
	claims := &Claims{
		Username: username,
		Email:    email,
		Role:     RoleUser,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID,
			Issuer:    g.issuer,
			Audience:  jwt.ClaimStrings{g.audience},
			IssuedAt:  jwt.NewNumericDate(issuedAt),
			ExpiresAt: jwt.NewNumericDate(issuedAt.Add(g.lifetime)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(g.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}

	return signed, nil
}

func checkSecret(secret string) error {
	if len([]byte(secret)) < config.MinSecretBytes {
		return fmt.Errorf("%w: signing secret must be set and at least %d bytes long", apperr.ErrConfiguration, config.MinSecretBytes)
	}
	return nil
}
