package jwtmw

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"jobtracker_backend/internal/shared/apperr"
)

// FailureKind classifies why a token was rejected.
type FailureKind int

const (
	Malformed FailureKind = iota
	BadSignature
	Expired
	IssuerMismatch
	AudienceMismatch
	MissingSubject
)

func (k FailureKind) String() string {
	switch k {
	case BadSignature:
		return "bad_signature"
	case Expired:
		return "expired"
	case IssuerMismatch:
		return "issuer_mismatch"
	case AudienceMismatch:
		return "audience_mismatch"
	case MissingSubject:
		return "missing_subject"
	default:
		return "malformed"
	}
}

// VerificationError is returned by Verify. It matches apperr.ErrUnauthenticated with
// errors.Is; Kind keeps the precise reason for diagnostics.
type VerificationError struct {
	Kind FailureKind
	Err  error
}

func (e *VerificationError) Error() string {
	if e.Err == nil {
		return "token verification failed: " + e.Kind.String()
	}
	return "token verification failed: " + e.Kind.String() + ": " + e.Err.Error()
}

func (e *VerificationError) Unwrap() error { return e.Err }

// Is makes every VerificationError an authentication failure.
func (e *VerificationError) Is(target error) bool {
	return target == apperr.ErrUnauthenticated
}

// Verifier validates session tokens. It holds only immutable configuration and is safe
// for concurrent use.
type Verifier struct {
	secret   []byte
	issuer   string
	audience string
}

// NewVerifier creates a Verifier; the secret rules match NewIssuer.
func NewVerifier(secret, issuer, audience string) (*Verifier, error) {
	if err := checkSecret(secret); err != nil {
		return nil, err
	}
	return &Verifier{secret: []byte(secret), issuer: issuer, audience: audience}, nil
}

// Verify checks the signature, issuer, audience and that now is before the expiry,
// then returns the extracted claims.
func (v *Verifier) Verify(token string, now time.Time) (*Claims, error) {
	parser := jwt.NewParser(
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(v.issuer),
		jwt.WithAudience(v.audience),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(func() time.Time { return now }),
	)

	claims := &Claims{}
	if _, err := parser.ParseWithClaims(token, claims, func(*jwt.Token) (any, error) {
		return v.secret, nil
	}); err != nil {
		return nil, &VerificationError{Kind: classify(err), Err: err}
	}

	if claims.Subject == "" {
		return nil, &VerificationError{Kind: MissingSubject}
	}
	return claims, nil
}

func classify(err error) FailureKind {
	switch {
	case errors.Is(err, jwt.ErrTokenMalformed):
		return Malformed
	case errors.Is(err, jwt.ErrTokenSignatureInvalid), errors.Is(err, jwt.ErrTokenUnverifiable):
		return BadSignature
	case errors.Is(err, jwt.ErrTokenExpired):
		return Expired
	case errors.Is(err, jwt.ErrTokenInvalidIssuer):
		return IssuerMismatch
	case errors.Is(err, jwt.ErrTokenInvalidAudience):
		return AudienceMismatch
	default:
		return Malformed
	}
}
