// Package token signs and verifies session tokens as HS256 JWTs.
package token

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/ironguard/inventory-server/internal/core/domain"
)

var ErrEmptySecret = errors.New("token: signing secret must not be empty")

// Rejection reasons. They are only used for logs and metrics; callers see
// domain.ErrInvalidToken for all of them.
const (
	ReasonMalformed = "malformed"
	ReasonSignature = "signature"
	ReasonExpired   = "expired"
	ReasonAlgorithm = "algorithm"
	ReasonClaims    = "claims"
)

// DecodeError wraps a failed Decode. It matches domain.ErrInvalidToken with
// errors.Is.
type DecodeError struct {
	Reason string
	Err    error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("invalid token (%s): %v", e.Reason, e.Err)
}

func (e *DecodeError) Unwrap() error { return e.Err }

func (e *DecodeError) Is(target error) bool { return target == domain.ErrInvalidToken }

// sessionClaims is the wire payload: exactly sub, role and exp.
type sessionClaims struct {
	Role string `json:"role"`
	jwt.RegisteredClaims
}

// JWTCodec implements ports.TokenCodec with a single pinned algorithm.
type JWTCodec struct {
	secret []byte
	now    func() time.Time
	parser *jwt.Parser
}

// NewJWTCodec builds a codec for secret. now may be nil, in which case
// time.Now is used for expiry checks.
func NewJWTCodec(secret string, now func() time.Time) (*JWTCodec, error) {
	if secret == "" {
		return nil, ErrEmptySecret
	}
	if now == nil {
		now = time.Now
	}
	c := &JWTCodec{secret: []byte(secret), now: now}
	c.parser = jwt.NewParser(
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(func() time.Time { return c.now() }),
	)
	return c, nil
}

// Encode signs claims with HS256.
func (c *JWTCodec) Encode(claims domain.Claims) (string, error) {
	payload := sessionClaims{
		Role: claims.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   claims.Subject,
			ExpiresAt: jwt.NewNumericDate(claims.ExpiresAt),
		},
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, payload).SignedString(c.secret)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return signed, nil
}

// Decode verifies the signature and expiry of raw and returns its claims.
func (c *JWTCodec) Decode(raw string) (domain.Claims, error) {
	var payload sessionClaims
	tkn, err := c.parser.ParseWithClaims(raw, &payload, func(t *jwt.Token) (interface{}, error) {
		if t.Method != jwt.SigningMethodHS256 {
			return nil, jwt.ErrTokenSignatureInvalid
		}
		return c.secret, nil
	})
	if err != nil {
		return domain.Claims{}, &DecodeError{Reason: reasonFor(err), Err: err}
	}
	if !tkn.Valid {
		return domain.Claims{}, &DecodeError{Reason: ReasonSignature, Err: jwt.ErrTokenSignatureInvalid}
	}
	if payload.Subject == "" {
		return domain.Claims{}, &DecodeError{Reason: ReasonClaims, Err: errors.New("missing subject")}
	}

	return domain.Claims{
		Subject:   payload.Subject,
		Role:      payload.Role,
		ExpiresAt: payload.ExpiresAt.Time,
	}, nil
}

// Reason extracts the rejection reason from a Decode error, or "" when err
// did not come from Decode.
func Reason(err error) string {
	var de *DecodeError
	if errors.As(err, &de) {
		return de.Reason
	}
	return ""
}

func reasonFor(err error) string {
	switch {
	case errors.Is(err, jwt.ErrTokenExpired):
		return ReasonExpired
	case errors.Is(err, jwt.ErrTokenSignatureInvalid):
		return ReasonSignature
	case errors.Is(err, jwt.ErrTokenUnverifiable):
		return ReasonAlgorithm
	case errors.Is(err, jwt.ErrTokenRequiredClaimMissing),
		errors.Is(err, jwt.ErrTokenInvalidClaims):
		return ReasonClaims
	default:
		return ReasonMalformed
	}
}
