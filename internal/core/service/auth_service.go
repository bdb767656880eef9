package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/ironguard/inventory-server/internal/core/domain"
	"github.com/ironguard/inventory-server/internal/core/ports"
	"github.com/ironguard/inventory-server/internal/pkg/metrics"
)

// AuthService implements sign-in.
type AuthService struct {
	users    ports.CredentialStore
	verifier ports.PasswordVerifier
	codec    ports.TokenCodec
	now      func() time.Time
	log      zerolog.Logger
}

// NewAuthService wires the sign-in flow. now may be nil, in which case
// time.Now is used.
func NewAuthService(
	users ports.CredentialStore,
	verifier ports.PasswordVerifier,
	codec ports.TokenCodec,
	now func() time.Time,
	log zerolog.Logger,
) *AuthService {
	if now == nil {
		now = time.Now
	}
	return &AuthService{users: users, verifier: verifier, codec: codec, now: now, log: log}
}

// SignIn checks email and password and returns a signed session token.
// Unknown email and wrong password both yield domain.ErrInvalidCredentials.
func (s *AuthService) SignIn(ctx context.Context, email, password string) (string, error) {
	if email == "" || password == "" {
		metrics.SignInTotal.WithLabelValues("invalid_input").Inc()
		return "", domain.ErrInvalidInput
	}

	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			metrics.SignInTotal.WithLabelValues("invalid_credentials").Inc()
			s.log.Info().Str("reason", "unknown_email").Msg("sign-in rejected")
			return "", domain.ErrInvalidCredentials
		}
		metrics.SignInTotal.WithLabelValues("error").Inc()
		return "", fmt.Errorf("sign in: lookup: %w", err)
	}

	ok, err := s.verifier.Verify(ctx, password, user.PasswordHash)
	if err != nil {
		metrics.SignInTotal.WithLabelValues("error").Inc()
		return "", fmt.Errorf("sign in: verify: %w", err)
	}
	if !ok {
		metrics.SignInTotal.WithLabelValues("invalid_credentials").Inc()
		s.log.Info().Str("user_id", user.ID).Str("reason", "password_mismatch").Msg("sign-in rejected")
		return "", domain.ErrInvalidCredentials
	}

	token, err := s.codec.Encode(domain.NewClaims(user, s.now()))
	if err != nil {
		metrics.SignInTotal.WithLabelValues("error").Inc()
		return "", fmt.Errorf("sign in: %w", err)
	}

	metrics.SignInTotal.WithLabelValues("success").Inc()
	s.log.Info().Str("user_id", user.ID).Str("role", user.Role.String()).Msg("signed in")
	return token, nil
}
