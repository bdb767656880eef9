package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/ironguard/inventory-server/internal/core/domain"
	"github.com/ironguard/inventory-server/internal/core/ports"
	"github.com/ironguard/inventory-server/internal/pkg/metrics"
)

type UserService struct {
	repo   ports.UserRepository
	hash   ports.PasswordHasher
	idem   idempotency
	now    func() time.Time
	logger zerolog.Logger
}

func NewUserService(repo ports.UserRepository, hash ports.PasswordHasher, idem IdempotencyStore, logger zerolog.Logger) *UserService {
	return &UserService{
		repo:   repo,
		hash:   hash,
		idem:   idempotency{store: idem, resource: "user", log: logger},
		now:    func() time.Time { return time.Now().UTC() },
		logger: logger,
	}
}

// Me returns the account behind the current identity.
func (s *UserService) Me(ctx context.Context, id domain.Identity) (*domain.User, error) {
	return s.repo.FindByID(ctx, id.Subject)
}

func (s *UserService) List(ctx context.Context, id domain.Identity) ([]*domain.User, error) {
	if err := domain.Require(id, domain.RoleAdmin); err != nil {
		return nil, err
	}
	return s.repo.List(ctx, 0)
}

func (s *UserService) Get(ctx context.Context, id domain.Identity, userID string) (*domain.User, error) {
	if err := domain.Require(id, domain.RoleAdmin); err != nil {
		return nil, err
	}
	return s.repo.FindByID(ctx, userID)
}

// Create adds an account. If the idempotency key was already used by this
// caller, the account created then is returned with replayed=true.
func (s *UserService) Create(ctx context.Context, id domain.Identity, in ports.CreateUserInput) (*domain.User, bool, error) {
	if err := domain.Require(id, domain.RoleAdmin); err != nil {
		return nil, false, err
	}
	in.Email = strings.TrimSpace(in.Email)
	if in.Email == "" || in.Password == "" || !in.Role.Valid() {
		return nil, false, domain.ErrInvalidInput
	}

	res, err := s.idem.begin(ctx, id, in.IdempotencyKey)
	if err != nil {
		return nil, false, err
	}
	if res.previous != "" {
		existing, err := s.repo.FindByID(ctx, res.previous)
		if err == nil {
			s.logger.Info().Str("idempotency_key", in.IdempotencyKey).Str("user_id", existing.ID).Msg("idempotent replay")
			return existing, true, nil
		}
		if !errors.Is(err, domain.ErrUserNotFound) {
			return nil, false, err
		}
		res.stale()
	}

	user, err := s.insert(ctx, in)
	if err != nil {
		res.abort(ctx)
		return nil, false, err
	}
	res.finish(ctx, user.ID)

	metrics.WritesTotal.WithLabelValues("user", "create").Inc()
	s.logger.Info().Str("user_id", user.ID).Str("role", user.Role.String()).Str("by", id.Subject).Msg("user created")
	return user, false, nil
}

func (s *UserService) insert(ctx context.Context, in ports.CreateUserInput) (*domain.User, error) {
	hash, err := s.hash(in.Password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	now := s.now()
	user := &domain.User{
		ID:           uuid.NewString(),
		Firstname:    in.Firstname,
		Lastname:     in.Lastname,
		Email:        in.Email,
		PasswordHash: hash,
		Role:         in.Role,
		Meta:         in.Meta,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := s.repo.Create(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

func (s *UserService) Update(ctx context.Context, id domain.Identity, userID string, in ports.UpdateUserInput) (*domain.User, error) {
	if err := domain.Require(id, domain.RoleAdmin); err != nil {
		return nil, err
	}

	user, err := s.repo.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	if in.Firstname != nil {
		user.Firstname = *in.Firstname
	}
	if in.Lastname != nil {
		user.Lastname = *in.Lastname
	}
	if in.Email != nil {
		email := strings.TrimSpace(*in.Email)
		if email == "" {
			return nil, domain.ErrInvalidInput
		}
		user.Email = email
	}
	if in.Role != nil {
		if !in.Role.Valid() {
			return nil, domain.ErrInvalidInput
		}
		user.Role = *in.Role
	}
	if in.Meta != nil {
		user.Meta = *in.Meta
	}
	if in.Password != nil {
		if *in.Password == "" {
			return nil, domain.ErrInvalidInput
		}
		hash, err := s.hash(*in.Password)
		if err != nil {
			return nil, fmt.Errorf("hash password: %w", err)
		}
		user.PasswordHash = hash
	}
	user.UpdatedAt = s.now()

	if err := s.repo.Update(ctx, user); err != nil {
		return nil, err
	}

	metrics.WritesTotal.WithLabelValues("user", "update").Inc()
	s.logger.Info().Str("user_id", user.ID).Str("by", id.Subject).Msg("user updated")
	return user, nil
}

func (s *UserService) Delete(ctx context.Context, id domain.Identity, userID string) error {
	if err := domain.Require(id, domain.RoleAdmin); err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, userID); err != nil {
		return err
	}

	metrics.WritesTotal.WithLabelValues("user", "delete").Inc()
	s.logger.Info().Str("user_id", userID).Str("by", id.Subject).Msg("user deleted")
	return nil
}

// EnsureAdmin creates an admin account for email unless one with that email
// already exists. It runs at startup without a caller identity.
func (s *UserService) EnsureAdmin(ctx context.Context, email, password string) (bool, error) {
	email = strings.TrimSpace(email)
	if email == "" || password == "" {
		return false, domain.ErrInvalidInput
	}
	if _, err := s.repo.FindByEmail(ctx, email); err == nil {
		return false, nil
	} else if !errors.Is(err, domain.ErrUserNotFound) {
		return false, err
	}

	hash, err := s.hash(password)
	if err != nil {
		return false, fmt.Errorf("hash password: %w", err)
	}
	now := s.now()
	err = s.repo.Create(ctx, &domain.User{
		ID:           uuid.NewString(),
		Firstname:    "Admin",
		Email:        email,
		PasswordHash: hash,
		Role:         domain.RoleAdmin,
		CreatedAt:    now,
		UpdatedAt:    now,
	})
	if errors.Is(err, domain.ErrEmailTaken) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	s.logger.Info().Str("email", email).Msg("seeded admin account")
	return true, nil
}
