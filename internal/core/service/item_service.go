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

type ItemService struct {
	items      ports.ItemRepository
	categories ports.CategoryRepository
	idem       idempotency
	now        func() time.Time
	logger     zerolog.Logger
}

func NewItemService(items ports.ItemRepository, categories ports.CategoryRepository, idem IdempotencyStore, logger zerolog.Logger) *ItemService {
	return &ItemService{
		items:      items,
		categories: categories,
		idem:       idempotency{store: idem, resource: "item", log: logger},
		now:        func() time.Time { return time.Now().UTC() },
		logger:     logger,
	}
}

func (s *ItemService) List(ctx context.Context) ([]*domain.Item, error) {
	return s.items.List(ctx, ports.ItemFilter{})
}

func (s *ItemService) Get(ctx context.Context, itemID string) (*domain.Item, error) {
	return s.items.FindByID(ctx, itemID)
}

func (s *ItemService) Create(ctx context.Context, id domain.Identity, in ports.ItemInput) (*domain.Item, bool, error) {
	if err := domain.Require(id, domain.RoleAdmin); err != nil {
		return nil, false, err
	}
	in.Name = strings.TrimSpace(in.Name)
	if in.Name == "" || in.Quantity < 0 {
		return nil, false, domain.ErrInvalidInput
	}

	res, err := s.idem.begin(ctx, id, in.IdempotencyKey)
	if err != nil {
		return nil, false, err
	}
	if res.previous != "" {
		existing, err := s.items.FindByID(ctx, res.previous)
		if err == nil {
			return existing, true, nil
		}
		if !errors.Is(err, domain.ErrItemNotFound) {
			return nil, false, err
		}
		res.stale()
	}

	it, err := s.insert(ctx, in)
	if err != nil {
		res.abort(ctx)
		return nil, false, err
	}
	res.finish(ctx, it.ID)

	metrics.WritesTotal.WithLabelValues("item", "create").Inc()
	s.logger.Info().Str("item_id", it.ID).Str("by", id.Subject).Msg("item created")
	return it, false, nil
}

func (s *ItemService) insert(ctx context.Context, in ports.ItemInput) (*domain.Item, error) {
	categoryID := normalizeRef(in.CategoryID)
	if categoryID != nil {
		if err := s.checkCategory(ctx, *categoryID); err != nil {
			return nil, err
		}
	}

	now := s.now()
	it := &domain.Item{
		ID:          uuid.NewString(),
		CategoryID:  categoryID,
		Name:        in.Name,
		Description: in.Description,
		Quantity:    in.Quantity,
		Meta:        in.Meta,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := s.items.Create(ctx, it); err != nil {
		return nil, err
	}
	return it, nil
}

func (s *ItemService) Update(ctx context.Context, id domain.Identity, itemID string, in ports.UpdateItemInput) (*domain.Item, error) {
	if err := domain.Require(id, domain.RoleAdmin); err != nil {
		return nil, err
	}

	it, err := s.items.FindByID(ctx, itemID)
	if err != nil {
		return nil, err
	}

	if in.Name != nil {
		name := strings.TrimSpace(*in.Name)
		if name == "" {
			return nil, domain.ErrInvalidInput
		}
		it.Name = name
	}
	if in.Description != nil {
		it.Description = *in.Description
	}
	if in.Quantity != nil {
		if *in.Quantity < 0 {
			return nil, domain.ErrInvalidInput
		}
		it.Quantity = *in.Quantity
	}
	if in.Meta != nil {
		it.Meta = *in.Meta
	}
	switch {
	case in.ClearCategory:
		it.CategoryID = nil
	case normalizeRef(in.CategoryID) != nil:
		categoryID := *normalizeRef(in.CategoryID)
		if err := s.checkCategory(ctx, categoryID); err != nil {
			return nil, err
		}
		it.CategoryID = &categoryID
	}
	it.UpdatedAt = s.now()

	if err := s.items.Update(ctx, it); err != nil {
		return nil, err
	}

	metrics.WritesTotal.WithLabelValues("item", "update").Inc()
	s.logger.Info().Str("item_id", it.ID).Str("by", id.Subject).Msg("item updated")
	return it, nil
}

func (s *ItemService) Delete(ctx context.Context, id domain.Identity, itemID string) error {
	if err := domain.Require(id, domain.RoleAdmin); err != nil {
		return err
	}
	if err := s.items.Delete(ctx, itemID); err != nil {
		return err
	}

	metrics.WritesTotal.WithLabelValues("item", "delete").Inc()
	s.logger.Info().Str("item_id", itemID).Str("by", id.Subject).Msg("item deleted")
	return nil
}

// checkCategory reports a missing category as invalid input so that it is
// not confused with the item itself being absent.
func (s *ItemService) checkCategory(ctx context.Context, categoryID string) error {
	if _, err := s.categories.FindByID(ctx, categoryID); err != nil {
		if errors.Is(err, domain.ErrCategoryNotFound) {
			return fmt.Errorf("%w: %w", domain.ErrInvalidInput, err)
		}
		return err
	}
	return nil
}
