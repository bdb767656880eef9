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

// maxCategoryDepth bounds the ancestor walk used for cycle detection.
const maxCategoryDepth = 64

type CategoryService struct {
	categories ports.CategoryRepository
	items      ports.ItemRepository
	idem       idempotency
	now        func() time.Time
	logger     zerolog.Logger
}

func NewCategoryService(categories ports.CategoryRepository, items ports.ItemRepository, idem IdempotencyStore, logger zerolog.Logger) *CategoryService {
	return &CategoryService{
		categories: categories,
		items:      items,
		idem:       idempotency{store: idem, resource: "category", log: logger},
		now:        func() time.Time { return time.Now().UTC() },
		logger:     logger,
	}
}

func (s *CategoryService) List(ctx context.Context) ([]*domain.Category, error) {
	return s.categories.List(ctx, ports.CategoryFilter{})
}

// Get returns the category with its direct children and items.
func (s *CategoryService) Get(ctx context.Context, categoryID string) (*ports.CategoryDetail, error) {
	c, err := s.categories.FindByID(ctx, categoryID)
	if err != nil {
		return nil, err
	}
	children, err := s.categories.List(ctx, ports.CategoryFilter{ParentID: c.ID})
	if err != nil {
		return nil, err
	}
	items, err := s.items.List(ctx, ports.ItemFilter{CategoryID: c.ID})
	if err != nil {
		return nil, err
	}
	return &ports.CategoryDetail{Category: c, Children: children, Items: items}, nil
}

func (s *CategoryService) Create(ctx context.Context, id domain.Identity, in ports.CategoryInput) (*domain.Category, bool, error) {
	if err := domain.Require(id, domain.RoleAdmin); err != nil {
		return nil, false, err
	}
	in.Name = strings.TrimSpace(in.Name)
	if in.Name == "" {
		return nil, false, domain.ErrInvalidInput
	}

	res, err := s.idem.begin(ctx, id, in.IdempotencyKey)
	if err != nil {
		return nil, false, err
	}
	if res.previous != "" {
		existing, err := s.categories.FindByID(ctx, res.previous)
		if err == nil {
			return existing, true, nil
		}
		if !errors.Is(err, domain.ErrCategoryNotFound) {
			return nil, false, err
		}
		res.stale()
	}

	c, err := s.insert(ctx, in)
	if err != nil {
		res.abort(ctx)
		return nil, false, err
	}
	res.finish(ctx, c.ID)

	metrics.WritesTotal.WithLabelValues("category", "create").Inc()
	s.logger.Info().Str("category_id", c.ID).Str("by", id.Subject).Msg("category created")
	return c, false, nil
}

func (s *CategoryService) insert(ctx context.Context, in ports.CategoryInput) (*domain.Category, error) {
	parentID := normalizeRef(in.ParentID)
	if parentID != nil {
		if err := s.checkParent(ctx, "", *parentID); err != nil {
			return nil, err
		}
	}

	now := s.now()
	c := &domain.Category{
		ID:          uuid.NewString(),
		ParentID:    parentID,
		Name:        in.Name,
		Description: in.Description,
		Meta:        in.Meta,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := s.categories.Create(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

func (s *CategoryService) Update(ctx context.Context, id domain.Identity, categoryID string, in ports.UpdateCategoryInput) (*domain.Category, error) {
	if err := domain.Require(id, domain.RoleAdmin); err != nil {
		return nil, err
	}

	c, err := s.categories.FindByID(ctx, categoryID)
	if err != nil {
		return nil, err
	}

	if in.Name != nil {
		name := strings.TrimSpace(*in.Name)
		if name == "" {
			return nil, domain.ErrInvalidInput
		}
		c.Name = name
	}
	if in.Description != nil {
		c.Description = *in.Description
	}
	if in.Meta != nil {
		c.Meta = *in.Meta
	}
	switch {
	case in.ClearParent:
		c.ParentID = nil
	case normalizeRef(in.ParentID) != nil:
		parentID := *normalizeRef(in.ParentID)
		if err := s.checkParent(ctx, c.ID, parentID); err != nil {
			return nil, err
		}
		c.ParentID = &parentID
	}
	c.UpdatedAt = s.now()

	if err := s.categories.Update(ctx, c); err != nil {
		return nil, err
	}

	metrics.WritesTotal.WithLabelValues("category", "update").Inc()
	s.logger.Info().Str("category_id", c.ID).Str("by", id.Subject).Msg("category updated")
	return c, nil
}

func (s *CategoryService) detachOrphans(ctx context.Context, categoryID string) error {
	children, err := s.categories.List(ctx, ports.CategoryFilter{ParentID: categoryID})
	if err != nil {
		return err
	}
	for _, c := range children {
		c.ParentID = nil
		c.UpdatedAt = s.now()
		if err := s.categories.Update(ctx, c); err != nil {
			return err
		}
		s.logger.Warn().Str("category_id", c.ID).Str("deleted_parent", categoryID).Msg("orphaned category moved to root")
	}

	items, err := s.items.List(ctx, ports.ItemFilter{CategoryID: categoryID})
	if err != nil {
		return err
	}
	for _, it := range items {
		it.CategoryID = nil
		it.UpdatedAt = s.now()
		if err := s.items.Update(ctx, it); err != nil {
			return err
		}
		s.logger.Warn().Str("item_id", it.ID).Str("deleted_category", categoryID).Msg("orphaned item moved to root")
	}
	return nil
}

// Delete removes an empty category. Categories that still hold child
// categories or items are rejected with domain.ErrCategoryInUse.
func (s *CategoryService) Delete(ctx context.Context, id domain.Identity, categoryID string) error {
	if err := domain.Require(id, domain.RoleAdmin); err != nil {
		return err
	}
	if _, err := s.categories.FindByID(ctx, categoryID); err != nil {
		return err
	}

	children, err := s.categories.Count(ctx, ports.CategoryFilter{ParentID: categoryID})
	if err != nil {
		return err
	}
	items, err := s.items.Count(ctx, ports.ItemFilter{CategoryID: categoryID})
	if err != nil {
		return err
	}
	if children > 0 || items > 0 {
		return domain.ErrCategoryInUse
	}

	if err := s.categories.Delete(ctx, categoryID); err != nil {
		return err
	}
	// The store has no foreign keys. A child or item written between the
	// counts and the delete is moved to the root.
	if err := s.detachOrphans(ctx, categoryID); err != nil {
		return err
	}

	metrics.WritesTotal.WithLabelValues("category", "delete").Inc()
	s.logger.Info().Str("category_id", categoryID).Str("by", id.Subject).Msg("category deleted")
	return nil
}

// checkParent verifies that parentID exists and that attaching self under
// it would not create a cycle. self is empty for a category being created.
func (s *CategoryService) checkParent(ctx context.Context, self, parentID string) error {
	current := parentID
	for depth := 0; current != ""; depth++ {
		if current == self || depth >= maxCategoryDepth {
			return domain.ErrInvalidParent
		}
		c, err := s.categories.FindByID(ctx, current)
		if err != nil {
			if errors.Is(err, domain.ErrCategoryNotFound) {
				return domain.ErrInvalidParent
			}
			return fmt.Errorf("check parent: %w", err)
		}
		if self == "" || c.ParentID == nil {
			return nil
		}
		current = *c.ParentID
	}
	return nil
}

// normalizeRef treats a pointer to an empty or blank string as no reference.
func normalizeRef(ref *string) *string {
	if ref == nil {
		return nil
	}
	v := strings.TrimSpace(*ref)
	if v == "" {
		return nil
	}
	return &v
}
