package service

import (
	"context"

	"github.com/ironguard/inventory-server/internal/core/domain"
	"github.com/ironguard/inventory-server/internal/core/ports"
)

// LatestLimit is how many recent records the dashboard shows per resource.
const LatestLimit = 5

type OverviewService struct {
	users      ports.UserRepository
	categories ports.CategoryRepository
	items      ports.ItemRepository
}

func NewOverviewService(users ports.UserRepository, categories ports.CategoryRepository, items ports.ItemRepository) *OverviewService {
	return &OverviewService{users: users, categories: categories, items: items}
}

// Inventory returns root categories and uncategorised items, newest first.
func (s *OverviewService) Inventory(ctx context.Context) (*ports.Inventory, error) {
	categories, err := s.categories.List(ctx, ports.CategoryFilter{RootOnly: true})
	if err != nil {
		return nil, err
	}
	items, err := s.items.List(ctx, ports.ItemFilter{RootOnly: true})
	if err != nil {
		return nil, err
	}
	return &ports.Inventory{Categories: categories, Items: items}, nil
}

// Dashboard returns counts and the latest records. User figures are only
// filled in for admins.
func (s *OverviewService) Dashboard(ctx context.Context, id domain.Identity) (*ports.Dashboard, error) {
	var (
		d   ports.Dashboard
		err error
	)

	if d.CountCategories, err = s.categories.Count(ctx, ports.CategoryFilter{}); err != nil {
		return nil, err
	}
	if d.CountItems, err = s.items.Count(ctx, ports.ItemFilter{}); err != nil {
		return nil, err
	}
	if d.LatestCategories, err = s.categories.List(ctx, ports.CategoryFilter{Limit: LatestLimit}); err != nil {
		return nil, err
	}
	if d.LatestItems, err = s.items.List(ctx, ports.ItemFilter{Limit: LatestLimit}); err != nil {
		return nil, err
	}

	if id.IsAdmin() {
		if d.CountUsers, err = s.users.Count(ctx); err != nil {
			return nil, err
		}
		if d.LatestUsers, err = s.users.List(ctx, LatestLimit); err != nil {
			return nil, err
		}
	}
	return &d, nil
}
