package service

import (
	"context"
	"fmt"
	"testing"

	"github.com/ironguard/inventory-server/internal/core/domain"
)

func newOverviewFixture() *OverviewService {
	users := newStubUserRepo()
	cats := newStubCategoryRepo()
	items := newStubItemRepo()
	for i := 0; i < 7; i++ {
		users.users[fmt.Sprintf("u%d", i)] = &domain.User{ID: fmt.Sprintf("u%d", i), UpdatedAt: at(i)}
		cats.categories[fmt.Sprintf("c%d", i)] = &domain.Category{ID: fmt.Sprintf("c%d", i), UpdatedAt: at(i)}
		items.items[fmt.Sprintf("i%d", i)] = &domain.Item{ID: fmt.Sprintf("i%d", i), UpdatedAt: at(i)}
	}
	cats.categories["c-child"] = &domain.Category{ID: "c-child", ParentID: ptr("c0"), UpdatedAt: at(20)}
	items.items["i-filed"] = &domain.Item{ID: "i-filed", CategoryID: ptr("c0"), UpdatedAt: at(20)}
	return NewOverviewService(users, cats, items)
}

func TestOverviewService_Inventory(t *testing.T) {
	svc := newOverviewFixture()

	inv, err := svc.Inventory(context.Background())
	if err != nil {
		t.Fatalf("Inventory returned error: %v", err)
	}
	if len(inv.Categories) != 7 || len(inv.Items) != 7 {
		t.Fatalf("expected only root entries, got %d categories and %d items", len(inv.Categories), len(inv.Items))
	}
	if inv.Categories[0].ID != "c6" || inv.Items[0].ID != "i6" {
		t.Fatalf("expected newest first, got %s and %s", inv.Categories[0].ID, inv.Items[0].ID)
	}
}

func TestOverviewService_Dashboard_Admin(t *testing.T) {
	svc := newOverviewFixture()

	d, err := svc.Dashboard(context.Background(), admin)
	if err != nil {
		t.Fatalf("Dashboard returned error: %v", err)
	}
	if d.CountUsers != 7 || d.CountCategories != 8 || d.CountItems != 8 {
		t.Fatalf("unexpected counts: %+v", d)
	}
	if len(d.LatestUsers) != LatestLimit || len(d.LatestCategories) != LatestLimit || len(d.LatestItems) != LatestLimit {
		t.Fatalf("expected %d latest of each", LatestLimit)
	}
	if d.LatestCategories[0].ID != "c-child" || d.LatestUsers[0].ID != "u6" {
		t.Fatalf("latest not ordered newest first")
	}
}

func TestOverviewService_Dashboard_UserHidesUsers(t *testing.T) {
	svc := newOverviewFixture()

	d, err := svc.Dashboard(context.Background(), member)
	if err != nil {
		t.Fatalf("Dashboard returned error: %v", err)
	}
	if d.CountUsers != 0 || d.LatestUsers != nil {
		t.Fatalf("user figures leaked to a non-admin: %+v", d)
	}
	if d.CountItems != 8 {
		t.Fatalf("unexpected item count %d", d.CountItems)
	}
}
