package handler

import (
	"context"
	"errors"
	"io"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/ironguard/inventory-server/internal/api/middleware"
	"github.com/ironguard/inventory-server/internal/core/domain"
	"github.com/ironguard/inventory-server/internal/core/ports"
)

var (
	adminID  = domain.Identity{Subject: "admin-1", Role: domain.RoleAdmin}
	memberID = domain.Identity{Subject: "user-1", Role: domain.RoleUser}
)

// newContext builds an echo context with the validator installed and, when
// id is non-nil, an authenticated identity.
func newContext(method, target string, body io.Reader, id *domain.Identity) (echo.Context, *httptest.ResponseRecorder) {
	e := echo.New()
	e.Validator = NewValidator()
	req := httptest.NewRequest(method, target, body)
	if body != nil {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	if id != nil {
		c.Set(middleware.IdentityKey, *id)
	}
	return c, rec
}

func assertHTTPError(t *testing.T, err error, code int) *echo.HTTPError {
	t.Helper()
	var he *echo.HTTPError
	if !errors.As(err, &he) {
		t.Fatalf("expected *echo.HTTPError with %d, got %v", code, err)
	}
	if he.Code != code {
		t.Fatalf("expected %d, got %d (%v)", code, he.Code, he.Message)
	}
	return he
}

func assertStatus(t *testing.T, rec *httptest.ResponseRecorder, code int) {
	t.Helper()
	if rec.Code != code {
		t.Fatalf("expected %d, got %d: %s", code, rec.Code, rec.Body.String())
	}
}

type stubAuthService struct {
	signInFn func(ctx context.Context, email, password string) (string, error)
}

func (s *stubAuthService) SignIn(ctx context.Context, email, password string) (string, error) {
	return s.signInFn(ctx, email, password)
}

type stubUserService struct {
	meFn     func(ctx context.Context, id domain.Identity) (*domain.User, error)
	listFn   func(ctx context.Context, id domain.Identity) ([]*domain.User, error)
	getFn    func(ctx context.Context, id domain.Identity, userID string) (*domain.User, error)
	createFn func(ctx context.Context, id domain.Identity, in ports.CreateUserInput) (*domain.User, bool, error)
	updateFn func(ctx context.Context, id domain.Identity, userID string, in ports.UpdateUserInput) (*domain.User, error)
	deleteFn func(ctx context.Context, id domain.Identity, userID string) error
}

func (s *stubUserService) Me(ctx context.Context, id domain.Identity) (*domain.User, error) {
	return s.meFn(ctx, id)
}

func (s *stubUserService) List(ctx context.Context, id domain.Identity) ([]*domain.User, error) {
	return s.listFn(ctx, id)
}

func (s *stubUserService) Get(ctx context.Context, id domain.Identity, userID string) (*domain.User, error) {
	return s.getFn(ctx, id, userID)
}

func (s *stubUserService) Create(ctx context.Context, id domain.Identity, in ports.CreateUserInput) (*domain.User, bool, error) {
	return s.createFn(ctx, id, in)
}

func (s *stubUserService) Update(ctx context.Context, id domain.Identity, userID string, in ports.UpdateUserInput) (*domain.User, error) {
	return s.updateFn(ctx, id, userID, in)
}

func (s *stubUserService) Delete(ctx context.Context, id domain.Identity, userID string) error {
	return s.deleteFn(ctx, id, userID)
}

type stubCategoryService struct {
	listFn   func(ctx context.Context) ([]*domain.Category, error)
	getFn    func(ctx context.Context, categoryID string) (*ports.CategoryDetail, error)
	createFn func(ctx context.Context, id domain.Identity, in ports.CategoryInput) (*domain.Category, bool, error)
	updateFn func(ctx context.Context, id domain.Identity, categoryID string, in ports.UpdateCategoryInput) (*domain.Category, error)
	deleteFn func(ctx context.Context, id domain.Identity, categoryID string) error
}

func (s *stubCategoryService) List(ctx context.Context) ([]*domain.Category, error) {
	return s.listFn(ctx)
}

func (s *stubCategoryService) Get(ctx context.Context, categoryID string) (*ports.CategoryDetail, error) {
	return s.getFn(ctx, categoryID)
}

func (s *stubCategoryService) Create(ctx context.Context, id domain.Identity, in ports.CategoryInput) (*domain.Category, bool, error) {
	return s.createFn(ctx, id, in)
}

func (s *stubCategoryService) Update(ctx context.Context, id domain.Identity, categoryID string, in ports.UpdateCategoryInput) (*domain.Category, error) {
	return s.updateFn(ctx, id, categoryID, in)
}

func (s *stubCategoryService) Delete(ctx context.Context, id domain.Identity, categoryID string) error {
	return s.deleteFn(ctx, id, categoryID)
}

type stubItemService struct {
	listFn   func(ctx context.Context) ([]*domain.Item, error)
	getFn    func(ctx context.Context, itemID string) (*domain.Item, error)
	createFn func(ctx context.Context, id domain.Identity, in ports.ItemInput) (*domain.Item, bool, error)
	updateFn func(ctx context.Context, id domain.Identity, itemID string, in ports.UpdateItemInput) (*domain.Item, error)
	deleteFn func(ctx context.Context, id domain.Identity, itemID string) error
}

func (s *stubItemService) List(ctx context.Context) ([]*domain.Item, error) {
	return s.listFn(ctx)
}

func (s *stubItemService) Get(ctx context.Context, itemID string) (*domain.Item, error) {
	return s.getFn(ctx, itemID)
}

func (s *stubItemService) Create(ctx context.Context, id domain.Identity, in ports.ItemInput) (*domain.Item, bool, error) {
	return s.createFn(ctx, id, in)
}

func (s *stubItemService) Update(ctx context.Context, id domain.Identity, itemID string, in ports.UpdateItemInput) (*domain.Item, error) {
	return s.updateFn(ctx, id, itemID, in)
}

func (s *stubItemService) Delete(ctx context.Context, id domain.Identity, itemID string) error {
	return s.deleteFn(ctx, id, itemID)
}

type stubOverviewService struct {
	inventoryFn func(ctx context.Context) (*ports.Inventory, error)
	dashboardFn func(ctx context.Context, id domain.Identity) (*ports.Dashboard, error)
}

func (s *stubOverviewService) Inventory(ctx context.Context) (*ports.Inventory, error) {
	return s.inventoryFn(ctx)
}

func (s *stubOverviewService) Dashboard(ctx context.Context, id domain.Identity) (*ports.Dashboard, error) {
	return s.dashboardFn(ctx, id)
}
