package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/ironguard/inventory-server/internal/core/domain"
	"github.com/ironguard/inventory-server/internal/core/ports"
)

type CategoryHandler struct {
	service ports.CategoryService
}

func NewCategoryHandler(service ports.CategoryService) *CategoryHandler {
	return &CategoryHandler{service: service}
}

type createCategoryRequest struct {
	ParentID    *string `json:"parent_id"`
	Name        string  `json:"name" validate:"required,max=255"`
	Description string  `json:"description"`
	Meta        string  `json:"meta"`
}

// updateCategoryRequest moves the category to the root when parent_id is
// sent as an empty string.
type updateCategoryRequest struct {
	ParentID    *string `json:"parent_id"`
	Name        *string `json:"name" validate:"omitempty,min=1,max=255"`
	Description *string `json:"description"`
	Meta        *string `json:"meta"`
}

type categoryDetailResponse struct {
	Category *domain.Category   `json:"category"`
	Children []*domain.Category `json:"children"`
	Items    []*domain.Item     `json:"items"`
}

// List returns every category.
//
// @Summary      List categories
// @Tags         categories
// @Produce      json
// @Security     TokenAuth
// @Success      200  {object}  listResponse[domain.Category]
// @Failure      401  {object}  map[string]string
// @Router       /categories [get]
func (h *CategoryHandler) List(c echo.Context) error {
	categories, err := h.service.List(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, newList(categories))
}

// Get returns a category with its direct children and items.
//
// @Summary      Get category
// @Tags         categories
// @Produce      json
// @Security     TokenAuth
// @Param        id   path      string  true  "Category ID"
// @Success      200  {object}  categoryDetailResponse
// @Failure      404  {object}  map[string]string
// @Router       /categories/{id} [get]
func (h *CategoryHandler) Get(c echo.Context) error {
	d, err := h.service.Get(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, categoryDetailResponse{
		Category: d.Category,
		Children: nonNil(d.Children),
		Items:    nonNil(d.Items),
	})
}

// Create adds a category.
//
// @Summary      Create category
// @Tags         categories
// @Accept       json
// @Produce      json
// @Security     TokenAuth
// @Param        Idempotency-Key  header    string                 false  "Idempotency key"
// @Param        body             body      createCategoryRequest  true   "New category"
// @Success      201              {object}  domain.Category
// @Failure      403              {object}  map[string]string
// @Failure      409              {object}  map[string]string
// @Failure      422              {object}  map[string]string
// @Router       /categories [post]
func (h *CategoryHandler) Create(c echo.Context) error {
	id, err := identity(c)
	if err != nil {
		return err
	}
	var req createCategoryRequest
	if err := bind(c, &req); err != nil {
		return err
	}

	cat, replayed, err := h.service.Create(c.Request().Context(), id, ports.CategoryInput{
		ParentID:       req.ParentID,
		Name:           req.Name,
		Description:    req.Description,
		Meta:           req.Meta,
		IdempotencyKey: idempotencyKey(c),
	})
	if err != nil {
		return err
	}
	return created(c, replayed, cat)
}

// Update changes the given fields of a category.
//
// @Summary      Update category
// @Tags         categories
// @Accept       json
// @Produce      json
// @Security     TokenAuth
// @Param        id    path      string                 true  "Category ID"
// @Param        body  body      updateCategoryRequest  true  "Fields to change"
// @Success      200   {object}  domain.Category
// @Failure      403   {object}  map[string]string
// @Failure      404   {object}  map[string]string
// @Failure      422   {object}  map[string]string
// @Router       /categories/{id} [put]
func (h *CategoryHandler) Update(c echo.Context) error {
	id, err := identity(c)
	if err != nil {
		return err
	}
	var req updateCategoryRequest
	if err := bind(c, &req); err != nil {
		return err
	}

	in := ports.UpdateCategoryInput{
		ParentID:    req.ParentID,
		Name:        req.Name,
		Description: req.Description,
		Meta:        req.Meta,
	}
	if req.ParentID != nil && *req.ParentID == "" {
		in.ParentID = nil
		in.ClearParent = true
	}

	cat, err := h.service.Update(c.Request().Context(), id, c.Param("id"), in)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, cat)
}

// Delete removes an empty category.
//
// @Summary      Delete category
// @Tags         categories
// @Produce      json
// @Security     TokenAuth
// @Param        id   path      string  true  "Category ID"
// @Success      200  {object}  statusResponse
// @Failure      403  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Failure      409  {object}  map[string]string
// @Router       /categories/{id} [delete]
func (h *CategoryHandler) Delete(c echo.Context) error {
	id, err := identity(c)
	if err != nil {
		return err
	}
	if err := h.service.Delete(c.Request().Context(), id, c.Param("id")); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, success)
}
