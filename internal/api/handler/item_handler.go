package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/ironguard/inventory-server/internal/core/ports"
)

type ItemHandler struct {
	service ports.ItemService
}

func NewItemHandler(service ports.ItemService) *ItemHandler {
	return &ItemHandler{service: service}
}

type createItemRequest struct {
	CategoryID  *string `json:"category_id"`
	Name        string  `json:"name" validate:"required,max=255"`
	Description string  `json:"description"`
	Quantity    int     `json:"quantity" validate:"gte=0"`
	Meta        string  `json:"meta"`
}

// updateItemRequest uncategorises the item when category_id is sent as an
// empty string.
type updateItemRequest struct {
	CategoryID  *string `json:"category_id"`
	Name        *string `json:"name" validate:"omitempty,min=1,max=255"`
	Description *string `json:"description"`
	Quantity    *int    `json:"quantity" validate:"omitempty,gte=0"`
	Meta        *string `json:"meta"`
}

// List returns every item.
//
// @Summary      List items
// @Tags         items
// @Produce      json
// @Security     TokenAuth
// @Success      200  {object}  listResponse[domain.Item]
// @Router       /items [get]
func (h *ItemHandler) List(c echo.Context) error {
	items, err := h.service.List(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, newList(items))
}

// Get returns one item.
//
// @Summary      Get item
// @Tags         items
// @Produce      json
// @Security     TokenAuth
// @Param        id   path      string  true  "Item ID"
// @Success      200  {object}  domain.Item
// @Failure      404  {object}  map[string]string
// @Router       /items/{id} [get]
func (h *ItemHandler) Get(c echo.Context) error {
	it, err := h.service.Get(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, it)
}

// Create adds an item.
//
// @Summary      Create item
// @Tags         items
// @Accept       json
// @Produce      json
// @Security     TokenAuth
// @Param        Idempotency-Key  header    string             false  "Idempotency key"
// @Param        body             body      createItemRequest  true   "New item"
// @Success      201              {object}  domain.Item
// @Failure      403              {object}  map[string]string
// @Failure      409              {object}  map[string]string
// @Failure      422              {object}  map[string]string
// @Router       /items [post]
func (h *ItemHandler) Create(c echo.Context) error {
	id, err := identity(c)
	if err != nil {
		return err
	}
	var req createItemRequest
	if err := bind(c, &req); err != nil {
		return err
	}

	it, replayed, err := h.service.Create(c.Request().Context(), id, ports.ItemInput{
		CategoryID:     req.CategoryID,
		Name:           req.Name,
		Description:    req.Description,
		Quantity:       req.Quantity,
		Meta:           req.Meta,
		IdempotencyKey: idempotencyKey(c),
	})
	if err != nil {
		return err
	}
	return created(c, replayed, it)
}

// Update changes the given fields of an item.
//
// @Summary      Update item
// @Tags         items
// @Accept       json
// @Produce      json
// @Security     TokenAuth
// @Param        id    path      string             true  "Item ID"
// @Param        body  body      updateItemRequest  true  "Fields to change"
// @Success      200   {object}  domain.Item
// @Failure      403   {object}  map[string]string
// @Failure      404   {object}  map[string]string
// @Failure      422   {object}  map[string]string
// @Router       /items/{id} [put]
func (h *ItemHandler) Update(c echo.Context) error {
	id, err := identity(c)
	if err != nil {
		return err
	}
	var req updateItemRequest
	if err := bind(c, &req); err != nil {
		return err
	}

	in := ports.UpdateItemInput{
		CategoryID:  req.CategoryID,
		Name:        req.Name,
		Description: req.Description,
		Quantity:    req.Quantity,
		Meta:        req.Meta,
	}
	if req.CategoryID != nil && *req.CategoryID == "" {
		in.CategoryID = nil
		in.ClearCategory = true
	}

	it, err := h.service.Update(c.Request().Context(), id, c.Param("id"), in)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, it)
}

// Delete removes an item.
//
// @Summary      Delete item
// @Tags         items
// @Produce      json
// @Security     TokenAuth
// @Param        id   path      string  true  "Item ID"
// @Success      200  {object}  statusResponse
// @Failure      403  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Router       /items/{id} [delete]
func (h *ItemHandler) Delete(c echo.Context) error {
	id, err := identity(c)
	if err != nil {
		return err
	}
	if err := h.service.Delete(c.Request().Context(), id, c.Param("id")); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, success)
}
