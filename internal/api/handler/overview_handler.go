package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/ironguard/inventory-server/internal/core/domain"
	"github.com/ironguard/inventory-server/internal/core/ports"
)

type OverviewHandler struct {
	service ports.OverviewService
}

func NewOverviewHandler(service ports.OverviewService) *OverviewHandler {
	return &OverviewHandler{service: service}
}

type inventoryResponse struct {
	Categories []*domain.Category `json:"categories"`
	Items      []*domain.Item     `json:"items"`
}

type dashboardResponse struct {
	CountUsers       int64              `json:"count_users"`
	CountCategories  int64              `json:"count_categories"`
	CountItems       int64              `json:"count_items"`
	LatestUsers      []*domain.User     `json:"latest_users"`
	LatestCategories []*domain.Category `json:"latest_categories"`
	LatestItems      []*domain.Item     `json:"latest_items"`
}

// Inventory returns root categories and uncategorised items.
//
// @Summary      Inventory root
// @Tags         overview
// @Produce      json
// @Security     TokenAuth
// @Success      200  {object}  inventoryResponse
// @Failure      401  {object}  map[string]string
// @Router       /inventory [get]
func (h *OverviewHandler) Inventory(c echo.Context) error {
	inv, err := h.service.Inventory(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, inventoryResponse{
		Categories: nonNil(inv.Categories),
		Items:      nonNil(inv.Items),
	})
}

// Dashboard returns counts and the latest records. User figures are empty
// for non-admins.
//
// @Summary      Dashboard
// @Tags         overview
// @Produce      json
// @Security     TokenAuth
// @Success      200  {object}  dashboardResponse
// @Failure      401  {object}  map[string]string
// @Router       /dashboard [get]
func (h *OverviewHandler) Dashboard(c echo.Context) error {
	id, err := identity(c)
	if err != nil {
		return err
	}
	d, err := h.service.Dashboard(c.Request().Context(), id)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, dashboardResponse{
		CountUsers:       d.CountUsers,
		CountCategories:  d.CountCategories,
		CountItems:       d.CountItems,
		LatestUsers:      nonNil(d.LatestUsers),
		LatestCategories: nonNil(d.LatestCategories),
		LatestItems:      nonNil(d.LatestItems),
	})
}
