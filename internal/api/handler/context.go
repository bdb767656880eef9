package handler

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/ironguard/inventory-server/internal/api/middleware"
	"github.com/ironguard/inventory-server/internal/core/domain"
)

// IdempotencyHeader lets a client retry a create without duplicating it.
const IdempotencyHeader = "Idempotency-Key"

// ReplayedHeader is set on responses that replay an earlier create.
const ReplayedHeader = "Idempotent-Replayed"

// identity returns the caller injected by the Authenticate middleware. A
// missing identity means the route was mounted without it, so fail closed.
func identity(c echo.Context) (domain.Identity, error) {
	id, ok := middleware.IdentityFrom(c)
	if !ok {
		return domain.Identity{}, echo.NewHTTPError(http.StatusUnauthorized, "Unauthorized")
	}
	return id, nil
}

func idempotencyKey(c echo.Context) string {
	return strings.TrimSpace(c.Request().Header.Get(IdempotencyHeader))
}

// created renders 201 for a fresh resource and 200 for a replay.
func created(c echo.Context, replayed bool, body any) error {
	if replayed {
		c.Response().Header().Set(ReplayedHeader, "true")
		return c.JSON(http.StatusOK, body)
	}
	return c.JSON(http.StatusCreated, body)
}

type listResponse[T any] struct {
	Total   int `json:"total"`
	Results []T `json:"results"`
}

func newList[T any](results []T) listResponse[T] {
	if results == nil {
		results = []T{}
	}
	return listResponse[T]{Total: len(results), Results: results}
}

type statusResponse struct {
	Status string `json:"status"`
}

var success = statusResponse{Status: "success"}

func nonNil[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return s
}
