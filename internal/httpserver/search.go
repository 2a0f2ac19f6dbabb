package httpserver

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/shopstack/shopstack/internal/logging"
	"github.com/shopstack/shopstack/internal/search"
	"github.com/shopstack/shopstack/internal/util"
)

type SearchHTTP struct {
	Svc *search.Service
}

func (h *SearchHTTP) Search(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "search")

	if h.Svc == nil {
		return errorJSON(c, http.StatusServiceUnavailable, "search is not configured")
	}

	q := c.QueryParam("q")
	if q == "" {
		return errorJSON(c, http.StatusBadRequest, "query parameter q required")
	}

	page := util.ParseIntDefault(c.QueryParam("page"), 1)
	size := util.ParseIntDefault(c.QueryParam("size"), util.DefaultPageSize)
	from, limit := util.Calculate(page, size)

	total, products, err := h.Svc.Search(ctx, q, from, limit)
	if err != nil {
		l.Error("search_error", "status", 500, "error", err)
		return errorJSON(c, http.StatusInternalServerError, "internal server error")
	}

	return c.JSON(http.StatusOK, map[string]any{
		"total":    total,
		"products": products,
	})
}
