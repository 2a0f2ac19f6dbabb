package httpserver

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"

	"github.com/shopstack/shopstack/internal/events"
	"github.com/shopstack/shopstack/internal/logging"
	"github.com/shopstack/shopstack/internal/search"
	"github.com/shopstack/shopstack/internal/service"
	"github.com/shopstack/shopstack/internal/transport"
	"github.com/shopstack/shopstack/internal/util"
)

type CatalogHTTP struct {
	Svc      *service.CatalogService
	Indexer  *search.Service
	Producer *events.Producer
}

func (h *CatalogHTTP) GetProduct(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "product.get")

	id := c.Param("id")
	if id == "" {
		return errorJSON(c, http.StatusBadRequest, "product id required")
	}

	product, err := h.Svc.GetProduct(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			l.Warn("get_product_missing", "status", 404, "product_id", id)
			return errorJSON(c, http.StatusNotFound, "product not found")
		}
		l.Error("get_product_error", "status", 500, "error", err)
		return errorJSON(c, http.StatusInternalServerError, "internal server error")
	}

	return c.JSON(http.StatusOK, product)
}

func (h *CatalogHTTP) ListProducts(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "product.list")

	page := util.ParseIntDefault(c.QueryParam("page"), 1)
	size := util.ParseIntDefault(c.QueryParam("size"), util.DefaultPageSize)
	q := c.QueryParam("q")

	offset, limit := util.Calculate(page, size)

	total, items, err := h.Svc.ListProducts(ctx, q, offset, limit)
	if err != nil {
		l.Error("list_products_error", "status", 500, "error", err)
		return errorJSON(c, http.StatusInternalServerError, "internal server error")
	}

	return c.JSON(http.StatusOK, map[string]any{
		"data": items,
		"meta": map[string]any{
			"page":        page,
			"size":        limit,
			"total":       total,
			"total_pages": (total + int64(limit) - 1) / int64(limit),
			"has_prev":    page > 1,
			"has_next":    int64(offset+limit) < total,
		},
	})
}

func (h *CatalogHTTP) CreateProduct(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "product.create")

	var req transport.CreateProductRequest
	if err := c.Bind(&req); err != nil {
		l.Warn("create_product_bad_body", "status", 400, "error", err)
		return validationJSON(c, []transport.FieldError{{Field: "body", Reason: "malformed json"}})
	}

	prod, err := h.Svc.CreateProduct(ctx, req)
	if err != nil {
		if ve, ok := service.AsValidationError(err); ok {
			l.Warn("create_product_invalid", "status", 400, "error", err)
			return validationJSON(c, ve.Fields)
		}
		l.Error("create_product_error", "status", 500, "error", err)
		return errorJSON(c, http.StatusInternalServerError, "internal server error")
	}

	if err := h.Indexer.IndexProduct(ctx, prod); err != nil {
		l.Error("index_product_error", "product_id", prod.ID, "error", err)
	}

	publish(c, h.Producer, events.TopicProductEvents, prod.ID, map[string]any{
		"type":      "product_created",
		"productId": prod.ID,
		"name":      prod.Name,
	})

	l.Info("product created", "product_id", prod.ID)
	return c.JSON(http.StatusCreated, prod)
}

func (h *CatalogHTTP) PatchProduct(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "product.patch")

	id := c.Param("id")

	var req transport.PatchProductRequest
	if err := c.Bind(&req); err != nil {
		l.Warn("patch_product_bad_body", "status", 400, "error", err)
		return validationJSON(c, []transport.FieldError{{Field: "body", Reason: "malformed json"}})
	}

	prod, err := h.Svc.PatchProduct(ctx, req, id)
	if err != nil {
		if ve, ok := service.AsValidationError(err); ok {
			l.Warn("patch_product_invalid", "status", 400, "error", err)
			return validationJSON(c, ve.Fields)
		}
		if err == service.ErrProductNotFound {
			l.Warn("patch_product_missing", "status", 404, "product_id", id)
			return errorJSON(c, http.StatusNotFound, "product not found")
		}
		l.Error("patch_product_error", "status", 500, "error", err)
		return errorJSON(c, http.StatusInternalServerError, "internal server error")
	}

	if err := h.Indexer.IndexProduct(ctx, prod); err != nil {
		l.Error("index_product_error", "product_id", prod.ID, "error", err)
	}

	publish(c, h.Producer, events.TopicProductEvents, prod.ID, map[string]any{
		"type":      "product_updated",
		"productId": prod.ID,
		"name":      prod.Name,
	})

	return c.JSON(http.StatusOK, prod)
}

func (h *CatalogHTTP) DeleteProduct(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "product.delete")

	id := c.Param("id")

	if err := h.Svc.DeleteProduct(ctx, id); err != nil {
		switch err {
		case service.ErrProductNotFound:
			l.Warn("delete_product_missing", "status", 404, "product_id", id)
			return errorJSON(c, http.StatusNotFound, "product not found")
		case service.ErrProductInCarts:
			l.Warn("delete_product_referenced", "status", 409, "product_id", id)
			return errorJSON(c, http.StatusConflict, "product is referenced by carts")
		default:
			l.Error("delete_product_error", "status", 500, "error", err)
			return errorJSON(c, http.StatusInternalServerError, "internal server error")
		}
	}

	if err := h.Indexer.DeleteProduct(ctx, id); err != nil {
		l.Error("index_delete_error", "product_id", id, "error", err)
	}

	publish(c, h.Producer, events.TopicProductEvents, id, map[string]any{
		"type":      "product_deleted",
		"productId": id,
	})

	return c.NoContent(http.StatusNoContent)
}
