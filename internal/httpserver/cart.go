package httpserver

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/shopstack/shopstack/internal/events"
	"github.com/shopstack/shopstack/internal/logging"
	"github.com/shopstack/shopstack/internal/service"
	"github.com/shopstack/shopstack/internal/transport"
)

type CartHTTP struct {
	Svc      *service.CartService
	Producer *events.Producer
}

func (h *CartHTTP) GetCart(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "cart.get")

	userID, err := userIDFromContext(c)
	if err != nil {
		l.Warn("get_cart_unauthorized", "status", 401, "error", err)
		return errorJSON(c, http.StatusUnauthorized, "unauthorized")
	}

	cart, err := h.Svc.GetCart(ctx, userID)
	if err != nil {
		l.Error("get_cart_error", "status", 500, "error", err)
		return errorJSON(c, http.StatusInternalServerError, "internal server error")
	}

	return c.JSON(http.StatusOK, cart)
}

func (h *CartHTTP) AddItem(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "cart.add")

	userID, err := userIDFromContext(c)
	if err != nil {
		l.Warn("add_item_unauthorized", "status", 401, "error", err)
		return errorJSON(c, http.StatusUnauthorized, "unauthorized")
	}

	var req transport.AddItemRequest
	if err := c.Bind(&req); err != nil {
		l.Warn("add_item_bad_body", "status", 400, "error", err)
		return validationJSON(c, []transport.FieldError{{Field: "body", Reason: "malformed json"}})
	}

	cart, err := h.Svc.AddItem(ctx, userID, req)
	if err != nil {
		if ve, ok := service.AsValidationError(err); ok {
			l.Warn("add_item_invalid", "status", 400, "error", err)
			return validationJSON(c, ve.Fields)
		}
		if err == service.ErrProductNotFound {
			l.Warn("add_item_product_missing", "status", 404, "product_id", req.ProductID)
			return errorJSON(c, http.StatusNotFound, "product not found")
		}
		l.Error("add_item_error", "status", 500, "error", err)
		return errorJSON(c, http.StatusInternalServerError, "internal server error")
	}

	publish(c, h.Producer, events.TopicCartEvents, userID.String(), map[string]any{
		"type":      "cart_item_added",
		"userId":    userID.String(),
		"productId": req.ProductID,
	})

	l.Info("item added to cart", "product_id", req.ProductID)
	return c.JSON(http.StatusOK, cart)
}

func (h *CartHTTP) SetQuantity(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "cart.set_quantity")

	userID, err := userIDFromContext(c)
	if err != nil {
		l.Warn("set_quantity_unauthorized", "status", 401, "error", err)
		return errorJSON(c, http.StatusUnauthorized, "unauthorized")
	}

	var req transport.SetQuantityRequest
	if err := c.Bind(&req); err != nil {
		l.Warn("set_quantity_bad_body", "status", 400, "error", err)
		return validationJSON(c, []transport.FieldError{{Field: "body", Reason: "malformed json"}})
	}

	cart, err := h.Svc.SetQuantity(ctx, userID, req)
	if err != nil {
		if ve, ok := service.AsValidationError(err); ok {
			l.Warn("set_quantity_invalid", "status", 400, "error", err)
			return validationJSON(c, ve.Fields)
		}
		if err == service.ErrProductNotFound {
			l.Warn("set_quantity_product_missing", "status", 404, "product_id", req.ProductID)
			return errorJSON(c, http.StatusNotFound, "product not found")
		}
		l.Error("set_quantity_error", "status", 500, "error", err)
		return errorJSON(c, http.StatusInternalServerError, "internal server error")
	}

	publish(c, h.Producer, events.TopicCartEvents, userID.String(), map[string]any{
		"type":      "cart_quantity_set",
		"userId":    userID.String(),
		"productId": req.ProductID,
	})

	return c.JSON(http.StatusOK, cart)
}

func (h *CartHTTP) RemoveItem(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "cart.remove")

	userID, err := userIDFromContext(c)
	if err != nil {
		l.Warn("remove_item_unauthorized", "status", 401, "error", err)
		return errorJSON(c, http.StatusUnauthorized, "unauthorized")
	}

	var req transport.RemoveItemRequest
	if err := c.Bind(&req); err != nil {
		l.Warn("remove_item_bad_body", "status", 400, "error", err)
		return validationJSON(c, []transport.FieldError{{Field: "body", Reason: "malformed json"}})
	}

	cart, err := h.Svc.RemoveItem(ctx, userID, req)
	if err != nil {
		if ve, ok := service.AsValidationError(err); ok {
			l.Warn("remove_item_invalid", "status", 400, "error", err)
			return validationJSON(c, ve.Fields)
		}
		if err == service.ErrCartNotFound {
			l.Warn("remove_item_cart_missing", "status", 404)
			return errorJSON(c, http.StatusNotFound, "cart not found")
		}
		l.Error("remove_item_error", "status", 500, "error", err)
		return errorJSON(c, http.StatusInternalServerError, "internal server error")
	}

	publish(c, h.Producer, events.TopicCartEvents, userID.String(), map[string]any{
		"type":      "cart_item_removed",
		"userId":    userID.String(),
		"productId": req.ProductID,
	})

	l.Info("item removed from cart", "product_id", req.ProductID)
	return c.JSON(http.StatusOK, cart)
}
