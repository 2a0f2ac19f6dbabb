package service

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/shopstack/shopstack/internal/models"
	"github.com/shopstack/shopstack/internal/repo"
	"github.com/shopstack/shopstack/internal/transport"
)

type CartService struct {
	Repo *repo.GormRepo
}

// GetCart returns the user's cart, materializing an empty one on first
// access. Every user effectively has exactly one cart.
func (s *CartService) GetCart(ctx context.Context, userID uuid.UUID) (*models.Cart, error) {
	cart, err := s.Repo.GetCartByUser(ctx, userID)
	if err == nil {
		return cart, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	if _, err := s.Repo.EnsureCart(ctx, userID); err != nil {
		return nil, err
	}
	return s.Repo.GetCartByUser(ctx, userID)
}

// AddItem validates the request, verifies the product, ensures the cart and
// accumulates the quantity onto any existing line item. Returns the full
// cart snapshot.
func (s *CartService) AddItem(ctx context.Context, userID uuid.UUID, req transport.AddItemRequest) (*models.Cart, error) {
	quantity := 1
	if req.Quantity != nil {
		quantity = *req.Quantity
	}

	var fields []transport.FieldError
	if req.ProductID == "" {
		fields = append(fields, transport.FieldError{Field: "productId", Reason: "required"})
	}
	if quantity < 1 {
		fields = append(fields, transport.FieldError{Field: "quantity", Reason: "must be a positive integer"})
	}
	if len(fields) > 0 {
		return nil, &ValidationError{Fields: fields}
	}

	if _, err := s.Repo.GetProduct(ctx, req.ProductID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProductNotFound
		}
		return nil, err
	}

	cart, err := s.Repo.EnsureCart(ctx, userID)
	if err != nil {
		return nil, err
	}

	if err := s.Repo.AddItem(ctx, cart.ID, req.ProductID, quantity); err != nil {
		return nil, err
	}

	return s.Repo.GetCartByUser(ctx, userID)
}

// SetQuantity upserts a line item to an absolute quantity, replacing the
// client-composed remove+add sequence.
func (s *CartService) SetQuantity(ctx context.Context, userID uuid.UUID, req transport.SetQuantityRequest) (*models.Cart, error) {
	var fields []transport.FieldError
	if req.ProductID == "" {
		fields = append(fields, transport.FieldError{Field: "productId", Reason: "required"})
	}
	if req.Quantity == nil {
		fields = append(fields, transport.FieldError{Field: "quantity", Reason: "required"})
	} else if *req.Quantity < 1 {
		fields = append(fields, transport.FieldError{Field: "quantity", Reason: "must be a positive integer"})
	}
	if len(fields) > 0 {
		return nil, &ValidationError{Fields: fields}
	}

	if _, err := s.Repo.GetProduct(ctx, req.ProductID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProductNotFound
		}
		return nil, err
	}

	cart, err := s.Repo.EnsureCart(ctx, userID)
	if err != nil {
		return nil, err
	}

	if err := s.Repo.SetItemQuantity(ctx, cart.ID, req.ProductID, *req.Quantity); err != nil {
		return nil, err
	}

	return s.Repo.GetCartByUser(ctx, userID)
}

// RemoveItem deletes every line item for the product. Removal is not
// create-on-demand: a user without a cart gets ErrCartNotFound. Removing a
// product absent from the cart is a no-op.
func (s *CartService) RemoveItem(ctx context.Context, userID uuid.UUID, req transport.RemoveItemRequest) (*models.Cart, error) {
	if req.ProductID == "" {
		return nil, &ValidationError{Fields: []transport.FieldError{
			{Field: "productId", Reason: "required"},
		}}
	}

	cart, err := s.Repo.FindCartByUser(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCartNotFound
		}
		return nil, err
	}

	if err := s.Repo.DeleteItemsByProduct(ctx, cart.ID, req.ProductID); err != nil {
		return nil, err
	}

	return s.Repo.GetCartByUser(ctx, userID)
}
