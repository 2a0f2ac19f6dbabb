package repo

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/shopstack/shopstack/internal/models"
)

// GetCartByUser loads the user's cart with line items and their products.
// Returns gorm.ErrRecordNotFound when the user has no cart yet.
func (r *GormRepo) GetCartByUser(ctx context.Context, userID uuid.UUID) (*models.Cart, error) {
	var cart models.Cart
	if err := r.DB.WithContext(ctx).
		Preload("Items.Product").
		Where("user_id = ?", userID).
		First(&cart).Error; err != nil {
		return nil, err
	}
	if cart.Items == nil {
		cart.Items = []models.CartItem{}
	}
	return &cart, nil
}

// EnsureCart creates the user's cart if absent and returns it without the
// item join. Safe to call concurrently: the insert ignores the unique
// (user_id) conflict and the row is re-read afterwards.
func (r *GormRepo) EnsureCart(ctx context.Context, userID uuid.UUID) (*models.Cart, error) {
	cart := models.Cart{UserID: userID}
	if err := r.DB.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "user_id"}},
			DoNothing: true,
		}).
		Create(&cart).Error; err != nil {
		return nil, err
	}

	var out models.Cart
	if err := r.DB.WithContext(ctx).Where("user_id = ?", userID).First(&out).Error; err != nil {
		return nil, err
	}
	return &out, nil
}

// FindCartByUser loads the cart row alone, without items.
func (r *GormRepo) FindCartByUser(ctx context.Context, userID uuid.UUID) (*models.Cart, error) {
	var cart models.Cart
	if err := r.DB.WithContext(ctx).Where("user_id = ?", userID).First(&cart).Error; err != nil {
		return nil, err
	}
	return &cart, nil
}

// AddItem accumulates quantity onto an existing line item, or inserts one.
// A single INSERT ... ON CONFLICT upsert keeps concurrent adds from losing
// updates on either driver.
func (r *GormRepo) AddItem(ctx context.Context, cartID uuid.UUID, productID string, quantity int) error {
	item := models.CartItem{
		CartID:    cartID,
		ProductID: productID,
		Quantity:  quantity,
	}
	return r.DB.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "cart_id"}, {Name: "product_id"}},
			DoUpdates: clause.Assignments(map[string]any{
				"quantity": gorm.Expr("quantity + ?", quantity),
			}),
		}).
		Create(&item).Error
}

// SetItemQuantity upserts the line item to an absolute quantity.
func (r *GormRepo) SetItemQuantity(ctx context.Context, cartID uuid.UUID, productID string, quantity int) error {
	item := models.CartItem{
		CartID:    cartID,
		ProductID: productID,
		Quantity:  quantity,
	}
	return r.DB.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "cart_id"}, {Name: "product_id"}},
			DoUpdates: clause.Assignments(map[string]any{"quantity": quantity}),
		}).
		Create(&item).Error
}

// DeleteItemsByProduct removes every line item for the product. Matching
// nothing is not an error.
func (r *GormRepo) DeleteItemsByProduct(ctx context.Context, cartID uuid.UUID, productID string) error {
	return r.DB.WithContext(ctx).
		Where("cart_id = ? AND product_id = ?", cartID, productID).
		Delete(&models.CartItem{}).Error
}

func (r *GormRepo) CountItemsByProduct(ctx context.Context, productID string) (int64, error) {
	var total int64
	if err := r.DB.WithContext(ctx).
		Model(&models.CartItem{}).
		Where("product_id = ?", productID).
		Count(&total).Error; err != nil {
		return 0, err
	}
	return total, nil
}
