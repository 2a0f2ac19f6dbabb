package service

import (
	"context"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/shopstack/shopstack/internal/models"
	"github.com/shopstack/shopstack/internal/repo"
	"github.com/shopstack/shopstack/internal/transport"
)

func newCartService(t *testing.T) (*CartService, *gorm.DB) {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{TranslateError: true})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.User{}, &models.Product{}, &models.Cart{}, &models.CartItem{}))

	return &CartService{Repo: repo.NewGormRepo(db)}, db
}

func intPtr(v int) *int { return &v }

func TestAddItemValidationFields(t *testing.T) {
	svc, _ := newCartService(t)
	userID := uuid.New()

	_, err := svc.AddItem(context.Background(), userID, transport.AddItemRequest{
		ProductID: "",
		Quantity:  intPtr(0),
	})

	ve, ok := AsValidationError(err)
	require.True(t, ok)
	require.Len(t, ve.Fields, 2)
	require.Equal(t, "productId", ve.Fields[0].Field)
	require.Equal(t, "quantity", ve.Fields[1].Field)
}

func TestAddItemMissingProduct(t *testing.T) {
	svc, _ := newCartService(t)

	_, err := svc.AddItem(context.Background(), uuid.New(), transport.AddItemRequest{ProductID: "ghost"})
	require.ErrorIs(t, err, ErrProductNotFound)
}

func TestAddItemAccumulates(t *testing.T) {
	svc, db := newCartService(t)
	userID := uuid.New()
	require.NoError(t, db.Create(&models.Product{ID: "p1", Name: "Thing", Description: "d", Price: 1}).Error)

	cart, err := svc.AddItem(context.Background(), userID, transport.AddItemRequest{ProductID: "p1", Quantity: intPtr(2)})
	require.NoError(t, err)
	require.Len(t, cart.Items, 1)
	require.Equal(t, 2, cart.Items[0].Quantity)

	cart, err = svc.AddItem(context.Background(), userID, transport.AddItemRequest{ProductID: "p1", Quantity: intPtr(3)})
	require.NoError(t, err)
	require.Len(t, cart.Items, 1)
	require.Equal(t, 5, cart.Items[0].Quantity)

	// Only one cart row materialized for the user.
	var carts int64
	require.NoError(t, db.Model(&models.Cart{}).Where("user_id = ?", userID).Count(&carts).Error)
	require.EqualValues(t, 1, carts)
}

func TestRemoveItemNoCart(t *testing.T) {
	svc, _ := newCartService(t)

	_, err := svc.RemoveItem(context.Background(), uuid.New(), transport.RemoveItemRequest{ProductID: "p1"})
	require.ErrorIs(t, err, ErrCartNotFound)
}

func TestRemoveItemDeletesAllMatches(t *testing.T) {
	svc, db := newCartService(t)
	userID := uuid.New()
	require.NoError(t, db.Create(&models.Product{ID: "p1", Name: "Thing", Description: "d", Price: 1}).Error)

	_, err := svc.AddItem(context.Background(), userID, transport.AddItemRequest{ProductID: "p1", Quantity: intPtr(4)})
	require.NoError(t, err)

	cart, err := svc.RemoveItem(context.Background(), userID, transport.RemoveItemRequest{ProductID: "p1"})
	require.NoError(t, err)
	require.Len(t, cart.Items, 0)

	var items int64
	require.NoError(t, db.Model(&models.CartItem{}).Count(&items).Error)
	require.EqualValues(t, 0, items)
}

func TestGetCartIdempotent(t *testing.T) {
	svc, _ := newCartService(t)
	userID := uuid.New()

	first, err := svc.GetCart(context.Background(), userID)
	require.NoError(t, err)
	require.NotNil(t, first.Items)
	require.Len(t, first.Items, 0)

	second, err := svc.GetCart(context.Background(), userID)
	require.NoError(t, err)
	require.Equal(t, first.ID, second.ID)
}

func TestSetQuantityAbsolute(t *testing.T) {
	svc, db := newCartService(t)
	userID := uuid.New()
	require.NoError(t, db.Create(&models.Product{ID: "p1", Name: "Thing", Description: "d", Price: 1}).Error)

	cart, err := svc.SetQuantity(context.Background(), userID, transport.SetQuantityRequest{ProductID: "p1", Quantity: intPtr(3)})
	require.NoError(t, err)
	require.Equal(t, 3, cart.Items[0].Quantity)

	cart, err = svc.SetQuantity(context.Background(), userID, transport.SetQuantityRequest{ProductID: "p1", Quantity: intPtr(1)})
	require.NoError(t, err)
	require.Equal(t, 1, cart.Items[0].Quantity)

	_, err = svc.SetQuantity(context.Background(), userID, transport.SetQuantityRequest{ProductID: "p1"})
	_, ok := AsValidationError(err)
	require.True(t, ok)
}
