package repo

import (
	"context"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/shopstack/shopstack/internal/models"
)

func newRepo(t *testing.T) (*GormRepo, *gorm.DB) {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{TranslateError: true})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.User{}, &models.Product{}, &models.Cart{}, &models.CartItem{}))

	return NewGormRepo(db), db
}

// The conflicting row is already present when AddItem runs, as after losing
// an insert race to a concurrent add. The upsert must fold the quantity into
// that row instead of erroring.
func TestAddItemFoldsIntoExistingRow(t *testing.T) {
	r, db := newRepo(t)
	require.NoError(t, db.Create(&models.Product{ID: "p1", Name: "Thing", Description: "d", Price: 1}).Error)

	cart, err := r.EnsureCart(context.Background(), uuid.New())
	require.NoError(t, err)
	require.NoError(t, db.Create(&models.CartItem{CartID: cart.ID, ProductID: "p1", Quantity: 2}).Error)

	require.NoError(t, r.AddItem(context.Background(), cart.ID, "p1", 3))

	var items []models.CartItem
	require.NoError(t, db.Where("cart_id = ?", cart.ID).Find(&items).Error)
	require.Len(t, items, 1)
	require.Equal(t, 5, items[0].Quantity)
}

func TestSetItemQuantityOverwritesExistingRow(t *testing.T) {
	r, db := newRepo(t)
	require.NoError(t, db.Create(&models.Product{ID: "p1", Name: "Thing", Description: "d", Price: 1}).Error)

	cart, err := r.EnsureCart(context.Background(), uuid.New())
	require.NoError(t, err)
	require.NoError(t, db.Create(&models.CartItem{CartID: cart.ID, ProductID: "p1", Quantity: 2}).Error)

	require.NoError(t, r.SetItemQuantity(context.Background(), cart.ID, "p1", 7))

	var items []models.CartItem
	require.NoError(t, db.Where("cart_id = ?", cart.ID).Find(&items).Error)
	require.Len(t, items, 1)
	require.Equal(t, 7, items[0].Quantity)
}
