package seed

import (
	"context"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/shopstack/shopstack/internal/models"
)

func TestRunIsIdempotent(t *testing.T) {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.User{}, &models.Product{}, &models.Cart{}, &models.CartItem{}))

	require.NoError(t, Run(context.Background(), db, "password"))
	require.NoError(t, Run(context.Background(), db, "password"))

	var users, products, carts int64
	require.NoError(t, db.Model(&models.User{}).Count(&users).Error)
	require.NoError(t, db.Model(&models.Product{}).Count(&products).Error)
	require.NoError(t, db.Model(&models.Cart{}).Count(&carts).Error)

	require.EqualValues(t, 1, users)
	require.EqualValues(t, 12, products)
	require.EqualValues(t, 1, carts)

	var prod models.Product
	require.NoError(t, db.Where("id = ?", "wireless-headphones").First(&prod).Error)
	require.Equal(t, "Wireless Headphones", prod.Name)
}
