package seed

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/shopstack/shopstack/internal/hash"
	"github.com/shopstack/shopstack/internal/models"
)

var products = []models.Product{
	{ID: "wireless-headphones", Name: "Wireless Headphones", Description: "High-quality wireless headphones with noise cancellation", Price: 199.99, ImageURL: "https://images.unsplash.com/photo-1505740420928-5e560c06d30e?w=500"},
	{ID: "smart-watch", Name: "Smart Watch", Description: "Feature-rich smartwatch with health tracking", Price: 299.99, ImageURL: "https://images.unsplash.com/photo-1523275335684-37898b6baf30?w=500"},
	{ID: "laptop-stand", Name: "Laptop Stand", Description: "Ergonomic aluminum laptop stand", Price: 49.99, ImageURL: "https://images.unsplash.com/photo-1527864550417-7fd91fc51a46?w=500"},
	{ID: "mechanical-keyboard", Name: "Mechanical Keyboard", Description: "RGB mechanical keyboard with Cherry MX switches", Price: 149.99, ImageURL: "https://images.unsplash.com/photo-1511467687858-23d96c32e4ae?w=500"},
	{ID: "usb-c-hub", Name: "USB-C Hub", Description: "7-in-1 USB-C hub with multiple ports", Price: 79.99, ImageURL: "https://images.unsplash.com/photo-1625948515291-69613efd103f?w=500"},
	{ID: "wireless-mouse", Name: "Wireless Mouse", Description: "Ergonomic wireless mouse with precision tracking", Price: 59.99, ImageURL: "https://images.unsplash.com/photo-1527814050087-3793815479db?w=500"},
	{ID: "monitor", Name: "Monitor", Description: "27-inch 4K UHD monitor with HDR support", Price: 449.99, ImageURL: "https://images.unsplash.com/photo-1527443224154-c4a3942d3acf?w=500"},
	{ID: "webcam", Name: "Webcam", Description: "1080p HD webcam with auto-focus", Price: 89.99, ImageURL: "https://images.unsplash.com/photo-1589739900243-c1e4f7f01921?w=500"},
	{ID: "desk-lamp", Name: "Desk Lamp", Description: "LED desk lamp with adjustable brightness", Price: 39.99, ImageURL: "https://images.unsplash.com/photo-1507473885765-e6ed057f782c?w=500"},
	{ID: "phone-holder", Name: "Phone Holder", Description: "Adjustable phone holder for desk", Price: 24.99, ImageURL: "https://images.unsplash.com/photo-1601784551446-20c9e07cdbdb?w=500"},
	{ID: "cable-organizer", Name: "Cable Organizer", Description: "Cable management system for clean desk", Price: 19.99, ImageURL: "https://images.unsplash.com/photo-1558618666-fcd25c85cd64?w=500"},
	{ID: "portable-ssd", Name: "Portable SSD", Description: "1TB portable SSD with fast transfer speeds", Price: 129.99, ImageURL: "https://images.unsplash.com/photo-1597872200969-2b65d56bd16b?w=500"},
}

// Run inserts the demo catalog and test account, skipping rows that already
// exist so reseeding is safe.
func Run(ctx context.Context, db *gorm.DB, testUserPassword string) error {
	passwordHash, err := hash.HashPassword(testUserPassword)
	if err != nil {
		return err
	}

	user := models.User{
		Email:        "test.user@example.com",
		Name:         "Test User",
		PasswordHash: passwordHash,
		Role:         "user",
	}
	if err := db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "email"}},
			DoNothing: true,
		}).
		Create(&user).Error; err != nil {
		return err
	}

	for i := range products {
		if err := db.WithContext(ctx).
			Clauses(clause.OnConflict{
				Columns:   []clause.Column{{Name: "id"}},
				DoNothing: true,
			}).
			Create(&products[i]).Error; err != nil {
			return err
		}
	}

	// Materialize the test user's cart, mirroring the lazy create on first
	// cart access.
	var owner models.User
	if err := db.WithContext(ctx).Where("email = ?", user.Email).First(&owner).Error; err != nil {
		return err
	}
	cart := models.Cart{UserID: owner.ID}
	return db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "user_id"}},
			DoNothing: true,
		}).
		Create(&cart).Error
}

func Products() []models.Product {
	out := make([]models.Product, len(products))
	copy(out, products)
	return out
}
