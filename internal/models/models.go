package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type User struct {
	ID           uuid.UUID `gorm:"primaryKey"            json:"id"`
	Email        string    `gorm:"uniqueIndex;not null"  json:"email"`
	Name         string    `json:"name"`
	PasswordHash string    `gorm:"not null"              json:"-"`
	Role         string    `gorm:"not null;default:user" json:"role"`
	CreatedAt    time.Time `json:"createdAt"`
}

func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	return nil
}

// Product ids are plain strings rather than uuids: seed data uses slug ids
// ("wireless-headphones") and the API accepts them verbatim.
type Product struct {
	ID          string    `gorm:"primaryKey" json:"id"`
	Name        string    `gorm:"not null"   json:"name"`
	Description string    `gorm:"not null"   json:"description"`
	Price       float64   `gorm:"not null"   json:"price"`
	ImageURL    string    `json:"imageUrl"`
	CreatedAt   time.Time `json:"createdAt"`
}

func (p *Product) BeforeCreate(tx *gorm.DB) error {
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	return nil
}

type Cart struct {
	ID     uuid.UUID  `gorm:"primaryKey"           json:"id"`
	UserID uuid.UUID  `gorm:"uniqueIndex;not null" json:"userId"`
	Items  []CartItem `gorm:"foreignKey:CartID;constraint:OnDelete:CASCADE" json:"items"`
}

func (c *Cart) BeforeCreate(tx *gorm.DB) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	return nil
}

func (Cart) TableName() string {
	return "carts"
}

type CartItem struct {
	ID        uuid.UUID `gorm:"primaryKey"                            json:"id"`
	CartID    uuid.UUID `gorm:"uniqueIndex:idx_cart_product;not null" json:"cartId"`
	ProductID string    `gorm:"uniqueIndex:idx_cart_product;not null" json:"productId"`
	Quantity  int       `gorm:"default:1;check:quantity>0"            json:"quantity"`
	Product   Product   `gorm:"foreignKey:ProductID;constraint:OnDelete:RESTRICT" json:"product"`
}

func (i *CartItem) BeforeCreate(tx *gorm.DB) error {
	if i.ID == uuid.Nil {
		i.ID = uuid.New()
	}
	return nil
}

func (CartItem) TableName() string {
	return "cart_items"
}
