package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// CartItem is one product line in a user's cart. A user holds at most
// one row per product; adding the same product again bumps quantity.
type CartItem struct {
	ID                string          `gorm:"type:uuid;primaryKey" json:"id"`
	UserID            string          `gorm:"type:uuid;not null;uniqueIndex:idx_cart_user_product" json:"user_id"`
	ProductID         string          `gorm:"type:uuid;not null;uniqueIndex:idx_cart_user_product" json:"product_id"`
	VendorID          string          `gorm:"type:uuid;index;not null" json:"vendor_id"`
	Quantity          int             `gorm:"not null" json:"quantity"`
	UnitPriceSnapshot decimal.Decimal `gorm:"type:numeric(10,2);not null" json:"unit_price_snapshot"`
	CreatedAt         time.Time       `json:"created_at"`
	UpdatedAt         time.Time       `json:"updated_at"`

	Product *Product `gorm:"foreignKey:ProductID" json:"product,omitempty"`
}

func (c *CartItem) BeforeCreate(_ *gorm.DB) error {
	if c.ID == "" {
		c.ID = uuid.NewString()
	}
	return nil
}
