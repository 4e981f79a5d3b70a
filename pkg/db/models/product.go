package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/greenbasket/greenbasket-backend/pkg/enums"
)

type Product struct {
	ID            string               `gorm:"type:uuid;primaryKey" json:"id"`
	VendorID      string               `gorm:"type:uuid;index;not null" json:"vendor_id"`
	Name          string               `gorm:"not null" json:"name"`
	Description   string               `json:"description,omitempty"`
	Price         decimal.Decimal      `gorm:"type:numeric(10,2);not null" json:"price"`
	DiscountPrice *decimal.Decimal     `gorm:"type:numeric(10,2)" json:"discount_price,omitempty"`
	Unit          enums.ProductUnit    `gorm:"type:varchar(8);not null" json:"unit"`
	Stock         int                  `gorm:"not null;default:0" json:"stock"`
	Sales         int                  `gorm:"not null;default:0" json:"sales"`
	ImageURL      string               `json:"image_url,omitempty"`
	IsActive      bool                 `gorm:"not null;default:true" json:"is_active"`
	CreatedAt     time.Time            `json:"created_at"`
	UpdatedAt     time.Time            `json:"updated_at"`

	Vendor *Vendor `gorm:"foreignKey:VendorID" json:"vendor,omitempty"`
}

func (p *Product) BeforeCreate(_ *gorm.DB) error {
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	return nil
}

// EffectivePrice is the price the customer actually pays.
func (p *Product) EffectivePrice() decimal.Decimal {
	if p.DiscountPrice != nil && p.DiscountPrice.IsPositive() {
		return *p.DiscountPrice
	}
	return p.Price
}
