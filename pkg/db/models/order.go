package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/greenbasket/greenbasket-backend/pkg/enums"
)

// Order is a single-vendor order produced by splitting a checkout.
type Order struct {
	ID                string              `gorm:"type:uuid;primaryKey" json:"id"`
	OrderNumber       string              `gorm:"uniqueIndex;not null" json:"order_number"`
	UserID            string              `gorm:"type:uuid;index;not null" json:"user_id"`
	VendorID          string              `gorm:"type:uuid;index;not null" json:"vendor_id"`
	AddressID         string              `gorm:"type:uuid;not null" json:"address_id"`
	Subtotal          decimal.Decimal     `gorm:"type:numeric(10,2);not null" json:"subtotal"`
	DeliveryFee       decimal.Decimal     `gorm:"type:numeric(10,2);not null" json:"delivery_fee"`
	Tax               decimal.Decimal     `gorm:"type:numeric(10,2);not null" json:"tax"`
	Total             decimal.Decimal     `gorm:"type:numeric(10,2);not null" json:"total"`
	Status            enums.OrderStatus   `gorm:"type:varchar(24);not null;default:'PENDING'" json:"status"`
	PaymentMethod     enums.PaymentMethod `gorm:"type:varchar(16);not null" json:"payment_method"`
	PaymentStatus     enums.PaymentStatus `gorm:"type:varchar(16);not null;default:'PENDING'" json:"payment_status"`
	RazorpayOrderID   string              `gorm:"index" json:"razorpay_order_id,omitempty"`
	RazorpayPaymentID string              `json:"razorpay_payment_id,omitempty"`
	DeliveryDate      *time.Time          `json:"delivery_date,omitempty"`
	DeliverySlot      enums.DeliverySlot  `gorm:"type:varchar(16)" json:"delivery_slot,omitempty"`
	DeliveryNotes     string              `json:"delivery_notes,omitempty"`
	EstimatedDelivery time.Time           `json:"estimated_delivery"`
	CreatedAt         time.Time           `json:"created_at"`
	UpdatedAt         time.Time           `json:"updated_at"`

	Items    []OrderItem     `gorm:"foreignKey:OrderID" json:"items,omitempty"`
	Tracking []OrderTracking `gorm:"foreignKey:OrderID" json:"tracking,omitempty"`
	Address  *Address        `gorm:"foreignKey:AddressID" json:"address,omitempty"`
	Vendor   *Vendor         `gorm:"foreignKey:VendorID" json:"vendor,omitempty"`
}

func (o *Order) BeforeCreate(_ *gorm.DB) error {
	if o.ID == "" {
		o.ID = uuid.NewString()
	}
	return nil
}

// OrderItem freezes product name and unit price at checkout time so
// later catalog edits do not rewrite order history.
type OrderItem struct {
	ID          string            `gorm:"type:uuid;primaryKey" json:"id"`
	OrderID     string            `gorm:"type:uuid;index;not null" json:"order_id"`
	ProductID   string            `gorm:"type:uuid;not null" json:"product_id"`
	ProductName string            `gorm:"not null" json:"product_name"`
	Unit        enums.ProductUnit `gorm:"type:varchar(8)" json:"unit,omitempty"`
	UnitPrice   decimal.Decimal   `gorm:"type:numeric(10,2);not null" json:"unit_price"`
	Quantity    int               `gorm:"not null" json:"quantity"`
	LineTotal   decimal.Decimal   `gorm:"type:numeric(10,2);not null" json:"line_total"`
	CreatedAt   time.Time         `json:"created_at"`
}

func (i *OrderItem) BeforeCreate(_ *gorm.DB) error {
	if i.ID == "" {
		i.ID = uuid.NewString()
	}
	return nil
}

// OrderTracking is an append-only event log per order.
type OrderTracking struct {
	ID        string            `gorm:"type:uuid;primaryKey" json:"id"`
	OrderID   string            `gorm:"type:uuid;index;not null" json:"order_id"`
	Status    enums.OrderStatus `gorm:"type:varchar(24);not null" json:"status"`
	Message   string            `gorm:"not null" json:"message"`
	CreatedAt time.Time         `json:"created_at"`
}

func (t *OrderTracking) BeforeCreate(_ *gorm.DB) error {
	if t.ID == "" {
		t.ID = uuid.NewString()
	}
	return nil
}
