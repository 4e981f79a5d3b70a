package orders

import (
	"context"

	"gorm.io/gorm"

	"github.com/greenbasket/greenbasket-backend/pkg/db"
	"github.com/greenbasket/greenbasket-backend/pkg/db/models"
	"github.com/greenbasket/greenbasket-backend/pkg/enums"
	"github.com/greenbasket/greenbasket-backend/pkg/pagination"
)

// Repo persists orders, their items and tracking events.
type Repo struct {
	gdb *gorm.DB
}

func NewRepo(client *db.Client) *Repo {
	return &Repo{gdb: client.Gorm()}
}

// WithTx rebinds the repo to a transaction handle.
func (r *Repo) WithTx(tx *gorm.DB) *Repo {
	return &Repo{gdb: tx}
}

// Create inserts an order with its nested items and tracking events in
// one go via gorm associations.
func (r *Repo) Create(ctx context.Context, order *models.Order) error {
	if err := r.gdb.WithContext(ctx).Create(order).Error; err != nil {
		return db.Translate(err, "order not found")
	}
	return nil
}

// Filter narrows order listings.
type Filter struct {
	UserID   string
	VendorID string
	Status   enums.OrderStatus
}

// List returns matching orders newest first, with items and tracking
// preloaded, plus the unpaginated total.
func (r *Repo) List(ctx context.Context, f Filter, p pagination.Params) ([]models.Order, int64, error) {
	q := r.gdb.WithContext(ctx).Model(&models.Order{})
	if f.UserID != "" {
		q = q.Where("user_id = ?", f.UserID)
	}
	if f.VendorID != "" {
		q = q.Where("vendor_id = ?", f.VendorID)
	}
	if f.Status != "" {
		q = q.Where("status = ?", f.Status)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, db.Translate(err, "orders not found")
	}

	var orders []models.Order
	err := q.Preload("Items").
		Preload("Tracking", func(tx *gorm.DB) *gorm.DB {
			return tx.Order("created_at ASC")
		}).
		Order("created_at DESC").
		Offset(p.Offset()).
		Limit(p.Limit).
		Find(&orders).Error
	if err != nil {
		return nil, 0, db.Translate(err, "orders not found")
	}
	return orders, total, nil
}

func (r *Repo) GetByID(ctx context.Context, id string) (*models.Order, error) {
	var order models.Order
	err := r.gdb.WithContext(ctx).
		Preload("Items").
		Preload("Tracking", func(tx *gorm.DB) *gorm.DB {
			return tx.Order("created_at ASC")
		}).
		Preload("Address").
		First(&order, "id = ?", id).Error
	if err != nil {
		return nil, db.Translate(err, "order not found")
	}
	return &order, nil
}

// FindByRazorpayOrderID returns every vendor order attached to one
// gateway order.
func (r *Repo) FindByRazorpayOrderID(ctx context.Context, razorpayOrderID string) ([]models.Order, error) {
	var orders []models.Order
	err := r.gdb.WithContext(ctx).
		Where("razorpay_order_id = ?", razorpayOrderID).
		Find(&orders).Error
	if err != nil {
		return nil, db.Translate(err, "orders not found")
	}
	return orders, nil
}

// UpdatePayment records the payment outcome on an order.
func (r *Repo) UpdatePayment(ctx context.Context, orderID string, status enums.OrderStatus, payment enums.PaymentStatus, paymentID string) error {
	updates := map[string]any{
		"status":         status,
		"payment_status": payment,
	}
	if paymentID != "" {
		updates["razorpay_payment_id"] = paymentID
	}
	err := r.gdb.WithContext(ctx).
		Model(&models.Order{}).
		Where("id = ?", orderID).
		Updates(updates).Error
	if err != nil {
		return db.Translate(err, "order not found")
	}
	return nil
}

// AppendTracking adds an event to an order's tracking log.
func (r *Repo) AppendTracking(ctx context.Context, event *models.OrderTracking) error {
	if err := r.gdb.WithContext(ctx).Create(event).Error; err != nil {
		return db.Translate(err, "order not found")
	}
	return nil
}
