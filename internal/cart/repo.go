package cart

import (
	"context"
	stderrors "errors"

	"gorm.io/gorm"

	"github.com/greenbasket/greenbasket-backend/pkg/db"
	"github.com/greenbasket/greenbasket-backend/pkg/db/models"
)

// Repo persists cart items.
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

// ListByUser returns the user's cart with products and their vendors
// preloaded, oldest lines first.
func (r *Repo) ListByUser(ctx context.Context, userID string) ([]models.CartItem, error) {
	var items []models.CartItem
	err := r.gdb.WithContext(ctx).
		Preload("Product").
		Preload("Product.Vendor").
		Where("user_id = ?", userID).
		Order("created_at ASC").
		Find(&items).Error
	if err != nil {
		return nil, db.Translate(err, "cart not found")
	}
	return items, nil
}

func (r *Repo) Get(ctx context.Context, id string) (*models.CartItem, error) {
	var item models.CartItem
	err := r.gdb.WithContext(ctx).Preload("Product").First(&item, "id = ?", id).Error
	if err != nil {
		return nil, db.Translate(err, "cart item not found")
	}
	return &item, nil
}

// FindByUserAndProduct returns the existing line for a product, or nil
// when the user has none.
func (r *Repo) FindByUserAndProduct(ctx context.Context, userID, productID string) (*models.CartItem, error) {
	var item models.CartItem
	err := r.gdb.WithContext(ctx).
		First(&item, "user_id = ? AND product_id = ?", userID, productID).Error
	if stderrors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, db.Translate(err, "cart item not found")
	}
	return &item, nil
}

func (r *Repo) Create(ctx context.Context, item *models.CartItem) error {
	if err := r.gdb.WithContext(ctx).Create(item).Error; err != nil {
		return db.Translate(err, "cart item not found")
	}
	return nil
}

func (r *Repo) UpdateQuantity(ctx context.Context, id string, quantity int) error {
	err := r.gdb.WithContext(ctx).
		Model(&models.CartItem{}).
		Where("id = ?", id).
		Update("quantity", quantity).Error
	if err != nil {
		return db.Translate(err, "cart item not found")
	}
	return nil
}

func (r *Repo) Delete(ctx context.Context, id string) error {
	err := r.gdb.WithContext(ctx).Delete(&models.CartItem{}, "id = ?", id).Error
	if err != nil {
		return db.Translate(err, "cart item not found")
	}
	return nil
}

// ClearUser removes every line of the user's cart.
func (r *Repo) ClearUser(ctx context.Context, userID string) error {
	err := r.gdb.WithContext(ctx).Delete(&models.CartItem{}, "user_id = ?", userID).Error
	if err != nil {
		return db.Translate(err, "cart not found")
	}
	return nil
}
