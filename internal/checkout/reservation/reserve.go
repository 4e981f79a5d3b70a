package reservation

import (
	"gorm.io/gorm"

	"github.com/greenbasket/greenbasket-backend/pkg/db"
	"github.com/greenbasket/greenbasket-backend/pkg/db/models"
	"github.com/greenbasket/greenbasket-backend/pkg/errors"
)

// Reserve decrements stock and bumps sales for one product, guarded by
// a single conditional UPDATE. Zero rows affected means the product is
// gone or does not hold enough stock; the row is never driven negative
// even under concurrent checkouts.
func Reserve(tx *gorm.DB, productID string, quantity int) error {
	if quantity <= 0 {
		return errors.New(errors.CodeValidation, "quantity must be positive")
	}

	res := tx.Model(&models.Product{}).
		Where("id = ? AND is_active AND stock >= ?", productID, quantity).
		Updates(map[string]any{
			"stock": gorm.Expr("stock - ?", quantity),
			"sales": gorm.Expr("sales + ?", quantity),
		})
	if res.Error != nil {
		return db.Translate(res.Error, "product not found")
	}
	if res.RowsAffected == 0 {
		return errors.New(errors.CodeInsufficientStock, "not enough stock to reserve").
			WithDetails(map[string]any{
				"product_id": productID,
				"requested":  quantity,
			})
	}
	return nil
}

// ReserveAll reserves every line of a vendor group inside the caller's
// transaction. The first failure aborts; the transaction rollback
// undoes any lines already reserved.
func ReserveAll(tx *gorm.DB, items []models.CartItem) error {
	for _, item := range items {
		if err := Reserve(tx, item.ProductID, item.Quantity); err != nil {
			return err
		}
	}
	return nil
}
