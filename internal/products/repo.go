package products

import (
	"context"

	"gorm.io/gorm"

	"github.com/greenbasket/greenbasket-backend/pkg/db"
	"github.com/greenbasket/greenbasket-backend/pkg/db/models"
)

// Repo reads the product catalog.
type Repo struct {
	gdb *gorm.DB
}

func NewRepo(client *db.Client) *Repo {
	return &Repo{gdb: client.Gorm()}
}

func (r *Repo) GetByID(ctx context.Context, id string) (*models.Product, error) {
	var product models.Product
	err := r.gdb.WithContext(ctx).First(&product, "id = ?", id).Error
	if err != nil {
		return nil, db.Translate(err, "product not found")
	}
	return &product, nil
}
