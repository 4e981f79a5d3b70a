package checkout

import (
	"context"

	"gorm.io/gorm"

	"github.com/greenbasket/greenbasket-backend/internal/orders"
	"github.com/greenbasket/greenbasket-backend/pkg/db/models"
)

type repoOrderCreator struct {
	repo *orders.Repo
}

// NewOrderCreator adapts the orders repo so checkout can write orders
// inside its own transactions.
func NewOrderCreator(repo *orders.Repo) OrderCreator {
	return repoOrderCreator{repo: repo}
}

func (c repoOrderCreator) Create(ctx context.Context, tx *gorm.DB, order *models.Order) error {
	return c.repo.WithTx(tx).Create(ctx, order)
}
