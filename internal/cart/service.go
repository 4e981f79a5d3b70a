package cart

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/greenbasket/greenbasket-backend/pkg/db/models"
	"github.com/greenbasket/greenbasket-backend/pkg/errors"
	"github.com/greenbasket/greenbasket-backend/pkg/logger"
)

type cartRepo interface {
	ListByUser(ctx context.Context, userID string) ([]models.CartItem, error)
	Get(ctx context.Context, id string) (*models.CartItem, error)
	FindByUserAndProduct(ctx context.Context, userID, productID string) (*models.CartItem, error)
	Create(ctx context.Context, item *models.CartItem) error
	UpdateQuantity(ctx context.Context, id string, quantity int) error
	Delete(ctx context.Context, id string) error
}

type productLoader interface {
	GetByID(ctx context.Context, id string) (*models.Product, error)
}

// Service implements cart reads and writes for the authenticated user.
type Service struct {
	repo     cartRepo
	products productLoader
}

func NewService(repo cartRepo, products productLoader) *Service {
	return &Service{repo: repo, products: products}
}

// Summary is the cart rollup returned with every read.
type Summary struct {
	TotalItems int             `json:"total_items"`
	Subtotal   decimal.Decimal `json:"subtotal"`
}

// View is a cart with its summary.
type View struct {
	Items   []models.CartItem `json:"items"`
	Summary Summary           `json:"summary"`
}

func (s *Service) List(ctx context.Context, userID string) (*View, error) {
	items, err := s.repo.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	return &View{Items: items, Summary: summarize(items)}, nil
}

// Add puts a product in the cart. Adding a product already present
// bumps the existing line's quantity instead of creating a duplicate.
func (s *Service) Add(ctx context.Context, userID, productID string, quantity int) (*models.CartItem, error) {
	if quantity <= 0 {
		return nil, errors.New(errors.CodeValidation, "quantity must be positive")
	}

	product, err := s.products.GetByID(ctx, productID)
	if err != nil {
		return nil, err
	}
	if !product.IsActive {
		return nil, errors.New(errors.CodeNotFound, "product is no longer available").
			WithDetails(map[string]any{"product_id": productID})
	}

	existing, err := s.repo.FindByUserAndProduct(ctx, userID, productID)
	if err != nil {
		return nil, err
	}

	newQuantity := quantity
	if existing != nil {
		newQuantity += existing.Quantity
	}
	if newQuantity > product.Stock {
		return nil, errors.New(errors.CodeInsufficientStock, "requested quantity exceeds stock").
			WithDetails(map[string]any{
				"product_id": productID,
				"requested":  newQuantity,
				"available":  product.Stock,
			})
	}

	if existing != nil {
		if err := s.repo.UpdateQuantity(ctx, existing.ID, newQuantity); err != nil {
			return nil, err
		}
		existing.Quantity = newQuantity
		return existing, nil
	}

	item := &models.CartItem{
		UserID:            userID,
		ProductID:         productID,
		VendorID:          product.VendorID,
		Quantity:          quantity,
		UnitPriceSnapshot: product.EffectivePrice(),
	}
	if err := s.repo.Create(ctx, item); err != nil {
		return nil, err
	}

	log := logger.FromContext(ctx)
	log.Debug().
		Str("product_id", productID).
		Int("quantity", quantity).
		Msg("cart item added")
	return item, nil
}

// UpdateQuantity sets an owned cart line to an absolute quantity.
func (s *Service) UpdateQuantity(ctx context.Context, userID, itemID string, quantity int) (*models.CartItem, error) {
	if quantity <= 0 {
		return nil, errors.New(errors.CodeValidation, "quantity must be positive")
	}

	item, err := s.ownedItem(ctx, userID, itemID)
	if err != nil {
		return nil, err
	}

	product, err := s.products.GetByID(ctx, item.ProductID)
	if err != nil {
		return nil, err
	}
	if quantity > product.Stock {
		return nil, errors.New(errors.CodeInsufficientStock, "requested quantity exceeds stock").
			WithDetails(map[string]any{
				"product_id": item.ProductID,
				"requested":  quantity,
				"available":  product.Stock,
			})
	}

	if err := s.repo.UpdateQuantity(ctx, item.ID, quantity); err != nil {
		return nil, err
	}
	item.Quantity = quantity
	return item, nil
}

// Remove deletes an owned cart line.
func (s *Service) Remove(ctx context.Context, userID, itemID string) error {
	item, err := s.ownedItem(ctx, userID, itemID)
	if err != nil {
		return err
	}
	return s.repo.Delete(ctx, item.ID)
}

// ownedItem loads a cart line and hides foreign lines as not found.
func (s *Service) ownedItem(ctx context.Context, userID, itemID string) (*models.CartItem, error) {
	item, err := s.repo.Get(ctx, itemID)
	if err != nil {
		return nil, err
	}
	if item.UserID != userID {
		return nil, errors.New(errors.CodeNotFound, "cart item not found")
	}
	return item, nil
}

func summarize(items []models.CartItem) Summary {
	sum := Summary{Subtotal: decimal.Zero}
	for _, item := range items {
		sum.TotalItems += item.Quantity
		price := item.UnitPriceSnapshot
		if item.Product != nil {
			price = item.Product.EffectivePrice()
		}
		sum.Subtotal = sum.Subtotal.Add(price.Mul(decimal.NewFromInt(int64(item.Quantity))))
	}
	return sum
}
