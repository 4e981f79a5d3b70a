package orders

import (
	"context"

	"github.com/greenbasket/greenbasket-backend/pkg/db/models"
	"github.com/greenbasket/greenbasket-backend/pkg/enums"
	"github.com/greenbasket/greenbasket-backend/pkg/errors"
	"github.com/greenbasket/greenbasket-backend/pkg/pagination"
)

type orderRepo interface {
	List(ctx context.Context, f Filter, p pagination.Params) ([]models.Order, int64, error)
	GetByID(ctx context.Context, id string) (*models.Order, error)
}

// Service serves order history scoped by the caller's role: customers
// see their own orders, vendors see orders placed against their store.
type Service struct {
	repo orderRepo
}

func NewService(repo orderRepo) *Service {
	return &Service{repo: repo}
}

// Viewer identifies who is asking.
type Viewer struct {
	UserID   string
	Role     enums.UserRole
	VendorID string
}

// ListResult is a page of orders with its pagination envelope.
type ListResult struct {
	Orders []models.Order  `json:"orders"`
	Meta   pagination.Meta `json:"meta"`
}

func (s *Service) List(ctx context.Context, viewer Viewer, status enums.OrderStatus, p pagination.Params) (*ListResult, error) {
	if status != "" && !status.IsValid() {
		return nil, errors.New(errors.CodeValidation, "unknown order status").
			WithDetails(map[string]any{"status": string(status)})
	}

	f := Filter{Status: status}
	switch viewer.Role {
	case enums.UserRoleVendor:
		if viewer.VendorID == "" {
			return nil, errors.New(errors.CodeForbidden, "vendor account not provisioned")
		}
		f.VendorID = viewer.VendorID
	case enums.UserRoleAdmin:
		// admins see everything
	default:
		f.UserID = viewer.UserID
	}

	orders, total, err := s.repo.List(ctx, f, p)
	if err != nil {
		return nil, err
	}
	return &ListResult{Orders: orders, Meta: pagination.NewMeta(p, total)}, nil
}

// Get loads one order, hiding orders the viewer may not see.
func (s *Service) Get(ctx context.Context, viewer Viewer, orderID string) (*models.Order, error) {
	order, err := s.repo.GetByID(ctx, orderID)
	if err != nil {
		return nil, err
	}

	switch viewer.Role {
	case enums.UserRoleAdmin:
		return order, nil
	case enums.UserRoleVendor:
		if order.VendorID == viewer.VendorID {
			return order, nil
		}
	default:
		if order.UserID == viewer.UserID {
			return order, nil
		}
	}
	return nil, errors.New(errors.CodeNotFound, "order not found")
}
