package checkout

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/greenbasket/greenbasket-backend/internal/checkout/helpers"
	"github.com/greenbasket/greenbasket-backend/internal/checkout/reservation"
	"github.com/greenbasket/greenbasket-backend/pkg/config"
	"github.com/greenbasket/greenbasket-backend/pkg/db/models"
	"github.com/greenbasket/greenbasket-backend/pkg/enums"
	"github.com/greenbasket/greenbasket-backend/pkg/errors"
	"github.com/greenbasket/greenbasket-backend/pkg/logger"
	"github.com/greenbasket/greenbasket-backend/pkg/metrics"
	"github.com/greenbasket/greenbasket-backend/pkg/razorpay"
)

// CartStore is the slice of the cart layer checkout needs.
type CartStore interface {
	ListByUser(ctx context.Context, userID string) ([]models.CartItem, error)
	ClearUser(ctx context.Context, userID string) error
}

// AddressStore resolves the delivery address with ownership enforced.
type AddressStore interface {
	GetOwned(ctx context.Context, id, userID string) (*models.Address, error)
}

// OrderCreator writes an order with its nested rows inside the
// caller's transaction.
type OrderCreator interface {
	Create(ctx context.Context, tx *gorm.DB, order *models.Order) error
}

// TxRunner scopes a function to a database transaction.
type TxRunner interface {
	WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error
}

// Gateway is the payment provider surface checkout depends on.
type Gateway interface {
	CreateOrder(ctx context.Context, params razorpay.OrderParams) (*razorpay.GatewayOrder, error)
	Key() string
}

// ReserveFunc reserves stock for a vendor group inside a transaction.
type ReserveFunc func(tx *gorm.DB, items []models.CartItem) error

// Deps collects the collaborators the checkout service orchestrates.
type Deps struct {
	Cart      CartStore
	Addresses AddressStore
	Orders    OrderCreator
	Tx        TxRunner
	Gateway   Gateway
	Reserve   ReserveFunc
}

// Service turns a cart into per-vendor orders. Each vendor group is
// priced, registered with the payment gateway when the method needs
// one, and committed in its own transaction. A failing group aborts
// the run but leaves orders from earlier groups in place; the cart is
// cleared only after every group succeeds.
type Service struct {
	deps   Deps
	policy config.CheckoutConfig
}

func NewService(deps Deps, policy config.CheckoutConfig) *Service {
	if deps.Reserve == nil {
		deps.Reserve = reservation.ReserveAll
	}
	return &Service{deps: deps, policy: policy}
}

// Request is a validated checkout submission.
type Request struct {
	AddressID     string
	PaymentMethod enums.PaymentMethod
	DeliveryDate  *time.Time
	DeliverySlot  enums.DeliverySlot
	DeliveryNotes string
}

// Result is what the client needs to finish payment.
type Result struct {
	Orders      []models.Order `json:"orders"`
	RazorpayKey string         `json:"razorpay_key,omitempty"`
}

func (s *Service) Checkout(ctx context.Context, userID string, req Request) (*Result, error) {
	started := time.Now()
	result, err := s.checkout(ctx, userID, req)
	metrics.CheckoutDuration.Observe(time.Since(started).Seconds())
	if err != nil {
		metrics.CheckoutAttempts.WithLabelValues(string(errors.As(err).Code())).Inc()
		return nil, err
	}
	metrics.CheckoutAttempts.WithLabelValues("success").Inc()
	return result, nil
}

func (s *Service) checkout(ctx context.Context, userID string, req Request) (*Result, error) {
	if !req.PaymentMethod.IsValid() {
		return nil, errors.New(errors.CodeValidation, "unknown payment method").
			WithDetails(map[string]any{"payment_method": string(req.PaymentMethod)})
	}
	if req.DeliverySlot != "" && !req.DeliverySlot.IsValid() {
		return nil, errors.New(errors.CodeValidation, "unknown delivery slot").
			WithDetails(map[string]any{"delivery_slot": string(req.DeliverySlot)})
	}

	items, err := s.deps.Cart.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	if len(items) == 0 {
		return nil, errors.New(errors.CodeEmptyCart, "cannot check out an empty cart")
	}

	address, err := s.deps.Addresses.GetOwned(ctx, req.AddressID, userID)
	if err != nil {
		return nil, err
	}

	groups := helpers.GroupByVendor(items)
	log := logger.FromContext(ctx)

	created := make([]models.Order, 0, len(groups))
	for _, group := range groups {
		order, err := s.placeVendorOrder(ctx, userID, address, group, req)
		if err != nil {
			log.Error().Err(err).
				Str("vendor_id", group.VendorID).
				Int("orders_committed", len(created)).
				Msg("checkout aborted mid-run")
			return nil, err
		}
		created = append(created, *order)
		metrics.OrdersCreated.WithLabelValues(string(req.PaymentMethod)).Inc()
	}

	if err := s.deps.Cart.ClearUser(ctx, userID); err != nil {
		return nil, err
	}

	log.Info().
		Int("orders", len(created)).
		Str("payment_method", string(req.PaymentMethod)).
		Msg("checkout completed")

	result := &Result{Orders: created}
	if req.PaymentMethod.RequiresGateway() {
		result.RazorpayKey = s.deps.Gateway.Key()
	}
	return result, nil
}

// placeVendorOrder prices one vendor group, registers it with the
// gateway when needed, then reserves stock and writes the order in a
// single transaction. The gateway call happens before any stock is
// touched so a gateway failure never strands a reservation.
func (s *Service) placeVendorOrder(ctx context.Context, userID string, address *models.Address, group helpers.VendorGroup, req Request) (*models.Order, error) {
	totals := helpers.ComputeTotals(group.Items, s.policy)
	orderNumber := helpers.NewOrderNumber()

	var gatewayOrderID string
	if req.PaymentMethod.RequiresGateway() {
		gw, err := s.deps.Gateway.CreateOrder(ctx, razorpay.OrderParams{
			AmountPaise: totals.AmountPaise(),
			Currency:    "INR",
			Receipt:     orderNumber,
			Notes: map[string]any{
				"user_id":   userID,
				"vendor_id": group.VendorID,
			},
		})
		if err != nil {
			metrics.GatewayErrors.Inc()
			return nil, err
		}
		gatewayOrderID = gw.ID
	}

	paymentStatus := enums.PaymentStatusProcessing
	if req.PaymentMethod == enums.PaymentMethodCOD {
		paymentStatus = enums.PaymentStatusPending
	}

	order := &models.Order{
		OrderNumber:       orderNumber,
		UserID:            userID,
		VendorID:          group.VendorID,
		AddressID:         address.ID,
		Subtotal:          totals.Subtotal,
		DeliveryFee:       totals.DeliveryFee,
		Tax:               totals.Tax,
		Total:             totals.Total,
		Status:            enums.OrderStatusPending,
		PaymentMethod:     req.PaymentMethod,
		PaymentStatus:     paymentStatus,
		RazorpayOrderID:   gatewayOrderID,
		DeliveryDate:      req.DeliveryDate,
		DeliverySlot:      req.DeliverySlot,
		DeliveryNotes:     req.DeliveryNotes,
		EstimatedDelivery: time.Now().AddDate(0, 0, s.policy.EstimatedDeliveryDays),
		Items:             orderItems(group.Items),
		Tracking: []models.OrderTracking{
			{Status: enums.OrderStatusPending, Message: "Order placed successfully"},
		},
	}

	err := s.deps.Tx.WithTx(ctx, func(tx *gorm.DB) error {
		if err := s.deps.Reserve(tx, group.Items); err != nil {
			return err
		}
		return s.deps.Orders.Create(ctx, tx, order)
	})
	if err != nil {
		coded := errors.As(err)
		details := map[string]any{"vendor_id": group.VendorID}
		for k, v := range coded.Details() {
			details[k] = v
		}
		return nil, errors.Wrap(coded.Code(), coded.Message(), err).WithDetails(details)
	}
	return order, nil
}

func orderItems(items []models.CartItem) []models.OrderItem {
	out := make([]models.OrderItem, 0, len(items))
	for _, item := range items {
		price := item.UnitPriceSnapshot
		name := ""
		var unit enums.ProductUnit
		if item.Product != nil {
			price = item.Product.EffectivePrice()
			name = item.Product.Name
			unit = item.Product.Unit
		}
		out = append(out, models.OrderItem{
			ProductID:   item.ProductID,
			ProductName: name,
			Unit:        unit,
			UnitPrice:   price,
			Quantity:    item.Quantity,
			LineTotal:   price.Mul(decimal.NewFromInt(int64(item.Quantity))),
		})
	}
	return out
}
