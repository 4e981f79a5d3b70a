package checkout

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/greenbasket/greenbasket-backend/pkg/config"
	"github.com/greenbasket/greenbasket-backend/pkg/db/models"
	"github.com/greenbasket/greenbasket-backend/pkg/enums"
	"github.com/greenbasket/greenbasket-backend/pkg/errors"
	"github.com/greenbasket/greenbasket-backend/pkg/razorpay"
)

type stubCart struct {
	items   []models.CartItem
	cleared bool
}

func (s *stubCart) ListByUser(_ context.Context, _ string) ([]models.CartItem, error) {
	return s.items, nil
}

func (s *stubCart) ClearUser(_ context.Context, _ string) error {
	s.cleared = true
	return nil
}

type stubAddresses struct {
	address *models.Address
	err     error
}

func (s *stubAddresses) GetOwned(_ context.Context, _, _ string) (*models.Address, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.address, nil
}

type stubOrderCreator struct {
	created []*models.Order
	err     error
}

func (s *stubOrderCreator) Create(_ context.Context, _ *gorm.DB, order *models.Order) error {
	if s.err != nil {
		return s.err
	}
	order.ID = uuid.NewString()
	s.created = append(s.created, order)
	return nil
}

type stubTx struct{}

func (stubTx) WithTx(_ context.Context, fn func(tx *gorm.DB) error) error {
	return fn(nil)
}

type stubGateway struct {
	calls  []razorpay.OrderParams
	failOn int // 1-based call index that fails; 0 means never
}

func (s *stubGateway) CreateOrder(_ context.Context, params razorpay.OrderParams) (*razorpay.GatewayOrder, error) {
	s.calls = append(s.calls, params)
	if s.failOn == len(s.calls) {
		return nil, errors.New(errors.CodePaymentGateway, "gateway down")
	}
	return &razorpay.GatewayOrder{
		ID:          "order_rzp_" + uuid.NewString()[:8],
		AmountPaise: params.AmountPaise,
		Currency:    params.Currency,
	}, nil
}

func (s *stubGateway) Key() string { return "rzp_test_key" }

func testPolicy() config.CheckoutConfig {
	return config.CheckoutConfig{
		FreeDeliveryThreshold: decimal.NewFromInt(500),
		DeliveryFee:           decimal.NewFromInt(40),
		TaxRate:               decimal.RequireFromString("0.05"),
		EstimatedDeliveryDays: 2,
	}
}

func testItem(vendorID, name, price string, qty, stock int) models.CartItem {
	p := decimal.RequireFromString(price)
	return models.CartItem{
		ID:                uuid.NewString(),
		UserID:            "user-1",
		ProductID:         uuid.NewString(),
		VendorID:          vendorID,
		Quantity:          qty,
		UnitPriceSnapshot: p,
		Product: &models.Product{
			VendorID: vendorID,
			Name:     name,
			Price:    p,
			Stock:    stock,
			IsActive: true,
		},
	}
}

type fixture struct {
	cart    *stubCart
	orders  *stubOrderCreator
	gateway *stubGateway
	svc     *Service
}

func newFixture(items []models.CartItem, reserve ReserveFunc) *fixture {
	f := &fixture{
		cart:    &stubCart{items: items},
		orders:  &stubOrderCreator{},
		gateway: &stubGateway{},
	}
	f.svc = NewService(Deps{
		Cart:      f.cart,
		Addresses: &stubAddresses{address: &models.Address{ID: "addr-1", UserID: "user-1"}},
		Orders:    f.orders,
		Tx:        stubTx{},
		Gateway:   f.gateway,
		Reserve:   reserve,
	}, testPolicy())
	return f
}

func noReserve(_ *gorm.DB, _ []models.CartItem) error { return nil }

func razorpayRequest() Request {
	return Request{AddressID: "addr-1", PaymentMethod: enums.PaymentMethodRazorpay}
}

func TestCheckoutEmptyCart(t *testing.T) {
	t.Parallel()

	f := newFixture(nil, noReserve)

	_, err := f.svc.Checkout(context.Background(), "user-1", razorpayRequest())
	if !errors.Is(err, errors.CodeEmptyCart) {
		t.Fatalf("err = %v, want EMPTY_CART", err)
	}
	if len(f.gateway.calls) != 0 {
		t.Fatal("gateway called for empty cart")
	}
}

func TestCheckoutForeignAddress(t *testing.T) {
	t.Parallel()

	f := newFixture([]models.CartItem{testItem("vendor-a", "Tomatoes", "100", 1, 10)}, noReserve)
	f.svc.deps.Addresses = &stubAddresses{err: errors.New(errors.CodeInvalidAddress, "address does not belong to user")}

	_, err := f.svc.Checkout(context.Background(), "user-1", razorpayRequest())
	if !errors.Is(err, errors.CodeInvalidAddress) {
		t.Fatalf("err = %v, want INVALID_ADDRESS", err)
	}
	if len(f.orders.created) != 0 {
		t.Fatal("orders created despite invalid address")
	}
}

func TestCheckoutInvalidPaymentMethod(t *testing.T) {
	t.Parallel()

	f := newFixture([]models.CartItem{testItem("vendor-a", "Tomatoes", "100", 1, 10)}, noReserve)

	_, err := f.svc.Checkout(context.Background(), "user-1", Request{
		AddressID:     "addr-1",
		PaymentMethod: enums.PaymentMethod("paypal"),
	})
	if !errors.Is(err, errors.CodeValidation) {
		t.Fatalf("err = %v, want VALIDATION_ERROR", err)
	}
}

func TestCheckoutSingleVendor(t *testing.T) {
	t.Parallel()

	// 100 + 3*50 = 250 subtotal, below the free delivery threshold.
	items := []models.CartItem{
		testItem("vendor-a", "Organic Apples", "100", 1, 10),
		testItem("vendor-a", "Organic Spinach", "50", 3, 10),
	}
	f := newFixture(items, noReserve)

	result, err := f.svc.Checkout(context.Background(), "user-1", razorpayRequest())
	if err != nil {
		t.Fatalf("Checkout: %v", err)
	}
	if len(result.Orders) != 1 {
		t.Fatalf("orders = %d, want 1", len(result.Orders))
	}

	order := result.Orders[0]
	assertDecimal(t, "subtotal", order.Subtotal, "250")
	assertDecimal(t, "delivery fee", order.DeliveryFee, "40")
	assertDecimal(t, "tax", order.Tax, "12.5")
	assertDecimal(t, "total", order.Total, "302.5")
	if order.Status != enums.OrderStatusPending {
		t.Fatalf("status = %s, want PENDING", order.Status)
	}
	if order.PaymentStatus != enums.PaymentStatusProcessing {
		t.Fatalf("payment status = %s, want PROCESSING", order.PaymentStatus)
	}
	if len(order.Items) != 2 {
		t.Fatalf("order items = %d, want 2", len(order.Items))
	}
	if len(order.Tracking) != 1 || order.Tracking[0].Message != "Order placed successfully" {
		t.Fatalf("tracking = %+v", order.Tracking)
	}
	if order.RazorpayOrderID == "" {
		t.Fatal("missing gateway order id")
	}

	if len(f.gateway.calls) != 1 {
		t.Fatalf("gateway calls = %d, want 1", len(f.gateway.calls))
	}
	if f.gateway.calls[0].AmountPaise != 30250 {
		t.Fatalf("paise = %d, want 30250", f.gateway.calls[0].AmountPaise)
	}
	if f.gateway.calls[0].Currency != "INR" {
		t.Fatalf("currency = %s, want INR", f.gateway.calls[0].Currency)
	}

	if !f.cart.cleared {
		t.Fatal("cart not cleared after successful checkout")
	}
	if result.RazorpayKey != "rzp_test_key" {
		t.Fatalf("razorpay key = %q", result.RazorpayKey)
	}
}

func TestCheckoutSplitsByVendor(t *testing.T) {
	t.Parallel()

	items := []models.CartItem{
		testItem("vendor-b", "Brown Rice", "600", 1, 10),
		testItem("vendor-a", "Organic Milk", "100", 1, 10),
	}
	f := newFixture(items, noReserve)

	result, err := f.svc.Checkout(context.Background(), "user-1", razorpayRequest())
	if err != nil {
		t.Fatalf("Checkout: %v", err)
	}
	if len(result.Orders) != 2 {
		t.Fatalf("orders = %d, want 2", len(result.Orders))
	}

	// Groups are processed in vendor id order.
	if result.Orders[0].VendorID != "vendor-a" || result.Orders[1].VendorID != "vendor-b" {
		t.Fatalf("vendor order: %s, %s", result.Orders[0].VendorID, result.Orders[1].VendorID)
	}
	assertDecimal(t, "vendor-a fee", result.Orders[0].DeliveryFee, "40")
	assertDecimal(t, "vendor-b fee", result.Orders[1].DeliveryFee, "0")
	if result.Orders[0].OrderNumber == result.Orders[1].OrderNumber {
		t.Fatal("order numbers must be distinct")
	}
	if len(f.gateway.calls) != 2 {
		t.Fatalf("gateway calls = %d, want one per vendor", len(f.gateway.calls))
	}
}

func TestCheckoutCODSkipsGateway(t *testing.T) {
	t.Parallel()

	f := newFixture([]models.CartItem{testItem("vendor-a", "Free Range Eggs", "90", 2, 10)}, noReserve)

	result, err := f.svc.Checkout(context.Background(), "user-1", Request{
		AddressID:     "addr-1",
		PaymentMethod: enums.PaymentMethodCOD,
	})
	if err != nil {
		t.Fatalf("Checkout: %v", err)
	}
	if len(f.gateway.calls) != 0 {
		t.Fatal("gateway called for cash on delivery")
	}
	if result.Orders[0].PaymentStatus != enums.PaymentStatusPending {
		t.Fatalf("payment status = %s, want PENDING", result.Orders[0].PaymentStatus)
	}
	if result.Orders[0].RazorpayOrderID != "" {
		t.Fatal("unexpected gateway order id on COD order")
	}
	if result.RazorpayKey != "" {
		t.Fatal("unexpected razorpay key on COD checkout")
	}
}

func TestCheckoutStockFailureMidRunKeepsEarlierOrders(t *testing.T) {
	t.Parallel()

	items := []models.CartItem{
		testItem("vendor-a", "Organic Milk", "100", 1, 10),
		testItem("vendor-b", "Brown Rice", "200", 1, 0),
	}
	reserve := func(_ *gorm.DB, group []models.CartItem) error {
		if group[0].VendorID == "vendor-b" {
			return errors.New(errors.CodeInsufficientStock, "not enough stock to reserve").
				WithDetails(map[string]any{"product_id": group[0].ProductID})
		}
		return nil
	}
	f := newFixture(items, reserve)

	_, err := f.svc.Checkout(context.Background(), "user-1", razorpayRequest())
	if !errors.Is(err, errors.CodeInsufficientStock) {
		t.Fatalf("err = %v, want INSUFFICIENT_STOCK", err)
	}

	coded := errors.As(err)
	if coded.Details()["vendor_id"] != "vendor-b" {
		t.Fatalf("details = %v, want failing vendor id", coded.Details())
	}

	// vendor-a committed before vendor-b failed.
	if len(f.orders.created) != 1 || f.orders.created[0].VendorID != "vendor-a" {
		t.Fatalf("created = %+v, want only vendor-a order", f.orders.created)
	}
	if f.cart.cleared {
		t.Fatal("cart cleared despite failed checkout")
	}
}

func TestCheckoutGatewayFailureBeforeStock(t *testing.T) {
	t.Parallel()

	reserveCalls := 0
	reserve := func(_ *gorm.DB, _ []models.CartItem) error {
		reserveCalls++
		return nil
	}
	f := newFixture([]models.CartItem{testItem("vendor-a", "Organic Honey", "300", 1, 10)}, reserve)
	f.gateway.failOn = 1

	_, err := f.svc.Checkout(context.Background(), "user-1", razorpayRequest())
	if !errors.Is(err, errors.CodePaymentGateway) {
		t.Fatalf("err = %v, want PAYMENT_GATEWAY_ERROR", err)
	}
	if reserveCalls != 0 {
		t.Fatal("stock reserved before gateway order existed")
	}
	if len(f.orders.created) != 0 {
		t.Fatal("order created despite gateway failure")
	}
	if f.cart.cleared {
		t.Fatal("cart cleared despite gateway failure")
	}
}

func assertDecimal(t *testing.T, field string, got decimal.Decimal, want string) {
	t.Helper()
	if !got.Equal(decimal.RequireFromString(want)) {
		t.Fatalf("%s = %s, want %s", field, got, want)
	}
}
