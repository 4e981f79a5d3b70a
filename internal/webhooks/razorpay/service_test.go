package razorpay

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"testing"

	"github.com/greenbasket/greenbasket-backend/pkg/db/models"
	"github.com/greenbasket/greenbasket-backend/pkg/enums"
	"github.com/greenbasket/greenbasket-backend/pkg/errors"
	"github.com/greenbasket/greenbasket-backend/pkg/razorpay"
)

const testSecret = "whsec_unit"

type secretVerifier struct{}

func (secretVerifier) VerifyWebhookSignature(body []byte, signature string) bool {
	return razorpay.VerifySignature(body, signature, testSecret)
}

type paymentUpdate struct {
	orderID   string
	status    enums.OrderStatus
	payment   enums.PaymentStatus
	paymentID string
}

type stubOrders struct {
	byGatewayID map[string][]models.Order
	updates     []paymentUpdate
	tracking    []models.OrderTracking
}

func (s *stubOrders) FindByRazorpayOrderID(_ context.Context, id string) ([]models.Order, error) {
	return s.byGatewayID[id], nil
}

func (s *stubOrders) UpdatePayment(_ context.Context, orderID string, status enums.OrderStatus, payment enums.PaymentStatus, paymentID string) error {
	s.updates = append(s.updates, paymentUpdate{orderID, status, payment, paymentID})
	return nil
}

func (s *stubOrders) AppendTracking(_ context.Context, event *models.OrderTracking) error {
	s.tracking = append(s.tracking, *event)
	return nil
}

func signedBody(event, orderID, paymentID string) ([]byte, string) {
	body := []byte(fmt.Sprintf(
		`{"event":%q,"payload":{"payment":{"entity":{"id":%q,"order_id":%q}}}}`,
		event, paymentID, orderID))
	return body, testSignature(body)
}

// testSignature mirrors the gateway: HMAC-SHA256 hex over the raw body.
func testSignature(body []byte) string {
	mac := hmac.New(sha256.New, []byte(testSecret))
	mac.Write(body)
	return hex.EncodeToString(mac.Sum(nil))
}

func TestHandleRejectsBadSignature(t *testing.T) {
	t.Parallel()

	svc := NewService(secretVerifier{}, &stubOrders{})
	body, _ := signedBody("payment.captured", "order_x", "pay_x")

	err := svc.Handle(context.Background(), body, "deadbeef")
	if !errors.Is(err, errors.CodeUnauthorized) {
		t.Fatalf("err = %v, want UNAUTHORIZED", err)
	}
}

func TestHandlePaymentCaptured(t *testing.T) {
	t.Parallel()

	store := &stubOrders{byGatewayID: map[string][]models.Order{
		"order_x": {{ID: "order-1"}},
	}}
	svc := NewService(secretVerifier{}, store)

	body, sig := signedBody("payment.captured", "order_x", "pay_123")
	if err := svc.Handle(context.Background(), body, sig); err != nil {
		t.Fatalf("Handle: %v", err)
	}

	if len(store.updates) != 1 {
		t.Fatalf("updates = %d, want 1", len(store.updates))
	}
	up := store.updates[0]
	if up.status != enums.OrderStatusConfirmed || up.payment != enums.PaymentStatusCompleted {
		t.Fatalf("update = %+v, want CONFIRMED/COMPLETED", up)
	}
	if up.paymentID != "pay_123" {
		t.Fatalf("payment id = %s, want pay_123", up.paymentID)
	}
	if len(store.tracking) != 1 || store.tracking[0].Message != "Payment received and order confirmed" {
		t.Fatalf("tracking = %+v", store.tracking)
	}
}

func TestHandlePaymentFailed(t *testing.T) {
	t.Parallel()

	store := &stubOrders{byGatewayID: map[string][]models.Order{
		"order_x": {{ID: "order-1"}},
	}}
	svc := NewService(secretVerifier{}, store)

	body, sig := signedBody("payment.failed", "order_x", "pay_456")
	if err := svc.Handle(context.Background(), body, sig); err != nil {
		t.Fatalf("Handle: %v", err)
	}

	up := store.updates[0]
	if up.status != enums.OrderStatusCancelled || up.payment != enums.PaymentStatusFailed {
		t.Fatalf("update = %+v, want CANCELLED/FAILED", up)
	}
}

func TestHandleIgnoresUnknownEvent(t *testing.T) {
	t.Parallel()

	store := &stubOrders{}
	svc := NewService(secretVerifier{}, store)

	body, sig := signedBody("refund.processed", "order_x", "pay_x")
	if err := svc.Handle(context.Background(), body, sig); err != nil {
		t.Fatalf("Handle: %v", err)
	}
	if len(store.updates) != 0 {
		t.Fatal("unknown event mutated orders")
	}
}

func TestHandleUnknownGatewayOrder(t *testing.T) {
	t.Parallel()

	svc := NewService(secretVerifier{}, &stubOrders{})

	body, sig := signedBody("payment.captured", "order_missing", "pay_x")
	err := svc.Handle(context.Background(), body, sig)
	if !errors.Is(err, errors.CodeNotFound) {
		t.Fatalf("err = %v, want NOT_FOUND so the gateway retries", err)
	}
}
