package razorpay

import (
	"context"
	"encoding/json"

	"github.com/greenbasket/greenbasket-backend/pkg/db/models"
	"github.com/greenbasket/greenbasket-backend/pkg/enums"
	"github.com/greenbasket/greenbasket-backend/pkg/errors"
	"github.com/greenbasket/greenbasket-backend/pkg/logger"
)

const (
	eventPaymentCaptured = "payment.captured"
	eventPaymentFailed   = "payment.failed"
)

type signatureVerifier interface {
	VerifyWebhookSignature(body []byte, signature string) bool
}

type orderStore interface {
	FindByRazorpayOrderID(ctx context.Context, razorpayOrderID string) ([]models.Order, error)
	UpdatePayment(ctx context.Context, orderID string, status enums.OrderStatus, payment enums.PaymentStatus, paymentID string) error
	AppendTracking(ctx context.Context, event *models.OrderTracking) error
}

// Service applies Razorpay payment events to orders. Deliveries are
// authenticated by the HMAC signature over the raw body; unknown event
// types are acknowledged and dropped so the gateway stops retrying.
type Service struct {
	verifier signatureVerifier
	orders   orderStore
}

func NewService(verifier signatureVerifier, orders orderStore) *Service {
	return &Service{verifier: verifier, orders: orders}
}

type event struct {
	Event   string `json:"event"`
	Payload struct {
		Payment struct {
			Entity struct {
				ID      string `json:"id"`
				OrderID string `json:"order_id"`
				Status  string `json:"status"`
			} `json:"entity"`
		} `json:"payment"`
	} `json:"payload"`
}

// Handle verifies and applies one webhook delivery.
func (s *Service) Handle(ctx context.Context, body []byte, signature string) error {
	if !s.verifier.VerifyWebhookSignature(body, signature) {
		return errors.New(errors.CodeUnauthorized, "webhook signature mismatch")
	}

	var evt event
	if err := json.Unmarshal(body, &evt); err != nil {
		return errors.Wrap(errors.CodeValidation, "malformed webhook payload", err)
	}

	log := logger.FromContext(ctx).With().
		Str("event", evt.Event).
		Str("razorpay_order_id", evt.Payload.Payment.Entity.OrderID).
		Logger()

	switch evt.Event {
	case eventPaymentCaptured:
		return s.applyOutcome(ctx, evt,
			enums.OrderStatusConfirmed, enums.PaymentStatusCompleted,
			"Payment received and order confirmed")
	case eventPaymentFailed:
		return s.applyOutcome(ctx, evt,
			enums.OrderStatusCancelled, enums.PaymentStatusFailed,
			"Payment failed and order cancelled")
	default:
		log.Debug().Msg("ignoring webhook event")
		return nil
	}
}

func (s *Service) applyOutcome(ctx context.Context, evt event, status enums.OrderStatus, payment enums.PaymentStatus, message string) error {
	entity := evt.Payload.Payment.Entity
	if entity.OrderID == "" {
		return errors.New(errors.CodeValidation, "webhook payload missing order id")
	}

	orders, err := s.orders.FindByRazorpayOrderID(ctx, entity.OrderID)
	if err != nil {
		return err
	}
	if len(orders) == 0 {
		// Deliveries can outrun the checkout commit; let the gateway retry.
		return errors.New(errors.CodeNotFound, "no orders for gateway order").
			WithDetails(map[string]any{"razorpay_order_id": entity.OrderID})
	}

	for _, order := range orders {
		if err := s.orders.UpdatePayment(ctx, order.ID, status, payment, entity.ID); err != nil {
			return err
		}
		if err := s.orders.AppendTracking(ctx, &models.OrderTracking{
			OrderID: order.ID,
			Status:  status,
			Message: message,
		}); err != nil {
			return err
		}
	}

	log := logger.FromContext(ctx)
	log.Info().
		Str("event", evt.Event).
		Int("orders", len(orders)).
		Msg("payment event applied")
	return nil
}
