package razorpay

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"

	razorpaysdk "github.com/razorpay/razorpay-go"

	"github.com/greenbasket/greenbasket-backend/pkg/config"
	"github.com/greenbasket/greenbasket-backend/pkg/errors"
)

// OrderParams is the input for creating a gateway payment order.
type OrderParams struct {
	AmountPaise int64
	Currency    string
	Receipt     string
	Notes       map[string]any
}

// GatewayOrder is the subset of the gateway response the checkout
// flow needs to hand to the client.
type GatewayOrder struct {
	ID          string
	AmountPaise int64
	Currency    string
}

// Client wraps the Razorpay SDK behind the methods checkout uses.
type Client struct {
	sdk           *razorpaysdk.Client
	keyID         string
	webhookSecret string
}

func New(cfg config.RazorpayConfig) *Client {
	return &Client{
		sdk:           razorpaysdk.NewClient(cfg.KeyID, cfg.KeySecret),
		keyID:         cfg.KeyID,
		webhookSecret: cfg.WebhookSecret,
	}
}

// Key returns the public key ID the frontend needs to open the
// payment widget.
func (c *Client) Key() string {
	return c.keyID
}

// CreateOrder registers a payment order with the gateway. Amounts are
// in paise per the Razorpay API.
func (c *Client) CreateOrder(ctx context.Context, params OrderParams) (*GatewayOrder, error) {
	if err := ctx.Err(); err != nil {
		return nil, errors.Wrap(errors.CodePaymentGateway, "context cancelled", err)
	}

	data := map[string]any{
		"amount":   params.AmountPaise,
		"currency": params.Currency,
		"receipt":  params.Receipt,
	}
	if len(params.Notes) > 0 {
		data["notes"] = params.Notes
	}

	body, err := c.sdk.Order.Create(data, nil)
	if err != nil {
		return nil, errors.Wrap(errors.CodePaymentGateway, "create gateway order", err).
			WithDetails(map[string]any{"receipt": params.Receipt})
	}

	id, _ := body["id"].(string)
	if id == "" {
		return nil, errors.New(errors.CodePaymentGateway, "gateway returned no order id")
	}

	return &GatewayOrder{
		ID:          id,
		AmountPaise: params.AmountPaise,
		Currency:    params.Currency,
	}, nil
}

// VerifyWebhookSignature checks the HMAC-SHA256 signature Razorpay
// sends on webhook deliveries against the raw request body.
func (c *Client) VerifyWebhookSignature(body []byte, signature string) bool {
	return VerifySignature(body, signature, c.webhookSecret)
}

// VerifySignature compares the expected HMAC-SHA256 hex digest of body
// under secret with the provided signature in constant time.
func VerifySignature(body []byte, signature, secret string) bool {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write(body)
	expected := hex.EncodeToString(mac.Sum(nil))
	return hmac.Equal([]byte(expected), []byte(signature))
}
