package controllers

import (
	"context"
	"io"
	"net/http"

	"github.com/greenbasket/greenbasket-backend/api/responses"
	"github.com/greenbasket/greenbasket-backend/pkg/errors"
)

const (
	razorpaySignatureHeader = "X-Razorpay-Signature"
	maxWebhookBytes         = 1 << 20
)

type webhookService interface {
	Handle(ctx context.Context, body []byte, signature string) error
}

// Webhooks receives payment gateway callbacks.
type Webhooks struct {
	razorpay webhookService
}

func NewWebhooks(razorpay webhookService) *Webhooks {
	return &Webhooks{razorpay: razorpay}
}

// Razorpay handles a delivery. The body is read raw because the
// signature covers the exact bytes sent.
func (h *Webhooks) Razorpay(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxWebhookBytes))
	if err != nil {
		responses.WriteError(w, r, errors.Wrap(errors.CodeValidation, "unreadable webhook body", err))
		return
	}

	signature := r.Header.Get(razorpaySignatureHeader)
	if signature == "" {
		responses.WriteError(w, r, errors.New(errors.CodeUnauthorized, "missing webhook signature"))
		return
	}

	if err := h.razorpay.Handle(r.Context(), body, signature); err != nil {
		responses.WriteError(w, r, err)
		return
	}
	responses.WriteSuccess(w, http.StatusOK, map[string]string{"status": "processed"})
}
