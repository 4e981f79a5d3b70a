package controllers

import (
	"context"
	"net/http"
	"time"

	"github.com/greenbasket/greenbasket-backend/api/middleware"
	"github.com/greenbasket/greenbasket-backend/api/responses"
	"github.com/greenbasket/greenbasket-backend/api/validators"
	"github.com/greenbasket/greenbasket-backend/internal/checkout"
	"github.com/greenbasket/greenbasket-backend/pkg/enums"
	"github.com/greenbasket/greenbasket-backend/pkg/errors"
)

type checkoutService interface {
	Checkout(ctx context.Context, userID string, req checkout.Request) (*checkout.Result, error)
}

// Checkout turns the caller's cart into orders.
type Checkout struct {
	svc checkoutService
}

func NewCheckout(svc checkoutService) *Checkout {
	return &Checkout{svc: svc}
}

type checkoutRequest struct {
	AddressID     string `json:"address_id" validate:"required,uuid4"`
	PaymentMethod string `json:"payment_method" validate:"required,oneof=razorpay cod"`
	DeliveryDate  string `json:"delivery_date" validate:"omitempty,datetime=2006-01-02"`
	DeliverySlot  string `json:"delivery_slot" validate:"omitempty,oneof=morning afternoon evening"`
	DeliveryNotes string `json:"delivery_notes" validate:"omitempty,max=500"`
}

func (c *Checkout) Create(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		responses.WriteError(w, r, errors.New(errors.CodeUnauthorized, "missing user"))
		return
	}

	var req checkoutRequest
	if err := validators.DecodeJSONBody(r, &req); err != nil {
		responses.WriteError(w, r, err)
		return
	}

	var deliveryDate *time.Time
	if req.DeliveryDate != "" {
		parsed, err := time.Parse("2006-01-02", req.DeliveryDate)
		if err != nil {
			responses.WriteError(w, r, errors.Wrap(errors.CodeValidation, "invalid delivery date", err))
			return
		}
		deliveryDate = &parsed
	}

	result, err := c.svc.Checkout(r.Context(), userID, checkout.Request{
		AddressID:     req.AddressID,
		PaymentMethod: enums.PaymentMethod(req.PaymentMethod),
		DeliveryDate:  deliveryDate,
		DeliverySlot:  enums.DeliverySlot(req.DeliverySlot),
		DeliveryNotes: req.DeliveryNotes,
	})
	if err != nil {
		responses.WriteError(w, r, err)
		return
	}
	responses.WriteSuccess(w, http.StatusCreated, result)
}
