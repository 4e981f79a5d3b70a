package controllers

import (
	"context"
	"net/http"

	"github.com/greenbasket/greenbasket-backend/api/middleware"
	"github.com/greenbasket/greenbasket-backend/api/responses"
	"github.com/greenbasket/greenbasket-backend/api/validators"
	"github.com/greenbasket/greenbasket-backend/internal/cart"
	"github.com/greenbasket/greenbasket-backend/pkg/db/models"
	"github.com/greenbasket/greenbasket-backend/pkg/errors"
)

type cartService interface {
	List(ctx context.Context, userID string) (*cart.View, error)
	Add(ctx context.Context, userID, productID string, quantity int) (*models.CartItem, error)
	UpdateQuantity(ctx context.Context, userID, itemID string, quantity int) (*models.CartItem, error)
	Remove(ctx context.Context, userID, itemID string) error
}

// Cart exposes the authenticated user's cart.
type Cart struct {
	svc cartService
}

func NewCart(svc cartService) *Cart {
	return &Cart{svc: svc}
}

func (c *Cart) Get(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		responses.WriteError(w, r, errors.New(errors.CodeUnauthorized, "missing user"))
		return
	}

	view, err := c.svc.List(r.Context(), userID)
	if err != nil {
		responses.WriteError(w, r, err)
		return
	}
	responses.WriteSuccess(w, http.StatusOK, view)
}

type addCartItemRequest struct {
	ProductID string `json:"product_id" validate:"required,uuid4"`
	Quantity  int    `json:"quantity" validate:"required,gt=0"`
}

func (c *Cart) Add(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		responses.WriteError(w, r, errors.New(errors.CodeUnauthorized, "missing user"))
		return
	}

	var req addCartItemRequest
	if err := validators.DecodeJSONBody(r, &req); err != nil {
		responses.WriteError(w, r, err)
		return
	}

	item, err := c.svc.Add(r.Context(), userID, req.ProductID, req.Quantity)
	if err != nil {
		responses.WriteError(w, r, err)
		return
	}
	responses.WriteSuccess(w, http.StatusCreated, item)
}

type updateCartItemRequest struct {
	ItemID   string `json:"item_id" validate:"required,uuid4"`
	Quantity int    `json:"quantity" validate:"required,gt=0"`
}

func (c *Cart) Update(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		responses.WriteError(w, r, errors.New(errors.CodeUnauthorized, "missing user"))
		return
	}

	var req updateCartItemRequest
	if err := validators.DecodeJSONBody(r, &req); err != nil {
		responses.WriteError(w, r, err)
		return
	}

	item, err := c.svc.UpdateQuantity(r.Context(), userID, req.ItemID, req.Quantity)
	if err != nil {
		responses.WriteError(w, r, err)
		return
	}
	responses.WriteSuccess(w, http.StatusOK, item)
}

func (c *Cart) Remove(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		responses.WriteError(w, r, errors.New(errors.CodeUnauthorized, "missing user"))
		return
	}

	itemID := r.URL.Query().Get("itemId")
	if itemID == "" {
		responses.WriteError(w, r, errors.New(errors.CodeValidation, "itemId query parameter is required"))
		return
	}

	if err := c.svc.Remove(r.Context(), userID, itemID); err != nil {
		responses.WriteError(w, r, err)
		return
	}
	responses.WriteSuccess(w, http.StatusOK, map[string]string{"removed": itemID})
}
