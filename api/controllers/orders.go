package controllers

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/greenbasket/greenbasket-backend/api/middleware"
	"github.com/greenbasket/greenbasket-backend/api/responses"
	"github.com/greenbasket/greenbasket-backend/internal/orders"
	"github.com/greenbasket/greenbasket-backend/pkg/db/models"
	"github.com/greenbasket/greenbasket-backend/pkg/enums"
	"github.com/greenbasket/greenbasket-backend/pkg/errors"
	"github.com/greenbasket/greenbasket-backend/pkg/pagination"
)

type ordersService interface {
	List(ctx context.Context, viewer orders.Viewer, status enums.OrderStatus, p pagination.Params) (*orders.ListResult, error)
	Get(ctx context.Context, viewer orders.Viewer, orderID string) (*models.Order, error)
}

// Orders serves order history for customers and vendors.
type Orders struct {
	svc ordersService
}

func NewOrders(svc ordersService) *Orders {
	return &Orders{svc: svc}
}

func viewerFromContext(ctx context.Context) (orders.Viewer, error) {
	userID, ok := middleware.UserIDFromContext(ctx)
	if !ok {
		return orders.Viewer{}, errors.New(errors.CodeUnauthorized, "missing user")
	}
	role, ok := middleware.UserRoleFromContext(ctx)
	if !ok {
		role = enums.UserRoleCustomer
	}
	vendorID, _ := middleware.VendorIDFromContext(ctx)
	return orders.Viewer{UserID: userID, Role: role, VendorID: vendorID}, nil
}

func (o *Orders) List(w http.ResponseWriter, r *http.Request) {
	viewer, err := viewerFromContext(r.Context())
	if err != nil {
		responses.WriteError(w, r, err)
		return
	}

	status := enums.OrderStatus(r.URL.Query().Get("status"))
	result, err := o.svc.List(r.Context(), viewer, status, pagination.FromQuery(r.URL.Query()))
	if err != nil {
		responses.WriteError(w, r, err)
		return
	}
	responses.WriteSuccess(w, http.StatusOK, result)
}

func (o *Orders) Get(w http.ResponseWriter, r *http.Request) {
	viewer, err := viewerFromContext(r.Context())
	if err != nil {
		responses.WriteError(w, r, err)
		return
	}

	order, err := o.svc.Get(r.Context(), viewer, chi.URLParam(r, "orderId"))
	if err != nil {
		responses.WriteError(w, r, err)
		return
	}
	responses.WriteSuccess(w, http.StatusOK, order)
}
