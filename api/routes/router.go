package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/greenbasket/greenbasket-backend/api/controllers"
	"github.com/greenbasket/greenbasket-backend/api/middleware"
	"github.com/greenbasket/greenbasket-backend/pkg/auth"
)

// Controllers bundles the handlers the router mounts.
type Controllers struct {
	Health   *controllers.Health
	Cart     *controllers.Cart
	Checkout *controllers.Checkout
	Orders   *controllers.Orders
	Webhooks *controllers.Webhooks
}

// NewRouter assembles the HTTP surface. Webhooks and probes stay
// outside the auth boundary; everything under /api/v1 requires a
// bearer token.
func NewRouter(c Controllers, issuer *auth.Issuer, idem middleware.IdempotencyStore) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.Recoverer)
	r.Use(middleware.RequestID)
	r.Use(middleware.Logging)

	r.Get("/health/live", c.Health.Live)
	r.Get("/health/ready", c.Health.Ready)
	r.Method(http.MethodGet, "/metrics", promhttp.Handler())

	r.Post("/webhooks/razorpay", c.Webhooks.Razorpay)

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(middleware.Authenticate(issuer))

		r.Route("/cart", func(r chi.Router) {
			r.Get("/", c.Cart.Get)
			r.Post("/", c.Cart.Add)
			r.Patch("/", c.Cart.Update)
			r.Delete("/", c.Cart.Remove)
		})

		r.With(middleware.Idempotent(idem)).Post("/checkout", c.Checkout.Create)

		r.Route("/orders", func(r chi.Router) {
			r.Get("/", c.Orders.List)
			r.Get("/{orderId}", c.Orders.Get)
		})
	})

	return r
}
