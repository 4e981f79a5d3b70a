package middleware

import (
	"net/http"
	"strings"

	"github.com/greenbasket/greenbasket-backend/api/responses"
	"github.com/greenbasket/greenbasket-backend/pkg/auth"
	"github.com/greenbasket/greenbasket-backend/pkg/errors"
	"github.com/greenbasket/greenbasket-backend/pkg/logger"
)

// Authenticate verifies the bearer token and loads the caller's
// identity into the request context.
func Authenticate(issuer *auth.Issuer) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			header := r.Header.Get("Authorization")
			raw, ok := strings.CutPrefix(header, "Bearer ")
			if !ok || raw == "" {
				responses.WriteError(w, r, errors.New(errors.CodeUnauthorized, "missing bearer token"))
				return
			}

			claims, err := issuer.Verify(raw)
			if err != nil {
				responses.WriteError(w, r, err)
				return
			}

			ctx := WithUserID(r.Context(), claims.UserID)
			ctx = WithUserRole(ctx, claims.Role)
			if claims.VendorID != "" {
				ctx = WithVendorID(ctx, claims.VendorID)
			}
			ctx = logger.WithFields(ctx, map[string]any{"user_id": claims.UserID})

			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
