package middleware

import (
	"net/http"
	"runtime/debug"

	"github.com/greenbasket/greenbasket-backend/api/responses"
	"github.com/greenbasket/greenbasket-backend/pkg/errors"
	"github.com/greenbasket/greenbasket-backend/pkg/logger"
)

// Recoverer converts panics into 500 responses instead of dropping
// the connection.
func Recoverer(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if rec := recover(); rec != nil {
				log := logger.FromContext(r.Context())
				log.Error().
					Any("panic", rec).
					Bytes("stack", debug.Stack()).
					Msg("panic recovered")
				responses.WriteError(w, r, errors.New(errors.CodeInternal, "panic recovered"))
			}
		}()
		next.ServeHTTP(w, r)
	})
}
