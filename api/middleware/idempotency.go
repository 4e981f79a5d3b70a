package middleware

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/greenbasket/greenbasket-backend/api/responses"
	"github.com/greenbasket/greenbasket-backend/pkg/errors"
	"github.com/greenbasket/greenbasket-backend/pkg/logger"
)

const (
	idempotencyHeader = "Idempotency-Key"
	idempotencyTTL    = 7 * 24 * time.Hour
	pendingMarker     = "__pending__"
)

// IdempotencyStore is the key-value surface the middleware needs.
type IdempotencyStore interface {
	SetNX(ctx context.Context, key string, value []byte, ttl time.Duration) (bool, error)
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	Del(ctx context.Context, key string) error
}

type storedResponse struct {
	Status int             `json:"status"`
	Body   json.RawMessage `json:"body"`
}

type bufferingWriter struct {
	header http.Header
	status int
	body   bytes.Buffer
}

func (w *bufferingWriter) Header() http.Header { return w.header }

func (w *bufferingWriter) WriteHeader(status int) { w.status = status }

func (w *bufferingWriter) Write(p []byte) (int, error) {
	if w.status == 0 {
		w.status = http.StatusOK
	}
	return w.body.Write(p)
}

// Idempotent replays the stored response for a repeated Idempotency-Key
// instead of re-running the handler. Requests without the header pass
// through untouched. A key whose first request is still running gets a
// conflict so the client backs off.
func Idempotent(store IdempotencyStore) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			key := r.Header.Get(idempotencyHeader)
			if key == "" {
				next.ServeHTTP(w, r)
				return
			}

			userID, _ := UserIDFromContext(r.Context())
			redisKey := "idem:" + userID + ":" + key
			ctx := r.Context()

			won, err := store.SetNX(ctx, redisKey, []byte(pendingMarker), idempotencyTTL)
			if err != nil {
				responses.WriteError(w, r, errors.Wrap(errors.CodeDependency, "idempotency store unavailable", err))
				return
			}

			if !won {
				stored, err := store.Get(ctx, redisKey)
				if err != nil {
					responses.WriteError(w, r, errors.Wrap(errors.CodeDependency, "idempotency store unavailable", err))
					return
				}
				if string(stored) == pendingMarker {
					responses.WriteError(w, r, errors.New(errors.CodeConflict, "request with this key is in flight"))
					return
				}
				var resp storedResponse
				if err := json.Unmarshal(stored, &resp); err != nil {
					responses.WriteError(w, r, errors.Wrap(errors.CodeInternal, "corrupt idempotency record", err))
					return
				}
				log := logger.FromContext(ctx)
				log.Info().Str("idempotency_key", key).Msg("replaying stored response")
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(resp.Status)
				_, _ = w.Write(resp.Body)
				return
			}

			buf := &bufferingWriter{header: w.Header().Clone()}
			next.ServeHTTP(buf, r)
			if buf.status == 0 {
				buf.status = http.StatusOK
			}

			// Server-side failures release the key so the client may retry.
			if buf.status >= http.StatusInternalServerError {
				_ = store.Del(ctx, redisKey)
			} else {
				record, _ := json.Marshal(storedResponse{Status: buf.status, Body: buf.body.Bytes()})
				if err := store.Set(ctx, redisKey, record, idempotencyTTL); err != nil {
					log := logger.FromContext(ctx)
					log.Warn().Err(err).Msg("failed to store idempotent response")
				}
			}

			for k, vals := range buf.header {
				for _, v := range vals {
					w.Header().Set(k, v)
				}
			}
			w.WriteHeader(buf.status)
			_, _ = w.Write(buf.body.Bytes())
		})
	}
}
