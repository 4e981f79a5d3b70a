package controllers

import (
	"context"
	"net/http"

	"github.com/greenbasket/greenbasket-backend/api/responses"
	"github.com/greenbasket/greenbasket-backend/pkg/errors"
)

type pinger interface {
	Ping(ctx context.Context) error
}

// Health serves liveness and readiness probes.
type Health struct {
	db    pinger
	redis pinger
}

func NewHealth(db, redis pinger) *Health {
	return &Health{db: db, redis: redis}
}

func (h *Health) Live(w http.ResponseWriter, r *http.Request) {
	responses.WriteSuccess(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (h *Health) Ready(w http.ResponseWriter, r *http.Request) {
	if err := h.db.Ping(r.Context()); err != nil {
		responses.WriteError(w, r, errors.Wrap(errors.CodeDependency, "database unreachable", err))
		return
	}
	if err := h.redis.Ping(r.Context()); err != nil {
		responses.WriteError(w, r, errors.Wrap(errors.CodeDependency, "redis unreachable", err))
		return
	}
	responses.WriteSuccess(w, http.StatusOK, map[string]string{"status": "ready"})
}
