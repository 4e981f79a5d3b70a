package responses

import (
	"encoding/json"
	"net/http"

	"github.com/greenbasket/greenbasket-backend/pkg/errors"
	"github.com/greenbasket/greenbasket-backend/pkg/logger"
)

type successEnvelope struct {
	Success bool `json:"success"`
	Data    any  `json:"data,omitempty"`
}

type errorEnvelope struct {
	Success bool      `json:"success"`
	Error   errorBody `json:"error"`
}

type errorBody struct {
	Code      string         `json:"code"`
	Message   string         `json:"message"`
	Retryable bool           `json:"retryable,omitempty"`
	Details   map[string]any `json:"details,omitempty"`
}

// WriteSuccess writes the success envelope with the given status.
func WriteSuccess(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(successEnvelope{Success: true, Data: data})
}

// WriteError maps a service error onto the HTTP error envelope. The
// public message comes from the code's metadata; internal causes are
// logged, never exposed.
func WriteError(w http.ResponseWriter, r *http.Request, err error) {
	coded := errors.As(err)
	md := errors.MetadataFor(coded.Code())

	log := logger.FromContext(r.Context())
	if md.HTTPStatus >= http.StatusInternalServerError {
		log.Error().Err(err).Msg("request failed")
	} else {
		log.Warn().
			Str("code", string(coded.Code())).
			Msg(coded.Message())
	}

	body := errorBody{
		Code:      string(coded.Code()),
		Message:   md.PublicMessage,
		Retryable: md.Retryable,
	}
	if md.DetailsAllowed {
		body.Details = coded.Details()
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(md.HTTPStatus)
	_ = json.NewEncoder(w).Encode(errorEnvelope{Success: false, Error: body})
}
