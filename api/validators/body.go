package validators

import (
	"encoding/json"
	stderrors "errors"
	"io"
	"net/http"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/greenbasket/greenbasket-backend/pkg/errors"
)

const maxBodyBytes = 1 << 20

var validate = validator.New(validator.WithRequiredStructEnabled())

// DecodeJSONBody parses, strictly decodes, and validates a request
// body into dst. Unknown fields and trailing data are rejected.
func DecodeJSONBody(r *http.Request, dst any) error {
	r.Body = http.MaxBytesReader(nil, r.Body, maxBodyBytes)

	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(dst); err != nil {
		return errors.Wrap(errors.CodeValidation, "malformed request body", err)
	}
	if _, err := dec.Token(); err != io.EOF {
		return errors.New(errors.CodeValidation, "unexpected trailing data")
	}

	if err := validate.Struct(dst); err != nil {
		var verrs validator.ValidationErrors
		details := map[string]any{}
		if stderrors.As(err, &verrs) {
			for _, fe := range verrs {
				details[strings.ToLower(fe.Field())] = fe.Tag()
			}
		}
		return errors.Wrap(errors.CodeValidation, "request validation failed", err).
			WithDetails(details)
	}
	return nil
}
