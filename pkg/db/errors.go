package db

import (
	stderrors "errors"

	"github.com/lib/pq"
	"gorm.io/gorm"

	"github.com/greenbasket/greenbasket-backend/pkg/errors"
)

// Translate maps driver-level failures onto the service error taxonomy.
func Translate(err error, notFoundMsg string) error {
	if err == nil {
		return nil
	}
	if stderrors.Is(err, gorm.ErrRecordNotFound) {
		return errors.Wrap(errors.CodeNotFound, notFoundMsg, err)
	}

	var pqErr *pq.Error
	if stderrors.As(err, &pqErr) {
		switch pqErr.Code.Name() {
		case "unique_violation":
			return errors.Wrap(errors.CodeConflict, "duplicate resource", err)
		case "foreign_key_violation":
			return errors.Wrap(errors.CodeConflict, "related resource missing", err)
		}
	}

	return errors.Wrap(errors.CodeDependency, "database operation failed", err)
}
