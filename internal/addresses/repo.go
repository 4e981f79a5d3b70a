package addresses

import (
	"context"
	stderrors "errors"

	"gorm.io/gorm"

	"github.com/greenbasket/greenbasket-backend/pkg/db"
	"github.com/greenbasket/greenbasket-backend/pkg/db/models"
	"github.com/greenbasket/greenbasket-backend/pkg/errors"
)

// Repo reads delivery addresses.
type Repo struct {
	gdb *gorm.DB
}

func NewRepo(client *db.Client) *Repo {
	return &Repo{gdb: client.Gorm()}
}

// GetOwned loads an address and enforces that it belongs to userID.
// A missing address reads the same as a foreign one: both are invalid
// delivery destinations for this user.
func (r *Repo) GetOwned(ctx context.Context, id, userID string) (*models.Address, error) {
	var addr models.Address
	err := r.gdb.WithContext(ctx).First(&addr, "id = ?", id).Error
	if stderrors.Is(err, gorm.ErrRecordNotFound) {
		return nil, errors.New(errors.CodeInvalidAddress, "address does not exist")
	}
	if err != nil {
		return nil, db.Translate(err, "address not found")
	}
	if addr.UserID != userID {
		return nil, errors.New(errors.CodeInvalidAddress, "address does not belong to user")
	}
	return &addr, nil
}
