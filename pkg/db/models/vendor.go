package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"gorm.io/gorm"
)

type Vendor struct {
	ID          string         `gorm:"type:uuid;primaryKey" json:"id"`
	UserID      string         `gorm:"type:uuid;uniqueIndex;not null" json:"user_id"`
	StoreName   string         `gorm:"not null" json:"store_name"`
	Description string         `json:"description,omitempty"`
	Categories  pq.StringArray `gorm:"type:text[]" json:"categories,omitempty"`
	IsApproved  bool           `gorm:"not null;default:false" json:"is_approved"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
}

func (v *Vendor) BeforeCreate(_ *gorm.DB) error {
	if v.ID == "" {
		v.ID = uuid.NewString()
	}
	return nil
}
