package auth

import (
	"github.com/golang-jwt/jwt/v5"

	"github.com/greenbasket/greenbasket-backend/pkg/enums"
)

// Claims is the JWT payload issued at login.
type Claims struct {
	UserID   string         `json:"uid"`
	Role     enums.UserRole `json:"role"`
	VendorID string         `json:"vendor_id,omitempty"`
	jwt.RegisteredClaims
}
