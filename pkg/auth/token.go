package auth

import (
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/greenbasket/greenbasket-backend/pkg/enums"
	"github.com/greenbasket/greenbasket-backend/pkg/errors"
)

// Issuer signs and verifies HS256 access tokens.
type Issuer struct {
	secret []byte
	ttl    time.Duration
}

func NewIssuer(secret string) *Issuer {
	return &Issuer{secret: []byte(secret), ttl: 24 * time.Hour}
}

func (i *Issuer) Sign(userID string, role enums.UserRole, vendorID string) (string, error) {
	now := time.Now()
	claims := Claims{
		UserID:   userID,
		Role:     role,
		VendorID: vendorID,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(i.ttl)),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(i.secret)
	if err != nil {
		return "", errors.Wrap(errors.CodeInternal, "sign token", err)
	}
	return signed, nil
}

// Verify parses and validates a token, enforcing the HS256 method.
func (i *Issuer) Verify(raw string) (*Claims, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(raw, claims, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New(errors.CodeUnauthorized, "unexpected signing method")
		}
		return i.secret, nil
	})
	if err != nil || !token.Valid {
		return nil, errors.Wrap(errors.CodeUnauthorized, "invalid token", err)
	}
	if claims.UserID == "" || !claims.Role.IsValid() {
		return nil, errors.New(errors.CodeUnauthorized, "malformed claims")
	}
	return claims, nil
}
