package middleware

import (
	"context"

	"github.com/greenbasket/greenbasket-backend/pkg/enums"
)

type ctxKey int

const (
	userIDKey ctxKey = iota
	userRoleKey
	vendorIDKey
	requestIDKey
)

func WithUserID(ctx context.Context, userID string) context.Context {
	return context.WithValue(ctx, userIDKey, userID)
}

func UserIDFromContext(ctx context.Context) (string, bool) {
	id, ok := ctx.Value(userIDKey).(string)
	return id, ok
}

func WithUserRole(ctx context.Context, role enums.UserRole) context.Context {
	return context.WithValue(ctx, userRoleKey, role)
}

func UserRoleFromContext(ctx context.Context) (enums.UserRole, bool) {
	role, ok := ctx.Value(userRoleKey).(enums.UserRole)
	return role, ok
}

func WithVendorID(ctx context.Context, vendorID string) context.Context {
	return context.WithValue(ctx, vendorIDKey, vendorID)
}

func VendorIDFromContext(ctx context.Context) (string, bool) {
	id, ok := ctx.Value(vendorIDKey).(string)
	return id, ok
}

func WithRequestID(ctx context.Context, requestID string) context.Context {
	return context.WithValue(ctx, requestIDKey, requestID)
}

func RequestIDFromContext(ctx context.Context) (string, bool) {
	id, ok := ctx.Value(requestIDKey).(string)
	return id, ok
}
