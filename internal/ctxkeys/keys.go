// Package ctxkeys defines typed context keys shared between middleware and
// handlers. Both packages import this one, neither imports the other, which
// keeps the context key types free of import cycles.
package ctxkeys

import (
	"context"

	"labour-dashboard/internal/hierarchy"
)

// Key is a typed string used as context key to prevent collisions.
type Key string

const (
	UserID   Key = "userID"
	UserRole Key = "userRole"
)

// GetUserID returns the authenticated user's account id, or "" when absent.
func GetUserID(ctx context.Context) string {
	id, _ := ctx.Value(UserID).(string)
	return id
}

// GetUserRole returns the authenticated user's role, or "" when absent.
func GetUserRole(ctx context.Context) hierarchy.Role {
	r, _ := ctx.Value(UserRole).(string)
	return hierarchy.Role(r)
}
