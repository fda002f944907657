// Package middleware provides HTTP middleware for authentication and
// authorization.
package middleware

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"github.com/golang-jwt/jwt/v5"

	"labour-dashboard/internal/ctxkeys"
	"labour-dashboard/internal/hierarchy"
)

// Auth validates the JWT token from the Authorization header and injects
// the officer's account id and role into the request context.
func Auth(jwtSecret string) func(http.Handler) http.Handler {
	secret := []byte(jwtSecret)

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			authHeader := r.Header.Get("Authorization")
			if authHeader == "" {
				writeError(w, http.StatusUnauthorized, "Authorization header required")
				return
			}

			parts := strings.SplitN(authHeader, " ", 2)
			if len(parts) != 2 || parts[0] != "Bearer" {
				writeError(w, http.StatusUnauthorized, "Invalid authorization format. Use: Bearer <token>")
				return
			}

			token, err := jwt.Parse(parts[1], func(token *jwt.Token) (interface{}, error) {
				if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
					return nil, jwt.ErrSignatureInvalid
				}
				return secret, nil
			})

			if err != nil || !token.Valid {
				writeError(w, http.StatusUnauthorized, "Invalid or expired token")
				return
			}

			claims, ok := token.Claims.(jwt.MapClaims)
			if !ok {
				writeError(w, http.StatusUnauthorized, "Invalid token claims")
				return
			}

			userID, _ := claims["userId"].(string)
			role, _ := claims["role"].(string)

			if userID == "" {
				writeError(w, http.StatusUnauthorized, "Invalid token: missing user ID")
				return
			}

			ctx := context.WithValue(r.Context(), ctxkeys.UserID, userID)
			ctx = context.WithValue(ctx, ctxkeys.UserRole, role)

			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RequireMinRole restricts access to officers at or above the given level.
// Hierarchy: ADMIN > COMMISSIONER > JCL > DCL > ACL > ALO.
func RequireMinRole(minRole hierarchy.Role) func(http.Handler) http.Handler {
	minLevel := hierarchy.Level[minRole]

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			level := hierarchy.Level[ctxkeys.GetUserRole(r.Context())]

			if level < minLevel {
				writeError(w, http.StatusForbidden, "Insufficient permissions")
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// RequireRole restricts access to officers holding one of the listed roles
// exactly. Used where a form belongs to a single designation rather than a
// rank band.
func RequireRole(roles ...hierarchy.Role) func(http.Handler) http.Handler {
	allowed := map[hierarchy.Role]bool{}
	for _, role := range roles {
		allowed[role] = true
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !allowed[ctxkeys.GetUserRole(r.Context())] {
				writeError(w, http.StatusForbidden, "This form is not available for your designation")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

func writeError(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]string{"error": message})
}
