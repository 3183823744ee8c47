// CatalogHQ | 2026
// auth.go

package middleware

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/cataloghq/catalog-api/internal/core"
)

type contextKey string

const (
	UserIDKey     contextKey = "user_id"
	StaffRolesKey contextKey = "staff_roles"
)

// TokenVerifier resolves an opaque bearer token to a user. A token that
// is unknown, revoked, or expired yields core.ErrUnauthorized.
type TokenVerifier interface {
	VerifyToken(ctx context.Context, token string) (userID string, err error)
}

// StaffResolver looks up the staff record for a user on every request.
// A user with no staff record yields core.ErrNotFound.
type StaffResolver interface {
	RolesForUser(ctx context.Context, userID string) ([]string, error)
}

// Authenticator is step one of the access-control chain: without a valid
// non-expired token the request terminates with 401.
func Authenticator(verifier TokenVerifier) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := ExtractToken(r)

			if token == "" {
				core.Unauthorized(w, "Unauthenticated")
				return
			}

			userID, err := verifier.VerifyToken(r.Context(), token)
			if err != nil {
				if errors.Is(err, core.ErrUnauthorized) {
					core.Unauthorized(w, "Unauthenticated")
					return
				}
				core.InternalServerError(w, "verify token", err)
				return
			}

			ctx := context.WithValue(r.Context(), UserIDKey, userID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RequireStaff is step two: the authenticated user must have a staff
// record. On success the record's role set is attached to the request
// context for downstream role checks.
func RequireStaff(resolver StaffResolver) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			userID := GetUserID(r.Context())
			if userID == "" {
				core.Unauthorized(w, "Unauthenticated")
				return
			}

			roles, err := resolver.RolesForUser(r.Context(), userID)
			if err != nil {
				if errors.Is(err, core.ErrNotFound) {
					core.Forbidden(w, "Forbidden - staff only")
					return
				}
				core.InternalServerError(w, "resolve staff roles", err)
				return
			}

			ctx := context.WithValue(r.Context(), StaffRolesKey, roles)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RequireStaffRole is step three: the attached role set must contain the
// named role. It only runs behind RequireStaff.
func RequireStaffRole(role string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !HasStaffRole(r.Context(), role) {
				core.Forbidden(w, "Forbidden - missing role")
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

func ExtractToken(r *http.Request) string {
	authHeader := r.Header.Get("Authorization")
	if authHeader == "" {
		return ""
	}

	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
		return ""
	}

	return strings.TrimSpace(parts[1])
}

func GetUserID(ctx context.Context) string {
	if id, ok := ctx.Value(UserIDKey).(string); ok {
		return id
	}
	return ""
}

func GetStaffRoles(ctx context.Context) []string {
	if roles, ok := ctx.Value(StaffRolesKey).([]string); ok {
		return roles
	}
	return nil
}

func HasStaffRole(ctx context.Context, role string) bool {
	for _, r := range GetStaffRoles(ctx) {
		if r == role {
			return true
		}
	}
	return false
}
