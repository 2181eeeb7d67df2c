package auth

import (
	"net/http"
	"strings"
)

// RoleAdmin is the authority required for catalog and directory maintenance.
const (
	RoleUser  = "ROLE_USER"
	RoleAdmin = "ROLE_ADMIN"
)

// RequireAdmin allows the request only if RequireUser already resolved an
// admin identity.
func RequireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id, ok := IdentityFromContext(r.Context())
		if !ok || !strings.EqualFold(id.Role, RoleAdmin) {
			w.WriteHeader(http.StatusForbidden)
			return
		}
		next.ServeHTTP(w, r)
	})
}
