package auth

import (
	"net/http"
	"strings"
)

// RequireUser validates the Authorization header and injects the caller's
// Identity into the request context. Both schemes are accepted:
//
//	Basic  base64(username:password), verified against stored bcrypt hashes
//	Bearer <jwt>, HS256-signed access token
//
// Any missing, malformed, or unverifiable credential answers 401.
func RequireUser(verifier JWTVerifier, creds CredentialVerifier) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			authz := strings.TrimSpace(r.Header.Get("Authorization"))
			if authz == "" {
				w.WriteHeader(http.StatusUnauthorized)
				return
			}

			var id Identity
			switch {
			case strings.HasPrefix(authz, "Basic "):
				username, password, err := ParseBasicHeader(authz)
				if err != nil {
					w.WriteHeader(http.StatusUnauthorized)
					return
				}
				id, err = creds.VerifyCredentials(r.Context(), username, password)
				if err != nil {
					w.WriteHeader(http.StatusUnauthorized)
					return
				}
			case strings.HasPrefix(authz, "Bearer "):
				claims, err := verifier.Parse(strings.TrimSpace(authz[len("Bearer "):]))
				if err != nil || strings.TrimSpace(claims.Subject) == "" {
					w.WriteHeader(http.StatusUnauthorized)
					return
				}
				id = Identity{UserID: claims.UserID, Username: claims.Subject, Role: claims.Role}
			default:
				w.WriteHeader(http.StatusUnauthorized)
				return
			}

			next.ServeHTTP(w, r.WithContext(WithIdentity(r.Context(), id)))
		})
	}
}
