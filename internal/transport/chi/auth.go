package chi

import (
	"crypto/subtle"
	"net/http"
	"strings"
)

// BearerAuthMiddleware returns a middleware that validates admin Bearer tokens.
// With no non-empty keys configured every request is refused: admin routes
// are never open by default.
func BearerAuthMiddleware(adminKeys []string) func(http.Handler) http.Handler {
	validKeys := make([][]byte, 0, len(adminKeys))
	for _, k := range adminKeys {
		if k != "" {
			validKeys = append(validKeys, []byte(k))
		}
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if len(validKeys) == 0 {
				writeError(w, http.StatusForbidden, CodeForbidden, "admin api is disabled")
				return
			}

			auth := r.Header.Get("Authorization")
			if auth == "" {
				writeError(w, http.StatusUnauthorized, CodeUnauthorized, "missing authorization header")
				return
			}

			const bearerPrefix = "Bearer "
			if !strings.HasPrefix(auth, bearerPrefix) {
				writeError(w, http.StatusUnauthorized, CodeUnauthorized, "authorization header must use Bearer scheme")
				return
			}

			token := []byte(auth[len(bearerPrefix):])
			if !matchesAny(token, validKeys) {
				writeError(w, http.StatusUnauthorized, CodeUnauthorized, "invalid admin key")
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

func matchesAny(token []byte, keys [][]byte) bool {
	ok := 0
	for _, k := range keys {
		ok |= subtle.ConstantTimeCompare(token, k)
	}
	return ok == 1
}
