package middleware

import (
	"net/http"
	"strings"

	"github.com/vaughan-dsouza/epiqbilling/internal/utils"
)

// TokenVerifier checks a bearer token and returns its claims.
type TokenVerifier interface {
	Verify(token string) (*utils.CustomClaims, error)
}

// Identity verifies an optional bearer token and pushes its claims into the
// request context. Requests without an Authorization header pass through;
// a header that does not verify is rejected with 401.
func Identity(v TokenVerifier) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			auth := r.Header.Get("Authorization")
			if auth == "" {
				next.ServeHTTP(w, r)
				return
			}

			parts := strings.SplitN(auth, " ", 2)
			if len(parts) != 2 || strings.ToLower(parts[0]) != "bearer" {
				utils.Fail(w, http.StatusUnauthorized, "Invalid authorization header.")
				return
			}

			token := strings.TrimSpace(parts[1])
			if token == "" {
				utils.Fail(w, http.StatusUnauthorized, "Invalid authorization header.")
				return
			}

			claims, err := v.Verify(token)
			if err != nil {
				logger.Debugf("rejected token on %s: %v", r.URL.Path, err)
				utils.Fail(w, http.StatusUnauthorized, "Invalid or expired token.")
				return
			}

			next.ServeHTTP(w, r.WithContext(utils.WithClaims(r.Context(), claims)))
		})
	}
}

// RequireIdentity rejects requests that Identity did not authenticate.
func RequireIdentity(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if _, ok := utils.ClaimsFrom(r.Context()); !ok {
			utils.Fail(w, http.StatusUnauthorized, "Authentication required.")
			return
		}
		next.ServeHTTP(w, r)
	})
}
