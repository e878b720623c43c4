package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vaughan-dsouza/epiqbilling/internal/models"
	"github.com/vaughan-dsouza/epiqbilling/internal/utils"
)

var issuer = utils.TokenIssuer{Secret: "mw-secret", TTL: 5 * time.Minute}

// echoClaims answers 200 with the role found in the context, or 204 without one.
func echoClaims() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		c, ok := utils.ClaimsFrom(r.Context())
		if !ok {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		_, _ = w.Write([]byte(c.Role))
	})
}

func serve(h http.Handler, authHeader string) *httptest.ResponseRecorder {
	r := httptest.NewRequest(http.MethodGet, "/", nil)
	if authHeader != "" {
		r.Header.Set("Authorization", authHeader)
	}
	w := httptest.NewRecorder()
	h.ServeHTTP(w, r)
	return w
}

func TestIdentity(t *testing.T) {
	h := Identity(issuer)(echoClaims())

	tok, _, err := issuer.Generate(&models.User{ID: 3, Role: models.RoleSuperadmin})
	require.NoError(t, err)

	w := serve(h, "Bearer "+tok)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "superadmin", w.Body.String())

	assert.Equal(t, http.StatusNoContent, serve(h, "").Code)
	assert.Equal(t, http.StatusUnauthorized, serve(h, "Basic abc").Code)
	assert.Equal(t, http.StatusUnauthorized, serve(h, "Bearer ").Code)
	assert.Equal(t, http.StatusUnauthorized, serve(h, "Bearer garbage").Code)
}

func TestRequireIdentity(t *testing.T) {
	h := Identity(issuer)(RequireIdentity(echoClaims()))

	assert.Equal(t, http.StatusUnauthorized, serve(h, "").Code)

	tok, _, err := issuer.Generate(&models.User{ID: 3, Role: models.RoleAdmin})
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, serve(h, "Bearer "+tok).Code)
}

func TestLoggerKeepsStatus(t *testing.T) {
	h := Logger(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	}))

	assert.Equal(t, http.StatusTeapot, serve(h, "").Code)
}
