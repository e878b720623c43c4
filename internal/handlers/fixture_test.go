package handlers_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/vaughan-dsouza/epiqbilling/internal/handlers"
	"github.com/vaughan-dsouza/epiqbilling/internal/mocks"
	"github.com/vaughan-dsouza/epiqbilling/internal/router"
	"github.com/vaughan-dsouza/epiqbilling/internal/store"
	"github.com/vaughan-dsouza/epiqbilling/internal/utils"
)

const testSecret = "test-secret"

type stubHasher struct{}

func (stubHasher) Hash(p string) (string, error) { return "hashed-" + p, nil }
func (stubHasher) Compare(hash, p string) error {
	if hash != "hashed-"+p {
		return errors.New("mismatch")
	}
	return nil
}

type fixture struct {
	users   *mocks.UserStore
	forms   *mocks.FormStore
	subs    *mocks.SubmissionStore
	tokens  *mocks.TokenGenerator
	pingErr error
	srv     http.Handler
}

func newFixture(t *testing.T, requireToken bool) *fixture {
	t.Helper()

	f := &fixture{
		users:  new(mocks.UserStore),
		forms:  new(mocks.FormStore),
		subs:   new(mocks.SubmissionStore),
		tokens: new(mocks.TokenGenerator),
	}

	h := handlers.NewHandler(
		&store.Stores{Users: f.users, Forms: f.forms, Submissions: f.subs},
		stubHasher{},
		f.tokens,
		func(context.Context) error { return f.pingErr },
	)
	f.srv = router.New(h, router.Options{
		Tokens:       utils.TokenIssuer{Secret: testSecret, TTL: 5 * time.Minute},
		RequireToken: requireToken,
		CORSOrigins:  []string{"*"},
	})

	t.Cleanup(func() {
		f.users.AssertExpectations(t)
		f.forms.AssertExpectations(t)
		f.subs.AssertExpectations(t)
		f.tokens.AssertExpectations(t)
	})
	return f
}

// do sends the request through the full router and decodes the JSON body.
func (f *fixture) do(t *testing.T, method, path, body string, headers ...string) (*httptest.ResponseRecorder, map[string]any) {
	t.Helper()

	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	for i := 0; i+1 < len(headers); i += 2 {
		req.Header.Set(headers[i], headers[i+1])
	}

	w := httptest.NewRecorder()
	f.srv.ServeHTTP(w, req)

	var resp map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp), w.Body.String())
	return w, resp
}
