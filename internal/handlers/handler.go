package handlers

import (
	"context"
	"net/http"

	"github.com/juju/loggo"

	"github.com/vaughan-dsouza/epiqbilling/internal/models"
	"github.com/vaughan-dsouza/epiqbilling/internal/store"
	"github.com/vaughan-dsouza/epiqbilling/internal/utils"
)

var logger = loggo.GetLogger("epiq.handlers")

// TokenGenerator issues the access token returned by login.
type TokenGenerator interface {
	Generate(u *models.User) (token string, expiresAt int64, err error)
}

// Pinger reports whether the store is reachable.
type Pinger func(ctx context.Context) error

type Handler struct {
	Auth      *AuthHandler
	Users     *UserHandler
	Forms     *FormHandler
	Dashboard *DashboardHandler
	Content   *ContentHandler
	Health    *HealthHandler
}

func NewHandler(stores *store.Stores, hasher utils.PasswordHasher, tokens TokenGenerator, ping Pinger) *Handler {
	return &Handler{
		Auth:      NewAuthHandler(stores.Users, hasher, tokens),
		Users:     NewUserHandler(stores.Users),
		Forms:     NewFormHandler(stores.Forms),
		Dashboard: NewDashboardHandler(stores.Users, stores.Forms),
		Content:   NewContentHandler(stores.Submissions),
		Health:    NewHealthHandler(ping),
	}
}

// storeError logs err with the request it failed and answers 500 with msg.
// The underlying error never reaches the client.
func storeError(w http.ResponseWriter, r *http.Request, err error, msg string) {
	logger.Errorf("%s %s: %v", r.Method, r.URL.Path, err)
	utils.Fail(w, http.StatusInternalServerError, msg)
}
