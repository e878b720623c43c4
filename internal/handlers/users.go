package handlers

import (
	"net/http"

	"github.com/juju/errors"

	"github.com/vaughan-dsouza/epiqbilling/internal/models"
	"github.com/vaughan-dsouza/epiqbilling/internal/store"
	"github.com/vaughan-dsouza/epiqbilling/internal/utils"
)

const (
	msgUserNotFound    = "User not found."
	msgErrEditingUser  = "Error editing user."
	msgErrDeletingUser = "Error deleting user."
	msgErrFetchingUser = "Error fetching user."
)

type UserHandler struct {
	Users store.UserStore
}

func NewUserHandler(users store.UserStore) *UserHandler {
	return &UserHandler{Users: users}
}

// ---------------------- GET ONE ----------------------

func (h *UserHandler) GetUser(w http.ResponseWriter, r *http.Request) {
	id, ok := utils.URLInt64(w, r, "id")
	if !ok {
		return
	}

	u, err := h.Users.Get(r.Context(), id)
	if errors.Is(err, errors.NotFound) {
		utils.Fail(w, http.StatusOK, msgUserNotFound)
		return
	}
	if err != nil {
		storeError(w, r, err, msgErrFetchingUser)
		return
	}

	utils.OK(w, utils.Envelope{"user": u})
}

// ---------------------- UPDATE ----------------------

func (h *UserHandler) UpdateUser(w http.ResponseWriter, r *http.Request) {
	id, ok := utils.URLInt64(w, r, "id")
	if !ok {
		return
	}

	var body struct {
		FirstName string      `json:"first_name"`
		LastName  string      `json:"last_name"`
		Email     string      `json:"email"`
		Role      models.Role `json:"role"`
		Status    *string     `json:"status"`
	}
	if err := utils.DecodeJSON(w, r, &body); err != nil {
		return
	}

	// Full overwrite: fields missing from the body are written as empty.
	u := &models.User{
		ID:        id,
		FirstName: body.FirstName,
		LastName:  body.LastName,
		Email:     body.Email,
		Role:      body.Role,
		Status:    body.Status,
	}

	err := h.Users.Update(r.Context(), u)
	if errors.Is(err, errors.NotFound) {
		utils.Fail(w, http.StatusOK, msgUserNotFound)
		return
	}
	if errors.Is(err, errors.AlreadyExists) {
		utils.Fail(w, http.StatusOK, msgEmailTaken)
		return
	}
	if err != nil {
		storeError(w, r, err, msgErrEditingUser)
		return
	}

	utils.OK(w, utils.Envelope{"user": u})
}

// ---------------------- DELETE ----------------------

// DeleteUser succeeds whether or not the row existed. The user's form
// submissions are left in place.
func (h *UserHandler) DeleteUser(w http.ResponseWriter, r *http.Request) {
	id, ok := utils.URLInt64(w, r, "id")
	if !ok {
		return
	}

	if err := h.Users.Delete(r.Context(), id); err != nil {
		storeError(w, r, err, msgErrDeletingUser)
		return
	}

	utils.OK(w, nil)
}
