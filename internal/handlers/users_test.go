package handlers_test

import (
	"net/http"
	"testing"

	"github.com/juju/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/vaughan-dsouza/epiqbilling/internal/models"
)

func TestGetUser(t *testing.T) {
	f := newFixture(t, false)
	f.users.On("Get", mock.Anything, int64(1)).
		Return(&models.User{ID: 1, Email: "ada@example.com", Password: "hashed-pw", Role: models.RoleAdmin}, nil)
	f.users.On("Get", mock.Anything, int64(2)).Return(nil, errors.NotFoundf("user 2"))

	_, resp := f.do(t, http.MethodGet, "/api/user/1", "")
	assert.Equal(t, true, resp["success"])
	assert.NotContains(t, resp["user"], "password")

	w, resp := f.do(t, http.MethodGet, "/api/user/2", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, map[string]any{"success": false, "message": "User not found."}, resp)
}

func TestUpdateUserOverwrites(t *testing.T) {
	f := newFixture(t, false)
	f.users.On("Update", mock.Anything, mock.MatchedBy(func(u *models.User) bool {
		return u.ID == 5 && u.FirstName == "Cy" && u.LastName == "" &&
			u.Role == models.RoleUser && u.Status != nil && *u.Status == "disabled"
	})).Return(nil)
	f.users.On("Update", mock.Anything, mock.MatchedBy(func(u *models.User) bool {
		return u.ID == 6
	})).Return(errors.NotFoundf("user 6"))

	_, resp := f.do(t, http.MethodPut, "/api/user/5",
		`{"first_name":"Cy","email":"cy@example.com","role":"user","status":"disabled"}`)
	assert.Equal(t, true, resp["success"])
	assert.Equal(t, "disabled", resp["user"].(map[string]any)["status"])

	_, resp = f.do(t, http.MethodPut, "/api/user/6", `{"first_name":"Dee"}`)
	assert.Equal(t, "User not found.", resp["message"])
}

func TestUpdateUserEmailTaken(t *testing.T) {
	f := newFixture(t, false)
	f.users.On("Update", mock.Anything, mock.Anything).Return(errors.AlreadyExistsf("user"))

	w, resp := f.do(t, http.MethodPut, "/api/user/5",
		`{"first_name":"Cy","email":"ada@example.com","role":"admin"}`)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, map[string]any{"success": false, "message": "Email already registered for this role."}, resp)
}

func TestDeleteUserLeavesForms(t *testing.T) {
	f := newFixture(t, false)
	f.users.On("Delete", mock.Anything, int64(5)).Return(nil)

	w, resp := f.do(t, http.MethodDelete, "/api/user/5", "")

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, map[string]any{"success": true}, resp)
	f.forms.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
}

func TestDeleteUserStoreError(t *testing.T) {
	f := newFixture(t, false)
	f.users.On("Delete", mock.Anything, int64(5)).Return(errors.New("boom"))

	w, resp := f.do(t, http.MethodDelete, "/api/user/5", "")

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Equal(t, "Error deleting user.", resp["message"])
}
