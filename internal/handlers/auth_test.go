package handlers_test

import (
	"net/http"
	"testing"
	"time"

	"github.com/juju/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/vaughan-dsouza/epiqbilling/internal/models"
	"github.com/vaughan-dsouza/epiqbilling/internal/utils"
)

func bearer(t *testing.T, id int64, role models.Role) string {
	t.Helper()
	tok, _, err := utils.GenerateToken(id, "someone@example.com", role, testSecret, 5*time.Minute)
	require.NoError(t, err)
	return "Bearer " + tok
}

func TestLoginSuccess(t *testing.T) {
	f := newFixture(t, false)

	u := &models.User{ID: 7, Email: "ada@example.com", Password: "hashed-pw", Role: models.RoleAdmin}
	f.users.On("FindByEmailAndRole", mock.Anything, "ada@example.com", models.RoleAdmin).Return(u, nil)
	f.tokens.On("Generate", u).Return("signed", int64(1700000000), nil)

	w, resp := f.do(t, http.MethodPost, "/api/login",
		`{"email":"ada@example.com","password":"pw","role":"admin"}`)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, true, resp["success"])
	assert.Equal(t, "signed", resp["token"])

	user := resp["user"].(map[string]any)
	assert.Equal(t, float64(7), user["id"])
	assert.NotContains(t, user, "password")
}

func TestLoginMismatch(t *testing.T) {
	cases := map[string]struct {
		body  string
		setup func(f *fixture)
	}{
		"wrong password": {
			body: `{"email":"ada@example.com","password":"nope","role":"admin"}`,
			setup: func(f *fixture) {
				f.users.On("FindByEmailAndRole", mock.Anything, "ada@example.com", models.RoleAdmin).
					Return(&models.User{ID: 7, Password: "hashed-pw", Role: models.RoleAdmin}, nil)
			},
		},
		"wrong role": {
			body: `{"email":"ada@example.com","password":"pw","role":"superadmin"}`,
			setup: func(f *fixture) {
				f.users.On("FindByEmailAndRole", mock.Anything, "ada@example.com", models.RoleSuperadmin).
					Return(nil, errors.NotFoundf("user"))
			},
		},
		"unknown email": {
			body: `{"email":"who@example.com","password":"pw","role":"admin"}`,
			setup: func(f *fixture) {
				f.users.On("FindByEmailAndRole", mock.Anything, "who@example.com", models.RoleAdmin).
					Return(nil, errors.NotFoundf("user"))
			},
		},
	}

	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			f := newFixture(t, false)
			tc.setup(f)

			w, resp := f.do(t, http.MethodPost, "/api/login", tc.body)

			assert.Equal(t, http.StatusOK, w.Code)
			assert.Equal(t, false, resp["success"])
			assert.Equal(t, "Invalid credentials or role.", resp["message"])
			f.tokens.AssertNotCalled(t, "Generate", mock.Anything)
		})
	}
}

func TestStaleBearerDoesNotBlockPublicRoutes(t *testing.T) {
	expired, _, err := utils.GenerateToken(7, "ada@example.com", models.RoleAdmin, testSecret, time.Nanosecond)
	require.NoError(t, err)
	time.Sleep(time.Millisecond)

	for name, header := range map[string]string{
		"expired token":   "Bearer " + expired,
		"garbage token":   "Bearer expired.or.stale",
		"malformed value": "Token abc",
	} {
		t.Run(name, func(t *testing.T) {
			f := newFixture(t, true)

			u := &models.User{ID: 7, Email: "ada@example.com", Password: "hashed-pw", Role: models.RoleAdmin}
			f.users.On("FindByEmailAndRole", mock.Anything, "ada@example.com", models.RoleAdmin).Return(u, nil)
			f.tokens.On("Generate", u).Return("fresh", int64(1700000000), nil)
			f.forms.On("Insert", mock.Anything, mock.Anything).Return(nil)

			w, resp := f.do(t, http.MethodPost, "/api/login",
				`{"email":"ada@example.com","password":"pw","role":"admin"}`, "Authorization", header)
			assert.Equal(t, http.StatusOK, w.Code)
			assert.Equal(t, true, resp["success"])
			assert.Equal(t, "fresh", resp["token"])

			w, resp = f.do(t, http.MethodPost, "/api/submit-form",
				`{"user_id":7,"form_type":"intake","form_data":{}}`, "Authorization", header)
			assert.Equal(t, http.StatusOK, w.Code)
			assert.Equal(t, true, resp["success"])

			// account creation still refuses a token that does not verify
			w, resp = f.do(t, http.MethodPost, "/api/create-admin",
				`{"creator_role":"superadmin","email":"bo@example.com","password":"pw"}`, "Authorization", header)
			assert.Equal(t, http.StatusUnauthorized, w.Code)
			assert.Equal(t, false, resp["success"])
		})
	}
}

func TestLoginStoreErrorIsNotEchoed(t *testing.T) {
	f := newFixture(t, false)
	f.users.On("FindByEmailAndRole", mock.Anything, "ada@example.com", models.RoleAdmin).
		Return(nil, errors.New("pq: connection refused"))

	w, resp := f.do(t, http.MethodPost, "/api/login",
		`{"email":"ada@example.com","password":"pw","role":"admin"}`)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Equal(t, "Server error.", resp["message"])
	assert.NotContains(t, w.Body.String(), "connection refused")
}

func TestLoginInvalidJSON(t *testing.T) {
	f := newFixture(t, false)

	w, resp := f.do(t, http.MethodPost, "/api/login", `{"email":`)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, false, resp["success"])
}

func TestCreateAdmin(t *testing.T) {
	f := newFixture(t, false)

	f.users.On("Create", mock.Anything, mock.MatchedBy(func(u *models.User) bool {
		return u.Role == models.RoleAdmin && u.CreatedBy == nil &&
			u.Email == "bo@example.com" && u.Password == "hashed-pw"
	})).Run(func(args mock.Arguments) {
		args.Get(1).(*models.User).ID = 3
	}).Return(nil)

	w, resp := f.do(t, http.MethodPost, "/api/create-admin",
		`{"creator_role":"superadmin","first_name":"Bo","last_name":"Li","email":"bo@example.com","password":"pw"}`)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, true, resp["success"])
	user := resp["user"].(map[string]any)
	assert.Equal(t, float64(3), user["id"])
	assert.Equal(t, "admin", user["role"])
}

func TestCreateAdminRequiresSuperadmin(t *testing.T) {
	f := newFixture(t, false)

	w, resp := f.do(t, http.MethodPost, "/api/create-admin",
		`{"creator_role":"admin","email":"bo@example.com","password":"pw"}`)

	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Equal(t, "Only superadmin can create admins.", resp["message"])
	f.users.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestCreateUserRequiresAdmin(t *testing.T) {
	f := newFixture(t, false)

	w, resp := f.do(t, http.MethodPost, "/api/create-user",
		`{"creator_role":"user","creator_id":9,"email":"cy@example.com","password":"pw"}`)

	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Equal(t, false, resp["success"])
	assert.Equal(t, "Only admin can create users.", resp["message"])
	f.users.AssertNotCalled(t, "CountCreatedBy", mock.Anything, mock.Anything, mock.Anything)
}

func TestCreateUserQuota(t *testing.T) {
	f := newFixture(t, false)

	for n := 0; n <= models.UserQuota; n++ {
		f.users.On("CountCreatedBy", mock.Anything, int64(9), models.RoleUser).Return(n, nil).Once()
	}
	f.users.On("Create", mock.Anything, mock.MatchedBy(func(u *models.User) bool {
		return u.Role == models.RoleUser && u.CreatedBy != nil && *u.CreatedBy == 9
	})).Return(nil).Times(models.UserQuota)

	body := `{"creator_role":"admin","creator_id":9,"first_name":"Cy","email":"cy@example.com","password":"pw"}`
	for i := 0; i < models.UserQuota; i++ {
		w, resp := f.do(t, http.MethodPost, "/api/create-user", body)
		require.Equal(t, http.StatusOK, w.Code, "user %d", i+1)
		require.Equal(t, true, resp["success"])
		user := resp["user"].(map[string]any)
		assert.Equal(t, float64(9), user["created_by"])
		assert.Equal(t, "user", user["role"])
	}

	w, resp := f.do(t, http.MethodPost, "/api/create-user", body)
	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Equal(t, "Admin can only create 4 users.", resp["message"])
}

func TestCreateUserStoreError(t *testing.T) {
	f := newFixture(t, false)
	f.users.On("CountCreatedBy", mock.Anything, int64(9), models.RoleUser).Return(0, errors.New("boom"))

	w, resp := f.do(t, http.MethodPost, "/api/create-user",
		`{"creator_role":"admin","creator_id":9,"email":"cy@example.com","password":"pw"}`)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Equal(t, "Error creating user.", resp["message"])
}

func TestCreateAccountEmailTaken(t *testing.T) {
	taken := errors.AlreadyExistsf("user %q with role %q", "bo@example.com", "admin")

	t.Run("admin", func(t *testing.T) {
		f := newFixture(t, false)
		f.users.On("Create", mock.Anything, mock.Anything).Return(taken)

		w, resp := f.do(t, http.MethodPost, "/api/create-admin",
			`{"creator_role":"superadmin","email":"bo@example.com","password":"pw2"}`)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, false, resp["success"])
		assert.Equal(t, "Email already registered for this role.", resp["message"])
	})

	t.Run("user", func(t *testing.T) {
		f := newFixture(t, false)
		f.users.On("CountCreatedBy", mock.Anything, int64(9), models.RoleUser).Return(1, nil)
		f.users.On("Create", mock.Anything, mock.Anything).Return(taken)

		w, resp := f.do(t, http.MethodPost, "/api/create-user",
			`{"creator_role":"admin","creator_id":9,"email":"cy@example.com","password":"pw"}`)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "Email already registered for this role.", resp["message"])
	})
}

func TestCreatorIdentityComesFromToken(t *testing.T) {
	t.Run("token role overrides body", func(t *testing.T) {
		f := newFixture(t, false)

		w, resp := f.do(t, http.MethodPost, "/api/create-admin",
			`{"creator_role":"superadmin","email":"bo@example.com","password":"pw"}`,
			"Authorization", bearer(t, 5, models.RoleUser))

		assert.Equal(t, http.StatusForbidden, w.Code)
		assert.Equal(t, "Only superadmin can create admins.", resp["message"])
	})

	t.Run("token id is the creator", func(t *testing.T) {
		f := newFixture(t, false)
		f.users.On("CountCreatedBy", mock.Anything, int64(12), models.RoleUser).Return(0, nil)
		f.users.On("Create", mock.Anything, mock.MatchedBy(func(u *models.User) bool {
			return u.CreatedBy != nil && *u.CreatedBy == 12
		})).Return(nil)

		w, _ := f.do(t, http.MethodPost, "/api/create-user",
			`{"creator_role":"user","creator_id":99,"email":"cy@example.com","password":"pw"}`,
			"Authorization", bearer(t, 12, models.RoleAdmin))

		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("invalid token", func(t *testing.T) {
		f := newFixture(t, false)

		w, resp := f.do(t, http.MethodPost, "/api/create-admin",
			`{"creator_role":"superadmin"}`, "Authorization", "Bearer not-a-jwt")

		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.Equal(t, false, resp["success"])
	})
}

func TestRequireToken(t *testing.T) {
	f := newFixture(t, true)

	w, resp := f.do(t, http.MethodPost, "/api/create-user",
		`{"creator_role":"admin","creator_id":9}`)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, "Authentication required.", resp["message"])
}
