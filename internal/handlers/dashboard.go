package handlers

import (
	"context"
	"net/http"

	"github.com/vaughan-dsouza/epiqbilling/internal/models"
	"github.com/vaughan-dsouza/epiqbilling/internal/store"
	"github.com/vaughan-dsouza/epiqbilling/internal/utils"
)

const (
	msgErrFetchingDashboard = "Error fetching dashboard data."
	msgErrFetchingUsers     = "Error fetching users."
	msgErrFetchingUserForms = "Error fetching users and forms."
)

// DashboardHandler serves the read-only admin → users (→ forms) views.
// Each view costs at most three queries: admins, their users, those users'
// forms. Rows written between the queries may or may not show up.
type DashboardHandler struct {
	Users store.UserStore
	Forms store.FormStore
}

func NewDashboardHandler(users store.UserStore, forms store.FormStore) *DashboardHandler {
	return &DashboardHandler{Users: users, Forms: forms}
}

func (h *DashboardHandler) Superadmin(w http.ResponseWriter, r *http.Request) {
	admins, byAdmin, err := h.adminsWithUsers(r.Context())
	if err != nil {
		storeError(w, r, err, msgErrFetchingDashboard)
		return
	}

	views := make([]models.AdminView, 0, len(admins))
	for _, a := range admins {
		views = append(views, models.AdminView{Admin: a, Users: byAdmin[a.ID]})
	}

	utils.OK(w, utils.Envelope{"admins": views})
}

func (h *DashboardHandler) SuperadminFull(w http.ResponseWriter, r *http.Request) {
	admins, byAdmin, err := h.adminsWithUsers(r.Context())
	if err != nil {
		storeError(w, r, err, msgErrFetchingDashboard)
		return
	}

	var all []models.User
	for _, a := range admins {
		all = append(all, byAdmin[a.ID]...)
	}
	formsByUser, err := h.formsByUser(r.Context(), all)
	if err != nil {
		storeError(w, r, err, msgErrFetchingDashboard)
		return
	}

	views := make([]models.AdminFullView, 0, len(admins))
	for _, a := range admins {
		views = append(views, models.AdminFullView{
			Admin: a,
			Users: withForms(byAdmin[a.ID], formsByUser),
		})
	}

	utils.OK(w, utils.Envelope{"admins": views})
}

func (h *DashboardHandler) Admin(w http.ResponseWriter, r *http.Request) {
	adminID, ok := utils.URLInt64(w, r, "adminId")
	if !ok {
		return
	}

	users, err := h.Users.ListCreatedBy(r.Context(), adminID)
	if err != nil {
		storeError(w, r, err, msgErrFetchingUsers)
		return
	}

	utils.OK(w, utils.Envelope{"users": users})
}

func (h *DashboardHandler) AdminFull(w http.ResponseWriter, r *http.Request) {
	adminID, ok := utils.URLInt64(w, r, "adminId")
	if !ok {
		return
	}

	users, err := h.Users.ListCreatedBy(r.Context(), adminID)
	if err != nil {
		storeError(w, r, err, msgErrFetchingUserForms)
		return
	}

	formsByUser, err := h.formsByUser(r.Context(), users)
	if err != nil {
		storeError(w, r, err, msgErrFetchingUserForms)
		return
	}

	utils.OK(w, utils.Envelope{"users": withForms(users, formsByUser)})
}

// adminsWithUsers loads every admin and groups their user-role children by
// created_by. Every admin has an entry, possibly empty.
func (h *DashboardHandler) adminsWithUsers(ctx context.Context) ([]models.User, map[int64][]models.User, error) {
	admins, err := h.Users.ListByRole(ctx, models.RoleAdmin)
	if err != nil {
		return nil, nil, err
	}

	ids := make([]int64, 0, len(admins))
	byAdmin := make(map[int64][]models.User, len(admins))
	for _, a := range admins {
		ids = append(ids, a.ID)
		byAdmin[a.ID] = []models.User{}
	}

	users, err := h.Users.ListCreatedBy(ctx, ids...)
	if err != nil {
		return nil, nil, err
	}
	for _, u := range users {
		if u.CreatedBy == nil {
			continue
		}
		if _, ok := byAdmin[*u.CreatedBy]; ok {
			byAdmin[*u.CreatedBy] = append(byAdmin[*u.CreatedBy], u)
		}
	}

	return admins, byAdmin, nil
}

func (h *DashboardHandler) formsByUser(ctx context.Context, users []models.User) (map[int64][]models.FormSubmission, error) {
	ids := make([]int64, 0, len(users))
	for _, u := range users {
		ids = append(ids, u.ID)
	}

	forms, err := h.Forms.ListByUsers(ctx, ids...)
	if err != nil {
		return nil, err
	}

	byUser := make(map[int64][]models.FormSubmission, len(users))
	for _, f := range forms {
		byUser[f.UserID] = append(byUser[f.UserID], f)
	}
	return byUser, nil
}

// withForms keeps the order of users and the newest-first order of forms.
func withForms(users []models.User, formsByUser map[int64][]models.FormSubmission) []models.UserWithForms {
	out := make([]models.UserWithForms, 0, len(users))
	for _, u := range users {
		forms := formsByUser[u.ID]
		if forms == nil {
			forms = []models.FormSubmission{}
		}
		out = append(out, models.UserWithForms{User: u, Forms: forms})
	}
	return out
}
