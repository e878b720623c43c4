package handlers

import (
	"context"
	"net/http"

	"github.com/juju/errors"

	"github.com/vaughan-dsouza/epiqbilling/internal/models"
	"github.com/vaughan-dsouza/epiqbilling/internal/store"
	"github.com/vaughan-dsouza/epiqbilling/internal/utils"
)

const (
	msgInvalidLogin     = "Invalid credentials or role."
	msgServerError      = "Server error."
	msgOnlySuperadmin   = "Only superadmin can create admins."
	msgOnlyAdmin        = "Only admin can create users."
	msgUserQuota        = "Admin can only create 4 users."
	msgErrCreatingAdmin = "Error creating admin."
	msgErrCreatingUser  = "Error creating user."
	msgEmailTaken       = "Email already registered for this role."
)

type AuthHandler struct {
	Users  store.UserStore
	Hasher utils.PasswordHasher
	Tokens TokenGenerator
}

func NewAuthHandler(users store.UserStore, hasher utils.PasswordHasher, tokens TokenGenerator) *AuthHandler {
	return &AuthHandler{Users: users, Hasher: hasher, Tokens: tokens}
}

// ----------- Request DTOs -------------

type loginReq struct {
	Email    string      `json:"email"`
	Password string      `json:"password"`
	Role     models.Role `json:"role"`
}

type createAccountReq struct {
	CreatorRole models.Role `json:"creator_role"`
	CreatorID   int64       `json:"creator_id"`
	FirstName   string      `json:"first_name"`
	LastName    string      `json:"last_name"`
	Email       string      `json:"email"`
	Password    string      `json:"password"`
}

// actor is the account on whose behalf a creation request runs.
type actor struct {
	ID   int64
	Role models.Role
}

// resolveActor prefers the verified token identity over the role and id the
// caller put in the body.
func resolveActor(r *http.Request, req createAccountReq) actor {
	if claims, ok := utils.ClaimsFrom(r.Context()); ok {
		return actor{ID: claims.SubjectInt(), Role: claims.Role}
	}
	return actor{ID: req.CreatorID, Role: req.CreatorRole}
}

func authorize(a actor, want models.Role) error {
	if a.Role != want {
		return errors.Forbiddenf("creator role %q", a.Role)
	}
	return nil
}

// -------------- LOGIN ------------------------

func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req loginReq
	if err := utils.DecodeJSON(w, r, &req); err != nil {
		return
	}

	u, err := h.Users.FindByEmailAndRole(r.Context(), req.Email, req.Role)
	if errors.Is(err, errors.NotFound) {
		utils.Fail(w, http.StatusOK, msgInvalidLogin)
		return
	}
	if err != nil {
		storeError(w, r, err, msgServerError)
		return
	}

	if err := h.Hasher.Compare(u.Password, req.Password); err != nil {
		utils.Fail(w, http.StatusOK, msgInvalidLogin)
		return
	}

	token, exp, err := h.Tokens.Generate(u)
	if err != nil {
		storeError(w, r, errors.Annotate(err, "issue token"), msgServerError)
		return
	}

	utils.OK(w, utils.Envelope{
		"user":       u,
		"token":      token,
		"expires_at": exp,
	})
}

// -------------- CREATE ADMIN -----------------

func (h *AuthHandler) CreateAdmin(w http.ResponseWriter, r *http.Request) {
	var req createAccountReq
	if err := utils.DecodeJSON(w, r, &req); err != nil {
		return
	}

	if err := authorize(resolveActor(r, req), models.RoleSuperadmin); err != nil {
		logger.Debugf("create-admin rejected: %v", err)
		utils.Fail(w, http.StatusForbidden, msgOnlySuperadmin)
		return
	}

	u, err := h.newAccount(r.Context(), req, models.RoleAdmin, nil)
	if errors.Is(err, errors.AlreadyExists) {
		utils.Fail(w, http.StatusOK, msgEmailTaken)
		return
	}
	if err != nil {
		storeError(w, r, err, msgErrCreatingAdmin)
		return
	}

	utils.OK(w, utils.Envelope{"user": u})
}

// -------------- CREATE USER ------------------

func (h *AuthHandler) CreateUser(w http.ResponseWriter, r *http.Request) {
	var req createAccountReq
	if err := utils.DecodeJSON(w, r, &req); err != nil {
		return
	}

	u, err := h.createUser(r.Context(), resolveActor(r, req), req)
	switch {
	case errors.Is(err, errors.Forbidden):
		logger.Debugf("create-user rejected: %v", err)
		utils.Fail(w, http.StatusForbidden, msgOnlyAdmin)
	case errors.Is(err, errors.QuotaLimitExceeded):
		logger.Debugf("create-user rejected: %v", err)
		utils.Fail(w, http.StatusForbidden, msgUserQuota)
	case errors.Is(err, errors.AlreadyExists):
		utils.Fail(w, http.StatusOK, msgEmailTaken)
	case err != nil:
		storeError(w, r, err, msgErrCreatingUser)
	default:
		utils.OK(w, utils.Envelope{"user": u})
	}
}

// createUser enforces the admin-only gate and the per-admin quota before
// inserting. The count and the insert are separate statements.
func (h *AuthHandler) createUser(ctx context.Context, a actor, req createAccountReq) (*models.User, error) {
	if err := authorize(a, models.RoleAdmin); err != nil {
		return nil, err
	}

	n, err := h.Users.CountCreatedBy(ctx, a.ID, models.RoleUser)
	if err != nil {
		return nil, err
	}
	if n >= models.UserQuota {
		return nil, errors.QuotaLimitExceededf("admin %d already created %d users", a.ID, n)
	}

	creator := a.ID
	return h.newAccount(ctx, req, models.RoleUser, &creator)
}

func (h *AuthHandler) newAccount(ctx context.Context, req createAccountReq, role models.Role, createdBy *int64) (*models.User, error) {
	hash, err := h.Hasher.Hash(req.Password)
	if err != nil {
		return nil, errors.Annotate(err, "hash password")
	}

	u := &models.User{
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Email:     req.Email,
		Password:  hash,
		Role:      role,
		CreatedBy: createdBy,
	}
	if err := h.Users.Create(ctx, u); err != nil {
		return nil, err
	}
	return u, nil
}

// EnsureSuperadmin creates the superadmin account if no superadmin with this
// email exists yet.
func (h *AuthHandler) EnsureSuperadmin(ctx context.Context, email, password string) (bool, error) {
	_, err := h.Users.FindByEmailAndRole(ctx, email, models.RoleSuperadmin)
	if err == nil {
		return false, nil
	}
	if !errors.Is(err, errors.NotFound) {
		return false, err
	}

	_, err = h.newAccount(ctx, createAccountReq{
		FirstName: "Super",
		LastName:  "Admin",
		Email:     email,
		Password:  password,
	}, models.RoleSuperadmin, nil)
	return err == nil, err
}
