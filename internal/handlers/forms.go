package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/juju/errors"

	"github.com/vaughan-dsouza/epiqbilling/internal/models"
	"github.com/vaughan-dsouza/epiqbilling/internal/store"
	"github.com/vaughan-dsouza/epiqbilling/internal/utils"
)

const (
	msgErrSavingForm    = "Error saving form."
	msgNoDraft          = "No draft found."
	msgErrFetchingDraft = "Error fetching draft."
	msgFormNotFound     = "Form not found."
	msgErrFetchingForm  = "Error fetching form."
	msgErrEditingForm   = "Error editing form."
	msgErrDeletingForm  = "Error deleting form."
	msgErrFetchingForms = "Error fetching forms."
	msgEmptyNote        = "Note cannot be empty."
	msgErrAddingNote    = "Error adding note."
)

type FormHandler struct {
	Forms store.FormStore
}

func NewFormHandler(forms store.FormStore) *FormHandler {
	return &FormHandler{Forms: forms}
}

// formStatus defaults an absent status to final.
func formStatus(s models.FormStatus) models.FormStatus {
	if s == "" {
		return models.FormFinal
	}
	return s
}

// ---------------------- SUBMIT ----------------------

// SubmitForm upserts the single draft of (user_id, form_type) when status is
// draft and inserts a new row for anything else.
func (h *FormHandler) SubmitForm(w http.ResponseWriter, r *http.Request) {
	var body struct {
		UserID   int64             `json:"user_id"`
		FormType string            `json:"form_type"`
		FormData json.RawMessage   `json:"form_data"`
		Status   models.FormStatus `json:"status"`
	}
	if err := utils.DecodeJSON(w, r, &body); err != nil {
		return
	}

	f := &models.FormSubmission{
		UserID:   body.UserID,
		FormType: body.FormType,
		FormData: utils.NormalizeFormData(body.FormData),
		Status:   formStatus(body.Status),
	}

	var err error
	if f.Status == models.FormDraft {
		err = h.Forms.SaveDraft(r.Context(), f)
	} else {
		err = h.Forms.Insert(r.Context(), f)
	}
	if err != nil {
		storeError(w, r, err, msgErrSavingForm)
		return
	}

	utils.OK(w, utils.Envelope{"submission": f})
}

// ---------------------- DRAFT ----------------------

func (h *FormHandler) GetDraft(w http.ResponseWriter, r *http.Request) {
	userID, ok := utils.URLInt64(w, r, "user_id")
	if !ok {
		return
	}
	formType := chi.URLParam(r, "form_type")

	draft, err := h.Forms.LatestDraft(r.Context(), userID, formType)
	if errors.Is(err, errors.NotFound) {
		utils.Fail(w, http.StatusOK, msgNoDraft)
		return
	}
	if err != nil {
		storeError(w, r, err, msgErrFetchingDraft)
		return
	}

	utils.OK(w, utils.Envelope{"draft": draft})
}

// ---------------------- GET ONE ----------------------

func (h *FormHandler) GetForm(w http.ResponseWriter, r *http.Request) {
	id, ok := utils.URLInt64(w, r, "id")
	if !ok {
		return
	}

	f, err := h.Forms.Get(r.Context(), id)
	if errors.Is(err, errors.NotFound) {
		utils.Fail(w, http.StatusOK, msgFormNotFound)
		return
	}
	if err != nil {
		storeError(w, r, err, msgErrFetchingForm)
		return
	}

	utils.OK(w, utils.Envelope{"form": f})
}

// ---------------------- LIST ----------------------

func (h *FormHandler) ListByType(w http.ResponseWriter, r *http.Request) {
	formType := chi.URLParam(r, "form_type")

	forms, err := h.Forms.ListByType(r.Context(), formType)
	if err != nil {
		storeError(w, r, err, msgErrFetchingForms)
		return
	}

	utils.OK(w, utils.Envelope{"submissions": forms})
}

// ---------------------- UPDATE ----------------------

func (h *FormHandler) UpdateForm(w http.ResponseWriter, r *http.Request) {
	id, ok := utils.URLInt64(w, r, "id")
	if !ok {
		return
	}

	var body struct {
		FormData json.RawMessage   `json:"form_data"`
		Status   models.FormStatus `json:"status"`
	}
	if err := utils.DecodeJSON(w, r, &body); err != nil {
		return
	}

	f, err := h.Forms.Update(r.Context(), id, utils.NormalizeFormData(body.FormData), formStatus(body.Status))
	if errors.Is(err, errors.NotFound) {
		utils.Fail(w, http.StatusOK, msgFormNotFound)
		return
	}
	if err != nil {
		storeError(w, r, err, msgErrEditingForm)
		return
	}

	utils.OK(w, utils.Envelope{"form": f})
}

// ---------------------- DELETE ----------------------

func (h *FormHandler) DeleteForm(w http.ResponseWriter, r *http.Request) {
	id, ok := utils.URLInt64(w, r, "id")
	if !ok {
		return
	}

	if err := h.Forms.Delete(r.Context(), id); err != nil {
		storeError(w, r, err, msgErrDeletingForm)
		return
	}

	utils.OK(w, nil)
}

// ---------------------- NOTE ----------------------

// AddNote appends one line to the form's notes and returns the refreshed form.
func (h *FormHandler) AddNote(w http.ResponseWriter, r *http.Request) {
	id, ok := utils.URLInt64(w, r, "id")
	if !ok {
		return
	}

	var body struct {
		Note     string      `json:"note"`
		UserID   int64       `json:"user_id"`
		UserRole models.Role `json:"user_role"`
	}
	if err := utils.DecodeJSON(w, r, &body); err != nil {
		return
	}

	note := utils.SingleLine(body.Note)
	if note == "" {
		utils.Fail(w, http.StatusOK, msgEmptyNote)
		return
	}

	f, err := h.Forms.AppendNote(r.Context(), id, note)
	if errors.Is(err, errors.NotFound) {
		utils.Fail(w, http.StatusOK, msgFormNotFound)
		return
	}
	if err != nil {
		storeError(w, r, err, msgErrAddingNote)
		return
	}

	logger.Debugf("note added to form %d by %s %d", id, body.UserRole, body.UserID)
	utils.OK(w, utils.Envelope{"form": f})
}
