package handlers

import (
	"net/http"

	"github.com/vaughan-dsouza/epiqbilling/internal/models"
	"github.com/vaughan-dsouza/epiqbilling/internal/store"
	"github.com/vaughan-dsouza/epiqbilling/internal/utils"
)

type ContentHandler struct {
	Submissions store.SubmissionStore
}

func NewContentHandler(subs store.SubmissionStore) *ContentHandler {
	return &ContentHandler{Submissions: subs}
}

func (h *ContentHandler) SubmitData(w http.ResponseWriter, r *http.Request) {
	var body struct {
		UserID  int64       `json:"user_id"`
		Role    models.Role `json:"role"`
		Content string      `json:"content"`
	}
	if err := utils.DecodeJSON(w, r, &body); err != nil {
		return
	}

	sub := &models.Submission{
		UserID:  body.UserID,
		Role:    body.Role,
		Content: body.Content,
	}
	if err := h.Submissions.Create(r.Context(), sub); err != nil {
		storeError(w, r, err, msgServerError)
		return
	}

	utils.OK(w, utils.Envelope{"submission": sub})
}
