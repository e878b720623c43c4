package handlers

import (
	"net/http"

	"github.com/vaughan-dsouza/epiqbilling/internal/utils"
)

type HealthHandler struct {
	Ping Pinger
}

func NewHealthHandler(ping Pinger) *HealthHandler {
	return &HealthHandler{Ping: ping}
}

func (h *HealthHandler) Check(w http.ResponseWriter, r *http.Request) {
	if err := h.Ping(r.Context()); err != nil {
		storeError(w, r, err, "Database unavailable.")
		return
	}
	utils.OK(w, nil)
}
