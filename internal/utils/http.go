package utils

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
)

// Envelope is the body shape of every API response.
type Envelope map[string]any

// JSON writes a JSON response with status code.
func JSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if data != nil {
		_ = json.NewEncoder(w).Encode(data)
	}
}

// OK writes {"success": true} merged with payload.
func OK(w http.ResponseWriter, payload Envelope) {
	body := Envelope{"success": true}
	for k, v := range payload {
		body[k] = v
	}
	JSON(w, http.StatusOK, body)
}

// Fail writes {"success": false, "message": "..."} with a given status.
func Fail(w http.ResponseWriter, status int, msg string) {
	JSON(w, status, Envelope{"success": false, "message": msg})
}

// DecodeJSON parses the JSON body into v and answers 400 on invalid JSON.
func DecodeJSON(w http.ResponseWriter, r *http.Request, v interface{}) error {
	if r.Body == nil || r.Body == http.NoBody {
		Fail(w, http.StatusBadRequest, "Empty request body.")
		return http.ErrBodyNotAllowed
	}

	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		Fail(w, http.StatusBadRequest, "Invalid request body.")
		return err
	}

	return nil
}

// URLInt64 reads a numeric chi URL parameter. A non-numeric value answers
// 400 and reports false.
func URLInt64(w http.ResponseWriter, r *http.Request, key string) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, key), 10, 64)
	if err != nil {
		Fail(w, http.StatusBadRequest, "Invalid "+key+".")
		return 0, false
	}
	return id, true
}
