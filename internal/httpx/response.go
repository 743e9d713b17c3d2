// Package httpx holds small helpers for the JSON wire format shared by the
// customer form and the admin panel: every response carries a "success" flag
// so the frontend can branch without inspecting status codes.
package httpx

import (
	"encoding/json"
	"net/http"
)

// Envelope is the common response shape. Extra payload keys are merged in by
// OK; Fail only ever carries the error message.
type Envelope map[string]any

// JSON writes an arbitrary payload with the given status.
func JSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	body, err := json.Marshal(payload)
	if err != nil {
		// best-effort error response; avoid writing partial JSON
		http.Error(w, `{"success":false,"error":"encode_error"}`, http.StatusInternalServerError)
		return
	}
	w.WriteHeader(status)
	if _, err := w.Write(body); err != nil {
		// nothing we can do at this point
		_ = err
	}
}

// OK writes a 200 success envelope with the given extra payload keys.
func OK(w http.ResponseWriter, payload Envelope) {
	body := Envelope{"success": true}
	for k, v := range payload {
		body[k] = v
	}
	JSON(w, http.StatusOK, body)
}

// Fail writes a failure envelope with the given status and message.
func Fail(w http.ResponseWriter, status int, msg string) {
	JSON(w, status, Envelope{"success": false, "error": msg})
}

// FailWith writes a failure envelope with extra detail keys, e.g. per-field
// validation violations.
func FailWith(w http.ResponseWriter, status int, msg string, details Envelope) {
	body := Envelope{"success": false, "error": msg}
	for k, v := range details {
		body[k] = v
	}
	JSON(w, status, body)
}
