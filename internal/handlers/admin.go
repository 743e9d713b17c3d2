package handlers

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strconv"

	"github.com/Davazzzz/carparts-request/internal/httpx"
	"github.com/Davazzzz/carparts-request/internal/models"
	"github.com/Davazzzz/carparts-request/internal/store"
	"github.com/Davazzzz/carparts-request/internal/view"
)

// AdminHandler serves the admin panel and its request-management API.
type AdminHandler struct {
	store store.RequestStore
}

func NewAdminHandler(s store.RequestStore) *AdminHandler {
	return &AdminHandler{store: s}
}

// Panel is the admin dashboard page.
func (h *AdminHandler) Panel(w http.ResponseWriter, r *http.Request) {
	if err := view.Render(w, r, "admin.html", nil); err != nil {
		http.Error(w, "Failed to render page", http.StatusInternalServerError)
	}
}

// List returns every request plus the dashboard counters. An optional
// ?status= filter narrows the list by exact status match.
func (h *AdminHandler) List(w http.ResponseWriter, r *http.Request) {
	var requests []models.PartRequest
	var err error
	if status := r.URL.Query().Get("status"); status != "" {
		requests, err = h.store.ByStatus(status)
	} else {
		requests, err = h.store.All()
	}
	if err != nil {
		log.Printf("list requests failed: %v", err)
		httpx.Fail(w, http.StatusInternalServerError, "failed to load requests")
		return
	}

	stats, err := h.store.Stats()
	if err != nil {
		log.Printf("request stats failed: %v", err)
		httpx.Fail(w, http.StatusInternalServerError, "failed to load stats")
		return
	}

	if requests == nil {
		requests = []models.PartRequest{}
	}
	httpx.OK(w, httpx.Envelope{"requests": requests, "stats": stats})
}

// Update applies a field-level patch to one request (quote, status change,
// deposit flags). An "id" key in the payload is ignored.
func (h *AdminHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	var patch models.RequestPatch
	if err := json.NewDecoder(r.Body).Decode(&patch); err != nil {
		httpx.Fail(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	updated, err := h.store.Update(id, patch)
	if errors.Is(err, store.ErrNotFound) {
		httpx.Fail(w, http.StatusNotFound, "Request not found")
		return
	}
	if err != nil {
		log.Printf("update request %d failed: %v", id, err)
		httpx.Fail(w, http.StatusInternalServerError, "failed to update request")
		return
	}

	httpx.OK(w, httpx.Envelope{"request": updated})
}

// Delete removes one request.
func (h *AdminHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	deleted, err := h.store.Delete(id)
	if err != nil {
		log.Printf("delete request %d failed: %v", id, err)
		httpx.Fail(w, http.StatusInternalServerError, "failed to delete request")
		return
	}
	if !deleted {
		httpx.Fail(w, http.StatusNotFound, "Request not found")
		return
	}

	httpx.OK(w, httpx.Envelope{"message": "Request deleted"})
}

// DeleteAll removes every request in one operation and reports the count.
func (h *AdminHandler) DeleteAll(w http.ResponseWriter, r *http.Request) {
	count, err := h.store.DeleteAll()
	if err != nil {
		log.Printf("delete all requests failed: %v", err)
		httpx.Fail(w, http.StatusInternalServerError, "failed to delete requests")
		return
	}

	httpx.OK(w, httpx.Envelope{
		"message":       "All requests deleted",
		"deleted_count": count,
	})
}

func pathID(w http.ResponseWriter, r *http.Request) (int, bool) {
	id, err := strconv.Atoi(r.PathValue("id"))
	if err != nil {
		httpx.Fail(w, http.StatusBadRequest, "invalid request id")
		return 0, false
	}
	return id, true
}
