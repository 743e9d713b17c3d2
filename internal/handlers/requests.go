package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"mime"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"gorm.io/datatypes"

	"github.com/Davazzzz/carparts-request/internal/config"
	"github.com/Davazzzz/carparts-request/internal/httpx"
	"github.com/Davazzzz/carparts-request/internal/models"
	"github.com/Davazzzz/carparts-request/internal/store"
	"github.com/Davazzzz/carparts-request/internal/validation"
	"github.com/Davazzzz/carparts-request/internal/view"
)

// RequestHandler serves the customer-facing pages and the request
// submission endpoint.
type RequestHandler struct {
	store   store.RequestStore
	uploads config.UploadConfig
}

func NewRequestHandler(s store.RequestStore, uploads config.UploadConfig) *RequestHandler {
	return &RequestHandler{store: s, uploads: uploads}
}

// Index is the landing page with language selection.
func (h *RequestHandler) Index(w http.ResponseWriter, r *http.Request) {
	if err := view.Render(w, r, "index.html", nil); err != nil {
		http.Error(w, "Failed to render page", http.StatusInternalServerError)
	}
}

// Form is the customer request form.
func (h *RequestHandler) Form(w http.ResponseWriter, r *http.Request) {
	if err := view.Render(w, r, "request_form.html", nil); err != nil {
		http.Error(w, "Failed to render page", http.StatusInternalServerError)
	}
}

// ThankYou shows the confirmation page with the submitted request, when a
// request_id query parameter identifies one.
func (h *RequestHandler) ThankYou(w http.ResponseWriter, r *http.Request) {
	var submitted *models.PartRequest
	if idStr := r.URL.Query().Get("request_id"); idStr != "" {
		if id, err := strconv.Atoi(idStr); err == nil {
			all, err := h.store.All()
			if err == nil {
				for i := range all {
					if all[i].ID == id {
						submitted = &all[i]
						break
					}
				}
			}
		}
	}
	if err := view.Render(w, r, "thank_you.html", map[string]any{"Request": submitted}); err != nil {
		http.Error(w, "Failed to render page", http.StatusInternalServerError)
	}
}

// Submit handles a customer request submission, either as JSON or as
// multipart form data when photos are attached.
func (h *RequestHandler) Submit(w http.ResponseWriter, r *http.Request) {
	var req *models.PartRequest
	var err error

	mediaType, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))
	if mediaType == "multipart/form-data" {
		req, err = h.parseMultipart(r)
	} else {
		req, err = parseJSON(r)
	}
	if err != nil {
		httpx.Fail(w, http.StatusBadRequest, err.Error())
		return
	}

	v := make(validation.Violations)
	validation.Required("customer_name", req.CustomerName, v)
	validation.Required("part_needed", req.PartNeeded, v)
	validation.NonNegativeInt("mileage", req.Mileage, v)
	if !v.Empty() {
		httpx.FailWith(w, http.StatusBadRequest, "invalid request", httpx.Envelope{"violations": v})
		return
	}

	stored, err := h.store.Add(req)
	if err != nil {
		log.Printf("submit request failed: %v", err)
		httpx.Fail(w, http.StatusInternalServerError, "failed to save request")
		return
	}

	httpx.OK(w, httpx.Envelope{
		"message":    "Request submitted successfully!",
		"request_id": stored.ID,
	})
}

func parseJSON(r *http.Request) (*models.PartRequest, error) {
	var req models.PartRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		return nil, errors.New("invalid JSON body")
	}
	return &req, nil
}

func (h *RequestHandler) parseMultipart(r *http.Request) (*models.PartRequest, error) {
	if err := r.ParseMultipartForm(h.uploads.MaxMB << 20); err != nil {
		return nil, errors.New("invalid multipart body")
	}

	mileage, _ := strconv.Atoi(r.FormValue("mileage"))
	req := &models.PartRequest{
		CustomerName:      r.FormValue("customer_name"),
		CustomerPhone:     r.FormValue("customer_phone"),
		CustomerEmail:     r.FormValue("customer_email"),
		VehicleYear:       r.FormValue("vehicle_year"),
		VehicleMake:       r.FormValue("vehicle_make"),
		VehicleModel:      r.FormValue("vehicle_model"),
		VehicleColor:      r.FormValue("vehicle_color"),
		ColorDoesntMatter: r.FormValue("color_doesnt_matter") == "true",
		CompatibleModels:  r.FormValue("compatible_models"),
		PypLocation:       r.FormValue("pyp_location"),
		Mileage:           mileage,
		PartNeeded:        r.FormValue("part_needed"),
		PartSize:          r.FormValue("part_size"),
		AdditionalNotes:   r.FormValue("additional_notes"),
		SecureMethod:      r.FormValue("secure_method"),
		Warranty:          r.FormValue("warranty") == "true",
		WantsWarranty:     r.FormValue("wants_warranty") == "true",
		Language:          r.FormValue("language"),
		DepositAmount:     r.FormValue("deposit_amount"),
	}

	// The form posts the chosen catalog parts as one JSON-encoded field;
	// decode it here so the rest of the system only sees typed selections.
	if raw := r.FormValue("junkyard_parts"); raw != "" && raw != "[]" {
		var selections []models.PartSelection
		if err := json.Unmarshal([]byte(raw), &selections); err == nil {
			req.JunkyardParts = datatypes.NewJSONSlice(selections)
		}
	}

	if r.MultipartForm != nil {
		files := r.MultipartForm.File["part_images[]"]
		names, err := h.saveUploads(files)
		if err != nil {
			return nil, err
		}
		req.PartImages = datatypes.NewJSONSlice(names)
	}
	return req, nil
}

// saveUploads stores each attached photo under the upload dir and returns
// the stored filenames in attachment order. The store only ever sees these
// names, never the file contents.
func (h *RequestHandler) saveUploads(files []*multipart.FileHeader) ([]string, error) {
	var names []string
	for _, fh := range files {
		if fh.Filename == "" {
			continue
		}
		name := uuid.NewString() + "_" + sanitizeFilename(fh.Filename)
		if err := h.saveUpload(fh, name); err != nil {
			return nil, err
		}
		names = append(names, name)
	}
	return names, nil
}

func (h *RequestHandler) saveUpload(fh *multipart.FileHeader, name string) error {
	src, err := fh.Open()
	if err != nil {
		return fmt.Errorf("open upload %s: %w", fh.Filename, err)
	}
	defer src.Close()

	if err := os.MkdirAll(h.uploads.Dir, 0o755); err != nil {
		return fmt.Errorf("create upload dir: %w", err)
	}
	dst, err := os.Create(filepath.Join(h.uploads.Dir, name))
	if err != nil {
		return fmt.Errorf("create upload file: %w", err)
	}
	defer dst.Close()

	if _, err := io.Copy(dst, src); err != nil {
		return fmt.Errorf("write upload file: %w", err)
	}
	return nil
}

// sanitizeFilename strips any path components and characters that have no
// business in a stored filename.
func sanitizeFilename(name string) string {
	name = filepath.Base(filepath.Clean(name))
	var b strings.Builder
	for _, r := range name {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
			b.WriteRune(r)
		case r == '.' || r == '-' || r == '_':
			b.WriteRune(r)
		default:
			b.WriteRune('_')
		}
	}
	out := b.String()
	if out == "" || out == "." || out == ".." {
		return "upload"
	}
	return out
}
