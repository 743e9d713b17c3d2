// Package store persists customer part requests behind one contract with two
// interchangeable backends: a PostgreSQL table when DATABASE_URL is set, and a
// single flat JSON document otherwise.
package store

import (
	"errors"
	"time"

	"github.com/Davazzzz/carparts-request/internal/models"
)

// ErrNotFound is returned by Update when no request has the given id. Callers
// decide the user-visible failure; the store never treats a miss as fatal.
var ErrNotFound = errors.New("request not found")

// RequestStore is the storage contract shared by both backends.
type RequestStore interface {
	// Add persists a new request, applying defaults for unset fields and
	// stamping the creation date/time, and returns the stored record.
	Add(req *models.PartRequest) (*models.PartRequest, error)
	// All returns every request, newest first.
	All() ([]models.PartRequest, error)
	// ByStatus returns requests whose status exactly equals the given string.
	ByStatus(status string) ([]models.PartRequest, error)
	// Update applies the patch to the request with the given id, stamps the
	// update timestamp, and returns the updated record. The identifier is
	// never changed. Returns ErrNotFound for an unknown id.
	Update(id int, patch models.RequestPatch) (*models.PartRequest, error)
	// Delete removes the request with the given id. A missing id is a no-op
	// reported as (false, nil), not an error.
	Delete(id int) (bool, error)
	// DeleteAll removes every request and returns how many were deleted.
	DeleteAll() (int64, error)
	// Stats returns the total count and the per-status counters.
	Stats() (models.RequestStats, error)
	Close() error
}

// Config selects and configures a backend.
type Config struct {
	// DatabaseURL, when non-empty, selects the relational backend.
	DatabaseURL string
	// DataFile is the flat-file document path used when DatabaseURL is empty.
	DataFile string
}

// Open selects the backend once at startup. The caller holds the returned
// store for the process lifetime; there is no per-call backend switching.
func Open(cfg Config) (RequestStore, error) {
	if cfg.DatabaseURL != "" {
		return OpenDB(cfg.DatabaseURL)
	}
	return OpenFile(cfg.DataFile)
}

// stampNew fills the creation fields and forced defaults on a new request.
// The quote/deposit/response block is reset unconditionally: those fields
// belong to the admin workflow, not the submission.
func stampNew(req *models.PartRequest, now time.Time) {
	req.Date = now.Format("2006-01-02")
	req.Time = now.Format("3:04 PM")
	req.CreatedAt = now
	req.UpdatedAt = nil

	req.Status = models.StatusNew
	req.QuoteAmount = 0
	req.QuoteMessage = ""
	req.DepositRequired = true
	req.DepositPaid = false
	req.PhotosSent = false
	req.ResponseMessage = ""

	if req.PartSize == "" {
		req.PartSize = "40"
	}
	if req.Language == "" {
		req.Language = "en"
	}
	if req.DepositAmount == "" {
		req.DepositAmount = "0"
	}
}
