package store

import (
	"encoding/json"
	"fmt"
	"log"
	"os"
	"sort"
	"sync"
	"time"

	"github.com/Davazzzz/carparts-request/internal/models"
)

// FileStore is the flat-file backend used when no database is configured.
// The whole collection lives in memory and is rewritten to one JSON document
// on every mutation. The mutex serializes read-modify-write-save cycles so
// concurrent requests cannot lose updates; the file write itself is not
// atomic against a process crash.
type FileStore struct {
	mu       sync.Mutex
	path     string
	requests []models.PartRequest
}

// OpenFile loads the collection from path. A missing file means no requests
// yet. A file that exists but fails to parse is also treated as empty, but
// logged, so corruption does not pass silently.
func OpenFile(path string) (*FileStore, error) {
	s := &FileStore{path: path}

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return s, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	if err := json.Unmarshal(data, &s.requests); err != nil {
		log.Printf("WARNING: %s is not valid JSON, starting with an empty collection: %v", path, err)
		s.requests = nil
	}
	return s, nil
}

// save rewrites the whole document. Caller must hold the mutex.
func (s *FileStore) save() error {
	data, err := json.MarshalIndent(s.requests, "", "  ")
	if err != nil {
		return fmt.Errorf("encode requests: %w", err)
	}
	if err := os.WriteFile(s.path, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", s.path, err)
	}
	return nil
}

// nextID allocates max existing id + 1 so ids are never reused after a
// deletion. Caller must hold the mutex.
func (s *FileStore) nextID() int {
	maxID := 0
	for i := range s.requests {
		if s.requests[i].ID > maxID {
			maxID = s.requests[i].ID
		}
	}
	return maxID + 1
}

func (s *FileStore) Add(req *models.PartRequest) (*models.PartRequest, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	stampNew(req, time.Now())
	req.ID = s.nextID()

	s.requests = append(s.requests, *req)
	if err := s.save(); err != nil {
		s.requests = s.requests[:len(s.requests)-1]
		return nil, err
	}
	return req, nil
}

func (s *FileStore) All() ([]models.PartRequest, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]models.PartRequest, len(s.requests))
	copy(out, s.requests)
	sort.Slice(out, func(i, j int) bool {
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.After(out[j].CreatedAt)
		}
		return out[i].ID > out[j].ID
	})
	return out, nil
}

func (s *FileStore) ByStatus(status string) ([]models.PartRequest, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var out []models.PartRequest
	for i := range s.requests {
		if s.requests[i].Status == status {
			out = append(out, s.requests[i])
		}
	}
	return out, nil
}

func (s *FileStore) Update(id int, patch models.RequestPatch) (*models.PartRequest, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.requests {
		if s.requests[i].ID != id {
			continue
		}
		updated := s.requests[i]
		patch.Apply(&updated)
		now := time.Now()
		updated.UpdatedAt = &now
		updated.ID = id

		prev := s.requests[i]
		s.requests[i] = updated
		if err := s.save(); err != nil {
			s.requests[i] = prev
			return nil, err
		}
		return &updated, nil
	}
	return nil, ErrNotFound
}

func (s *FileStore) Delete(id int) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.requests {
		if s.requests[i].ID != id {
			continue
		}
		s.requests = append(s.requests[:i], s.requests[i+1:]...)
		if err := s.save(); err != nil {
			return false, err
		}
		return true, nil
	}
	return false, nil
}

func (s *FileStore) DeleteAll() (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	count := int64(len(s.requests))
	if count == 0 {
		return 0, nil
	}
	prev := s.requests
	s.requests = nil
	if err := s.save(); err != nil {
		s.requests = prev
		return 0, err
	}
	return count, nil
}

func (s *FileStore) Stats() (models.RequestStats, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	stats := models.RequestStats{Total: int64(len(s.requests))}
	for i := range s.requests {
		switch s.requests[i].Status {
		case models.StatusNew:
			stats.New++
		case models.StatusQuoted:
			stats.Quoted++
		case models.StatusCompleted:
			stats.Completed++
		}
	}
	return stats, nil
}

func (s *FileStore) Close() error { return nil }
