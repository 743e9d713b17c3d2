package store

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/Davazzzz/carparts-request/internal/models"
)

func newFileStore(t *testing.T) *FileStore {
	t.Helper()
	s, err := OpenFile(filepath.Join(t.TempDir(), "requests.json"))
	require.NoError(t, err)
	return s
}

func TestFileStoreAddAppliesDefaults(t *testing.T) {
	s := newFileStore(t)

	stored, err := s.Add(&models.PartRequest{
		CustomerName: "Maria Lopez",
		PartNeeded:   "Alternator",
		VehicleMake:  "Honda",
	})
	require.NoError(t, err)

	require.Equal(t, 1, stored.ID)
	require.Equal(t, models.StatusNew, stored.Status)
	require.Equal(t, "Maria Lopez", stored.CustomerName)
	require.Equal(t, "40", stored.PartSize)
	require.Equal(t, "en", stored.Language)
	require.Equal(t, "0", stored.DepositAmount)
	require.Zero(t, stored.QuoteAmount)
	require.True(t, stored.DepositRequired)
	require.False(t, stored.DepositPaid)
	require.False(t, stored.PhotosSent)
	require.NotEmpty(t, stored.Date)
	require.NotEmpty(t, stored.Time)
	require.False(t, stored.CreatedAt.IsZero())
	require.Nil(t, stored.UpdatedAt, "creation must not set the update timestamp")

	all, err := s.All()
	require.NoError(t, err)
	require.Len(t, all, 1)
	require.Equal(t, "Alternator", all[0].PartNeeded)
}

func TestFileStoreIDsNeverReused(t *testing.T) {
	s := newFileStore(t)

	for i := 0; i < 3; i++ {
		_, err := s.Add(&models.PartRequest{CustomerName: "c", PartNeeded: "p"})
		require.NoError(t, err)
	}

	deleted, err := s.Delete(2)
	require.NoError(t, err)
	require.True(t, deleted)

	next, err := s.Add(&models.PartRequest{CustomerName: "c", PartNeeded: "p"})
	require.NoError(t, err)
	require.Equal(t, 4, next.ID, "ids must not be reused after deletion")
}

func TestFileStoreUpdate(t *testing.T) {
	s := newFileStore(t)
	stored, err := s.Add(&models.PartRequest{CustomerName: "Joe", PartNeeded: "Brake Rotor"})
	require.NoError(t, err)

	status := models.StatusQuoted
	amount := 85.50
	msg := "Rotor in stock, front left"
	updated, err := s.Update(stored.ID, models.RequestPatch{
		Status:       &status,
		QuoteAmount:  &amount,
		QuoteMessage: &msg,
	})
	require.NoError(t, err)
	require.Equal(t, stored.ID, updated.ID)
	require.Equal(t, models.StatusQuoted, updated.Status)
	require.Equal(t, 85.50, updated.QuoteAmount)
	require.Equal(t, msg, updated.QuoteMessage)
	require.Equal(t, "Joe", updated.CustomerName, "unpatched fields keep their values")
	require.NotNil(t, updated.UpdatedAt)

	// list replacement is full, not a merge
	images := []string{"b.jpg"}
	updated, err = s.Update(stored.ID, models.RequestPatch{PartImages: &images})
	require.NoError(t, err)
	require.Equal(t, []string{"b.jpg"}, []string(updated.PartImages))
}

func TestFileStoreUpdateUnknownID(t *testing.T) {
	s := newFileStore(t)
	_, err := s.Add(&models.PartRequest{CustomerName: "Joe", PartNeeded: "p"})
	require.NoError(t, err)

	status := models.StatusCompleted
	_, err = s.Update(99, models.RequestPatch{Status: &status})
	require.ErrorIs(t, err, ErrNotFound)

	all, err := s.All()
	require.NoError(t, err)
	require.Len(t, all, 1)
	require.Equal(t, models.StatusNew, all[0].Status, "collection unchanged after a miss")
}

func TestFileStoreDelete(t *testing.T) {
	s := newFileStore(t)
	a, _ := s.Add(&models.PartRequest{CustomerName: "a", PartNeeded: "p"})
	b, _ := s.Add(&models.PartRequest{CustomerName: "b", PartNeeded: "p"})

	deleted, err := s.Delete(999)
	require.NoError(t, err)
	require.False(t, deleted)

	all, _ := s.All()
	require.Len(t, all, 2)

	deleted, err = s.Delete(a.ID)
	require.NoError(t, err)
	require.True(t, deleted)

	all, _ = s.All()
	require.Len(t, all, 1)
	require.Equal(t, b.ID, all[0].ID)
}

func TestFileStoreAllNewestFirst(t *testing.T) {
	s := newFileStore(t)

	// Stamp distinct creation times directly; Add uses the wall clock.
	base := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	for i := 0; i < 3; i++ {
		req, err := s.Add(&models.PartRequest{CustomerName: "c", PartNeeded: "p"})
		require.NoError(t, err)
		s.mu.Lock()
		s.requests[req.ID-1].CreatedAt = base.Add(time.Duration(i) * time.Hour)
		s.mu.Unlock()
	}

	all, err := s.All()
	require.NoError(t, err)
	require.Len(t, all, 3)
	require.Equal(t, []int{3, 2, 1}, []int{all[0].ID, all[1].ID, all[2].ID})
	require.True(t, all[0].CreatedAt.After(all[1].CreatedAt))
	require.True(t, all[1].CreatedAt.After(all[2].CreatedAt))
}

func TestFileStoreByStatusExactMatch(t *testing.T) {
	s := newFileStore(t)
	for _, status := range []string{models.StatusNew, models.StatusQuoted, "archived"} {
		req, err := s.Add(&models.PartRequest{CustomerName: "c", PartNeeded: "p"})
		require.NoError(t, err)
		if status != models.StatusNew {
			st := status
			_, err = s.Update(req.ID, models.RequestPatch{Status: &st})
			require.NoError(t, err)
		}
	}

	quoted, err := s.ByStatus(models.StatusQuoted)
	require.NoError(t, err)
	require.Len(t, quoted, 1)

	none, err := s.ByStatus("Quoted") // no normalization
	require.NoError(t, err)
	require.Empty(t, none)
}

func TestFileStoreStats(t *testing.T) {
	s := newFileStore(t)
	statuses := []string{
		models.StatusNew, models.StatusNew,
		models.StatusQuoted, models.StatusCompleted, "archived",
	}
	for _, status := range statuses {
		req, err := s.Add(&models.PartRequest{CustomerName: "c", PartNeeded: "p"})
		require.NoError(t, err)
		if status != models.StatusNew {
			st := status
			_, err = s.Update(req.ID, models.RequestPatch{Status: &st})
			require.NoError(t, err)
		}
	}

	stats, err := s.Stats()
	require.NoError(t, err)
	require.Equal(t, models.RequestStats{Total: 5, New: 2, Quoted: 1, Completed: 1}, stats)
}

func TestFileStoreDeleteAll(t *testing.T) {
	s := newFileStore(t)
	for i := 0; i < 3; i++ {
		_, err := s.Add(&models.PartRequest{CustomerName: "c", PartNeeded: "p"})
		require.NoError(t, err)
	}

	count, err := s.DeleteAll()
	require.NoError(t, err)
	require.EqualValues(t, 3, count)

	all, err := s.All()
	require.NoError(t, err)
	require.Empty(t, all)

	count, err = s.DeleteAll()
	require.NoError(t, err)
	require.Zero(t, count)
}

func TestFileStoreRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "requests.json")
	s, err := OpenFile(path)
	require.NoError(t, err)

	req := &models.PartRequest{
		CustomerName:  "Maria",
		PartNeeded:    "Front Brake Pad",
		VehicleYear:   "2008",
		VehicleMake:   "Honda",
		VehicleModel:  "Civic",
		Mileage:       120000,
		WantsWarranty: true,
	}
	req.PartImages = append(req.PartImages, "a.jpg", "b.jpg", "c.jpg")
	req.JunkyardParts = append(req.JunkyardParts, models.PartSelection{Name: "Front Brake Pad", Price: 45})
	stored, err := s.Add(req)
	require.NoError(t, err)

	reloaded, err := OpenFile(path)
	require.NoError(t, err)
	all, err := reloaded.All()
	require.NoError(t, err)
	require.Len(t, all, 1)

	got := all[0]
	require.Equal(t, stored.ID, got.ID)
	require.Equal(t, stored.CustomerName, got.CustomerName)
	require.Equal(t, stored.Mileage, got.Mileage)
	require.True(t, got.WantsWarranty)
	require.Equal(t, []string{"a.jpg", "b.jpg", "c.jpg"}, []string(got.PartImages),
		"image filename ordering survives the round trip")
	require.Equal(t, stored.JunkyardParts, got.JunkyardParts)
	require.True(t, stored.CreatedAt.Equal(got.CreatedAt))
}

func TestFileStoreMissingFileMeansEmpty(t *testing.T) {
	s, err := OpenFile(filepath.Join(t.TempDir(), "does-not-exist.json"))
	require.NoError(t, err)

	all, err := s.All()
	require.NoError(t, err)
	require.Empty(t, all)
}

func TestFileStoreCorruptedFileMeansEmpty(t *testing.T) {
	path := filepath.Join(t.TempDir(), "requests.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o644))

	s, err := OpenFile(path)
	require.NoError(t, err)

	all, err := s.All()
	require.NoError(t, err)
	require.Empty(t, all)

	// the store is still usable and the next save replaces the junk
	stored, err := s.Add(&models.PartRequest{CustomerName: "c", PartNeeded: "p"})
	require.NoError(t, err)
	require.Equal(t, 1, stored.ID)
}
