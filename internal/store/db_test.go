package store

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/Davazzzz/carparts-request/internal/models"
)

func newDBStore(t *testing.T) *DB {
	t.Helper()
	// Use a unique in-memory database per test to avoid cross-test collisions.
	dsn := "file:" + t.Name() + "?mode=memory&cache=shared"
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	s := NewDB(db)
	if err := s.Migrate(); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return s
}

func TestDBAddAppliesDefaults(t *testing.T) {
	s := newDBStore(t)

	stored, err := s.Add(&models.PartRequest{
		CustomerName: "Maria Lopez",
		PartNeeded:   "Alternator",
	})
	require.NoError(t, err)

	require.NotZero(t, stored.ID)
	require.Equal(t, models.StatusNew, stored.Status)
	require.Equal(t, "40", stored.PartSize)
	require.Equal(t, "en", stored.Language)
	require.Equal(t, "0", stored.DepositAmount)
	require.True(t, stored.DepositRequired)
	require.False(t, stored.DepositPaid)
	require.NotEmpty(t, stored.Date)
	require.NotEmpty(t, stored.Time)
	require.Nil(t, stored.UpdatedAt)
}

func TestDBUpdate(t *testing.T) {
	s := newDBStore(t)
	stored, err := s.Add(&models.PartRequest{CustomerName: "Joe", PartNeeded: "Brake Rotor"})
	require.NoError(t, err)

	status := models.StatusQuoted
	amount := 80.0
	updated, err := s.Update(stored.ID, models.RequestPatch{
		Status:      &status,
		QuoteAmount: &amount,
	})
	require.NoError(t, err)
	require.Equal(t, stored.ID, updated.ID)
	require.Equal(t, models.StatusQuoted, updated.Status)
	require.Equal(t, 80.0, updated.QuoteAmount)
	require.Equal(t, "Joe", updated.CustomerName)
	require.NotNil(t, updated.UpdatedAt)

	// persisted, not just returned
	all, err := s.All()
	require.NoError(t, err)
	require.Len(t, all, 1)
	require.Equal(t, models.StatusQuoted, all[0].Status)
}

func TestDBUpdateUnknownID(t *testing.T) {
	s := newDBStore(t)
	status := models.StatusCompleted
	_, err := s.Update(42, models.RequestPatch{Status: &status})
	require.ErrorIs(t, err, ErrNotFound)
}

func TestDBDelete(t *testing.T) {
	s := newDBStore(t)
	stored, err := s.Add(&models.PartRequest{CustomerName: "c", PartNeeded: "p"})
	require.NoError(t, err)

	deleted, err := s.Delete(999)
	require.NoError(t, err)
	require.False(t, deleted)

	deleted, err = s.Delete(stored.ID)
	require.NoError(t, err)
	require.True(t, deleted)

	all, err := s.All()
	require.NoError(t, err)
	require.Empty(t, all)
}

func TestDBAllNewestFirst(t *testing.T) {
	s := newDBStore(t)

	base := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	var ids []int
	for i := 0; i < 3; i++ {
		stored, err := s.Add(&models.PartRequest{CustomerName: "c", PartNeeded: "p"})
		require.NoError(t, err)
		err = s.db.Model(&models.PartRequest{}).
			Where("id = ?", stored.ID).
			Update("created_at", base.Add(time.Duration(i)*time.Hour)).Error
		require.NoError(t, err)
		ids = append(ids, stored.ID)
	}

	all, err := s.All()
	require.NoError(t, err)
	require.Len(t, all, 3)
	require.Equal(t, ids[2], all[0].ID)
	require.Equal(t, ids[1], all[1].ID)
	require.Equal(t, ids[0], all[2].ID)
}

func TestDBStatsAndByStatus(t *testing.T) {
	s := newDBStore(t)
	statuses := []string{
		models.StatusNew, models.StatusNew,
		models.StatusQuoted, models.StatusCompleted, "archived",
	}
	for _, status := range statuses {
		stored, err := s.Add(&models.PartRequest{CustomerName: "c", PartNeeded: "p"})
		require.NoError(t, err)
		if status != models.StatusNew {
			st := status
			_, err = s.Update(stored.ID, models.RequestPatch{Status: &st})
			require.NoError(t, err)
		}
	}

	stats, err := s.Stats()
	require.NoError(t, err)
	require.Equal(t, models.RequestStats{Total: 5, New: 2, Quoted: 1, Completed: 1}, stats)

	archived, err := s.ByStatus("archived")
	require.NoError(t, err)
	require.Len(t, archived, 1)
}

func TestDBDeleteAll(t *testing.T) {
	s := newDBStore(t)
	for i := 0; i < 4; i++ {
		_, err := s.Add(&models.PartRequest{CustomerName: "c", PartNeeded: "p"})
		require.NoError(t, err)
	}

	count, err := s.DeleteAll()
	require.NoError(t, err)
	require.EqualValues(t, 4, count)

	stats, err := s.Stats()
	require.NoError(t, err)
	require.Zero(t, stats.Total)
}

func TestDBPartImagesRoundTrip(t *testing.T) {
	s := newDBStore(t)
	req := &models.PartRequest{CustomerName: "c", PartNeeded: "p"}
	req.PartImages = append(req.PartImages, "first.jpg", "second.jpg")
	req.JunkyardParts = append(req.JunkyardParts, models.PartSelection{Name: "Brake Rotor", Price: 80})

	stored, err := s.Add(req)
	require.NoError(t, err)

	all, err := s.All()
	require.NoError(t, err)
	require.Len(t, all, 1)
	require.Equal(t, []string{"first.jpg", "second.jpg"}, []string(all[0].PartImages))
	require.Equal(t, stored.JunkyardParts, all[0].JunkyardParts)
}
