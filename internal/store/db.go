package store

import (
	"errors"
	"fmt"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/Davazzzz/carparts-request/internal/models"
)

// DB is the relational backend. Concurrency control is delegated to the
// database's per-statement transaction semantics; there is no application
// level locking and no multi-statement transaction spanning read-then-write.
type DB struct {
	db *gorm.DB
}

// OpenDB connects to PostgreSQL and runs the idempotent schema migration.
func OpenDB(dsn string) (*DB, error) {
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		return nil, fmt.Errorf("connect database: %w", err)
	}
	s := &DB{db: db}
	if err := s.Migrate(); err != nil {
		return nil, err
	}
	return s, nil
}

// NewDB wraps an existing gorm connection without migrating. Tests use this
// with the sqlite driver.
func NewDB(db *gorm.DB) *DB {
	return &DB{db: db}
}

// Migrate creates the customer_requests table if it is absent.
func (s *DB) Migrate() error {
	if err := s.db.AutoMigrate(&models.PartRequest{}); err != nil {
		return fmt.Errorf("migrate customer_requests: %w", err)
	}
	return nil
}

func (s *DB) Add(req *models.PartRequest) (*models.PartRequest, error) {
	stampNew(req, time.Now())
	req.ID = 0 // let the sequence assign; ids are never reused after delete
	if err := s.db.Create(req).Error; err != nil {
		return nil, fmt.Errorf("insert request: %w", err)
	}
	return req, nil
}

func (s *DB) All() ([]models.PartRequest, error) {
	var requests []models.PartRequest
	err := s.db.Order("created_at DESC, id DESC").Find(&requests).Error
	if err != nil {
		return nil, fmt.Errorf("list requests: %w", err)
	}
	return requests, nil
}

func (s *DB) ByStatus(status string) ([]models.PartRequest, error) {
	var requests []models.PartRequest
	err := s.db.Where("status = ?", status).
		Order("created_at DESC, id DESC").
		Find(&requests).Error
	if err != nil {
		return nil, fmt.Errorf("list requests by status: %w", err)
	}
	return requests, nil
}

func (s *DB) Update(id int, patch models.RequestPatch) (*models.PartRequest, error) {
	var req models.PartRequest
	if err := s.db.First(&req, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("load request %d: %w", id, err)
	}

	patch.Apply(&req)
	now := time.Now()
	req.UpdatedAt = &now
	req.ID = id

	if err := s.db.Save(&req).Error; err != nil {
		return nil, fmt.Errorf("update request %d: %w", id, err)
	}
	return &req, nil
}

func (s *DB) Delete(id int) (bool, error) {
	res := s.db.Delete(&models.PartRequest{}, id)
	if res.Error != nil {
		return false, fmt.Errorf("delete request %d: %w", id, res.Error)
	}
	return res.RowsAffected > 0, nil
}

func (s *DB) DeleteAll() (int64, error) {
	res := s.db.Where("1 = 1").Delete(&models.PartRequest{})
	if res.Error != nil {
		return 0, fmt.Errorf("delete all requests: %w", res.Error)
	}
	return res.RowsAffected, nil
}

func (s *DB) Stats() (models.RequestStats, error) {
	var stats models.RequestStats
	model := s.db.Model(&models.PartRequest{})
	if err := model.Count(&stats.Total).Error; err != nil {
		return stats, fmt.Errorf("count requests: %w", err)
	}
	counts := []struct {
		status string
		dst    *int64
	}{
		{models.StatusNew, &stats.New},
		{models.StatusQuoted, &stats.Quoted},
		{models.StatusCompleted, &stats.Completed},
	}
	for _, c := range counts {
		err := s.db.Model(&models.PartRequest{}).
			Where("status = ?", c.status).
			Count(c.dst).Error
		if err != nil {
			return stats, fmt.Errorf("count %s requests: %w", c.status, err)
		}
	}
	return stats, nil
}

func (s *DB) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
