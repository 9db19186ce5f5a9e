package infrastructure

import (
	"fmt"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/yourusername/audio-fetch-go/internal/domain"
)

// SQLiteHistoryRepository implements HistoryRepository using SQLite
type SQLiteHistoryRepository struct {
	db *gorm.DB
}

// NewSQLiteHistoryRepository creates a new SQLite repository
func NewSQLiteHistoryRepository(dbPath string) (*SQLiteHistoryRepository, error) {
	db, err := gorm.Open(sqlite.Open(dbPath), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if err := db.AutoMigrate(&domain.FetchRecord{}); err != nil {
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	return &SQLiteHistoryRepository{db: db}, nil
}

// Create creates a new fetch record
func (r *SQLiteHistoryRepository) Create(record *domain.FetchRecord) error {
	return r.db.Create(record).Error
}

// Update updates an existing fetch record
func (r *SQLiteHistoryRepository) Update(record *domain.FetchRecord) error {
	return r.db.Save(record).Error
}

// FindByID finds a fetch record by ID
func (r *SQLiteHistoryRepository) FindByID(id string) (*domain.FetchRecord, error) {
	var record domain.FetchRecord
	err := r.db.First(&record, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &record, nil
}

// FindAll finds all fetch records with optional filters
func (r *SQLiteHistoryRepository) FindAll(filters map[string]interface{}) ([]*domain.FetchRecord, error) {
	var records []*domain.FetchRecord
	query := r.db

	for key, value := range filters {
		query = query.Where(fmt.Sprintf("%s = ?", key), value)
	}

	err := query.Order("created_at DESC").Find(&records).Error
	return records, err
}

// Count returns the total number of fetch records
func (r *SQLiteHistoryRepository) Count() (int64, error) {
	var count int64
	err := r.db.Model(&domain.FetchRecord{}).Count(&count).Error
	return count, err
}

// CountByStatus returns the number of fetch records by status
func (r *SQLiteHistoryRepository) CountByStatus(status domain.FetchStatus) (int64, error) {
	var count int64
	err := r.db.Model(&domain.FetchRecord{}).Where("status = ?", status).Count(&count).Error
	return count, err
}

// GetStats returns fetch statistics
func (r *SQLiteHistoryRepository) GetStats() (*domain.FetchStats, error) {
	stats := &domain.FetchStats{}

	if err := r.db.Model(&domain.FetchRecord{}).Count(&stats.Total).Error; err != nil {
		return nil, err
	}

	statusCounts := []struct {
		Status domain.FetchStatus
		Count  int64
	}{}

	if err := r.db.Model(&domain.FetchRecord{}).
		Select("status, count(*) as count").
		Group("status").
		Scan(&statusCounts).Error; err != nil {
		return nil, err
	}

	for _, sc := range statusCounts {
		switch sc.Status {
		case domain.StatusProcessing:
			stats.Processing = sc.Count
		case domain.StatusCompleted:
			stats.Completed = sc.Count
		case domain.StatusFailed:
			stats.Failed = sc.Count
		}
	}

	return stats, nil
}

// Close closes the database connection
func (r *SQLiteHistoryRepository) Close() error {
	sqlDB, err := r.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
