package services

import (
	"context"
	"time"

	"github.com/Conceptual-Machines/comeback-api/internal/models"
	"gorm.io/gorm"
)

// GenerationRecorder persists one record per handled generation request
type GenerationRecorder interface {
	Record(ctx context.Context, record *models.GenerationRecord) error
}

type GenerationLogService struct {
	db *gorm.DB
}

func NewGenerationLogService(db *gorm.DB) *GenerationLogService {
	return &GenerationLogService{db: db}
}

// Record inserts a generation record
func (s *GenerationLogService) Record(ctx context.Context, record *models.GenerationRecord) error {
	return s.db.WithContext(ctx).Create(record).Error
}

// Recent returns the newest records, newest first
func (s *GenerationLogService) Recent(ctx context.Context, limit int) ([]models.GenerationRecord, error) {
	var records []models.GenerationRecord
	err := s.db.WithContext(ctx).
		Order("created_at DESC").
		Limit(limit).
		Find(&records).Error
	if err != nil {
		return nil, err
	}
	return records, nil
}

// Stats aggregates the generation log between from and to; zero times are open bounds
func (s *GenerationLogService) Stats(ctx context.Context, from, to time.Time) (*GenerationStats, error) {
	var stats GenerationStats

	query := s.db.WithContext(ctx).Model(&models.GenerationRecord{})
	if !from.IsZero() {
		query = query.Where("created_at >= ?", from)
	}
	if !to.IsZero() {
		query = query.Where("created_at <= ?", to)
	}

	if err := query.Select(
		"COUNT(*) as total_requests",
		"COALESCE(SUM(CASE WHEN fallback THEN 1 ELSE 0 END), 0) as fallback_requests",
		"COALESCE(SUM(total_tokens), 0) as total_tokens",
		"COALESCE(AVG(duration_ms), 0) as avg_duration_ms",
	).Scan(&stats).Error; err != nil {
		return nil, err
	}

	return &stats, nil
}

type GenerationStats struct {
	TotalRequests    int64   `json:"total_requests"`
	FallbackRequests int64   `json:"fallback_requests"`
	TotalTokens      int64   `json:"total_tokens"`
	AvgDurationMS    float64 `json:"avg_duration_ms"`
}
