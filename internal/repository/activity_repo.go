package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"uslugi/internal/domain"
)

type ActivityRepository struct {
	db *gorm.DB
}

func NewActivityRepository(db *gorm.DB) *ActivityRepository {
	return &ActivityRepository{db: db}
}

func (r *ActivityRepository) Create(ctx context.Context, a *domain.ActivityLog) error {
	if a.ID == "" {
		a.ID = uuid.NewString()
	}
	return r.db.WithContext(ctx).Create(a).Error
}

func (r *ActivityRepository) ListByUser(ctx context.Context, userID string, limit, offset int) ([]domain.ActivityLog, error) {
	var logs []domain.ActivityLog
	tx := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&logs)
	return logs, tx.Error
}

func (r *ActivityRepository) MarkRead(ctx context.Context, userID string, ids []string) error {
	return r.db.WithContext(ctx).
		Model(&domain.ActivityLog{}).
		Where("user_id = ? AND id IN ?", userID, ids).
		Update("is_read", true).Error
}
