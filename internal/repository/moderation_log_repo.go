package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"uslugi/internal/domain"
)

type ModerationLogRepository struct {
	db *gorm.DB
}

func NewModerationLogRepository(db *gorm.DB) *ModerationLogRepository {
	return &ModerationLogRepository{db: db}
}

func (r *ModerationLogRepository) Create(ctx context.Context, l *domain.ModerationLog) error {
	if l.ID == "" {
		l.ID = uuid.NewString()
	}
	return r.db.WithContext(ctx).Create(l).Error
}

func (r *ModerationLogRepository) ListByPost(ctx context.Context, postID string) ([]domain.ModerationLog, error) {
	var logs []domain.ModerationLog
	tx := r.db.WithContext(ctx).
		Where("post_id = ?", postID).
		Order("created_at DESC").
		Find(&logs)
	return logs, tx.Error
}
