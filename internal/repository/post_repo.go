package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"uslugi/internal/domain"
)

type PostRepository struct {
	db *gorm.DB
}

func NewPostRepository(db *gorm.DB) *PostRepository {
	return &PostRepository{db: db}
}

func (r *PostRepository) Create(ctx context.Context, p *domain.Post) error {
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	return r.db.WithContext(ctx).Create(p).Error
}

func (r *PostRepository) GetByID(ctx context.Context, id string) (*domain.Post, error) {
	var p domain.Post
	tx := r.db.WithContext(ctx).First(&p, "id = ?", id)
	if tx.Error != nil {
		return nil, tx.Error
	}
	return &p, nil
}

func (r *PostRepository) ListByUser(ctx context.Context, userID string) ([]domain.Post, error) {
	var posts []domain.Post
	tx := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&posts)
	return posts, tx.Error
}

type PostFilter struct {
	Type       string
	CategoryID string
	City       string
	Query      string
	Limit      int
	Offset     int
}

// Search returns active, approved posts matching the filter.
func (r *PostRepository) Search(ctx context.Context, f PostFilter) ([]domain.Post, int64, error) {
	q := r.db.WithContext(ctx).Model(&domain.Post{}).
		Where("status = ? AND moderation_status = ?", domain.PostActive, domain.ModerationApproved)

	if f.Type != "" {
		q = q.Where("type = ?", f.Type)
	}
	if f.CategoryID != "" {
		q = q.Where("category_id = ?", f.CategoryID)
	}
	if f.City != "" {
		q = q.Where("city = ?", f.City)
	}
	if f.Query != "" {
		like := "%" + f.Query + "%"
		q = q.Where("title LIKE ? OR description LIKE ?", like, like)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	limit := f.Limit
	if limit <= 0 || limit > 100 {
		limit = 20
	}

	var posts []domain.Post
	if err := q.Order("created_at DESC").Limit(limit).Offset(f.Offset).Find(&posts).Error; err != nil {
		return nil, 0, err
	}
	return posts, total, nil
}

func (r *PostRepository) UpdateStatus(ctx context.Context, id string, status domain.PostStatus) error {
	return r.db.WithContext(ctx).
		Model(&domain.Post{}).
		Where("id = ?", id).
		Update("status", string(status)).Error
}

// Reactivate forces re-moderation: status and moderation_status change in
// one update, never one without the other.
func (r *PostRepository) Reactivate(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).
		Model(&domain.Post{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"status":            string(domain.PostPending),
			"moderation_status": string(domain.ModerationChecking),
		}).Error
}

func (r *PostRepository) SubmitAppeal(ctx context.Context, id, message string, at time.Time) error {
	return r.db.WithContext(ctx).
		Model(&domain.Post{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"appeal_status":  string(domain.AppealPending),
			"appeal_message": message,
			"appealed_at":    at,
		}).Error
}

func (r *PostRepository) SetAppealStatus(ctx context.Context, id string, status domain.AppealStatus) error {
	return r.db.WithContext(ctx).
		Model(&domain.Post{}).
		Where("id = ?", id).
		Update("appeal_status", string(status)).Error
}

// ApplyModeration writes the verdict: only approved posts go active,
// everything else stays pending.
func (r *PostRepository) ApplyModeration(ctx context.Context, id string, verdict domain.ModerationStatus, reason string) error {
	status := domain.PostPending
	if verdict == domain.ModerationApproved {
		status = domain.PostActive
	}
	return r.db.WithContext(ctx).
		Model(&domain.Post{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"moderation_status": string(verdict),
			"moderation_reason": reason,
			"status":            string(status),
		}).Error
}

func (r *PostRepository) ListByModerationStatus(ctx context.Context, statuses []string, limit, offset int) ([]domain.Post, int64, error) {
	q := r.db.WithContext(ctx).Model(&domain.Post{}).
		Where("moderation_status IN ?", statuses)

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var posts []domain.Post
	if err := q.Order("created_at ASC").Limit(limit).Offset(offset).Find(&posts).Error; err != nil {
		return nil, 0, err
	}
	return posts, total, nil
}

func (r *PostRepository) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Delete(&domain.Post{}, "id = ?", id).Error
}

func (r *PostRepository) Extend(ctx context.Context, id string, until time.Time) error {
	return r.db.WithContext(ctx).
		Model(&domain.Post{}).
		Where("id = ?", id).
		Update("expires_at", until).Error
}

func (r *PostRepository) IncrementViews(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).
		Model(&domain.Post{}).
		Where("id = ?", id).
		UpdateColumn("view_count", gorm.Expr("view_count + 1")).Error
}

func (r *PostRepository) IncrementPhoneClicks(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).
		Model(&domain.Post{}).
		Where("id = ?", id).
		UpdateColumn("phone_click", gorm.Expr("phone_click + 1")).Error
}

func (r *PostRepository) SetEmbedding(ctx context.Context, id, vector string) error {
	return r.db.WithContext(ctx).
		Model(&domain.Post{}).
		Where("id = ?", id).
		Update("embedding", vector).Error
}
