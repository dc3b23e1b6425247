package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"uslugi/internal/domain"
)

type ReviewRepository struct {
	db *gorm.DB
}

func NewReviewRepository(db *gorm.DB) *ReviewRepository {
	return &ReviewRepository{db: db}
}

func (r *ReviewRepository) Create(ctx context.Context, rv *domain.Review) error {
	if rv.ID == "" {
		rv.ID = uuid.NewString()
	}
	return r.db.WithContext(ctx).Create(rv).Error
}

func (r *ReviewRepository) GetByID(ctx context.Context, id string) (*domain.Review, error) {
	var rv domain.Review
	tx := r.db.WithContext(ctx).First(&rv, "id = ?", id)
	if tx.Error != nil {
		return nil, tx.Error
	}
	return &rv, nil
}

func (r *ReviewRepository) ExistsForBooking(ctx context.Context, bookingID string) (bool, error) {
	var cnt int64
	tx := r.db.WithContext(ctx).
		Model(&domain.Review{}).
		Where("booking_id = ?", bookingID).
		Count(&cnt)
	return cnt > 0, tx.Error
}

func (r *ReviewRepository) ExistsForReviewerPost(ctx context.Context, reviewerID, postID string) (bool, error) {
	var cnt int64
	tx := r.db.WithContext(ctx).
		Model(&domain.Review{}).
		Where("reviewer_id = ? AND post_id = ?", reviewerID, postID).
		Count(&cnt)
	return cnt > 0, tx.Error
}

func (r *ReviewRepository) ListByReviewed(ctx context.Context, reviewedID string, limit, offset int) ([]domain.Review, error) {
	var reviews []domain.Review
	tx := r.db.WithContext(ctx).
		Where("reviewed_id = ?", reviewedID).
		Order("created_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&reviews)
	return reviews, tx.Error
}

func (r *ReviewRepository) AverageForUser(ctx context.Context, reviewedID string) (float64, int64, error) {
	var row struct {
		Avg   float64
		Count int64
	}
	tx := r.db.WithContext(ctx).
		Model(&domain.Review{}).
		Select("COALESCE(AVG(rating), 0) AS avg, COUNT(1) AS count").
		Where("reviewed_id = ?", reviewedID).
		Scan(&row)
	return row.Avg, row.Count, tx.Error
}

func (r *ReviewRepository) SetResponse(ctx context.Context, id, resp string) (*domain.Review, error) {
	tx := r.db.WithContext(ctx).
		Model(&domain.Review{}).
		Where("id = ?", id).
		Update("response", resp)
	if tx.Error != nil {
		return nil, tx.Error
	}
	if tx.RowsAffected == 0 {
		return nil, gorm.ErrRecordNotFound
	}
	return r.GetByID(ctx, id)
}
