package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"uslugi/internal/domain"
)

type SectionRepository struct {
	db *gorm.DB
}

func NewSectionRepository(db *gorm.DB) *SectionRepository {
	return &SectionRepository{db: db}
}

func (r *SectionRepository) Create(ctx context.Context, s *domain.HomepageSection) error {
	if s.ID == "" {
		s.ID = uuid.NewString()
	}
	return r.db.WithContext(ctx).Create(s).Error
}

func (r *SectionRepository) GetByID(ctx context.Context, id string) (*domain.HomepageSection, error) {
	var s domain.HomepageSection
	tx := r.db.WithContext(ctx).First(&s, "id = ?", id)
	if tx.Error != nil {
		return nil, tx.Error
	}
	return &s, nil
}

func (r *SectionRepository) List(ctx context.Context) ([]domain.HomepageSection, error) {
	var sections []domain.HomepageSection
	tx := r.db.WithContext(ctx).
		Order("sort_order ASC").
		Find(&sections)
	return sections, tx.Error
}

func (r *SectionRepository) ListActive(ctx context.Context) ([]domain.HomepageSection, error) {
	var sections []domain.HomepageSection
	tx := r.db.WithContext(ctx).
		Where("is_active = ?", true).
		Order("sort_order ASC").
		Find(&sections)
	return sections, tx.Error
}

func (r *SectionRepository) Update(ctx context.Context, s *domain.HomepageSection) error {
	return r.db.WithContext(ctx).Save(s).Error
}

func (r *SectionRepository) UpdateSortOrder(ctx context.Context, id string, order int) error {
	tx := r.db.WithContext(ctx).
		Model(&domain.HomepageSection{}).
		Where("id = ?", id).
		Update("sort_order", order)
	if tx.Error != nil {
		return tx.Error
	}
	if tx.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *SectionRepository) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Delete(&domain.HomepageSection{}, "id = ?", id).Error
}
