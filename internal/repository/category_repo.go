package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"uslugi/internal/domain"
)

type CategoryRepository struct {
	db *gorm.DB
}

func NewCategoryRepository(db *gorm.DB) *CategoryRepository {
	return &CategoryRepository{db: db}
}

func (r *CategoryRepository) Create(ctx context.Context, c *domain.Category) error {
	if c.ID == "" {
		c.ID = uuid.NewString()
	}
	return r.db.WithContext(ctx).Create(c).Error
}

func (r *CategoryRepository) GetByID(ctx context.Context, id string) (*domain.Category, error) {
	var c domain.Category
	tx := r.db.WithContext(ctx).First(&c, "id = ?", id)
	if tx.Error != nil {
		return nil, tx.Error
	}
	return &c, nil
}

func (r *CategoryRepository) GetBySlug(ctx context.Context, slug string) (*domain.Category, error) {
	var c domain.Category
	tx := r.db.WithContext(ctx).First(&c, "slug = ?", slug)
	if tx.Error != nil {
		return nil, tx.Error
	}
	return &c, nil
}

// List returns all categories ordered for tree assembly: parents first,
// then manual order within a parent.
func (r *CategoryRepository) List(ctx context.Context) ([]domain.Category, error) {
	var cats []domain.Category
	tx := r.db.WithContext(ctx).
		Order("display_order ASC, name ASC").
		Find(&cats)
	return cats, tx.Error
}

func (r *CategoryRepository) Update(ctx context.Context, c *domain.Category) error {
	return r.db.WithContext(ctx).Save(c).Error
}

func (r *CategoryRepository) UpdateDisplayOrder(ctx context.Context, id string, order int) error {
	tx := r.db.WithContext(ctx).
		Model(&domain.Category{}).
		Where("id = ?", id).
		Update("display_order", order)
	if tx.Error != nil {
		return tx.Error
	}
	if tx.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *CategoryRepository) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Delete(&domain.Category{}, "id = ?", id).Error
}

type CityRepository struct {
	db *gorm.DB
}

func NewCityRepository(db *gorm.DB) *CityRepository {
	return &CityRepository{db: db}
}

func (r *CityRepository) Create(ctx context.Context, c *domain.City) error {
	if c.ID == "" {
		c.ID = uuid.NewString()
	}
	return r.db.WithContext(ctx).Create(c).Error
}

func (r *CityRepository) SearchByPrefix(ctx context.Context, prefix string, limit int) ([]domain.City, error) {
	var cities []domain.City
	tx := r.db.WithContext(ctx).
		Where("name LIKE ?", prefix+"%").
		Order("name ASC").
		Limit(limit).
		Find(&cities)
	return cities, tx.Error
}
