package catalog

import (
	"context"

	"uslugi/internal/domain"
)

type CategoryRepository interface {
	Create(ctx context.Context, c *domain.Category) error
	GetByID(ctx context.Context, id string) (*domain.Category, error)
	GetBySlug(ctx context.Context, slug string) (*domain.Category, error)
	List(ctx context.Context) ([]domain.Category, error)
	Update(ctx context.Context, c *domain.Category) error
	UpdateDisplayOrder(ctx context.Context, id string, order int) error
	Delete(ctx context.Context, id string) error
}

type CityRepository interface {
	SearchByPrefix(ctx context.Context, prefix string, limit int) ([]domain.City, error)
}
