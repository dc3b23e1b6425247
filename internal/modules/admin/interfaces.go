package admin

import (
	"context"

	"uslugi/internal/domain"
)

type SectionRepository interface {
	Create(ctx context.Context, s *domain.HomepageSection) error
	GetByID(ctx context.Context, id string) (*domain.HomepageSection, error)
	List(ctx context.Context) ([]domain.HomepageSection, error)
	ListActive(ctx context.Context) ([]domain.HomepageSection, error)
	Update(ctx context.Context, s *domain.HomepageSection) error
	UpdateSortOrder(ctx context.Context, id string, order int) error
	Delete(ctx context.Context, id string) error
}
