package catalog

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"time"

	"gorm.io/gorm"

	"uslugi/internal/domain"
	"uslugi/internal/pkg/cache"
)

const cityCacheTTL = 10 * time.Minute

type Service struct {
	categories CategoryRepository
	cities     CityRepository
	cache      *cache.Cache
}

func NewService(categories CategoryRepository, cities CityRepository, c *cache.Cache) *Service {
	return &Service{categories: categories, cities: cities, cache: c}
}

// Tree returns all categories assembled into a parent/children tree,
// manual display order within each parent.
func (s *Service) Tree(ctx context.Context) ([]domain.Category, error) {
	flat, err := s.categories.List(ctx)
	if err != nil {
		return nil, err
	}

	byParent := make(map[string][]domain.Category)
	for _, c := range flat {
		parent := ""
		if c.ParentID != nil {
			parent = *c.ParentID
		}
		byParent[parent] = append(byParent[parent], c)
	}

	roots := byParent[""]
	for i := range roots {
		roots[i].Children = byParent[roots[i].ID]
	}
	return roots, nil
}

func (s *Service) Create(ctx context.Context, req CreateCategoryRequest) (*domain.Category, error) {
	slug := strings.ToLower(strings.TrimSpace(req.Slug))
	if req.Name == "" || slug == "" {
		return nil, ErrValidation
	}

	if _, err := s.categories.GetBySlug(ctx, slug); err == nil {
		return nil, ErrConflict
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	c := &domain.Category{
		Name:        req.Name,
		Slug:        slug,
		Icon:        req.Icon,
		Description: req.Description,
	}
	if req.ParentID != "" {
		if _, err := s.categories.GetByID(ctx, req.ParentID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, ErrNotFound
			}
			return nil, err
		}
		c.ParentID = &req.ParentID
	}

	if err := s.categories.Create(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

func (s *Service) Update(ctx context.Context, id string, req UpdateCategoryRequest) (*domain.Category, error) {
	c, err := s.categories.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	if req.Name != "" {
		c.Name = req.Name
	}
	if req.Icon != "" {
		c.Icon = req.Icon
	}
	if req.Description != "" {
		c.Description = req.Description
	}

	if err := s.categories.Update(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

func (s *Service) Delete(ctx context.Context, id string) error {
	if _, err := s.categories.GetByID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return err
	}
	return s.categories.Delete(ctx, id)
}

// Reorder moves one category within its parent.
func (s *Service) Reorder(ctx context.Context, req ReorderRequest) error {
	err := s.categories.UpdateDisplayOrder(ctx, req.CategoryID, req.NewOrder)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrNotFound
	}
	return err
}

// BatchReorder persists a full drag-reorder. Each update is independent
// and the outcome is reported per category.
func (s *Service) BatchReorder(ctx context.Context, req BatchReorderRequest) ([]ReorderResult, error) {
	if len(req.Updates) == 0 {
		return nil, ErrValidation
	}

	results := make([]ReorderResult, 0, len(req.Updates))
	for _, u := range req.Updates {
		err := s.categories.UpdateDisplayOrder(ctx, u.ID, u.DisplayOrder)
		r := ReorderResult{ID: u.ID, OK: err == nil}
		if err != nil {
			r.Error = err.Error()
		}
		results = append(results, r)
	}
	return results, nil
}

// Cities is a prefix lookup with a short redis cache in front; without
// redis it hits the store directly.
func (s *Service) Cities(ctx context.Context, q string, limit int) ([]domain.City, error) {
	q = strings.TrimSpace(q)
	if q == "" {
		return []domain.City{}, nil
	}
	if limit <= 0 || limit > 50 {
		limit = 10
	}

	key := "cities:" + strings.ToLower(q)
	if raw, ok := s.cache.Get(ctx, key); ok {
		var cached []domain.City
		if err := json.Unmarshal([]byte(raw), &cached); err == nil {
			return cached, nil
		}
	}

	cities, err := s.cities.SearchByPrefix(ctx, q, limit)
	if err != nil {
		return nil, err
	}

	if raw, err := json.Marshal(cities); err == nil {
		s.cache.Set(ctx, key, string(raw), cityCacheTTL)
	}
	return cities, nil
}
