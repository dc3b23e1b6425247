package admin

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"uslugi/internal/domain"
)

type Service struct {
	sections SectionRepository
}

func NewService(sections SectionRepository) *Service {
	return &Service{sections: sections}
}

func (s *Service) List(ctx context.Context) ([]domain.HomepageSection, error) {
	return s.sections.List(ctx)
}

// Homepage returns the active sections visible on the requesting device,
// in builder order. device is "mobile" or "desktop"; anything else gets
// the desktop view.
func (s *Service) Homepage(ctx context.Context, device string) ([]domain.HomepageSection, error) {
	active, err := s.sections.ListActive(ctx)
	if err != nil {
		return nil, err
	}

	visible := make([]domain.HomepageSection, 0, len(active))
	for _, sec := range active {
		if device == "mobile" {
			if sec.VisibleOnMobile {
				visible = append(visible, sec)
			}
			continue
		}
		if sec.VisibleOnDesktop {
			visible = append(visible, sec)
		}
	}
	return visible, nil
}

func (s *Service) Create(ctx context.Context, req CreateSectionRequest) (*domain.HomepageSection, error) {
	t := domain.SectionType(req.Type)
	if err := ValidateConfig(t, req.Config); err != nil {
		return nil, err
	}

	// New sections append to the bottom of the builder.
	existing, err := s.sections.List(ctx)
	if err != nil {
		return nil, err
	}

	sec := &domain.HomepageSection{
		Type:             t,
		Title:            req.Title,
		Subtitle:         req.Subtitle,
		IsActive:         true,
		SortOrder:        len(existing),
		Config:           string(req.Config),
		VisibleOnMobile:  true,
		VisibleOnDesktop: true,
	}
	if sec.Config == "" {
		sec.Config = "{}"
	}
	if req.IsActive != nil {
		sec.IsActive = *req.IsActive
	}
	if req.VisibleOnMobile != nil {
		sec.VisibleOnMobile = *req.VisibleOnMobile
	}
	if req.VisibleOnDesktop != nil {
		sec.VisibleOnDesktop = *req.VisibleOnDesktop
	}

	if err := s.sections.Create(ctx, sec); err != nil {
		return nil, err
	}
	return sec, nil
}

func (s *Service) Update(ctx context.Context, id string, req UpdateSectionRequest) (*domain.HomepageSection, error) {
	sec, err := s.sections.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	if req.Config != nil {
		if err := ValidateConfig(sec.Type, req.Config); err != nil {
			return nil, err
		}
		sec.Config = string(req.Config)
	}
	if req.Title != nil {
		sec.Title = *req.Title
	}
	if req.Subtitle != nil {
		sec.Subtitle = *req.Subtitle
	}
	if req.IsActive != nil {
		sec.IsActive = *req.IsActive
	}
	if req.VisibleOnMobile != nil {
		sec.VisibleOnMobile = *req.VisibleOnMobile
	}
	if req.VisibleOnDesktop != nil {
		sec.VisibleOnDesktop = *req.VisibleOnDesktop
	}

	if err := s.sections.Update(ctx, sec); err != nil {
		return nil, err
	}
	return sec, nil
}

func (s *Service) Delete(ctx context.Context, id string) error {
	if _, err := s.sections.GetByID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return err
	}
	return s.sections.Delete(ctx, id)
}

// Reorder persists a drag order: each ID gets its index as sort_order.
// Updates are independent and reported per section.
func (s *Service) Reorder(ctx context.Context, req ReorderSectionsRequest) ([]ReorderSectionResult, error) {
	if len(req.OrderedIDs) == 0 {
		return nil, ErrValidation
	}

	results := make([]ReorderSectionResult, 0, len(req.OrderedIDs))
	for i, id := range req.OrderedIDs {
		err := s.sections.UpdateSortOrder(ctx, id, i)
		r := ReorderSectionResult{ID: id, OK: err == nil}
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				r.Error = "section not found"
			} else {
				r.Error = err.Error()
			}
		}
		results = append(results, r)
	}
	return results, nil
}
