package admin

import (
	"encoding/json"

	"uslugi/internal/domain"
)

type CreateSectionRequest struct {
	Type             string          `json:"type" binding:"required"`
	Title            string          `json:"title"`
	Subtitle         string          `json:"subtitle"`
	IsActive         *bool           `json:"is_active"`
	Config           json.RawMessage `json:"config"`
	VisibleOnMobile  *bool           `json:"visible_on_mobile"`
	VisibleOnDesktop *bool           `json:"visible_on_desktop"`
}

type UpdateSectionRequest struct {
	Title            *string         `json:"title"`
	Subtitle         *string         `json:"subtitle"`
	IsActive         *bool           `json:"is_active"`
	Config           json.RawMessage `json:"config"`
	VisibleOnMobile  *bool           `json:"visible_on_mobile"`
	VisibleOnDesktop *bool           `json:"visible_on_desktop"`
}

// ReorderSectionsRequest carries section IDs in their new top-to-bottom order.
type ReorderSectionsRequest struct {
	OrderedIDs []string `json:"ordered_ids" binding:"required"`
}

type ReorderSectionResult struct {
	ID    string `json:"id"`
	OK    bool   `json:"ok"`
	Error string `json:"error,omitempty"`
}

type HomepageResponse struct {
	Sections []domain.HomepageSection `json:"sections"`
}
