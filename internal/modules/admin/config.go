package admin

import (
	"encoding/json"
	"fmt"

	"uslugi/internal/domain"
)

const (
	maxSectionLimit = 50
	maxSpacerHeight = 500
)

var knownTypes = map[domain.SectionType]bool{
	domain.SectionSeekingHelp:       true,
	domain.SectionOfferingHelp:      true,
	domain.SectionNewestPosts:       true,
	domain.SectionCityBased:         true,
	domain.SectionPopularCategories: true,
	domain.SectionRecentlyViewed:    true,
	domain.SectionHeroBanner:        true,
	domain.SectionCustomHTML:        true,
	domain.SectionCustomContent:     true,
	domain.SectionTestimonials:      true,
	domain.SectionFAQ:               true,
	domain.SectionStats:             true,
	domain.SectionFeatures:          true,
	domain.SectionCTA:               true,
	domain.SectionImageGallery:      true,
	domain.SectionSpacer:            true,
}

// ValidateConfig checks a section's free-form config against the rules
// for its type. An empty config is accepted for every type that has
// usable defaults; types whose whole content lives in the config
// (hero, html, cta, list-backed sections) require their key fields.
func ValidateConfig(t domain.SectionType, raw json.RawMessage) error {
	if !knownTypes[t] {
		return ErrUnknownType
	}
	if len(raw) == 0 {
		raw = json.RawMessage(`{}`)
	}

	switch t {
	case domain.SectionSeekingHelp, domain.SectionOfferingHelp,
		domain.SectionNewestPosts, domain.SectionCityBased,
		domain.SectionPopularCategories, domain.SectionRecentlyViewed:
		var cfg struct {
			Limit *int `json:"limit"`
		}
		if err := json.Unmarshal(raw, &cfg); err != nil {
			return fmt.Errorf("%w: malformed config", ErrValidation)
		}
		if cfg.Limit != nil && (*cfg.Limit < 1 || *cfg.Limit > maxSectionLimit) {
			return fmt.Errorf("%w: limit must be between 1 and %d", ErrValidation, maxSectionLimit)
		}

	case domain.SectionHeroBanner:
		var cfg struct {
			Title          string `json:"title"`
			OverlayOpacity *int   `json:"overlay_opacity"`
		}
		if err := json.Unmarshal(raw, &cfg); err != nil {
			return fmt.Errorf("%w: malformed config", ErrValidation)
		}
		if cfg.Title == "" {
			return fmt.Errorf("%w: hero banner requires a title", ErrValidation)
		}
		if cfg.OverlayOpacity != nil && (*cfg.OverlayOpacity < 0 || *cfg.OverlayOpacity > 100) {
			return fmt.Errorf("%w: overlay_opacity must be between 0 and 100", ErrValidation)
		}

	case domain.SectionCustomHTML:
		var cfg struct {
			HTMLContent string `json:"html_content"`
		}
		if err := json.Unmarshal(raw, &cfg); err != nil {
			return fmt.Errorf("%w: malformed config", ErrValidation)
		}
		if cfg.HTMLContent == "" {
			return fmt.Errorf("%w: custom_html requires html_content", ErrValidation)
		}

	case domain.SectionCustomContent:
		var cfg struct {
			Content string `json:"content"`
		}
		if err := json.Unmarshal(raw, &cfg); err != nil {
			return fmt.Errorf("%w: malformed config", ErrValidation)
		}
		if cfg.Content == "" {
			return fmt.Errorf("%w: custom_content requires content", ErrValidation)
		}

	case domain.SectionCTA:
		var cfg struct {
			Heading    string `json:"heading"`
			ButtonText string `json:"button_text"`
			ButtonLink string `json:"button_link"`
		}
		if err := json.Unmarshal(raw, &cfg); err != nil {
			return fmt.Errorf("%w: malformed config", ErrValidation)
		}
		if cfg.Heading == "" || cfg.ButtonText == "" || cfg.ButtonLink == "" {
			return fmt.Errorf("%w: cta requires heading, button_text and button_link", ErrValidation)
		}

	case domain.SectionTestimonials:
		return requireItems(raw, "testimonials")
	case domain.SectionFAQ:
		return requireItems(raw, "items")
	case domain.SectionStats:
		return requireItems(raw, "stats")
	case domain.SectionFeatures:
		return requireItems(raw, "features")
	case domain.SectionImageGallery:
		return requireItems(raw, "images")

	case domain.SectionSpacer:
		var cfg struct {
			HeightDesktop *int `json:"height_desktop"`
			HeightMobile  *int `json:"height_mobile"`
		}
		if err := json.Unmarshal(raw, &cfg); err != nil {
			return fmt.Errorf("%w: malformed config", ErrValidation)
		}
		for _, h := range []*int{cfg.HeightDesktop, cfg.HeightMobile} {
			if h != nil && (*h < 0 || *h > maxSpacerHeight) {
				return fmt.Errorf("%w: spacer height must be between 0 and %d", ErrValidation, maxSpacerHeight)
			}
		}
	}

	return nil
}

func requireItems(raw json.RawMessage, field string) error {
	var cfg map[string]json.RawMessage
	if err := json.Unmarshal(raw, &cfg); err != nil {
		return fmt.Errorf("%w: malformed config", ErrValidation)
	}

	var items []json.RawMessage
	if err := json.Unmarshal(cfg[field], &items); err != nil || len(items) == 0 {
		return fmt.Errorf("%w: %s must be a non-empty list", ErrValidation, field)
	}
	return nil
}
