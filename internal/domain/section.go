package domain

import "time"

type SectionType string

const (
	SectionSeekingHelp       SectionType = "seeking_help"
	SectionOfferingHelp      SectionType = "offering_help"
	SectionNewestPosts       SectionType = "newest_posts"
	SectionCityBased         SectionType = "city_based"
	SectionPopularCategories SectionType = "popular_categories"
	SectionRecentlyViewed    SectionType = "recently_viewed"
	SectionHeroBanner        SectionType = "hero_banner"
	SectionCustomHTML        SectionType = "custom_html"
	SectionCustomContent     SectionType = "custom_content"
	SectionTestimonials      SectionType = "testimonials"
	SectionFAQ               SectionType = "faq"
	SectionStats             SectionType = "stats"
	SectionFeatures          SectionType = "features"
	SectionCTA               SectionType = "cta"
	SectionImageGallery      SectionType = "image_gallery"
	SectionSpacer            SectionType = "spacer"
)

// HomepageSection is one ordered block of the admin-built homepage.
// Config is free-form JSON whose shape depends on Type.
type HomepageSection struct {
	ID               string      `json:"id" gorm:"type:uuid;primaryKey"`
	Type             SectionType `json:"type" validate:"required"`
	Title            string      `json:"title,omitempty"`
	Subtitle         string      `json:"subtitle,omitempty"`
	IsActive         bool        `json:"is_active"`
	SortOrder        int         `json:"sort_order"`
	Config           string      `json:"config" gorm:"type:text"`
	VisibleOnMobile  bool        `json:"visible_on_mobile"`
	VisibleOnDesktop bool        `json:"visible_on_desktop"`
	CreatedAt        time.Time   `json:"created_at"`
	UpdatedAt        time.Time   `json:"updated_at"`
}
