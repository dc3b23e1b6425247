package domain

import "time"

type PostType string

const (
	PostOffer   PostType = "offer"
	PostRequest PostType = "request"
)

type PostStatus string

const (
	PostActive    PostStatus = "active"
	PostPending   PostStatus = "pending"
	PostClosed    PostStatus = "closed"
	PostCompleted PostStatus = "completed"
)

type ModerationStatus string

const (
	ModerationPending  ModerationStatus = "pending"
	ModerationChecking ModerationStatus = "checking"
	ModerationApproved ModerationStatus = "approved"
	ModerationRejected ModerationStatus = "rejected"
	ModerationFlagged  ModerationStatus = "flagged"
)

// AppealStatus is only meaningful while ModerationStatus is rejected.
type AppealStatus string

const (
	AppealNone      AppealStatus = ""
	AppealPending   AppealStatus = "pending"
	AppealReviewing AppealStatus = "reviewing"
	AppealApproved  AppealStatus = "approved"
	AppealRejected  AppealStatus = "rejected"
)

type PriceType string

const (
	PriceFree   PriceType = "free"
	PriceFixed  PriceType = "fixed"
	PriceHourly PriceType = "hourly"
)

type Post struct {
	ID          string    `json:"id" gorm:"type:uuid;primaryKey"`
	UserID      string    `json:"user_id" validate:"required"`
	Type        PostType  `json:"type"`
	Title       string    `json:"title" validate:"required"`
	Description string    `json:"description" gorm:"type:text" validate:"required"`
	CategoryID  string    `json:"category_id"`
	City        string    `json:"city"`
	PriceType   PriceType `json:"price_type"`
	Price       float64   `json:"price"`
	Images      string    `json:"images" gorm:"type:text"` // JSON array of URLs

	Status           PostStatus       `json:"status"`
	ModerationStatus ModerationStatus `json:"moderation_status"`
	ModerationReason string           `json:"moderation_reason,omitempty"`
	AppealStatus     AppealStatus     `json:"appeal_status,omitempty"`
	AppealMessage    string           `json:"appeal_message,omitempty" gorm:"type:text"`
	AppealedAt       *time.Time       `json:"appealed_at,omitempty"`

	Embedding  string     `json:"-" gorm:"type:text"` // formatted vector literal
	ViewCount  int        `json:"view_count"`
	PhoneClick int        `json:"phone_clicks"`
	ExpiresAt  *time.Time `json:"expires_at,omitempty"`
	CreatedAt  time.Time  `json:"created_at"`
	UpdatedAt  time.Time  `json:"updated_at"`

	User     *User     `json:"user,omitempty" gorm:"foreignKey:UserID"`
	Category *Category `json:"category,omitempty" gorm:"foreignKey:CategoryID"`
}

// CanAppeal reports whether the owner may open an appeal right now.
func (p *Post) CanAppeal() bool {
	if p.ModerationStatus != ModerationRejected {
		return false
	}
	return p.AppealStatus != AppealPending && p.AppealStatus != AppealReviewing
}
