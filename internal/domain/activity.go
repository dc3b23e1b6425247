package domain

import "time"

type ActivityType string

const (
	ActivityBookingRequest       ActivityType = "booking_request"
	ActivityBookingStatusChanged ActivityType = "booking_status_changed"
	ActivityReviewReceived       ActivityType = "review_received"
	ActivityPostModerated        ActivityType = "post_moderated"
)

type ActivityLog struct {
	ID           string       `json:"id" gorm:"type:uuid;primaryKey"`
	UserID       string       `json:"user_id" gorm:"index"`
	ActivityType ActivityType `json:"activity_type"`
	PostID       string       `json:"post_id,omitempty"`
	Metadata     string       `json:"metadata,omitempty" gorm:"type:text"`
	IsRead       bool         `json:"is_read"`
	CreatedAt    time.Time    `json:"created_at"`
}
