package domain

import "time"

type Review struct {
	ID         string    `json:"id" gorm:"type:uuid;primaryKey"`
	ReviewerID string    `json:"reviewer_id" gorm:"uniqueIndex:idx_reviewer_post" validate:"required"`
	ReviewedID string    `json:"reviewed_id" validate:"required"`
	PostID     string    `json:"post_id" gorm:"uniqueIndex:idx_reviewer_post"`
	BookingID  string    `json:"booking_id,omitempty" gorm:"uniqueIndex"`
	Rating     int       `json:"rating" validate:"required,gte=1,lte=5"`
	Comment    string    `json:"comment,omitempty" gorm:"type:text"`
	Response   string    `json:"response,omitempty" gorm:"type:text"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`

	Reviewer *User `json:"reviewer,omitempty" gorm:"foreignKey:ReviewerID"`
}
