package domain

import "time"

type BookingStatus string

const (
	BookingPending   BookingStatus = "pending"
	BookingConfirmed BookingStatus = "confirmed"
	BookingCancelled BookingStatus = "cancelled"
	BookingCompleted BookingStatus = "completed"
	BookingReviewed  BookingStatus = "reviewed"
)

type Booking struct {
	ID              string        `json:"id" gorm:"type:uuid;primaryKey"`
	PostID          string        `json:"post_id" validate:"required"`
	ProviderID      string        `json:"provider_id" validate:"required"`
	ClientID        string        `json:"client_id" validate:"required"`
	ScheduledAt     time.Time     `json:"scheduled_at" validate:"required"`
	DurationMinutes int           `json:"duration_minutes"`
	Status          BookingStatus `json:"status"`
	ClientNotes     string        `json:"client_notes,omitempty" gorm:"type:text"`
	CreatedAt       time.Time     `json:"created_at"`
	UpdatedAt       time.Time     `json:"updated_at"`

	Post     *Post `json:"post,omitempty" gorm:"foreignKey:PostID"`
	Provider *User `json:"provider,omitempty" gorm:"foreignKey:ProviderID"`
	Client   *User `json:"client,omitempty" gorm:"foreignKey:ClientID"`
}
