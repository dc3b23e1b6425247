package booking

import (
	"time"

	"uslugi/internal/domain"
)

type CreateBookingRequest struct {
	PostID          string    `json:"post_id" binding:"required"`
	ScheduledAt     time.Time `json:"scheduled_at" binding:"required"`
	DurationMinutes int       `json:"duration_minutes"`
	ClientNotes     string    `json:"client_notes"`
}

type StatusRequest struct {
	Action string `json:"action" binding:"required"`
}

type BulkRequest struct {
	Action     string   `json:"action" binding:"required"` // confirm | reject
	BookingIDs []string `json:"booking_ids" binding:"required"`
}

// BulkResult reports the outcome for one booking of a bulk action.
type BulkResult struct {
	BookingID string `json:"booking_id"`
	OK        bool   `json:"ok"`
	Error     string `json:"error,omitempty"`
}

type ListResponse struct {
	AsProvider []domain.Booking `json:"as_provider"`
	AsClient   []domain.Booking `json:"as_client"`
	// Pending bookings awaiting the provider's action, ascending by time.
	AwaitingAction []domain.Booking `json:"awaiting_action"`
}

type CalendarResponse struct {
	Month   string                      `json:"month"`
	Cells   []CalendarCell              `json:"cells"`
	Buckets map[string][]domain.Booking `json:"buckets"`
}

type DaySlot struct {
	ScheduledAt     time.Time            `json:"scheduled_at"`
	DurationMinutes int                  `json:"duration_minutes"`
	Status          domain.BookingStatus `json:"status"`
}
