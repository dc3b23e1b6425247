package review

import (
	"context"

	"uslugi/internal/domain"
)

type ReviewRepository interface {
	Create(ctx context.Context, rv *domain.Review) error
	GetByID(ctx context.Context, id string) (*domain.Review, error)
	ExistsForBooking(ctx context.Context, bookingID string) (bool, error)
	ExistsForReviewerPost(ctx context.Context, reviewerID, postID string) (bool, error)
	ListByReviewed(ctx context.Context, reviewedID string, limit, offset int) ([]domain.Review, error)
	AverageForUser(ctx context.Context, reviewedID string) (float64, int64, error)
	SetResponse(ctx context.Context, id, resp string) (*domain.Review, error)
}

// BookingGate is the slice of the booking module needed to verify and
// advance a booking being reviewed.
type BookingGate interface {
	GetByID(ctx context.Context, id string) (*domain.Booking, error)
	UpdateStatusFrom(ctx context.Context, id string, from, to domain.BookingStatus) (int64, error)
}

type Notifier interface {
	Record(ctx context.Context, userID string, activityType domain.ActivityType, postID string, metadata map[string]interface{}) error
}
