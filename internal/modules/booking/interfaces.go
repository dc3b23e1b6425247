package booking

import (
	"context"
	"time"

	"uslugi/internal/domain"
)

// BookingRepository defines the persistence operations the service needs.
type BookingRepository interface {
	Create(ctx context.Context, b *domain.Booking) error
	GetByID(ctx context.Context, id string) (*domain.Booking, error)
	UpdateStatusFrom(ctx context.Context, id string, from, to domain.BookingStatus) (int64, error)
	ListByProvider(ctx context.Context, providerID string) ([]domain.Booking, error)
	ListByClient(ctx context.Context, clientID string) ([]domain.Booking, error)
	ListForProviderOnDate(ctx context.Context, providerID string, dayStart, dayEnd time.Time) ([]domain.Booking, error)
}

// PostGate is the slice of the post store needed to validate a booking.
type PostGate interface {
	GetByID(ctx context.Context, id string) (*domain.Post, error)
}

// Notifier records activity and pushes it to connected users.
type Notifier interface {
	Record(ctx context.Context, userID string, activityType domain.ActivityType, postID string, metadata map[string]interface{}) error
}
