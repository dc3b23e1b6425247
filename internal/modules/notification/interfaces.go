package notification

import (
	"context"

	"uslugi/internal/domain"
)

type ActivityRepository interface {
	Create(ctx context.Context, a *domain.ActivityLog) error
	ListByUser(ctx context.Context, userID string, limit, offset int) ([]domain.ActivityLog, error)
	MarkRead(ctx context.Context, userID string, ids []string) error
}
