package notification

import (
	"context"
	"encoding/json"

	"go.uber.org/zap"

	"uslugi/internal/domain"
)

type Service struct {
	activities ActivityRepository
	hub        *Hub
	logger     *zap.Logger
}

func NewService(activities ActivityRepository, hub *Hub, logger *zap.Logger) *Service {
	return &Service{activities: activities, hub: hub, logger: logger}
}

// Record persists an activity row and pushes it to the user if they
// have a live websocket. The push is best-effort.
func (s *Service) Record(ctx context.Context, userID string, activityType domain.ActivityType, postID string, metadata map[string]interface{}) error {
	entry := &domain.ActivityLog{
		UserID:       userID,
		ActivityType: activityType,
		PostID:       postID,
	}
	if metadata != nil {
		raw, err := json.Marshal(metadata)
		if err != nil {
			return err
		}
		entry.Metadata = string(raw)
	}

	if err := s.activities.Create(ctx, entry); err != nil {
		return err
	}

	if !s.hub.SendToUser(userID, entry) {
		s.logger.Debug("activity push skipped, user offline",
			zap.String("user_id", userID),
			zap.String("type", string(activityType)))
	}
	return nil
}

func (s *Service) List(ctx context.Context, userID string, limit, offset int) ([]domain.ActivityLog, error) {
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}
	return s.activities.ListByUser(ctx, userID, limit, offset)
}

func (s *Service) MarkRead(ctx context.Context, userID string, ids []string) error {
	if len(ids) == 0 {
		return nil
	}
	return s.activities.MarkRead(ctx, userID, ids)
}
