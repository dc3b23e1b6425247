package moderation

import (
	"context"

	"uslugi/internal/ai"
	"uslugi/internal/domain"
)

// Checker is the external content-safety service, opaque behind the AI
// client contract.
type Checker interface {
	Moderate(ctx context.Context, in ai.ModerationInput) (*ai.ModerationVerdict, error)
}

type PostStore interface {
	GetByID(ctx context.Context, id string) (*domain.Post, error)
	ApplyModeration(ctx context.Context, id string, verdict domain.ModerationStatus, reason string) error
	SetAppealStatus(ctx context.Context, id string, status domain.AppealStatus) error
	ListByModerationStatus(ctx context.Context, statuses []string, limit, offset int) ([]domain.Post, int64, error)
}

type LogStore interface {
	Create(ctx context.Context, l *domain.ModerationLog) error
	ListByPost(ctx context.Context, postID string) ([]domain.ModerationLog, error)
}
