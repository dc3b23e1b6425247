package post

import (
	"context"
	"time"

	"uslugi/internal/domain"
	"uslugi/internal/repository"
)

type PostRepository interface {
	Create(ctx context.Context, p *domain.Post) error
	GetByID(ctx context.Context, id string) (*domain.Post, error)
	ListByUser(ctx context.Context, userID string) ([]domain.Post, error)
	Search(ctx context.Context, f repository.PostFilter) ([]domain.Post, int64, error)
	UpdateStatus(ctx context.Context, id string, status domain.PostStatus) error
	Reactivate(ctx context.Context, id string) error
	SubmitAppeal(ctx context.Context, id, message string, at time.Time) error
	Delete(ctx context.Context, id string) error
	Extend(ctx context.Context, id string, until time.Time) error
	IncrementViews(ctx context.Context, id string) error
	IncrementPhoneClicks(ctx context.Context, id string) error
}

type ModerationLogRepository interface {
	Create(ctx context.Context, l *domain.ModerationLog) error
}

// TaskQueue enqueues retryable background side effects.
type TaskQueue interface {
	Enqueue(ctx context.Context, kind domain.TaskKind, postID string) error
}

// Moderator runs a synchronous moderation check; the submit flow blocks
// on its verdict.
type Moderator interface {
	Run(ctx context.Context, postID string) (*ModerationOutcome, error)
}

type ModerationOutcome struct {
	Status  domain.ModerationStatus `json:"status"`
	Reasons []string                `json:"reasons,omitempty"`
}

// CategoryGate resolves a suggested slug path into a category.
type CategoryGate interface {
	GetBySlug(ctx context.Context, slug string) (*domain.Category, error)
}

type CategorySuggester interface {
	SuggestCategory(ctx context.Context, title, description string) (string, error)
}
