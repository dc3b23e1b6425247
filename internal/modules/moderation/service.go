package moderation

import (
	"context"
	"errors"
	"strings"

	"gorm.io/gorm"

	"uslugi/internal/ai"
	"uslugi/internal/domain"
	"uslugi/internal/modules/post"
)

type Service struct {
	checker Checker
	posts   PostStore
	logs    LogStore
}

func NewService(checker Checker, posts PostStore, logs LogStore) *Service {
	return &Service{checker: checker, posts: posts, logs: logs}
}

// Run checks one post against the external service and applies the
// verdict. Only an approved verdict activates the post; flagged and
// rejected posts stay pending. Implements the post module's Moderator.
func (s *Service) Run(ctx context.Context, postID string) (*post.ModerationOutcome, error) {
	p, err := s.posts.GetByID(ctx, postID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	verdict, err := s.checker.Moderate(ctx, ai.ModerationInput{
		Title:       p.Title,
		Description: p.Description,
		City:        p.City,
	})
	if err != nil {
		return nil, ErrUpstream
	}

	status := domain.ModerationStatus(verdict.Status)
	reason := strings.Join(verdict.Reasons, ", ")
	if err := s.posts.ApplyModeration(ctx, p.ID, status, reason); err != nil {
		return nil, err
	}

	action := map[domain.ModerationStatus]string{
		domain.ModerationApproved: "auto_approved",
		domain.ModerationRejected: "auto_rejected",
		domain.ModerationFlagged:  "flagged",
	}[status]

	_ = s.logs.Create(ctx, &domain.ModerationLog{
		PostID:         p.ID,
		Action:         action,
		Reason:         reason,
		PreviousStatus: string(p.ModerationStatus),
		NewStatus:      string(status),
	})

	return &post.ModerationOutcome{Status: status, Reasons: verdict.Reasons}, nil
}

// RunAs is Run with an ownership gate for the user-facing endpoint.
func (s *Service) RunAs(ctx context.Context, actorID string, isAdmin bool, postID string) (*post.ModerationOutcome, error) {
	p, err := s.posts.GetByID(ctx, postID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if !isAdmin && p.UserID != actorID {
		return nil, ErrForbidden
	}
	return s.Run(ctx, postID)
}

// Queue lists posts awaiting a moderator.
func (s *Service) Queue(ctx context.Context, statuses []string, limit, offset int) ([]domain.Post, int64, error) {
	if len(statuses) == 0 {
		statuses = []string{
			string(domain.ModerationChecking),
			string(domain.ModerationFlagged),
		}
	}
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	return s.posts.ListByModerationStatus(ctx, statuses, limit, offset)
}

// Decide records a manual moderator decision. When the post has an open
// appeal, the decision also resolves the appeal.
func (s *Service) Decide(ctx context.Context, adminID, postID, decision, reason string) error {
	var verdict domain.ModerationStatus
	switch decision {
	case "approve":
		verdict = domain.ModerationApproved
	case "reject":
		verdict = domain.ModerationRejected
	default:
		return ErrValidation
	}

	p, err := s.posts.GetByID(ctx, postID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return err
	}

	if err := s.posts.ApplyModeration(ctx, p.ID, verdict, reason); err != nil {
		return err
	}

	if p.AppealStatus == domain.AppealPending || p.AppealStatus == domain.AppealReviewing {
		appealOutcome := domain.AppealRejected
		if verdict == domain.ModerationApproved {
			appealOutcome = domain.AppealApproved
		}
		if err := s.posts.SetAppealStatus(ctx, p.ID, appealOutcome); err != nil {
			return err
		}
	}

	return s.logs.Create(ctx, &domain.ModerationLog{
		PostID:         p.ID,
		Action:         "manual_" + decision,
		Reason:         reason,
		PreviousStatus: string(p.ModerationStatus),
		NewStatus:      string(verdict),
		ActorID:        adminID,
	})
}

func (s *Service) History(ctx context.Context, postID string) ([]domain.ModerationLog, error) {
	return s.logs.ListByPost(ctx, postID)
}
