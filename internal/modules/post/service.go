package post

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"uslugi/internal/domain"
	"uslugi/internal/repository"
)

type Service struct {
	posts        PostRepository
	modlogs      ModerationLogRepository
	tasks        TaskQueue
	moderator    Moderator
	categories   CategoryGate
	suggester    CategorySuggester
	lifetimeDays int
	log          *zap.Logger
}

func NewService(
	posts PostRepository,
	modlogs ModerationLogRepository,
	tasks TaskQueue,
	moderator Moderator,
	categories CategoryGate,
	suggester CategorySuggester,
	lifetimeDays int,
	log *zap.Logger,
) *Service {
	if lifetimeDays <= 0 {
		lifetimeDays = 30
	}
	return &Service{
		posts:        posts,
		modlogs:      modlogs,
		tasks:        tasks,
		moderator:    moderator,
		categories:   categories,
		suggester:    suggester,
		lifetimeDays: lifetimeDays,
		log:          log,
	}
}

// Submit runs the full wizard pipeline: validate every step, insert the
// post as pending/checking, queue embedding generation, then block on the
// synchronous moderation check whose verdict decides the post-submit
// response. A failed moderation call is requeued instead of swallowed.
func (s *Service) Submit(ctx context.Context, userID string, draft Draft) (*SubmitResponse, error) {
	if userID == "" {
		return nil, ErrValidation
	}
	if draft.FirstInvalidStep() != 0 {
		return nil, ErrIncompleteWizard
	}

	price, _ := draft.ParsedPrice()
	if draft.PriceType == domain.PriceFree {
		price = 0
	}

	images, err := json.Marshal(draft.Images)
	if err != nil {
		return nil, err
	}

	postType := draft.Type
	if postType == "" {
		postType = domain.PostOffer
	}

	expires := time.Now().AddDate(0, 0, s.lifetimeDays)
	p := &domain.Post{
		UserID:           userID,
		Type:             postType,
		Title:            strings.TrimSpace(draft.Title),
		Description:      strings.TrimSpace(draft.Description),
		CategoryID:       draft.CategoryID,
		City:             strings.TrimSpace(draft.City),
		PriceType:        draft.PriceType,
		Price:            price,
		Images:           string(images),
		Status:           domain.PostPending,
		ModerationStatus: domain.ModerationChecking,
		ExpiresAt:        &expires,
	}
	if err := s.posts.Create(ctx, p); err != nil {
		return nil, err
	}

	if err := s.tasks.Enqueue(ctx, domain.TaskGenerateEmbedding, p.ID); err != nil {
		s.log.Warn("enqueue embedding task failed", zap.String("post_id", p.ID), zap.Error(err))
	}

	outcome, err := s.moderator.Run(ctx, p.ID)
	if err != nil {
		s.log.Warn("synchronous moderation failed, requeued", zap.String("post_id", p.ID), zap.Error(err))
		if qerr := s.tasks.Enqueue(ctx, domain.TaskModeratePost, p.ID); qerr != nil {
			s.log.Error("requeue moderation failed", zap.String("post_id", p.ID), zap.Error(qerr))
		}
		return &SubmitResponse{Post: p}, nil
	}

	refreshed, err := s.posts.GetByID(ctx, p.ID)
	if err != nil {
		refreshed = p
	}
	return &SubmitResponse{Post: refreshed, Moderation: outcome}, nil
}

// UpdateStatus toggles operational visibility. Reactivation always forces
// re-moderation: status=pending and moderation_status=checking land in one
// update, and the re-check is queued as a retryable task.
func (s *Service) UpdateStatus(ctx context.Context, userID, postID string, status domain.PostStatus) (*domain.Post, error) {
	p, err := s.ownedPost(ctx, userID, postID)
	if err != nil {
		return nil, err
	}

	switch status {
	case domain.PostActive:
		if err := s.posts.Reactivate(ctx, p.ID); err != nil {
			return nil, err
		}
		if err := s.tasks.Enqueue(ctx, domain.TaskModeratePost, p.ID); err != nil {
			s.log.Warn("enqueue moderation re-check failed", zap.String("post_id", p.ID), zap.Error(err))
		}
	case domain.PostClosed, domain.PostCompleted:
		if err := s.posts.UpdateStatus(ctx, p.ID, status); err != nil {
			return nil, err
		}
	default:
		return nil, ErrValidation
	}

	return s.posts.GetByID(ctx, p.ID)
}

// Appeal opens an appeal on a rejected post and records the status
// snapshot in the moderation log.
func (s *Service) Appeal(ctx context.Context, userID, postID, message string) error {
	if strings.TrimSpace(message) == "" {
		return ErrValidation
	}

	p, err := s.ownedPost(ctx, userID, postID)
	if err != nil {
		return err
	}
	if p.ModerationStatus != domain.ModerationRejected {
		return ErrNotRejected
	}
	if p.AppealStatus == domain.AppealPending || p.AppealStatus == domain.AppealReviewing {
		return ErrAppealInFlight
	}

	if err := s.posts.SubmitAppeal(ctx, p.ID, message, time.Now()); err != nil {
		return err
	}

	return s.modlogs.Create(ctx, &domain.ModerationLog{
		PostID:         p.ID,
		Action:         "appeal_submitted",
		Reason:         message,
		PreviousStatus: string(domain.ModerationRejected),
		NewStatus:      "appeal_pending",
		ActorID:        userID,
	})
}

func (s *Service) Delete(ctx context.Context, userID, postID string) error {
	p, err := s.ownedPost(ctx, userID, postID)
	if err != nil {
		return err
	}
	return s.posts.Delete(ctx, p.ID)
}

func (s *Service) Extend(ctx context.Context, userID, postID string) (*domain.Post, error) {
	p, err := s.ownedPost(ctx, userID, postID)
	if err != nil {
		return nil, err
	}
	if err := s.posts.Extend(ctx, p.ID, time.Now().AddDate(0, 0, s.lifetimeDays)); err != nil {
		return nil, err
	}
	return s.posts.GetByID(ctx, p.ID)
}

// PhoneClick is an anonymous counter; no ownership check.
func (s *Service) PhoneClick(ctx context.Context, postID string) error {
	return s.posts.IncrementPhoneClicks(ctx, postID)
}

func (s *Service) Get(ctx context.Context, postID string) (*domain.Post, error) {
	p, err := s.posts.GetByID(ctx, postID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	_ = s.posts.IncrementViews(ctx, postID)
	return p, nil
}

func (s *Service) Search(ctx context.Context, q SearchQuery) ([]domain.Post, int64, error) {
	return s.posts.Search(ctx, repository.PostFilter{
		Type:       q.Type,
		CategoryID: q.CategoryID,
		City:       q.City,
		Query:      q.Query,
		Limit:      q.Limit,
		Offset:     q.Offset,
	})
}

func (s *Service) ListMine(ctx context.Context, userID string) ([]domain.Post, error) {
	return s.posts.ListByUser(ctx, userID)
}

// SuggestCategory asks the AI service for a slug path and resolves it to
// a known category when possible.
func (s *Service) SuggestCategory(ctx context.Context, title, description string) (*domain.Category, string, error) {
	if strings.TrimSpace(title) == "" {
		return nil, "", ErrValidation
	}

	slugPath, err := s.suggester.SuggestCategory(ctx, title, description)
	if err != nil {
		return nil, "", err
	}

	// The service may answer with a "parent/child" path; the leaf slug is
	// the category.
	parts := strings.Split(slugPath, "/")
	leaf := parts[len(parts)-1]

	cat, err := s.categories.GetBySlug(ctx, leaf)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, slugPath, nil
		}
		return nil, "", err
	}
	return cat, slugPath, nil
}

func (s *Service) ownedPost(ctx context.Context, userID, postID string) (*domain.Post, error) {
	p, err := s.posts.GetByID(ctx, postID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if p.UserID != userID {
		return nil, ErrForbidden
	}
	return p, nil
}
