package review

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"

	"uslugi/internal/domain"
)

const maxCommentLen = 500

type Service struct {
	reviews  ReviewRepository
	bookings BookingGate
	notifs   Notifier
}

func NewService(reviews ReviewRepository, bookings BookingGate, notifs Notifier) *Service {
	return &Service{reviews: reviews, bookings: bookings, notifs: notifs}
}

// Create inserts a review and advances the booking to reviewed. Guards:
// the actor is the booking's client, the booking is completed, the rating
// is an integer in 1..5, and no review exists yet for this booking or for
// the (reviewer, post) pair.
func (s *Service) Create(ctx context.Context, reviewerID string, req CreateReviewRequest) (*domain.Review, error) {
	if reviewerID == "" || req.ReviewedID == "" || req.BookingID == "" {
		return nil, ErrInvalidRequest
	}
	if req.Rating < 1 || req.Rating > 5 {
		return nil, ErrInvalidRequest
	}
	if len(req.Comment) > maxCommentLen {
		return nil, ErrInvalidRequest
	}
	if reviewerID == req.ReviewedID {
		return nil, ErrSelfReview
	}

	b, err := s.bookings.GetByID(ctx, req.BookingID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if b.ClientID != reviewerID {
		return nil, ErrForbidden
	}
	if b.Status != domain.BookingCompleted && b.Status != domain.BookingReviewed {
		return nil, ErrNotReviewable
	}

	if exists, err := s.reviews.ExistsForBooking(ctx, req.BookingID); err != nil {
		return nil, err
	} else if exists {
		return nil, ErrConflict
	}
	if exists, err := s.reviews.ExistsForReviewerPost(ctx, reviewerID, req.PostID); err != nil {
		return nil, err
	} else if exists {
		return nil, ErrConflict
	}

	rv := &domain.Review{
		ReviewerID: reviewerID,
		ReviewedID: req.ReviewedID,
		PostID:     req.PostID,
		BookingID:  req.BookingID,
		Rating:     req.Rating,
		Comment:    req.Comment,
	}
	if err := s.reviews.Create(ctx, rv); err != nil {
		if isUniqueViolation(err) {
			return nil, ErrConflict
		}
		return nil, err
	}

	// The insert succeeded, so move the booking on. A zero row count here
	// means another review already flipped it, which is fine.
	if b.Status == domain.BookingCompleted {
		_, _ = s.bookings.UpdateStatusFrom(ctx, b.ID, domain.BookingCompleted, domain.BookingReviewed)
	}

	if s.notifs != nil {
		_ = s.notifs.Record(ctx, req.ReviewedID, domain.ActivityReviewReceived, req.PostID, map[string]interface{}{
			"review_id": rv.ID,
			"rating":    rv.Rating,
		})
	}

	return rv, nil
}

// Respond lets the reviewed party attach one response to a review.
func (s *Service) Respond(ctx context.Context, reviewID, userID, resp string) (*domain.Review, error) {
	if reviewID == "" || userID == "" || resp == "" {
		return nil, ErrInvalidRequest
	}

	rv, err := s.reviews.GetByID(ctx, reviewID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if rv.ReviewedID != userID {
		return nil, ErrForbidden
	}

	updated, err := s.reviews.SetResponse(ctx, reviewID, resp)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return updated, nil
}

func (s *Service) ListForUser(ctx context.Context, reviewedID string, limit, offset int) (*UserReviewsResponse, error) {
	if reviewedID == "" {
		return nil, ErrInvalidRequest
	}
	if limit <= 0 || limit > 100 {
		limit = 20
	}

	reviews, err := s.reviews.ListByReviewed(ctx, reviewedID, limit, offset)
	if err != nil {
		return nil, err
	}
	avg, count, err := s.reviews.AverageForUser(ctx, reviewedID)
	if err != nil {
		return nil, err
	}

	return &UserReviewsResponse{Reviews: reviews, Average: avg, Count: count}, nil
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23505"
	}
	return false
}
