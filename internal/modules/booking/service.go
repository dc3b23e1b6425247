package booking

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"uslugi/internal/domain"
)

const defaultDurationMinutes = 60

type Service struct {
	bookings BookingRepository
	posts    PostGate
	notifs   Notifier
}

func NewService(bookings BookingRepository, posts PostGate, notifs Notifier) *Service {
	return &Service{bookings: bookings, posts: posts, notifs: notifs}
}

// Create books a post for the acting client. The booking always starts
// pending; only the provider can move it on from there.
func (s *Service) Create(ctx context.Context, clientID string, req CreateBookingRequest) (*domain.Booking, error) {
	if clientID == "" || req.PostID == "" || req.ScheduledAt.IsZero() {
		return nil, ErrValidation
	}
	if req.ScheduledAt.Before(time.Now()) {
		return nil, ErrValidation
	}

	post, err := s.posts.GetByID(ctx, req.PostID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if post.UserID == clientID {
		return nil, ErrOwnPost
	}

	duration := req.DurationMinutes
	if duration <= 0 {
		duration = defaultDurationMinutes
	}

	b := &domain.Booking{
		PostID:          post.ID,
		ProviderID:      post.UserID,
		ClientID:        clientID,
		ScheduledAt:     req.ScheduledAt,
		DurationMinutes: duration,
		Status:          domain.BookingPending,
		ClientNotes:     req.ClientNotes,
	}
	if err := s.bookings.Create(ctx, b); err != nil {
		return nil, err
	}

	if s.notifs != nil {
		_ = s.notifs.Record(ctx, b.ProviderID, domain.ActivityBookingRequest, b.PostID, map[string]interface{}{
			"booking_id":   b.ID,
			"scheduled_at": b.ScheduledAt,
		})
	}

	return b, nil
}

// UpdateStatus applies one action from the transition table. The guard is
// evaluated here, before any write, and again in the repository's WHERE
// clause so concurrent actors cannot race past each other.
func (s *Service) UpdateStatus(ctx context.Context, bookingID, actorID string, action Action) (*domain.Booking, error) {
	b, err := s.bookings.GetByID(ctx, bookingID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	actor, err := actorOn(b, actorID)
	if err != nil {
		return nil, err
	}

	next, err := Transition(b.Status, actor, action)
	if err != nil {
		return nil, err
	}

	rows, err := s.bookings.UpdateStatusFrom(ctx, bookingID, b.Status, next)
	if err != nil {
		return nil, err
	}
	if rows == 0 {
		return nil, ErrConflict
	}

	if s.notifs != nil {
		recipient := b.ClientID
		if actor == ActorClient {
			recipient = b.ProviderID
		}
		_ = s.notifs.Record(ctx, recipient, domain.ActivityBookingStatusChanged, b.PostID, map[string]interface{}{
			"booking_id": b.ID,
			"status":     string(next),
		})
	}

	return s.bookings.GetByID(ctx, bookingID)
}

// Bulk applies confirm or reject to each selected pending booking
// independently and reports a per-booking outcome. One failure does not
// stop or hide the others.
func (s *Service) Bulk(ctx context.Context, providerID string, req BulkRequest) ([]BulkResult, error) {
	action := Action(req.Action)
	if action != ActionConfirm && action != ActionReject {
		return nil, ErrValidation
	}
	if len(req.BookingIDs) == 0 {
		return nil, ErrValidation
	}

	results := make([]BulkResult, 0, len(req.BookingIDs))
	for _, id := range req.BookingIDs {
		_, err := s.UpdateStatus(ctx, id, providerID, action)
		r := BulkResult{BookingID: id, OK: err == nil}
		if err != nil {
			r.Error = err.Error()
		}
		results = append(results, r)
	}
	return results, nil
}

// List returns the user's bookings in both roles. Cancelled bookings stay
// in the store but are filtered from view.
func (s *Service) List(ctx context.Context, userID string) (*ListResponse, error) {
	asProvider, err := s.bookings.ListByProvider(ctx, userID)
	if err != nil {
		return nil, err
	}
	asClient, err := s.bookings.ListByClient(ctx, userID)
	if err != nil {
		return nil, err
	}

	asProvider = dropCancelled(asProvider)
	asClient = dropCancelled(asClient)

	awaiting := make([]domain.Booking, 0)
	for _, b := range asProvider {
		if b.Status == domain.BookingPending {
			awaiting = append(awaiting, b)
		}
	}

	return &ListResponse{
		AsProvider:     asProvider,
		AsClient:       asClient,
		AwaitingAction: awaiting,
	}, nil
}

// Calendar projects one month of the user's bookings (in the chosen role)
// onto the 42-cell grid.
func (s *Service) Calendar(ctx context.Context, userID, view, monthStr string, loc *time.Location) (*CalendarResponse, error) {
	month, err := time.ParseInLocation("2006-01", monthStr, loc)
	if err != nil {
		return nil, ErrValidation
	}

	var bookings []domain.Booking
	switch view {
	case "sent":
		bookings, err = s.bookings.ListByClient(ctx, userID)
	default:
		bookings, err = s.bookings.ListByProvider(ctx, userID)
	}
	if err != nil {
		return nil, err
	}
	bookings = dropCancelled(bookings)

	return &CalendarResponse{
		Month:   monthStr,
		Cells:   BuildCalendar(month.Year(), month.Month(), bookings, loc),
		Buckets: BucketByDay(bookings, loc),
	}, nil
}

// DaySchedule lists a provider's pending/confirmed slots for one date,
// for pre-booking availability display.
func (s *Service) DaySchedule(ctx context.Context, providerID, dateStr string, loc *time.Location) ([]DaySlot, error) {
	day, err := time.ParseInLocation("2006-01-02", dateStr, loc)
	if err != nil {
		return nil, ErrValidation
	}
	dayStart := day
	dayEnd := day.Add(24*time.Hour - time.Nanosecond)

	bookings, err := s.bookings.ListForProviderOnDate(ctx, providerID, dayStart, dayEnd)
	if err != nil {
		return nil, err
	}

	slots := make([]DaySlot, 0, len(bookings))
	for _, b := range bookings {
		slots = append(slots, DaySlot{
			ScheduledAt:     b.ScheduledAt,
			DurationMinutes: b.DurationMinutes,
			Status:          b.Status,
		})
	}
	return slots, nil
}

func actorOn(b *domain.Booking, userID string) (Actor, error) {
	switch userID {
	case b.ProviderID:
		return ActorProvider, nil
	case b.ClientID:
		return ActorClient, nil
	}
	return "", ErrForbidden
}

func dropCancelled(bookings []domain.Booking) []domain.Booking {
	out := make([]domain.Booking, 0, len(bookings))
	for _, b := range bookings {
		if b.Status != domain.BookingCancelled {
			out = append(out, b)
		}
	}
	return out
}
