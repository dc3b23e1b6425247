package booking

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"uslugi/internal/domain"
)

type MockBookingRepository struct {
	mock.Mock
}

func (m *MockBookingRepository) Create(ctx context.Context, b *domain.Booking) error {
	args := m.Called(ctx, b)
	if b != nil && b.ID == "" {
		b.ID = "booking-1"
	}
	return args.Error(0)
}

func (m *MockBookingRepository) GetByID(ctx context.Context, id string) (*domain.Booking, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Booking), args.Error(1)
}

func (m *MockBookingRepository) UpdateStatusFrom(ctx context.Context, id string, from, to domain.BookingStatus) (int64, error) {
	args := m.Called(ctx, id, from, to)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockBookingRepository) ListByProvider(ctx context.Context, providerID string) ([]domain.Booking, error) {
	args := m.Called(ctx, providerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Booking), args.Error(1)
}

func (m *MockBookingRepository) ListByClient(ctx context.Context, clientID string) ([]domain.Booking, error) {
	args := m.Called(ctx, clientID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Booking), args.Error(1)
}

func (m *MockBookingRepository) ListForProviderOnDate(ctx context.Context, providerID string, dayStart, dayEnd time.Time) ([]domain.Booking, error) {
	args := m.Called(ctx, providerID, dayStart, dayEnd)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Booking), args.Error(1)
}

type MockPostGate struct {
	mock.Mock
}

func (m *MockPostGate) GetByID(ctx context.Context, id string) (*domain.Post, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Post), args.Error(1)
}

type MockNotifier struct {
	mock.Mock
}

func (m *MockNotifier) Record(ctx context.Context, userID string, activityType domain.ActivityType, postID string, metadata map[string]interface{}) error {
	args := m.Called(ctx, userID, activityType, postID, metadata)
	return args.Error(0)
}

func TestCreateBooking(t *testing.T) {
	repo := new(MockBookingRepository)
	posts := new(MockPostGate)
	notifs := new(MockNotifier)
	svc := NewService(repo, posts, notifs)

	posts.On("GetByID", mock.Anything, "post-1").
		Return(&domain.Post{ID: "post-1", UserID: "provider-1"}, nil)
	repo.On("Create", mock.Anything, mock.AnythingOfType("*domain.Booking")).Return(nil)
	notifs.On("Record", mock.Anything, "provider-1", domain.ActivityBookingRequest, "post-1", mock.Anything).Return(nil)

	b, err := svc.Create(context.Background(), "client-1", CreateBookingRequest{
		PostID:      "post-1",
		ScheduledAt: time.Now().Add(24 * time.Hour),
	})

	require.NoError(t, err)
	assert.Equal(t, domain.BookingPending, b.Status)
	assert.Equal(t, "provider-1", b.ProviderID)
	assert.Equal(t, "client-1", b.ClientID)
	assert.Equal(t, defaultDurationMinutes, b.DurationMinutes)
	notifs.AssertCalled(t, "Record", mock.Anything, "provider-1", domain.ActivityBookingRequest, "post-1", mock.Anything)
}

func TestCreateBookingOwnPostRejected(t *testing.T) {
	repo := new(MockBookingRepository)
	posts := new(MockPostGate)
	svc := NewService(repo, posts, nil)

	posts.On("GetByID", mock.Anything, "post-1").
		Return(&domain.Post{ID: "post-1", UserID: "user-1"}, nil)

	_, err := svc.Create(context.Background(), "user-1", CreateBookingRequest{
		PostID:      "post-1",
		ScheduledAt: time.Now().Add(24 * time.Hour),
	})

	assert.ErrorIs(t, err, ErrOwnPost)
	repo.AssertNotCalled(t, "Create")
}

func TestCreateBookingPastTimeRejected(t *testing.T) {
	repo := new(MockBookingRepository)
	posts := new(MockPostGate)
	svc := NewService(repo, posts, nil)

	_, err := svc.Create(context.Background(), "client-1", CreateBookingRequest{
		PostID:      "post-1",
		ScheduledAt: time.Now().Add(-time.Hour),
	})

	assert.ErrorIs(t, err, ErrValidation)
	posts.AssertNotCalled(t, "GetByID")
}

func TestUpdateStatusProviderConfirms(t *testing.T) {
	repo := new(MockBookingRepository)
	notifs := new(MockNotifier)
	svc := NewService(repo, nil, notifs)

	pending := &domain.Booking{
		ID: "b1", PostID: "post-1",
		ProviderID: "provider-1", ClientID: "client-1",
		Status: domain.BookingPending,
	}
	confirmed := &domain.Booking{
		ID: "b1", PostID: "post-1",
		ProviderID: "provider-1", ClientID: "client-1",
		Status: domain.BookingConfirmed,
	}

	repo.On("GetByID", mock.Anything, "b1").Return(pending, nil).Once()
	repo.On("UpdateStatusFrom", mock.Anything, "b1", domain.BookingPending, domain.BookingConfirmed).
		Return(int64(1), nil)
	notifs.On("Record", mock.Anything, "client-1", domain.ActivityBookingStatusChanged, "post-1", mock.Anything).Return(nil)
	repo.On("GetByID", mock.Anything, "b1").Return(confirmed, nil).Once()

	b, err := svc.UpdateStatus(context.Background(), "b1", "provider-1", ActionConfirm)

	require.NoError(t, err)
	assert.Equal(t, domain.BookingConfirmed, b.Status)
}

func TestUpdateStatusInvalidActionNoWrite(t *testing.T) {
	repo := new(MockBookingRepository)
	svc := NewService(repo, nil, nil)

	repo.On("GetByID", mock.Anything, "b1").Return(&domain.Booking{
		ID: "b1", ProviderID: "provider-1", ClientID: "client-1",
		Status: domain.BookingPending,
	}, nil)

	// A client cannot confirm; the guard fires before any update.
	_, err := svc.UpdateStatus(context.Background(), "b1", "client-1", ActionConfirm)

	assert.ErrorIs(t, err, ErrInvalidTransition)
	repo.AssertNotCalled(t, "UpdateStatusFrom")
}

func TestUpdateStatusStrangerForbidden(t *testing.T) {
	repo := new(MockBookingRepository)
	svc := NewService(repo, nil, nil)

	repo.On("GetByID", mock.Anything, "b1").Return(&domain.Booking{
		ID: "b1", ProviderID: "provider-1", ClientID: "client-1",
		Status: domain.BookingPending,
	}, nil)

	_, err := svc.UpdateStatus(context.Background(), "b1", "someone-else", ActionCancel)

	assert.ErrorIs(t, err, ErrForbidden)
	repo.AssertNotCalled(t, "UpdateStatusFrom")
}

func TestUpdateStatusConcurrentChangeConflicts(t *testing.T) {
	repo := new(MockBookingRepository)
	svc := NewService(repo, nil, nil)

	repo.On("GetByID", mock.Anything, "b1").Return(&domain.Booking{
		ID: "b1", ProviderID: "provider-1", ClientID: "client-1",
		Status: domain.BookingPending,
	}, nil)
	// Someone else moved the booking between read and write.
	repo.On("UpdateStatusFrom", mock.Anything, "b1", domain.BookingPending, domain.BookingConfirmed).
		Return(int64(0), nil)

	_, err := svc.UpdateStatus(context.Background(), "b1", "provider-1", ActionConfirm)

	assert.ErrorIs(t, err, ErrConflict)
}

func TestUpdateStatusNotFound(t *testing.T) {
	repo := new(MockBookingRepository)
	svc := NewService(repo, nil, nil)

	repo.On("GetByID", mock.Anything, "missing").Return(nil, gorm.ErrRecordNotFound)

	_, err := svc.UpdateStatus(context.Background(), "missing", "provider-1", ActionConfirm)

	assert.ErrorIs(t, err, ErrNotFound)
}

func TestBulkPerItemResults(t *testing.T) {
	repo := new(MockBookingRepository)
	notifs := new(MockNotifier)
	svc := NewService(repo, nil, notifs)

	mkBooking := func(id string, status domain.BookingStatus) *domain.Booking {
		return &domain.Booking{
			ID: id, PostID: "post-1",
			ProviderID: "provider-1", ClientID: "client-1",
			Status: status,
		}
	}

	// b1 confirms cleanly.
	repo.On("GetByID", mock.Anything, "b1").Return(mkBooking("b1", domain.BookingPending), nil)
	repo.On("UpdateStatusFrom", mock.Anything, "b1", domain.BookingPending, domain.BookingConfirmed).
		Return(int64(1), nil)

	// b2 was already confirmed, so confirm is an invalid transition.
	repo.On("GetByID", mock.Anything, "b2").Return(mkBooking("b2", domain.BookingConfirmed), nil)

	// b3 loses the guarded write.
	repo.On("GetByID", mock.Anything, "b3").Return(mkBooking("b3", domain.BookingPending), nil)
	repo.On("UpdateStatusFrom", mock.Anything, "b3", domain.BookingPending, domain.BookingConfirmed).
		Return(int64(0), nil)

	notifs.On("Record", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(nil)

	results, err := svc.Bulk(context.Background(), "provider-1", BulkRequest{
		Action:     "confirm",
		BookingIDs: []string{"b1", "b2", "b3"},
	})

	require.NoError(t, err)
	require.Len(t, results, 3)

	assert.True(t, results[0].OK)
	assert.Equal(t, "b1", results[0].BookingID)

	assert.False(t, results[1].OK)
	assert.NotEmpty(t, results[1].Error)

	assert.False(t, results[2].OK)
	assert.NotEmpty(t, results[2].Error)
}

func TestBulkRejectsOtherActions(t *testing.T) {
	svc := NewService(new(MockBookingRepository), nil, nil)

	for _, action := range []string{"cancel", "complete", "review", ""} {
		_, err := svc.Bulk(context.Background(), "provider-1", BulkRequest{
			Action:     action,
			BookingIDs: []string{"b1"},
		})
		assert.ErrorIs(t, err, ErrValidation, "action %q", action)
	}
}

func TestListFiltersCancelledAndCollectsAwaiting(t *testing.T) {
	repo := new(MockBookingRepository)
	svc := NewService(repo, nil, nil)

	repo.On("ListByProvider", mock.Anything, "user-1").Return([]domain.Booking{
		{ID: "b1", Status: domain.BookingPending},
		{ID: "b2", Status: domain.BookingCancelled},
		{ID: "b3", Status: domain.BookingConfirmed},
		{ID: "b4", Status: domain.BookingPending},
	}, nil)
	repo.On("ListByClient", mock.Anything, "user-1").Return([]domain.Booking{
		{ID: "b5", Status: domain.BookingCancelled},
		{ID: "b6", Status: domain.BookingCompleted},
	}, nil)

	out, err := svc.List(context.Background(), "user-1")

	require.NoError(t, err)
	assert.Len(t, out.AsProvider, 3)
	assert.Len(t, out.AsClient, 1)

	require.Len(t, out.AwaitingAction, 2)
	assert.Equal(t, "b1", out.AwaitingAction[0].ID)
	assert.Equal(t, "b4", out.AwaitingAction[1].ID)
}

func TestCalendarRejectsBadMonth(t *testing.T) {
	svc := NewService(new(MockBookingRepository), nil, nil)

	_, err := svc.Calendar(context.Background(), "user-1", "received", "March 2026", time.UTC)
	assert.ErrorIs(t, err, ErrValidation)
}

func TestCalendarBucketsByDay(t *testing.T) {
	repo := new(MockBookingRepository)
	svc := NewService(repo, nil, nil)

	day := time.Date(2026, time.March, 10, 9, 0, 0, 0, time.UTC)
	repo.On("ListByProvider", mock.Anything, "user-1").Return([]domain.Booking{
		{ID: "b1", ScheduledAt: day, Status: domain.BookingPending},
		{ID: "b2", ScheduledAt: day.Add(2 * time.Hour), Status: domain.BookingConfirmed},
		{ID: "b3", ScheduledAt: day, Status: domain.BookingCancelled},
	}, nil)

	out, err := svc.Calendar(context.Background(), "user-1", "received", "2026-03", time.UTC)

	require.NoError(t, err)
	assert.Len(t, out.Cells, 42)
	assert.Len(t, out.Buckets["2026-03-10"], 2) // cancelled filtered out
}
