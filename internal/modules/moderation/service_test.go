package moderation

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"uslugi/internal/ai"
	"uslugi/internal/domain"
)

type MockChecker struct {
	mock.Mock
}

func (m *MockChecker) Moderate(ctx context.Context, in ai.ModerationInput) (*ai.ModerationVerdict, error) {
	args := m.Called(ctx, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*ai.ModerationVerdict), args.Error(1)
}

type MockPostStore struct {
	mock.Mock
}

func (m *MockPostStore) GetByID(ctx context.Context, id string) (*domain.Post, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Post), args.Error(1)
}

func (m *MockPostStore) ApplyModeration(ctx context.Context, id string, verdict domain.ModerationStatus, reason string) error {
	args := m.Called(ctx, id, verdict, reason)
	return args.Error(0)
}

func (m *MockPostStore) SetAppealStatus(ctx context.Context, id string, status domain.AppealStatus) error {
	args := m.Called(ctx, id, status)
	return args.Error(0)
}

func (m *MockPostStore) ListByModerationStatus(ctx context.Context, statuses []string, limit, offset int) ([]domain.Post, int64, error) {
	args := m.Called(ctx, statuses, limit, offset)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]domain.Post), args.Get(1).(int64), args.Error(2)
}

type MockLogStore struct {
	mock.Mock
}

func (m *MockLogStore) Create(ctx context.Context, l *domain.ModerationLog) error {
	args := m.Called(ctx, l)
	return args.Error(0)
}

func (m *MockLogStore) ListByPost(ctx context.Context, postID string) ([]domain.ModerationLog, error) {
	args := m.Called(ctx, postID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.ModerationLog), args.Error(1)
}

func checkingPost() *domain.Post {
	return &domain.Post{
		ID: "post-1", UserID: "user-1",
		Title: "Sprzątanie", Description: "Dokładne", City: "Warszawa",
		Status:           domain.PostPending,
		ModerationStatus: domain.ModerationChecking,
	}
}

func TestRunAppliesVerdictAndLogs(t *testing.T) {
	checker := new(MockChecker)
	posts := new(MockPostStore)
	logs := new(MockLogStore)
	svc := NewService(checker, posts, logs)

	posts.On("GetByID", mock.Anything, "post-1").Return(checkingPost(), nil)
	checker.On("Moderate", mock.Anything, mock.Anything).
		Return(&ai.ModerationVerdict{Status: "approved"}, nil)
	posts.On("ApplyModeration", mock.Anything, "post-1", domain.ModerationApproved, "").Return(nil)
	logs.On("Create", mock.Anything, mock.MatchedBy(func(l *domain.ModerationLog) bool {
		return l.Action == "auto_approved" && l.PostID == "post-1"
	})).Return(nil)

	out, err := svc.Run(context.Background(), "post-1")

	require.NoError(t, err)
	assert.Equal(t, domain.ModerationApproved, out.Status)
	logs.AssertExpectations(t)
}

func TestRunUpstreamFailure(t *testing.T) {
	checker := new(MockChecker)
	posts := new(MockPostStore)
	svc := NewService(checker, posts, new(MockLogStore))

	posts.On("GetByID", mock.Anything, "post-1").Return(checkingPost(), nil)
	checker.On("Moderate", mock.Anything, mock.Anything).Return(nil, errors.New("timeout"))

	_, err := svc.Run(context.Background(), "post-1")

	assert.ErrorIs(t, err, ErrUpstream)
	posts.AssertNotCalled(t, "ApplyModeration")
}

func TestRunAsOwnershipGate(t *testing.T) {
	checker := new(MockChecker)
	posts := new(MockPostStore)
	svc := NewService(checker, posts, new(MockLogStore))

	posts.On("GetByID", mock.Anything, "post-1").Return(checkingPost(), nil)

	_, err := svc.RunAs(context.Background(), "stranger", false, "post-1")
	assert.ErrorIs(t, err, ErrForbidden)
}

func TestQueueDefaultsToCheckingAndFlagged(t *testing.T) {
	posts := new(MockPostStore)
	svc := NewService(new(MockChecker), posts, new(MockLogStore))

	posts.On("ListByModerationStatus", mock.Anything, []string{"checking", "flagged"}, 20, 0).
		Return([]domain.Post{{ID: "post-1"}}, int64(1), nil)

	out, total, err := svc.Queue(context.Background(), nil, 0, 0)

	require.NoError(t, err)
	assert.Len(t, out, 1)
	assert.Equal(t, int64(1), total)
}

func TestDecideApproveResolvesOpenAppeal(t *testing.T) {
	posts := new(MockPostStore)
	logs := new(MockLogStore)
	svc := NewService(new(MockChecker), posts, logs)

	p := checkingPost()
	p.ModerationStatus = domain.ModerationRejected
	p.AppealStatus = domain.AppealPending

	posts.On("GetByID", mock.Anything, "post-1").Return(p, nil)
	posts.On("ApplyModeration", mock.Anything, "post-1", domain.ModerationApproved, "ok after appeal").Return(nil)
	posts.On("SetAppealStatus", mock.Anything, "post-1", domain.AppealApproved).Return(nil)
	logs.On("Create", mock.Anything, mock.MatchedBy(func(l *domain.ModerationLog) bool {
		return l.Action == "manual_approve" && l.ActorID == "admin-1"
	})).Return(nil)

	err := svc.Decide(context.Background(), "admin-1", "post-1", "approve", "ok after appeal")

	require.NoError(t, err)
	posts.AssertCalled(t, "SetAppealStatus", mock.Anything, "post-1", domain.AppealApproved)
}

func TestDecideRejectClosesAppealAsRejected(t *testing.T) {
	posts := new(MockPostStore)
	logs := new(MockLogStore)
	svc := NewService(new(MockChecker), posts, logs)

	p := checkingPost()
	p.ModerationStatus = domain.ModerationRejected
	p.AppealStatus = domain.AppealReviewing

	posts.On("GetByID", mock.Anything, "post-1").Return(p, nil)
	posts.On("ApplyModeration", mock.Anything, "post-1", domain.ModerationRejected, "still bad").Return(nil)
	posts.On("SetAppealStatus", mock.Anything, "post-1", domain.AppealRejected).Return(nil)
	logs.On("Create", mock.Anything, mock.Anything).Return(nil)

	err := svc.Decide(context.Background(), "admin-1", "post-1", "reject", "still bad")
	require.NoError(t, err)
}

func TestDecideUnknownDecision(t *testing.T) {
	posts := new(MockPostStore)
	svc := NewService(new(MockChecker), posts, new(MockLogStore))

	err := svc.Decide(context.Background(), "admin-1", "post-1", "escalate", "")
	assert.ErrorIs(t, err, ErrValidation)
	posts.AssertNotCalled(t, "ApplyModeration")
}
