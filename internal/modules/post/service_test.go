package post

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"uslugi/internal/domain"
	"uslugi/internal/repository"
)

type MockPostRepository struct {
	mock.Mock
}

func (m *MockPostRepository) Create(ctx context.Context, p *domain.Post) error {
	args := m.Called(ctx, p)
	if p != nil && p.ID == "" {
		p.ID = "post-1"
	}
	return args.Error(0)
}

func (m *MockPostRepository) GetByID(ctx context.Context, id string) (*domain.Post, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Post), args.Error(1)
}

func (m *MockPostRepository) ListByUser(ctx context.Context, userID string) ([]domain.Post, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Post), args.Error(1)
}

func (m *MockPostRepository) Search(ctx context.Context, f repository.PostFilter) ([]domain.Post, int64, error) {
	args := m.Called(ctx, f)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]domain.Post), args.Get(1).(int64), args.Error(2)
}

func (m *MockPostRepository) UpdateStatus(ctx context.Context, id string, status domain.PostStatus) error {
	args := m.Called(ctx, id, status)
	return args.Error(0)
}

func (m *MockPostRepository) Reactivate(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockPostRepository) SubmitAppeal(ctx context.Context, id, message string, at time.Time) error {
	args := m.Called(ctx, id, message, at)
	return args.Error(0)
}

func (m *MockPostRepository) Delete(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockPostRepository) Extend(ctx context.Context, id string, until time.Time) error {
	args := m.Called(ctx, id, until)
	return args.Error(0)
}

func (m *MockPostRepository) IncrementViews(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockPostRepository) IncrementPhoneClicks(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

type MockModerationLogRepository struct {
	mock.Mock
}

func (m *MockModerationLogRepository) Create(ctx context.Context, l *domain.ModerationLog) error {
	args := m.Called(ctx, l)
	return args.Error(0)
}

type MockTaskQueue struct {
	mock.Mock
}

func (m *MockTaskQueue) Enqueue(ctx context.Context, kind domain.TaskKind, postID string) error {
	args := m.Called(ctx, kind, postID)
	return args.Error(0)
}

type MockModerator struct {
	mock.Mock
}

func (m *MockModerator) Run(ctx context.Context, postID string) (*ModerationOutcome, error) {
	args := m.Called(ctx, postID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*ModerationOutcome), args.Error(1)
}

type MockCategoryGate struct {
	mock.Mock
}

func (m *MockCategoryGate) GetBySlug(ctx context.Context, slug string) (*domain.Category, error) {
	args := m.Called(ctx, slug)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Category), args.Error(1)
}

type MockCategorySuggester struct {
	mock.Mock
}

func (m *MockCategorySuggester) SuggestCategory(ctx context.Context, title, description string) (string, error) {
	args := m.Called(ctx, title, description)
	return args.String(0), args.Error(1)
}

type serviceMocks struct {
	posts     *MockPostRepository
	modlogs   *MockModerationLogRepository
	tasks     *MockTaskQueue
	moderator *MockModerator
}

func newTestService() (*Service, serviceMocks) {
	m := serviceMocks{
		posts:     new(MockPostRepository),
		modlogs:   new(MockModerationLogRepository),
		tasks:     new(MockTaskQueue),
		moderator: new(MockModerator),
	}
	svc := NewService(m.posts, m.modlogs, m.tasks, m.moderator,
		new(MockCategoryGate), new(MockCategorySuggester), 30, zap.NewNop())
	return svc, m
}

func TestSubmitIncompleteWizard(t *testing.T) {
	svc, m := newTestService()

	draft := completeDraft()
	draft.Images = nil

	_, err := svc.Submit(context.Background(), "user-1", draft)

	assert.ErrorIs(t, err, ErrIncompleteWizard)
	m.posts.AssertNotCalled(t, "Create")
	m.tasks.AssertNotCalled(t, "Enqueue")
}

func TestSubmitCreatesPendingCheckingAndQueuesEmbedding(t *testing.T) {
	svc, m := newTestService()

	var created *domain.Post
	m.posts.On("Create", mock.Anything, mock.AnythingOfType("*domain.Post")).
		Run(func(args mock.Arguments) {
			created = args.Get(1).(*domain.Post)
		}).Return(nil)
	m.tasks.On("Enqueue", mock.Anything, domain.TaskGenerateEmbedding, "post-1").Return(nil)
	m.moderator.On("Run", mock.Anything, "post-1").
		Return(&ModerationOutcome{Status: domain.ModerationApproved}, nil)
	m.posts.On("GetByID", mock.Anything, "post-1").Return(&domain.Post{
		ID: "post-1", Status: domain.PostActive, ModerationStatus: domain.ModerationApproved,
	}, nil)

	out, err := svc.Submit(context.Background(), "user-1", completeDraft())

	require.NoError(t, err)
	require.NotNil(t, created)
	assert.Equal(t, domain.PostPending, created.Status)
	assert.Equal(t, domain.ModerationChecking, created.ModerationStatus)
	assert.NotNil(t, created.ExpiresAt)
	assert.Equal(t, float64(60), created.Price)

	require.NotNil(t, out.Moderation)
	assert.Equal(t, domain.ModerationApproved, out.Moderation.Status)
	m.tasks.AssertCalled(t, "Enqueue", mock.Anything, domain.TaskGenerateEmbedding, "post-1")
}

func TestSubmitModerationFailureRequeues(t *testing.T) {
	svc, m := newTestService()

	m.posts.On("Create", mock.Anything, mock.AnythingOfType("*domain.Post")).Return(nil)
	m.tasks.On("Enqueue", mock.Anything, domain.TaskGenerateEmbedding, "post-1").Return(nil)
	m.moderator.On("Run", mock.Anything, "post-1").Return(nil, errors.New("upstream down"))
	m.tasks.On("Enqueue", mock.Anything, domain.TaskModeratePost, "post-1").Return(nil)

	out, err := svc.Submit(context.Background(), "user-1", completeDraft())

	// The post is still created; the verdict just isn't in yet.
	require.NoError(t, err)
	assert.Nil(t, out.Moderation)
	m.tasks.AssertCalled(t, "Enqueue", mock.Anything, domain.TaskModeratePost, "post-1")
}

func TestReactivationForcesRemoderation(t *testing.T) {
	svc, m := newTestService()

	owned := &domain.Post{ID: "post-1", UserID: "user-1", Status: domain.PostClosed}
	m.posts.On("GetByID", mock.Anything, "post-1").Return(owned, nil)
	m.posts.On("Reactivate", mock.Anything, "post-1").Return(nil)
	m.tasks.On("Enqueue", mock.Anything, domain.TaskModeratePost, "post-1").Return(nil)

	_, err := svc.UpdateStatus(context.Background(), "user-1", "post-1", domain.PostActive)

	require.NoError(t, err)
	// Reactivation goes through the atomic two-field update, never a plain
	// status write.
	m.posts.AssertCalled(t, "Reactivate", mock.Anything, "post-1")
	m.posts.AssertNotCalled(t, "UpdateStatus")
	m.tasks.AssertCalled(t, "Enqueue", mock.Anything, domain.TaskModeratePost, "post-1")
}

func TestCloseIsPlainStatusUpdate(t *testing.T) {
	svc, m := newTestService()

	owned := &domain.Post{ID: "post-1", UserID: "user-1", Status: domain.PostActive}
	m.posts.On("GetByID", mock.Anything, "post-1").Return(owned, nil)
	m.posts.On("UpdateStatus", mock.Anything, "post-1", domain.PostClosed).Return(nil)

	_, err := svc.UpdateStatus(context.Background(), "user-1", "post-1", domain.PostClosed)

	require.NoError(t, err)
	m.posts.AssertNotCalled(t, "Reactivate")
	m.tasks.AssertNotCalled(t, "Enqueue")
}

func TestUpdateStatusOwnershipEnforced(t *testing.T) {
	svc, m := newTestService()

	m.posts.On("GetByID", mock.Anything, "post-1").
		Return(&domain.Post{ID: "post-1", UserID: "owner-1"}, nil)

	_, err := svc.UpdateStatus(context.Background(), "intruder", "post-1", domain.PostClosed)

	assert.ErrorIs(t, err, ErrForbidden)
	m.posts.AssertNotCalled(t, "UpdateStatus")
}

func TestAppealGuards(t *testing.T) {
	t.Run("only rejected posts", func(t *testing.T) {
		svc, m := newTestService()
		m.posts.On("GetByID", mock.Anything, "post-1").Return(&domain.Post{
			ID: "post-1", UserID: "user-1", ModerationStatus: domain.ModerationApproved,
		}, nil)

		err := svc.Appeal(context.Background(), "user-1", "post-1", "Proszę o ponowną weryfikację")
		assert.ErrorIs(t, err, ErrNotRejected)
	})

	t.Run("no second in-flight appeal", func(t *testing.T) {
		svc, m := newTestService()
		m.posts.On("GetByID", mock.Anything, "post-1").Return(&domain.Post{
			ID: "post-1", UserID: "user-1",
			ModerationStatus: domain.ModerationRejected,
			AppealStatus:     domain.AppealPending,
		}, nil)

		err := svc.Appeal(context.Background(), "user-1", "post-1", "Jeszcze raz")
		assert.ErrorIs(t, err, ErrAppealInFlight)
	})

	t.Run("empty message", func(t *testing.T) {
		svc, _ := newTestService()
		err := svc.Appeal(context.Background(), "user-1", "post-1", "   ")
		assert.ErrorIs(t, err, ErrValidation)
	})

	t.Run("rejected post appeals and logs", func(t *testing.T) {
		svc, m := newTestService()
		m.posts.On("GetByID", mock.Anything, "post-1").Return(&domain.Post{
			ID: "post-1", UserID: "user-1",
			ModerationStatus: domain.ModerationRejected,
		}, nil)
		m.posts.On("SubmitAppeal", mock.Anything, "post-1", "Proszę o ponowną weryfikację", mock.Anything).Return(nil)
		m.modlogs.On("Create", mock.Anything, mock.MatchedBy(func(l *domain.ModerationLog) bool {
			return l.Action == "appeal_submitted" && l.PostID == "post-1"
		})).Return(nil)

		err := svc.Appeal(context.Background(), "user-1", "post-1", "Proszę o ponowną weryfikację")
		require.NoError(t, err)
		m.modlogs.AssertExpectations(t)
	})

	t.Run("appeal allowed again after a rejected appeal", func(t *testing.T) {
		svc, m := newTestService()
		m.posts.On("GetByID", mock.Anything, "post-1").Return(&domain.Post{
			ID: "post-1", UserID: "user-1",
			ModerationStatus: domain.ModerationRejected,
			AppealStatus:     domain.AppealRejected,
		}, nil)
		m.posts.On("SubmitAppeal", mock.Anything, "post-1", "Nowe argumenty", mock.Anything).Return(nil)
		m.modlogs.On("Create", mock.Anything, mock.Anything).Return(nil)

		err := svc.Appeal(context.Background(), "user-1", "post-1", "Nowe argumenty")
		assert.NoError(t, err)
	})
}

func TestSuggestCategoryResolvesLeafSlug(t *testing.T) {
	posts := new(MockPostRepository)
	categories := new(MockCategoryGate)
	suggester := new(MockCategorySuggester)
	svc := NewService(posts, new(MockModerationLogRepository), new(MockTaskQueue),
		new(MockModerator), categories, suggester, 30, zap.NewNop())

	suggester.On("SuggestCategory", mock.Anything, "Sprzątanie", "").
		Return("dom-i-ogrod/sprzatanie", nil)
	categories.On("GetBySlug", mock.Anything, "sprzatanie").
		Return(&domain.Category{ID: "cat-1", Slug: "sprzatanie"}, nil)

	cat, path, err := svc.SuggestCategory(context.Background(), "Sprzątanie", "")

	require.NoError(t, err)
	assert.Equal(t, "cat-1", cat.ID)
	assert.Equal(t, "dom-i-ogrod/sprzatanie", path)
}
