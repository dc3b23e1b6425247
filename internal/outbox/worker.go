package outbox

import (
	"context"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"uslugi/internal/ai"
	"uslugi/internal/domain"
	"uslugi/internal/modules/post"
)

const (
	batchSize   = 20
	maxAttempts = 5
	taskTimeout = time.Minute
)

type TaskStore interface {
	ClaimDue(ctx context.Context, now time.Time, limit int) ([]domain.OutboxTask, error)
	MarkDone(ctx context.Context, id string) error
	MarkRetry(ctx context.Context, id string, attempts int, nextAt time.Time, lastErr string) error
	MarkFailed(ctx context.Context, id string, lastErr string) error
	List(ctx context.Context, status string, limit, offset int) ([]domain.OutboxTask, error)
}

type PostStore interface {
	GetByID(ctx context.Context, id string) (*domain.Post, error)
	SetEmbedding(ctx context.Context, id, vector string) error
}

type Embedder interface {
	GenerateEmbedding(ctx context.Context, in ai.ModerationInput) ([]float64, error)
}

type Moderator interface {
	Run(ctx context.Context, postID string) (*post.ModerationOutcome, error)
}

// Worker drains the outbox on a schedule. Every task either completes,
// is rescheduled with exponential backoff, or is marked failed after
// maxAttempts so operators can see it.
type Worker struct {
	tasks     TaskStore
	posts     PostStore
	embedder  Embedder
	moderator Moderator
	logger    *zap.Logger
	cron      *cron.Cron
}

func NewWorker(tasks TaskStore, posts PostStore, embedder Embedder, moderator Moderator, logger *zap.Logger) *Worker {
	return &Worker{
		tasks:     tasks,
		posts:     posts,
		embedder:  embedder,
		moderator: moderator,
		logger:    logger,
		cron:      cron.New(),
	}
}

func (w *Worker) Start() error {
	// A slow batch must not overlap the next tick; skipped ticks are
	// harmless because unfinished tasks come back once their lease expires.
	job := cron.NewChain(cron.SkipIfStillRunning(cron.DiscardLogger)).
		Then(cron.FuncJob(func() {
			w.RunOnce(context.Background())
		}))
	if _, err := w.cron.AddJob("* * * * *", job); err != nil {
		return err
	}
	w.cron.Start()
	return nil
}

func (w *Worker) Stop() {
	ctx := w.cron.Stop()
	<-ctx.Done()
}

// RunOnce claims and executes one batch of due tasks.
func (w *Worker) RunOnce(ctx context.Context) {
	due, err := w.tasks.ClaimDue(ctx, time.Now(), batchSize)
	if err != nil {
		w.logger.Error("outbox claim failed", zap.Error(err))
		return
	}

	for _, task := range due {
		w.process(ctx, task)
	}
}

func (w *Worker) process(ctx context.Context, task domain.OutboxTask) {
	taskCtx, cancel := context.WithTimeout(ctx, taskTimeout)
	defer cancel()

	err := w.execute(taskCtx, task)
	if err == nil {
		if err := w.tasks.MarkDone(ctx, task.ID); err != nil {
			w.logger.Error("outbox mark done failed", zap.String("task_id", task.ID), zap.Error(err))
		}
		return
	}

	attempts := task.Attempts + 1
	if attempts >= maxAttempts {
		w.logger.Warn("outbox task failed permanently",
			zap.String("task_id", task.ID),
			zap.String("kind", string(task.Kind)),
			zap.String("post_id", task.PostID),
			zap.Error(err))
		if err := w.tasks.MarkFailed(ctx, task.ID, err.Error()); err != nil {
			w.logger.Error("outbox mark failed failed", zap.String("task_id", task.ID), zap.Error(err))
		}
		return
	}

	nextAt := time.Now().Add(backoff(attempts))
	w.logger.Info("outbox task retry scheduled",
		zap.String("task_id", task.ID),
		zap.String("kind", string(task.Kind)),
		zap.Int("attempts", attempts),
		zap.Time("next_attempt_at", nextAt),
		zap.Error(err))
	if err := w.tasks.MarkRetry(ctx, task.ID, attempts, nextAt, err.Error()); err != nil {
		w.logger.Error("outbox mark retry failed", zap.String("task_id", task.ID), zap.Error(err))
	}
}

func (w *Worker) execute(ctx context.Context, task domain.OutboxTask) error {
	switch task.Kind {
	case domain.TaskGenerateEmbedding:
		return w.generateEmbedding(ctx, task.PostID)
	case domain.TaskModeratePost:
		_, err := w.moderator.Run(ctx, task.PostID)
		return err
	default:
		return fmt.Errorf("outbox: unknown task kind %q", task.Kind)
	}
}

func (w *Worker) generateEmbedding(ctx context.Context, postID string) error {
	p, err := w.posts.GetByID(ctx, postID)
	if err != nil {
		return err
	}

	vec, err := w.embedder.GenerateEmbedding(ctx, ai.ModerationInput{
		Title:       p.Title,
		Description: p.Description,
		City:        p.City,
	})
	if err != nil {
		return err
	}

	return w.posts.SetEmbedding(ctx, p.ID, ai.FormatVector(vec))
}

// backoff doubles per attempt: 2m, 4m, 8m, 16m.
func backoff(attempts int) time.Duration {
	return time.Duration(1<<attempts) * time.Minute
}
