package repository

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"uslugi/internal/database"
	"uslugi/internal/domain"
)

func newOutboxRepo(t *testing.T) *OutboxRepository {
	db, err := database.Connect(":memory:")
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))
	return NewOutboxRepository(db)
}

func TestClaimDueLeasesTask(t *testing.T) {
	repo := newOutboxRepo(t)
	ctx := context.Background()

	require.NoError(t, repo.Enqueue(ctx, domain.TaskGenerateEmbedding, "post-1"))

	now := time.Now()
	first, err := repo.ClaimDue(ctx, now, 20)
	require.NoError(t, err)
	require.Len(t, first, 1)
	assert.Equal(t, "post-1", first[0].PostID)

	// The task is leased; a second ticker firing while the first batch is
	// still executing must not see it.
	second, err := repo.ClaimDue(ctx, now, 20)
	require.NoError(t, err)
	assert.Empty(t, second)
}

func TestClaimDueLeaseExpires(t *testing.T) {
	repo := newOutboxRepo(t)
	ctx := context.Background()

	require.NoError(t, repo.Enqueue(ctx, domain.TaskModeratePost, "post-2"))

	now := time.Now()
	first, err := repo.ClaimDue(ctx, now, 20)
	require.NoError(t, err)
	require.Len(t, first, 1)

	// If the holder crashed without recording an outcome, the task comes
	// back after the lease window.
	later := now.Add(claimLease + time.Second)
	reclaimed, err := repo.ClaimDue(ctx, later, 20)
	require.NoError(t, err)
	require.Len(t, reclaimed, 1)
	assert.Equal(t, first[0].ID, reclaimed[0].ID)
}

func TestClaimDueSkipsSettledTasks(t *testing.T) {
	repo := newOutboxRepo(t)
	ctx := context.Background()

	require.NoError(t, repo.Enqueue(ctx, domain.TaskGenerateEmbedding, "post-3"))
	require.NoError(t, repo.Enqueue(ctx, domain.TaskModeratePost, "post-4"))

	now := time.Now()
	claimed, err := repo.ClaimDue(ctx, now, 20)
	require.NoError(t, err)
	require.Len(t, claimed, 2)

	var done, retried domain.OutboxTask
	for _, task := range claimed {
		switch task.PostID {
		case "post-3":
			done = task
		case "post-4":
			retried = task
		}
	}
	require.NoError(t, repo.MarkDone(ctx, done.ID))
	require.NoError(t, repo.MarkRetry(ctx, retried.ID, 1, now.Add(2*time.Minute), "upstream timeout"))

	// Well past every lease: the done task stays gone, the retried one only
	// reappears once its scheduled attempt is due.
	beforeRetry, err := repo.ClaimDue(ctx, now.Add(time.Minute), 20)
	require.NoError(t, err)
	assert.Empty(t, beforeRetry)

	afterRetry, err := repo.ClaimDue(ctx, now.Add(3*time.Minute), 20)
	require.NoError(t, err)
	require.Len(t, afterRetry, 1)
	assert.Equal(t, retried.ID, afterRetry[0].ID)
	assert.Equal(t, 1, afterRetry[0].Attempts)
}
