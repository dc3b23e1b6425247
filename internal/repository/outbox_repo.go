package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"uslugi/internal/domain"
)

type OutboxRepository struct {
	db *gorm.DB
}

func NewOutboxRepository(db *gorm.DB) *OutboxRepository {
	return &OutboxRepository{db: db}
}

func (r *OutboxRepository) Enqueue(ctx context.Context, kind domain.TaskKind, postID string) error {
	task := &domain.OutboxTask{
		ID:            uuid.NewString(),
		Kind:          kind,
		PostID:        postID,
		Status:        domain.TaskPending,
		NextAttemptAt: time.Now(),
	}
	return r.db.WithContext(ctx).Create(task).Error
}

// claimLease must exceed the worker's per-task timeout, so a task stays
// invisible to other tickers while its execution can still be in flight.
const claimLease = 2 * time.Minute

// ClaimDue leases pending tasks whose next attempt is due. Each returned
// task has its next_attempt_at pushed past the lease under a guarded
// update, so a concurrent caller cannot claim the same row; a task whose
// execution outcome is never recorded becomes claimable again once the
// lease expires.
func (r *OutboxRepository) ClaimDue(ctx context.Context, now time.Time, limit int) ([]domain.OutboxTask, error) {
	var candidates []domain.OutboxTask
	tx := r.db.WithContext(ctx).
		Where("status = ? AND next_attempt_at <= ?", domain.TaskPending, now).
		Order("next_attempt_at ASC").
		Limit(limit).
		Find(&candidates)
	if tx.Error != nil {
		return nil, tx.Error
	}

	claimed := make([]domain.OutboxTask, 0, len(candidates))
	for _, task := range candidates {
		res := r.db.WithContext(ctx).
			Model(&domain.OutboxTask{}).
			Where("id = ? AND status = ? AND next_attempt_at <= ?", task.ID, domain.TaskPending, now).
			Update("next_attempt_at", now.Add(claimLease))
		if res.Error != nil {
			return nil, res.Error
		}
		if res.RowsAffected == 1 {
			claimed = append(claimed, task)
		}
	}
	return claimed, nil
}

func (r *OutboxRepository) MarkDone(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).
		Model(&domain.OutboxTask{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"status":     string(domain.TaskDone),
			"last_error": "",
		}).Error
}

func (r *OutboxRepository) MarkRetry(ctx context.Context, id string, attempts int, nextAt time.Time, lastErr string) error {
	return r.db.WithContext(ctx).
		Model(&domain.OutboxTask{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"attempts":        attempts,
			"next_attempt_at": nextAt,
			"last_error":      lastErr,
		}).Error
}

func (r *OutboxRepository) MarkFailed(ctx context.Context, id string, lastErr string) error {
	return r.db.WithContext(ctx).
		Model(&domain.OutboxTask{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"status":     string(domain.TaskFailed),
			"last_error": lastErr,
		}).Error
}

func (r *OutboxRepository) List(ctx context.Context, status string, limit, offset int) ([]domain.OutboxTask, error) {
	q := r.db.WithContext(ctx).Model(&domain.OutboxTask{})
	if status != "" {
		q = q.Where("status = ?", status)
	}

	var tasks []domain.OutboxTask
	tx := q.Order("created_at DESC").Limit(limit).Offset(offset).Find(&tasks)
	return tasks, tx.Error
}
