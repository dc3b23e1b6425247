package domain

import "time"

type TaskKind string

const (
	TaskGenerateEmbedding TaskKind = "generate_embedding"
	TaskModeratePost      TaskKind = "moderate_post"
)

type TaskStatus string

const (
	TaskPending TaskStatus = "pending"
	TaskDone    TaskStatus = "done"
	TaskFailed  TaskStatus = "failed"
)

// OutboxTask is a retryable background side effect (embedding generation,
// moderation re-check) that must not be silently dropped on failure.
type OutboxTask struct {
	ID            string     `json:"id" gorm:"type:uuid;primaryKey"`
	Kind          TaskKind   `json:"kind"`
	PostID        string     `json:"post_id" gorm:"index"`
	Status        TaskStatus `json:"status" gorm:"index"`
	Attempts      int        `json:"attempts"`
	NextAttemptAt time.Time  `json:"next_attempt_at" gorm:"index"`
	LastError     string     `json:"last_error,omitempty" gorm:"type:text"`
	CreatedAt     time.Time  `json:"created_at"`
	UpdatedAt     time.Time  `json:"updated_at"`
}
