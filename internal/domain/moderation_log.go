package domain

import "time"

type ModerationLog struct {
	ID             string    `json:"id" gorm:"type:uuid;primaryKey"`
	PostID         string    `json:"post_id" gorm:"index"`
	Action         string    `json:"action"`
	Reason         string    `json:"reason,omitempty" gorm:"type:text"`
	PreviousStatus string    `json:"previous_status"`
	NewStatus      string    `json:"new_status"`
	ActorID        string    `json:"actor_id,omitempty"`
	CreatedAt      time.Time `json:"created_at"`
}
