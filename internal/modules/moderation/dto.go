package moderation

type ModerateRequest struct {
	PostID string `json:"post_id" binding:"required"`
}

type DecideRequest struct {
	Decision string `json:"decision" binding:"required"` // approve | reject
	Reason   string `json:"reason"`
}
