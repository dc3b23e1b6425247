package post

import "uslugi/internal/domain"

type ValidateStepRequest struct {
	Step  int   `json:"step" binding:"required"`
	Draft Draft `json:"draft"`
}

type ValidateStepResponse struct {
	Step  int  `json:"step"`
	Valid bool `json:"valid"`
}

type SubmitResponse struct {
	Post       *domain.Post       `json:"post"`
	Moderation *ModerationOutcome `json:"moderation"`
}

type UpdateStatusRequest struct {
	Status string `json:"status" binding:"required"` // active | closed | completed
}

type AppealRequest struct {
	Message string `json:"message" binding:"required"`
}

type SuggestCategoryRequest struct {
	Title       string `json:"title" binding:"required"`
	Description string `json:"description"`
}

type SearchQuery struct {
	Type       string `form:"type"`
	CategoryID string `form:"category"`
	City       string `form:"city"`
	Query      string `form:"q"`
	Limit      int    `form:"limit"`
	Offset     int    `form:"offset"`
}
