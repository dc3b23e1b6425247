package review

type CreateReviewRequest struct {
	ReviewedID string `json:"reviewed_id" validate:"required"`
	PostID     string `json:"post_id" validate:"required"`
	BookingID  string `json:"booking_id" validate:"required"`
	Rating     int    `json:"rating" validate:"required,gte=1,lte=5"`
	Comment    string `json:"comment,omitempty" validate:"max=500"`
}

type RespondRequest struct {
	Response string `json:"response" validate:"required"`
}

type UserReviewsResponse struct {
	Reviews interface{} `json:"reviews"`
	Average float64     `json:"average"`
	Count   int64       `json:"count"`
}
