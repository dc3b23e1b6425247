package review

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"uslugi/internal/middleware"
	"uslugi/internal/pkg/response"
	"uslugi/internal/pkg/validator"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/reviews", h.Create)
	rg.POST("/reviews/:id/respond", h.Respond)
}

func (h *Handler) RegisterPublicRoutes(rg *gin.RouterGroup) {
	rg.GET("/users/:id/reviews", h.ListForUser)
}

func (h *Handler) Create(c *gin.Context) {
	var req CreateReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}
	if errs := validator.Validate(req); errs != nil {
		response.ErrorWithDetails(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid review", errs)
		return
	}

	rv, err := h.service.Create(c.Request.Context(), middleware.UserID(c), req)
	if err != nil {
		switch err {
		case ErrInvalidRequest:
			response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Rating must be 1-5 and comment at most 500 characters")
		case ErrSelfReview:
			response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Cannot review yourself")
		case ErrNotFound:
			response.Error(c, http.StatusNotFound, "NOT_FOUND", "Booking not found")
		case ErrForbidden:
			response.Error(c, http.StatusForbidden, "FORBIDDEN", "Only the booking's client can review it")
		case ErrNotReviewable:
			response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Only completed bookings can be reviewed")
		case ErrConflict:
			response.Error(c, http.StatusConflict, "CONFLICT", "Review already exists")
		default:
			response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to create review")
		}
		return
	}

	response.Success(c, http.StatusCreated, gin.H{"review": rv})
}

func (h *Handler) Respond(c *gin.Context) {
	var req RespondRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	rv, err := h.service.Respond(c.Request.Context(), c.Param("id"), middleware.UserID(c), req.Response)
	if err != nil {
		switch err {
		case ErrInvalidRequest:
			response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Response must not be empty")
		case ErrNotFound:
			response.Error(c, http.StatusNotFound, "NOT_FOUND", "Review not found")
		case ErrForbidden:
			response.Error(c, http.StatusForbidden, "FORBIDDEN", "Only the reviewed user can respond")
		default:
			response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to save response")
		}
		return
	}

	response.Success(c, http.StatusOK, gin.H{"review": rv})
}

func (h *Handler) ListForUser(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))
	offset, _ := strconv.Atoi(c.DefaultQuery("offset", "0"))

	out, err := h.service.ListForUser(c.Request.Context(), c.Param("id"), limit, offset)
	if err != nil {
		switch err {
		case ErrInvalidRequest:
			response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid user id")
		default:
			response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to load reviews")
		}
		return
	}
	response.Success(c, http.StatusOK, out)
}
