package moderation

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"uslugi/internal/domain"
	"uslugi/internal/middleware"
	"uslugi/internal/pkg/response"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes carries the rate-limited owner-facing endpoint.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/moderate", h.Moderate)
}

func (h *Handler) RegisterAdminRoutes(rg *gin.RouterGroup) {
	rg.GET("/moderation", h.Queue)
	rg.GET("/moderation/:postId/history", h.History)
	rg.PATCH("/moderation/:postId", h.Decide)
}

func (h *Handler) Moderate(c *gin.Context) {
	var req ModerateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Post ID required")
		return
	}

	isAdmin := c.GetString("role") == string(domain.RoleAdmin)
	out, err := h.service.RunAs(c.Request.Context(), middleware.UserID(c), isAdmin, req.PostID)
	if err != nil {
		h.writeError(c, err)
		return
	}
	response.Success(c, http.StatusOK, out)
}

func (h *Handler) Queue(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))
	offset, _ := strconv.Atoi(c.DefaultQuery("offset", "0"))

	var statuses []string
	if raw := c.Query("status"); raw != "" {
		statuses = strings.Split(raw, ",")
	}

	posts, total, err := h.service.Queue(c.Request.Context(), statuses, limit, offset)
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to load queue")
		return
	}
	response.Success(c, http.StatusOK, gin.H{"posts": posts, "total": total})
}

func (h *Handler) Decide(c *gin.Context) {
	var req DecideRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	err := h.service.Decide(c.Request.Context(), middleware.UserID(c), c.Param("postId"), req.Decision, req.Reason)
	if err != nil {
		h.writeError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"decided": true})
}

func (h *Handler) History(c *gin.Context) {
	logs, err := h.service.History(c.Request.Context(), c.Param("postId"))
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to load history")
		return
	}
	response.Success(c, http.StatusOK, gin.H{"logs": logs})
}

func (h *Handler) writeError(c *gin.Context, err error) {
	switch err {
	case ErrValidation:
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request")
	case ErrNotFound:
		response.Error(c, http.StatusNotFound, "NOT_FOUND", "Post not found")
	case ErrForbidden:
		response.Error(c, http.StatusForbidden, "FORBIDDEN", "Not allowed")
	case ErrUpstream:
		response.Error(c, http.StatusBadGateway, "UPSTREAM_ERROR", "Moderation service unavailable")
	default:
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Moderation failed")
	}
}
