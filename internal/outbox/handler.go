package outbox

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"uslugi/internal/pkg/response"
)

// Handler exposes the outbox to admins for inspecting stuck tasks.
type Handler struct {
	tasks TaskStore
}

func NewHandler(tasks TaskStore) *Handler {
	return &Handler{tasks: tasks}
}

func (h *Handler) RegisterAdminRoutes(rg *gin.RouterGroup) {
	rg.GET("/outbox", h.List)
}

func (h *Handler) List(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))
	offset, _ := strconv.Atoi(c.DefaultQuery("offset", "0"))
	if limit <= 0 || limit > 200 {
		limit = 50
	}

	tasks, err := h.tasks.List(c.Request.Context(), c.Query("status"), limit, offset)
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to load outbox")
		return
	}
	response.Success(c, http.StatusOK, gin.H{"tasks": tasks})
}
