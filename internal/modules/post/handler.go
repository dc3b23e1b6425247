package post

import (
	"net/http"

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

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/posts", h.Submit)
	rg.POST("/posts/validate-step", h.ValidateStep)
	rg.GET("/my-posts", h.ListMine)
	rg.PATCH("/posts/:id/status", h.UpdateStatus)
	rg.POST("/posts/:id/appeal", h.Appeal)
	rg.DELETE("/posts/:id", h.Delete)
	rg.POST("/posts/:id/extend", h.Extend)
}

func (h *Handler) RegisterPublicRoutes(rg *gin.RouterGroup) {
	rg.GET("/posts", h.Search)
	rg.GET("/posts/:id", h.Get)
	rg.POST("/posts/:id/phone-click", h.PhoneClick)
}

// RegisterAIRoutes carries the rate-limited AI-backed endpoints.
func (h *Handler) RegisterAIRoutes(rg *gin.RouterGroup) {
	rg.POST("/posts/suggest-category", h.SuggestCategory)
}

func (h *Handler) ValidateStep(c *gin.Context) {
	var req ValidateStepRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}
	response.Success(c, http.StatusOK, ValidateStepResponse{
		Step:  req.Step,
		Valid: req.Draft.StepValid(req.Step),
	})
}

func (h *Handler) Submit(c *gin.Context) {
	var draft Draft
	if err := c.ShouldBindJSON(&draft); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	out, err := h.service.Submit(c.Request.Context(), middleware.UserID(c), draft)
	if err != nil {
		switch err {
		case ErrIncompleteWizard:
			response.ErrorWithDetails(c, http.StatusBadRequest, "VALIDATION_ERROR", "Listing is incomplete",
				gin.H{"step": draft.FirstInvalidStep()})
		case ErrValidation:
			response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid listing")
		default:
			response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to create listing")
		}
		return
	}

	response.Success(c, http.StatusCreated, out)
}

func (h *Handler) UpdateStatus(c *gin.Context) {
	var req UpdateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	p, err := h.service.UpdateStatus(c.Request.Context(), middleware.UserID(c), c.Param("id"), domain.PostStatus(req.Status))
	if err != nil {
		h.writeError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"post": p})
}

func (h *Handler) Appeal(c *gin.Context) {
	var req AppealRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	err := h.service.Appeal(c.Request.Context(), middleware.UserID(c), c.Param("id"), req.Message)
	if err != nil {
		switch err {
		case ErrNotRejected:
			response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Only rejected listings can be appealed")
		case ErrAppealInFlight:
			response.Error(c, http.StatusConflict, "CONFLICT", "An appeal is already in progress")
		default:
			h.writeError(c, err)
		}
		return
	}
	response.Success(c, http.StatusOK, gin.H{"appealed": true})
}

func (h *Handler) Delete(c *gin.Context) {
	if err := h.service.Delete(c.Request.Context(), middleware.UserID(c), c.Param("id")); err != nil {
		h.writeError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"deleted": true})
}

func (h *Handler) Extend(c *gin.Context) {
	p, err := h.service.Extend(c.Request.Context(), middleware.UserID(c), c.Param("id"))
	if err != nil {
		h.writeError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"post": p})
}

func (h *Handler) PhoneClick(c *gin.Context) {
	if err := h.service.PhoneClick(c.Request.Context(), c.Param("id")); err != nil {
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to track click")
		return
	}
	response.Success(c, http.StatusOK, gin.H{"tracked": true})
}

func (h *Handler) Get(c *gin.Context) {
	p, err := h.service.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.writeError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"post": p})
}

func (h *Handler) Search(c *gin.Context) {
	var q SearchQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid query")
		return
	}

	posts, total, err := h.service.Search(c.Request.Context(), q)
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Search failed")
		return
	}
	response.Success(c, http.StatusOK, gin.H{"posts": posts, "total": total})
}

func (h *Handler) ListMine(c *gin.Context) {
	posts, err := h.service.ListMine(c.Request.Context(), middleware.UserID(c))
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to load posts")
		return
	}
	response.Success(c, http.StatusOK, gin.H{"posts": posts})
}

func (h *Handler) SuggestCategory(c *gin.Context) {
	var req SuggestCategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	cat, slugPath, err := h.service.SuggestCategory(c.Request.Context(), req.Title, req.Description)
	if err != nil {
		switch err {
		case ErrValidation:
			response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Title is required")
		default:
			response.Error(c, http.StatusBadGateway, "UPSTREAM_ERROR", "Category suggestion unavailable")
		}
		return
	}
	response.Success(c, http.StatusOK, gin.H{"category": cat, "slug_path": slugPath})
}

func (h *Handler) writeError(c *gin.Context, err error) {
	switch err {
	case ErrNotFound:
		response.Error(c, http.StatusNotFound, "NOT_FOUND", "Post not found")
	case ErrForbidden:
		response.Error(c, http.StatusForbidden, "FORBIDDEN", "You do not own this post")
	case ErrValidation:
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request")
	default:
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Operation failed")
	}
}
