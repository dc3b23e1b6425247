package catalog

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"uslugi/internal/pkg/response"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterPublicRoutes registers the read side used by the storefront.
func (h *Handler) RegisterPublicRoutes(rg *gin.RouterGroup) {
	rg.GET("/categories", h.Tree)
	rg.GET("/cities", h.Cities)
}

// RegisterAdminRoutes registers category management, admin only.
func (h *Handler) RegisterAdminRoutes(rg *gin.RouterGroup) {
	rg.POST("/categories", h.Create)
	rg.PATCH("/categories/reorder", h.BatchReorder)
	rg.POST("/categories/:id/reorder", h.Reorder)
	rg.PATCH("/categories/:id", h.Update)
	rg.DELETE("/categories/:id", h.Delete)
}

func (h *Handler) Tree(c *gin.Context) {
	tree, err := h.service.Tree(c.Request.Context())
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to load categories")
		return
	}
	response.Success(c, http.StatusOK, gin.H{"categories": tree})
}

func (h *Handler) Cities(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "10"))

	cities, err := h.service.Cities(c.Request.Context(), c.Query("q"), limit)
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to search cities")
		return
	}
	response.Success(c, http.StatusOK, gin.H{"cities": cities})
}

func (h *Handler) Create(c *gin.Context) {
	var req CreateCategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	cat, err := h.service.Create(c.Request.Context(), req)
	if err != nil {
		switch err {
		case ErrValidation:
			response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Name and slug are required")
		case ErrConflict:
			response.Error(c, http.StatusConflict, "CONFLICT", "Slug already in use")
		case ErrNotFound:
			response.Error(c, http.StatusNotFound, "NOT_FOUND", "Parent category not found")
		default:
			response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to create category")
		}
		return
	}
	response.Success(c, http.StatusCreated, gin.H{"category": cat})
}

func (h *Handler) Update(c *gin.Context) {
	var req UpdateCategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	cat, err := h.service.Update(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		switch err {
		case ErrNotFound:
			response.Error(c, http.StatusNotFound, "NOT_FOUND", "Category not found")
		default:
			response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to update category")
		}
		return
	}
	response.Success(c, http.StatusOK, gin.H{"category": cat})
}

func (h *Handler) Delete(c *gin.Context) {
	if err := h.service.Delete(c.Request.Context(), c.Param("id")); err != nil {
		switch err {
		case ErrNotFound:
			response.Error(c, http.StatusNotFound, "NOT_FOUND", "Category not found")
		default:
			response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to delete category")
		}
		return
	}
	response.Success(c, http.StatusOK, gin.H{"deleted": true})
}

func (h *Handler) Reorder(c *gin.Context) {
	var req ReorderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}
	req.CategoryID = c.Param("id")

	if err := h.service.Reorder(c.Request.Context(), req); err != nil {
		switch err {
		case ErrNotFound:
			response.Error(c, http.StatusNotFound, "NOT_FOUND", "Category not found")
		default:
			response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to reorder category")
		}
		return
	}
	response.Success(c, http.StatusOK, gin.H{"reordered": true})
}

func (h *Handler) BatchReorder(c *gin.Context) {
	var req BatchReorderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	results, err := h.service.BatchReorder(c.Request.Context(), req)
	if err != nil {
		switch err {
		case ErrValidation:
			response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "No reorder updates supplied")
		default:
			response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to reorder categories")
		}
		return
	}
	response.Success(c, http.StatusOK, gin.H{"results": results})
}
