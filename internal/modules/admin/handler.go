package admin

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"uslugi/internal/pkg/response"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterPublicRoutes registers the storefront read side.
func (h *Handler) RegisterPublicRoutes(rg *gin.RouterGroup) {
	rg.GET("/homepage", h.Homepage)
}

// RegisterAdminRoutes registers the page builder, admin only.
func (h *Handler) RegisterAdminRoutes(rg *gin.RouterGroup) {
	rg.GET("/sections", h.List)
	rg.POST("/sections", h.Create)
	rg.PATCH("/sections/reorder", h.Reorder)
	rg.PATCH("/sections/:id", h.Update)
	rg.DELETE("/sections/:id", h.Delete)
}

func (h *Handler) Homepage(c *gin.Context) {
	sections, err := h.service.Homepage(c.Request.Context(), c.DefaultQuery("device", "desktop"))
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to load homepage")
		return
	}
	response.Success(c, http.StatusOK, HomepageResponse{Sections: sections})
}

func (h *Handler) List(c *gin.Context) {
	sections, err := h.service.List(c.Request.Context())
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to load sections")
		return
	}
	response.Success(c, http.StatusOK, gin.H{"sections": sections})
}

func (h *Handler) Create(c *gin.Context) {
	var req CreateSectionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	sec, err := h.service.Create(c.Request.Context(), req)
	if err != nil {
		h.writeError(c, err, "Failed to create section")
		return
	}
	response.Success(c, http.StatusCreated, gin.H{"section": sec})
}

func (h *Handler) Update(c *gin.Context) {
	var req UpdateSectionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	sec, err := h.service.Update(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		h.writeError(c, err, "Failed to update section")
		return
	}
	response.Success(c, http.StatusOK, gin.H{"section": sec})
}

func (h *Handler) Delete(c *gin.Context) {
	if err := h.service.Delete(c.Request.Context(), c.Param("id")); err != nil {
		h.writeError(c, err, "Failed to delete section")
		return
	}
	response.Success(c, http.StatusOK, gin.H{"deleted": true})
}

func (h *Handler) Reorder(c *gin.Context) {
	var req ReorderSectionsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	results, err := h.service.Reorder(c.Request.Context(), req)
	if err != nil {
		h.writeError(c, err, "Failed to reorder sections")
		return
	}
	response.Success(c, http.StatusOK, gin.H{"results": results})
}

func (h *Handler) writeError(c *gin.Context, err error, fallback string) {
	switch {
	case errors.Is(err, ErrValidation):
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
	case errors.Is(err, ErrUnknownType):
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Unknown section type")
	case errors.Is(err, ErrNotFound):
		response.Error(c, http.StatusNotFound, "NOT_FOUND", "Section not found")
	default:
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", fallback)
	}
}
