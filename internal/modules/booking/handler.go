package booking

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

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
	rg.POST("/bookings", h.Create)
	rg.GET("/bookings", h.List)
	rg.GET("/bookings/calendar", h.Calendar)
	rg.PATCH("/bookings/:id/status", h.UpdateStatus)
	rg.POST("/bookings/bulk", h.Bulk)
}

// RegisterPublicRoutes registers endpoints that do not require auth.
func (h *Handler) RegisterPublicRoutes(rg *gin.RouterGroup) {
	rg.GET("/bookings/availability", h.Availability)
}

func (h *Handler) Create(c *gin.Context) {
	var req CreateBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	b, err := h.service.Create(c.Request.Context(), middleware.UserID(c), req)
	if err != nil {
		switch err {
		case ErrValidation:
			response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid booking request")
		case ErrOwnPost:
			response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Cannot book your own service")
		case ErrNotFound:
			response.Error(c, http.StatusNotFound, "NOT_FOUND", "Post not found")
		default:
			response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to create booking")
		}
		return
	}

	response.Success(c, http.StatusCreated, gin.H{"booking": b})
}

func (h *Handler) UpdateStatus(c *gin.Context) {
	var req StatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	b, err := h.service.UpdateStatus(c.Request.Context(), c.Param("id"), middleware.UserID(c), Action(req.Action))
	if err != nil {
		switch err {
		case ErrNotFound:
			response.Error(c, http.StatusNotFound, "NOT_FOUND", "Booking not found")
		case ErrForbidden:
			response.Error(c, http.StatusForbidden, "FORBIDDEN", "Not a party to this booking")
		case ErrInvalidTransition:
			response.Error(c, http.StatusUnprocessableEntity, "INVALID_TRANSITION", "Action not allowed from the current status")
		case ErrConflict:
			response.Error(c, http.StatusConflict, "CONFLICT", "Booking was changed by someone else, reload and retry")
		default:
			response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to update booking")
		}
		return
	}

	response.Success(c, http.StatusOK, gin.H{"booking": b})
}

func (h *Handler) Bulk(c *gin.Context) {
	var req BulkRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	results, err := h.service.Bulk(c.Request.Context(), middleware.UserID(c), req)
	if err != nil {
		switch err {
		case ErrValidation:
			response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid bulk request")
		default:
			response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Bulk action failed")
		}
		return
	}

	response.Success(c, http.StatusOK, gin.H{"results": results})
}

func (h *Handler) List(c *gin.Context) {
	out, err := h.service.List(c.Request.Context(), middleware.UserID(c))
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to load bookings")
		return
	}
	response.Success(c, http.StatusOK, out)
}

func (h *Handler) Calendar(c *gin.Context) {
	monthStr := c.Query("month")
	if monthStr == "" {
		monthStr = time.Now().Format("2006-01")
	}

	loc, err := viewerLocation(c)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Unknown timezone")
		return
	}

	out, err := h.service.Calendar(c.Request.Context(), middleware.UserID(c), c.DefaultQuery("view", "received"), monthStr, loc)
	if err != nil {
		switch err {
		case ErrValidation:
			response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid month, expected YYYY-MM")
		default:
			response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to build calendar")
		}
		return
	}
	response.Success(c, http.StatusOK, out)
}

func (h *Handler) Availability(c *gin.Context) {
	providerID := c.Query("providerId")
	date := c.Query("date")
	if providerID == "" || date == "" {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Missing providerId or date")
		return
	}

	loc, err := viewerLocation(c)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Unknown timezone")
		return
	}

	slots, err := h.service.DaySchedule(c.Request.Context(), providerID, date, loc)
	if err != nil {
		switch err {
		case ErrValidation:
			response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid date, expected YYYY-MM-DD")
		default:
			response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to load availability")
		}
		return
	}
	response.Success(c, http.StatusOK, gin.H{"bookings": slots})
}

// viewerLocation resolves the ?tz= IANA zone name driving day bucketing,
// defaulting to the server's local zone.
func viewerLocation(c *gin.Context) (*time.Location, error) {
	tz := c.Query("tz")
	if tz == "" {
		return time.Local, nil
	}
	return time.LoadLocation(tz)
}
