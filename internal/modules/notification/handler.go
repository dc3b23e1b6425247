package notification

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"uslugi/internal/middleware"
	"uslugi/internal/pkg/jwt"
	"uslugi/internal/pkg/response"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	// TODO: restrict origins once the frontend domain is fixed
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

type Handler struct {
	service *Service
	hub     *Hub
	jwt     *jwt.Service
	logger  *zap.Logger
}

func NewHandler(service *Service, hub *Hub, jwtService *jwt.Service, logger *zap.Logger) *Handler {
	return &Handler{service: service, hub: hub, jwt: jwtService, logger: logger}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/activity", h.List)
	rg.POST("/activity/read", h.MarkRead)
}

// RegisterPublicRoutes registers the websocket endpoint. Auth happens
// via ?token= because browsers cannot set headers on websocket dials.
func (h *Handler) RegisterPublicRoutes(rg *gin.RouterGroup) {
	rg.GET("/ws", h.Connect)
}

func (h *Handler) List(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))
	offset, _ := strconv.Atoi(c.DefaultQuery("offset", "0"))

	logs, err := h.service.List(c.Request.Context(), middleware.UserID(c), limit, offset)
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to load activity")
		return
	}
	response.Success(c, http.StatusOK, gin.H{"activity": logs})
}

func (h *Handler) MarkRead(c *gin.Context) {
	var req struct {
		IDs []string `json:"ids" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	if err := h.service.MarkRead(c.Request.Context(), middleware.UserID(c), req.IDs); err != nil {
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to mark activity read")
		return
	}
	response.Success(c, http.StatusOK, gin.H{"read": len(req.IDs)})
}

func (h *Handler) Connect(c *gin.Context) {
	token := c.Query("token")
	if token == "" {
		response.Error(c, http.StatusUnauthorized, "UNAUTHORIZED", "Token is required, use ?token=JWT")
		return
	}

	claims, err := h.jwt.ValidateToken(token)
	if err != nil {
		response.Error(c, http.StatusUnauthorized, "UNAUTHORIZED", "Invalid or expired token")
		return
	}

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		h.logger.Warn("websocket upgrade failed", zap.Error(err))
		return
	}

	userID := claims.UserID
	h.hub.Register(userID, conn)
	h.logger.Info("websocket connected", zap.String("user_id", userID))

	defer func() {
		h.hub.Unregister(userID)
		h.logger.Info("websocket disconnected", zap.String("user_id", userID))
	}()

	conn.SetPongHandler(func(string) error {
		return conn.SetReadDeadline(time.Now().Add(60 * time.Second))
	})
	_ = conn.SetReadDeadline(time.Now().Add(60 * time.Second))

	// Reads keep the connection alive; pushes go out via the hub.
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			return
		}
		_ = conn.SetReadDeadline(time.Now().Add(60 * time.Second))
	}
}
