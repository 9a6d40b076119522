package delivery

import (
	"log"
	"net/http"

	"consultant-backend/internal/notification/repository"

	"github.com/gin-gonic/gin"
)

// NotificationHandler manages device token registration for push delivery
type NotificationHandler struct {
	tokenRepo repository.DeviceTokenRepository
}

func NewNotificationHandler(tokenRepo repository.DeviceTokenRepository) *NotificationHandler {
	return &NotificationHandler{tokenRepo: tokenRepo}
}

type registerTokenRequest struct {
	Token      string `json:"token" binding:"required"`
	DeviceInfo string `json:"device_info"`
}

// RegisterToken handles POST /api/notifications/tokens
func (h *NotificationHandler) RegisterToken(c *gin.Context) {
	userID := c.GetString("userID")

	var req registerTokenRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "token is required"})
		return
	}

	if err := h.tokenRepo.SaveToken(userID, req.Token, req.DeviceInfo); err != nil {
		log.Printf("[Notification] Failed to save device token: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to register token"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "token registered"})
}

// UnregisterToken handles DELETE /api/notifications/tokens/:token
func (h *NotificationHandler) UnregisterToken(c *gin.Context) {
	token := c.Param("token")
	if token == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "token is required"})
		return
	}

	if err := h.tokenRepo.DeleteToken(token); err != nil {
		log.Printf("[Notification] Failed to delete device token: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to unregister token"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "token unregistered"})
}
