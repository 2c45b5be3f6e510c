package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/ogennaisrael01/PropertyHub/db"
	"github.com/ogennaisrael01/PropertyHub/internal/models"
	"github.com/ogennaisrael01/PropertyHub/internal/utils"
	"gorm.io/gorm"
)

type NotificationResponse struct {
	ID        uint      `json:"id"`
	Content   string    `json:"content"`
	Read      bool      `json:"read"`
	Metadata  any       `json:"metadata,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// ListNotifications returns the caller's most recent notifications,
// newest first.
func ListNotifications(ctx *gin.Context) {
	userID, err := utils.GetCurrentUserID(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	var notifications []models.Notification

	if err := db.DB.Where("user_id = ?", userID).
		Order("created_at DESC").
		Limit(20).
		Find(&notifications).Error; err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve notifications"})
		return
	}

	response := make([]NotificationResponse, 0, len(notifications))

	for _, notification := range notifications {
		item := NotificationResponse{
			ID:        notification.ID,
			Content:   notification.Content,
			Read:      notification.Read,
			CreatedAt: notification.CreatedAt,
		}

		if len(notification.Metadata) > 0 {
			item.Metadata = notification.Metadata
		}

		response = append(response, item)
	}

	ctx.JSON(http.StatusOK, response)
}

// MarkNotificationRead flags one of the caller's notifications as read.
// Notifications addressed to someone else are reported as missing, not
// forbidden, so ids cannot be probed.
func MarkNotificationRead(ctx *gin.Context) {
	userID, err := utils.GetCurrentUserID(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	notificationID, err := utils.GetNotificationID(ctx)

	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var notification models.Notification

	if err := db.DB.Where("id = ? AND user_id = ?", notificationID, userID).First(&notification).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			ctx.JSON(http.StatusNotFound, gin.H{"error": "Notification not found"})
		} else {
			ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve notification"})
		}
		return
	}

	if notification.Read {
		ctx.JSON(http.StatusOK, gin.H{"message": "Already marked as read"})
		return
	}

	notification.Read = true

	if err := db.DB.Save(&notification).Error; err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update notification"})
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"message": "Marked as read"})
}
