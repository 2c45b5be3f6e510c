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

type SendMessageRequest struct {
	ReceiverID uint   `json:"receiver_id" binding:"required"`
	Body       string `json:"body" binding:"required"`
}

type MessageResponse struct {
	ID         uint      `json:"id"`
	SenderID   uint      `json:"sender_id"`
	ReceiverID uint      `json:"receiver_id"`
	Body       string    `json:"body"`
	Read       bool      `json:"read"`
	CreatedAt  time.Time `json:"created_at"`
}

func SendMessage(ctx *gin.Context) {
	userID, err := utils.GetCurrentUserID(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	var body SendMessageRequest

	if err := ctx.BindJSON(&body); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	if body.ReceiverID == userID {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Cannot message yourself"})
		return
	}

	var receiver models.User

	if err := db.DB.First(&receiver, body.ReceiverID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			ctx.JSON(http.StatusNotFound, gin.H{"error": "Receiver not found"})
		} else {
			ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve receiver"})
		}
		return
	}

	message := models.Message{
		SenderID:   userID,
		ReceiverID: receiver.ID,
		Body:       body.Body,
	}

	if err := db.DB.Create(&message).Error; err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to send message"})
		return
	}

	ctx.JSON(http.StatusCreated, gin.H{"message": MessageResponse{
		ID:         message.ID,
		SenderID:   message.SenderID,
		ReceiverID: message.ReceiverID,
		Body:       message.Body,
		Read:       message.Read,
		CreatedAt:  message.CreatedAt,
	}})
}

// ListMessages returns every message the caller sent or received, in
// conversation order.
func ListMessages(ctx *gin.Context) {
	userID, err := utils.GetCurrentUserID(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	var messages []models.Message

	if err := db.DB.Where("sender_id = ? OR receiver_id = ?", userID, userID).
		Order("created_at ASC").
		Find(&messages).Error; err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve messages"})
		return
	}

	response := make([]MessageResponse, 0, len(messages))

	for _, message := range messages {
		response = append(response, MessageResponse{
			ID:         message.ID,
			SenderID:   message.SenderID,
			ReceiverID: message.ReceiverID,
			Body:       message.Body,
			Read:       message.Read,
			CreatedAt:  message.CreatedAt,
		})
	}

	ctx.JSON(http.StatusOK, response)
}
