package controllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "insurance-chatbot-backend/errors"
	"insurance-chatbot-backend/logger"
	"insurance-chatbot-backend/models"
	"insurance-chatbot-backend/services"
)

type ChatbotController struct {
	chatbotService *services.ChatbotService
	logger         logger.Logger
}

func NewChatbotController(chatbotService *services.ChatbotService, log logger.Logger) *ChatbotController {
	return &ChatbotController{
		chatbotService: chatbotService,
		logger:         log,
	}
}

// HandleChat processes chat messages
func (cc *ChatbotController) HandleChat(c *gin.Context) {
	var req models.ChatRequest

	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request format",
			"details": err.Error(),
		})
		return
	}
	req.Channel = models.ChannelWeb

	response, err := cc.chatbotService.ProcessMessage(c.Request.Context(), req)
	if err != nil {
		cc.logger.WithError(err).Error("Failed to process message", map[string]interface{}{"session_id": req.SessionID})
		respondError(c, err, "Failed to process message")
		return
	}

	c.JSON(http.StatusOK, response)
}

// GetSupportedIntents returns the keyword tables driving classification
func (cc *ChatbotController) GetSupportedIntents(c *gin.Context) {
	entities, intentions := cc.chatbotService.SupportedIntents()
	c.JSON(http.StatusOK, gin.H{
		"entities":   entities,
		"intentions": intentions,
	})
}

// respondError maps application errors to HTTP status codes.
func respondError(c *gin.Context, err error, message string) {
	status := http.StatusInternalServerError
	var se *apperrors.StandardError
	if errors.As(err, &se) {
		switch se.Code {
		case apperrors.ErrCodeInvalidRequest:
			status = http.StatusBadRequest
		case apperrors.ErrCodeStorageConnectionFailed, apperrors.ErrCodeSessionStoreFailed:
			status = http.StatusServiceUnavailable
		case apperrors.ErrCodeWhatsAppSendFailed:
			status = http.StatusBadGateway
		}
	}

	c.JSON(status, gin.H{
		"error":   message,
		"details": err.Error(),
	})
}
