package controllers

import (
	"context"
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"

	"insurance-chatbot-backend/logger"
	"insurance-chatbot-backend/models"
	"insurance-chatbot-backend/services"
)

const webhookTimeout = 30 * time.Second

// whatsappSessionPrefix keeps WhatsApp conversations apart from web session IDs.
const whatsappSessionPrefix = "whatsapp:"

type WhatsAppController struct {
	whatsappService *services.WhatsAppService
	chatbotService  *services.ChatbotService
	logger          logger.Logger

	inflight sync.WaitGroup
}

func NewWhatsAppController(whatsappService *services.WhatsAppService, chatbotService *services.ChatbotService, log logger.Logger) *WhatsAppController {
	return &WhatsAppController{
		whatsappService: whatsappService,
		chatbotService:  chatbotService,
		logger:          log,
	}
}

// VerifyWebhook handles the webhook verification request from WhatsApp
func (wc *WhatsAppController) VerifyWebhook(c *gin.Context) {
	mode := c.Query("hub.mode")
	token := c.Query("hub.verify_token")
	challenge := c.Query("hub.challenge")

	if mode == "subscribe" && token != "" && token == wc.whatsappService.GetVerifyToken() {
		wc.logger.Info("WhatsApp webhook verified", nil)
		c.String(http.StatusOK, challenge)
		return
	}

	wc.logger.Warn("WhatsApp webhook verification failed", map[string]interface{}{"mode": mode})
	c.JSON(http.StatusForbidden, gin.H{"error": "Verification failed"})
}

// HandleWebhook processes incoming WhatsApp messages
func (wc *WhatsAppController) HandleWebhook(c *gin.Context) {
	var webhookData models.WhatsAppWebhookData

	if err := c.ShouldBindJSON(&webhookData); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid webhook data"})
		return
	}

	// The request context ends with the response; replies are sent after it.
	ctx, cancel := context.WithTimeout(context.WithoutCancel(c.Request.Context()), webhookTimeout)
	wc.inflight.Add(1)
	go func() {
		defer wc.inflight.Done()
		defer cancel()
		wc.processWebhookData(ctx, webhookData)
	}()

	// Respond immediately to WhatsApp
	c.JSON(http.StatusOK, gin.H{"status": "received"})
}

// Wait blocks until every accepted webhook has been processed.
func (wc *WhatsAppController) Wait() {
	wc.inflight.Wait()
}

func (wc *WhatsAppController) processWebhookData(ctx context.Context, webhookData models.WhatsAppWebhookData) {
	for _, entry := range webhookData.Entry {
		for _, change := range entry.Changes {
			if change.Field == "messages" {
				wc.processMessages(ctx, change.Value)
			}
		}
	}
}

func (wc *WhatsAppController) processMessages(ctx context.Context, value models.WhatsAppValue) {
	for _, message := range value.Messages {
		wc.handleIncomingMessage(ctx, message)
	}
	for _, status := range value.Statuses {
		wc.handleStatusUpdate(status)
	}
}

func (wc *WhatsAppController) handleIncomingMessage(ctx context.Context, message models.WhatsAppMessage) {
	wc.whatsappService.RecordIncoming()
	fields := map[string]interface{}{"from": message.From, "message_id": message.ID}

	if message.Type != "text" || message.Text == nil {
		wc.logger.Info("Ignoring non-text WhatsApp message", map[string]interface{}{"type": message.Type, "from": message.From})
		return
	}

	if err := wc.whatsappService.MarkMessageAsRead(ctx, message.ID); err != nil {
		wc.logger.WithError(err).Warn("Failed to mark message as read", fields)
	}

	response, err := wc.chatbotService.ProcessMessage(ctx, models.ChatRequest{
		Message:   message.Text.Body,
		SessionID: whatsappSessionPrefix + message.From,
		Channel:   models.ChannelWhatsApp,
	})
	if err != nil {
		wc.logger.WithError(err).Error("Failed to process WhatsApp message", fields)
		return
	}

	if err := wc.whatsappService.SendTextMessage(ctx, message.From, response.Text()); err != nil {
		wc.logger.WithError(err).Error("Failed to send WhatsApp reply", fields)
	}
}

func (wc *WhatsAppController) handleStatusUpdate(status models.WhatsAppStatus) {
	fields := map[string]interface{}{
		"message_id": status.ID,
		"recipient":  status.RecipientID,
		"status":     status.Status,
	}
	if len(status.Errors) == 0 {
		wc.logger.Debug("WhatsApp status update", fields)
		return
	}
	for _, e := range status.Errors {
		wc.logger.Warn("WhatsApp delivery error", map[string]interface{}{
			"message_id": status.ID,
			"code":       e.Code,
			"title":      e.Title,
			"detail":     e.Message,
		})
	}
}

// SendMessage sends a message to a specific WhatsApp number (for notifications)
func (wc *WhatsAppController) SendMessage(c *gin.Context) {
	var req struct {
		To      string `json:"to" binding:"required"`
		Message string `json:"message" binding:"required"`
	}

	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	to := wc.whatsappService.CleanPhoneNumber(req.To)
	if err := wc.whatsappService.SendTextMessage(c.Request.Context(), to, req.Message); err != nil {
		respondError(c, err, "Failed to send message")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status": "sent",
		"to":     to,
	})
}

// GetStatus returns WhatsApp service status
func (wc *WhatsAppController) GetStatus(c *gin.Context) {
	status := wc.whatsappService.GetStatus(wc.chatbotService.ActiveSessions(c.Request.Context()))
	c.JSON(http.StatusOK, status)
}
